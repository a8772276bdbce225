package echo

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	apperrors "media-gateway/pkg/errors"
	"media-gateway/pkg/profiling"
	"media-gateway/pkg/validator"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	formFieldVideo     = "video"
	queryParamKey      = "key"
	defaultStreamType  = "video/mp4"
	fallbackUploadType = "application/octet-stream"
	acceptRangesBytes  = "bytes"
	headerRange        = "Range"
	headerAcceptRanges = "Accept-Ranges"
	headerContentRange = "Content-Range"
	msgUploadSucceeded = "File uploaded successfully"
)

// registerGatewayRoutes registers all HTTP routes
func (s *Server) registerGatewayRoutes() {
	s.echo.POST("/upload", s.uploadHandler)
	s.echo.GET("/files", s.listFilesHandler)
	s.echo.GET("/stream", s.streamHandler)
	s.echo.GET("/health", s.healthHandler)
	s.echo.GET("/metrics", s.metrics.Handler())

	if s.profiling {
		profiling.RegisterRoutes(s.echo)
	}
}

// uploadHandler stores the single "video" part under its original file name.
// Equal names overwrite each other in the store.
func (s *Server) uploadHandler(c echo.Context) error {
	file, err := c.FormFile(formFieldVideo)
	if err != nil {
		return apperrors.MissingFile()
	}

	if err := validator.ObjectKey(file.Filename); err != nil {
		return apperrors.InvalidKey(err)
	}

	src, err := file.Open()
	if err != nil {
		return apperrors.UploadFailed(fmt.Errorf("failed to open uploaded file: %w", err))
	}
	defer src.Close()

	contentType := file.Header.Get(echo.HeaderContentType)
	if validator.ContentType(contentType) != nil {
		contentType = fallbackUploadType
	}

	key := file.Filename
	if err := s.store.PutObject(c.Request().Context(), key, contentType, src, file.Size); err != nil {
		return apperrors.UploadFailed(err)
	}

	s.metrics.AddUploadBytes(file.Size)
	requestLogger(c, s.log).WithFields(logrus.Fields{
		"key":          key,
		"size":         file.Size,
		"content_type": contentType,
	}).Info("file uploaded")

	return c.JSON(http.StatusOK, UploadResponse{
		Message: msgUploadSucceeded,
		File:    FileRef{Name: file.Filename, Key: key},
	})
}

func (s *Server) listFilesHandler(c echo.Context) error {
	listing, err := s.store.ListObjects(c.Request().Context())
	if err != nil {
		return apperrors.ListFailed(err)
	}

	if listing.Truncated {
		requestLogger(c, s.log).WithFields(logrus.Fields{
			"bucket":   s.store.Bucket(),
			"returned": len(listing.Objects),
		}).Warn("bucket listing truncated to a single page")
	}

	files := make([]FileEntry, 0, len(listing.Objects))
	for _, obj := range listing.Objects {
		files = append(files, FileEntry{
			Name: obj.Key,
			Key:  obj.Key,
		})
	}

	return c.JSON(http.StatusOK, ListResponse{Files: files})
}

// streamHandler relays one object to the client. A client Range header is
// forwarded to the store and answered with 206 when the store honours it.
func (s *Server) streamHandler(c echo.Context) error {
	key := c.QueryParam(queryParamKey)
	if key == "" {
		return apperrors.MissingKey()
	}

	obj, err := s.store.GetObject(c.Request().Context(), key, c.Request().Header.Get(headerRange))
	if err != nil {
		return apperrors.StreamFailed(err)
	}
	defer obj.Body.Close()

	contentType := obj.ContentType
	if contentType == "" {
		contentType = defaultStreamType
	}

	h := c.Response().Header()
	h.Set(echo.HeaderContentType, contentType)
	if obj.ContentLength >= 0 {
		h.Set(echo.HeaderContentLength, strconv.FormatInt(obj.ContentLength, 10))
	}
	h.Set(headerAcceptRanges, acceptRangesBytes)

	status := http.StatusOK
	if obj.Partial() {
		h.Set(headerContentRange, obj.ContentRange)
		status = http.StatusPartialContent
	}

	c.Response().WriteHeader(status)

	written, err := io.Copy(c.Response(), obj.Body)
	s.metrics.AddStreamBytes(written)
	if err != nil {
		return s.abortStream(c, key, written, err)
	}

	return nil
}

// abortStream handles a relay failure after the status line was sent. A JSON
// error body is no longer possible, so the connection is torn down instead.
func (s *Server) abortStream(c echo.Context, key string, written int64, cause error) error {
	s.metrics.IncStreamAborted()

	entry := requestLogger(c, s.log).WithFields(logrus.Fields{
		"key":     key,
		"written": written,
		"error":   cause.Error(),
	})

	if c.Request().Context().Err() != nil {
		entry.Info("client disconnected during stream")
		return nil
	}

	entry.Error("stream interrupted after headers were sent")
	panic(http.ErrAbortHandler)
}
