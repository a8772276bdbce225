package echo

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	msgSkeletonWelcome = "Welcome to the media gateway skeleton!"
	msgSkeletonUpload  = "upload from API!"
	msgDataReceived    = "Data received"
)

// registerSkeletonRoutes registers the placeholder routes. They return fixed
// payloads and never touch storage.
func (s *Server) registerSkeletonRoutes() {
	s.echo.GET("/", s.welcomeHandler)
	s.echo.GET("/health", s.healthHandler)

	// Limits are per route; unknown /api paths must stay unrouted.
	s.echo.POST("/api/upload", s.placeholderUploadHandler, middleware.BodyLimit(skeletonBodyLimit))
	s.echo.GET("/api/get-images", s.placeholderImagesHandler)
}

func (s *Server) welcomeHandler(c echo.Context) error {
	return c.String(http.StatusOK, msgSkeletonWelcome)
}

// placeholderUploadHandler accepts and discards a JSON body. Malformed JSON
// is still rejected; other content types are ignored.
func (s *Server) placeholderUploadHandler(c echo.Context) error {
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		var payload map[string]interface{}
		if err := new(echo.DefaultBinder).BindBody(c, &payload); err != nil {
			return err
		}
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: msgSkeletonUpload})
}

func (s *Server) placeholderImagesHandler(c echo.Context) error {
	return c.JSON(http.StatusCreated, DataResponse{
		Message: msgDataReceived,
		Data:    []interface{}{},
	})
}
