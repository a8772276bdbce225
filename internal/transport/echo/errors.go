package echo

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "media-gateway/pkg/errors"
	"media-gateway/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	msgRouteNotFound = "Route not found"
	msgInternalError = "Something went wrong!"
)

// NewHTTPErrorHandler translates handler errors to the gateway's JSON error
// shapes. It is the only place where error kinds become status codes.
func NewHTTPErrorHandler(log *logrus.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		// Headers already went out (e.g. mid-stream); the handler owns recovery.
		if c.Response().Committed {
			requestLogger(c, log).WithField("error", logger.SanitizeLogMessage(err.Error())).
				Debug("error after response was committed")
			return
		}

		code, body := mapError(err)

		entry := requestLogger(c, log).WithFields(logrus.Fields{
			"status": code,
			"error":  logger.SanitizeLogMessage(err.Error()),
		})
		if code >= http.StatusInternalServerError {
			entry.Error("request failed")
		} else {
			entry.Warn("client error")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, body)
		}
		if writeErr != nil {
			entry.WithField("write_error", writeErr.Error()).Error("failed to write error response")
		}
	}
}

func mapError(err error) (int, ErrorResponse) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case apperrors.KindClientInput:
			return http.StatusBadRequest, ErrorResponse{Error: appErr.Message, Details: clientDetails(appErr)}
		case apperrors.KindUpstreamStorage:
			return http.StatusInternalServerError, ErrorResponse{Error: appErr.Message, Details: appErr.Details()}
		case apperrors.KindNotFound:
			return http.StatusNotFound, ErrorResponse{Error: msgRouteNotFound}
		}
		return http.StatusInternalServerError, ErrorResponse{Error: msgInternalError}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		switch {
		case httpErr.Code == http.StatusNotFound, httpErr.Code == http.StatusMethodNotAllowed:
			return http.StatusNotFound, ErrorResponse{Error: msgRouteNotFound}
		case httpErr.Code < http.StatusInternalServerError:
			return httpErr.Code, ErrorResponse{Error: httpErrorMessage(httpErr)}
		}
	}

	return http.StatusInternalServerError, ErrorResponse{Error: msgInternalError}
}

// clientDetails explains rejected input; missing-field errors need no extra text.
func clientDetails(appErr *apperrors.AppError) string {
	if errors.Is(appErr, apperrors.ErrInvalidKey) {
		return appErr.Details()
	}
	return ""
}

func httpErrorMessage(he *echo.HTTPError) string {
	if msg, ok := he.Message.(string); ok && msg != "" {
		return msg
	}
	if he.Message != nil {
		return fmt.Sprintf("%v", he.Message)
	}
	return http.StatusText(he.Code)
}
