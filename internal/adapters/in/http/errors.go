package http

import (
	"errors"
	"log/slog"
	"net/http"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error codes returned in the "code" field of failure bodies.
const (
	CodeValidation    = "validation"
	CodeUnauthorized  = "unauthorized"
	CodeForbidden     = "forbidden"
	CodeNotFound      = "not_found"
	CodeStateConflict = "state_conflict"
	CodeDependency    = "dependency"
	CodeInternal      = "internal"
)

// ErrUnauthenticated is returned when the request carries no usable identity.
var ErrUnauthenticated = errors.New("authentication required")

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Classify maps a core error to an HTTP status and an error code.
func Classify(err error) (int, string) {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code, codeForStatus(httpErr.Code)
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized, CodeUnauthorized
	case errors.Is(err, errs.ErrAccessDenied):
		return http.StatusForbidden, CodeForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, errs.ErrStateConflict):
		return http.StatusBadRequest, CodeStateConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest, CodeValidation
	case errors.Is(err, services.ErrInsufficientStock):
		return http.StatusBadRequest, CodeDependency
	case errors.Is(err, errs.ErrDependencyFailed):
		return http.StatusServiceUnavailable, CodeDependency
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusUnsupportedMediaType:
		return CodeValidation
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return CodeNotFound
	default:
		return CodeInternal
	}
}

// NewErrorHandler renders every handler error as an ErrorResponse. Internal
// failures are logged and their details are not sent to the client.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, code := Classify(err)
		message := err.Error()
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			if m, ok := httpErr.Message.(string); ok {
				message = m
			}
		}
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
			if code == CodeInternal {
				message = http.StatusText(status)
			}
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, ErrorResponse{Success: false, Message: message, Code: code})
		}
		if writeErr != nil {
			logger.Error("write error response", "error", writeErr)
		}
	}
}
