// Package httputil maps typed result errors to HTTP responses.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/userhub/userhub/internal/result"
)

// ErrorResponse is the JSON error envelope. Code and Message come from the
// typed error unchanged; unexpected errors are masked.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// StatusCode maps an error type to its HTTP status.
func StatusCode(errType result.ErrorType) int {
	switch errType {
	case result.TypeValidation:
		return http.StatusUnprocessableEntity
	case result.TypeConflict:
		return http.StatusConflict
	case result.TypeNotFound:
		return http.StatusNotFound
	case result.TypeUnauthorized:
		return http.StatusUnauthorized
	case result.TypeForbidden:
		return http.StatusForbidden
	case result.TypeGone:
		return http.StatusGone
	case result.TypeNoContent:
		return http.StatusNoContent
	case result.TypeBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// HandleResultError writes the JSON response for a failed result. Typed
// failures keep their code and message; unexpected errors log the detail
// and expose a generic body.
func HandleResultError(c *gin.Context, resultErr result.Error, logger *slog.Logger) {
	statusCode := StatusCode(resultErr.Type)

	if statusCode == http.StatusInternalServerError {
		if logger != nil {
			logger.Error("request failed",
				slog.String("error_code", resultErr.Code),
				slog.String("error", resultErr.Message),
			)
		}
		c.JSON(statusCode, ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
		return
	}

	if logger != nil {
		logger.Warn("request rejected",
			slog.Int("status_code", statusCode),
			slog.String("error_code", resultErr.Code),
		)
	}

	c.JSON(statusCode, ErrorResponse{
		Error:   resultErr.Type.String(),
		Code:    resultErr.Code,
		Message: resultErr.Message,
	})
}

// HandleBadRequest writes a 400 response for malformed JSON or parameters.
func HandleBadRequest(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "bad_request",
		Message: err.Error(),
	})
}

// HandleValidationError writes a 422 response for request validation errors.
func HandleValidationError(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	})
}
