package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func TooManyRequests(c *gin.Context, code, message string) {
	Write(c, http.StatusTooManyRequests, code, message)
}

func ServiceUnavailable(c *gin.Context, code, message string) {
	Write(c, http.StatusServiceUnavailable, code, message)
}

var statusByCode = map[string]int{
	"client_not_found":      http.StatusNotFound,
	"dog_not_found":         http.StatusNotFound,
	"appointment_not_found": http.StatusNotFound,
	"expenditure_not_found": http.StatusNotFound,
	"user_not_found":        http.StatusNotFound,
	"invalid_credentials":   http.StatusUnauthorized,
	"missing_reference":     http.StatusBadRequest,
	"invalid_range":         http.StatusBadRequest,
	"invalid_input":         http.StatusBadRequest,
	"invalid_state":         http.StatusConflict,
	"owner_exists":          http.StatusConflict,
	"corrupt_reference":     http.StatusInternalServerError,
	"photos_disabled":       http.StatusServiceUnavailable,
}

// Respond writes err as JSON. Business errors use their code's status;
// anything else is logged and reported as a 500.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		status, ok := statusByCode[be.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		if status >= http.StatusInternalServerError {
			slog.ErrorContext(c.Request.Context(), "business invariant broken",
				"code", be.Code, "error", err)
		}
		Write(c, status, be.Code, be.Error())
		return
	}

	slog.ErrorContext(c.Request.Context(), "request failed",
		"path", c.FullPath(), "error", err)
	Internal(c, "internal_error", "internal error")
}
