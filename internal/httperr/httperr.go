package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// requestIDKey is where the request id middleware stores the id.
const requestIDKey = "requestID"

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

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func StatusFor(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindAlreadyExists, KindInvalidState:
		return http.StatusConflict
	case KindInvalidData, KindIntegrity:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Respond renders err and aborts the request. Business errors keep their
// code and message; anything else is logged and answered with a generic 500.
func Respond(c *gin.Context, err error) {
	_ = c.Error(err)

	var be BusinessError
	if errors.As(err, &be) && be.Kind != KindUnexpected {
		if be.Kind == KindIntegrity {
			slog.Default().Warn("integrity violation",
				slog.String("request_id", c.GetString(requestIDKey)),
				slog.String("method", c.Request.Method),
				slog.String("path", c.FullPath()),
				slog.Any("err", err),
			)
		}
		c.AbortWithStatusJSON(StatusFor(be.Kind), HTTPError{
			Code:    be.Code,
			Message: be.Message,
		})
		return
	}

	slog.Default().Error("unexpected error",
		slog.String("request_id", c.GetString(requestIDKey)),
		slog.String("method", c.Request.Method),
		slog.String("path", c.FullPath()),
		slog.Any("err", err),
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, HTTPError{
		Code:    "internal_error",
		Message: "an unexpected error occurred",
	})
}
