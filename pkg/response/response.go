package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chirper-app/chirper/pkg/apperror"
)

type APIResponse[T any] struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      T           `json:"data,omitempty"`
	Meta      interface{} `json:"meta,omitempty"`
	Error     interface{} `json:"error,omitempty"`
}

func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	resp := APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	}
	ctx.JSON(status, resp)
	return resp
}

func Error[T any](ctx *gin.Context, status int, message string, err interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	resp := APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     err,
	}
	ctx.JSON(status, resp)
	return resp
}

// StatusOf maps an error to its HTTP status. Unknown errors are 500s.
func StatusOf(err error) int {
	ae, ok := apperror.As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch ae.Kind {
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindForbidden:
		return http.StatusForbidden
	case apperror.KindConflict:
		return http.StatusConflict
	case apperror.KindUnauthorized:
		return http.StatusUnauthorized
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindUnsupportedMedia:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes the error envelope for a service error, exposing the
// machine code so clients can branch without parsing messages.
func FromError(ctx *gin.Context, err error) APIResponse[any] {
	status := StatusOf(err)
	if ae, ok := apperror.As(err); ok {
		return Error[any](ctx, status, ae.Message, gin.H{"error_code": ae.Code})
	}
	return Error[any](ctx, status, "internal server error", nil)
}
