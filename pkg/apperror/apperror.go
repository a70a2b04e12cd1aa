package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error into the taxonomy the HTTP layer maps to statuses.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindForbidden
	KindConflict
	KindUnauthorized
	KindValidation
	KindUnsupportedMedia
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindValidation:
		return "validation"
	case KindUnsupportedMedia:
		return "unsupported_media"
	default:
		return "internal"
	}
}

// Error carries a kind, a machine-readable code, and a human message.
// Services return these; handlers translate them through response.FromError.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// As unwraps err into an *Error if possible.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, k Kind) bool {
	ae, ok := As(err)
	return ok && ae.Kind == k
}

// NotFound hides the existence of the named resource. Visibility failures
// use this too, so private content is indistinguishable from absent content.
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Code: "NOT_FOUND", Message: "couldn't find " + resource}
}

func Forbidden() *Error {
	return &Error{Kind: KindForbidden, Code: "FORBIDDEN", Message: "you are not allowed to perform this action"}
}

func Conflict(code string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: "conflict"}
}

func Unauthorized(code string) *Error {
	return &Error{Kind: KindUnauthorized, Code: code, Message: "you must login to access this content"}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Code: "VALIDATION_ERROR", Message: message}
}

func UnsupportedMedia(message string) *Error {
	return &Error{Kind: KindUnsupportedMedia, Code: "UNSUPPORTED_MEDIA", Message: message}
}
