package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that no usable credential was presented or that every
// applicable validator rejected it. Handlers surface this as a 401 with a uniform
// body, so "unknown secret", "expired secret" and "malformed secret" are
// indistinguishable to the caller.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is authenticated but not allowed to act on
// the target resource (e.g. revoking another user's token).
var ErrForbidden = errors.New("forbidden")

// ErrRefreshTokenExpired indicates a presented refresh token is past its stored expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// AppError wraps an unexpected internal fault (storage unavailable, corrupt
// configuration) with an HTTP status code. The wrapped detail is for server-side
// logs only; callers always get a generic message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
