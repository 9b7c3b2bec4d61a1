package apperror

import (
	"errors"
	"net/http"
)

// Sentinel kinds. Handlers map them to HTTP status codes with StatusCode.
var (
	ErrAuthentication = errors.New("authentication required")
	ErrAuthorization  = errors.New("insufficient permissions")
	ErrValidation     = errors.New("validation failed")
	ErrNotFound       = errors.New("not found")
	ErrInvalidState   = errors.New("invalid state")
	ErrConflict       = errors.New("already exists")
)

// Error carries a kind, a short user-facing message and an optional cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Kind != nil {
		return e.Kind.Error()
	}
	return "internal server error"
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func Authentication(message string) *Error {
	return &Error{Kind: ErrAuthentication, Message: message}
}

func Authorization(message string) *Error {
	return &Error{Kind: ErrAuthorization, Message: message}
}

func Validation(message string) *Error {
	return &Error{Kind: ErrValidation, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func InvalidState(message string) *Error {
	return &Error{Kind: ErrInvalidState, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: ErrConflict, Message: message}
}

// Internal wraps an unexpected failure. Its message is never shown to clients.
func Internal(message string, err error) *Error {
	return &Error{Message: message, Err: err}
}

// Wrap returns err unchanged when it already carries a kind, otherwise it
// wraps it as Internal.
func Wrap(message string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != nil {
		return err
	}
	return Internal(message, err)
}

// StatusCode maps an error to its HTTP status.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAuthorization):
		return http.StatusForbidden
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidState), errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the text safe to send to a client.
func PublicMessage(err error) string {
	if StatusCode(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
