package bankid

import (
	"errors"
	"fmt"
)

// ErrorCode is an error class returned by the remote Relying Party API.
type ErrorCode string

const (
	ErrorCodeAlreadyInProgress    ErrorCode = "alreadyInProgress"
	ErrorCodeInvalidParameters    ErrorCode = "invalidParameters"
	ErrorCodeUnauthorized         ErrorCode = "unauthorized"
	ErrorCodeNotFound             ErrorCode = "notFound"
	ErrorCodeRequestTimeout       ErrorCode = "requestTimeout"
	ErrorCodeUnsupportedMediaType ErrorCode = "unsupportedMediaType"
	ErrorCodeInternalError        ErrorCode = "internalError"
	ErrorCodeMaintenance          ErrorCode = "maintenance"
)

var (
	ErrAlreadyInProgress = func() *Error {
		return &Error{
			ErrorCode: ErrorCodeAlreadyInProgress,
		}
	}
	ErrInvalidParameters = func() *Error {
		return &Error{
			ErrorCode: ErrorCodeInvalidParameters,
		}
	}
	ErrInternalError = func() *Error {
		return &Error{
			ErrorCode: ErrorCodeInternalError,
		}
	}
	ErrMaintenance = func() *Error {
		return &Error{
			ErrorCode: ErrorCodeMaintenance,
		}
	}
)

// Error is the error document of the remote API. Any non-200 response of
// auth, collect or cancel unmarshals into one.
type Error struct {
	Parent    error     `json:"-"`
	ErrorCode ErrorCode `json:"errorCode"`
	Details   string    `json:"details,omitempty"`
}

func (e *Error) Error() string {
	message := "ErrorCode=" + string(e.ErrorCode)
	if e.Details != "" {
		message += " Details=" + e.Details
	}
	if e.Parent != nil {
		message += " Parent=" + e.Parent.Error()
	}
	return message
}

func (e *Error) Unwrap() error {
	return e.Parent
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.ErrorCode == t.ErrorCode &&
		(e.Details == t.Details || t.Details == "")
}

func (e *Error) WithParent(err error) *Error {
	e.Parent = err
	return e
}

func (e *Error) WithDetails(details string, args ...any) *Error {
	e.Details = fmt.Sprintf(details, args...)
	return e
}

// DefaultToInternalError wraps err into an internalError coded Error,
// unless it already is an *Error.
func DefaultToInternalError(err error, details string) *Error {
	apiErr := new(Error)
	if ok := errors.As(err, &apiErr); !ok {
		apiErr.ErrorCode = ErrorCodeInternalError
		apiErr.Details = details
		apiErr.Parent = err
	}
	return apiErr
}
