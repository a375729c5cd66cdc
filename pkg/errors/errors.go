package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound   = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrValidation = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal   = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")

	ErrAuthDenied          = New("AUTH_DENIED", http.StatusForbidden, "you have to allow access to your Google profile to use this app")
	ErrAuthPopupBlocked    = New("AUTH_POPUP_BLOCKED", http.StatusBadRequest, "the authentication window could not be opened")
	ErrAuthTimeout         = New("AUTH_TIMEOUT", http.StatusGatewayTimeout, "authentication was not completed in time")
	ErrAuthIntroRequired   = New("AUTH_INTRO_REQUIRED", http.StatusPreconditionRequired, "the consent explainer has not been acknowledged on this device")
	ErrScheduleFetchFailed = New("SCHEDULE_FETCH_FAILED", http.StatusBadGateway, "failed to fetch the group schedule")
	ErrCalendarCreate      = New("CALENDAR_CREATE_FAILED", http.StatusBadGateway, "failed to create the destination calendar")
	ErrEventCreate         = New("EVENT_CREATE_FAILED", http.StatusBadGateway, "one or more calendar events could not be created")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
