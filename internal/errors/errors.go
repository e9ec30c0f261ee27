package errors

import (
	"errors"
	"fmt"
)

// Externally visible error kinds. The handler package is the only place that
// turns these into HTTP status codes.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidToken       = errors.New("invalid or expired authentication token")
	ErrForbidden          = errors.New("forbidden")
	ErrStorageUnavailable = errors.New("database connection failed")
)

// Internal causes. They are wrapped by one of the kinds above before leaving
// the service layer and only show up in logs and tests.
var (
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrMalformedHash         = errors.New("stored password hash is malformed")
)

// DomainError pairs an error kind with a human readable message and the
// underlying cause, if any.
type DomainError struct {
	Sentinel error
	Message  string
	Cause    error
}

func (e *DomainError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Sentinel.Error()
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Detail is the message that is safe to show to API clients.
func (e *DomainError) Detail() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Sentinel.Error()
}

func (e *DomainError) Is(target error) bool { return errors.Is(e.Sentinel, target) }
func (e *DomainError) Unwrap() error        { return e.Cause }

func UserNotFound(id int64) error {
	return &DomainError{Sentinel: ErrUserNotFound, Message: fmt.Sprintf("User with ID %d not found", id)}
}

func UserNotFoundByEmail(email string) error {
	return &DomainError{Sentinel: ErrUserNotFound, Message: fmt.Sprintf("User with email '%s' not found", email)}
}

func EmailExists(email string) error {
	return &DomainError{Sentinel: ErrEmailExists, Message: fmt.Sprintf("Email '%s' is already registered", email)}
}

func Forbidden(resource string) error {
	return &DomainError{Sentinel: ErrForbidden, Message: fmt.Sprintf("You are not authorized to access this %s", resource)}
}

func InvalidToken(cause error) error {
	return &DomainError{Sentinel: ErrInvalidToken, Cause: cause}
}

func StorageUnavailable(cause error) error {
	return &DomainError{
		Sentinel: ErrStorageUnavailable,
		Message:  "Database connection failed. Please try again later",
		Cause:    cause,
	}
}
