// Package apperror defines the application error taxonomy shared by
// services and handlers. Services wrap lower-level failures into an
// AppError; handlers map the type to an HTTP status without leaking
// internal error text to clients.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Type categorizes an application error.
type Type int

const (
	Internal Type = iota
	Validation
	Auth
	Forbidden
	NotFound
	Conflict
	Persistence
)

// AppError carries a user-facing message, a category, and an optional
// wrapped cause for logging.
type AppError struct {
	Type    Type
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// StatusCode maps the error type to the HTTP status the handler layer
// should respond with.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case Validation:
		return http.StatusBadRequest
	case Auth:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Persistence, Internal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func New(t Type, message string, cause error) *AppError {
	return &AppError{Type: t, Message: message, Err: cause}
}

func NewValidation(message string) *AppError        { return New(Validation, message, nil) }
func NewAuth(message string) *AppError              { return New(Auth, message, nil) }
func NewForbidden(message string) *AppError         { return New(Forbidden, message, nil) }
func NewNotFound(message string) *AppError          { return New(NotFound, message, nil) }
func NewConflict(message string) *AppError          { return New(Conflict, message, nil) }
func NewPersistence(message string, cause error) *AppError {
	return New(Persistence, message, cause)
}
func NewInternal(message string, cause error) *AppError { return New(Internal, message, cause) }

// From extracts an *AppError from err's chain; unknown errors are
// reported as Internal with a generic message.
func From(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return New(Internal, "internal error", err)
}

// IsType reports whether err's chain contains an AppError of type t.
func IsType(err error, t Type) bool {
	var ae *AppError
	return errors.As(err, &ae) && ae.Type == t
}

func IsNotFound(err error) bool   { return IsType(err, NotFound) }
func IsAuth(err error) bool       { return IsType(err, Auth) }
func IsValidation(err error) bool { return IsType(err, Validation) }
func IsConflict(err error) bool   { return IsType(err, Conflict) }
