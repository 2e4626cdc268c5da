// Package apperror defines the typed errors shared by repositories, services
// and the HTTP layer. Each type knows its HTTP status; callers match them with
// errors.As or the Is* helpers.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned to clients in the "code" field.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidStatus      = "INVALID_STATUS_VALUE"
	CodeInvalidDate        = "INVALID_DATE_VALUE"
	CodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	CodeUserNotFound       = "AUTH_USER_NOT_FOUND"
	CodeInvalidToken       = "AUTH_INVALID_TOKEN"
	CodeTokenExpired       = "AUTH_TOKEN_EXPIRED"
	CodeTodoNotFound       = "TODO_NOT_FOUND"
	CodeNotFound           = "NOT_FOUND"
	CodeUserExists         = "AUTH_USER_EXISTS"
	CodeDuplicateID        = "DUPLICATE_ID"
	CodeStorage            = "STORAGE_ERROR"
	CodePayloadTooLarge    = "PAYLOAD_TOO_LARGE"
	CodeRateLimited        = "RATE_LIMITED"
)

// FieldError describes one invalid request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// StatusCoder is implemented by every error in this package
type StatusCoder interface {
	error
	StatusCode() int
	ErrorCode() string
}

// ValidationError is returned for bad or missing input
type ValidationError struct {
	Code    string
	Message string
	Fields  []FieldError
}

func (e *ValidationError) Error() string     { return e.Message }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *ValidationError) ErrorCode() string { return e.Code }

// AuthenticationError is returned for bad credentials and bad or missing tokens
type AuthenticationError struct {
	Code    string
	Message string
	Err     error
}

func (e *AuthenticationError) Error() string   { return e.Message }
func (e *AuthenticationError) Unwrap() error   { return e.Err }
func (e *AuthenticationError) StatusCode() int { return http.StatusUnauthorized }
func (e *AuthenticationError) ErrorCode() string {
	return e.Code
}

// NotFoundError is returned when no record matches for the calling owner
type NotFoundError struct {
	Code    string
	Message string
}

func (e *NotFoundError) Error() string     { return e.Message }
func (e *NotFoundError) StatusCode() int   { return http.StatusNotFound }
func (e *NotFoundError) ErrorCode() string { return e.Code }

// ConflictError is returned for duplicate emails or ids
type ConflictError struct {
	Code    string
	Message string
}

func (e *ConflictError) Error() string     { return e.Message }
func (e *ConflictError) StatusCode() int   { return http.StatusConflict }
func (e *ConflictError) ErrorCode() string { return e.Code }

// ForbiddenError is returned when anti-forgery verification fails
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string     { return e.Message }
func (e *ForbiddenError) StatusCode() int   { return http.StatusForbidden }
func (e *ForbiddenError) ErrorCode() string { return "" }

// RequestError covers transport-level rejections such as oversized bodies and rate limiting
type RequestError struct {
	Status  int
	Code    string
	Message string
}

func (e *RequestError) Error() string     { return e.Message }
func (e *RequestError) StatusCode() int   { return e.Status }
func (e *RequestError) ErrorCode() string { return e.Code }

// StorageError wraps file I/O, corrupt JSON and database failures.
// It is fatal for the request that triggered it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}
func (e *StorageError) Unwrap() error     { return e.Err }
func (e *StorageError) StatusCode() int   { return http.StatusInternalServerError }
func (e *StorageError) ErrorCode() string { return CodeStorage }

// Validation builds a ValidationError with the generic code
func Validation(message string, fields ...FieldError) *ValidationError {
	return &ValidationError{Code: CodeValidation, Message: message, Fields: fields}
}

// Authentication builds an AuthenticationError
func Authentication(code, message string, err error) *AuthenticationError {
	return &AuthenticationError{Code: code, Message: message, Err: err}
}

// TodoNotFound builds the NotFoundError used by the todo service
func TodoNotFound(id string) *NotFoundError {
	return &NotFoundError{Code: CodeTodoNotFound, Message: fmt.Sprintf("Todo with id %s not found", id)}
}

// Storage wraps err as a StorageError for operation op
func Storage(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// IsStorage reports whether err is or wraps a StorageError
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// IsNotFound reports whether err is or wraps a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// HTTPStatus returns the status for err, 500 for anything untyped
func HTTPStatus(err error) int {
	var sc StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}
