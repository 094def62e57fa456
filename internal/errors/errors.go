package errors

import (
	"errors"
	"fmt"
)

// Code represents an error code for categorizing errors
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates client specified an invalid argument
	CodeInvalidArgument Code = "invalid_argument"

	// CodeNotFound indicates a requested resource was not found
	CodeNotFound Code = "not_found"

	// CodeInternal indicates internal system error
	CodeInternal Code = "internal"

	// CodeMalformedToken indicates a share token or persisted snapshot could not be decoded
	CodeMalformedToken Code = "malformed_token"

	// CodeCatalogUnavailable indicates the item catalog could not be fetched
	CodeCatalogUnavailable Code = "catalog_unavailable"

	// CodeStorageUnavailable indicates local persistence could not be read or written
	CodeStorageUnavailable Code = "storage_unavailable"
)

// Error represents an application error with code and metadata
type Error struct {
	// Code is the error code
	Code Code

	// Message is the error message
	Message string

	// Cause is the wrapped error
	Cause error

	// Meta contains additional context
	Meta map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context, keeping the code of a wrapped *Error
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var partyErr *Error
	if errors.As(err, &partyErr) {
		return &Error{
			Code:    partyErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(partyErr.Meta),
		}
	}

	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

// NotFound creates a not found error
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// NotFoundf creates a formatted not found error
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates a formatted invalid argument error
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// Internalf creates a formatted internal error
func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// MalformedToken creates a malformed token error
func MalformedToken(message string) *Error {
	return New(CodeMalformedToken, message)
}

// MalformedTokenf creates a formatted malformed token error
func MalformedTokenf(format string, args ...any) *Error {
	return Newf(CodeMalformedToken, format, args...)
}

// CatalogUnavailable wraps a catalog fetch failure
func CatalogUnavailable(err error, message string) *Error {
	if err == nil {
		return New(CodeCatalogUnavailable, message)
	}
	return WrapWithCode(err, CodeCatalogUnavailable, message)
}

// StorageUnavailable wraps a local persistence failure
func StorageUnavailable(err error, message string) *Error {
	if err == nil {
		return New(CodeStorageUnavailable, message)
	}
	return WrapWithCode(err, CodeStorageUnavailable, message)
}

// Is checks if the error is of a specific code
func Is(err error, code Code) bool {
	var partyErr *Error
	if errors.As(err, &partyErr) {
		return partyErr.Code == code
	}
	return false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// IsInvalidArgument checks if the error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return Is(err, CodeInvalidArgument)
}

// IsMalformedToken checks if the error is a malformed token error
func IsMalformedToken(err error) bool {
	return Is(err, CodeMalformedToken)
}

// IsCatalogUnavailable checks if the error is a catalog unavailable error
func IsCatalogUnavailable(err error) bool {
	return Is(err, CodeCatalogUnavailable)
}

// IsStorageUnavailable checks if the error is a storage unavailable error
func IsStorageUnavailable(err error) bool {
	return Is(err, CodeStorageUnavailable)
}

// GetCode returns the error code
func GetCode(err error) Code {
	var partyErr *Error
	if errors.As(err, &partyErr) {
		return partyErr.Code
	}
	return CodeUnknown
}

// GetMeta returns the error metadata
func GetMeta(err error) map[string]any {
	var partyErr *Error
	if errors.As(err, &partyErr) {
		return partyErr.Meta
	}
	return nil
}

func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
