// Package errors defines the coded errors returned by linkdeps.
//
// Every failure of a resolution run carries a [Code] naming its class, and a
// message that is already formatted for the user: it names the package and
// the manifest path involved, so the CLI prints [UserMessage] verbatim.
//
//   - INVALID_CONFIGURATION: a manifest declares something linkdeps cannot accept
//   - UNRESOLVED_REFERENCE: a local declaration points at a missing or broken manifest
//   - VERSION_CONFLICT: two declarations of the same package cannot be merged
//   - PRIVATE_PACKAGE: publish mode met a private local package
//   - MATERIALIZATION_FAILED: a link or shim could not be created (a warning)
//
// Usage:
//
//	err := errors.New(errors.ErrCodeConfiguration, "missing \"version\" field\n  at %s", path)
//	if errors.Is(err, errors.ErrCodeConfiguration) {
//	    ...
//	}
//
//	err = errors.Wrap(errors.ErrCodeUnresolvedReference, cause, "Error in processing %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error class.
type Code string

const (
	// Input
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidMode     Code = "INVALID_MODE"
	ErrCodeInvalidPackage  Code = "INVALID_PACKAGE"
	ErrCodeInvalidManifest Code = "INVALID_MANIFEST"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Resolution
	ErrCodeConfiguration       Code = "INVALID_CONFIGURATION"
	ErrCodeUnresolvedReference Code = "UNRESOLVED_REFERENCE"
	ErrCodeVersionConflict     Code = "VERSION_CONFLICT"
	ErrCodePrivatePackage      Code = "PRIVATE_PACKAGE"

	// Side effects
	ErrCodeMaterialization Code = "MATERIALIZATION_FAILED"
	ErrCodeWrite           Code = "WRITE_FAILED"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message and cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Code
}

// Is reports whether the outermost *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// UserMessage returns err's message without code prefixes. Each cause in the
// chain is appended on its own line.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + "\n" + UserMessage(e.Cause)
}
