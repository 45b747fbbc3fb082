package errors

import (
	"errors"
	"fmt"
)

// Code categorizes an engine error
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates the caller passed something unusable
	CodeInvalidArgument Code = "invalid_argument"

	// CodeNotFound indicates a requested character, spell or stat does not exist
	CodeNotFound Code = "not_found"

	// CodeAlreadyExists indicates an attempt to store something twice
	CodeAlreadyExists Code = "already_exists"

	// CodeInternal indicates an internal failure (storage, serialization)
	CodeInternal Code = "internal"

	// CodeValidation indicates a broken invariant on input data
	CodeValidation Code = "validation"

	// CodeInvalidCast indicates BuildSpell was called on an uncastable spell.
	// Callers are expected to gate options with IsCastable, so this is a bug.
	CodeInvalidCast Code = "invalid_cast"

	// CodeInsufficientResource indicates the caster cannot pay a cost. It is
	// a diagnostic, usually found as the cause of an invalid cast.
	CodeInsufficientResource Code = "insufficient_resource"

	// CodeUnmetRequirement indicates a blocked cast for any reason other
	// than cost (silenced, unknown spell, spell-specific requirement)
	CodeUnmetRequirement Code = "unmet_requirement"

	// CodeBattleOver indicates an action against a finished battle
	CodeBattleOver Code = "battle_over"
)

// Error is an engine error with a code and optional metadata
type Error struct {
	Code    Code
	Message string
	Cause   error
	Meta    map[string]any
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
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an error, keeping the code of an engine error
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var engineErr *Error
	if errors.As(err, &engineErr) {
		return &Error{
			Code:    engineErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(engineErr.Meta),
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

// AlreadyExistsf creates a formatted already exists error
func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

// Internalf creates a formatted internal error
func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// Validation creates a validation error
func Validation(message string) *Error {
	return New(CodeValidation, message)
}

// Validationf creates a formatted validation error
func Validationf(format string, args ...any) *Error {
	return Newf(CodeValidation, format, args...)
}

// InvalidCastf creates a formatted invalid cast error
func InvalidCastf(format string, args ...any) *Error {
	return Newf(CodeInvalidCast, format, args...)
}

// InsufficientResourcef creates a formatted insufficient resource error
func InsufficientResourcef(format string, args ...any) *Error {
	return Newf(CodeInsufficientResource, format, args...)
}

// UnmetRequirementf creates a formatted unmet requirement error
func UnmetRequirementf(format string, args ...any) *Error {
	return Newf(CodeUnmetRequirement, format, args...)
}

// BattleOver creates a battle over error
func BattleOver(message string) *Error {
	return New(CodeBattleOver, message)
}

// Is checks if the error, or any engine error it wraps, has the code
func Is(err error, code Code) bool {
	for err != nil {
		if engineErr, ok := err.(*Error); ok && engineErr.Code == code {
			return true
		}
		err = errors.Unwrap(err)
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

// IsAlreadyExists checks if the error is an already exists error
func IsAlreadyExists(err error) bool {
	return Is(err, CodeAlreadyExists)
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	return Is(err, CodeValidation)
}

// IsInvalidCast checks if the error is an invalid cast error
func IsInvalidCast(err error) bool {
	return Is(err, CodeInvalidCast)
}

// IsInsufficientResource checks if the error is an insufficient resource error
func IsInsufficientResource(err error) bool {
	return Is(err, CodeInsufficientResource)
}

// IsUnmetRequirement checks if the error is an unmet requirement error
func IsUnmetRequirement(err error) bool {
	return Is(err, CodeUnmetRequirement)
}

// IsBattleOver checks if the error is a battle over error
func IsBattleOver(err error) bool {
	return Is(err, CodeBattleOver)
}

// GetCode returns the error code
func GetCode(err error) Code {
	var engineErr *Error
	if errors.As(err, &engineErr) {
		return engineErr.Code
	}
	return CodeUnknown
}

// GetMeta returns the error metadata
func GetMeta(err error) map[string]any {
	var engineErr *Error
	if errors.As(err, &engineErr) {
		return engineErr.Meta
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
