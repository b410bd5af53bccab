package errors

import (
	stderrors "errors"
	"fmt"

	"abkit/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context. The code of an inner
// AppError or domain error is preserved.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    GetCode(err),
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// GetCode returns the code of the outermost AppError in the chain, the code
// matching a domain sentinel, INTERNAL_ERROR for anything else and "" for nil.
func GetCode(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	for sentinel, code := range domainCodes {
		if stderrors.Is(err, sentinel) {
			return code
		}
	}
	return CodeInternalError
}

// Predefined error codes
const (
	CodeInvalidSampleSize  = "INVALID_SAMPLE_SIZE"
	CodeInvalidProbability = "INVALID_PROBABILITY"
	CodeInvalidEffectSize  = "INVALID_EFFECT_SIZE"
	CodeInvalidGroupType   = "INVALID_GROUP_TYPE"
	CodeLengthMismatch     = "LENGTH_MISMATCH"
	CodeSeedMismatch       = "SEED_MISMATCH"
	CodeConfigInvalid      = "CONFIG_INVALID"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeInternalError      = "INTERNAL_ERROR"
)

var domainCodes = map[error]string{
	core.ErrInvalidSampleSize:  CodeInvalidSampleSize,
	core.ErrInvalidProbability: CodeInvalidProbability,
	core.ErrInvalidEffectSize:  CodeInvalidEffectSize,
	core.ErrInvalidGroupType:   CodeInvalidGroupType,
	core.ErrLengthMismatch:     CodeLengthMismatch,
	core.ErrSeedMismatch:       CodeSeedMismatch,
}

// ExitCode maps an error to a process exit status: 0 for nil, 2 for bad
// input or configuration, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if core.IsValidationError(err) {
		return 2
	}
	switch GetCode(err) {
	case CodeConfigInvalid, CodeInvalidInput:
		return 2
	default:
		return 1
	}
}

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}
