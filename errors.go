package propflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/broady/propflow/convert"
)

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	CodeInvalidConfig ErrorCode = "invalid_config"
	CodeReadFailed    ErrorCode = "read_failed"
	CodeParseFailed   ErrorCode = "parse_failed"
	CodeUnsupported   ErrorCode = "unsupported"
	CodeWriteFailed   ErrorCode = "write_failed"
	CodeCanceled      ErrorCode = "canceled"
	CodeInternal      ErrorCode = "internal"
)

// Error is a generation failure with a code and optional details.
type Error struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Err     error          `json:"-"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError creates a new Error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Errorf creates a new Error with a formatted message. A %w verb also sets
// the wrapped error.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	err := fmt.Errorf(format, args...)
	return &Error{Code: code, Message: err.Error(), Err: errors.Unwrap(err)}
}

// WithDetail returns a new Error with the key-value pair added to details.
func (e *Error) WithDetail(key string, value any) *Error {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &Error{Code: e.Code, Message: e.Message, Details: details, Err: e.Err}
}

// ExitCode maps an ErrorCode to a process exit status.
func (c ErrorCode) ExitCode() int {
	switch c {
	case CodeInvalidConfig:
		return 2
	case CodeUnsupported, CodeParseFailed:
		return 3
	case CodeReadFailed, CodeWriteFailed:
		return 4
	case CodeCanceled:
		return 130
	default:
		return 1
	}
}

// AsError maps err to an *Error. Errors that already are one pass through.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}

	var pfErr *Error
	if errors.As(err, &pfErr) {
		return pfErr
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{Code: CodeCanceled, Message: err.Error(), Err: err}
	}

	if errors.Is(err, convert.ErrUnsupported) {
		return &Error{Code: CodeUnsupported, Message: err.Error(), Err: err}
	}

	var valErrs validator.ValidationErrors
	if errors.As(err, &valErrs) {
		details := make(map[string]any)
		messages := make([]string, 0, len(valErrs))
		for _, ve := range valErrs {
			msg := formatValidationError(ve)
			details[ve.Namespace()] = msg
			messages = append(messages, ve.Namespace()+": "+msg)
		}
		return &Error{
			Code:    CodeInvalidConfig,
			Message: strings.Join(messages, "; "),
			Details: details,
			Err:     err,
		}
	}

	return &Error{Code: CodeInternal, Message: err.Error(), Err: err}
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", ve.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", ve.Param())
	case "excluded_with":
		return fmt.Sprintf("must be empty when %s is set", ve.Param())
	case "jsident":
		return "must be a JavaScript identifier"
	case "indent":
		return "must contain only spaces or tabs"
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
