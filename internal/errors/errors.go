package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Process exit codes of the limbkern command.
const (
	ExitSuccess       = 0   // Run completed.
	ExitErrorGeneric  = 1   // Any failure without a dedicated code.
	ExitErrorTimeout  = 2   // The -timeout deadline expired.
	ExitErrorMismatch = 3   // The fast and reference paths disagreed.
	ExitErrorConfig   = 4   // Invalid flags, environment or options.
	ExitErrorCanceled = 130 // Interrupted, e.g. by SIGINT.
)

// ConfigError reports invalid user configuration: flags, environment
// variables or harness options.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError wraps a failure raised while a harness (calibration, the
// command) was driving a kernel, typically a recovered PreconditionError.
type CalculationError struct {
	Cause error
}

func (e CalculationError) Error() string { return e.Cause.Error() }

// Unwrap returns the cause, for errors.Is and errors.As.
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError reports that a mode ran past its deadline. It unwraps to
// context.DeadlineExceeded.
type TimeoutError struct {
	// Operation names what was running, e.g. "calibrate".
	Operation string
	// Limit is the configured deadline.
	Limit time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Operation, e.Limit)
}

// Unwrap returns context.DeadlineExceeded.
func (e TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// ValidationError reports a malformed value for a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// PreconditionError describes a violated kernel precondition. Kernels panic
// with a *PreconditionError; it is never returned as an ordinary error value.
type PreconditionError struct {
	// Op names the kernel operation whose contract was violated.
	Op string
	// Detail explains which precondition failed.
	Detail string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: precondition violated: %s", e.Op, e.Detail)
}

// Precondition aborts the current call with a *PreconditionError for op.
func Precondition(op, format string, a ...any) {
	panic(&PreconditionError{Op: op, Detail: fmt.Sprintf(format, a...)})
}

// AsPrecondition reports whether a recovered panic value is a kernel
// precondition violation and returns it.
func AsPrecondition(r any) (*PreconditionError, bool) {
	err, ok := r.(error)
	if !ok {
		return nil, false
	}
	var pe *PreconditionError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// WrapError prefixes err with a formatted context message, keeping it
// inspectable with errors.Is and errors.As. A nil err stays nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err stems from a canceled or expired context.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
