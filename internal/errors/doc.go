// Package apperrors defines the error types shared by the limbkern kernels and
// the command built on top of them.
//
// The arithmetic kernels never return errors: a violated precondition (zero
// modulus, unreduced operand, undersized scratch, mismatched matrix lengths)
// is a caller bug and aborts with a panic carrying a *PreconditionError.
// Harness code (calibration, the command) may recover that panic and wrap it
// in a CalculationError for reporting.
//
// Callers add context with fmt.Errorf and %w (or WrapError) so exit codes can
// be derived with errors.Is and errors.As at the top of the command.
package apperrors
