// Package errors provides structured error types for the barrage engine.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes a field path and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseStage, errors.KindInvalidData).
//		Path("bullets", "1", "events").
//		Detail("event frame must be positive").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotFound(errors.PhasePattern, "pattern burst")
//	err := errors.OutOfBounds(errors.PhasePattern, path, 10, 5)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
