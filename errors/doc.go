// Package errors provides structured error types for the structpack library.
//
// Errors are categorized by Phase (which operation failed) and Kind (error
// category). The Error type carries the offending value, the field index the
// failure belongs to, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhasePack, errors.KindWriteConversion).
//		Field(2).
//		Value(v).
//		Detail("cannot convert %q to int32", v).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidSequence('z', 1)
//	err := errors.SizeMismatch(6, 3)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
