// Package errors provides structured error types for the vips-runtime library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the native operation name, the optional argument involved,
// the native error text and the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseMarshal, errors.KindTypeMismatch).
//		Op("vips_thumbnail_image").
//		Option("height").
//		Value("tall").
//		Detail("cannot coerce string to int32").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Native(errors.PhaseCall, "vips_extract_area", text)
//	err := errors.Released("thumbnail")
//
// All errors implement the standard error interface and support errors.Is/As.
// A target with an empty Phase matches errors of any phase:
//
//	if errors.Is(err, errors.ErrReleased) { ... }
package errors
