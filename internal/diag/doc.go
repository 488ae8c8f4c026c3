// Package diag defines the error model shared by every formatting stage.
//
// Each failure carries a compact numeric Code with a stable string ID
// ("SCN1001", "SUB2002", ...) and a Kind grouping the codes into the families
// callers usually test for:
//
//   - KindMissingTypeSpec, KindMalformedSpec, KindInvalidLength: the template
//     could not be decomposed (SCN codes).
//   - KindTypeMismatch, KindUnsupportedArgument: an argument does not fit its
//     conversion (SUB codes).
//   - KindArityMismatch: conversions and arguments do not pair up (ARG codes).
//   - KindRenderFailure: the engine refused the conversion (RND codes).
//
// Code ranges are stable; new codes are appended inside their range.
//
// Errors are plain values of type *Error. errors.Is matches either an *Error
// with the same Code or a Kind:
//
//	errors.Is(err, diag.New(diag.ArityTooFew, ""))
//	errors.Is(err, diag.KindArityMismatch)
package diag
