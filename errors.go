package cfmt

import "cfmt/internal/diag"

// Error is the type of every formatting failure. Use errors.As to read the
// code, message, template offset and argument position.
type Error = diag.Error

// Code identifies a specific failure, e.g. SUB2002.
type Code = diag.Code

// Error families, usable as errors.Is targets.
var (
	ErrMalformedSpec       error = diag.KindMalformedSpec
	ErrInvalidLength       error = diag.KindInvalidLength
	ErrMissingTypeSpec     error = diag.KindMissingTypeSpec
	ErrTypeMismatch        error = diag.KindTypeMismatch
	ErrArityMismatch       error = diag.KindArityMismatch
	ErrRenderFailure       error = diag.KindRenderFailure
	ErrUnsupportedArgument error = diag.KindUnsupportedArgument
)

// Specific failures, usable as errors.Is targets.
var (
	ErrTooFewArgs  error = diag.New(diag.ArityTooFew, "not enough arguments given to format string")
	ErrTooManyArgs error = diag.New(diag.ArityTooMany, "too many arguments to format string")
	ErrBadLength   error = diag.New(diag.SubstBadLength, "bad length specifier")
	ErrBadSpec     error = diag.New(diag.SubstBadSpecifier, "bad type specifier")
)
