package diag

// Kind groups codes into the error families callers match on.
type Kind uint8

const (
	KindNone Kind = iota
	KindMalformedSpec
	KindInvalidLength
	KindMissingTypeSpec
	KindTypeMismatch
	KindArityMismatch
	KindRenderFailure
	KindUnsupportedArgument
)

func (k Kind) String() string {
	switch k {
	case KindMalformedSpec:
		return "malformed spec"
	case KindInvalidLength:
		return "invalid length"
	case KindMissingTypeSpec:
		return "missing type spec"
	case KindTypeMismatch:
		return "type mismatch"
	case KindArityMismatch:
		return "arity mismatch"
	case KindRenderFailure:
		return "render failure"
	case KindUnsupportedArgument:
		return "unsupported argument type"
	default:
		return "unknown"
	}
}

// Error lets a Kind serve as an errors.Is target for every code in the family.
func (k Kind) Error() string {
	return k.String()
}
