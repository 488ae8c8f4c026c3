package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Decomposition of the template
	ScanInfo            Code = 1000
	ScanMissingTypeSpec Code = 1001
	ScanMalformedSpec   Code = 1002
	ScanLengthTooLong   Code = 1003
	ScanInvalidLength   Code = 1004

	// Substitution of a single argument
	SubstInfo            Code = 2000
	SubstBadLength       Code = 2001
	SubstBadSpecifier    Code = 2002
	SubstUnsupportedType Code = 2003

	// Pairing of conversions with arguments
	ArityInfo    Code = 3000
	ArityTooFew  Code = 3001
	ArityTooMany Code = 3002

	// Rendering through an engine
	RenderInfo          Code = 4000
	RenderFailed        Code = 4001
	RenderRetryMismatch Code = 4002
	RenderNoEngine      Code = 4003
)

var (
	codeDescription = map[Code]string{
		UnknownCode:          "Unknown error",
		ScanInfo:             "Template information",
		ScanMissingTypeSpec:  "Missing type specifier",
		ScanMalformedSpec:    "Malformed conversion specification",
		ScanLengthTooLong:    "Length specifier too long",
		ScanInvalidLength:    "Invalid length specifier",
		SubstInfo:            "Substitution information",
		SubstBadLength:       "Length specifier does not match argument type",
		SubstBadSpecifier:    "Type specifier does not match argument type",
		SubstUnsupportedType: "Unsupported argument type",
		ArityInfo:            "Argument count information",
		ArityTooFew:          "Not enough arguments",
		ArityTooMany:         "Too many arguments",
		RenderInfo:           "Rendering information",
		RenderFailed:         "Rendering failed",
		RenderRetryMismatch:  "Rendering retry did not fit",
		RenderNoEngine:       "Unknown rendering engine",
	}

	codeKind = map[Code]Kind{
		ScanMissingTypeSpec:  KindMissingTypeSpec,
		ScanMalformedSpec:    KindMalformedSpec,
		ScanLengthTooLong:    KindInvalidLength,
		ScanInvalidLength:    KindInvalidLength,
		SubstBadLength:       KindTypeMismatch,
		SubstBadSpecifier:    KindTypeMismatch,
		SubstUnsupportedType: KindUnsupportedArgument,
		ArityTooFew:          KindArityMismatch,
		ArityTooMany:         KindArityMismatch,
		RenderFailed:         KindRenderFailure,
		RenderRetryMismatch:  KindRenderFailure,
		RenderNoEngine:       KindRenderFailure,
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("SCN%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SUB%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("ARG%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("RND%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

// Kind reports the error family the code belongs to.
func (c Code) Kind() Kind {
	return codeKind[c]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// ParseCode resolves an ID such as "SUB2002" back to its code.
func ParseCode(id string) (Code, bool) {
	for c := range codeDescription {
		if c.ID() == id {
			return c, true
		}
	}
	return UnknownCode, false
}
