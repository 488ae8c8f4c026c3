// Package subst turns one decomposed conversion and one typed argument into
// rendered text.
package subst

import (
	"cfmt/internal/ctype"
	"cfmt/internal/diag"
	"cfmt/internal/render"
	"cfmt/internal/scan"
)

// Resolved is a conversion after auto-deduction and validation.
type Resolved struct {
	// Format is the single-conversion format handed to the engine.
	Format string
	Arg    ctype.Arg
	Value  ctype.Value
}

// Resolve applies auto-deduction and checks the conversion against the
// argument's descriptor. A C string (or owned string) meeting %p is
// reinterpreted as a pointer first.
func Resolve(info *scan.Info, arg ctype.Arg) (Resolved, error) {
	if info.Spec == 'p' && (arg.Kind == ctype.KindCString || arg.Kind == ctype.KindString) {
		arg = arg.AsPointer()
	}

	d, ok := ctype.Describe(arg.Kind)
	if !ok {
		return Resolved{}, diag.Newf(diag.SubstUnsupportedType, "unsupported argument type %s", arg.Kind)
	}

	length, spec := info.Length, info.Spec
	if length == "" && spec == '?' {
		length, spec = d.Length, d.Default()
	}
	if length != d.Length {
		return Resolved{}, diag.Newf(diag.SubstBadLength, "bad length specifier %s for type %s", length, TypeName(arg.Kind))
	}
	if !d.Accepts(spec) {
		return Resolved{}, diag.Newf(diag.SubstBadSpecifier, "bad type specifier %c for type %s", spec, TypeName(arg.Kind))
	}

	v, _ := arg.Promote()
	buf := make([]byte, 0, len(info.Format)+len(length)+1)
	buf = append(buf, info.Format...)
	buf = append(buf, length...)
	buf = append(buf, spec)
	return Resolved{Format: string(buf), Arg: arg, Value: v}, nil
}

// Substitute resolves the conversion and renders it through e.
func Substitute(e render.Engine, info *scan.Info, arg ctype.Arg) (string, error) {
	r, err := Resolve(info, arg)
	if err != nil {
		return "", err
	}
	return render.Field(e, r.Format, r.Value)
}

// TypeName is the C name used in mismatch messages. Owned strings are
// passed as const char *, so they are reported as one.
func TypeName(k ctype.Kind) string {
	if k == ctype.KindString {
		return ctype.KindCString.String()
	}
	return k.String()
}
