package testkit

import (
	"fmt"
	"strings"

	"cfmt/internal/scan"
)

// CheckSplitInvariants runs the decomposition invariants on the output of
// scan.Split:
// 1) every length is empty or one of scan.ValidLengths
// 2) every type character is one of scan.SpecChars
// 3) every format is '%' followed by flags, width and an optional precision
// 4) each part's Pos points at a '%' of the template
// 5) re-escaping the literal text and joining it with the conversions
// reproduces the template byte for byte
func CheckSplitInvariants(template string, parts []scan.Part, tail string) error {
	var rebuilt strings.Builder
	for i, p := range parts {
		if !scan.IsValidLength(p.Length) {
			return fmt.Errorf("part %d: invalid length %q", i, p.Length)
		}
		if strings.IndexByte(scan.SpecChars, p.Spec) < 0 {
			return fmt.Errorf("part %d: invalid type character %q", i, p.Spec)
		}
		if err := checkFormat(p.Format); err != nil {
			return fmt.Errorf("part %d: %w", i, err)
		}
		if p.Pos < 0 || p.Pos >= len(template) || template[p.Pos] != '%' {
			return fmt.Errorf("part %d: position %d does not point at '%%'", i, p.Pos)
		}
		rebuilt.WriteString(Escape(p.Prefix))
		if rebuilt.Len() != p.Pos {
			return fmt.Errorf("part %d: position %d, rebuilt prefix ends at %d", i, p.Pos, rebuilt.Len())
		}
		rebuilt.WriteString(p.Conversion())
	}
	rebuilt.WriteString(Escape(tail))
	if got := rebuilt.String(); got != template {
		return fmt.Errorf("rebuilt template %q differs from %q", got, template)
	}
	return nil
}

// Escape doubles every '%' so that s scans back as pure literal text.
func Escape(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}

func checkFormat(f string) error {
	if f == "" || f[0] != '%' {
		return fmt.Errorf("format %q does not start with '%%'", f)
	}
	i := 1
	for i < len(f) && strings.IndexByte(scan.FlagChars, f[i]) >= 0 {
		i++
	}
	for i < len(f) && f[i] >= '0' && f[i] <= '9' {
		i++
	}
	if i < len(f) && f[i] == '.' {
		i++
		for i < len(f) && f[i] >= '0' && f[i] <= '9' {
			i++
		}
	}
	if i != len(f) {
		return fmt.Errorf("format %q has unexpected byte %q at %d", f, f[i], i)
	}
	return nil
}
