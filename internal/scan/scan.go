package scan

import (
	"strings"

	"cfmt/internal/diag"
)

const (
	// FlagChars may appear in any order and number right after '%'.
	FlagChars = "+- #0"
	// LengthChars make up length modifiers.
	LengthChars = "hljztL"
	// SpecChars are the accepted type characters; '?' asks for the
	// argument's default. 'n' is deliberately absent.
	SpecChars = "diuoxXfFeEgGaAcsp?"
)

// ValidLengths lists every accepted length modifier.
var ValidLengths = [...]string{"hh", "h", "l", "ll", "j", "z", "t", "L"}

// IsValidLength reports whether s is empty or one of ValidLengths.
func IsValidLength(s string) bool {
	if s == "" {
		return true
	}
	for _, l := range ValidLengths {
		if l == s {
			return true
		}
	}
	return false
}

// Next decomposes s up to its first conversion. It returns false when s holds
// only literal text, in which case info.Prefix is the whole of s with every
// %% collapsed. On true, info describes the first conversion and info.Suffix
// is what follows it.
func Next(info *Info, s string) (bool, error) {
	info.Reset()
	c := NewCursor(s)

	for !c.EOF() {
		if c.Peek() != '%' {
			info.Prefix = append(info.Prefix, c.Bump())
			continue
		}
		if b0, b1, ok := c.Peek2(); ok && b0 == '%' && b1 == '%' {
			info.Prefix = append(info.Prefix, '%')
			c.Off += 2
			continue
		}
		break
	}
	if c.EOF() {
		return false, nil
	}

	start := c.Mark()
	info.Pos = int(start)
	c.Bump()

	c.EatRun(FlagChars)
	c.EatDigits()
	if c.Eat('.') {
		c.EatDigits()
	}
	lengthAt := c.Mark()
	c.EatRun(LengthChars)
	length := c.From(lengthAt)

	if c.EOF() {
		return false, diag.New(diag.ScanMissingTypeSpec, "zero characters for type specifier").At(info.Pos)
	}
	if strings.IndexByte(SpecChars, c.Peek()) < 0 {
		return false, diag.Newf(diag.ScanMalformedSpec, "unexpected character %q in conversion specification", c.Peek()).At(info.Pos)
	}
	if len(length) > 2 {
		return false, diag.New(diag.ScanLengthTooLong, "length specifier must be 0-2 characters").At(info.Pos)
	}
	if !IsValidLength(length) {
		return false, diag.Newf(diag.ScanInvalidLength, "invalid length specifier %s", length).At(info.Pos)
	}

	info.Format = append(info.Format, s[int(start):int(lengthAt)]...)
	info.Length = length
	info.Spec = c.Bump()
	info.Suffix = s[c.Off:]
	return true, nil
}

// Part is a detached copy of one decomposition step.
type Part struct {
	Prefix string
	Format string
	Length string
	Spec   byte
	// Pos is the offset of the conversion in the original template.
	Pos int
}

// Split decomposes a whole template. It returns one Part per conversion and
// the trailing literal text. Error offsets refer to the original template.
func Split(template string) ([]Part, string, error) {
	info := NewInfo()
	var parts []Part
	rest := template
	base := 0
	for {
		found, err := Next(info, rest)
		if err != nil {
			if de, ok := err.(*diag.Error); ok && de.Pos >= 0 {
				de.Pos += base
			}
			return parts, "", err
		}
		if !found {
			return parts, string(info.Prefix), nil
		}
		parts = append(parts, Part{
			Prefix: string(info.Prefix),
			Format: string(info.Format),
			Length: info.Length,
			Spec:   info.Spec,
			Pos:    base + info.Pos,
		})
		base += len(rest) - len(info.Suffix)
		rest = info.Suffix
	}
}

// Conversion returns the full conversion text of the part.
func (p Part) Conversion() string {
	return p.Format + p.Length + string(p.Spec)
}
