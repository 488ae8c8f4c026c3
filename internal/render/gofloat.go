package render

import (
	"bytes"
	"math"
	"strconv"
)

const mantHexDigits = 13 // 52 fraction bits of a double

func appendFloat(dst []byte, sp *spec, f float64) []byte {
	upper := sp.verb == 'F' || sp.verb == 'E' || sp.verb == 'G' || sp.verb == 'A'
	prefix := signPrefix(sp, math.Signbit(f))

	if math.IsInf(f, 0) || math.IsNaN(f) {
		body := []byte("inf")
		if math.IsNaN(f) {
			body = []byte("nan")
		}
		if upper {
			body = bytes.ToUpper(body)
		}
		return pad(dst, sp, prefix, body, false)
	}

	abs := math.Abs(f)
	var body []byte
	switch sp.verb {
	case 'f', 'F':
		body = formatFixed(abs, precOr(sp, 6), sp.sharp)
	case 'e', 'E':
		body = formatExp(abs, precOr(sp, 6), sp.sharp)
	case 'g', 'G':
		body = formatGeneral(abs, precOr(sp, 6), sp.sharp)
	case 'a', 'A':
		prefix = append(prefix, '0', 'x')
		body = formatHex(abs, sp)
	}
	if upper {
		prefix = bytes.ToUpper(prefix)
		body = bytes.ToUpper(body)
	}
	return pad(dst, sp, prefix, body, true)
}

func precOr(sp *spec, def int) int {
	if sp.precPresent {
		return sp.prec
	}
	return def
}

func formatFixed(abs float64, prec int, sharp bool) []byte {
	b := strconv.AppendFloat(nil, abs, 'f', prec, 64)
	if sharp && prec == 0 {
		b = append(b, '.')
	}
	return b
}

func formatExp(abs float64, prec int, sharp bool) []byte {
	b := strconv.AppendFloat(nil, abs, 'e', prec, 64)
	if sharp && prec == 0 {
		b = insertPoint(b)
	}
	return b
}

// formatGeneral implements %g: with P significant digits and X the decimal
// exponent %e would print, use %f when P > X >= -4 and %e otherwise, then
// drop trailing zeros unless '#' is set.
func formatGeneral(abs float64, prec int, sharp bool) []byte {
	if prec == 0 {
		prec = 1
	}
	x := 0
	if abs != 0 {
		e := strconv.AppendFloat(nil, abs, 'e', prec-1, 64)
		x, _ = strconv.Atoi(string(e[bytes.IndexByte(e, 'e')+1:]))
	}

	var b []byte
	if prec > x && x >= -4 {
		b = strconv.AppendFloat(nil, abs, 'f', prec-1-x, 64)
	} else {
		b = strconv.AppendFloat(nil, abs, 'e', prec-1, 64)
	}
	if sharp {
		if bytes.IndexByte(b, '.') < 0 {
			b = insertPoint(b)
		}
		return b
	}
	return trimFraction(b)
}

// insertPoint adds a decimal point after the mantissa.
func insertPoint(b []byte) []byte {
	i := bytes.IndexByte(b, 'e')
	if i < 0 {
		return append(b, '.')
	}
	out := make([]byte, 0, len(b)+1)
	out = append(out, b[:i]...)
	out = append(out, '.')
	return append(out, b[i:]...)
}

// trimFraction removes trailing zeros and a dangling point from the mantissa.
func trimFraction(b []byte) []byte {
	exp := []byte(nil)
	if i := bytes.IndexByte(b, 'e'); i >= 0 {
		exp = append(exp, b[i:]...)
		b = b[:i]
	}
	if bytes.IndexByte(b, '.') >= 0 {
		b = bytes.TrimRight(b, "0")
		b = bytes.TrimSuffix(b, []byte{'.'})
	}
	return append(b, exp...)
}

// formatHex renders the part of %a after "0x" the way glibc does for a
// double: the leading digit is 1 for normal and 0 for subnormal values, and a
// rounding carry bumps the leading digit instead of renormalising.
func formatHex(abs float64, sp *spec) []byte {
	bits := math.Float64bits(abs)
	biased := int(bits>>52) & 0x7ff
	mant := bits & (1<<52 - 1)

	var lead uint64
	exp := 0
	switch {
	case biased == 0 && mant == 0:
	case biased == 0:
		exp = -1022
	default:
		lead = 1
		exp = biased - 1023
	}

	ndigits := mantHexDigits
	if sp.precPresent && sp.prec < mantHexDigits {
		shift := uint(4 * (mantHexDigits - sp.prec))
		kept := mant >> shift
		rem := mant & (1<<shift - 1)
		half := uint64(1) << (shift - 1)
		last := kept
		if sp.prec == 0 {
			last = lead
		}
		if rem > half || (rem == half && last&1 == 1) {
			kept++
			if kept>>uint(4*sp.prec) != 0 {
				kept &= 1<<uint(4*sp.prec) - 1
				lead++
			}
		}
		mant = kept
		ndigits = sp.prec
	}

	frac := []byte(nil)
	if ndigits > 0 {
		frac = strconv.AppendUint(nil, mant, 16)
		frac = append(bytes.Repeat([]byte{'0'}, ndigits-len(frac)), frac...)
	}
	if !sp.precPresent {
		frac = bytes.TrimRight(frac, "0")
	} else if sp.prec > mantHexDigits {
		frac = append(frac, bytes.Repeat([]byte{'0'}, sp.prec-mantHexDigits)...)
	}

	b := strconv.AppendUint(nil, lead, 16)
	if len(frac) > 0 || sp.sharp {
		b = append(b, '.')
	}
	b = append(b, frac...)
	b = append(b, 'p')
	if exp >= 0 {
		b = append(b, '+')
	}
	return strconv.AppendInt(b, int64(exp), 10)
}
