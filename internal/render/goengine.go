package render

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"cfmt/internal/ctype"
)

// goEngine reimplements the C99 conversions in Go. It is always registered
// and serves builds without cgo.
type goEngine struct{}

func init() {
	Register(goEngine{})
}

func (goEngine) Name() string { return EngineGo }

func (goEngine) Snprintf(buf []byte, format string, v ctype.Value) int {
	out, ok := Append(nil, format, v)
	if !ok || len(out) > math.MaxInt32 {
		return -1
	}
	if len(buf) > 0 {
		n := copy(buf[:len(buf)-1], out)
		buf[n] = 0
	}
	return len(out)
}

// Append appends the rendering of a single conversion to dst. ok is false
// when format is not a single conversion the engine understands.
func Append(dst []byte, format string, v ctype.Value) (out []byte, ok bool) {
	sp, ok := parseSpec(format)
	if !ok {
		return dst, false
	}
	bits := intBits(sp.length)
	switch sp.verb {
	case 'd', 'i':
		x := signExtend(valueBits(v), bits)
		return appendInt(dst, &sp, x < 0, absInt(x), 10, false, true), true
	case 'u':
		return appendInt(dst, &sp, false, truncBits(valueBits(v), bits), 10, false, false), true
	case 'o':
		return appendInt(dst, &sp, false, truncBits(valueBits(v), bits), 8, false, false), true
	case 'x', 'X':
		return appendInt(dst, &sp, false, truncBits(valueBits(v), bits), 16, sp.verb == 'X', false), true
	case 'c':
		return pad(dst, &sp, nil, []byte{byte(valueBits(v))}, false), true
	case 's':
		return appendCString(dst, &sp, v), true
	case 'p':
		return appendPointer(dst, &sp, v.Uint), true
	case 'f', 'F', 'e', 'E', 'g', 'G', 'a', 'A':
		return appendFloat(dst, &sp, v.Float), true
	}
	return dst, false
}

func valueBits(v ctype.Value) uint64 {
	if v.Promo.Signed() {
		return uint64(v.Int)
	}
	return v.Uint
}

func signExtend(u uint64, bits uint) int64 {
	shift := 64 - bits
	return int64(u<<shift) >> shift
}

func truncBits(u uint64, bits uint) uint64 {
	if bits >= 64 {
		return u
	}
	return u & (1<<bits - 1)
}

func absInt(x int64) uint64 {
	if x < 0 {
		return -uint64(x)
	}
	return uint64(x)
}

// appendInt formats an integer the way C does: precision is a minimum digit
// count and disables the 0 flag, '#' adds a leading 0 for octal and 0x for
// non-zero hex.
func appendInt(dst []byte, sp *spec, neg bool, mag uint64, base int, upper, signed bool) []byte {
	var digits []byte
	if !sp.precPresent || sp.prec != 0 || mag != 0 {
		digits = strconv.AppendUint(make([]byte, 0, 24), mag, base)
		if upper {
			digits = bytes.ToUpper(digits)
		}
	}
	if sp.precPresent && len(digits) < sp.prec {
		digits = append(bytes.Repeat([]byte{'0'}, sp.prec-len(digits)), digits...)
	}
	if sp.sharp && base == 8 && (len(digits) == 0 || digits[0] != '0') {
		digits = append([]byte{'0'}, digits...)
	}

	var prefix []byte
	if signed {
		prefix = signPrefix(sp, neg)
	}
	if sp.sharp && base == 16 && mag != 0 {
		if upper {
			prefix = append(prefix, "0X"...)
		} else {
			prefix = append(prefix, "0x"...)
		}
	}
	return pad(dst, sp, prefix, digits, !sp.precPresent)
}

func signPrefix(sp *spec, neg bool) []byte {
	switch {
	case neg:
		return []byte{'-'}
	case sp.plus:
		return []byte{'+'}
	case sp.space:
		return []byte{' '}
	}
	return nil
}

func appendCString(dst []byte, sp *spec, v ctype.Value) []byte {
	var s string
	if v.Nil {
		// glibc prints "(null)" unless the precision cuts it short.
		if !sp.precPresent || sp.prec >= len("(null)") {
			s = "(null)"
		}
	} else {
		s = v.Str
		if i := strings.IndexByte(s, 0); i >= 0 {
			s = s[:i]
		}
		if sp.precPresent && sp.prec < len(s) {
			s = s[:sp.prec]
		}
	}
	return pad(dst, sp, nil, []byte(s), false)
}

func appendPointer(dst []byte, sp *spec, addr uint64) []byte {
	if addr == 0 {
		return pad(dst, sp, nil, []byte("(nil)"), false)
	}
	p := *sp
	p.sharp = true
	p.plus, p.space = false, false
	return appendInt(dst, &p, false, addr, 16, false, false)
}

// pad lays out prefix and body within the field width. Zero padding goes
// between the two and only applies to numeric conversions.
func pad(dst []byte, sp *spec, prefix, body []byte, zeroOK bool) []byte {
	fill := sp.wid - len(prefix) - len(body)
	switch {
	case fill <= 0:
		dst = append(dst, prefix...)
		dst = append(dst, body...)
	case sp.minus:
		dst = append(dst, prefix...)
		dst = append(dst, body...)
		dst = appendRepeat(dst, ' ', fill)
	case sp.zero && zeroOK:
		dst = append(dst, prefix...)
		dst = appendRepeat(dst, '0', fill)
		dst = append(dst, body...)
	default:
		dst = appendRepeat(dst, ' ', fill)
		dst = append(dst, prefix...)
		dst = append(dst, body...)
	}
	return dst
}

func appendRepeat(dst []byte, b byte, n int) []byte {
	for ; n > 0; n-- {
		dst = append(dst, b)
	}
	return dst
}
