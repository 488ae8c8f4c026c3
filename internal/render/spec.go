package render

import (
	"math"
	"strconv"
)

// spec is a parsed single conversion as assembled by the substituter.
type spec struct {
	minus, plus, space, sharp, zero bool

	wid         int
	prec        int
	precPresent bool

	length string
	verb   byte
}

// parseSpec parses "%[flags][width][.prec][length]verb". ok is false when the
// text is not a single conversion or a number exceeds INT_MAX, the case in
// which snprintf fails with EOVERFLOW.
func parseSpec(format string) (sp spec, ok bool) {
	if len(format) < 2 || format[0] != '%' {
		return sp, false
	}
	i := 1
flags:
	for ; i < len(format); i++ {
		switch format[i] {
		case '-':
			sp.minus = true
		case '+':
			sp.plus = true
		case ' ':
			sp.space = true
		case '#':
			sp.sharp = true
		case '0':
			sp.zero = true
		default:
			break flags
		}
	}
	if sp.wid, i, ok = parseNum(format, i); !ok {
		return sp, false
	}
	if i < len(format) && format[i] == '.' {
		sp.precPresent = true
		if sp.prec, i, ok = parseNum(format, i+1); !ok {
			return sp, false
		}
	}
	start := i
	for i < len(format) && isLengthByte(format[i]) {
		i++
	}
	sp.length = format[start:i]
	if i != len(format)-1 {
		return sp, false
	}
	sp.verb = format[i]
	return sp, true
}

func parseNum(s string, i int) (n, next int, ok bool) {
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		if n > math.MaxInt32 {
			return 0, i, false
		}
	}
	return n, i, true
}

func isLengthByte(b byte) bool {
	switch b {
	case 'h', 'l', 'j', 'z', 't', 'L':
		return true
	}
	return false
}

// intBits is the width in bits the length modifier gives an integer
// conversion. long, size_t and ptrdiff_t follow the Go int size.
func intBits(length string) uint {
	switch length {
	case "hh":
		return 8
	case "h":
		return 16
	case "":
		return 32
	case "l", "z", "t":
		return strconv.IntSize
	default:
		return 64
	}
}
