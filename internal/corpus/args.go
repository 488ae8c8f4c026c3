package corpus

import (
	"fmt"
	"strconv"
	"strings"
	"unsafe"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"

	"cfmt"
)

// ArgOptions tweak how literals are read.
type ArgOptions struct {
	// NFC normalises str: and bytes: payloads to Unicode NFC.
	NFC bool
}

// ParseArg reads a typed argument literal of the form kind:value, e.g.
// int:5, ulong:0xff, double:3.14, char:a, str:Hello. The bare literal null
// is a NULL const char *.
func ParseArg(lit string, opts ArgOptions) (cfmt.Arg, error) {
	if lit == "null" {
		return cfmt.Of([]byte(nil)), nil
	}
	kind, val, ok := strings.Cut(lit, ":")
	if !ok {
		return cfmt.Arg{}, fmt.Errorf("argument %q: want kind:value", lit)
	}
	a, err := parseKind(strings.ToLower(kind), val, opts)
	if err != nil {
		return cfmt.Arg{}, fmt.Errorf("argument %q: %w", lit, err)
	}
	return a, nil
}

// ParseArgs reads a list of literals.
func ParseArgs(lits []string, opts ArgOptions) ([]cfmt.Arg, error) {
	out := make([]cfmt.Arg, 0, len(lits))
	for _, lit := range lits {
		a, err := ParseArg(lit, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func parseKind(kind, val string, opts ArgOptions) (cfmt.Arg, error) {
	switch kind {
	case "bool":
		b, err := strconv.ParseBool(val)
		return cfmt.Of(b), err
	case "char":
		if len(val) != 1 {
			return cfmt.Arg{}, fmt.Errorf("char wants exactly one byte, got %d", len(val))
		}
		return cfmt.Of(cfmt.Char(val[0])), nil
	case "i8", "schar":
		return signed[int8](val)
	case "i16", "short":
		return signed[int16](val)
	case "i32", "int":
		return signed[int32](val)
	case "long":
		return signed[int](val)
	case "i64", "llong":
		return signed[int64](val)
	case "u8", "uchar":
		return unsigned[uint8](val)
	case "u16", "ushort":
		return unsigned[uint16](val)
	case "u32", "uint":
		return unsigned[uint32](val)
	case "ulong":
		return unsigned[uint](val)
	case "u64", "ullong":
		return unsigned[uint64](val)
	case "f32", "float":
		f, err := strconv.ParseFloat(val, 32)
		return cfmt.Of(float32(f)), err
	case "f64", "double":
		f, err := strconv.ParseFloat(val, 64)
		return cfmt.Of(f), err
	case "ldouble":
		f, err := strconv.ParseFloat(val, 64)
		return cfmt.Of(cfmt.LongDouble(f)), err
	case "str":
		return cfmt.Of(text(val, opts)), nil
	case "bytes":
		return cfmt.Of([]byte(text(val, opts))), nil
	case "ptr":
		u, err := strconv.ParseUint(val, 0, 64)
		if err != nil {
			return cfmt.Arg{}, err
		}
		addr, err := safecast.Conv[uintptr](u)
		if err != nil {
			return cfmt.Arg{}, err
		}
		return cfmt.Of(unsafe.Pointer(addr)), nil //nolint:govet
	}
	return cfmt.Arg{}, fmt.Errorf("unknown kind %q", kind)
}

func signed[T int8 | int16 | int32 | int | int64](val string) (cfmt.Arg, error) {
	n, err := strconv.ParseInt(val, 0, 64)
	if err != nil {
		return cfmt.Arg{}, err
	}
	v, err := safecast.Conv[T](n)
	if err != nil {
		return cfmt.Arg{}, err
	}
	return cfmt.Of(v), nil
}

func unsigned[T uint8 | uint16 | uint32 | uint | uint64](val string) (cfmt.Arg, error) {
	n, err := strconv.ParseUint(val, 0, 64)
	if err != nil {
		return cfmt.Arg{}, err
	}
	v, err := safecast.Conv[T](n)
	if err != nil {
		return cfmt.Arg{}, err
	}
	return cfmt.Of(v), nil
}

func text(val string, opts ArgOptions) string {
	val = unescape(val)
	if opts.NFC {
		return norm.NFC.String(val)
	}
	return val
}

// unescape expands \n, \t, \\ and \0 so that literals can carry control
// bytes on a command line.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case '0':
			sb.WriteByte(0)
		case '\\':
			sb.WriteByte('\\')
		default:
			sb.WriteByte('\\')
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}
