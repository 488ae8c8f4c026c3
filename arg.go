package cfmt

import (
	"reflect"
	"unsafe"

	"cfmt/internal/ctype"
	"cfmt/internal/diag"
)

// Char is a C char. It renders with %c.
type Char byte

// LongDouble is a C long double. Go has no wider float, so the value carries
// double precision and is widened when handed to the C library.
type LongDouble float64

// Supported lists the Go types that map onto a C argument type. []byte is a
// const char * (nil is NULL), string is an owned string coerced to
// const char *, and unsafe.Pointer is a const void *.
type Supported interface {
	bool | Char |
		int8 | int16 | int32 | int | int64 |
		uint8 | uint16 | uint32 | uint | uintptr | uint64 |
		float32 | float64 | LongDouble |
		[]byte | string | unsafe.Pointer
}

// Arg is one classified argument.
type Arg struct {
	c ctype.Arg
}

// Kind reports the C type the argument is passed as.
func (a Arg) Kind() string {
	return a.c.Kind.String()
}

// Of classifies v at compile time.
func Of[T Supported](v T) Arg {
	a, _ := classifyKnown(any(v))
	return a
}

// classifyKnown handles the exact Go carriers. ok is false for anything else.
func classifyKnown(v any) (Arg, bool) {
	var c ctype.Arg
	switch x := v.(type) {
	case Arg:
		return x, true
	case bool:
		c = ctype.Arg{Kind: ctype.KindBool}
		if x {
			c.Int = 1
		}
	case Char:
		c = ctype.Arg{Kind: ctype.KindChar, Int: int64(x)}
	case int8:
		c = ctype.Arg{Kind: ctype.KindSChar, Int: int64(x)}
	case int16:
		c = ctype.Arg{Kind: ctype.KindShort, Int: int64(x)}
	case int32:
		c = ctype.Arg{Kind: ctype.KindInt, Int: int64(x)}
	case int:
		c = ctype.Arg{Kind: ctype.KindLong, Int: int64(x)}
	case int64:
		c = ctype.Arg{Kind: ctype.KindLongLong, Int: x}
	case uint8:
		c = ctype.Arg{Kind: ctype.KindUChar, Uint: uint64(x)}
	case uint16:
		c = ctype.Arg{Kind: ctype.KindUShort, Uint: uint64(x)}
	case uint32:
		c = ctype.Arg{Kind: ctype.KindUInt, Uint: uint64(x)}
	case uint:
		c = ctype.Arg{Kind: ctype.KindULong, Uint: uint64(x)}
	case uintptr:
		c = ctype.Arg{Kind: ctype.KindULong, Uint: uint64(x)}
	case uint64:
		c = ctype.Arg{Kind: ctype.KindULongLong, Uint: x}
	case float32:
		c = ctype.Arg{Kind: ctype.KindFloat, Float: float64(x)}
	case float64:
		c = ctype.Arg{Kind: ctype.KindDouble, Float: x}
	case LongDouble:
		c = ctype.Arg{Kind: ctype.KindLongDouble, Float: float64(x)}
	case []byte:
		c = ctype.Arg{Kind: ctype.KindCString, Str: string(x), Nil: x == nil}
		if len(x) > 0 {
			c.Addr = uintptr(unsafe.Pointer(unsafe.SliceData(x)))
		}
	case string:
		c = ctype.Arg{Kind: ctype.KindString, Str: x}
		if len(x) > 0 {
			c.Addr = uintptr(unsafe.Pointer(unsafe.StringData(x)))
		}
	case unsafe.Pointer:
		c = ctype.Arg{Kind: ctype.KindPointer, Addr: uintptr(x)}
	default:
		return Arg{}, false
	}
	return Arg{c: c}, true
}

// classify accepts the exact carriers, named types whose underlying kind is
// supported, and any Go pointer as const void *.
func classify(v any) (Arg, bool) {
	if a, ok := classifyKnown(v); ok {
		return a, true
	}
	if v == nil {
		return Arg{}, false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return classifyKnown(rv.Bool())
	case reflect.Int8:
		return classifyKnown(int8(rv.Int()))
	case reflect.Int16:
		return classifyKnown(int16(rv.Int()))
	case reflect.Int32:
		return classifyKnown(int32(rv.Int()))
	case reflect.Int:
		return classifyKnown(int(rv.Int()))
	case reflect.Int64:
		return classifyKnown(rv.Int())
	case reflect.Uint8:
		return classifyKnown(uint8(rv.Uint()))
	case reflect.Uint16:
		return classifyKnown(uint16(rv.Uint()))
	case reflect.Uint32:
		return classifyKnown(uint32(rv.Uint()))
	case reflect.Uint, reflect.Uintptr:
		return classifyKnown(uint(rv.Uint()))
	case reflect.Uint64:
		return classifyKnown(rv.Uint())
	case reflect.Float32:
		return classifyKnown(float32(rv.Float()))
	case reflect.Float64:
		return classifyKnown(rv.Float())
	case reflect.String:
		return classifyKnown(rv.String())
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return classifyKnown(rv.Bytes())
		}
	case reflect.Pointer, reflect.UnsafePointer:
		return Arg{c: ctype.Arg{Kind: ctype.KindPointer, Addr: rv.Pointer()}}, true
	}
	return Arg{}, false
}

// classifyAll checks every argument before anything is written.
func classifyAll(args []any) ([]Arg, error) {
	out := make([]Arg, len(args))
	for i, v := range args {
		a, ok := classify(v)
		if !ok {
			return nil, unsupported(v, i+1)
		}
		out[i] = a
	}
	return out, nil
}

func unsupported(v any, pos int) error {
	name := "nil"
	if v != nil {
		name = reflect.TypeOf(v).String()
	}
	return diag.Newf(diag.SubstUnsupportedType, "unsupported argument type %s", name).ForArg(pos)
}
