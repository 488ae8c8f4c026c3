// Package cfmt formats C printf templates against typed Go arguments and
// produces exactly what the C library's snprintf would.
//
// Every conversion is checked against the C type its argument is passed as:
// "%d" with a string, or "%ld" with an int32, is an error rather than garbage.
// The type character '?' picks the argument's default conversion, so "%?"
// works for any argument and "%-8?" keeps flags, width and precision.
//
//	s, err := cfmt.Format("%-5s|%08.3f", cfmt.Of("Hi"), cfmt.Of(3.14))
//	// s == "Hi   |0003.140"
//
// Go types map onto C types as follows: bool, Char (char), int8 (signed
// char), int16 (short), int32 (int), int (long), int64 (long long), their
// unsigned counterparts, uintptr (unsigned long), float32 (float, promoted to
// double), float64 (double), LongDouble, []byte (const char *), string
// (coerced to const char *) and unsafe.Pointer (const void *). Of accepts only
// these types. Sprintf and friends accept any value, including named types
// with a supported underlying kind and arbitrary pointers, and reject the
// rest before writing anything.
//
// Rendering goes through the host C library when the package is built with
// cgo, and through a pure Go implementation of the C99 conversions otherwise.
package cfmt

import (
	"io"
	"os"
	"sync"

	"cfmt/internal/render"
)

var defaultPrinter = sync.OnceValue(func() *Printer {
	p, err := New()
	if err != nil {
		// the Go engine is always registered
		panic(err)
	}
	return p
})

// Default returns the Printer used by the package-level functions.
func Default() *Printer {
	return defaultPrinter()
}

// Format renders tmpl with args.
func Format(tmpl string, args ...Arg) (string, error) {
	return Default().Format(tmpl, args...)
}

// FormatTo writes tmpl rendered with args to w.
func FormatTo(w io.Writer, tmpl string, args ...Arg) (int, error) {
	return Default().FormatTo(w, tmpl, args...)
}

// Sprintf renders tmpl with untyped args.
func Sprintf(tmpl string, args ...any) (string, error) {
	return Default().Sprintf(tmpl, args...)
}

// Fprintf writes tmpl rendered with untyped args to w.
func Fprintf(w io.Writer, tmpl string, args ...any) (int, error) {
	return Default().Fprintf(w, tmpl, args...)
}

// Printf writes tmpl rendered with untyped args to standard output.
func Printf(tmpl string, args ...any) (int, error) {
	return Default().Fprintf(os.Stdout, tmpl, args...)
}

// Engines lists the rendering engines compiled into the binary.
func Engines() []string {
	return render.Names()
}
