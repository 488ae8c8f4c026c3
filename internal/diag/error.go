package diag

import (
	"fmt"
	"strings"
)

// Error is the single error type produced while formatting.
type Error struct {
	Code    Code
	Message string
	Pos     int // byte offset of the conversion in the template, -1 when unknown
	Arg     int // 1-based argument position, 0 when not tied to an argument
}

// New builds an error without position information.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, Pos: -1}
}

// Newf is New with a format string.
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// At records the template offset of the offending conversion.
func (e *Error) At(pos int) *Error {
	e.Pos = pos
	return e
}

// ForArg records the 1-based argument position.
func (e *Error) ForArg(n int) *Error {
	e.Arg = n
	return e
}

// Kind reports the error family.
func (e *Error) Kind() Kind {
	return e.Code.Kind()
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Code.ID())
	sb.WriteString(": ")
	sb.WriteString(e.Message)

	var where []string
	if e.Arg > 0 {
		where = append(where, fmt.Sprintf("argument %d", e.Arg))
	}
	if e.Pos >= 0 {
		where = append(where, fmt.Sprintf("offset %d", e.Pos))
	}
	if len(where) > 0 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(where, ", "))
		sb.WriteString(")")
	}
	return sb.String()
}

// Is matches another *Error by code, or a Kind by family.
func (e *Error) Is(target error) bool {
	switch t := target.(type) {
	case *Error:
		return t.Code == e.Code
	case Kind:
		return t != KindNone && t == e.Code.Kind()
	}
	return false
}
