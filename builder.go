package cfmt

import (
	"bytes"
	"io"
)

// Builder collects arguments one at a time and formats them once complete.
// Arity is checked by the terminal String or WriteTo call.
type Builder struct {
	p    *Printer
	tmpl string
	args []Arg
	err  error
}

// NewBuilder starts a builder on the default Printer.
func NewBuilder(tmpl string) *Builder {
	return Default().NewBuilder(tmpl)
}

// NewBuilder starts a builder on p.
func (p *Printer) NewBuilder(tmpl string) *Builder {
	return &Builder{p: p, tmpl: tmpl}
}

// Add appends a typed argument.
func (b *Builder) Add(a Arg) *Builder {
	b.args = append(b.args, a)
	return b
}

// AddAny appends an untyped argument. An unsupported value is remembered
// and reported by the terminal call.
func (b *Builder) AddAny(v any) *Builder {
	if b.err != nil {
		return b
	}
	a, ok := classify(v)
	if !ok {
		b.err = unsupported(v, len(b.args)+1)
		return b
	}
	return b.Add(a)
}

// Len reports how many arguments have been added.
func (b *Builder) Len() int {
	return len(b.args)
}

// String formats the template with the collected arguments.
func (b *Builder) String() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	return b.p.Format(b.tmpl, b.args...)
}

// WriteTo formats into w. Unlike io.WriterTo it does not stream: output is
// built first so that a failing argument leaves w untouched.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	if b.err != nil {
		return 0, b.err
	}
	var buf bytes.Buffer
	if _, err := b.p.run(&buf, b.tmpl, b.args); err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}
