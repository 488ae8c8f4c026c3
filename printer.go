package cfmt

import (
	"bytes"
	"io"
	"strconv"

	"cfmt/internal/diag"
	"cfmt/internal/render"
	"cfmt/internal/scan"
	"cfmt/internal/subst"
	"cfmt/internal/trace"
)

// Printer formats templates with a fixed engine and tracer. It holds no
// per-call state and is safe for concurrent use.
type Printer struct {
	engine render.Engine
	tracer trace.Tracer
}

// Option configures a Printer.
type Option func(*Printer) error

// WithEngine selects the rendering engine by name: "libc", "go" or "auto".
func WithEngine(name string) Option {
	return func(p *Printer) error {
		e, err := render.Lookup(name)
		if err != nil {
			return err
		}
		p.engine = e
		return nil
	}
}

// WithTracer records call, conversion and render spans on t.
func WithTracer(t trace.Tracer) Option {
	return func(p *Printer) error {
		if t == nil {
			t = trace.Nop
		}
		p.tracer = t
		return nil
	}
}

// New returns a Printer using the auto engine unless an option says otherwise.
func New(opts ...Option) (*Printer, error) {
	p := &Printer{tracer: trace.Nop}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	if p.engine == nil {
		e, err := render.Lookup(render.EngineAuto)
		if err != nil {
			return nil, err
		}
		p.engine = e
	}
	return p, nil
}

// Engine reports the name of the engine in use.
func (p *Printer) Engine() string {
	return p.engine.Name()
}

// Format renders tmpl with args. On error nothing is returned.
func (p *Printer) Format(tmpl string, args ...Arg) (string, error) {
	var buf bytes.Buffer
	buf.Grow(len(tmpl))
	if _, err := p.run(&buf, tmpl, args); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatTo writes tmpl rendered with args to w, one literal run plus field
// at a time. Output written before an error stays written.
func (p *Printer) FormatTo(w io.Writer, tmpl string, args ...Arg) (int, error) {
	return p.run(w, tmpl, args)
}

// Sprintf is Format for untyped arguments. Every argument is classified
// before formatting starts.
func (p *Printer) Sprintf(tmpl string, args ...any) (string, error) {
	typed, err := classifyAll(args)
	if err != nil {
		return "", err
	}
	return p.Format(tmpl, typed...)
}

// Fprintf is FormatTo for untyped arguments. An unsupported argument is
// reported before anything is written.
func (p *Printer) Fprintf(w io.Writer, tmpl string, args ...any) (int, error) {
	typed, err := classifyAll(args)
	if err != nil {
		return 0, err
	}
	return p.run(w, tmpl, typed)
}

func (p *Printer) run(w io.Writer, tmpl string, args []Arg) (written int, err error) {
	call := trace.Begin(p.tracer, trace.ScopeCall, "format", 0)
	call.WithExtra("engine", p.engine.Name()).WithExtra("args", strconv.Itoa(len(args)))
	defer func() {
		if err != nil {
			call.Fail(err)
			return
		}
		call.End(strconv.Itoa(written) + " bytes")
	}()

	info := scan.NewInfo()
	rest, base := tmpl, 0
	for i := 0; ; i++ {
		found, err := scan.Next(info, rest)
		if err != nil {
			if de, ok := err.(*diag.Error); ok && de.Pos >= 0 {
				de.Pos += base
			}
			return written, err
		}
		if !found {
			n, err := w.Write(info.Prefix)
			written += n
			if err != nil {
				return written, err
			}
			if i < len(args) {
				return written, diag.New(diag.ArityTooMany, "too many arguments to format string").ForArg(i + 1)
			}
			return written, nil
		}

		pos := base + info.Pos
		if i >= len(args) {
			return written, diag.New(diag.ArityTooFew, "not enough arguments given to format string").At(pos)
		}

		field, err := p.substitute(call.ID(), info, args[i])
		if err != nil {
			if de, ok := err.(*diag.Error); ok {
				de.At(pos).ForArg(i + 1)
			}
			return written, err
		}

		info.Prefix = append(info.Prefix, field...)
		n, err := w.Write(info.Prefix)
		written += n
		if err != nil {
			return written, err
		}

		base += len(rest) - len(info.Suffix)
		rest = info.Suffix
	}
}

func (p *Printer) substitute(parent uint64, info *scan.Info, arg Arg) (string, error) {
	span := trace.Begin(p.tracer, trace.ScopeSpec, "spec "+info.Conversion(), parent)
	span.WithExtra("type", subst.TypeName(arg.c.Kind))

	field, err := subst.Substitute(render.Traced(p.engine, p.tracer, span.ID()), info, arg.c)
	if err != nil {
		span.Fail(err)
		return "", err
	}
	span.End(strconv.Itoa(len(field)) + " bytes")
	return field, nil
}
