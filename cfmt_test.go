package cfmt_test

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
	"unsafe"

	"cfmt"
	"cfmt/internal/trace"
)

func printers(t *testing.T) map[string]*cfmt.Printer {
	t.Helper()
	out := map[string]*cfmt.Printer{}
	for _, name := range cfmt.Engines() {
		p, err := cfmt.New(cfmt.WithEngine(name))
		if err != nil {
			t.Fatalf("New(%s): %v", name, err)
		}
		out[name] = p
	}
	return out
}

func TestSeedScenarios(t *testing.T) {
	at260 := strings.Repeat("@", 260)
	tests := []struct {
		name string
		tmpl string
		args []cfmt.Arg
		want string
		err  error
	}{
		{"string", "%s", []cfmt.Arg{cfmt.Of("Hello")}, "Hello", nil},
		{"left justify", "%-5s|", []cfmt.Arg{cfmt.Of("Hi")}, "Hi   |", nil},
		{"escape", "%%", nil, "%", nil},
		{"escape then int", "%%%d", []cfmt.Arg{cfmt.Of(int32(5))}, "%5", nil},
		{"zero padded float", "%08.3f", []cfmt.Arg{cfmt.Of(3.14)}, "0003.140", nil},
		{"auto", "[%?]", []cfmt.Arg{cfmt.Of(int32(42))}, "[42]", nil},
		{"long prefix", at260 + "%s", []cfmt.Arg{cfmt.Of("X")}, at260 + "X", nil},
		{"byte string as int", "%d", []cfmt.Arg{cfmt.Of([]byte("oops"))}, "", cfmt.ErrTypeMismatch},
		{"too few", "%d %d", []cfmt.Arg{cfmt.Of(int32(1))}, "", cfmt.ErrTooFewArgs},
		{"too many", "%d", []cfmt.Arg{cfmt.Of(int32(1)), cfmt.Of(int32(2))}, "", cfmt.ErrTooManyArgs},
	}
	for name, p := range printers(t) {
		for _, tt := range tests {
			got, err := p.Format(tt.tmpl, tt.args...)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("%s/%s: want error %v, got %v", name, tt.name, tt.err, err)
				}
				if got != "" {
					t.Fatalf("%s/%s: want no output on error, got %q", name, tt.name, got)
				}
				continue
			}
			if err != nil {
				t.Fatalf("%s/%s: unexpected error: %v", name, tt.name, err)
			}
			if got != tt.want {
				t.Fatalf("%s/%s: want %q, got %q", name, tt.name, tt.want, got)
			}
		}
	}
}

func TestBoundaryWidths(t *testing.T) {
	for name, p := range printers(t) {
		for width := 254; width <= 260; width++ {
			for _, lead := range []string{"", "@"} {
				tmpl := lead + "%" + itoa(width) + "d"
				got, err := p.Format(tmpl, cfmt.Of(int32(7)))
				if err != nil {
					t.Fatalf("%s: width %d: %v", name, width, err)
				}
				want := lead + strings.Repeat(" ", width-1) + "7"
				if got != want {
					t.Fatalf("%s: width %d: got %d bytes, want %d", name, width, len(got), len(want))
				}
			}
			s := strings.Repeat("x", width)
			got, err := p.Format("%s", cfmt.Of(s))
			if err != nil || got != s {
				t.Fatalf("%s: %d-byte string did not round trip (err %v)", name, width, err)
			}
		}
	}
}

func TestEscapeLaw(t *testing.T) {
	for _, tmpl := range []string{"", "plain", "100%%", "%%%%", "a%%b%%c", "%%d%%s"} {
		got, err := cfmt.Format(tmpl)
		if err != nil {
			t.Fatalf("%q: %v", tmpl, err)
		}
		if want := strings.ReplaceAll(tmpl, "%%", "%"); got != want {
			t.Fatalf("%q: want %q, got %q", tmpl, want, got)
		}
	}
}

func TestComposition(t *testing.T) {
	cases := []struct {
		tmpl string
		args []cfmt.Arg
	}{
		{"%d", []cfmt.Arg{cfmt.Of(int32(-12))}},
		{"%-8s|%5.1f", []cfmt.Arg{cfmt.Of("ab"), cfmt.Of(2.25)}},
		{"%#llx %c", []cfmt.Arg{cfmt.Of(uint64(255)), cfmt.Of(cfmt.Char('q'))}},
	}
	wrappers := []string{" ", "\n", "\t", strings.Repeat("@", 250), strings.Repeat("@", 259)}
	for _, c := range cases {
		inner, err := cfmt.Format(c.tmpl, c.args...)
		if err != nil {
			t.Fatalf("%q: %v", c.tmpl, err)
		}
		for _, w := range wrappers {
			got, err := cfmt.Format(w+c.tmpl+w, c.args...)
			if err != nil {
				t.Fatalf("%q wrapped: %v", c.tmpl, err)
			}
			if got != w+inner+w {
				t.Fatalf("%q wrapped in %d bytes: composition broken", c.tmpl, len(w))
			}
		}
	}
}

func TestAllCarriers(t *testing.T) {
	x := 5
	tests := []struct {
		tmpl string
		arg  cfmt.Arg
		want string
	}{
		{"%d", cfmt.Of(true), "1"},
		{"%c", cfmt.Of(cfmt.Char('A')), "A"},
		{"%hhd", cfmt.Of(int8(-128)), "-128"},
		{"%hd", cfmt.Of(int16(-300)), "-300"},
		{"%d", cfmt.Of(int32(math.MinInt32)), "-2147483648"},
		{"%ld", cfmt.Of(-9), "-9"},
		{"%lld", cfmt.Of(int64(math.MaxInt64)), "9223372036854775807"},
		{"%hhu", cfmt.Of(uint8(200)), "200"},
		{"%ho", cfmt.Of(uint16(8)), "10"},
		{"%X", cfmt.Of(uint32(0xabc)), "ABC"},
		{"%lu", cfmt.Of(uint(9)), "9"},
		{"%lx", cfmt.Of(uintptr(0x10)), "10"},
		{"%llu", cfmt.Of(uint64(math.MaxUint64)), "18446744073709551615"},
		{"%.3e", cfmt.Of(float32(1.5)), "1.500e+00"},
		{"%g", cfmt.Of(100000.0), "100000"},
		{"%Lg", cfmt.Of(cfmt.LongDouble(0.25)), "0.25"},
		{"%s", cfmt.Of([]byte(nil)), "(null)"},
		{"%.2s", cfmt.Of([]byte("abc")), "ab"},
		{"%s", cfmt.Of("nul\x00cut"), "nul"},
		{"%p", cfmt.Of(unsafe.Pointer(nil)), "(nil)"},
		{"%p", cfmt.Of(""), "(nil)"},
		{"%?", cfmt.Of(unsafe.Pointer(&x)), ""},
	}
	for _, tt := range tests {
		got, err := cfmt.Format(tt.tmpl, tt.arg)
		if err != nil {
			t.Fatalf("%q with %s: %v", tt.tmpl, tt.arg.Kind(), err)
		}
		if tt.want == "" {
			if !strings.HasPrefix(got, "0x") {
				t.Fatalf("%q with %s: want a hex address, got %q", tt.tmpl, tt.arg.Kind(), got)
			}
			continue
		}
		if got != tt.want {
			t.Fatalf("%q with %s: want %q, got %q", tt.tmpl, tt.arg.Kind(), tt.want, got)
		}
	}
}

type celsius float64

type label string

func TestSprintfClassification(t *testing.T) {
	got, err := cfmt.Sprintf("%.1f %s %d %?", celsius(21.5), label("room"), int32(3), 'r')
	if err != nil {
		t.Fatalf("Sprintf: %v", err)
	}
	if got != "21.5 room 3 114" {
		t.Fatalf("want %q, got %q", "21.5 room 3 114", got)
	}

	n := 1
	if s, err := cfmt.Sprintf("%p", &n); err != nil || !strings.HasPrefix(s, "0x") {
		t.Fatalf("pointer: got %q, %v", s, err)
	}

	var buf bytes.Buffer
	_, err = cfmt.Fprintf(&buf, "%d %v", int32(1), complex(1, 2))
	var ce *cfmt.Error
	if !errors.As(err, &ce) || !errors.Is(err, cfmt.ErrUnsupportedArgument) {
		t.Fatalf("want unsupported argument error, got %v", err)
	}
	if ce.Arg != 2 || !strings.Contains(ce.Message, "complex128") {
		t.Fatalf("error must name argument 2 and its type: %v", ce)
	}
	if buf.Len() != 0 {
		t.Fatalf("nothing may be written before an unsupported argument is rejected, got %q", buf.String())
	}

	if _, err := cfmt.Sprintf("%d", nil); !errors.Is(err, cfmt.ErrUnsupportedArgument) {
		t.Fatalf("nil: want unsupported argument error, got %v", err)
	}
}

func TestErrorPositions(t *testing.T) {
	tests := []struct {
		tmpl string
		args []any
		kind error
		pos  int
		arg  int
		text string
	}{
		{"ab %d cd %s", []any{int32(1), int32(2)}, cfmt.ErrTypeMismatch, 9, 2, "SUB2002: bad type specifier s for type int (argument 2, offset 9)"},
		{"%d %%%ld", []any{int32(1), int32(2)}, cfmt.ErrTypeMismatch, 5, 2, "SUB2001: bad length specifier l for type int (argument 2, offset 5)"},
		{"x %d %d", []any{int32(1)}, cfmt.ErrArityMismatch, 5, 0, "ARG3001: not enough arguments given to format string (offset 5)"},
		{"%d", []any{int32(1), int32(2)}, cfmt.ErrArityMismatch, -1, 2, "ARG3002: too many arguments to format string (argument 2)"},
		{"%d %5", []any{int32(1)}, cfmt.ErrMissingTypeSpec, 3, 0, "SCN1001: zero characters for type specifier (offset 3)"},
		{"%d %y", []any{int32(1)}, cfmt.ErrMalformedSpec, 3, 0, "SCN1002: unexpected character 'y' in conversion specification (offset 3)"},
		{"%d %hhhd", []any{int32(1)}, cfmt.ErrInvalidLength, 3, 0, "SCN1003: length specifier must be 0-2 characters (offset 3)"},
		{"%lhd", nil, cfmt.ErrInvalidLength, 0, 0, "SCN1004: invalid length specifier lh (offset 0)"},
	}
	for _, tt := range tests {
		_, err := cfmt.Sprintf(tt.tmpl, tt.args...)
		var ce *cfmt.Error
		if !errors.As(err, &ce) {
			t.Fatalf("%q: want *cfmt.Error, got %v", tt.tmpl, err)
		}
		if !errors.Is(err, tt.kind) {
			t.Fatalf("%q: want %v, got %v", tt.tmpl, tt.kind, err)
		}
		if ce.Pos != tt.pos || ce.Arg != tt.arg {
			t.Fatalf("%q: want offset %d arg %d, got %d %d", tt.tmpl, tt.pos, tt.arg, ce.Pos, ce.Arg)
		}
		if err.Error() != tt.text {
			t.Fatalf("%q: want %q, got %q", tt.tmpl, tt.text, err.Error())
		}
	}
}

func TestFormatToStreamsUntilFailure(t *testing.T) {
	var buf bytes.Buffer
	n, err := cfmt.FormatTo(&buf, "a=%d b=%d c=%s", cfmt.Of(int32(1)), cfmt.Of(int32(2)), cfmt.Of(int32(3)))
	if !errors.Is(err, cfmt.ErrTypeMismatch) {
		t.Fatalf("want type mismatch, got %v", err)
	}
	if buf.String() != "a=1 b=2" || n != len("a=1 b=2") {
		t.Fatalf("want the fields before the failure written, got %q (%d)", buf.String(), n)
	}

	buf.Reset()
	_, err = cfmt.FormatTo(&buf, "%d tail", cfmt.Of(int32(1)), cfmt.Of(int32(2)))
	if !errors.Is(err, cfmt.ErrTooManyArgs) || buf.String() != "1 tail" {
		t.Fatalf("too many args: got %q, %v", buf.String(), err)
	}
}

func TestBuilder(t *testing.T) {
	got, err := cfmt.NewBuilder("%s=%?").Add(cfmt.Of("n")).AddAny(uint16(7)).String()
	if err != nil || got != "n=7" {
		t.Fatalf("want n=7, got %q, %v", got, err)
	}

	var buf bytes.Buffer
	b := cfmt.NewBuilder("%d %d").AddAny(int32(1))
	if _, err := b.WriteTo(&buf); !errors.Is(err, cfmt.ErrTooFewArgs) {
		t.Fatalf("want too few args, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("failed builder wrote %q", buf.String())
	}
	n, err := b.AddAny(int32(2)).WriteTo(&buf)
	if err != nil || buf.String() != "1 2" || n != 3 {
		t.Fatalf("want 1 2, got %q (%d), %v", buf.String(), n, err)
	}

	_, err = cfmt.NewBuilder("%d").AddAny(struct{}{}).AddAny(int32(1)).String()
	if !errors.Is(err, cfmt.ErrUnsupportedArgument) {
		t.Fatalf("want unsupported argument, got %v", err)
	}
}

func TestWithEngineUnknown(t *testing.T) {
	if _, err := cfmt.New(cfmt.WithEngine("pdp11")); !errors.Is(err, cfmt.ErrRenderFailure) {
		t.Fatalf("want render failure for unknown engine, got %v", err)
	}
}

func TestTracerSpans(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	p, err := cfmt.New(cfmt.WithEngine("go"), cfmt.WithTracer(ring))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := p.Format("%d-%300s", cfmt.Of(int32(1)), cfmt.Of("x")); err != nil {
		t.Fatalf("Format: %v", err)
	}

	count := map[trace.Scope]int{}
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanEnd {
			count[ev.Scope]++
		}
	}
	if count[trace.ScopeCall] != 1 || count[trace.ScopeSpec] != 2 || count[trace.ScopeRender] != 3 {
		t.Fatalf("want 1 call, 2 specs, 3 render attempts, got %v", count)
	}
}

func itoa(n int) string {
	s, _ := cfmt.Format("%d", cfmt.Of(int32(n)))
	return s
}
