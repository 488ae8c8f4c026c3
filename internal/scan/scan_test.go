package scan_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cfmt/internal/diag"
	"cfmt/internal/scan"
	"cfmt/internal/testkit"
)

func TestNextLiteralOnly(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{"%%", "%"},
		{"100%% sure", "100% sure"},
		{"%%%%", "%%"},
	}
	info := scan.NewInfo()
	for _, tc := range cases {
		found, err := scan.Next(info, tc.in)
		if err != nil {
			t.Fatalf("Next(%q): unexpected error: %v", tc.in, err)
		}
		if found {
			t.Fatalf("Next(%q): unexpected conversion %q", tc.in, info.Conversion())
		}
		if got := string(info.Prefix); got != tc.want {
			t.Fatalf("Next(%q): want prefix %q, got %q", tc.in, tc.want, got)
		}
		if len(info.Format) != 0 || info.Length != "" || info.Spec != 0 || info.Suffix != "" {
			t.Fatalf("Next(%q): literal-only result left fields set: %+v", tc.in, info)
		}
	}
}

func TestNextConversion(t *testing.T) {
	cases := []struct {
		in                     string
		prefix, format, length string
		spec                   byte
		suffix                 string
	}{
		{"%s", "", "%", "", 's', ""},
		{"%-5s|", "", "%-5", "", 's', "|"},
		{"%%%d", "%", "%", "", 'd', ""},
		{"x = %08.3f;", "x = ", "%08.3", "", 'f', ";"},
		{"[%?]", "[", "%", "", '?', "]"},
		{"%+- #0lld", "", "%+- #0", "ll", 'd', ""},
		{"%hhu and more %d", "", "%", "hh", 'u', " and more %d"},
		{"%.f", "", "%.", "", 'f', ""},
		{"%12.Lg", "", "%12.", "L", 'g', ""},
		{"%jd%zu%td", "", "%", "j", 'd', "%zu%td"},
		{"a%%b%pc", "a%b", "%", "", 'p', "c"},
	}
	info := scan.NewInfo()
	for _, tc := range cases {
		found, err := scan.Next(info, tc.in)
		if err != nil {
			t.Fatalf("Next(%q): unexpected error: %v", tc.in, err)
		}
		if !found {
			t.Fatalf("Next(%q): expected a conversion", tc.in)
		}
		got := []string{string(info.Prefix), string(info.Format), info.Length, string(info.Spec), info.Suffix}
		want := []string{tc.prefix, tc.format, tc.length, string(tc.spec), tc.suffix}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("Next(%q) mismatch (-want +got):\n%s", tc.in, diff)
		}
	}
}

func TestNextErrors(t *testing.T) {
	cases := []struct {
		in   string
		code diag.Code
		kind diag.Kind
		pos  int
	}{
		{"%", diag.ScanMissingTypeSpec, diag.KindMissingTypeSpec, 0},
		{"abc%", diag.ScanMissingTypeSpec, diag.KindMissingTypeSpec, 3},
		{"%-08.3", diag.ScanMissingTypeSpec, diag.KindMissingTypeSpec, 0},
		{"%hhh", diag.ScanMissingTypeSpec, diag.KindMissingTypeSpec, 0},
		{"%n", diag.ScanMalformedSpec, diag.KindMalformedSpec, 0},
		{"ab %y", diag.ScanMalformedSpec, diag.KindMalformedSpec, 3},
		{"%5k", diag.ScanMalformedSpec, diag.KindMalformedSpec, 0},
		{"%-%", diag.ScanMalformedSpec, diag.KindMalformedSpec, 0},
		{"%hhhd", diag.ScanLengthTooLong, diag.KindInvalidLength, 0},
		{"%lllu", diag.ScanLengthTooLong, diag.KindInvalidLength, 0},
		{"%hld", diag.ScanInvalidLength, diag.KindInvalidLength, 0},
		{"%Llx", diag.ScanInvalidLength, diag.KindInvalidLength, 0},
		{"%jjd", diag.ScanInvalidLength, diag.KindInvalidLength, 0},
		{"%zLd", diag.ScanInvalidLength, diag.KindInvalidLength, 0},
	}
	info := scan.NewInfo()
	for _, tc := range cases {
		_, err := scan.Next(info, tc.in)
		if err == nil {
			t.Fatalf("Next(%q): expected error", tc.in)
		}
		var de *diag.Error
		if !errors.As(err, &de) {
			t.Fatalf("Next(%q): want *diag.Error, got %T", tc.in, err)
		}
		if de.Code != tc.code {
			t.Fatalf("Next(%q): want %s, got %s", tc.in, tc.code.ID(), de.Code.ID())
		}
		if !errors.Is(err, tc.kind) {
			t.Fatalf("Next(%q): want kind %s, got %s", tc.in, tc.kind, de.Kind())
		}
		if de.Pos != tc.pos {
			t.Fatalf("Next(%q): want pos %d, got %d", tc.in, tc.pos, de.Pos)
		}
	}
}

func TestNextReusesScratch(t *testing.T) {
	info := scan.NewInfo()
	prefixCap, formatCap := cap(info.Prefix), cap(info.Format)
	if prefixCap < 64 || formatCap < 16 {
		t.Fatalf("want reserved capacity 64/16, got %d/%d", prefixCap, formatCap)
	}

	rest := "a=%d b=%5.2f c=%s"
	for {
		found, err := scan.Next(info, rest)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !found {
			break
		}
		rest = info.Suffix
	}
	if cap(info.Prefix) != prefixCap || cap(info.Format) != formatCap {
		t.Fatalf("scratch buffers were reallocated")
	}
}

func TestSplit(t *testing.T) {
	parts, tail, err := scan.Split("id=%05d name=%-10s%% done%c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []scan.Part{
		{Prefix: "id=", Format: "%05", Spec: 'd', Pos: 3},
		{Prefix: " name=", Format: "%-10", Spec: 's', Pos: 13},
		{Prefix: "% done", Format: "%", Spec: 'c', Pos: 25},
	}
	if diff := cmp.Diff(want, parts); diff != "" {
		t.Fatalf("Split mismatch (-want +got):\n%s", diff)
	}
	if tail != "" {
		t.Fatalf("want empty tail, got %q", tail)
	}
}

func TestSplitErrorOffsetIsAbsolute(t *testing.T) {
	_, _, err := scan.Split("%d and %s then %q")
	var de *diag.Error
	if !errors.As(err, &de) {
		t.Fatalf("want *diag.Error, got %v", err)
	}
	if de.Pos != 15 {
		t.Fatalf("want offset 15, got %d", de.Pos)
	}
}

func TestSplitInvariants(t *testing.T) {
	templates := []string{
		"",
		"%%",
		"%s",
		"%-5s|",
		"%%%d",
		"%08.3f",
		"[%?]",
		strings.Repeat("@", 260) + "%s",
		"%+d %- d %#x %#o %.0e %10.4Lf %hhd %hu %lu %llx %jd %zu %td",
		"tail only %% with escapes %%%%",
		" %s\n\t%p%c%%",
	}
	for _, tmpl := range templates {
		parts, tail, err := scan.Split(tmpl)
		if err != nil {
			t.Fatalf("Split(%q): unexpected error: %v", tmpl, err)
		}
		if err := testkit.CheckSplitInvariants(tmpl, parts, tail); err != nil {
			t.Fatalf("Split(%q): %v", tmpl, err)
		}
	}
}
