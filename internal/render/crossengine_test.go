//go:build cgo

package render

import (
	"math"
	"testing"

	"cfmt/internal/ctype"
)

// The pure-Go engine must agree with the host snprintf on everything both
// support. %La is excluded: x87 long double hex output uses a different
// leading digit.
func TestGoEngineMatchesLibc(t *testing.T) {
	formats := map[ctype.Promo][]string{
		ctype.PromoInt:       {"%d", "%+d", "% 5d", "%-6d", "%05d", "%.3d", "%hhd", "%hd", "%c", "%x"},
		ctype.PromoLongLong:  {"%lld", "%+20lld", "%-20lld"},
		ctype.PromoUInt:      {"%u", "%o", "%#o", "%x", "%#X", "%#010x", "%hhu", "%hx"},
		ctype.PromoULongLong: {"%llu", "%llx", "%#llo"},
		ctype.PromoDouble: {
			"%f", "%.0f", "%.10f", "%e", "%.3E", "%g", "%G", "%.12g", "%#g",
			"%a", "%A", "%.2a", "%.0a", "%+010.3f", "%-12e", "% g",
		},
		ctype.PromoLongDouble: {"%Lf", "%.3Le", "%Lg"},
		ctype.PromoCString:    {"%s", "%10s", "%-10s", "%.2s"},
		ctype.PromoPointer:    {"%p", "%20p", "%-20p"},
	}
	values := map[ctype.Promo][]ctype.Value{
		ctype.PromoInt:       {intV(0), intV(1), intV(-1), intV(65), intV(math.MaxInt32), intV(math.MinInt32)},
		ctype.PromoLongLong:  {llV(0), llV(math.MaxInt64), llV(math.MinInt64)},
		ctype.PromoUInt:      {uintV(0), uintV(1), uintV(255), uintV(math.MaxUint32)},
		ctype.PromoULongLong: {ullV(0), ullV(math.MaxUint64)},
		ctype.PromoDouble: {
			dblV(0), dblV(math.Copysign(0, -1)), dblV(1), dblV(-1.5), dblV(3.14159265358979),
			dblV(1e-5), dblV(123456789), dblV(1e300), dblV(math.SmallestNonzeroFloat64),
			dblV(math.Inf(1)), dblV(math.Inf(-1)),
		},
		ctype.PromoLongDouble: {
			{Promo: ctype.PromoLongDouble, Float: 0.1},
			{Promo: ctype.PromoLongDouble, Float: -2.5e10},
		},
		ctype.PromoCString: {strV(""), strV("Hello"), {Promo: ctype.PromoCString, Nil: true}},
		ctype.PromoPointer: {ptrV(0), ptrV(0xdeadbeef)},
	}

	goE, libE := goEngine{}, libcEngine{}
	for promo, fs := range formats {
		for _, f := range fs {
			for _, v := range values[promo] {
				want, err := Field(libE, f, v)
				if err != nil {
					t.Fatalf("libc %q: %v", f, err)
				}
				got, err := Field(goE, f, v)
				if err != nil {
					t.Fatalf("go %q: %v", f, err)
				}
				if got != want {
					t.Errorf("%s %q with %+v: libc %q, go %q", promo, f, v, want, got)
				}
			}
		}
	}
}
