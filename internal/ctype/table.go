package ctype

import "strings"

// Descriptor is the per-kind record consulted by the substituter.
type Descriptor struct {
	Kind Kind
	// Length is the only length modifier the kind accepts.
	Length string
	// Specs lists accepted type characters; Specs[0] is the default for '?'.
	Specs string
	Promo Promo
}

var table = [kindCount]Descriptor{
	KindBool:       {KindBool, "", "d", PromoInt},
	KindChar:       {KindChar, "", "c", PromoInt},
	KindSChar:      {KindSChar, "hh", "d", PromoInt},
	KindShort:      {KindShort, "h", "d", PromoInt},
	KindInt:        {KindInt, "", "d", PromoInt},
	KindLong:       {KindLong, "l", "d", PromoLong},
	KindLongLong:   {KindLongLong, "ll", "d", PromoLongLong},
	KindUChar:      {KindUChar, "hh", "uoxX", PromoUInt},
	KindUShort:     {KindUShort, "h", "uoxX", PromoUInt},
	KindUInt:       {KindUInt, "", "uoxX", PromoUInt},
	KindULong:      {KindULong, "l", "uoxX", PromoULong},
	KindULongLong:  {KindULongLong, "ll", "uoxX", PromoULongLong},
	KindFloat:      {KindFloat, "", "fFeEaAgG", PromoDouble},
	KindDouble:     {KindDouble, "", "fFeEaAgG", PromoDouble},
	KindLongDouble: {KindLongDouble, "L", "fFeEaAgG", PromoLongDouble},
	KindCString:    {KindCString, "", "s", PromoCString},
	KindString:     {KindString, "", "s", PromoCString},
	KindPointer:    {KindPointer, "", "p", PromoPointer},
}

// Describe returns the descriptor of k.
func Describe(k Kind) (Descriptor, bool) {
	if k == KindInvalid || k >= kindCount {
		return Descriptor{}, false
	}
	return table[k], true
}

// Table returns every descriptor in declaration order.
func Table() []Descriptor {
	out := make([]Descriptor, 0, kindCount-1)
	for k := KindBool; k < kindCount; k++ {
		out = append(out, table[k])
	}
	return out
}

// Accepts reports whether spec is one of the accepted type characters.
func (d Descriptor) Accepts(spec byte) bool {
	return strings.IndexByte(d.Specs, spec) >= 0
}

// Default returns the type character used for '?'.
func (d Descriptor) Default() byte {
	return d.Specs[0]
}
