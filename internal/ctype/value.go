package ctype

// Arg is a typed argument before promotion.
type Arg struct {
	Kind  Kind
	Int   int64   // bool, char and signed integers
	Uint  uint64  // unsigned integers
	Float float64 // float, double, long double
	Str   string  // C string and owned string payloads
	Addr  uintptr // pointer value, or data address of a string payload
	Nil   bool    // a C string that is a null pointer
}

// Value is an argument after default argument promotion; engines consume it.
type Value struct {
	Promo Promo
	Int   int64
	Uint  uint64 // unsigned payloads and pointer values
	Float float64
	Str   string
	Nil   bool // null C string
}

// Promote converts a to the promoted type of its kind. ok is false for
// kinds without a descriptor.
func (a Arg) Promote() (Value, bool) {
	d, ok := Describe(a.Kind)
	if !ok {
		return Value{}, false
	}
	v := Value{Promo: d.Promo}
	switch d.Promo {
	case PromoInt, PromoLong, PromoLongLong:
		v.Int = a.Int
	case PromoUInt, PromoULong, PromoULongLong:
		v.Uint = a.Uint
	case PromoDouble:
		if a.Kind == KindFloat {
			v.Float = float64(float32(a.Float))
		} else {
			v.Float = a.Float
		}
	case PromoLongDouble:
		v.Float = a.Float
	case PromoCString:
		v.Str = a.Str
		v.Uint = uint64(a.Addr)
		v.Nil = a.Nil
	case PromoPointer:
		v.Uint = uint64(a.Addr)
	}
	return v, true
}

// AsPointer reinterprets a string argument as its data address, the way a
// const char * is passed to %p.
func (a Arg) AsPointer() Arg {
	return Arg{Kind: KindPointer, Addr: a.Addr}
}
