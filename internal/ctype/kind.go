package ctype

import "fmt"

// Kind enumerates the C argument types a conversion can consume.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindChar
	KindSChar
	KindShort
	KindInt
	KindLong
	KindLongLong
	KindUChar
	KindUShort
	KindUInt
	KindULong
	KindULongLong
	KindFloat
	KindDouble
	KindLongDouble
	KindCString
	KindString
	KindPointer

	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindSChar:
		return "signed char"
	case KindShort:
		return "short"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindLongLong:
		return "long long"
	case KindUChar:
		return "unsigned char"
	case KindUShort:
		return "unsigned short"
	case KindUInt:
		return "unsigned int"
	case KindULong:
		return "unsigned long"
	case KindULongLong:
		return "unsigned long long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindLongDouble:
		return "long double"
	case KindCString:
		return "const char *"
	case KindString:
		return "string"
	case KindPointer:
		return "const void *"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Promo is the C type an argument has after default argument promotion,
// i.e. the type an engine hands to snprintf.
type Promo uint8

const (
	PromoNone Promo = iota
	PromoInt
	PromoLong
	PromoLongLong
	PromoUInt
	PromoULong
	PromoULongLong
	PromoDouble
	PromoLongDouble
	PromoCString
	PromoPointer
)

func (p Promo) String() string {
	switch p {
	case PromoInt:
		return "int"
	case PromoLong:
		return "long"
	case PromoLongLong:
		return "long long"
	case PromoUInt:
		return "unsigned int"
	case PromoULong:
		return "unsigned long"
	case PromoULongLong:
		return "unsigned long long"
	case PromoDouble:
		return "double"
	case PromoLongDouble:
		return "long double"
	case PromoCString:
		return "const char *"
	case PromoPointer:
		return "const void *"
	default:
		return "none"
	}
}

// Signed reports whether the promoted type is a signed integer.
func (p Promo) Signed() bool {
	return p == PromoInt || p == PromoLong || p == PromoLongLong
}

// Unsigned reports whether the promoted type is an unsigned integer.
func (p Promo) Unsigned() bool {
	return p == PromoUInt || p == PromoULong || p == PromoULongLong
}

// Floating reports whether the promoted type is double or long double.
func (p Promo) Floating() bool {
	return p == PromoDouble || p == PromoLongDouble
}
