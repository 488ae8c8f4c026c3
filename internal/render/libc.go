//go:build cgo

package render

/*
#include <stdint.h>
#include <stdio.h>
#include <stdlib.h>

// snprintf is variadic and cannot be called from Go directly; each shim
// fixes the type of the single promoted argument.

static int cfmt_int(char *buf, size_t n, const char *f, int v) { return snprintf(buf, n, f, v); }
static int cfmt_long(char *buf, size_t n, const char *f, long v) { return snprintf(buf, n, f, v); }
static int cfmt_llong(char *buf, size_t n, const char *f, long long v) { return snprintf(buf, n, f, v); }
static int cfmt_uint(char *buf, size_t n, const char *f, unsigned int v) { return snprintf(buf, n, f, v); }
static int cfmt_ulong(char *buf, size_t n, const char *f, unsigned long v) { return snprintf(buf, n, f, v); }
static int cfmt_ullong(char *buf, size_t n, const char *f, unsigned long long v) { return snprintf(buf, n, f, v); }
static int cfmt_double(char *buf, size_t n, const char *f, double v) { return snprintf(buf, n, f, v); }
static int cfmt_ldouble(char *buf, size_t n, const char *f, double v) { return snprintf(buf, n, f, (long double)v); }
static int cfmt_str(char *buf, size_t n, const char *f, const char *v) { return snprintf(buf, n, f, v); }
static int cfmt_ptr(char *buf, size_t n, const char *f, uintptr_t v) { return snprintf(buf, n, f, (const void *)v); }
*/
import "C"

import (
	"unsafe"

	"cfmt/internal/ctype"
)

// LibcAvailable reports whether the host snprintf engine is compiled in.
const LibcAvailable = true

type libcEngine struct{}

func init() {
	Register(libcEngine{})
}

func (libcEngine) Name() string { return EngineLibc }

func (libcEngine) Snprintf(buf []byte, format string, v ctype.Value) int {
	cf := C.CString(format)
	defer C.free(unsafe.Pointer(cf))

	var out *C.char
	if len(buf) > 0 {
		out = (*C.char)(unsafe.Pointer(&buf[0]))
	}
	n := C.size_t(len(buf))

	switch v.Promo {
	case ctype.PromoInt:
		return int(C.cfmt_int(out, n, cf, C.int(v.Int)))
	case ctype.PromoLong:
		return int(C.cfmt_long(out, n, cf, C.long(v.Int)))
	case ctype.PromoLongLong:
		return int(C.cfmt_llong(out, n, cf, C.longlong(v.Int)))
	case ctype.PromoUInt:
		return int(C.cfmt_uint(out, n, cf, C.uint(v.Uint)))
	case ctype.PromoULong:
		return int(C.cfmt_ulong(out, n, cf, C.ulong(v.Uint)))
	case ctype.PromoULongLong:
		return int(C.cfmt_ullong(out, n, cf, C.ulonglong(v.Uint)))
	case ctype.PromoDouble:
		return int(C.cfmt_double(out, n, cf, C.double(v.Float)))
	case ctype.PromoLongDouble:
		return int(C.cfmt_ldouble(out, n, cf, C.double(v.Float)))
	case ctype.PromoCString:
		if v.Nil {
			return int(C.cfmt_str(out, n, cf, nil))
		}
		cs := C.CString(v.Str)
		defer C.free(unsafe.Pointer(cs))
		return int(C.cfmt_str(out, n, cf, cs))
	case ctype.PromoPointer:
		return int(C.cfmt_ptr(out, n, cf, C.uintptr_t(v.Uint)))
	}
	return -1
}
