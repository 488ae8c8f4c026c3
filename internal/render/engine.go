package render

import (
	"sort"
	"strings"
	"sync"

	"fortio.org/safecast"

	"cfmt/internal/ctype"
	"cfmt/internal/diag"
)

// StackSize is the size of the first rendering attempt.
const StackSize = 256

// Engine renders one conversion with C snprintf semantics: it writes at most
// len(buf)-1 bytes followed by a NUL and returns the length the complete
// output would have, or a negative value on failure.
type Engine interface {
	Name() string
	Snprintf(buf []byte, format string, v ctype.Value) int
}

const (
	EngineAuto = "auto"
	EngineLibc = "libc"
	EngineGo   = "go"
)

var (
	mu      sync.RWMutex
	engines = map[string]Engine{}
)

// Register makes e available to Lookup under its name.
func Register(e Engine) {
	mu.Lock()
	defer mu.Unlock()
	engines[e.Name()] = e
}

// Lookup resolves an engine name. "" and "auto" pick libc when the binary
// was built with cgo and the pure-Go engine otherwise.
func Lookup(name string) (Engine, error) {
	mu.RLock()
	defer mu.RUnlock()

	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == EngineAuto {
		if e, ok := engines[EngineLibc]; ok {
			return e, nil
		}
		name = EngineGo
	}
	if e, ok := engines[name]; ok {
		return e, nil
	}
	return nil, diag.Newf(diag.RenderNoEngine, "unknown engine %q (available: %s)", name, strings.Join(namesLocked(), ", "))
}

// Names lists the registered engines.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	return namesLocked()
}

func namesLocked() []string {
	out := make([]string, 0, len(engines))
	for n := range engines {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Field renders format against v. The first attempt uses a StackSize buffer;
// when the output does not fit, a buffer of exactly n+1 bytes is allocated
// and the conversion is repeated.
func Field(e Engine, format string, v ctype.Value) (string, error) {
	var stack [StackSize]byte
	n := e.Snprintf(stack[:], format, v)
	if n < 0 {
		return "", diag.Newf(diag.RenderFailed, "rendering failed: %s returned %d for %q", e.Name(), n, format)
	}
	if n < StackSize {
		return string(stack[:n]), nil
	}

	size, err := safecast.Conv[int](uint64(n) + 1)
	if err != nil {
		return "", diag.Newf(diag.RenderFailed, "rendering failed: %d bytes do not fit in memory", n)
	}
	heap := make([]byte, size)
	n2 := e.Snprintf(heap, format, v)
	if n2 < 0 || n2 > n {
		return "", diag.Newf(diag.RenderRetryMismatch, "rendering failed: retry returned %d, expected at most %d", n2, n)
	}
	return string(heap[:n2]), nil
}
