package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindHeartbeat:
		return "heartbeat"
	default:
		return "unknown"
	}
}

// Scope is the granularity of an event. Lower values are coarser.
type Scope uint8

const (
	// ScopeRun covers a CLI command or a corpus run.
	ScopeRun Scope = iota + 1
	// ScopeCall covers one top-level formatting call.
	ScopeCall
	// ScopeSpec covers one conversion and its argument.
	ScopeSpec
	// ScopeRender covers a single engine attempt.
	ScopeRender
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopeRun:
		return "run"
	case ScopeCall:
		return "call"
	case ScopeSpec:
		return "spec"
	case ScopeRender:
		return "render"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time
	Seq      uint64 // assigned by the tracer that stores the event
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	GID      uint64
	Name     string // "format", "spec %5d", "render go"
	Detail   string
	Err      string // set on the end event of a failed span
	Extra    map[string]string
}

// accepted reports whether a tracer at level l stores ev.
func (ev *Event) accepted(l Level) bool {
	switch {
	case ev.Kind == KindHeartbeat:
		return l > LevelOff
	case ev.Err != "":
		return l.ShouldEmitFailure(ev.Scope)
	}
	return l.ShouldEmit(ev.Scope)
}
