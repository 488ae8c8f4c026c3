package trace

import (
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns a process-wide, monotonically increasing sequence number.
func NextSeq() uint64 { return seqCounter.Add(1) }

// NextSpanID returns a process-wide unique span ID.
func NextSpanID() uint64 { return spanCounter.Add(1) }

// goroutineID reads the goroutine number from the "goroutine N [...]"
// header of runtime.Stack. Corpus checks format on many goroutines at once
// and the ID keeps their spans apart.
func goroutineID() uint64 {
	var buf [64]byte
	header := string(buf[:runtime.Stack(buf[:], false)])
	header, ok := strings.CutPrefix(header, "goroutine ")
	if !ok {
		return 0
	}
	num, _, _ := strings.Cut(header, " ")
	gid, err := strconv.ParseUint(num, 10, 64)
	if err != nil {
		return 0
	}
	return gid
}

// Span tracks one operation from Begin to End or Fail.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	gid     uint64
	scope   Scope
	name    string
	started time.Time
	extra   map[string]string
	// quiet spans emit nothing unless they fail
	quiet bool
}

var nopSpan = &Span{tracer: Nop}

// Begin starts a span below parent (0 for a root) and emits its begin
// event. Spans the level drops entirely come back as a shared no-op span.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() {
		return nopSpan
	}
	lvl := t.Level()
	quiet := !lvl.ShouldEmit(scope)
	if quiet && !lvl.ShouldEmitFailure(scope) {
		return nopSpan
	}

	s := &Span{
		tracer:  t,
		id:      NextSpanID(),
		parent:  parent,
		gid:     goroutineID(),
		scope:   scope,
		name:    name,
		started: time.Now(),
		quiet:   quiet,
	}
	if !quiet {
		ev := s.event(KindSpanBegin, s.started)
		t.Emit(&ev)
	}
	return s
}

func (s *Span) live() bool {
	return s != nil && s.tracer != nil && s.tracer.Enabled()
}

func (s *Span) event(kind Kind, at time.Time) Event {
	return Event{
		Time:     at,
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		GID:      s.gid,
		Name:     s.name,
	}
}

// End emits the end event and returns the span's duration.
func (s *Span) End(detail string) time.Duration {
	return s.finish(detail, nil)
}

// Fail ends the span with err. Failed spans are kept even at LevelError.
func (s *Span) Fail(err error) time.Duration {
	return s.finish("", err)
}

func (s *Span) finish(detail string, err error) time.Duration {
	if !s.live() || (s.quiet && err == nil) {
		return 0
	}
	now := time.Now()
	ev := s.event(KindSpanEnd, now)
	ev.Detail = detail
	ev.Extra = s.extra
	if err != nil {
		ev.Err = err.Error()
	}
	s.tracer.Emit(&ev)
	return now.Sub(s.started)
}

// Point emits an instant event attached to the span.
func (s *Span) Point(name, detail string) {
	if !s.live() || s.quiet {
		return
	}
	ev := s.event(KindPoint, time.Now())
	ev.SpanID, ev.ParentID = 0, s.id
	ev.Name, ev.Detail = name, detail
	s.tracer.Emit(&ev)
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 4)
	}
	s.extra[key] = value
	return s
}

// ID returns the span ID, 0 for a no-op span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}
