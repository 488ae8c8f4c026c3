package render

import (
	"strconv"

	"cfmt/internal/ctype"
	"cfmt/internal/trace"
)

type tracedEngine struct {
	Engine
	tracer trace.Tracer
	parent uint64
}

// Traced wraps e so that every Snprintf call is recorded as a render span
// under parent. It returns e unchanged when render spans would be dropped.
func Traced(e Engine, t trace.Tracer, parent uint64) Engine {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmitFailure(trace.ScopeRender) {
		return e
	}
	return tracedEngine{Engine: e, tracer: t, parent: parent}
}

func (t tracedEngine) Snprintf(buf []byte, format string, v ctype.Value) int {
	span := trace.Begin(t.tracer, trace.ScopeRender, "render "+t.Name(), t.parent)
	n := t.Engine.Snprintf(buf, format, v)
	span.WithExtra("buf", strconv.Itoa(len(buf))).WithExtra("n", strconv.Itoa(n))
	if n < 0 {
		span.Fail(errRenderAttempt{format: format, n: n})
		return n
	}
	span.End(format)
	return n
}

type errRenderAttempt struct {
	format string
	n      int
}

func (e errRenderAttempt) Error() string {
	return "snprintf(" + strconv.Quote(e.format) + ") returned " + strconv.Itoa(e.n)
}
