// Package trace records structured events while templates are formatted.
//
// A Printer reports one span per formatting call, one per conversion and one
// per rendering attempt. The corpus checker adds a run-level span around a
// whole case file and can emit heartbeats while it works.
//
// Tracers:
//
//   - Nop: discards everything
//   - StreamTracer: writes each event as it happens (text or NDJSON)
//   - RingTracer: keeps the most recent events for a later dump
//   - MultiTracer: fans out to several tracers
//
// Levels select scopes: phase keeps run and call spans, detail adds
// conversions, debug adds engine attempts.
//
//	tr, _ := trace.New(trace.Config{Level: trace.LevelDetail, Mode: trace.ModeStream})
//	span := trace.Begin(tr, trace.ScopeCall, "format", 0)
//	defer span.End("")
package trace
