// Package observ measures the phases of a CLI command for --timings.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is one measured step of a command.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer records phases in start order. It is safe for concurrent use.
type Timer struct {
	mu     sync.Mutex
	born   time.Time
	phases []Phase
}

func NewTimer() *Timer {
	return &Timer{born: time.Now(), phases: make([]Phase, 0, 8)}
}

// Begin opens a phase and returns the handle End expects.
func (t *Timer) Begin(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End closes phase idx. Unknown handles are ignored.
func (t *Timer) End(idx int, note string) {
	now := time.Now()
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	t.phases[idx].Dur = now.Sub(t.phases[idx].Start)
	t.phases[idx].Note = note
}

// Track runs fn as a phase. A failing fn notes the phase as "failed".
func (t *Timer) Track(name string, fn func() error) error {
	idx := t.Begin(name)
	err := fn()
	if err != nil {
		t.End(idx, "failed")
		return err
	}
	t.End(idx, "")
	return nil
}

// PhaseReport is a phase in milliseconds.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report sums the phases. WallMS is the time since NewTimer, so the gap
// to TotalMS is time spent outside any phase.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	WallMS  float64       `json:"wall_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()

	var r Report
	var total time.Duration
	for _, p := range t.phases {
		total += p.Dur
		r.Phases = append(r.Phases, PhaseReport{Name: p.Name, DurationMS: millis(p.Dur), Note: p.Note})
	}
	r.TotalMS = millis(total)
	r.WallMS = millis(time.Since(t.born))
	return r
}

// Summary renders one line per phase, then the phase total and wall time.
func (t *Timer) Summary() string {
	r := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&sb, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		if r.WallMS > 0 {
			fmt.Fprintf(&sb, " %5.1f%%", 100*p.DurationMS/r.WallMS)
		}
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-20s %7.2f ms\n", "total", r.TotalMS)
	fmt.Fprintf(&sb, "  %-20s %7.2f ms\n", "wall", r.WallMS)
	return sb.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
