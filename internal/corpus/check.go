package corpus

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"cfmt"
	"cfmt/internal/diag"
	"cfmt/internal/trace"
)

// Status is the state of a case during a run.
type Status uint8

const (
	StatusQueued Status = iota
	StatusRunning
	StatusPass
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusRunning:
		return "running"
	case StatusPass:
		return "pass"
	case StatusFail:
		return "fail"
	}
	return "unknown"
}

// Event reports progress of a single case.
type Event struct {
	Case   string
	Status Status
}

// Options configure Run.
type Options struct {
	// Jobs bounds parallelism; 0 means GOMAXPROCS.
	Jobs int
	// Golden, when set, supplies expectations for cases it knows.
	Golden *Golden
	Args   ArgOptions
	// Events receives progress; Run never closes it.
	Events chan<- Event
	Tracer trace.Tracer
}

// Outcome is the verdict for one case.
type Outcome struct {
	Case Case
	Got  Result
	// Checked is false when neither the golden file nor the case had an
	// expectation.
	Checked bool
	Pass    bool
	Reason  string
}

// Render formats one case.
func Render(p *cfmt.Printer, c Case, opts ArgOptions) (Result, error) {
	args, err := ParseArgs(c.Args, opts)
	if err != nil {
		return Result{}, fmt.Errorf("case %q: %w", c.Name, err)
	}
	out, err := p.Format(c.Template, args...)
	if err != nil {
		var ce *cfmt.Error
		if !errors.As(err, &ce) {
			return Result{}, fmt.Errorf("case %q: %w", c.Name, err)
		}
		return Result{Code: ce.Code.ID(), Message: ce.Error()}, nil
	}
	return Result{Output: out}, nil
}

// Record renders every case and collects the results.
func Record(ctx context.Context, p *cfmt.Printer, cases []Case, opts Options) (*Golden, error) {
	outcomes, err := Run(ctx, p, cases, opts)
	if err != nil {
		return nil, err
	}
	g := &Golden{Engine: p.Engine(), Results: make(map[string]Result, len(outcomes))}
	for _, o := range outcomes {
		g.Results[o.Case.Name] = o.Got
	}
	return g, nil
}

// Run renders cases in parallel and judges each one. Outcomes keep the
// order of cases. A malformed argument literal aborts the run.
func Run(ctx context.Context, p *cfmt.Printer, cases []Case, opts Options) ([]Outcome, error) {
	tr := opts.Tracer
	if tr == nil {
		tr = trace.Nop
	}
	span := trace.Begin(tr, trace.ScopeRun, "corpus", 0)
	span.WithExtra("cases", strconv.Itoa(len(cases))).WithExtra("engine", p.Engine())

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	outcomes := make([]Outcome, len(cases))
	if len(cases) == 0 {
		span.End("empty")
		return outcomes, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(cases)))
	for i, c := range cases {
		i, c := i, c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := emit(gctx, opts.Events, Event{Case: c.Name, Status: StatusRunning}); err != nil {
				return err
			}
			got, err := Render(p, c, opts.Args)
			if err != nil {
				return err
			}
			o := judge(c, got, opts.Golden)
			outcomes[i] = o

			status := StatusPass
			if !o.Pass {
				status = StatusFail
				span.Point("mismatch "+c.Name, o.Reason)
			}
			return emit(gctx, opts.Events, Event{Case: c.Name, Status: status})
		})
	}
	if err := g.Wait(); err != nil {
		span.Fail(err)
		return nil, err
	}
	span.End("")
	return outcomes, nil
}

func emit(ctx context.Context, ch chan<- Event, ev Event) error {
	if ch == nil {
		return nil
	}
	select {
	case ch <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func judge(c Case, got Result, golden *Golden) Outcome {
	o := Outcome{Case: c, Got: got, Checked: true, Pass: true}
	if golden != nil {
		if want, ok := golden.Results[c.Name]; ok {
			if want != got {
				o.Pass = false
				o.Reason = "golden: " + describeDiff(want, got)
			}
			return o
		}
	}
	switch {
	case c.Want != nil:
		if got.Failed() || got.Output != *c.Want {
			o.Pass = false
			o.Reason = "want: " + describeDiff(Result{Output: *c.Want}, got)
		}
	case c.Error != "":
		if !errorMatches(c.Error, got.Code) {
			o.Pass = false
			if got.Failed() {
				o.Reason = fmt.Sprintf("want error %s, got %s", c.Error, got.Message)
			} else {
				o.Reason = fmt.Sprintf("want error %s, got output %q", c.Error, got.Output)
			}
		}
	default:
		o.Checked = false
	}
	return o
}

// errorMatches accepts a code ID or the name of its kind.
func errorMatches(want, gotCode string) bool {
	if gotCode == "" {
		return false
	}
	if want == gotCode {
		return true
	}
	code, ok := diag.ParseCode(gotCode)
	return ok && code.Kind().String() == want
}

func describeDiff(want, got Result) string {
	w, g := strconv.Quote(want.Output), strconv.Quote(got.Output)
	if want.Failed() {
		w = want.Code
	}
	if got.Failed() {
		g = got.Message
	}
	return "expected " + w + ", got " + g
}

// Summary counts outcomes.
type Summary struct {
	Pass, Fail, Unchecked int
}

// Summarize counts passes, failures and unchecked cases.
func Summarize(outcomes []Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		switch {
		case !o.Pass:
			s.Fail++
		case !o.Checked:
			s.Unchecked++
		default:
			s.Pass++
		}
	}
	return s
}
