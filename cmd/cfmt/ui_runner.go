package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"cfmt"
	"cfmt/internal/corpus"
	"cfmt/internal/ui"
)

// wantTUI resolves --ui. "auto" shows the progress view only when out is a
// terminal.
func wantTUI(value string, out io.Writer) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "", "auto":
		f, ok := out.(*os.File)
		return ok && isTerminal(f), nil
	}
	return false, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

type runOutcome struct {
	outcomes []corpus.Outcome
	err      error
}

func runCorpusWithUI(ctx context.Context, out io.Writer, title string, p *cfmt.Printer, cases []corpus.Case, opts corpus.Options) ([]corpus.Outcome, error) {
	events := make(chan corpus.Event, 256)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		opts.Events = events
		res, err := corpus.Run(ctx, p, cases, opts)
		outcomeCh <- runOutcome{outcomes: res, err: err}
		close(events)
	}()

	names := make([]string, len(cases))
	for i, c := range cases {
		names[i] = c.Name
	}
	model := ui.NewProgressModel(title, names, events)
	program := tea.NewProgram(model, tea.WithOutput(out))
	_, uiErr := program.Run()
	// keep the run unblocked if the UI quit before it
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.outcomes, uiErr
	}
	return outcome.outcomes, outcome.err
}
