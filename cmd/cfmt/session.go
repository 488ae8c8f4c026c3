package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cfmt/internal/observ"
	"cfmt/internal/prof"
	"cfmt/internal/trace"
)

// session is the per-invocation state shared by the subcommands.
type session struct {
	cfg     fileConfig
	tracer  trace.Tracer
	timer   *observ.Timer
	quiet   bool
	timings bool
	profile *prof.Session
	cleanup func()
}

func openSession(cmd *cobra.Command) (*session, error) {
	flags := cmd.Root().PersistentFlags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	if err := applyColor(colorFlag, cmd.OutOrStdout()); err != nil {
		return nil, err
	}

	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}

	tracer, cleanup, err := setupTracing(cmd, cfg.Trace)
	if err != nil {
		return nil, err
	}
	profile, err := startProfiling(cmd)
	if err != nil {
		cleanup()
		return nil, err
	}
	return &session{
		cfg:     cfg,
		tracer:  tracer,
		timer:   observ.NewTimer(),
		quiet:   quiet,
		timings: timings,
		profile: profile,
		cleanup: cleanup,
	}, nil
}

// close prints timings, dumps the trace ring when err is set, and releases
// the tracer. It returns err unchanged.
func (s *session) close(cmd *cobra.Command, err error) error {
	if s.timings {
		fmt.Fprint(cmd.ErrOrStderr(), s.timer.Summary())
	}
	if err != nil {
		if ring := ringOf(s.tracer); ring != nil && ring.Len() > 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "trace (most recent events):")
			if dumpErr := ring.Dump(cmd.ErrOrStderr(), trace.FormatText); dumpErr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "trace: dump error: %v\n", dumpErr)
			}
		}
	}
	if profErr := s.profile.Stop(); profErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", profErr)
	}
	s.cleanup()
	return err
}

func ringOf(t trace.Tracer) *trace.RingTracer {
	switch tr := t.(type) {
	case *trace.RingTracer:
		return tr
	case *trace.MultiTracer:
		return tr.Ring()
	}
	return nil
}

// infof writes a status line to stderr unless --quiet is set.
func (s *session) infof(cmd *cobra.Command, format string, args ...any) {
	if s.quiet {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), format, args...)
}

func applyColor(mode string, out io.Writer) error {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "", "auto":
		f, ok := out.(*os.File)
		color.NoColor = !ok || !isTerminal(f) || os.Getenv("NO_COLOR") != ""
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
