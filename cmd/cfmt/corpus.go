package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cfmt/internal/corpus"
)

func newCorpusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Record and check template case files",
	}
	cmd.PersistentFlags().String("engine", "", "rendering engine (auto|libc|go)")
	cmd.PersistentFlags().Int("jobs", 0, "parallel cases (0 = GOMAXPROCS)")
	cmd.PersistentFlags().Bool("nfc", false, "NFC-normalize str and bytes literals")

	record := &cobra.Command{
		Use:   "record CASES.toml",
		Short: "Render every case and store the results in a golden file",
		Args:  cobra.ExactArgs(1),
		RunE:  runCorpusRecord,
	}
	record.Flags().StringP("output", "o", "", "golden file to write")
	_ = record.MarkFlagRequired("output")

	check := &cobra.Command{
		Use:   "check CASES.toml",
		Short: "Render every case and compare it with its expectation",
		Args:  cobra.ExactArgs(1),
		RunE:  runCorpusCheck,
	}
	check.Flags().String("golden", "", "golden file with recorded results")
	check.Flags().String("ui", "auto", "progress UI (auto|on|off)")

	cmd.AddCommand(record, check)
	return cmd
}

// corpusSetup is what record and check share: the loaded cases and the run
// options resolved from flags and cfmt.toml.
type corpusSetup struct {
	cases  []corpus.Case
	engine string
	opts   corpus.Options
}

func prepareCorpus(cmd *cobra.Command, s *session, path string) (*corpusSetup, error) {
	engine, err := cmd.Flags().GetString("engine")
	if err != nil {
		return nil, fmt.Errorf("failed to get engine flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return nil, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	nfc, err := cmd.Flags().GetBool("nfc")
	if err != nil {
		return nil, fmt.Errorf("failed to get nfc flag: %w", err)
	}
	if jobs < 0 {
		return nil, fmt.Errorf("--jobs must not be negative")
	}

	var f *corpus.File
	err = s.timer.Track("load", func() error {
		var lerr error
		f, lerr = corpus.LoadFile(path)
		return lerr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load cases: %w", err)
	}

	if !cmd.Flags().Changed("engine") {
		switch {
		case f.Engine != "":
			engine = f.Engine
		case s.cfg.Format.Engine != "":
			engine = s.cfg.Format.Engine
		}
	}
	if !cmd.Flags().Changed("jobs") && s.cfg.Corpus.Jobs > 0 {
		jobs = s.cfg.Corpus.Jobs
	}

	return &corpusSetup{
		cases:  f.All(),
		engine: engine,
		opts: corpus.Options{
			Jobs:   jobs,
			Args:   corpus.ArgOptions{NFC: nfc || s.cfg.Format.NFC},
			Tracer: s.tracer,
		},
	}, nil
}

func runCorpusRecord(cmd *cobra.Command, args []string) (err error) {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer func() { err = s.close(cmd, err) }()

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	setup, err := prepareCorpus(cmd, s, args[0])
	if err != nil {
		return err
	}
	p, err := newPrinter(setup.engine, s)
	if err != nil {
		return err
	}

	var golden *corpus.Golden
	err = s.timer.Track("render", func() error {
		var rerr error
		golden, rerr = corpus.Record(cmd.Context(), p, setup.cases, setup.opts)
		return rerr
	})
	if err != nil {
		return fmt.Errorf("record failed: %w", err)
	}
	if err := s.timer.Track("write", func() error { return corpus.WriteGolden(output, golden) }); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	s.infof(cmd, "recorded %d cases with engine %s to %s\n", len(golden.Results), golden.Engine, output)
	return nil
}

func runCorpusCheck(cmd *cobra.Command, args []string) (err error) {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer func() { err = s.close(cmd, err) }()

	goldenPath, err := cmd.Flags().GetString("golden")
	if err != nil {
		return fmt.Errorf("failed to get golden flag: %w", err)
	}
	if !cmd.Flags().Changed("golden") {
		goldenPath = s.cfg.Corpus.Golden
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	if !cmd.Flags().Changed("ui") && s.cfg.Corpus.UI != "" {
		uiFlag = s.cfg.Corpus.UI
	}
	useTUI, err := wantTUI(uiFlag, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	setup, err := prepareCorpus(cmd, s, args[0])
	if err != nil {
		return err
	}
	if goldenPath != "" {
		g, err := corpus.ReadGolden(goldenPath)
		if err != nil {
			return fmt.Errorf("failed to read golden file: %w", err)
		}
		setup.opts.Golden = g
	}
	p, err := newPrinter(setup.engine, s)
	if err != nil {
		return err
	}

	var outcomes []corpus.Outcome
	err = s.timer.Track("check", func() error {
		var rerr error
		if useTUI {
			title := fmt.Sprintf("cfmt corpus check (%s)", p.Engine())
			outcomes, rerr = runCorpusWithUI(cmd.Context(), cmd.OutOrStdout(), title, p, setup.cases, setup.opts)
		} else {
			outcomes, rerr = corpus.Run(cmd.Context(), p, setup.cases, setup.opts)
		}
		return rerr
	})
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	summary := corpus.Summarize(outcomes)
	printFailures(cmd.ErrOrStderr(), outcomes)
	if !s.quiet || summary.Fail > 0 {
		printSummary(cmd.OutOrStdout(), p.Engine(), summary)
	}
	if summary.Fail > 0 {
		return fmt.Errorf("%d of %d cases failed", summary.Fail, len(outcomes))
	}
	return nil
}

func printFailures(out io.Writer, outcomes []corpus.Outcome) {
	fail := color.New(color.FgRed, color.Bold)
	for _, o := range outcomes {
		if o.Pass {
			continue
		}
		fmt.Fprintf(out, "%s %s: %s\n", fail.Sprint("FAIL"), o.Case.Name, o.Reason)
	}
}

func printSummary(out io.Writer, engine string, s corpus.Summary) {
	parts := []string{color.GreenString("%d passed", s.Pass)}
	if s.Fail > 0 {
		parts = append(parts, color.RedString("%d failed", s.Fail))
	}
	if s.Unchecked > 0 {
		parts = append(parts, color.YellowString("%d unchecked", s.Unchecked))
	}
	fmt.Fprintf(out, "%s [%s]\n", strings.Join(parts, ", "), engine)
}
