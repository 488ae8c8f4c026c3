package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"cfmt"
	"cfmt/internal/corpus"
)

func newPrintfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "printf TEMPLATE [ARG...]",
		Short: "Format typed argument literals through a template",
		Long: `Format typed argument literals through a template.

Arguments are written kind:value, for example int:5, ulong:0xff,
double:3.14, char:a, str:Hello, ptr:0x1000 or the bare literal null.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runPrintf,
	}
	cmd.Flags().String("engine", "", "rendering engine (auto|libc|go)")
	cmd.Flags().Bool("newline", false, "append a newline after the output")
	cmd.Flags().Bool("nfc", false, "NFC-normalize str and bytes literals")
	return cmd
}

func runPrintf(cmd *cobra.Command, args []string) (err error) {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer func() { err = s.close(cmd, err) }()

	engine, err := cmd.Flags().GetString("engine")
	if err != nil {
		return fmt.Errorf("failed to get engine flag: %w", err)
	}
	if !cmd.Flags().Changed("engine") && s.cfg.Format.Engine != "" {
		engine = s.cfg.Format.Engine
	}
	newline, err := cmd.Flags().GetBool("newline")
	if err != nil {
		return fmt.Errorf("failed to get newline flag: %w", err)
	}
	newline = newline || s.cfg.Format.Newline
	nfc, err := cmd.Flags().GetBool("nfc")
	if err != nil {
		return fmt.Errorf("failed to get nfc flag: %w", err)
	}
	nfc = nfc || s.cfg.Format.NFC

	p, err := newPrinter(engine, s)
	if err != nil {
		return err
	}
	values, err := corpus.ParseArgs(args[1:], corpus.ArgOptions{NFC: nfc})
	if err != nil {
		return fmt.Errorf("invalid argument: %w", err)
	}

	out := cmd.OutOrStdout()
	err = s.timer.Track("format", func() error {
		_, ferr := p.FormatTo(out, args[0], values...)
		return ferr
	})
	if err != nil {
		return fmt.Errorf("format failed: %w", err)
	}
	if newline {
		_, _ = io.WriteString(out, "\n")
	}
	return nil
}

func newPrinter(engine string, s *session) (*cfmt.Printer, error) {
	opts := []cfmt.Option{cfmt.WithTracer(s.tracer)}
	if engine != "" {
		opts = append(opts, cfmt.WithEngine(engine))
	}
	p, err := cfmt.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create printer: %w", err)
	}
	return p, nil
}
