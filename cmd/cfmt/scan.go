package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"cfmt/internal/scan"
)

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan TEMPLATE",
		Short: "Show how a template decomposes into conversions",
		Args:  cobra.ExactArgs(1),
		RunE:  runScan,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|debug)")
	return cmd
}

type scanPart struct {
	Prefix     string `json:"prefix"`
	Conversion string `json:"conversion"`
	Format     string `json:"format"`
	Length     string `json:"length,omitempty"`
	Spec       string `json:"spec"`
	Offset     int    `json:"offset"`
}

type scanPayload struct {
	Template string     `json:"template"`
	Parts    []scanPart `json:"parts"`
	Tail     string     `json:"tail"`
	Error    string     `json:"error,omitempty"`
}

func runScan(cmd *cobra.Command, args []string) (err error) {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer func() { err = s.close(cmd, err) }()

	formatFlag, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := readFormat(formatFlag, "pretty", "json", "debug")
	if err != nil {
		return err
	}

	var (
		parts   []scan.Part
		tail    string
		scanErr error
	)
	_ = s.timer.Track("scan", func() error {
		parts, tail, scanErr = scan.Split(args[0])
		return scanErr
	})

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		payload := scanPayload{Template: args[0], Parts: make([]scanPart, 0, len(parts)), Tail: tail}
		for _, p := range parts {
			payload.Parts = append(payload.Parts, scanPart{
				Prefix:     p.Prefix,
				Conversion: p.Conversion(),
				Format:     p.Format,
				Length:     p.Length,
				Spec:       string(p.Spec),
				Offset:     p.Pos,
			})
		}
		if scanErr != nil {
			payload.Error = scanErr.Error()
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			return fmt.Errorf("failed to encode scan result: %w", err)
		}
	case "debug":
		if _, err := pretty.Fprintf(out, "%# v\n", parts); err != nil {
			return err
		}
		fmt.Fprintf(out, "tail: %q\n", tail)
	default:
		printScanPretty(out, parts, tail)
	}

	if scanErr != nil {
		return fmt.Errorf("scan failed: %w", scanErr)
	}
	return nil
}

func printScanPretty(out io.Writer, parts []scan.Part, tail string) {
	conv := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.Faint)
	for i, p := range parts {
		fmt.Fprintf(out, "%s %s %s",
			dim.Sprintf("#%d", i+1),
			dim.Sprint("@"+strconv.Itoa(p.Pos)),
			conv.Sprint(p.Conversion()))
		if p.Prefix != "" {
			fmt.Fprintf(out, "  prefix %q", p.Prefix)
		}
		if p.Length != "" {
			fmt.Fprintf(out, "  length %s", p.Length)
		}
		fmt.Fprintf(out, "  spec %c\n", p.Spec)
	}
	if tail != "" {
		fmt.Fprintf(out, "%s %q\n", dim.Sprint("tail"), tail)
	}
	if len(parts) == 0 && tail == "" {
		fmt.Fprintln(out, dim.Sprint("(empty template)"))
	}
}
