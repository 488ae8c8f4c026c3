package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"cfmt/internal/ctype"
	"cfmt/internal/subst"
)

func newTypesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the supported argument types and their conversions",
		Args:  cobra.NoArgs,
		RunE:  runTypes,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

type typeRow struct {
	Kind    string `json:"kind"`
	CType   string `json:"c_type"`
	Length  string `json:"length"`
	Specs   string `json:"specs"`
	Default string `json:"default"`
	Promo   string `json:"promotes_to"`
}

func collectTypes() []typeRow {
	table := ctype.Table()
	rows := make([]typeRow, 0, len(table))
	for _, d := range table {
		rows = append(rows, typeRow{
			Kind:    d.Kind.String(),
			CType:   subst.TypeName(d.Kind),
			Length:  d.Length,
			Specs:   d.Specs,
			Default: string(d.Default()),
			Promo:   d.Promo.String(),
		})
	}
	return rows
}

func runTypes(cmd *cobra.Command, _ []string) (err error) {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer func() { err = s.close(cmd, err) }()

	formatFlag, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := readFormat(formatFlag, "pretty", "json")
	if err != nil {
		return err
	}

	rows := collectTypes()
	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	printTypesPretty(cmd.OutOrStdout(), rows)
	return nil
}

func printTypesPretty(out io.Writer, rows []typeRow) {
	width := len("kind")
	for _, r := range rows {
		width = max(width, runewidth.StringWidth(r.Kind))
	}
	head := color.New(color.Bold)
	spec := color.New(color.FgCyan)
	fmt.Fprintln(out, head.Sprintf("%s  %-6s  %-8s  %s", runewidth.FillRight("kind", width), "length", "specs", "promotes to"))
	for _, r := range rows {
		length := r.Length
		if length == "" {
			length = "-"
		}
		rest := strings.TrimPrefix(r.Specs, r.Default)
		fmt.Fprintf(out, "%s  %-6s  %s%s%s  %s\n",
			runewidth.FillRight(r.Kind, width),
			length,
			spec.Sprint(r.Default),
			rest,
			strings.Repeat(" ", max(0, 8-len(r.Specs))),
			r.Promo)
	}
}
