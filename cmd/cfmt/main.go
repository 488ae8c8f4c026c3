package main

import (
	"os"

	"github.com/spf13/cobra"

	"cfmt/internal/version"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cfmt",
		Short:         "Type-checked C printf formatting",
		Long:          `cfmt formats values through C printf conversions after checking every argument against its conversion`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newPrintfCmd())
	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newTypesCmd())
	rootCmd.AddCommand(newCorpusCmd())
	rootCmd.AddCommand(newVersionCmd())

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "path to cfmt.toml (default: nearest one above the working directory)")
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")

	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.Int("trace-ring-size", 4096, "events kept by the trace ring")
	flags.Duration("trace-heartbeat", 0, "heartbeat interval for long runs (0 disables)")

	flags.String("cpu-profile", "", "write a CPU profile to file")
	flags.String("mem-profile", "", "write a heap profile to file")
	flags.String("runtime-trace", "", "write a Go runtime trace to file")

	return rootCmd
}

// main runs the root command and exits with status 1 on any error.
func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("error:", err)
		os.Exit(1)
	}
}
