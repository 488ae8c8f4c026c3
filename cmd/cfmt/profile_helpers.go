package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cfmt/internal/prof"
)

func readProfileOptions(cmd *cobra.Command) (prof.Options, error) {
	flags := cmd.Root().PersistentFlags()
	cpu, err := flags.GetString("cpu-profile")
	if err != nil {
		return prof.Options{}, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	mem, err := flags.GetString("mem-profile")
	if err != nil {
		return prof.Options{}, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	rt, err := flags.GetString("runtime-trace")
	if err != nil {
		return prof.Options{}, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	return prof.Options{CPU: cpu, Mem: mem, Runtime: rt}, nil
}

func startProfiling(cmd *cobra.Command) (*prof.Session, error) {
	opts, err := readProfileOptions(cmd)
	if err != nil {
		return nil, err
	}
	if !opts.Enabled() {
		return nil, nil
	}
	return prof.Start(opts)
}
