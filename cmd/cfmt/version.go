package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"cfmt"
	"cfmt/internal/version"
)

type versionInfo struct {
	Version    string
	GitCommit  string
	GitMessage string
	BuildDate  string
	Engines    []string
}

type versionOptions struct {
	format      string
	showHash    bool
	showMessage bool
	showDate    bool
}

type versionPayload struct {
	Tool       string   `json:"tool"`
	Version    string   `json:"version"`
	Engines    []string `json:"engines"`
	GitCommit  string   `json:"git_commit,omitempty"`
	GitMessage string   `json:"git_message,omitempty"`
	BuildDate  string   `json:"build_date,omitempty"`
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show cfmt build fingerprints",
		Args:  cobra.NoArgs,
		RunE:  runVersion,
	}
	cmd.Flags().Bool("hash", false, "include git commit hash")
	cmd.Flags().Bool("message", false, "include git commit message")
	cmd.Flags().Bool("date", false, "include build timestamp")
	cmd.Flags().Bool("full", false, "show every recorded bit of build metadata")
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	opts, err := readVersionOptions(cmd)
	if err != nil {
		return err
	}
	if err := applyColorFlag(cmd); err != nil {
		return err
	}

	info := collectVersionInfo()
	if opts.format == "json" {
		return renderVersionJSON(cmd.OutOrStdout(), info, opts)
	}
	renderVersionPretty(cmd.OutOrStdout(), info, opts)
	return nil
}

func readVersionOptions(cmd *cobra.Command) (versionOptions, error) {
	flags := cmd.Flags()
	full, err := flags.GetBool("full")
	if err != nil {
		return versionOptions{}, fmt.Errorf("failed to get full flag: %w", err)
	}
	hash, err := flags.GetBool("hash")
	if err != nil {
		return versionOptions{}, fmt.Errorf("failed to get hash flag: %w", err)
	}
	message, err := flags.GetBool("message")
	if err != nil {
		return versionOptions{}, fmt.Errorf("failed to get message flag: %w", err)
	}
	date, err := flags.GetBool("date")
	if err != nil {
		return versionOptions{}, fmt.Errorf("failed to get date flag: %w", err)
	}
	formatFlag, err := flags.GetString("format")
	if err != nil {
		return versionOptions{}, fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := readFormat(formatFlag, "pretty", "json")
	if err != nil {
		return versionOptions{}, err
	}
	return versionOptions{
		format:      format,
		showHash:    hash || full,
		showMessage: message || full,
		showDate:    date || full,
	}, nil
}

// applyColorFlag honours --color without opening a full session, so version
// works even when cfmt.toml is broken.
func applyColorFlag(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	return applyColor(mode, cmd.OutOrStdout())
}

func collectVersionInfo() versionInfo {
	v := strings.TrimSpace(version.Version)
	if v == "" {
		v = "dev"
	}
	return versionInfo{
		Version:    v,
		GitCommit:  strings.TrimSpace(version.GitCommit),
		GitMessage: strings.TrimSpace(version.GitMessage),
		BuildDate:  strings.TrimSpace(version.BuildDate),
		Engines:    cfmt.Engines(),
	}
}

func renderVersionPretty(out io.Writer, info versionInfo, opts versionOptions) {
	fmt.Fprintf(out, "cfmt %s (engines: %s)\n", version.Colored(), strings.Join(info.Engines, ", "))
	if opts.showHash {
		fmt.Fprintf(out, "commit:  %s\n", valueOrUnknown(info.GitCommit))
	}
	if opts.showMessage {
		fmt.Fprintf(out, "message: %s\n", valueOrUnknown(info.GitMessage))
	}
	if opts.showDate {
		fmt.Fprintf(out, "built:   %s\n", valueOrUnknown(info.BuildDate))
	}
}

func renderVersionJSON(out io.Writer, info versionInfo, opts versionOptions) error {
	payload := versionPayload{
		Tool:    "cfmt",
		Version: info.Version,
		Engines: info.Engines,
	}
	if opts.showHash {
		payload.GitCommit = valueOrUnknown(info.GitCommit)
	}
	if opts.showMessage {
		payload.GitMessage = valueOrUnknown(info.GitMessage)
	}
	if opts.showDate {
		payload.BuildDate = valueOrUnknown(info.BuildDate)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
