package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const configFileName = "cfmt.toml"

// fileConfig mirrors cfmt.toml. Command-line flags win over every field.
type fileConfig struct {
	Path   string       `toml:"-"`
	Format formatConfig `toml:"format"`
	Trace  traceConfig  `toml:"trace"`
	Corpus corpusConfig `toml:"corpus"`
}

type formatConfig struct {
	Engine  string `toml:"engine"`
	Newline bool   `toml:"newline"`
	NFC     bool   `toml:"nfc"`
}

type traceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
	Mode   string `toml:"mode"`
}

type corpusConfig struct {
	Jobs   int    `toml:"jobs"`
	UI     string `toml:"ui"`
	Golden string `toml:"golden"`
}

func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadConfig reads explicit when set, otherwise the nearest cfmt.toml above
// the working directory. No file at all yields the zero config.
func loadConfig(explicit string) (fileConfig, error) {
	path := explicit
	if path == "" {
		found, ok, err := findConfig(".")
		if err != nil || !ok {
			return fileConfig{}, err
		}
		path = found
	}

	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return fileConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fileConfig{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Corpus.Jobs < 0 {
		return fileConfig{}, fmt.Errorf("%s: [corpus].jobs must not be negative", path)
	}
	cfg.Path = path
	if cfg.Corpus.Golden != "" && !filepath.IsAbs(cfg.Corpus.Golden) {
		cfg.Corpus.Golden = filepath.Join(filepath.Dir(path), cfg.Corpus.Golden)
	}
	return cfg, nil
}
