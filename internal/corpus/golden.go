package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// bump when Golden changes shape
const goldenSchema uint16 = 1

// Result is what one case produced: output on success, or the error code
// and message.
type Result struct {
	Output  string `msgpack:"out"`
	Code    string `msgpack:"code,omitempty"`
	Message string `msgpack:"msg,omitempty"`
}

// Failed reports whether the case ended in an error.
func (r Result) Failed() bool {
	return r.Code != ""
}

// Golden is a recorded run, keyed by case name.
type Golden struct {
	Schema  uint16            `msgpack:"schema"`
	Engine  string            `msgpack:"engine"`
	Results map[string]Result `msgpack:"results"`
}

// WriteGolden encodes g next to path and renames it into place, so readers
// never see a half-written file.
func WriteGolden(path string, g *Golden) (err error) {
	g.Schema = goldenSchema
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".golden-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(g); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// ErrGoldenSchema is returned for golden files written by another version.
var ErrGoldenSchema = errors.New("golden file schema mismatch")

// ReadGolden decodes a golden file.
func ReadGolden(path string) (*Golden, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var g Golden
	if err := msgpack.NewDecoder(f).Decode(&g); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if g.Schema != goldenSchema {
		return nil, fmt.Errorf("%s: %w (have %d, want %d)", path, ErrGoldenSchema, g.Schema, goldenSchema)
	}
	return &g, nil
}
