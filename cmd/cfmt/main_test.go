package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"cfmt/internal/ctype"
	"cfmt/internal/version"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--color", "off"}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestPrintf(t *testing.T) {
	out, _, err := execute(t, "printf", "--engine", "go", "%d|%-4s|%05.1f|%?", "int:5", "str:ab", "double:3.14159", "char:z")
	require.NoError(t, err)
	require.Equal(t, "5|ab  |003.1|z", out)

	out, _, err = execute(t, "printf", "--engine", "go", "--newline", "100%%")
	require.NoError(t, err)
	require.Equal(t, "100%\n", out)
}

func TestPrintfErrors(t *testing.T) {
	_, _, err := execute(t, "printf", "--engine", "go", "%d %d", "int:1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "ARG3001")

	_, _, err = execute(t, "printf", "--engine", "go", "%s", "int:1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "SUB2002")

	_, _, err = execute(t, "printf", "%d", "int:nope")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid argument")

	_, _, err = execute(t, "printf", "--engine", "nope", "x")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to create printer")
}

func TestScanJSON(t *testing.T) {
	out, _, err := execute(t, "scan", "--format", "json", "a%-5d b%?!")
	require.NoError(t, err)

	var payload scanPayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Len(t, payload.Parts, 2)
	require.Equal(t, scanPart{Prefix: "a", Conversion: "%-5d", Format: "%-5", Spec: "d", Offset: 1}, payload.Parts[0])
	require.Equal(t, " b", payload.Parts[1].Prefix)
	require.Equal(t, "%?", payload.Parts[1].Conversion)
	require.Equal(t, 7, payload.Parts[1].Offset)
	require.Equal(t, "!", payload.Tail)
	require.Empty(t, payload.Error)
}

func TestScanFormats(t *testing.T) {
	out, _, err := execute(t, "scan", "x%lld")
	require.NoError(t, err)
	require.Contains(t, out, "%lld")
	require.Contains(t, out, "length ll")

	out, _, err = execute(t, "scan", "--format", "debug", "%s")
	require.NoError(t, err)
	require.Contains(t, out, "scan.Part")

	_, _, err = execute(t, "scan", "--format", "yaml", "%s")
	require.Error(t, err)
}

func TestScanError(t *testing.T) {
	out, _, err := execute(t, "scan", "--format", "json", "ok %d then %y")
	require.Error(t, err)
	require.Contains(t, err.Error(), "SCN1002")

	var payload scanPayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Len(t, payload.Parts, 1)
	require.Contains(t, payload.Error, "SCN1002")
}

func TestTypes(t *testing.T) {
	out, _, err := execute(t, "types", "--format", "json")
	require.NoError(t, err)

	var rows []typeRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, len(ctype.Table()))
	require.Equal(t, "bool", rows[0].Kind)
	for _, r := range rows {
		if r.Kind == "string" {
			require.Equal(t, "const char *", r.CType)
			require.Equal(t, "s", r.Default)
		}
	}

	out, _, err = execute(t, "types")
	require.NoError(t, err)
	require.Contains(t, out, "unsigned long long")
	require.Contains(t, out, "fFeEaAgG")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version", "--format", "json", "--full")
	require.NoError(t, err)

	var payload versionPayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Equal(t, "cfmt", payload.Tool)
	require.Equal(t, version.Version, payload.Version)
	require.Contains(t, payload.Engines, "go")
	require.Equal(t, "unknown", payload.GitCommit)

	out, _, err = execute(t, "version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "cfmt "+version.Version))
	require.NotContains(t, out, "commit:")
}

const casesTOML = `
[[case]]
name = "int"
template = "%d"
args = ["int:5"]
want = "5"

[[case]]
name = "too-few"
template = "%d %d"
args = ["int:1"]
error = "ARG3001"

[[case]]
name = "free"
template = "[%5s]"
args = ["str:ab"]
`

func TestCorpusCheckInline(t *testing.T) {
	cases := writeFile(t, t.TempDir(), "cases.toml", casesTOML)
	out, _, err := execute(t, "corpus", "check", "--ui", "off", "--engine", "go", cases)
	require.NoError(t, err)
	require.Contains(t, out, "2 passed")
	require.Contains(t, out, "1 unchecked")
	require.Contains(t, out, "[go]")
}

func TestCorpusCheckFailure(t *testing.T) {
	cases := writeFile(t, t.TempDir(), "cases.toml", `
[[case]]
name = "wrong"
template = "%x"
args = ["uint:255"]
want = "FF"
`)
	out, errOut, err := execute(t, "corpus", "check", "--ui", "off", "--engine", "go", cases)
	require.Error(t, err)
	require.Contains(t, err.Error(), "1 of 1 cases failed")
	require.Contains(t, errOut, "FAIL wrong")
	require.Contains(t, out, "1 failed")
}

func TestCorpusRecordThenCheck(t *testing.T) {
	dir := t.TempDir()
	cases := writeFile(t, dir, "cases.toml", casesTOML)
	golden := filepath.Join(dir, "out", "golden.mp")

	_, errOut, err := execute(t, "corpus", "record", "--engine", "go", cases, "-o", golden)
	require.NoError(t, err)
	require.Contains(t, errOut, "recorded 3 cases with engine go")
	require.FileExists(t, golden)

	out, _, err := execute(t, "corpus", "check", "--ui", "off", "--engine", "go", "--golden", golden, cases)
	require.NoError(t, err)
	require.Contains(t, out, "3 passed")
	require.NotContains(t, out, "unchecked")
}

func TestCorpusRecordNeedsOutput(t *testing.T) {
	cases := writeFile(t, t.TempDir(), "cases.toml", casesTOML)
	_, _, err := execute(t, "corpus", "record", cases)
	require.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "cfmt.toml", `
[format]
engine = "go"
newline = true
`)
	out, _, err := execute(t, "--config", cfg, "printf", "%u", "uint:7")
	require.NoError(t, err)
	require.Equal(t, "7\n", out)

	bad := writeFile(t, dir, "bad.toml", "[format]\ncolour = true\n")
	_, _, err = execute(t, "--config", bad, "printf", "x")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown keys: format.colour")
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	want := writeFile(t, root, configFileName, "")

	got, ok, err := findConfig(nested)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, want, got)

	cfg, err := loadConfig(want)
	require.NoError(t, err)
	require.Equal(t, want, cfg.Path)
}

func TestConfigGoldenRelative(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "cfmt.toml", "[corpus]\ngolden = \"testdata/g.mp\"\njobs = 2\n")
	got, err := loadConfig(cfg)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "testdata", "g.mp"), got.Corpus.Golden)
	require.Equal(t, 2, got.Corpus.Jobs)
}

func TestTraceOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.ndjson")
	_, _, err := execute(t, "--trace", path, "--trace-level", "debug", "printf", "--engine", "go", "%d", "int:1")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.NotEmpty(t, lines)
	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.Equal(t, "format", first["name"])

	_, _, err = execute(t, "--trace-level", "loud", "printf", "x")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid trace level")
}

func TestTimings(t *testing.T) {
	_, errOut, err := execute(t, "--timings", "printf", "--engine", "go", "x")
	require.NoError(t, err)
	require.Contains(t, errOut, "timings:")
	require.Contains(t, errOut, "format")
}

func TestWantTUI(t *testing.T) {
	var buf bytes.Buffer
	for in, want := range map[string]bool{"": false, "AUTO": false, "on": true, " off ": false} {
		got, err := wantTUI(in, &buf)
		require.NoError(t, err)
		require.Equal(t, want, got, "--ui %q", in)
	}
	_, err := wantTUI("sometimes", &buf)
	require.Error(t, err)
}

func TestProfileFlags(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.pprof")
	mem := filepath.Join(dir, "mem.pprof")
	_, _, err := execute(t, "--cpu-profile", cpu, "--mem-profile", mem, "printf", "--engine", "go", "%d", "int:3")
	require.NoError(t, err)
	require.FileExists(t, cpu)
	require.FileExists(t, mem)
}
