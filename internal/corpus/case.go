// Package corpus runs golden formatting cases: it reads case files, renders
// them through a Printer, stores the results and compares later runs
// against them.
package corpus

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Case is one template with its argument literals. Want and Error are
// optional inline expectations; Error names a code ID (SUB2002) or a kind
// ("type mismatch").
type Case struct {
	Name     string   `toml:"name"`
	Template string   `toml:"template"`
	Args     []string `toml:"args"`
	Want     *string  `toml:"want"`
	Error    string   `toml:"error"`
}

// Expand derives extra cases from every case that is expected to succeed.
type Expand struct {
	// Wrap surrounds the template with each string on both sides.
	Wrap []string `toml:"wrap"`
	// PadFrom..PadTo prefix the template with that many '@' bytes.
	PadFrom int `toml:"pad_from"`
	PadTo   int `toml:"pad_to"`
}

// File is a decoded case file.
type File struct {
	Path   string `toml:"-"`
	Engine string `toml:"engine"`
	Expand Expand `toml:"expand"`
	Cases  []Case `toml:"case"`
}

// LoadFile decodes a TOML case file. Unknown keys are errors.
func LoadFile(path string) (*File, error) {
	var f File
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to read cases: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	f.Path = path
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &f, nil
}

func (f *File) validate() error {
	seen := make(map[string]struct{}, len(f.Cases))
	var errs []error
	for i, c := range f.Cases {
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("case #%d has no name", i+1))
			continue
		}
		if _, dup := seen[c.Name]; dup {
			errs = append(errs, fmt.Errorf("duplicate case name %q", c.Name))
		}
		seen[c.Name] = struct{}{}
		if c.Want != nil && c.Error != "" {
			errs = append(errs, fmt.Errorf("case %q sets both want and error", c.Name))
		}
	}
	if f.Expand.PadTo < f.Expand.PadFrom {
		errs = append(errs, fmt.Errorf("expand: pad_to %d is below pad_from %d", f.Expand.PadTo, f.Expand.PadFrom))
	}
	return errors.Join(errs...)
}

// All returns the declared cases followed by the expanded ones.
func (f *File) All() []Case {
	out := append([]Case(nil), f.Cases...)
	for _, c := range f.Cases {
		if c.Error != "" {
			continue
		}
		for i, w := range f.Expand.Wrap {
			out = append(out, derive(c, "wrap"+strconv.Itoa(i), w, w))
		}
		if f.Expand.PadTo > 0 {
			for n := f.Expand.PadFrom; n <= f.Expand.PadTo; n++ {
				out = append(out, derive(c, "pad"+strconv.Itoa(n), strings.Repeat("@", n), ""))
			}
		}
	}
	return out
}

func derive(c Case, suffix, left, right string) Case {
	d := Case{
		Name:     c.Name + "/" + suffix,
		Template: escapeLiteral(left) + c.Template + escapeLiteral(right),
		Args:     c.Args,
	}
	if c.Want != nil {
		want := left + *c.Want + right
		d.Want = &want
	}
	return d
}

func escapeLiteral(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}
