package scan

// Info is the working record filled by Next. One Info serves a whole
// template: Next resets it before every conversion.
type Info struct {
	// Prefix is the literal text before the conversion, with %% collapsed.
	Prefix []byte
	// Format is '%' plus flags, width and precision.
	Format []byte
	Length string
	Spec   byte
	// Suffix is the unconsumed tail of the scanned string.
	Suffix string
	// Pos is the offset of the conversion's '%' in the scanned string.
	Pos int
}

// NewInfo returns an Info with pre-reserved scratch space.
func NewInfo() *Info {
	return &Info{
		Prefix: make([]byte, 0, 64),
		Format: make([]byte, 0, 16),
	}
}

// Reset clears the record while keeping the reserved capacity.
func (i *Info) Reset() {
	i.Prefix = i.Prefix[:0]
	i.Format = i.Format[:0]
	i.Length = ""
	i.Spec = 0
	i.Suffix = ""
	i.Pos = -1
}

// Conversion returns the full conversion text, e.g. "%-08.3lf".
func (i *Info) Conversion() string {
	if i.Spec == 0 {
		return ""
	}
	return string(i.Format) + i.Length + string(i.Spec)
}
