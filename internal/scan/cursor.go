package scan

import "strings"

// Cursor is a byte position inside a template.
type Cursor struct {
	Src string
	Off int
}

// NewCursor creates a cursor at the start of src.
func NewCursor(src string) Cursor {
	return Cursor{Src: src}
}

// EOF reports whether the whole template has been consumed.
func (c *Cursor) EOF() bool {
	return c.Off >= len(c.Src)
}

// Peek returns the current byte, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Src[c.Off]
}

// Peek2 returns the current and the next byte when both exist.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= len(c.Src) {
		return 0, 0, false
	}
	return c.Src[c.Off], c.Src[c.Off+1], true
}

// Bump advances by one byte and returns it.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Src[c.Off]
	c.Off++
	return b
}

// Mark is a saved cursor position.
type Mark int

// Mark saves the current position.
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// From returns the text consumed since m.
func (c *Cursor) From(m Mark) string {
	return c.Src[int(m):c.Off]
}

// Reset moves the cursor back to m.
func (c *Cursor) Reset(m Mark) {
	c.Off = int(m)
}

// Eat consumes the next byte if it equals b.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Src[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// EatRun consumes bytes while they belong to set and returns how many were eaten.
func (c *Cursor) EatRun(set string) int {
	n := 0
	for !c.EOF() && strings.IndexByte(set, c.Src[c.Off]) >= 0 {
		c.Off++
		n++
	}
	return n
}

// EatDigits consumes a run of ASCII digits.
func (c *Cursor) EatDigits() int {
	return c.EatRun("0123456789")
}
