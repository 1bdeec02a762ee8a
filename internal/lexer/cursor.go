package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"ic10lsp/internal/source"
)

// Cursor walks the bytes of one file. Off never exceeds len(src).
type Cursor struct {
	src  []byte
	file source.FileID
	Off  uint32
}

// NewCursor panics for files that do not fit a uint32 offset; the parser
// rejects those long before lexing.
func NewCursor(f *source.File) Cursor {
	if _, err := safecast.Conv[uint32](len(f.Content)); err != nil {
		panic(fmt.Errorf("lexer: %s: %w", f.Path, err))
	}
	return Cursor{src: f.Content, file: f.ID}
}

func (c *Cursor) EOF() bool { return int(c.Off) >= len(c.src) }

// rest is the unread tail.
func (c *Cursor) rest() []byte { return c.src[c.Off:] }

// Peek returns the current byte, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if r := c.rest(); len(r) > 0 {
		return r[0]
	}
	return 0
}

// Peek2 returns the current and next byte when both exist.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	r := c.rest()
	if len(r) < 2 {
		return 0, 0, false
	}
	return r[0], r[1], true
}

// Bump consumes one byte. At EOF it returns 0 and stays put.
func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.Off++
	}
	return b
}

// BumpWhile consumes the run of bytes accepted by pred and returns its length.
func (c *Cursor) BumpWhile(pred func(byte) bool) int {
	start := c.Off
	for _, b := range c.rest() {
		if !pred(b) {
			break
		}
		c.Off++
	}
	return int(c.Off - start)
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if c.Peek() != b || c.EOF() {
		return false
	}
	c.Off++
	return true
}

// Mark is a saved offset for SpanFrom and Reset.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }

// SpanFrom covers the bytes read since m.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.file, Start: uint32(m), End: c.Off}
}
