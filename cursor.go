package sky

import "unicode/utf8"

// Cursor is a character-level reader over borrowed source text. It
// tracks the absolute byte index plus a resettable byte counter so the
// lexer can compute exact lexeme spans. Reading past the end simply
// yields no character.
type Cursor struct {
	src  string
	pos  int // byte offset of the next unread rune
	mark int // byte offset at the last ResetLen
}

func NewCursor(src string) *Cursor {
	return &Cursor{src: src}
}

// Peek returns the current unread rune without consuming it.
func (c *Cursor) Peek() (rune, bool) {
	if c.pos >= len(c.src) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(c.src[c.pos:])
	return r, true
}

// Preview returns the rune after the next one without consuming anything.
func (c *Cursor) Preview() (rune, bool) {
	if c.pos >= len(c.src) {
		return 0, false
	}
	_, size := utf8.DecodeRuneInString(c.src[c.pos:])
	if c.pos+size >= len(c.src) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(c.src[c.pos+size:])
	return r, true
}

// Next consumes one rune and advances the byte counters.
func (c *Cursor) Next() (rune, bool) {
	if c.pos >= len(c.src) {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(c.src[c.pos:])
	c.pos += size
	return r, true
}

// Len reports the bytes consumed since the last ResetLen.
func (c *Cursor) Len() int { return c.pos - c.mark }

// ResetLen restarts the byte counter at the current position.
func (c *Cursor) ResetLen() { c.mark = c.pos }

// Index is the absolute byte offset of the next unread rune.
func (c *Cursor) Index() int { return c.pos }

func (c *Cursor) EOF() bool { return c.pos >= len(c.src) }
