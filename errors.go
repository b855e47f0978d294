// errors.go: parse diagnostics and caret-snippet rendering.
//
// The parser accumulates ParseError values in source order instead of
// aborting, but a failing sub-parse still produces no expression, so
// the first error in a branch generally ends the parse of that
// branch. Errors carry the byte span of the offending lexeme; line
// and column are derived only when rendering.
//
// WrapErrorWithSource turns a *ParseError into a readable snippet
// with a caret under the offending column:
//
//	PARSE ERROR at 3:12: unexpected token
//
//	   2 | let x = (1 + 2
//	   3 |              )
//	     |            ^
//	   4 | x
package sky

import (
	"fmt"
	"strings"
)

// ErrKind discriminates parse diagnostics.
type ErrKind int

const (
	// ErrUnexpectedToken covers an atom start that matches no grammar
	// rule and an unrecognized numeric suffix.
	ErrUnexpectedToken ErrKind = iota
	// ErrExpectedToken reports a missing token, e.g. an unclosed ')'
	// or '}' at end of input.
	ErrExpectedToken
)

// ParseError is a diagnostic tagged with the byte index and length of
// the offending span in the original source.
type ParseError struct {
	Kind  ErrKind
	Msg   string
	Index int
	Len   int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at byte %d: %s", e.Index, e.message())
}

func (e *ParseError) message() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "unexpected token"
}

// WrapErrorWithSource returns an error whose message is a caret
// snippet of the source around a *ParseError. Other errors are
// returned unchanged.
func WrapErrorWithSource(err error, src string) error {
	pe, ok := err.(*ParseError)
	if !ok {
		return err
	}
	line, col := posAtByte(src, pe.Index)
	return fmt.Errorf("%s", prettyErrorString(src, "PARSE ERROR", line, col, pe.message()))
}

// posAtByte converts a byte offset into 1-based line and column.
func posAtByte(src string, b int) (int, int) {
	if b < 0 {
		b = 0
	}
	if b > len(src) {
		b = len(src)
	}
	line := 1 + strings.Count(src[:b], "\n")
	lastNL := strings.LastIndex(src[:b], "\n")
	if lastNL < 0 {
		return line, b + 1
	}
	return line, b - lastNL
}

// prettyErrorString builds the snippet: header, up to one line of
// context on each side, and a caret under the 1-based column.
// Coordinates are clamped to the source bounds.
func prettyErrorString(src, header string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
