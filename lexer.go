// lexer.go: the sky tokenizer.
//
// The lexer wraps a Cursor and classifies raw characters into one
// Token per call, keeping exactly one token of lookahead for the
// parser. Every token carries its byte span in the original source:
// slicing the source at [Index, Index+Size) reproduces the lexeme,
// quotes and radix prefixes included.
package sky

import "unicode"

// TokenKind classifies a lexeme.
type TokenKind int

const (
	UNKNOWN TokenKind = iota

	// Punctuation
	AT       // "@"
	DOLLAR   // "$"
	AMP      // "&"
	PIPE     // "|"
	COLON    // ":"
	DOT      // "."
	COMMA    // ","
	LROUND   // "("
	RROUND   // ")"
	LSQUARE  // "["
	RSQUARE  // "]"
	LCURLY   // "{"
	RCURLY   // "}"
	SEMI     // ";"
	PLUS     // "+"
	MINUS    // "-"
	STAR     // "*"
	DIV      // "/"
	QUESTION // "?"
	BANG     // "!"
	HASH     // "#"
	EQ       // "="
	LESS     // "<"
	GREATER  // ">"
	PERCENT  // "%"

	IDENT
	LIT

	WHITESPACE
	LINE_COMMENT
	BLOCK_COMMENT
)

// LitClass is the shape of a literal token.
type LitClass int

const (
	IntLit LitClass = iota
	FloatLit
	StrLit
)

// NumBase is the radix of a numeric literal. BaseNone means no radix
// prefix was written; interpretation then defaults to decimal.
type NumBase int

const (
	BaseNone NumBase = 0
	BaseBin  NumBase = 2
	BaseOct  NumBase = 8
	BaseDec  NumBase = 10
	BaseHex  NumBase = 16
)

// Radix returns the numeric base, defaulting to decimal.
func (b NumBase) Radix() int {
	if b == BaseNone {
		return 10
	}
	return int(b)
}

// Lit describes a literal token's sub-kind.
type Lit struct {
	Class LitClass
	Base  NumBase // BaseNone unless an explicit 0b/0o/0x prefix was scanned
	// SuffOff is the byte offset of the type suffix within the lexeme,
	// or -1 when the literal has none.
	SuffOff int
}

// Token is a classified lexeme with its exact source byte span.
type Token struct {
	Kind  TokenKind
	Lit   Lit // meaningful only when Kind == LIT
	Index int // byte offset of the lexeme start
	Size  int // lexeme length in bytes
}

// End is the byte offset just past the lexeme.
func (t Token) End() int { return t.Index + t.Size }

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isIDStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIDContinue(r rune) bool {
	return isIDStart(r) || isDigit(r) || r == '#' || r == '$' || r == '@'
}

func isAlphaNum(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// digitClass returns the digit predicate for a radix.
func digitClass(base NumBase) func(rune) bool {
	switch base {
	case BaseBin:
		return func(r rune) bool { return r == '0' || r == '1' }
	case BaseOct:
		return func(r rune) bool { return r >= '0' && r <= '7' }
	case BaseHex:
		return isHexDigit
	}
	return isDigit
}

// Lexer scans sky source into tokens, one pull at a time.
type Lexer struct {
	input  *Cursor
	curTok *Token // one token of lookahead
}

func NewLexer(src string) *Lexer {
	l := &Lexer{input: NewCursor(src)}
	l.Peek()
	return l
}

// EOF is true only once the lookahead is drained too, so the final
// token stays observable one call after source exhaustion.
func (l *Lexer) EOF() bool { return l.input.EOF() && l.curTok == nil }

// Peek returns the lookahead token, populating it on demand.
func (l *Lexer) Peek() *Token {
	if l.curTok == nil {
		l.curTok = l.readToken()
	}
	return l.curTok
}

// Next returns the current lookahead and immediately refills it.
func (l *Lexer) Next() (Token, bool) {
	tok := l.curTok
	l.curTok = l.readToken()
	if tok == nil {
		return Token{}, false
	}
	return *tok, true
}

// readToken consumes one character to decide the token class, then
// possibly more to complete it.
func (l *Lexer) readToken() *Token {
	if l.input.EOF() {
		return nil
	}
	ch, _ := l.input.Next()
	var kind TokenKind
	lit := Lit{SuffOff: -1}
	switch ch {
	case '@':
		kind = AT
	case '$':
		kind = DOLLAR
	case '&':
		kind = AMP
	case '|':
		kind = PIPE
	case ':':
		kind = COLON
	case '.':
		kind = DOT
	case ',':
		kind = COMMA
	case '(':
		kind = LROUND
	case ')':
		kind = RROUND
	case '[':
		kind = LSQUARE
	case ']':
		kind = RSQUARE
	case '{':
		kind = LCURLY
	case '}':
		kind = RCURLY
	case ';':
		kind = SEMI
	case '+':
		kind = PLUS
	case '-':
		kind = MINUS
	case '*':
		kind = STAR
	case '/':
		kind = l.readDivOrComment()
	case '?':
		kind = QUESTION
	case '!':
		kind = BANG
	case '#':
		kind = HASH
	case '=':
		kind = EQ
	case '<':
		kind = LESS
	case '>':
		kind = GREATER
	case '%':
		kind = PERCENT
	case '"', '\'':
		kind = LIT
		lit = l.readString(ch)
	default:
		switch {
		case isDigit(ch):
			kind = LIT
			lit = l.readNumber(ch)
		case isIDStart(ch):
			kind = IDENT
			l.readIdent()
		case unicode.IsSpace(ch):
			kind = WHITESPACE
			l.eatWhitespace()
		default:
			kind = UNKNOWN
		}
	}
	tok := &Token{
		Kind:  kind,
		Lit:   lit,
		Index: l.input.Index() - l.input.Len(),
		Size:  l.input.Len(),
	}
	l.input.ResetLen()
	return tok
}

func (l *Lexer) peekIs(want rune) bool {
	r, ok := l.input.Peek()
	return ok && r == want
}

func (l *Lexer) eatWhile(pred func(rune) bool) {
	for {
		r, ok := l.input.Peek()
		if !ok || !pred(r) {
			return
		}
		l.input.Next()
	}
}

func (l *Lexer) readDivOrComment() TokenKind {
	switch {
	case l.peekIs('*'):
		return l.eatBlockComment()
	case l.peekIs('/'):
		return l.eatLineComment()
	}
	return DIV
}

// eatBlockComment consumes until the first literal "*/"; nesting is
// not supported. An unterminated comment runs to end of input.
func (l *Lexer) eatBlockComment() TokenKind {
	l.input.Next() // '*'
	for !l.input.EOF() {
		ch, _ := l.input.Next()
		if ch == '*' && l.peekIs('/') {
			l.input.Next()
			break
		}
	}
	return BLOCK_COMMENT
}

// eatLineComment consumes until the first unescaped '\n'; a '\r'
// immediately after is absorbed into the comment.
func (l *Lexer) eatLineComment() TokenKind {
	l.input.Next() // second '/'
	for !l.input.EOF() {
		ch, _ := l.input.Next()
		if ch == '\\' {
			l.input.Next()
			continue
		}
		if ch == '\n' {
			if l.peekIs('\r') {
				l.input.Next()
			}
			break
		}
	}
	return LINE_COMMENT
}

// readNumber scans a numeric literal. A leading '0' followed by
// 'b', 'o' or 'x' selects the radix and consumes the prefix. A '.'
// only starts a fraction when the character after it belongs to the
// same digit class as the radix.
func (l *Lexer) readNumber(first rune) Lit {
	base := BaseNone
	if first == '0' {
		if r, ok := l.input.Peek(); ok {
			switch r {
			case 'b':
				base = BaseBin
			case 'o':
				base = BaseOct
			case 'x':
				base = BaseHex
			}
		}
		if base != BaseNone {
			l.input.Next()
		}
	}
	isDig := digitClass(base)
	l.eatWhile(isDig)

	class := IntLit
	if dot, ok := l.input.Peek(); ok && dot == '.' {
		if frac, ok := l.input.Preview(); ok && isDig(frac) {
			l.input.Next() // '.'
			l.eatWhile(isDig)
			class = FloatLit
		}
	}

	suffOff := -1
	if r, ok := l.input.Peek(); ok && (r == 'u' || r == 'i' || r == 'f') {
		suffOff = l.input.Len()
		l.input.Next()
		l.eatWhile(isAlphaNum)
	}
	return Lit{Class: class, Base: base, SuffOff: suffOff}
}

// readString consumes up to and including the first unescaped closing
// quote. A backslash never terminates the literal, whatever follows
// it. An unterminated string runs to end of input.
func (l *Lexer) readString(quote rune) Lit {
	for !l.input.EOF() {
		ch, _ := l.input.Next()
		if ch == '\\' {
			l.input.Next()
			continue
		}
		if ch == quote {
			break
		}
	}
	return Lit{Class: StrLit, SuffOff: -1}
}

func (l *Lexer) readIdent() {
	l.eatWhile(isIDContinue)
}

func (l *Lexer) eatWhitespace() {
	l.eatWhile(unicode.IsSpace)
}
