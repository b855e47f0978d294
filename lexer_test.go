// lexer_test.go
package sky

import (
	"reflect"
	"strings"
	"testing"
)

func lexAll(t *testing.T, src string) []Token {
	t.Helper()
	l := NewLexer(src)
	var out []Token
	for !l.EOF() {
		tok, ok := l.Next()
		if !ok {
			break
		}
		out = append(out, tok)
	}
	return out
}

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Kind)
	}
	return out
}

func wantKinds(t *testing.T, src string, want []TokenKind) []Token {
	t.Helper()
	got := lexAll(t, src)
	gotKinds := kinds(got)
	if !reflect.DeepEqual(gotKinds, want) {
		t.Fatalf("\nsource:\n%s\nwant kinds:\n%v\ngot kinds:\n%v\n", src, want, gotKinds)
	}
	return got
}

func Test_Lexer_Punctuation(t *testing.T) {
	wantKinds(t, "@$&|:.,()[]{};+-*/?!#=<>%", []TokenKind{
		AT, DOLLAR, AMP, PIPE, COLON, DOT, COMMA,
		LROUND, RROUND, LSQUARE, RSQUARE, LCURLY, RCURLY,
		SEMI, PLUS, MINUS, STAR, DIV, QUESTION, BANG, HASH,
		EQ, LESS, GREATER, PERCENT,
	})
}

func Test_Lexer_LetStatement(t *testing.T) {
	got := wantKinds(t, "let x = 42;", []TokenKind{
		IDENT, WHITESPACE, IDENT, WHITESPACE, EQ, WHITESPACE, LIT, SEMI,
	})
	lit := got[6]
	if lit.Lit.Class != IntLit || lit.Lit.Base != BaseNone || lit.Lit.SuffOff != -1 {
		t.Fatalf("literal token: got %+v", lit.Lit)
	}
}

func Test_Lexer_SpansReconstructSource(t *testing.T) {
	src := "let x = 0xFF.8f64 + 'it\\'s' // done\n"
	var b strings.Builder
	for _, tok := range lexAll(t, src) {
		b.WriteString(src[tok.Index:tok.End()])
	}
	if b.String() != src {
		t.Fatalf("spans do not tile the source:\nwant %q\ngot  %q", src, b.String())
	}
}

func Test_Lexer_OneTokenLookahead(t *testing.T) {
	l := NewLexer("a b")
	first := l.Peek()
	if first == nil || first.Kind != IDENT {
		t.Fatalf("Peek: want IDENT, got %+v", first)
	}
	if again := l.Peek(); again != first {
		t.Fatalf("Peek must be stable until Next")
	}
	tok, ok := l.Next()
	if !ok || tok != *first {
		t.Fatalf("Next must return the peeked token, got %+v", tok)
	}
	// The final token stays observable one call after the cursor drains.
	l.Next() // whitespace
	if l.EOF() {
		t.Fatalf("EOF must wait for the lookahead to drain")
	}
	if tok, ok := l.Next(); !ok || tok.Kind != IDENT {
		t.Fatalf("want trailing IDENT, got %+v ok=%v", tok, ok)
	}
	if !l.EOF() {
		t.Fatalf("EOF: want true after last token")
	}
}

func Test_Lexer_RadixPrefixes(t *testing.T) {
	cases := []struct {
		src  string
		base NumBase
	}{
		{"0b101", BaseBin},
		{"0o17", BaseOct},
		{"0xFF", BaseHex},
		{"42", BaseNone},
		{"0", BaseNone},
	}
	for _, tc := range cases {
		got := lexAll(t, tc.src)
		if len(got) != 1 {
			t.Fatalf("%s: want 1 token, got %d", tc.src, len(got))
		}
		tok := got[0]
		if tok.Kind != LIT || tok.Lit.Class != IntLit || tok.Lit.Base != tc.base {
			t.Fatalf("%s: got kind=%v lit=%+v", tc.src, tok.Kind, tok.Lit)
		}
		if tok.Size != len(tc.src) {
			t.Fatalf("%s: span must include the prefix, got size %d", tc.src, tok.Size)
		}
	}
}

func Test_Lexer_FractionNeedsSameDigitClass(t *testing.T) {
	// Hex digits after the dot continue the literal.
	got := lexAll(t, "0xFF.8")
	if len(got) != 1 || got[0].Lit.Class != FloatLit {
		t.Fatalf("0xFF.8: want one FloatLit token, got %+v", got)
	}

	// 'F' is not a binary digit, so the dot ends the number.
	got = lexAll(t, "0b10.F")
	want := []TokenKind{LIT, DOT, IDENT}
	if !reflect.DeepEqual(kinds(got), want) {
		t.Fatalf("0b10.F: want %v, got %v", want, kinds(got))
	}
	if got[0].Lit.Class != IntLit {
		t.Fatalf("0b10.F: leading literal must stay integral, got %+v", got[0].Lit)
	}

	// A trailing dot with no digit after it is a separate token too.
	got = lexAll(t, "1.x")
	if !reflect.DeepEqual(kinds(got), []TokenKind{LIT, DOT, IDENT}) {
		t.Fatalf("1.x: got %v", kinds(got))
	}
}

func Test_Lexer_NumericSuffixOffset(t *testing.T) {
	cases := []struct {
		src     string
		suffOff int
		class   LitClass
	}{
		{"10u64", 2, IntLit},
		{"3.5f32", 3, FloatLit},
		{"0xFFu32", 4, IntLit},
		{"7i64", 1, IntLit},
		{"42", -1, IntLit},
	}
	for _, tc := range cases {
		got := lexAll(t, tc.src)
		if len(got) != 1 {
			t.Fatalf("%s: want 1 token, got %d", tc.src, len(got))
		}
		tok := got[0]
		if tok.Lit.SuffOff != tc.suffOff || tok.Lit.Class != tc.class {
			t.Fatalf("%s: got lit %+v", tc.src, tok.Lit)
		}
		if tok.Size != len(tc.src) {
			t.Fatalf("%s: span must include the suffix, got size %d", tc.src, tok.Size)
		}
	}
}

func Test_Lexer_Strings(t *testing.T) {
	// Both quote styles; the span includes the quotes.
	for _, src := range []string{`"hello"`, `'hello'`} {
		got := lexAll(t, src)
		if len(got) != 1 || got[0].Kind != LIT || got[0].Lit.Class != StrLit {
			t.Fatalf("%s: want one StrLit, got %+v", src, got)
		}
		if got[0].Size != len(src) {
			t.Fatalf("%s: want size %d, got %d", src, len(src), got[0].Size)
		}
	}

	// An escaped quote never terminates the literal.
	src := `'it\'s' x`
	got := lexAll(t, src)
	if got[0].Size != 7 {
		t.Fatalf("escaped quote: want size 7, got %d", got[0].Size)
	}

	// Unterminated strings run to end of input.
	got = lexAll(t, `"open`)
	if len(got) != 1 || got[0].Size != 5 {
		t.Fatalf("unterminated string: got %+v", got)
	}
}

func Test_Lexer_Comments(t *testing.T) {
	got := wantKinds(t, "1 // rest of line\n2", []TokenKind{
		LIT, WHITESPACE, LINE_COMMENT, LIT,
	})
	// The line comment owns the newline that ends it.
	if c := got[2]; c.Size != len("// rest of line\n") {
		t.Fatalf("line comment size: got %d", c.Size)
	}

	wantKinds(t, "1 /* inner * stuff */ 2", []TokenKind{
		LIT, WHITESPACE, BLOCK_COMMENT, WHITESPACE, LIT,
	})

	// Unterminated block comments run to end of input.
	wantKinds(t, "/* open", []TokenKind{BLOCK_COMMENT})
}

func Test_Lexer_IdentContinueChars(t *testing.T) {
	got := lexAll(t, "get#id$x@y rest")
	if got[0].Kind != IDENT || got[0].Size != len("get#id$x@y") {
		t.Fatalf("ident with #, $, @ continuation: got %+v", got[0])
	}
}

func Test_Lexer_UnknownRune(t *testing.T) {
	got := wantKinds(t, "^", []TokenKind{UNKNOWN})
	if got[0].Size != 1 {
		t.Fatalf("unknown token size: got %d", got[0].Size)
	}
}
