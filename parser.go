// parser.go: recursive-descent parser for sky.
//
// The parser pulls tokens from the Lexer's one-token lookahead and
// builds the Expr tree bottom-up. Binary operators are resolved with
// precedence climbing over the streamed operator kinds: each operator
// carries a fixed binding power (see BinOpKind.Precedence) and every
// operator, assignment included, groups left-to-right at equal
// precedence. Because the token stream has only one token of
// lookahead and two-character operators are disambiguated by
// consuming, the climber keeps a one-slot pushback for an operator
// scanned below the current minimum precedence.
//
// Lexical scopes are recorded in a ScopeArena: one "global" scope per
// parse, one child scope per '{' block, popped on every exit path.
//
// Failure policy: a sub-parse that cannot produce an expression
// pushes a ParseError (when it has something to point at) and returns
// nil, which callers propagate; the top level then stops consuming
// and leaves the remaining tokens untouched.
package sky

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse turns source text into an AST root plus the ordered list of
// parse errors accumulated along the way. With exactly one top-level
// expression the root is that expression; otherwise it is a
// CodeBlock of all of them in source order.
func Parse(src string) (Expr, []*ParseError) {
	p := NewParser(src)
	root := p.ParseProgram()
	return root, p.Errors
}

type Parser struct {
	lexer  *Lexer
	src    string
	Errors []*ParseError

	arena *ScopeArena
	stack []ScopeID

	pendingOp  BinOpKind // operator pushback for precedence climbing
	hasPending bool
}

func NewParser(src string) *Parser {
	return &Parser{
		lexer: NewLexer(src),
		src:   src,
		arena: NewScopeArena(),
	}
}

// Scopes exposes the arena recorded during the parse so a later
// analysis stage can walk the lexical tree.
func (p *Parser) Scopes() *ScopeArena { return p.arena }

// ParseProgram parses top-level expressions until the input is
// exhausted or an expression fails.
func (p *Parser) ParseProgram() Expr {
	p.stack = append(p.stack, p.arena.New("global", NoScope))
	var exprs []Expr
	for {
		p.skipTrivia()
		if p.lexer.EOF() {
			break
		}
		e := p.parseExpr(0)
		if e == nil {
			break // remaining tokens stay unconsumed
		}
		exprs = append(exprs, e)
		p.skipTrivia()
		if p.peekKind(SEMI) {
			p.lexer.Next()
		}
	}
	if len(exprs) == 1 {
		return exprs[0]
	}
	return &CodeBlock{Exprs: exprs}
}

// ───────────────────────── token helpers ─────────────────────────

// skipTrivia drops whitespace and comment tokens.
func (p *Parser) skipTrivia() {
	for {
		tok := p.lexer.Peek()
		if tok == nil {
			return
		}
		switch tok.Kind {
		case WHITESPACE, LINE_COMMENT, BLOCK_COMMENT:
			p.lexer.Next()
		default:
			return
		}
	}
}

func (p *Parser) peekKind(k TokenKind) bool {
	tok := p.lexer.Peek()
	return tok != nil && tok.Kind == k
}

func (p *Parser) lexeme(t Token) string {
	return p.src[t.Index:t.End()]
}

func (p *Parser) pushErr(kind ErrKind, msg string, index, length int) {
	p.Errors = append(p.Errors, &ParseError{Kind: kind, Msg: msg, Index: index, Len: length})
}

func (p *Parser) pushScope(name string) ScopeID {
	parent := NoScope
	if len(p.stack) > 0 {
		parent = p.stack[len(p.stack)-1]
	}
	id := p.arena.New(name, parent)
	p.stack = append(p.stack, id)
	return id
}

func (p *Parser) popScope() {
	p.stack = p.stack[:len(p.stack)-1]
}

// ───────────────────────── expressions ─────────────────────────

func (p *Parser) parseExpr(minPrec int) Expr {
	left := p.parseAtom()
	if left == nil {
		return nil
	}
	left = p.maybeCall(left)
	return p.parseBinary(left, minPrec)
}

// parseBinary climbs operator precedence starting from an already
// parsed left operand. An operator scanned below minPrec goes into
// the pushback slot for the enclosing level to pick up.
func (p *Parser) parseBinary(left Expr, minPrec int) Expr {
	for {
		kind, ok := p.nextBinOp()
		if !ok {
			return left
		}
		if kind.Precedence() < minPrec {
			p.pendingOp, p.hasPending = kind, true
			return left
		}
		right := p.parseAtom()
		if right == nil {
			return left
		}
		right = p.maybeCall(right)
		right = p.parseBinary(right, kind.Precedence()+1)
		left = &BinOp{Kind: kind, Left: left, Right: right}
	}
}

func (p *Parser) nextBinOp() (BinOpKind, bool) {
	if p.hasPending {
		p.hasPending = false
		return p.pendingOp, true
	}
	return p.scanBinOp()
}

// scanBinOp reads the next operator, consuming a second token to
// disambiguate '==' vs '=', '<=' vs '<', '>=' vs '>' and '**' vs '*'.
func (p *Parser) scanBinOp() (BinOpKind, bool) {
	p.skipTrivia()
	tok := p.lexer.Peek()
	if tok == nil {
		return 0, false
	}
	switch tok.Kind {
	case EQ:
		p.lexer.Next()
		if p.peekKind(EQ) {
			p.lexer.Next()
			return OpEq, true
		}
		return OpAssign, true
	case LESS:
		p.lexer.Next()
		if p.peekKind(EQ) {
			p.lexer.Next()
			return OpLtEq, true
		}
		return OpLt, true
	case GREATER:
		p.lexer.Next()
		if p.peekKind(EQ) {
			p.lexer.Next()
			return OpGtEq, true
		}
		return OpGt, true
	case PLUS:
		p.lexer.Next()
		return OpAdd, true
	case MINUS:
		p.lexer.Next()
		return OpSub, true
	case STAR:
		p.lexer.Next()
		if p.peekKind(STAR) {
			p.lexer.Next()
			return OpPow, true
		}
		return OpMul, true
	case DIV:
		p.lexer.Next()
		return OpDiv, true
	case PERCENT:
		p.lexer.Next()
		return OpMod, true
	}
	return 0, false
}

func (p *Parser) parseAtom() Expr {
	p.skipTrivia()
	tok := p.lexer.Peek()
	if tok == nil {
		return nil
	}
	switch tok.Kind {
	case LIT:
		if tok.Lit.Class == StrLit {
			return p.parseStr()
		}
		return p.parseNum()
	case LROUND:
		return p.parseTuple()
	case LCURLY:
		return p.parseBlock()
	case IDENT:
		return p.parseIdent()
	}
	p.pushErr(ErrUnexpectedToken, "", tok.Index, tok.Size)
	return nil
}

func (p *Parser) parseIdent() Expr {
	tok := p.lexer.Peek()
	switch p.lexeme(*tok) {
	case "if":
		return p.parseIf()
	case "let":
		return p.parseLet()
	case "fn":
		return p.parseFn()
	case "null":
		p.lexer.Next()
		return &Null{}
	}
	return p.parseSym()
}

func (p *Parser) parseIf() Expr {
	p.lexer.Next() // 'if'
	cond := p.parseExpr(0)
	if cond == nil {
		return nil
	}
	then := p.parseExpr(0)
	if then == nil {
		return nil
	}
	var els Expr
	p.skipTrivia()
	if tok := p.lexer.Peek(); tok != nil && tok.Kind == IDENT && p.lexeme(*tok) == "else" {
		p.lexer.Next()
		els = p.parseExpr(0)
	}
	return &If{Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseLet() Expr {
	p.lexer.Next() // 'let'
	p.skipTrivia()
	isMut := false
	if tok := p.lexer.Peek(); tok != nil && tok.Kind == IDENT && p.lexeme(*tok) == "mut" {
		isMut = true
		p.lexer.Next()
	}
	p.skipTrivia()
	var name string
	if tok := p.lexer.Peek(); tok != nil && tok.Kind == IDENT {
		name = p.lexeme(*tok)
		p.lexer.Next()
	} else if isMut {
		// "let mut = ..." names the binding 'mut' and stays immutable.
		name, isMut = "mut", false
	} else {
		if tok := p.lexer.Peek(); tok != nil {
			p.pushErr(ErrExpectedToken, "expected a name after 'let'", tok.Index, tok.Size)
		} else {
			p.pushErr(ErrExpectedToken, "expected a name after 'let'", len(p.src), 0)
		}
		return nil
	}
	var initial Expr
	p.skipTrivia()
	if p.peekKind(EQ) {
		p.lexer.Next()
		p.skipTrivia()
		initial = p.parseExpr(0)
		if initial == nil {
			return nil
		}
	}
	return &VarDef{Name: name, IsMut: isMut, Initial: initial}
}

// parseFn consumes 'fn' and an optional name. Parameter and
// return-type parsing belongs to a later grammar revision.
func (p *Parser) parseFn() Expr {
	p.lexer.Next() // 'fn'
	p.skipTrivia()
	name := "<anonymous>"
	if tok := p.lexer.Peek(); tok != nil && tok.Kind == IDENT {
		name = p.lexeme(*tok)
		p.lexer.Next()
	}
	return &Fn{Name: name, Params: map[string]string{}, Ret: &Null{}}
}

func (p *Parser) parseBlock() Expr {
	tok := p.lexer.Peek()
	if tok == nil || tok.Kind != LCURLY {
		return nil
	}
	p.lexer.Next() // '{'
	p.pushScope("block")
	defer p.popScope() // every exit path pops, failures included

	var exprs []Expr
	for {
		p.skipTrivia()
		cur := p.lexer.Peek()
		if cur == nil {
			p.pushErr(ErrExpectedToken, "expected '}' before end of input", len(p.src), 0)
			return nil
		}
		if cur.Kind == RCURLY {
			p.lexer.Next()
			break
		}
		e := p.parseExpr(0)
		if e == nil {
			return nil
		}
		exprs = append(exprs, e)
		p.skipTrivia()
		if p.peekKind(SEMI) {
			p.lexer.Next()
		}
	}
	return &CodeBlock{Exprs: exprs}
}

func (p *Parser) parseTuple() Expr {
	p.skipTrivia()
	tok := p.lexer.Peek()
	if tok == nil || tok.Kind != LROUND {
		return nil
	}
	p.lexer.Next() // '('
	var exprs []Expr
	for {
		p.skipTrivia()
		cur := p.lexer.Peek()
		if cur == nil {
			p.pushErr(ErrExpectedToken, "expected ')' before end of input", len(p.src), 0)
			return nil
		}
		if cur.Kind == RROUND {
			p.lexer.Next()
			break
		}
		e := p.parseExpr(0)
		if e == nil {
			return nil
		}
		exprs = append(exprs, e)
		p.skipTrivia()
		if p.peekKind(COMMA) {
			p.lexer.Next()
		}
	}
	return &List{Exprs: exprs}
}

// maybeCall wraps an already parsed atom as a call when an argument
// tuple follows it.
func (p *Parser) maybeCall(left Expr) Expr {
	p.skipTrivia()
	if !p.peekKind(LROUND) {
		return left
	}
	args := p.parseTuple()
	list, ok := args.(*List)
	if !ok {
		return left
	}
	return &Call{Callee: left, Args: list.Exprs}
}

// parseSym reads an identifier, optionally extended by a
// colon-separated namespace chain nesting to the right.
func (p *Parser) parseSym() Expr {
	tok := p.lexer.Peek()
	if tok == nil || tok.Kind != IDENT {
		return nil
	}
	sym := &Symbol{Name: p.lexeme(*tok), Index: tok.Index}
	p.lexer.Next()
	p.skipTrivia()
	if !p.peekKind(COLON) {
		return sym
	}
	p.lexer.Next() // ':'
	right := p.parseSym()
	if right == nil {
		return sym
	}
	return &Access{Left: sym, Right: right}
}

// ───────────────────────── literals ─────────────────────────

// parseNum interprets a numeric literal token. The text between the
// radix prefix and the suffix is parsed in the detected radix; the
// suffix selects the concrete width, defaulting to i32 for integer
// shapes and f32 for fractional ones. Overflow or malformed digits
// yield no expression; an unrecognized suffix also pushes an error.
func (p *Parser) parseNum() Expr {
	tok, ok := p.lexer.Next()
	if !ok || tok.Kind != LIT {
		return nil
	}
	start, end := tok.Index, tok.End()
	radix := tok.Lit.Base.Radix()
	if tok.Lit.Base != BaseNone {
		start += 2 // skip the 0b/0o/0x prefix
	}
	suffix := ""
	if tok.Lit.SuffOff >= 0 {
		end = tok.Index + tok.Lit.SuffOff
		suffix = p.src[end:tok.End()]
	}
	text := p.src[start:end]

	switch suffix {
	case "i32":
		v, err := strconv.ParseInt(intPart(text), radix, 32)
		if err != nil {
			return nil
		}
		return &Num{Kind: NumI32, Int: v}
	case "i64":
		v, err := strconv.ParseInt(intPart(text), radix, 64)
		if err != nil {
			return nil
		}
		return &Num{Kind: NumI64, Int: v}
	case "u32":
		v, err := strconv.ParseUint(intPart(text), radix, 32)
		if err != nil {
			return nil
		}
		return &Num{Kind: NumU32, Uint: v}
	case "u64":
		v, err := strconv.ParseUint(intPart(text), radix, 64)
		if err != nil {
			return nil
		}
		return &Num{Kind: NumU64, Uint: v}
	case "f32":
		v, err := parseBasedFloat(radix, text)
		if err != nil {
			return nil
		}
		return &Num{Kind: NumF32, Float: float64(float32(v))}
	case "f64":
		v, err := parseBasedFloat(radix, text)
		if err != nil {
			return nil
		}
		return &Num{Kind: NumF64, Float: v}
	case "":
		if strings.Contains(text, ".") {
			if tok.Lit.Base != BaseNone && tok.Lit.Base != BaseDec {
				v, err := parseBasedFloat(radix, text)
				if err != nil {
					return nil
				}
				return &Num{Kind: NumF32, Float: float64(float32(v))}
			}
			v, err := strconv.ParseFloat(text, 32)
			if err != nil {
				return nil
			}
			return &Num{Kind: NumF32, Float: v}
		}
		v, err := strconv.ParseInt(text, radix, 32)
		if err != nil {
			return nil
		}
		return &Num{Kind: NumI32, Int: v}
	}

	p.pushErr(ErrUnexpectedToken,
		fmt.Sprintf("unrecognized numeric suffix %q", suffix),
		tok.Index+tok.Lit.SuffOff, len(suffix))
	return nil
}

// intPart truncates a literal at its first '.' so integer suffixes
// can apply to fractional text.
func intPart(text string) string {
	if i := strings.IndexByte(text, '.'); i >= 0 {
		return text[:i]
	}
	return text
}

// parseBasedFloat interprets both digit runs in the given radix and
// places the fraction decimally, dividing by the smallest power of
// ten exceeding it: "5" becomes .5 and "25" becomes .25, whatever
// the radix.
func parseBasedFloat(radix int, text string) (float64, error) {
	dot := strings.IndexByte(text, '.')
	if dot < 0 {
		v, err := strconv.ParseInt(text, radix, 32)
		return float64(v), err
	}
	left, err := strconv.ParseInt(text[:dot], radix, 32)
	if err != nil {
		return 0, err
	}
	right, err := strconv.ParseInt(text[dot+1:], radix, 32)
	if err != nil {
		return 0, err
	}
	divider := 1.0
	for divider <= float64(right) {
		divider *= 10
	}
	return float64(left) + float64(right)/divider, nil
}

// parseStr slices the interior between the quotes and decodes escapes.
func (p *Parser) parseStr() Expr {
	tok, ok := p.lexer.Next()
	if !ok || tok.Size < 2 {
		return nil
	}
	inner := p.src[tok.Index+1 : tok.End()-1]
	return &Str{Value: decodeEscapes(inner)}
}

// decodeEscapes resolves backslash escapes left to right. Recognized
// escapes map to their character; a backslash before anything else
// contributes nothing for the pair.
func decodeEscapes(s string) string {
	var b strings.Builder
	rs := []rune(s)
	for i := 0; i < len(rs); i++ {
		if rs[i] != '\\' {
			b.WriteRune(rs[i])
			continue
		}
		i++
		if i >= len(rs) {
			break
		}
		switch rs[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '\\':
			b.WriteByte('\\')
		case '\'':
			b.WriteByte('\'')
		case '"':
			b.WriteByte('"')
		}
	}
	return b.String()
}
