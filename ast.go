// ast.go: the sky expression tree.
//
// Expr is a closed sum: every variant is a struct with the expr
// marker, and every node is exclusively owned by its parent. Symbol
// resolution is deferred to a later analysis stage; the parser only
// records unresolved names with their byte position.
package sky

// Expr is an AST node produced by the parser.
type Expr interface {
	expr()
}

// NumKind selects the concrete width and signedness of a Num.
type NumKind int

const (
	NumI32 NumKind = iota
	NumI64
	NumU32
	NumU64
	NumF32
	NumF64
)

func (k NumKind) String() string {
	switch k {
	case NumI32:
		return "i32"
	case NumI64:
		return "i64"
	case NumU32:
		return "u32"
	case NumU64:
		return "u64"
	case NumF32:
		return "f32"
	case NumF64:
		return "f64"
	}
	return "num"
}

// Num is a concrete numeric value, constructed once from literal text
// plus radix and suffix, never retained as text.
type Num struct {
	Kind  NumKind
	Int   int64   // NumI32, NumI64
	Uint  uint64  // NumU32, NumU64
	Float float64 // NumF32 (rounded through float32), NumF64
}

// Str is a string literal with escapes already decoded.
type Str struct {
	Value string
}

// Symbol is an unresolved name. Index is the byte offset of the
// identifier for diagnostics once resolution runs.
type Symbol struct {
	Name  string
	Index int
}

// Access chains namespaced symbols; "a:b:c" nests to the right as
// Access(a, Access(b, c)).
type Access struct {
	Left  Expr
	Right Expr
}

// BinOpKind is a binary operator with a fixed precedence.
type BinOpKind int

const (
	OpAssign BinOpKind = iota
	OpEq
	OpLt
	OpLtEq
	OpGt
	OpGtEq
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
)

// Precedence orders the operators: Pow binds tightest, then
// Mul/Div/Mod, then Add/Sub, then the comparisons, then Assign.
func (k BinOpKind) Precedence() int {
	switch k {
	case OpPow:
		return 70
	case OpMul, OpDiv, OpMod:
		return 60
	case OpAdd, OpSub:
		return 50
	case OpEq, OpLt, OpLtEq, OpGt, OpGtEq:
		return 40
	case OpAssign:
		return 10
	}
	return 0
}

func (k BinOpKind) String() string {
	switch k {
	case OpAssign:
		return "="
	case OpEq:
		return "=="
	case OpLt:
		return "<"
	case OpLtEq:
		return "<="
	case OpGt:
		return ">"
	case OpGtEq:
		return ">="
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpPow:
		return "**"
	}
	return "?"
}

type BinOp struct {
	Kind  BinOpKind
	Left  Expr
	Right Expr
}

// CodeBlock holds one lexical scope's expressions in source order.
type CodeBlock struct {
	Exprs []Expr
}

// Fn is a named or anonymous function definition. Parameter and
// return-type parsing belongs to a later grammar revision, so Params
// stays empty and Ret is Null for now.
type Fn struct {
	Name   string
	Params map[string]string // parameter name to type name
	Ret    Expr
}

// Closure is an anonymous function value. Later stages construct it
// when lowering Fn nodes; the parser itself never does.
type Closure struct {
	Captures []Expr
	Body     Expr
}

type If struct {
	Cond Expr
	Then Expr
	Else Expr // nil when absent
}

type Call struct {
	Callee Expr
	Args   []Expr
}

// List is an ordered group of expressions: tuples and argument lists.
type List struct {
	Exprs []Expr
}

type VarDef struct {
	Name    string
	IsMut   bool
	Initial Expr // nil when absent
}

type Null struct{}

func (*Num) expr()       {}
func (*Str) expr()       {}
func (*Symbol) expr()    {}
func (*Access) expr()    {}
func (*BinOp) expr()     {}
func (*CodeBlock) expr() {}
func (*Fn) expr()        {}
func (*Closure) expr()   {}
func (*If) expr()        {}
func (*Call) expr()      {}
func (*List) expr()      {}
func (*VarDef) expr()    {}
func (*Null) expr()      {}
