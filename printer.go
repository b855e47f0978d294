// printer.go: deterministic S-expression dump of the AST.
//
// FormatExpr renders each node as a tagged list, one line, children
// in source order:
//
//	(+ (i32 1) (* (i32 2) (i32 3)))
//	(let mut x (i32 1))
//	(call (sym f) (i32 1) (str "hi"))
//
// The output is stable for identical trees, which makes it the
// structure oracle in the parser tests and the REPL's echo format.
package sky

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FormatExpr renders an expression tree as an S-expression string.
func FormatExpr(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

func writeExpr(b *strings.Builder, e Expr) {
	switch n := e.(type) {
	case nil:
		b.WriteString("<none>")
	case *Num:
		writeNum(b, n)
	case *Str:
		fmt.Fprintf(b, "(str %s)", quoteString(n.Value))
	case *Symbol:
		fmt.Fprintf(b, "(sym %s)", n.Name)
	case *Access:
		writeList(b, "access", n.Left, n.Right)
	case *BinOp:
		writeList(b, n.Kind.String(), n.Left, n.Right)
	case *CodeBlock:
		writeList(b, "block", n.Exprs...)
	case *Fn:
		writeFn(b, n)
	case *Closure:
		writeList(b, "closure", append(append([]Expr{}, n.Captures...), n.Body)...)
	case *If:
		if n.Else != nil {
			writeList(b, "if", n.Cond, n.Then, n.Else)
		} else {
			writeList(b, "if", n.Cond, n.Then)
		}
	case *Call:
		writeList(b, "call", append([]Expr{n.Callee}, n.Args...)...)
	case *List:
		writeList(b, "list", n.Exprs...)
	case *VarDef:
		writeVarDef(b, n)
	case *Null:
		b.WriteString("null")
	default:
		b.WriteString("<unknown>")
	}
}

func writeNum(b *strings.Builder, n *Num) {
	b.WriteByte('(')
	b.WriteString(n.Kind.String())
	b.WriteByte(' ')
	switch n.Kind {
	case NumI32, NumI64:
		b.WriteString(strconv.FormatInt(n.Int, 10))
	case NumU32, NumU64:
		b.WriteString(strconv.FormatUint(n.Uint, 10))
	case NumF32:
		b.WriteString(strconv.FormatFloat(n.Float, 'g', -1, 32))
	case NumF64:
		b.WriteString(strconv.FormatFloat(n.Float, 'g', -1, 64))
	}
	b.WriteByte(')')
}

func writeFn(b *strings.Builder, n *Fn) {
	fmt.Fprintf(b, "(fn %s (", n.Name)
	names := make([]string, 0, len(n.Params))
	for name := range n.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	for i, name := range names {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(b, "%s:%s", name, n.Params[name])
	}
	b.WriteString(") ")
	writeExpr(b, n.Ret)
	b.WriteByte(')')
}

func writeVarDef(b *strings.Builder, n *VarDef) {
	b.WriteString("(let ")
	if n.IsMut {
		b.WriteString("mut ")
	}
	b.WriteString(n.Name)
	if n.Initial != nil {
		b.WriteByte(' ')
		writeExpr(b, n.Initial)
	}
	b.WriteByte(')')
}

func writeList(b *strings.Builder, tag string, kids ...Expr) {
	b.WriteByte('(')
	b.WriteString(tag)
	for _, k := range kids {
		b.WriteByte(' ')
		writeExpr(b, k)
	}
	b.WriteByte(')')
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
