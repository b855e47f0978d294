// printer_test.go
package sky

import "testing"

func wantFormat(t *testing.T, src, want string) {
	t.Helper()
	root, errs := Parse(src)
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v\nsource:\n%s", errs, src)
	}
	got := FormatExpr(root)
	if got != want {
		t.Fatalf("\nsource:\n%s\nwant: %s\ngot:  %s", src, want, got)
	}
}

func Test_Printer_Numbers(t *testing.T) {
	wantFormat(t, "42", "(i32 42)")
	wantFormat(t, "10u64", "(u64 10)")
	wantFormat(t, "7i64", "(i64 7)")
	wantFormat(t, "3.5f32", "(f32 3.5)")
	wantFormat(t, "2.5f64", "(f64 2.5)")
	wantFormat(t, "0xFF", "(i32 255)")
}

func Test_Printer_Strings_ReEscape(t *testing.T) {
	wantFormat(t, `"hi"`, `(str "hi")`)
	wantFormat(t, `'a\nb'`, `(str "a\nb")`)
	wantFormat(t, `"say \"hi\""`, `(str "say \"hi\"")`)
}

func Test_Printer_Operators(t *testing.T) {
	wantFormat(t, "1 + 2 * 3", "(+ (i32 1) (* (i32 2) (i32 3)))")
	wantFormat(t, "x = y = 1", "(= (= (sym x) (sym y)) (i32 1))")
	wantFormat(t, "2 ** 3 ** 2", "(** (** (i32 2) (i32 3)) (i32 2))")
	wantFormat(t, "a <= b", "(<= (sym a) (sym b))")
}

func Test_Printer_Structure(t *testing.T) {
	wantFormat(t, "a:b:c", "(access (sym a) (access (sym b) (sym c)))")
	wantFormat(t, "f(1, 2)", "(call (sym f) (i32 1) (i32 2))")
	wantFormat(t, "(1, 2)", "(list (i32 1) (i32 2))")
	wantFormat(t, "{1; 2}", "(block (i32 1) (i32 2))")
	wantFormat(t, "if a b else c", "(if (sym a) (sym b) (sym c))")
	wantFormat(t, "if a b", "(if (sym a) (sym b))")
	wantFormat(t, "let mut x = 1", "(let mut x (i32 1))")
	wantFormat(t, "let y", "(let y)")
	wantFormat(t, "fn foo", "(fn foo () null)")
	wantFormat(t, "null", "null")
	wantFormat(t, "", "(block)")
}

func Test_Printer_FnParams_SortedForDeterminism(t *testing.T) {
	fn := &Fn{
		Name:   "add",
		Params: map[string]string{"b": "i32", "a": "i32"},
		Ret:    &Null{},
	}
	want := "(fn add (a:i32 b:i32) null)"
	if got := FormatExpr(fn); got != want {
		t.Fatalf("want %s, got %s", want, got)
	}
}

func Test_Printer_Closure(t *testing.T) {
	c := &Closure{
		Captures: []Expr{&Symbol{Name: "x"}},
		Body:     &Num{Kind: NumI32, Int: 1},
	}
	want := "(closure (sym x) (i32 1))"
	if got := FormatExpr(c); got != want {
		t.Fatalf("want %s, got %s", want, got)
	}
}
