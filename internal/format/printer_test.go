package format

import (
	"strings"
	"testing"

	"flux/internal/ast"
	"flux/internal/source"
	"flux/internal/types"
)

func pos(offset uint32) source.Pos {
	return source.Pos{Offset: offset}
}

func containsLine(out, line string) bool {
	return strings.Contains(out, line)
}

func render(t *testing.T, stmts ...ast.Stmt) string {
	t.Helper()
	return renderWith(t, types.NewInterner(), stmts...)
}

func renderWith(t *testing.T, table types.Table, stmts ...ast.Stmt) string {
	t.Helper()
	return string(Format(&ast.File{Path: "main.fx", Stmts: stmts}, table, Options{}))
}

func inMain(stmts ...ast.Stmt) []ast.Stmt {
	return []ast.Stmt{
		&ast.Module{Name: "main"},
		&ast.FnDecl{Name: "main", Stmts: stmts},
	}
}

func ident(name string) *ast.Ident          { return &ast.Ident{Name: name} }
func intLit(v string) *ast.IntegerLiteral   { return &ast.IntegerLiteral{Value: v} }
func strLit(v string) *ast.StringLiteral    { return &ast.StringLiteral{Value: v} }
func paren(e ast.Expr) *ast.ParExpr         { return &ast.ParExpr{Expr: e} }
func infix(op string, l, r ast.Expr) *ast.InfixExpr {
	return &ast.InfixExpr{Op: op, Left: l, Right: r}
}

func callFn(name string, args ...ast.Expr) *ast.CallExpr {
	return &ast.CallExpr{Name: name, Args: args}
}

func stmtOf(e ast.Expr) *ast.ExprStmt { return &ast.ExprStmt{Expr: e} }

func declare(name string, rhs ast.Expr) *ast.Assign {
	return &ast.Assign{Op: ":=", Lhs: []ast.Expr{ident(name)}, Rhs: []ast.Expr{rhs}}
}

func TestFormatHelloWorld(t *testing.T) {
	got := render(t, inMain(stmtOf(callFn("println", strLit("hello"))))...)
	want := "module main\n" +
		"\n" +
		"fn main() {\n" +
		"\tprintln('hello')\n" +
		"}\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatDeterministic(t *testing.T) {
	in := types.NewInterner()
	stmts := inMain(
		declare("x", infix("+", ident("a"), ident("b"))),
		stmtOf(callFn("println", ident("x"))),
	)
	first := renderWith(t, in, stmts...)
	second := renderWith(t, in, stmts...)
	if first != second {
		t.Errorf("two runs over the same tree differ:\n%s\n---\n%s", first, second)
	}
}

func TestFormatBlankLinesBetweenDeclarations(t *testing.T) {
	got := render(t,
		&ast.Module{Name: "main"},
		&ast.CommentStmt{Comment: ast.Comment{Text: "first"}},
		&ast.CommentStmt{Comment: ast.Comment{Text: "second"}},
		&ast.FnDecl{Name: "main"},
	)
	want := "module main\n" +
		"\n" +
		"// first\n" +
		"// second\n" +
		"\n" +
		"fn main() {\n" +
		"}\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestStructFieldAlignment(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	got := renderWith(t, in,
		&ast.Module{Name: "main"},
		&ast.StructDecl{Name: "Point", Fields: []ast.StructField{
			{Name: "a", Type: b.Int},
			{Name: "bb", Type: b.String},
			{Name: "ccc", Type: b.F64},
		}},
	)
	want := "module main\n" +
		"\n" +
		"struct Point {\n" +
		"\ta   int\n" +
		"\tbb  string\n" +
		"\tccc f64\n" +
		"}\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestStructSections(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	got := renderWith(t, in,
		&ast.Module{Name: "main"},
		&ast.StructDecl{
			Pub:  true,
			Name: "Conn",
			Fields: []ast.StructField{
				{Name: "host", Type: b.String},
				{Name: "retries", Type: b.Int},
			},
			Sections: []ast.Section{{Index: 1, Label: "mut"}},
		},
	)
	want := "module main\n" +
		"\n" +
		"pub struct Conn {\n" +
		"\thost    string\n" +
		"mut:\n" +
		"\tretries int\n" +
		"}\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestStructFieldCommentBuckets(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	field := ast.StructField{
		Name:       "x",
		Type:       b.Int,
		Pos:        pos(100),
		TypeOffset: 110,
		Comments: []ast.Comment{
			{Text: "note", Pos: pos(50)},
			{Text: "c", Pos: pos(105)},
			{Text: "after", Pos: pos(115)},
		},
	}
	got := renderWith(t, in,
		&ast.Module{Name: "main"},
		&ast.StructDecl{Name: "T", Fields: []ast.StructField{field}},
	)
	want := "module main\n" +
		"\n" +
		"struct T {\n" +
		"\t// note\n" +
		"\tx /* c */ int // after\n" +
		"}\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestConstGroupAlignment(t *testing.T) {
	got := render(t,
		&ast.Module{Name: "main"},
		&ast.ConstDecl{Fields: []ast.ConstField{
			{Name: "a", Value: intLit("1")},
			{Name: "long", Value: intLit("2")},
		}},
	)
	want := "module main\n" +
		"\n" +
		"const (\n" +
		"\ta    = 1\n" +
		"\tlong = 2\n" +
		")\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestSingleConstStaysInline(t *testing.T) {
	got := render(t,
		&ast.Module{Name: "main"},
		&ast.ConstDecl{Pub: true, Fields: []ast.ConstField{
			{Name: "max_retries", Value: intLit("5")},
		}},
	)
	want := "module main\n" +
		"\n" +
		"pub const max_retries = 5\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestEnumAlignsOnlyValuedEntries(t *testing.T) {
	got := render(t,
		&ast.Module{Name: "main"},
		&ast.EnumDecl{Name: "Color", Vals: []ast.EnumVal{
			{Name: "red"},
			{Name: "green", Value: intLit("5")},
			{Name: "blue"},
		}},
	)
	want := "module main\n" +
		"\n" +
		"enum Color {\n" +
		"\tred\n" +
		"\tgreen = 5\n" +
		"\tblue\n" +
		"}\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestIfCollapsesOnlyInExprPosition(t *testing.T) {
	cond := ident("ok")
	branches := []ast.IfBranch{
		{Cond: cond, Stmts: []ast.Stmt{stmtOf(intLit("1"))}},
		{Stmts: []ast.Stmt{stmtOf(intLit("2"))}},
	}

	got := render(t, inMain(declare("x", &ast.IfExpr{Branches: branches, HasElse: true}))...)
	want := "module main\n" +
		"\n" +
		"fn main() {\n" +
		"\tx := if ok { 1 } else { 2 }\n" +
		"}\n"
	if got != want {
		t.Errorf("expression position:\ngot:\n%s\nwant:\n%s", got, want)
	}

	got = render(t, inMain(stmtOf(&ast.IfExpr{Branches: []ast.IfBranch{
		{Cond: cond, Stmts: []ast.Stmt{stmtOf(callFn("a"))}},
		{Stmts: []ast.Stmt{stmtOf(callFn("b"))}},
	}, HasElse: true}))...)
	want = "module main\n" +
		"\n" +
		"fn main() {\n" +
		"\tif ok {\n" +
		"\t\ta()\n" +
		"\t} else {\n" +
		"\t\tb()\n" +
		"\t}\n" +
		"}\n"
	if got != want {
		t.Errorf("statement position:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestMatchBindsScrutineeAsIt(t *testing.T) {
	match := &ast.MatchExpr{
		Cond: ident("state"),
		Branches: []ast.MatchBranch{
			{Exprs: []ast.Expr{intLit("1")}, Stmts: []ast.Stmt{
				stmtOf(callFn("print", ident("state"))),
			}},
			{IsElse: true, Stmts: []ast.Stmt{stmtOf(callFn("stop"))}},
		},
	}
	got := render(t, inMain(stmtOf(match))...)
	want := "module main\n" +
		"\n" +
		"fn main() {\n" +
		"\tmatch state {\n" +
		"\t\t1 {\n" +
		"\t\t\tprint(it)\n" +
		"\t\t}\n" +
		"\t\telse {\n" +
		"\t\t\tstop()\n" +
		"\t\t}\n" +
		"\t}\n" +
		"}\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestMatchCollapsesInExprPosition(t *testing.T) {
	match := &ast.MatchExpr{
		Cond: ident("state"),
		Branches: []ast.MatchBranch{
			{Exprs: []ast.Expr{intLit("1")}, Stmts: []ast.Stmt{stmtOf(callFn("a"))}},
			{IsElse: true, Stmts: []ast.Stmt{stmtOf(callFn("b"))}},
		},
	}
	got := render(t, inMain(declare("x", match))...)
	want := "module main\n" +
		"\n" +
		"fn main() {\n" +
		"\tx := match state { 1 { a() } else { b() } }\n" +
		"}\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestStringInterpolation(t *testing.T) {
	tests := []struct {
		name string
		expr *ast.StringInterLiteral
		want string
	}{
		{
			"bare identifier",
			&ast.StringInterLiteral{Parts: []string{"hi ", ""}, Exprs: []ast.Expr{ident("name")}},
			"\tprintln('hi $name')\n",
		},
		{
			"expression stays on one line",
			&ast.StringInterLiteral{Parts: []string{"a=", "!"}, Exprs: []ast.Expr{infix("+", ident("a"), ident("b"))}},
			"\tprintln('a=${a + b}!')\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(t, inMain(stmtOf(callFn("println", tt.expr)))...)
			want := "module main\n\nfn main() {\n" + tt.want + "}\n"
			if got != want {
				t.Errorf("got:\n%s\nwant:\n%s", got, want)
			}
		})
	}
}

func TestStructInitForms(t *testing.T) {
	in := types.NewInterner()
	point := in.Intern("Point")

	got := renderWith(t, in, inMain(declare("p", &ast.StructInit{Type: point}))...)
	if want := "\tp := Point{}\n"; !containsLine(got, want) {
		t.Errorf("empty literal: got:\n%s\nwant line %q", got, want)
	}

	inline := &ast.StructInit{Type: point, Fields: []ast.StructInitField{
		{Name: "x", Value: intLit("1")},
		{Name: "y", Value: intLit("2")},
	}}
	got = renderWith(t, in, inMain(declare("p", inline))...)
	if want := "\tp := Point{x: 1, y: 2}\n"; !containsLine(got, want) {
		t.Errorf("inline literal: got:\n%s\nwant line %q", got, want)
	}

	perLine := &ast.StructInit{Type: point, PerLine: true, Fields: []ast.StructInitField{
		{Name: "x", Value: intLit("1")},
		{Name: "y", Value: intLit("2")},
	}}
	got = renderWith(t, in, inMain(declare("p", perLine))...)
	want := "module main\n" +
		"\n" +
		"fn main() {\n" +
		"\tp := Point{\n" +
		"\t\tx: 1\n" +
		"\t\ty: 2\n" +
		"\t}\n" +
		"}\n"
	if got != want {
		t.Errorf("per-line literal: got:\n%s\nwant:\n%s", got, want)
	}
}

func TestTrailingStructArgDropsBraces(t *testing.T) {
	in := types.NewInterner()
	cfg := in.Intern("WindowCfg")
	call := callFn("new_window", strLit("title"), &ast.StructInit{
		Type: cfg,
		Fields: []ast.StructInitField{
			{Name: "width", Value: intLit("100")},
			{Name: "height", Value: intLit("50")},
		},
	})
	got := renderWith(t, in, inMain(stmtOf(call))...)
	if want := "\tnew_window('title', width: 100, height: 50)\n"; !containsLine(got, want) {
		t.Errorf("got:\n%s\nwant line %q", got, want)
	}
}

func TestOrSuffixForms(t *testing.T) {
	propagate := callFn("read")
	propagate.Or = ast.OrBlock{Kind: ast.OrPropagate}
	got := render(t, inMain(declare("data", propagate))...)
	if want := "\tdata := read()?\n"; !containsLine(got, want) {
		t.Errorf("propagate: got:\n%s\nwant line %q", got, want)
	}

	recover := callFn("read")
	recover.Or = ast.OrBlock{Kind: ast.OrRecover, Stmts: []ast.Stmt{
		&ast.Return{},
	}}
	got = render(t, inMain(stmtOf(recover))...)
	if want := "\tread() or { return }\n"; !containsLine(got, want) {
		t.Errorf("single recovery: got:\n%s\nwant line %q", got, want)
	}

	recover = callFn("read")
	recover.Or = ast.OrBlock{Kind: ast.OrRecover, Stmts: []ast.Stmt{
		stmtOf(callFn("log", ident("err"))),
		&ast.Return{},
	}}
	got = render(t, inMain(stmtOf(recover))...)
	want := "module main\n" +
		"\n" +
		"fn main() {\n" +
		"\tread() or {\n" +
		"\t\tlog(err)\n" +
		"\t\treturn\n" +
		"\t}\n" +
		"}\n"
	if got != want {
		t.Errorf("block recovery: got:\n%s\nwant:\n%s", got, want)
	}
}

func TestTrailingCommentStaysOnLine(t *testing.T) {
	decl := declare("x", intLit("1"))
	decl.Pos = pos(100)
	decl.Comments = []ast.Comment{{Text: "answer", Pos: pos(110)}}
	got := render(t, inMain(decl)...)
	if want := "\tx := 1 // answer\n"; !containsLine(got, want) {
		t.Errorf("got:\n%s\nwant line %q", got, want)
	}
}

func TestFnSignatures(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	conn := in.Intern("Conn")

	tests := []struct {
		name string
		decl *ast.FnDecl
		want string
	}{
		{
			"free function",
			&ast.FnDecl{Pub: true, Name: "add", Params: []ast.Param{
				{Name: "a", Type: b.Int},
				{Name: "b", Type: b.Int},
			}, ReturnType: b.Int},
			"pub fn add(a int, b int) int {",
		},
		{
			"method with mut receiver",
			&ast.FnDecl{Name: "close", Recv: &ast.Param{Name: "c", Type: conn, Mut: true}},
			"fn (mut c Conn) close() {",
		},
		{
			"fallible result",
			&ast.FnDecl{Name: "open", Params: []ast.Param{{Name: "path", Type: b.String}},
				ReturnType: conn, ReturnsError: true},
			"fn open(path string) ?Conn {",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderWith(t, in, &ast.Module{Name: "main"}, tt.decl)
			if !containsLine(got, tt.want+"\n") {
				t.Errorf("got:\n%s\nwant line %q", got, tt.want)
			}
		})
	}
}

func TestSqlBlockPassthrough(t *testing.T) {
	got := render(t, inMain(&ast.SqlStmt{
		Db:   "db",
		Body: "  select * from users\n  where id > 0  ",
	})...)
	want := "module main\n" +
		"\n" +
		"fn main() {\n" +
		"\tsql db {\n" +
		"\t\tselect * from users\n" +
		"\t\twhere id > 0\n" +
		"\t}\n" +
		"}\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestLoopForms(t *testing.T) {
	in := types.NewInterner()
	body := []ast.Stmt{stmtOf(callFn("step"))}

	got := renderWith(t, in, inMain(&ast.ForStmt{Cond: ident("ok"), Stmts: body})...)
	if want := "\tfor ok {\n"; !containsLine(got, want) {
		t.Errorf("condition loop: got:\n%s\nwant line %q", got, want)
	}

	got = renderWith(t, in, inMain(&ast.ForStmt{Stmts: body})...)
	if want := "\tfor {\n"; !containsLine(got, want) {
		t.Errorf("infinite loop: got:\n%s\nwant line %q", got, want)
	}

	got = renderWith(t, in, inMain(&ast.ForInStmt{Key: "k", Val: "v", Iterable: ident("items"), Stmts: body})...)
	if want := "\tfor k, v in items {\n"; !containsLine(got, want) {
		t.Errorf("iterator loop: got:\n%s\nwant line %q", got, want)
	}

	counted := &ast.ForCStmt{
		Init:  &ast.Assign{Op: ":=", Lhs: []ast.Expr{ident("i")}, Rhs: []ast.Expr{intLit("0")}},
		Cond:  infix("<", ident("i"), ident("n")),
		Post:  &ast.Assign{Op: "+=", Lhs: []ast.Expr{ident("i")}, Rhs: []ast.Expr{intLit("1")}},
		Stmts: body,
	}
	got = renderWith(t, in, inMain(counted)...)
	want := "module main\n" +
		"\n" +
		"fn main() {\n" +
		"\tfor i := 0; i < n; i += 1 {\n" +
		"\t\tstep()\n" +
		"\t}\n" +
		"}\n"
	if got != want {
		t.Errorf("counted loop: got:\n%s\nwant:\n%s", got, want)
	}
}

func TestDeferAndUnsafeBlocks(t *testing.T) {
	got := render(t, inMain(
		&ast.DeferStmt{Stmts: []ast.Stmt{stmtOf(callFn("close", ident("f")))}},
		&ast.UnsafeStmt{Stmts: []ast.Stmt{stmtOf(callFn("poke"))}},
	)...)
	want := "module main\n" +
		"\n" +
		"fn main() {\n" +
		"\tdefer {\n" +
		"\t\tclose(f)\n" +
		"\t}\n" +
		"\tunsafe {\n" +
		"\t\tpoke()\n" +
		"\t}\n" +
		"}\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestGoGotoAndLabel(t *testing.T) {
	got := render(t, inMain(
		&ast.Label{Name: "retry"},
		&ast.GoStmt{Call: callFn("worker", intLit("1"))},
		&ast.Goto{Label: "retry"},
	)...)
	want := "module main\n" +
		"\n" +
		"fn main() {\n" +
		"\tretry:\n" +
		"\tgo worker(1)\n" +
		"\tgoto retry\n" +
		"}\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestAnonFnLiteral(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	fn := &ast.AnonFn{
		Params:     []ast.Param{{Name: "x", Type: b.Int}},
		ReturnType: b.Int,
		Stmts:      []ast.Stmt{&ast.Return{Exprs: []ast.Expr{ident("x")}}},
	}
	got := renderWith(t, in, inMain(declare("double", fn))...)
	want := "module main\n" +
		"\n" +
		"fn main() {\n" +
		"\tdouble := fn (x int) int {\n" +
		"\t\treturn x\n" +
		"\t}\n" +
		"}\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestLockBlock(t *testing.T) {
	lock := &ast.LockExpr{
		Kind:  "lock",
		Exprs: []ast.Expr{ident("mu")},
		Stmts: []ast.Stmt{stmtOf(callFn("inc"))},
	}
	got := render(t, inMain(stmtOf(lock))...)
	want := "module main\n" +
		"\n" +
		"fn main() {\n" +
		"\tlock mu {\n" +
		"\t\tinc()\n" +
		"\t}\n" +
		"}\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestMapLiteralForms(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()

	empty := &ast.MapInit{KeyType: b.String, ValType: b.Int}
	got := renderWith(t, in, inMain(declare("e", empty))...)
	if want := "\te := map[string]int{}\n"; !containsLine(got, want) {
		t.Errorf("empty literal: got:\n%s\nwant line %q", got, want)
	}

	m := &ast.MapInit{
		Keys: []ast.Expr{strLit("a"), strLit("b")},
		Vals: []ast.Expr{intLit("1"), intLit("2")},
	}
	got = renderWith(t, in, inMain(declare("m", m))...)
	want := "module main\n" +
		"\n" +
		"fn main() {\n" +
		"\tm := {\n" +
		"\t\t'a': 1\n" +
		"\t\t'b': 2\n" +
		"\t}\n" +
		"}\n"
	if got != want {
		t.Errorf("keyed literal: got:\n%s\nwant:\n%s", got, want)
	}
}

func TestInterfaceDecl(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	got := renderWith(t, in,
		&ast.Module{Name: "main"},
		&ast.InterfaceDecl{
			Pub:    true,
			Name:   "Reader",
			Fields: []ast.StructField{{Name: "tag", Type: b.String}},
			Methods: []ast.InterfaceMethod{
				{Name: "read", Params: []ast.Param{{Name: "n", Type: b.Int}}, ReturnType: b.String},
			},
		},
	)
	want := "module main\n" +
		"\n" +
		"pub interface Reader {\n" +
		"\ttag string\n" +
		"\tread(n int) string\n" +
		"}\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestTypeDeclForms(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()

	tests := []struct {
		name string
		decl *ast.TypeDecl
		want string
	}{
		{
			"alias",
			&ast.TypeDecl{Name: "Id", Kind: ast.TypeAlias, Base: b.Int},
			"type Id = int",
		},
		{
			"sum",
			&ast.TypeDecl{Pub: true, Name: "Num", Kind: ast.TypeSum, Variants: []types.TypeID{b.Int, b.F64}},
			"pub type Num = int | f64",
		},
		{
			"function",
			&ast.TypeDecl{Name: "Pred", Kind: ast.TypeFn, FnParams: []ast.Param{{Name: "x", Type: b.Int}}, FnReturn: b.Bool},
			"type Pred = fn (x int) bool",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderWith(t, in, &ast.Module{Name: "main"}, tt.decl)
			if !containsLine(got, tt.want+"\n") {
				t.Errorf("got:\n%s\nwant line %q", got, tt.want)
			}
		})
	}
}

func TestCompIf(t *testing.T) {
	got := render(t, inMain(&ast.CompIf{
		Cond:    "windows",
		Then:    []ast.Stmt{stmtOf(callFn("a"))},
		Else:    []ast.Stmt{stmtOf(callFn("b"))},
		HasElse: true,
	})...)
	want := "module main\n" +
		"\n" +
		"fn main() {\n" +
		"\t$if windows {\n" +
		"\t\ta()\n" +
		"\t} $else {\n" +
		"\t\tb()\n" +
		"\t}\n" +
		"}\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}
