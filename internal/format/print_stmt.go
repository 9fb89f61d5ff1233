package format

import (
	"fmt"
	"strings"

	"flux/internal/ast"
	"flux/internal/types"

	"github.com/mattn/go-runewidth"
)

// stmt dispatches over every statement variant. The tree is assumed well
// formed; an unknown variant is a fatal abort.
func (p *printer) stmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.Module:
		trailing := p.beforeComments(st.Pos, st.Comments)
		p.write("module " + st.Name)
		p.trailingComments(trailing)
		p.writeln("")
	case *ast.Import:
		// Imports are collected by the tracker and spliced at finalization.
		p.imports.declare(st.Path, st.Alias)
	case *ast.Assign:
		trailing := p.beforeComments(st.Pos, st.Comments)
		p.assign(st)
		p.trailingComments(trailing)
		p.writeln("")
	case *ast.Assert:
		p.write("assert ")
		p.expr(st.Expr)
		p.writeln("")
	case *ast.Block:
		p.writeln("{")
		p.stmts(st.Stmts)
		p.writeln("}")
	case *ast.Branch:
		if st.Label != "" {
			p.writeln(st.Kind + " " + st.Label)
		} else {
			p.writeln(st.Kind)
		}
	case *ast.Goto:
		p.writeln("goto " + st.Label)
	case *ast.Label:
		p.writeln(st.Name + ":")
	case *ast.CommentStmt:
		p.standaloneComment(st.Comment)
	case *ast.CompIf:
		p.writeln("$if " + st.Cond + " {")
		p.stmts(st.Then)
		if st.HasElse {
			p.writeln("} $else {")
			p.stmts(st.Else)
		}
		p.writeln("}")
	case *ast.ConstDecl:
		p.constDecl(st)
	case *ast.DeferStmt:
		p.writeln("defer {")
		p.stmts(st.Stmts)
		p.writeln("}")
	case *ast.EnumDecl:
		p.enumDecl(st)
	case *ast.ExprStmt:
		trailing := p.beforeComments(st.Pos, st.Comments)
		p.exprStmt(st.Expr)
		p.trailingComments(trailing)
		p.writeln("")
	case *ast.FnDecl:
		p.fnDecl(st)
	case *ast.ForCStmt:
		p.write("for ")
		if st.Init != nil {
			p.simpleStmt(st.Init)
		}
		p.write("; ")
		if st.Cond != nil {
			p.expr(st.Cond)
		}
		p.write("; ")
		if st.Post != nil {
			p.simpleStmt(st.Post)
		}
		p.writeln(" {")
		p.stmts(st.Stmts)
		p.writeln("}")
	case *ast.ForInStmt:
		p.write("for ")
		if st.Key != "" {
			p.write(st.Key + ", ")
		}
		p.write(st.Val + " in ")
		p.expr(st.Iterable)
		p.writeln(" {")
		p.stmts(st.Stmts)
		p.writeln("}")
	case *ast.ForStmt:
		if st.Cond == nil {
			p.writeln("for {")
		} else {
			p.write("for ")
			p.expr(st.Cond)
			p.writeln(" {")
		}
		p.stmts(st.Stmts)
		p.writeln("}")
	case *ast.GlobalDecl:
		trailing := p.beforeComments(st.Pos, st.Comments)
		p.write("__global " + st.Name)
		if st.Type.IsValid() {
			p.write(" " + p.typeName(st.Type))
		}
		if st.Value != nil {
			p.write(" = ")
			p.expr(st.Value)
		}
		p.trailingComments(trailing)
		p.writeln("")
	case *ast.GoStmt:
		p.write("go ")
		p.expr(st.Call)
		p.writeln("")
	case *ast.HashStmt:
		p.writeln(st.Value)
	case *ast.InterfaceDecl:
		p.interfaceDecl(st)
	case *ast.Return:
		trailing := p.beforeComments(st.Pos, st.Comments)
		p.write("return")
		if len(st.Exprs) > 0 {
			p.write(" ")
			p.exprList(st.Exprs)
		}
		p.trailingComments(trailing)
		p.writeln("")
	case *ast.UnsafeStmt:
		p.writeln("unsafe {")
		p.stmts(st.Stmts)
		p.writeln("}")
	case *ast.SqlStmt:
		p.sqlStmt(st)
	case *ast.StructDecl:
		p.structDecl(st)
	case *ast.TypeDecl:
		p.typeDecl(st)
	default:
		panic(fmt.Sprintf("format: unexpected statement %T", s))
	}
}

// stmts renders a nested body one indent level deeper.
func (p *printer) stmts(list []ast.Stmt) {
	p.writer.IndentPush()
	for _, s := range list {
		p.stmt(s)
	}
	p.writer.IndentPop()
}

// simpleStmt renders a statement without finalizing its line, for loop
// headers and single-line bodies. Only simple kinds can appear there.
func (p *printer) simpleStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.Assign:
		p.assign(st)
	case *ast.ExprStmt:
		p.exprStmt(st.Expr)
	case *ast.Return:
		p.write("return")
		if len(st.Exprs) > 0 {
			p.write(" ")
			p.exprList(st.Exprs)
		}
	case *ast.Branch:
		if st.Label != "" {
			p.write(st.Kind + " " + st.Label)
		} else {
			p.write(st.Kind)
		}
	case *ast.Assert:
		p.write("assert ")
		p.expr(st.Expr)
	case *ast.GoStmt:
		p.write("go ")
		p.expr(st.Call)
	default:
		panic(fmt.Sprintf("format: statement %T cannot render inline", s))
	}
}

// isSimpleStmt reports whether s may collapse onto one line: a single plain
// statement with no nested conditional.
func isSimpleStmt(s ast.Stmt) bool {
	switch st := s.(type) {
	case *ast.ExprStmt:
		return isSimpleExpr(st.Expr)
	case *ast.Assign:
		for _, e := range st.Rhs {
			if !isSimpleExpr(e) {
				return false
			}
		}
		return true
	case *ast.Return:
		for _, e := range st.Exprs {
			if !isSimpleExpr(e) {
				return false
			}
		}
		return true
	case *ast.Branch, *ast.Assert, *ast.GoStmt:
		return true
	}
	return false
}

func isSimpleExpr(e ast.Expr) bool {
	switch v := e.(type) {
	case *ast.IfExpr, *ast.MatchExpr, *ast.AnonFn, *ast.LockExpr:
		return false
	case *ast.CallExpr:
		return v.Or.Kind != ast.OrRecover
	case *ast.MethodCallExpr:
		return v.Or.Kind != ast.OrRecover
	}
	return true
}

func (p *printer) assign(st *ast.Assign) {
	p.exprList(st.Lhs)
	p.write(" " + st.Op + " ")
	p.exprList(st.Rhs)
}

// exprStmt renders an expression in statement position: conditionals and
// matches never collapse there.
func (p *printer) exprStmt(e ast.Expr) {
	switch v := e.(type) {
	case *ast.IfExpr:
		p.ifExpr(v, false)
	case *ast.MatchExpr:
		p.matchExpr(v, false)
	default:
		p.expr(e)
	}
}

func (p *printer) typeName(id types.TypeID) string {
	return p.table.Name(id)
}

func (p *printer) constDecl(st *ast.ConstDecl) {
	trailing := p.beforeComments(st.Pos, st.Comments)
	prefix := ""
	if st.Pub {
		prefix = "pub "
	}
	if len(st.Fields) == 1 && len(st.Fields[0].Comments) == 0 {
		f := st.Fields[0]
		p.write(prefix + "const " + f.Name + " = ")
		p.expr(f.Value)
		p.trailingComments(trailing)
		p.writeln("")
		return
	}
	p.write(prefix + "const (")
	p.trailingComments(trailing)
	p.writeln("")
	p.writer.IndentPush()
	width := maxConstNameWidth(st.Fields)
	for _, f := range st.Fields {
		fTrailing := p.beforeComments(f.Pos, f.Comments)
		p.write(f.Name)
		p.pad(runewidth.StringWidth(f.Name), width)
		p.write("= ")
		p.expr(f.Value)
		p.trailingComments(fTrailing)
		p.writeln("")
	}
	p.writer.IndentPop()
	p.writeln(")")
}

func (p *printer) enumDecl(st *ast.EnumDecl) {
	trailing := p.beforeComments(st.Pos, st.Comments)
	if st.Pub {
		p.write("pub ")
	}
	p.write("enum " + st.Name + " {")
	p.trailingComments(trailing)
	p.writeln("")
	p.writer.IndentPush()
	width := maxEnumNameWidth(st.Vals)
	for _, v := range st.Vals {
		vTrailing := p.beforeComments(v.Pos, v.Comments)
		p.write(v.Name)
		if v.Value != nil {
			p.pad(runewidth.StringWidth(v.Name), width)
			p.write("= ")
			p.expr(v.Value)
		} else if len(vTrailing) > 0 {
			p.pad(runewidth.StringWidth(v.Name), width)
			p.writer.TrimTrailingSpace()
		}
		p.trailingComments(vTrailing)
		p.writeln("")
	}
	p.writer.IndentPop()
	p.writeln("}")
}

func (p *printer) fnDecl(st *ast.FnDecl) {
	trailing := p.beforeComments(st.Pos, st.Comments)
	sig := p.signature(st)
	if st.NoBody {
		p.write(sig)
		p.trailingComments(trailing)
		p.writeln("")
		return
	}
	p.write(sig + " {")
	p.trailingComments(trailing)
	p.writeln("")
	p.stmts(st.Stmts)
	p.writeln("}")
}

// signature renders a function or method header from the declaration and the
// resolved parameter types.
func (p *printer) signature(st *ast.FnDecl) string {
	var b strings.Builder
	if st.Pub {
		b.WriteString("pub ")
	}
	b.WriteString("fn ")
	if st.Recv != nil {
		b.WriteString("(")
		if st.Recv.Mut {
			b.WriteString("mut ")
		}
		b.WriteString(st.Recv.Name)
		b.WriteString(" ")
		b.WriteString(p.typeName(st.Recv.Type))
		b.WriteString(") ")
	}
	b.WriteString(st.Name)
	b.WriteString("(")
	for i, param := range st.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		if param.Mut {
			b.WriteString("mut ")
		}
		b.WriteString(param.Name)
		b.WriteString(" ")
		b.WriteString(p.typeName(param.Type))
	}
	b.WriteString(")")
	if st.ReturnsError {
		b.WriteString(" ?")
		if st.ReturnType.IsValid() {
			b.WriteString(p.typeName(st.ReturnType))
		}
	} else if st.ReturnType.IsValid() {
		b.WriteString(" ")
		b.WriteString(p.typeName(st.ReturnType))
	}
	return b.String()
}

func (p *printer) interfaceDecl(st *ast.InterfaceDecl) {
	trailing := p.beforeComments(st.Pos, st.Comments)
	if st.Pub {
		p.write("pub ")
	}
	p.write("interface " + st.Name + " {")
	p.trailingComments(trailing)
	p.writeln("")
	p.writer.IndentPush()
	width := maxFieldNameWidth(st.Fields)
	for i := range st.Fields {
		p.structField(&st.Fields[i], width)
	}
	for _, m := range st.Methods {
		mTrailing := p.beforeComments(m.Pos, m.Comments)
		p.write(m.Name + "(")
		for i, param := range m.Params {
			if i > 0 {
				p.write(", ")
			}
			p.write(param.Name + " " + p.typeName(param.Type))
		}
		p.write(")")
		if m.ReturnType.IsValid() {
			p.write(" " + p.typeName(m.ReturnType))
		}
		p.trailingComments(mTrailing)
		p.writeln("")
	}
	p.writer.IndentPop()
	p.writeln("}")
}

func (p *printer) sqlStmt(st *ast.SqlStmt) {
	p.writeln("sql " + st.Db + " {")
	p.writer.IndentPush()
	for _, line := range strings.Split(strings.TrimSpace(st.Body), "\n") {
		p.writeln(strings.TrimSpace(line))
	}
	p.writer.IndentPop()
	p.writeln("}")
}

func (p *printer) structDecl(st *ast.StructDecl) {
	trailing := p.beforeComments(st.Pos, st.Comments)
	if st.Pub {
		p.write("pub ")
	}
	p.write("struct " + st.Name + " {")
	p.trailingComments(trailing)
	p.writeln("")
	p.writer.IndentPush()
	width := maxFieldNameWidth(st.Fields)
	sections := st.Sections
	for i := range st.Fields {
		for len(sections) > 0 && sections[0].Index == i {
			p.writer.IndentPop()
			p.writeln(sections[0].Label + ":")
			p.writer.IndentPush()
			sections = sections[1:]
		}
		p.structField(&st.Fields[i], width)
	}
	p.writer.IndentPop()
	p.writeln("}")
}

// structField renders one aligned field: name, inline comments, padding to
// the group width, then the type token.
func (p *printer) structField(f *ast.StructField, width int) {
	fc := splitFieldComments(f)
	for _, c := range fc.before {
		p.standaloneComment(c)
	}
	p.write(f.Name)
	for _, c := range fc.inline {
		p.write(" " + inlineComment(c))
	}
	p.pad(fieldNameWidth(f), width)
	p.write(p.typeName(f.Type))
	if f.Default != nil {
		p.write(" = ")
		p.expr(f.Default)
	}
	p.trailingComments(fc.trailing)
	p.writeln("")
}

func (p *printer) typeDecl(st *ast.TypeDecl) {
	trailing := p.beforeComments(st.Pos, st.Comments)
	if st.Pub {
		p.write("pub ")
	}
	p.write("type " + st.Name + " = ")
	switch st.Kind {
	case ast.TypeAlias:
		p.write(p.typeName(st.Base))
	case ast.TypeSum:
		names := make([]string, len(st.Variants))
		for i, id := range st.Variants {
			names[i] = p.typeName(id)
		}
		p.write(strings.Join(names, " | "))
	case ast.TypeFn:
		p.write("fn (")
		for i, param := range st.FnParams {
			if i > 0 {
				p.write(", ")
			}
			if param.Name != "" {
				p.write(param.Name + " ")
			}
			p.write(p.typeName(param.Type))
		}
		p.write(")")
		if st.FnReturn.IsValid() {
			p.write(" " + p.typeName(st.FnReturn))
		}
	default:
		panic(fmt.Sprintf("format: unexpected type declaration kind %d", st.Kind))
	}
	p.trailingComments(trailing)
	p.writeln("")
}
