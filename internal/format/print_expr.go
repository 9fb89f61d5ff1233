package format

import (
	"fmt"

	"flux/internal/ast"
)

// expr dispatches over every expression variant. The tree is assumed well
// formed; an unknown variant is a fatal abort.
func (p *printer) expr(e ast.Expr) {
	switch v := e.(type) {
	case *ast.BoolLiteral:
		if v.Value {
			p.write("true")
		} else {
			p.write("false")
		}
	case *ast.CharLiteral:
		p.write("`" + v.Value + "`")
	case *ast.FloatLiteral:
		p.write(v.Value)
	case *ast.IntegerLiteral:
		p.write(v.Value)
	case *ast.StringLiteral:
		p.write("'" + v.Value + "'")
	case *ast.StringInterLiteral:
		p.stringInter(v)
	case *ast.AnonFn:
		p.anonFn(v)
	case *ast.ArrayInit:
		p.arrayInit(v)
	case *ast.MapInit:
		p.mapInit(v)
	case *ast.StructInit:
		p.structInit(v, false)
	case *ast.CallExpr:
		p.callExpr(v)
	case *ast.MethodCallExpr:
		p.methodCall(v)
	case *ast.CastExpr:
		p.write(p.typeName(v.Type) + "(")
		p.expr(v.Expr)
		p.write(")")
	case *ast.MatchExpr:
		p.matchExpr(v, true)
	case *ast.IfExpr:
		p.ifExpr(v, true)
	case *ast.Ident:
		p.ident(v)
	case *ast.IndexExpr:
		p.expr(v.X)
		p.write("[")
		p.expr(v.Index)
		p.write("]")
	case *ast.InfixExpr:
		p.infixExpr(v)
	case *ast.PrefixExpr:
		p.write(v.Op)
		p.expr(v.Expr)
	case *ast.PostfixExpr:
		p.expr(v.Expr)
		p.write(v.Op)
	case *ast.LockExpr:
		p.lockExpr(v)
	case *ast.RangeExpr:
		if v.Low != nil {
			p.expr(v.Low)
		}
		p.write("..")
		if v.High != nil {
			p.expr(v.High)
		}
	case *ast.SelectorExpr:
		p.selector(v)
	case *ast.SizeOf:
		p.write("sizeof(" + p.typeName(v.Type) + ")")
	case *ast.TypeOf:
		p.write("typeof(")
		p.expr(v.Expr)
		p.write(")")
	case *ast.Likely:
		if v.Likely {
			p.write("_likely_(")
		} else {
			p.write("_unlikely_(")
		}
		p.expr(v.Expr)
		p.write(")")
	case *ast.ParExpr:
		p.write("(")
		p.parDepth++
		p.expr(v.Expr)
		p.parDepth--
		p.write(")")
	default:
		panic(fmt.Sprintf("format: unexpected expression %T", e))
	}
}

func (p *printer) exprList(list []ast.Expr) {
	for i, e := range list {
		if i > 0 {
			p.write(", ")
		}
		p.expr(e)
	}
}

// ident renders an identifier, substituting the implicit `it` for the bound
// pattern-match scrutinee.
func (p *printer) ident(v *ast.Ident) {
	if p.matchIdent != "" && v.Name == p.matchIdent {
		p.write("it")
		return
	}
	p.write(v.Name)
}

func (p *printer) selector(v *ast.SelectorExpr) {
	if id, ok := v.X.(*ast.Ident); ok && id.Name != p.matchIdent {
		if path, imported := p.aliases[id.Name]; imported {
			p.imports.markUsed(path)
		}
	}
	p.expr(v.X)
	p.write("." + v.Sel)
}

// infixExpr renders a binary-operator chain through the line-break engine.
// The outermost chain of a statement stays pending until the line is
// finalized; a chain reached while another capture is active is recorded and
// handed back as one opaque segment.
func (p *printer) infixExpr(e *ast.InfixExpr) {
	if p.nowrap > 0 {
		p.expr(e.Left)
		p.write(" " + e.Op + " ")
		p.expr(e.Right)
		return
	}
	// An operand that owns physical lines can never sit inside a capture:
	// sink text is recorded raw, and finalizing a line mid-capture would
	// flush chains the enclosing operands still extend. Such a chain renders
	// unwrapped.
	if multilineExpr(e) {
		p.expr(e.Left)
		p.write(" " + e.Op + " ")
		p.expr(e.Right)
		return
	}
	if len(p.chains) > 0 {
		p.beginChain()
		p.chainInfix(e)
		p.write(p.endChainInner())
		return
	}
	p.beginChain()
	p.chainInfix(e)
}

func (p *printer) chainInfix(e *ast.InfixExpr) {
	p.chainOperand(e.Left)
	p.write(" " + e.Op)
	p.cut(boundaryPenalty(nestedOperand(e.Left), nestedOperand(e.Right)), p.precKey(e.Op))
	p.chainOperand(e.Right)
}

// chainOperand keeps nested binary and parenthesized operands inside the
// same capture so their boundaries carry deeper precedence keys.
func (p *printer) chainOperand(x ast.Expr) {
	switch v := x.(type) {
	case *ast.InfixExpr:
		p.chainInfix(v)
	case *ast.ParExpr:
		p.write("(")
		p.parDepth++
		p.chainOperand(v.Expr)
		p.parDepth--
		p.write(")")
	default:
		p.expr(x)
	}
}

func nestedOperand(x ast.Expr) bool {
	switch x.(type) {
	case *ast.InfixExpr, *ast.ParExpr:
		return true
	}
	return false
}

// multilineExpr reports whether rendering the expression is forced onto more
// than one physical line, mirroring the single-line decisions the individual
// renderers make.
func multilineExpr(e ast.Expr) bool {
	switch v := e.(type) {
	case *ast.AnonFn, *ast.LockExpr:
		return true
	case *ast.MapInit:
		return len(v.Keys) > 0
	case *ast.StructInit:
		return len(v.Fields) > 0 && (v.PerLine || structInitHasComments(v))
	case *ast.CallExpr:
		return multilineOr(v.Or) || anyMultiline(v.Args)
	case *ast.MethodCallExpr:
		return multilineExpr(v.Recv) || multilineOr(v.Or) || anyMultiline(v.Args)
	case *ast.IfExpr:
		if !collapsibleBranches(ifBodies(v)) {
			return true
		}
		for _, br := range v.Branches {
			if br.Cond != nil && multilineExpr(br.Cond) {
				return true
			}
			if multilineSimpleStmt(br.Stmts[0]) {
				return true
			}
		}
		return false
	case *ast.MatchExpr:
		if multilineExpr(v.Cond) || !collapsibleBranches(matchBodies(v)) {
			return true
		}
		for _, br := range v.Branches {
			if anyMultiline(br.Exprs) || multilineSimpleStmt(br.Stmts[0]) {
				return true
			}
		}
		return false
	case *ast.InfixExpr:
		return multilineExpr(v.Left) || multilineExpr(v.Right)
	case *ast.ParExpr:
		return multilineExpr(v.Expr)
	case *ast.PrefixExpr:
		return multilineExpr(v.Expr)
	case *ast.PostfixExpr:
		return multilineExpr(v.Expr)
	case *ast.CastExpr:
		return multilineExpr(v.Expr)
	case *ast.TypeOf:
		return multilineExpr(v.Expr)
	case *ast.Likely:
		return multilineExpr(v.Expr)
	case *ast.IndexExpr:
		return multilineExpr(v.X) || multilineExpr(v.Index)
	case *ast.SelectorExpr:
		return multilineExpr(v.X)
	case *ast.ArrayInit:
		return anyMultiline(v.Exprs)
	case *ast.RangeExpr:
		return (v.Low != nil && multilineExpr(v.Low)) || (v.High != nil && multilineExpr(v.High))
	case *ast.StringInterLiteral:
		return anyMultiline(v.Exprs)
	}
	return false
}

func anyMultiline(list []ast.Expr) bool {
	for _, e := range list {
		if multilineExpr(e) {
			return true
		}
	}
	return false
}

// multilineOr reports whether the recovery suffix renders as a brace block
// with its own lines rather than the inline `or { ... }` form.
func multilineOr(or ast.OrBlock) bool {
	if or.Kind != ast.OrRecover {
		return false
	}
	if len(or.Stmts) != 1 || !isSimpleStmt(or.Stmts[0]) {
		return true
	}
	return multilineSimpleStmt(or.Stmts[0])
}

func multilineSimpleStmt(s ast.Stmt) bool {
	switch st := s.(type) {
	case *ast.ExprStmt:
		return multilineExpr(st.Expr)
	case *ast.Assign:
		return anyMultiline(st.Lhs) || anyMultiline(st.Rhs)
	case *ast.Return:
		return anyMultiline(st.Exprs)
	case *ast.Assert:
		return multilineExpr(st.Expr)
	case *ast.GoStmt:
		return multilineExpr(st.Call)
	}
	return false
}

func (p *printer) stringInter(v *ast.StringInterLiteral) {
	p.nowrap++
	p.write("'")
	for i, part := range v.Parts {
		p.write(part)
		if i >= len(v.Exprs) {
			continue
		}
		if id, ok := v.Exprs[i].(*ast.Ident); ok {
			p.write("$")
			p.ident(id)
			continue
		}
		p.write("${")
		p.expr(v.Exprs[i])
		p.write("}")
	}
	p.write("'")
	p.nowrap--
}

func (p *printer) anonFn(v *ast.AnonFn) {
	p.write("fn (")
	for i, param := range v.Params {
		if i > 0 {
			p.write(", ")
		}
		if param.Mut {
			p.write("mut ")
		}
		p.write(param.Name + " " + p.typeName(param.Type))
	}
	p.write(")")
	if v.ReturnType.IsValid() {
		p.write(" " + p.typeName(v.ReturnType))
	}
	p.writeln(" {")
	p.stmts(v.Stmts)
	p.write("}")
}

func (p *printer) arrayInit(v *ast.ArrayInit) {
	if len(v.Exprs) == 0 {
		if v.ElemType.IsValid() {
			p.write("[]" + p.typeName(v.ElemType) + "{}")
		} else {
			p.write("[]")
		}
		return
	}
	p.write("[")
	p.exprList(v.Exprs)
	p.write("]")
}

func (p *printer) mapInit(v *ast.MapInit) {
	if len(v.Keys) == 0 {
		p.write("map[" + p.typeName(v.KeyType) + "]" + p.typeName(v.ValType) + "{}")
		return
	}
	p.writeln("{")
	p.writer.IndentPush()
	for i := range v.Keys {
		p.expr(v.Keys[i])
		p.write(": ")
		p.expr(v.Vals[i])
		p.writeln("")
	}
	p.writer.IndentPop()
	p.write("}")
}

// structInit renders a struct literal. In short-args position (trailing call
// argument) the braces and type name are suppressed.
func (p *printer) structInit(v *ast.StructInit, shortArgs bool) {
	if shortArgs {
		for i, f := range v.Fields {
			if i > 0 {
				p.write(", ")
			}
			p.write(f.Name + ": ")
			p.expr(f.Value)
		}
		return
	}
	name := p.typeName(v.Type)
	if len(v.Fields) == 0 {
		p.write(name + "{}")
		return
	}
	if !v.PerLine && !structInitHasComments(v) {
		p.write(name + "{")
		for i, f := range v.Fields {
			if i > 0 {
				p.write(", ")
			}
			p.write(f.Name + ": ")
			p.expr(f.Value)
		}
		p.write("}")
		return
	}
	p.writeln(name + "{")
	p.writer.IndentPush()
	for _, f := range v.Fields {
		trailing := p.beforeComments(f.Pos, f.Comments)
		p.write(f.Name + ": ")
		p.expr(f.Value)
		p.trailingComments(trailing)
		p.writeln("")
	}
	p.writer.IndentPop()
	p.write("}")
}

func structInitHasComments(v *ast.StructInit) bool {
	for _, f := range v.Fields {
		if len(f.Comments) > 0 {
			return true
		}
	}
	return false
}

func (p *printer) callExpr(v *ast.CallExpr) {
	if v.Module != "" {
		if path, imported := p.aliases[v.Module]; imported {
			p.imports.markUsed(path)
		} else if wellKnownModules[v.Module] {
			p.imports.autoImport(v.Module)
		}
		p.write(v.Module + ".")
	}
	p.write(v.Name + "(")
	p.callArgs(v.Args)
	p.write(")")
	p.orSuffix(v.Or)
}

func (p *printer) methodCall(v *ast.MethodCallExpr) {
	if id, ok := v.Recv.(*ast.Ident); ok && id.Name != p.matchIdent {
		if path, imported := p.aliases[id.Name]; imported {
			p.imports.markUsed(path)
		} else if wellKnownModules[id.Name] {
			p.imports.autoImport(id.Name)
		}
	}
	p.expr(v.Recv)
	p.write("." + v.Name + "(")
	p.callArgs(v.Args)
	p.write(")")
	p.orSuffix(v.Or)
}

// callArgs renders a call's arguments; a trailing inline struct literal uses
// the short form with its braces suppressed.
func (p *printer) callArgs(args []ast.Expr) {
	for i, arg := range args {
		if i > 0 {
			p.write(", ")
		}
		if init, ok := arg.(*ast.StructInit); ok && i == len(args)-1 {
			if !init.PerLine && !structInitHasComments(init) && len(init.Fields) > 0 {
				p.structInit(init, true)
				continue
			}
		}
		p.expr(arg)
	}
}

// orSuffix renders the fallible-result handling of a call: nothing, `?`, or
// an inline recovery block.
func (p *printer) orSuffix(or ast.OrBlock) {
	switch or.Kind {
	case ast.OrAbsent:
	case ast.OrPropagate:
		p.write("?")
	case ast.OrRecover:
		if len(or.Stmts) == 1 && isSimpleStmt(or.Stmts[0]) {
			p.write(" or { ")
			p.simpleStmt(or.Stmts[0])
			p.write(" }")
			return
		}
		p.writeln(" or {")
		p.stmts(or.Stmts)
		p.write("}")
	default:
		panic(fmt.Sprintf("format: unexpected or-block kind %d", or.Kind))
	}
}

func (p *printer) lockExpr(v *ast.LockExpr) {
	p.write(v.Kind)
	if len(v.Exprs) > 0 {
		p.write(" ")
		p.exprList(v.Exprs)
	}
	p.writeln(" {")
	p.stmts(v.Stmts)
	p.write("}")
}

// ifExpr renders the conditional construct. It collapses to one line only in
// expression position with every branch body a single simple statement.
func (p *printer) ifExpr(v *ast.IfExpr, exprPos bool) {
	if exprPos && collapsibleBranches(ifBodies(v)) {
		for i, br := range v.Branches {
			if i > 0 {
				p.write(" else ")
			}
			if br.Cond != nil {
				p.write("if ")
				p.expr(br.Cond)
				p.write(" ")
			}
			p.write("{ ")
			p.simpleStmt(br.Stmts[0])
			p.write(" }")
		}
		return
	}
	for i, br := range v.Branches {
		switch {
		case i == 0:
			p.write("if ")
			p.expr(br.Cond)
			p.writeln(" {")
		case br.Cond != nil:
			p.write("} else if ")
			p.expr(br.Cond)
			p.writeln(" {")
		default:
			p.writeln("} else {")
		}
		p.branchComments(br.Comments)
		p.stmts(br.Stmts)
	}
	p.write("}")
}

// matchExpr renders the pattern-match construct. A bare-identifier scrutinee
// binds the implicit `it` inside branch bodies; the binding is restored
// unconditionally when the construct finishes.
func (p *printer) matchExpr(v *ast.MatchExpr, exprPos bool) {
	p.write("match ")
	p.expr(v.Cond)

	prev := p.matchIdent
	if id, ok := v.Cond.(*ast.Ident); ok {
		p.matchIdent = id.Name
	}
	defer func() { p.matchIdent = prev }()

	if exprPos && collapsibleBranches(matchBodies(v)) {
		p.write(" {")
		for _, br := range v.Branches {
			p.write(" ")
			p.matchPattern(br)
			p.write(" { ")
			p.simpleStmt(br.Stmts[0])
			p.write(" }")
		}
		p.write(" }")
		return
	}
	p.writeln(" {")
	p.writer.IndentPush()
	for _, br := range v.Branches {
		p.branchComments(br.Comments)
		p.matchPattern(br)
		p.writeln(" {")
		p.stmts(br.Stmts)
		p.writeln("}")
	}
	p.writer.IndentPop()
	p.write("}")
}

func (p *printer) matchPattern(br ast.MatchBranch) {
	if br.IsElse {
		p.write("else")
		return
	}
	p.exprList(br.Exprs)
}

func (p *printer) branchComments(comments []ast.Comment) {
	p.writer.IndentPush()
	for _, c := range comments {
		p.standaloneComment(c)
	}
	p.writer.IndentPop()
}

func ifBodies(v *ast.IfExpr) [][]ast.Stmt {
	bodies := make([][]ast.Stmt, len(v.Branches))
	for i, br := range v.Branches {
		bodies[i] = br.Stmts
	}
	return bodies
}

func matchBodies(v *ast.MatchExpr) [][]ast.Stmt {
	bodies := make([][]ast.Stmt, len(v.Branches))
	for i, br := range v.Branches {
		bodies[i] = br.Stmts
	}
	return bodies
}

// collapsibleBranches reports whether every branch body is exactly one
// simple statement.
func collapsibleBranches(bodies [][]ast.Stmt) bool {
	for _, body := range bodies {
		if len(body) != 1 || !isSimpleStmt(body[0]) {
			return false
		}
	}
	return true
}
