package ast

import (
	"flux/internal/source"
	"flux/internal/types"
)

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	Value bool
	Pos   source.Pos
}

// CharLiteral carries the body of a rune literal, without the backticks.
type CharLiteral struct {
	Value string
	Pos   source.Pos
}

// FloatLiteral carries the lexeme verbatim.
type FloatLiteral struct {
	Value string
	Pos   source.Pos
}

// IntegerLiteral carries the lexeme verbatim (hex/octal/binary preserved).
type IntegerLiteral struct {
	Value string
	Pos   source.Pos
}

// StringLiteral carries the body of a string literal, without the quotes.
type StringLiteral struct {
	Value string
	Pos   source.Pos
}

// StringInterLiteral is an interpolated string. Parts surrounds Exprs:
// len(Parts) == len(Exprs)+1.
type StringInterLiteral struct {
	Parts []string
	Exprs []Expr
	Pos   source.Pos
}

// AnonFn is a function literal.
type AnonFn struct {
	Params     []Param
	ReturnType types.TypeID
	Stmts      []Stmt
	Pos        source.Pos
}

// ArrayInit is `[a, b, c]`, or `[]T{}` when empty with an element type.
type ArrayInit struct {
	Exprs    []Expr
	ElemType types.TypeID // set for the empty typed form
	Pos      source.Pos
}

// MapInit is a map literal; Keys and Vals run in parallel.
// Empty typed form renders as `map[K]V{}`.
type MapInit struct {
	Keys    []Expr
	Vals    []Expr
	KeyType types.TypeID
	ValType types.TypeID
	Pos     source.Pos
}

// StructInitField is one `name: value` entry of a struct literal.
type StructInitField struct {
	Name     string
	Value    Expr
	Pos      source.Pos
	Comments []Comment
}

// StructInit is a struct literal. PerLine forces the field-per-line form.
type StructInit struct {
	Type    types.TypeID
	Fields  []StructInitField
	PerLine bool
	Pos     source.Pos
}

// OrKind discriminates the fallible-result suffix of a call.
type OrKind uint8

const (
	// OrAbsent: no suffix, the error propagates by absence.
	OrAbsent OrKind = iota
	// OrPropagate renders `?`.
	OrPropagate
	// OrRecover renders an inline `or { ... }` recovery block.
	OrRecover
)

// OrBlock is the fallible-result handling attached to a call.
type OrBlock struct {
	Kind  OrKind
	Stmts []Stmt
}

// CallExpr is a free-function call; Module qualifies imported symbols.
type CallExpr struct {
	Module string // alias the call is qualified with, empty for local calls
	Name   string
	Args   []Expr
	Or     OrBlock
	Pos    source.Pos
}

// MethodCallExpr is `recv.name(args)`.
type MethodCallExpr struct {
	Recv Expr
	Name string
	Args []Expr
	Or   OrBlock
	Pos  source.Pos
}

// CastExpr is `T(expr)`.
type CastExpr struct {
	Type types.TypeID
	Expr Expr
	Pos  source.Pos
}

// MatchBranch is one arm of a match expression.
type MatchBranch struct {
	Exprs    []Expr // empty for the else arm
	IsElse   bool
	Stmts    []Stmt
	Pos      source.Pos
	Comments []Comment
}

// MatchExpr is the pattern-match construct.
type MatchExpr struct {
	Cond     Expr
	Branches []MatchBranch
	Pos      source.Pos
}

// IfBranch is one arm of an if expression; Cond is nil for the else arm.
type IfBranch struct {
	Cond     Expr
	Stmts    []Stmt
	Pos      source.Pos
	Comments []Comment
}

// IfExpr is the conditional construct, usable in both positions.
type IfExpr struct {
	Branches []IfBranch
	HasElse  bool
	Pos      source.Pos
}

// Ident is a bare identifier.
type Ident struct {
	Name string
	Pos  source.Pos
}

// IndexExpr is `x[i]`; the index may be a RangeExpr.
type IndexExpr struct {
	X     Expr
	Index Expr
	Pos   source.Pos
}

// InfixExpr is a binary operation.
type InfixExpr struct {
	Op    string
	Left  Expr
	Right Expr
	Pos   source.Pos
}

// PrefixExpr is `-x`, `!x`, `&x`, `*x`, `~x`.
type PrefixExpr struct {
	Op   string
	Expr Expr
	Pos  source.Pos
}

// PostfixExpr is `x++` or `x--`.
type PostfixExpr struct {
	Op   string
	Expr Expr
	Pos  source.Pos
}

// LockExpr is the critical-section construct `lock a, b { ... }`.
type LockExpr struct {
	Kind  string // "lock" or "rlock"
	Exprs []Expr
	Stmts []Stmt
	Pos   source.Pos
}

// RangeExpr is `lo..hi`; either side may be nil inside an index.
type RangeExpr struct {
	Low  Expr
	High Expr
	Pos  source.Pos
}

// SelectorExpr is member access `x.sel`.
type SelectorExpr struct {
	X   Expr
	Sel string
	Pos source.Pos
}

// SizeOf is `sizeof(T)`.
type SizeOf struct {
	Type types.TypeID
	Pos  source.Pos
}

// TypeOf is `typeof(expr)`.
type TypeOf struct {
	Expr Expr
	Pos  source.Pos
}

// Likely is the branch-likelihood hint `_likely_(x)` / `_unlikely_(x)`.
type Likely struct {
	Expr   Expr
	Likely bool
	Pos    source.Pos
}

// ParExpr is a parenthesized expression. The formatter tracks its nesting
// depth when computing precedence keys for line breaking.
type ParExpr struct {
	Expr Expr
	Pos  source.Pos
}

func (e *BoolLiteral) Position() source.Pos        { return e.Pos }
func (e *CharLiteral) Position() source.Pos        { return e.Pos }
func (e *FloatLiteral) Position() source.Pos       { return e.Pos }
func (e *IntegerLiteral) Position() source.Pos     { return e.Pos }
func (e *StringLiteral) Position() source.Pos      { return e.Pos }
func (e *StringInterLiteral) Position() source.Pos { return e.Pos }
func (e *AnonFn) Position() source.Pos             { return e.Pos }
func (e *ArrayInit) Position() source.Pos          { return e.Pos }
func (e *MapInit) Position() source.Pos            { return e.Pos }
func (e *StructInit) Position() source.Pos         { return e.Pos }
func (e *CallExpr) Position() source.Pos           { return e.Pos }
func (e *MethodCallExpr) Position() source.Pos     { return e.Pos }
func (e *CastExpr) Position() source.Pos           { return e.Pos }
func (e *MatchExpr) Position() source.Pos          { return e.Pos }
func (e *IfExpr) Position() source.Pos             { return e.Pos }
func (e *Ident) Position() source.Pos              { return e.Pos }
func (e *IndexExpr) Position() source.Pos          { return e.Pos }
func (e *InfixExpr) Position() source.Pos          { return e.Pos }
func (e *PrefixExpr) Position() source.Pos         { return e.Pos }
func (e *PostfixExpr) Position() source.Pos        { return e.Pos }
func (e *LockExpr) Position() source.Pos           { return e.Pos }
func (e *RangeExpr) Position() source.Pos          { return e.Pos }
func (e *SelectorExpr) Position() source.Pos       { return e.Pos }
func (e *SizeOf) Position() source.Pos             { return e.Pos }
func (e *TypeOf) Position() source.Pos             { return e.Pos }
func (e *Likely) Position() source.Pos             { return e.Pos }
func (e *ParExpr) Position() source.Pos            { return e.Pos }

func (*BoolLiteral) exprNode()        {}
func (*CharLiteral) exprNode()        {}
func (*FloatLiteral) exprNode()       {}
func (*IntegerLiteral) exprNode()     {}
func (*StringLiteral) exprNode()      {}
func (*StringInterLiteral) exprNode() {}
func (*AnonFn) exprNode()             {}
func (*ArrayInit) exprNode()          {}
func (*MapInit) exprNode()            {}
func (*StructInit) exprNode()         {}
func (*CallExpr) exprNode()           {}
func (*MethodCallExpr) exprNode()     {}
func (*CastExpr) exprNode()           {}
func (*MatchExpr) exprNode()          {}
func (*IfExpr) exprNode()             {}
func (*Ident) exprNode()              {}
func (*IndexExpr) exprNode()          {}
func (*InfixExpr) exprNode()          {}
func (*PrefixExpr) exprNode()         {}
func (*PostfixExpr) exprNode()        {}
func (*LockExpr) exprNode()           {}
func (*RangeExpr) exprNode()          {}
func (*SelectorExpr) exprNode()       {}
func (*SizeOf) exprNode()             {}
func (*TypeOf) exprNode()             {}
func (*Likely) exprNode()             {}
func (*ParExpr) exprNode()            {}
