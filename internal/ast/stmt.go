package ast

import (
	"flux/internal/source"
	"flux/internal/types"
)

// Module is the `module name` declaration opening a file.
type Module struct {
	Name     string
	Pos      source.Pos
	Comments []Comment
}

// Import declares `import path` or `import path as alias`.
type Import struct {
	Path  string // dot-separated module path
	Alias string // empty means the last path component
	Pos   source.Pos
}

// Assign covers declarations and assignments: `x := 1`, `a, b = b, a`, `n += 2`.
type Assign struct {
	Op       string // ":=", "=", "+=", ...
	Lhs      []Expr
	Rhs      []Expr
	Pos      source.Pos
	Comments []Comment
}

// Assert is `assert cond`.
type Assert struct {
	Expr Expr
	Pos  source.Pos
}

// Block is a bare `{ ... }` statement.
type Block struct {
	Stmts []Stmt
	Pos   source.Pos
}

// Branch is `break` or `continue`, optionally labeled.
type Branch struct {
	Kind  string // "break" or "continue"
	Label string
	Pos   source.Pos
}

// Goto transfers control to a label.
type Goto struct {
	Label string
	Pos   source.Pos
}

// Label marks a jump target.
type Label struct {
	Name string
	Pos  source.Pos
}

// CommentStmt is a standalone comment between statements.
type CommentStmt struct {
	Comment Comment
}

// CompIf is the compile-time conditional `$if cond { ... } $else { ... }`.
type CompIf struct {
	Cond    string
	Then    []Stmt
	Else    []Stmt
	HasElse bool
	Pos     source.Pos
}

// ConstDecl is a constant group.
type ConstDecl struct {
	Pub      bool
	Fields   []ConstField
	Pos      source.Pos
	Comments []Comment
}

// ConstField is one `name = value` entry of a constant group.
type ConstField struct {
	Name      string
	Value     Expr
	Pos       source.Pos
	EndOffset uint32 // byte offset just past the value
	Comments  []Comment
}

// DeferStmt is `defer { ... }`.
type DeferStmt struct {
	Stmts []Stmt
	Pos   source.Pos
}

// EnumDecl declares an enumeration.
type EnumDecl struct {
	Pub      bool
	Name     string
	Vals     []EnumVal
	Pos      source.Pos
	Comments []Comment
}

// EnumVal is one enumerator, optionally with an explicit value.
type EnumVal struct {
	Name      string
	Value     Expr // nil when implicit
	Pos       source.Pos
	EndOffset uint32
	Comments  []Comment
}

// ExprStmt is an expression in statement position.
type ExprStmt struct {
	Expr     Expr
	Pos      source.Pos
	Comments []Comment
}

// Param is a function or method parameter.
type Param struct {
	Name string
	Type types.TypeID
	Mut  bool
}

// FnDecl declares a function or, when Recv is set, a method.
type FnDecl struct {
	Pub          bool
	Name         string
	Recv         *Param // nil for free functions
	Params       []Param
	ReturnType   types.TypeID // NoTypeID when the function returns nothing
	ReturnsError bool         // fallible result: renders `?` before the return type
	Stmts        []Stmt
	NoBody       bool // declaration only (foreign fns)
	Pos          source.Pos
	Comments     []Comment
}

// ForCStmt is the counted loop `for init; cond; post { ... }`.
type ForCStmt struct {
	Init  Stmt // nil allowed
	Cond  Expr // nil allowed
	Post  Stmt // nil allowed
	Stmts []Stmt
	Pos   source.Pos
}

// ForInStmt is the iterator loop `for k, v in xs { ... }`.
type ForInStmt struct {
	Key      string // empty when only one loop variable is bound
	Val      string
	Iterable Expr
	Stmts    []Stmt
	Pos      source.Pos
}

// ForStmt is the condition-only loop; nil Cond loops forever.
type ForStmt struct {
	Cond  Expr
	Stmts []Stmt
	Pos   source.Pos
}

// GlobalDecl is `__global name Type = value`.
type GlobalDecl struct {
	Name     string
	Type     types.TypeID
	Value    Expr // nil allowed
	Pos      source.Pos
	Comments []Comment
}

// GoStmt dispatches a call concurrently: `go f(x)`.
type GoStmt struct {
	Call Expr
	Pos  source.Pos
}

// HashStmt is an embedded foreign declaration passed through verbatim,
// e.g. `#include <stdio.h>`.
type HashStmt struct {
	Value string
	Pos   source.Pos
}

// InterfaceMethod is one method requirement of an interface.
type InterfaceMethod struct {
	Name       string
	Params     []Param
	ReturnType types.TypeID
	Pos        source.Pos
	Comments   []Comment
}

// InterfaceDecl declares an interface: field requirements plus methods.
type InterfaceDecl struct {
	Pub      bool
	Name     string
	Fields   []StructField
	Methods  []InterfaceMethod
	Pos      source.Pos
	Comments []Comment
}

// Return is `return` with zero or more results.
type Return struct {
	Exprs    []Expr
	Pos      source.Pos
	Comments []Comment
}

// UnsafeStmt is the `unsafe { ... }` region.
type UnsafeStmt struct {
	Stmts []Stmt
	Pos   source.Pos
}

// SqlStmt is a structured-query block passed through verbatim.
type SqlStmt struct {
	Db   string
	Body string // raw query text between the braces
	Pos  source.Pos
}

// Section is a visibility marker partitioning struct fields by index,
// e.g. `mut:` before field 2. Fields are never reordered.
type Section struct {
	Index int    // index of the first field the section applies to
	Label string // "mut", "pub", "pub mut", "__global"
}

// StructField is one field of a struct or interface declaration.
type StructField struct {
	Name       string
	Type       types.TypeID
	Default    Expr   // nil unless the field has a default value
	Pos        source.Pos
	TypeOffset uint32 // byte offset of the type token, bounds inline comments
	EndOffset  uint32 // byte offset just past the field
	Comments   []Comment
}

// StructDecl declares a struct.
type StructDecl struct {
	Pub      bool
	Name     string
	Fields   []StructField
	Sections []Section
	Pos      source.Pos
	Comments []Comment
}

// TypeDeclKind discriminates the three forms of a type declaration.
type TypeDeclKind uint8

const (
	TypeAlias TypeDeclKind = iota
	TypeSum
	TypeFn
)

// TypeDecl declares an alias, a sum type or a function type.
type TypeDecl struct {
	Pub      bool
	Name     string
	Kind     TypeDeclKind
	Base     types.TypeID   // alias target
	Variants []types.TypeID // sum type members
	FnParams []Param
	FnReturn types.TypeID
	Pos      source.Pos
	Comments []Comment
}

func (s *Module) Position() source.Pos        { return s.Pos }
func (s *Import) Position() source.Pos        { return s.Pos }
func (s *Assign) Position() source.Pos        { return s.Pos }
func (s *Assert) Position() source.Pos        { return s.Pos }
func (s *Block) Position() source.Pos         { return s.Pos }
func (s *Branch) Position() source.Pos        { return s.Pos }
func (s *Goto) Position() source.Pos          { return s.Pos }
func (s *Label) Position() source.Pos         { return s.Pos }
func (s *CommentStmt) Position() source.Pos   { return s.Comment.Pos }
func (s *CompIf) Position() source.Pos        { return s.Pos }
func (s *ConstDecl) Position() source.Pos     { return s.Pos }
func (s *DeferStmt) Position() source.Pos     { return s.Pos }
func (s *EnumDecl) Position() source.Pos      { return s.Pos }
func (s *ExprStmt) Position() source.Pos      { return s.Pos }
func (s *FnDecl) Position() source.Pos        { return s.Pos }
func (s *ForCStmt) Position() source.Pos      { return s.Pos }
func (s *ForInStmt) Position() source.Pos     { return s.Pos }
func (s *ForStmt) Position() source.Pos       { return s.Pos }
func (s *GlobalDecl) Position() source.Pos    { return s.Pos }
func (s *GoStmt) Position() source.Pos        { return s.Pos }
func (s *HashStmt) Position() source.Pos      { return s.Pos }
func (s *InterfaceDecl) Position() source.Pos { return s.Pos }
func (s *Return) Position() source.Pos        { return s.Pos }
func (s *UnsafeStmt) Position() source.Pos    { return s.Pos }
func (s *SqlStmt) Position() source.Pos       { return s.Pos }
func (s *StructDecl) Position() source.Pos    { return s.Pos }
func (s *TypeDecl) Position() source.Pos      { return s.Pos }

func (*Module) stmtNode()        {}
func (*Import) stmtNode()        {}
func (*Assign) stmtNode()        {}
func (*Assert) stmtNode()        {}
func (*Block) stmtNode()         {}
func (*Branch) stmtNode()        {}
func (*Goto) stmtNode()          {}
func (*Label) stmtNode()         {}
func (*CommentStmt) stmtNode()   {}
func (*CompIf) stmtNode()        {}
func (*ConstDecl) stmtNode()     {}
func (*DeferStmt) stmtNode()     {}
func (*EnumDecl) stmtNode()      {}
func (*ExprStmt) stmtNode()      {}
func (*FnDecl) stmtNode()        {}
func (*ForCStmt) stmtNode()      {}
func (*ForInStmt) stmtNode()     {}
func (*ForStmt) stmtNode()       {}
func (*GlobalDecl) stmtNode()    {}
func (*GoStmt) stmtNode()        {}
func (*HashStmt) stmtNode()      {}
func (*InterfaceDecl) stmtNode() {}
func (*Return) stmtNode()        {}
func (*UnsafeStmt) stmtNode()    {}
func (*SqlStmt) stmtNode()       {}
func (*StructDecl) stmtNode()    {}
func (*TypeDecl) stmtNode()      {}
