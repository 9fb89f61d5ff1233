// Package ast defines the flux syntax tree the formatter consumes.
//
// The tree is produced by the front end (lexer/parser/type resolution) and is
// read-only for the formatter: every node carries the source position it was
// parsed at, resolved types arrive as types.TypeID, and out-of-band comments
// are attached to the node they annotate.
package ast

import (
	"strings"

	"flux/internal/source"
)

// Node is the common interface of all syntax tree nodes.
type Node interface {
	Position() source.Pos
}

// Stmt is implemented by all statement variants.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by all expression variants.
type Expr interface {
	Node
	exprNode()
}

// File is one parsed source file: an ordered statement list.
type File struct {
	Path  string
	Stmts []Stmt
}

// Comment is an out-of-band comment tagged with its source position.
// Text carries the body without delimiters; a body containing line breaks
// renders in block form.
type Comment struct {
	Text string
	Pos  source.Pos
}

// Multiline reports whether the comment body spans several lines.
func (c Comment) Multiline() bool {
	return strings.ContainsRune(c.Text, '\n')
}
