package format

import (
	"strings"

	"flux/internal/ast"
	"flux/internal/source"
)

// Comments are partitioned by source offset relative to the node they
// annotate: before-start comments render as standalone lines at the enclosing
// indent, between-name-and-type comments render inline and consume alignment
// budget, same-line-trailing comments are appended with no intervening break.

// beforeComments renders every comment positioned before pos as a standalone
// line and returns the remaining (trailing) ones.
func (p *printer) beforeComments(pos source.Pos, comments []ast.Comment) []ast.Comment {
	var trailing []ast.Comment
	for _, c := range comments {
		if c.Pos.Before(pos) {
			p.standaloneComment(c)
			continue
		}
		trailing = append(trailing, c)
	}
	return trailing
}

// trailingComments appends same-line comments after the node, separated by a
// single space, without a line break.
func (p *printer) trailingComments(comments []ast.Comment) {
	for _, c := range comments {
		p.write(" ")
		if c.Multiline() {
			p.write(inlineComment(c))
		} else {
			p.write(lineComment(c))
		}
	}
}

// standaloneComment renders a comment on its own line(s).
func (p *printer) standaloneComment(c ast.Comment) {
	if !c.Multiline() {
		p.writeln(lineComment(c))
		return
	}
	p.writeln("/*")
	for _, line := range strings.Split(c.Text, "\n") {
		p.writeln(strings.TrimRight(line, " \t"))
	}
	p.writeln("*/")
}

// lineComment renders the normalized single-line form.
func lineComment(c ast.Comment) string {
	text := strings.TrimSpace(c.Text)
	if text == "" {
		return "//"
	}
	return "// " + text
}

// inlineComment renders the delimited form usable mid-line; internal line
// breaks collapse to spaces.
func inlineComment(c ast.Comment) string {
	text := strings.Join(strings.Fields(c.Text), " ")
	if text == "" {
		return "/* */"
	}
	return "/* " + text + " */"
}

// fieldComments is the three-way partition for a named-field declaration.
type fieldComments struct {
	before   []ast.Comment
	inline   []ast.Comment
	trailing []ast.Comment
}

func splitFieldComments(f *ast.StructField) fieldComments {
	var fc fieldComments
	for _, c := range f.Comments {
		switch {
		case c.Pos.Offset < f.Pos.Offset:
			fc.before = append(fc.before, c)
		case c.Pos.Offset < f.TypeOffset:
			fc.inline = append(fc.inline, c)
		default:
			fc.trailing = append(fc.trailing, c)
		}
	}
	return fc
}
