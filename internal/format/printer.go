package format

import (
	"bytes"

	"flux/internal/ast"
	"flux/internal/types"
)

// Options configures a formatting run.
type Options struct {
	IndentWidth int // columns one indent level occupies in width accounting
	UseTabs     bool
	MaxWidth    int // top width tier; lines past it break wherever possible
	Debug       bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 4
		o.UseTabs = true
	}
	if o.MaxWidth == 0 {
		o.MaxWidth = 100
	}
	return o
}

type printer struct {
	writer  *Writer
	table   types.Table
	opt     Options
	aliases map[string]string // in-scope alias -> module path
	imports *importTracker
	chains  []*chain
	// parDepth is the parenthesis-nesting depth feeding precedence keys.
	parDepth int
	// nowrap disables chain capture in contexts where a line break would be
	// illegal, e.g. inside string interpolation.
	nowrap int
	// matchIdent is the scrutinee name bound as the implicit `it` inside
	// pattern-match bodies. Set on entry to a match on a bare identifier
	// and restored unconditionally when the construct finishes.
	matchIdent string
}

// Format renders the canonical source text for one parsed file. The tree is
// assumed well formed: a structurally impossible node combination aborts.
// Output is normalized to trimmed blank edges and a single trailing newline,
// with the import block spliced in after the leading module declaration.
func Format(file *ast.File, table types.Table, opt Options) []byte {
	opt = opt.withDefaults()
	p := &printer{
		writer:  NewWriter(opt),
		table:   table,
		opt:     opt,
		aliases: make(map[string]string),
		imports: newImportTracker(),
	}
	// The alias map is built once per file before traversal.
	for _, s := range file.Stmts {
		if imp, ok := s.(*ast.Import); ok {
			p.aliases[importAlias(imp.Path, imp.Alias)] = imp.Path
		}
	}
	p.file(file)
	p.imports.markInsertion(p.writer.Len())
	body := p.writer.Bytes()
	trimmed := bytes.TrimLeft(body, "\n")
	p.imports.shiftInsertion(len(body) - len(trimmed))
	return normalize(p.imports.finalize(normalize(trimmed)))
}

func (p *printer) file(f *ast.File) {
	var prev ast.Stmt
	for _, s := range f.Stmts {
		if imp, ok := s.(*ast.Import); ok {
			p.imports.declare(imp.Path, imp.Alias)
			continue
		}
		if prev != nil && !adjacentComments(prev, s) {
			p.writer.Newline()
		}
		if _, ok := s.(*ast.Module); !ok {
			p.imports.markInsertion(p.writer.Len())
		}
		p.stmt(s)
		prev = s
	}
}

// adjacentComments keeps consecutive standalone comments together without a
// separating blank line.
func adjacentComments(a, b ast.Stmt) bool {
	_, ca := a.(*ast.CommentStmt)
	_, cb := b.(*ast.CommentStmt)
	return ca && cb
}

// write sends text to the active sink.
func (p *printer) write(s string) {
	p.writer.WriteString(s)
}

// writeln finalizes the current line. A pending chain capture is flushed
// first, so the break decisions see the statement's full tail.
func (p *printer) writeln(s string) {
	p.write(s)
	for len(p.chains) > 0 {
		p.flushChain()
	}
	p.writer.Newline()
}

// normalize trims trailing blank content and guarantees a single trailing
// newline.
func normalize(body []byte) []byte {
	trimmed := bytes.TrimRight(body, " \t\n")
	if len(trimmed) == 0 {
		return nil
	}
	return append(trimmed, '\n')
}
