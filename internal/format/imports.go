package format

import "strings"

// wellKnownModules is the allow-list of module names whose explicit
// method-call syntax triggers an automatic import.
var wellKnownModules = map[string]bool{
	"os":      true,
	"time":    true,
	"math":    true,
	"rand":    true,
	"strings": true,
	"term":    true,
	"json":    true,
	"sync":    true,
}

type importDecl struct {
	Path  string
	Alias string // empty means the last path component
}

// importTracker accumulates module usage during the visitor pass and renders
// the deduplicated import block at finalization. The block is spliced at the
// output offset recorded when the first non-import declaration began
// emission, which preserves any document-leading module declaration.
type importTracker struct {
	declared []importDecl
	used     map[string]bool
	auto     []string
	offset   int
}

func newImportTracker() *importTracker {
	return &importTracker{
		used:   make(map[string]bool),
		offset: -1,
	}
}

// importAlias resolves the in-scope short name of an import.
func importAlias(path, alias string) string {
	if alias != "" {
		return alias
	}
	if idx := strings.LastIndexByte(path, '.'); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

func (t *importTracker) declare(path, alias string) {
	t.declared = append(t.declared, importDecl{Path: path, Alias: alias})
}

// markUsed records that a qualified reference resolved to path.
func (t *importTracker) markUsed(path string) {
	t.used[path] = true
}

// autoImport appends a well-known module to both the declared-import list and
// the auto-import list unless it is already declared.
func (t *importTracker) autoImport(path string) {
	for _, d := range t.declared {
		if d.Path == path {
			t.markUsed(path)
			return
		}
	}
	t.declared = append(t.declared, importDecl{Path: path})
	t.auto = append(t.auto, path)
	t.markUsed(path)
}

// markInsertion records the splice offset once.
func (t *importTracker) markInsertion(offset int) {
	if t.offset < 0 {
		t.offset = offset
	}
}

func (t *importTracker) shiftInsertion(by int) {
	if t.offset > 0 {
		t.offset -= by
		if t.offset < 0 {
			t.offset = 0
		}
	}
}

// render produces the import block: one line per used module path, alias
// spelled out only when it differs from the path's last component.
func (t *importTracker) render() string {
	var b strings.Builder
	seen := make(map[string]bool, len(t.declared))
	for _, d := range t.declared {
		if seen[d.Path] || !t.used[d.Path] {
			continue
		}
		seen[d.Path] = true
		b.WriteString("import ")
		b.WriteString(d.Path)
		alias := importAlias(d.Path, d.Alias)
		if d.Alias != "" && alias != lastComponent(d.Path) {
			b.WriteString(" as ")
			b.WriteString(alias)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func lastComponent(path string) string {
	if idx := strings.LastIndexByte(path, '.'); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

// finalize splices the rendered block, followed by a blank line, into the
// body at the recorded insertion offset. It is a pure concatenation of the
// leading declaration, the block, and the remaining body.
func (t *importTracker) finalize(body []byte) []byte {
	block := t.render()
	if block == "" {
		return body
	}
	offset := t.offset
	if offset < 0 {
		offset = 0
	}
	if offset > len(body) {
		offset = len(body)
	}
	out := make([]byte, 0, len(body)+len(block)+1)
	out = append(out, body[:offset]...)
	out = append(out, block...)
	out = append(out, '\n')
	out = append(out, body[offset:]...)
	return out
}
