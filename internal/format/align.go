package format

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"flux/internal/ast"
)

// Column alignment for named-field declarations: within one group every type
// token (or value) starts at the same column, one past the widest name. The
// display length of a name includes any inline comment rendered between the
// name and the type.

// fieldNameWidth measures a struct field's name plus its inline comments.
func fieldNameWidth(f *ast.StructField) int {
	w := runewidth.StringWidth(f.Name)
	for _, c := range splitFieldComments(f).inline {
		w += 1 + runewidth.StringWidth(inlineComment(c))
	}
	return w
}

// maxFieldNameWidth computes the alignment width for a whole field group.
// Visibility sections partition the list without affecting the shared width.
func maxFieldNameWidth(fields []ast.StructField) int {
	maxWidth := 0
	for i := range fields {
		if w := fieldNameWidth(&fields[i]); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// maxConstNameWidth computes the alignment width for a constant group.
func maxConstNameWidth(fields []ast.ConstField) int {
	maxWidth := 0
	for _, f := range fields {
		if w := runewidth.StringWidth(f.Name); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// maxEnumNameWidth aligns only enumerators that have something after the
// name: an explicit value or a trailing comment.
func maxEnumNameWidth(vals []ast.EnumVal) int {
	maxWidth := 0
	for _, v := range vals {
		if v.Value == nil && len(v.Comments) == 0 {
			continue
		}
		if w := runewidth.StringWidth(v.Name); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// pad writes the spaces that take the line from the current name width to
// one column past the group width.
func (p *printer) pad(current, target int) {
	if target < current {
		target = current
	}
	p.write(strings.Repeat(" ", target-current+1))
}
