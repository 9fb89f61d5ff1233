package source

import (
	"fmt"
)

// Span is a half-open byte range inside one file.
type Span struct {
	File  FileID
	Start uint32 // inclusive
	End   uint32 // exclusive
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover extends the span to include other. Spans from different files are
// left untouched.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Pos is a single point in a source file, carried by syntax nodes and
// comments so the formatter can reason about relative placement.
type Pos struct {
	Offset uint32 // byte offset from the start of the file
	Line   uint32 // 1-based
}

func (p Pos) Before(other Pos) bool {
	return p.Offset < other.Offset
}

func (p Pos) SameLine(other Pos) bool {
	return p.Line == other.Line
}
