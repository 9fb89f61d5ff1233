package format

import (
	"bytes"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Writer accumulates formatted output. It owns a stack of sinks: index 0 is
// the real output buffer, everything above it is a capture opened by the
// line-break engine. While at least one capture is active, text is recorded
// raw, without indentation injection or width accounting; both resume exactly
// where they left off once the capture stack unwinds.
type Writer struct {
	opt         Options
	sinks       [][]byte
	indentLevel int
	lineLen     int // display columns on the current line
	atLineStart bool
	buffering   int
}

// NewWriter creates a new formatting writer.
func NewWriter(opt Options) *Writer {
	return &Writer{
		opt:         opt.withDefaults(),
		sinks:       [][]byte{make([]byte, 0, 1024)},
		atLineStart: true,
	}
}

// Bytes returns the accumulated output of the base sink.
func (w *Writer) Bytes() []byte {
	return w.sinks[0]
}

// Len returns the current length of the base sink in bytes.
func (w *Writer) Len() int {
	return len(w.sinks[0])
}

func (w *Writer) top() *[]byte {
	return &w.sinks[len(w.sinks)-1]
}

// WriteString writes a string to the active sink. Outside captures the
// current indentation is injected at most once per physical line.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	if w.buffering > 0 {
		*w.top() = append(*w.top(), s...)
		return
	}
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			w.Newline()
		}
		w.writeLine(line)
	}
}

func (w *Writer) writeLine(line string) {
	if line == "" {
		return
	}
	if w.atLineStart {
		w.writeIndent()
	}
	*w.top() = append(*w.top(), line...)
	w.lineLen += runewidth.StringWidth(line)
}

func (w *Writer) writeIndent() {
	if w.opt.UseTabs {
		for i := 0; i < w.indentLevel; i++ {
			*w.top() = append(*w.top(), '\t')
		}
	} else {
		for i := 0; i < w.indentLevel*w.opt.IndentWidth; i++ {
			*w.top() = append(*w.top(), ' ')
		}
	}
	w.lineLen = w.indentLevel * w.opt.IndentWidth
	w.atLineStart = false
}

// WriteIndent injects the current indentation if the line is still empty.
// The line-break engine uses it to claim the statement's own indent before
// pushing the continuation level.
func (w *Writer) WriteIndent() {
	if w.buffering == 0 && w.atLineStart {
		w.writeIndent()
	}
}

// AtLineStart reports whether nothing has been written on the current line.
func (w *Writer) AtLineStart() bool {
	return w.atLineStart
}

// Newline finalizes the current line.
func (w *Writer) Newline() {
	*w.top() = append(*w.top(), '\n')
	if w.buffering == 0 {
		w.atLineStart = true
		w.lineLen = 0
	}
}

// LineLen returns the display width already consumed on the current line.
func (w *Writer) LineLen() int {
	return w.lineLen
}

// IndentPush increases the indentation level.
func (w *Writer) IndentPush() {
	w.indentLevel++
}

// IndentPop decreases the indentation level.
func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

// PushSink opens a capture buffer; writes land there until PopSink.
func (w *Writer) PushSink() {
	w.sinks = append(w.sinks, nil)
	w.buffering++
}

// PopSink closes the innermost capture and returns everything it recorded
// since the last TakeSink.
func (w *Writer) PopSink() string {
	s := string(*w.top())
	w.sinks = w.sinks[:len(w.sinks)-1]
	w.buffering--
	return s
}

// TakeSink returns the innermost capture's pending text and resets it,
// leaving the capture open. The line-break engine cuts segments with it.
func (w *Writer) TakeSink() string {
	s := string(*w.top())
	*w.top() = nil
	return s
}

// Buffering reports whether a capture is active.
func (w *Writer) Buffering() bool {
	return w.buffering > 0
}

// TrimTrailingSpace removes a single trailing space from the active sink.
func (w *Writer) TrimTrailingSpace() {
	top := w.top()
	if n := len(*top); n > 0 && (*top)[n-1] == ' ' {
		*top = (*top)[:n-1]
		if w.buffering == 0 && w.lineLen > 0 {
			w.lineLen--
		}
	}
}

// RemoveTrailingWhitespace trims trailing blank content from the active sink
// and recomputes the line state, pulling the write position back onto the
// last non-empty line.
func (w *Writer) RemoveTrailingWhitespace() {
	top := w.top()
	*top = bytes.TrimRight(*top, " \t\n")
	if w.buffering > 0 {
		return
	}
	idx := bytes.LastIndexByte(*top, '\n')
	tail := (*top)[idx+1:]
	w.atLineStart = len(tail) == 0
	w.lineLen = runewidth.StringWidth(strings.ReplaceAll(string(tail), "\t", strings.Repeat(" ", w.opt.IndentWidth)))
}
