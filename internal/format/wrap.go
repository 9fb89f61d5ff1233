package format

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
)

// The line-break engine captures an operator chain as rendered segments with
// a penalty and a precedence key at every boundary, then decides where to
// break so each physical line stays under its width tier while keeping
// syntactically coherent groups together.
//
// Invariant: len(segments) == len(penalties)+1 == len(precedences)+1 once the
// chain is closed.

const (
	// basePenalty is assigned to a boundary between two simple operands;
	// nesting on either side makes the boundary more eager to break.
	basePenalty = 3
	// neverBreak selects the top width tier.
	neverBreak = 4
	// minGroupWidth is the smallest run worth keeping on one line.
	minGroupWidth = 25
	// longSegment: an atomic segment wider than this starts its own line.
	longSegment = 25
)

// widthTiers is indexed by (adjusted) penalty: tier 0 breaks most eagerly,
// the top tier only past the practical maximum width.
func (o Options) widthTiers() [5]int {
	return [5]int{35, 60, 85, 93, o.MaxWidth}
}

// opPrec maps binary operators to their textual precedence (higher binds
// tighter). Combined with parenthesis depth it forms the precedence key.
var opPrec = map[string]int{
	"||": 1,
	"&&": 2,
	"==": 3, "!=": 3, "<": 3, ">": 3, "<=": 3, ">=": 3, "in": 3, "!in": 3, "is": 3,
	"|": 4, "^": 4,
	"&": 5,
	"<<": 6, ">>": 6,
	"+": 7, "-": 7,
	"*": 8, "/": 8, "%": 8,
}

type chain struct {
	segments    []string
	penalties   []int
	precedences []int
}

// precKey combines operator precedence with the current parenthesis-nesting
// depth. Depth dominates: an operator inside parentheses never groups across
// an unparenthesized boundary.
func (p *printer) precKey(op string) int {
	prec, ok := opPrec[op]
	if !ok {
		prec = 9
	}
	return p.parDepth*16 + prec
}

// boundaryPenalty computes the base penalty for the boundary an infix node
// introduces: start at basePenalty and go down by one for each side that is
// itself a nested binary or parenthesized expression. Deeper nesting breaks
// more readily.
func boundaryPenalty(left, right bool) int {
	pen := basePenalty
	if left {
		pen--
	}
	if right {
		pen--
	}
	if pen < 0 {
		pen = 0
	}
	return pen
}

// beginChain opens a capture for one operator chain.
func (p *printer) beginChain() {
	p.chains = append(p.chains, &chain{})
	p.writer.PushSink()
}

// cut closes the current segment at an operator boundary.
func (p *printer) cut(penalty, key int) {
	c := p.chains[len(p.chains)-1]
	c.segments = append(c.segments, p.writer.TakeSink())
	c.penalties = append(c.penalties, penalty)
	c.precedences = append(c.precedences, key)
}

// endChainInner closes a nested capture. It never flushes: the finished
// chain is handed back to the enclosing capture as one opaque segment.
func (p *printer) endChainInner() string {
	c := p.chains[len(p.chains)-1]
	p.chains = p.chains[:len(p.chains)-1]
	tail := p.writer.PopSink()
	if len(c.segments) == 0 {
		return tail
	}
	return strings.Join(c.segments, " ") + " " + tail
}

// flushChain closes the outermost capture: the adjustment pass runs over the
// boundaries and the segments are emitted with breaks inserted.
func (p *printer) flushChain() {
	c := p.chains[len(p.chains)-1]
	p.chains = p.chains[:len(p.chains)-1]
	c.segments = append(c.segments, p.writer.PopSink())

	tiers := p.opt.widthTiers()
	c.adjust(p.writer.LineLen(), tiers)
	if p.opt.Debug {
		fmt.Fprintf(os.Stderr, "flux fmt: chain segments=%q penalties=%v precedences=%v\n",
			c.segments, c.penalties, c.precedences)
	}

	p.writer.WriteIndent()
	p.writer.IndentPush()
	for i, seg := range c.segments {
		p.writer.WriteString(seg)
		if i >= len(c.penalties) {
			break
		}
		if p.writer.LineLen() > tiers[c.penalties[i]] {
			p.writer.TrimTrailingSpace()
			p.writer.Newline()
		} else {
			p.writer.WriteString(" ")
		}
	}
	p.writer.IndentPop()
}

// adjust runs the boundary-adjustment pass. The grouping rule runs first and
// the overlong-segment rule second, so on a conflict the overflow rule wins.
func (c *chain) adjust(lineOffset int, tiers [5]int) {
	maxWidth := tiers[len(tiers)-1]

	// Group runs of same-precedence boundaries behind eager break points.
	for i := range c.penalties {
		if c.penalties[i] > 1 {
			continue
		}
		key := c.precedences[i]
		total := segWidth(c.segments[i+1])
		if i == 0 {
			total += lineOffset
		}
		end := -1
		for j := i + 1; j < len(c.penalties); j++ {
			if c.precedences[j] < key {
				// A looser boundary inside the run: no coherent
				// subexpression grouping exists here.
				break
			}
			if c.precedences[j] == key && total >= minGroupWidth {
				end = j
				break
			}
			total += segWidth(c.segments[j+1])
			if total > maxWidth {
				break
			}
		}
		if end < 0 {
			continue
		}
		for k := i + 1; k < end; k++ {
			c.penalties[k] = neverBreak
		}
		c.penalties[i] = 0
		c.penalties[end] = 0
	}

	// An overlong atomic segment must start its own line regardless of
	// grouping.
	for i := 1; i < len(c.segments); i++ {
		if segWidth(c.segments[i]) > longSegment {
			c.penalties[i-1] = 0
		}
	}
}

func segWidth(s string) int {
	return runewidth.StringWidth(s)
}
