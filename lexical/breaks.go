/*
Package lexical holds the results of lexical analysis for chunks of text
and maps between positions of a client's text and internal positions of a
line-breaking backend.

Line-break opportunities are found by the Unicode line breaking algorithm
(UAX#14). A break opportunity at position i means that a line may end
before character i of the chunk. Every opportunity is weighted by a
penalty, where negative penalties denote merits and a mandatory break
carries a very large merit.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/
package lexical

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax14"
)

// tracer writes to trace with key 'textformat'
func tracer() tracing.Trace {
	return tracing.Select("textformat")
}

// Penalty thresholds for break opportunities.
const (
	MandatoryBreak = -1000 // penalties at or below this value force a break
	SuppressBreak  = 1000  // penalties at or above this value inhibit a break
)

// Breaks is the result of line-break analysis for a chunk of characters.
type Breaks struct {
	length    int
	penalties map[int]int // break opportunities, keyed by position
}

// Analyze finds the line-break opportunities within chars.
//
// The end of the chunk is always reported as a break opportunity.
func Analyze(chars []rune) *Breaks {
	b := &Breaks{length: len(chars), penalties: make(map[int]int)}
	if len(chars) == 0 {
		return b
	}
	linewrap := uax14.NewLineWrap()
	segmenter := segment.NewSegmenter(linewrap)
	segmenter.Init(strings.NewReader(string(chars)))
	pos := 0
	for segmenter.Next() {
		p1, _ := segmenter.Penalties()
		pos += utf8.RuneCount(segmenter.Bytes())
		if pos > b.length {
			pos = b.length
		}
		if p1 >= SuppressBreak {
			continue
		}
		b.penalties[pos] = p1
		tracer().Debugf("break opportunity @ %d, p=%d", pos, p1)
	}
	if _, ok := b.penalties[b.length]; !ok {
		b.penalties[b.length] = 0
	}
	return b
}

// Length is the number of characters analyzed.
func (b *Breaks) Length() int {
	if b == nil {
		return 0
	}
	return b.length
}

// IsBreakBefore reports whether a line may end before character i.
// Position 0 is never a break opportunity.
func (b *Breaks) IsBreakBefore(i int) bool {
	if b == nil || i <= 0 || i > b.length {
		return false
	}
	_, ok := b.penalties[i]
	return ok
}

// Penalty returns the penalty for breaking before character i. For positions
// which are not break opportunities, SuppressBreak is returned.
func (b *Breaks) Penalty(i int) int {
	if b == nil {
		return SuppressBreak
	}
	if p, ok := b.penalties[i]; ok {
		return p
	}
	return SuppressBreak
}

// IsMandatory reports whether a line must end before character i.
func (b *Breaks) IsMandatory(i int) bool {
	return b.IsBreakBefore(i) && b.penalties[i] <= MandatoryBreak
}

// Positions returns all break opportunities in increasing order.
func (b *Breaks) Positions() []int {
	if b == nil {
		return nil
	}
	pp := make([]int, 0, len(b.penalties))
	for pos := range b.penalties {
		pp = append(pp, pos)
	}
	sort.Ints(pp)
	return pp
}
