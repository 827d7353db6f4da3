/*
Package runcache caches text runs fetched from a client's text source.

Runs are cached per paragraph, keyed by character offset. The cache covers
the range of the paragraph which has been fetched so far (the active
range). Clients report edits with Change; every cached run from the edit
position to the end of the active range is then dropped and will be
re-fetched from the text source.

Long runs of characters are handed out in pieces, so that a single call
never delivers much more text than fits on a line.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/
package runcache

import (
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textformat"
	"github.com/npillmayer/textformat/span"
)

// tracer writes to trace with key 'textformat'
func tracer() tracing.Trace {
	return tracing.Select("textformat")
}

// Settings is the formatting state a run cache fetches runs for.
type Settings interface {
	TextSource() textformat.TextSource
}

// Cache is a cache of text runs for a paragraph.
//
// Spans of the cache always start at the start of a cached run. Spans not
// holding a run have value nil.
type Cache struct {
	runs *span.Vector[textformat.TextRun]
}

// New creates an empty run cache.
func New() *Cache {
	return &Cache{runs: span.NewVector[textformat.TextRun](nil, bothNil)}
}

// only gaps are coalesced, runs stay separate spans even if identical
func bothNil(a, b textformat.TextRun) bool {
	return a == nil && b == nil
}

// ActiveLength is the length of the range covered by the cache, i.e. the
// end of the farthest run fetched so far.
func (c *Cache) ActiveLength() int {
	return c.runs.TotalLength()
}

// Change tells the cache about an edit of the text at offset. Every run from
// the run containing offset to the end of the active range is dropped.
// Changes outside the active range are ignored.
func (c *Cache) Change(offset, added, removed int) {
	if offset < 0 || offset >= c.runs.TotalLength() {
		return
	}
	rider := span.NewRider(c.runs)
	rider.At(offset)
	start := rider.CurrentSpanStart()
	tracer().Debugf("run cache: change @ %d (+%d/-%d), invalidating [%d,%d)",
		offset, added, removed, start, c.runs.TotalLength())
	c.runs.Set(start, c.runs.TotalLength()-start, nil)
}

// FetchTextRun returns the run at cpFetch, either from the cache or from the
// settings' text source. cpFirst is the start of the line being formatted.
//
// It returns the run, the offset of cpFetch within the run, and the number of
// characters of the run, starting at cpFetch, which the caller should use.
// Long runs of text are chopped to about the length of a typical line.
func (c *Cache) FetchTextRun(settings Settings, cpFetch, cpFirst int) (textformat.TextRun, int, int, error) {
	source := settings.TextSource()
	rider := span.NewRider(c.runs)
	rider.At(cpFetch)
	run := rider.CurrentValue()
	if run == nil {
		var err error
		if run, err = source.GetTextRun(cpFetch); err != nil {
			tracer().Errorf("text source failed to deliver run @ %d: %v", cpFetch, err)
			return nil, 0, 0, err
		}
		if err = ValidateRun(run); err != nil {
			tracer().Errorf("text source delivered invalid run @ %d: %v", cpFetch, err)
			return nil, 0, 0, err
		}
		c.insert(cpFetch, run)
		rider = span.NewRider(c.runs)
		rider.At(cpFetch)
	}
	offsetInRun := cpFetch - rider.CurrentSpanStart()
	length := rider.Length()
	if !textformat.IsShapeable(run) && offsetInRun != 0 {
		return nil, 0, 0, fmt.Errorf("run cache: %v run fetched @ %d, inside of run: %w",
			run.Kind(), cpFetch, textformat.ErrIllegalArguments)
	}
	if props := run.Properties(); props != nil {
		props.SetPixelsPerDip(source.PixelsPerDip())
	}
	if textformat.IsShapeable(run) {
		chars := run.(textformat.CharacterRun).Characters()
		length = chop(chars[offsetInRun:offsetInRun+length], cpFetch-cpFirst)
	}
	if length <= 0 {
		panic(fmt.Sprintf("run cache: empty run @ %d", cpFetch))
	}
	tracer().Debugf("run cache: fetch @ %d → %v run, offset %d, length %d", cpFetch, run.Kind(), offsetInRun, length)
	return run, offsetInRun, length, nil
}

// insert puts a run into the cache at cp. A cached run which overlaps the tail
// of the new run is dropped as a whole.
func (c *Cache) insert(cp int, run textformat.TextRun) {
	end := cp + run.Length()
	if end < c.runs.TotalLength() {
		rider := span.NewRider(c.runs)
		rider.At(end - 1)
		if rider.CurrentValue() != nil && rider.CurrentPosition()+rider.Length() > end {
			start := rider.CurrentSpanStart()
			tracer().Debugf("run cache: clearing overlapped run at [%d,%d)", start, end+rider.Length()-1)
			c.runs.Set(start, rider.Length()+end-1-start, nil)
		}
	}
	c.runs.Set(cp, run.Length(), run)
}

// chop returns the number of characters of chars to hand out to a client which
// is distance characters into a line.
func chop(chars []rune, distance int) int {
	cch := len(chars)
	threshold := textformat.TypicalCharactersPerLine - distance
	if threshold <= 0 {
		threshold = int(math.Round(textformat.TypicalCharactersPerLine * 0.25))
	}
	if cch <= threshold {
		return cch
	}
	limit := min(cch, threshold+textformat.TypicalCharactersPerLine)
	pos := threshold
	for ; pos < limit; pos++ {
		if IsSafeSplit(chars, pos) {
			break
		}
	}
	tracer().Debugf("run cache: chopping run of %d characters at %d", cch, pos)
	return pos
}
