package runcache

import (
	"fmt"
	"math"
	"unicode"
	"unicode/utf16"

	"github.com/npillmayer/textformat"
	"github.com/npillmayer/textformat/span"
)

// Joiners must not be separated from their neighbours.
const (
	zeroWidthNonJoiner = '\u200C'
	zeroWidthJoiner    = '\u200D'
	wordJoiner         = '\u2060'
)

func isJoiner(r rune) bool {
	return r == zeroWidthNonJoiner || r == zeroWidthJoiner || r == wordJoiner
}

func isCombining(r rune) bool {
	return unicode.Is(unicode.M, r)
}

// IsSafeSplit reports whether chars may be split before position pos, i.e.
// between chars[pos-1] and chars[pos].
func IsSafeSplit(chars []rune, pos int) bool {
	if pos <= 0 || pos >= len(chars) {
		return true
	}
	prev, cur := chars[pos-1], chars[pos]
	// Runes decoded from strings never hold surrogates; only hand-built slices can.
	if utf16.IsSurrogate(prev) && prev < 0xDC00 && utf16.IsSurrogate(cur) && cur >= 0xDC00 {
		return false // inside a pair of surrogates
	}
	canBreakAfterPrev := !isJoiner(prev)
	canBreakBeforeCur := !isCombining(cur) && !isJoiner(cur)
	return canBreakAfterPrev && canBreakBeforeCur
}

// ValidateRun checks a run delivered by a text source. Text and inline objects
// must carry complete properties: an em-size within range, a culture which
// can be resolved to a specific culture, and a typeface.
func ValidateRun(run textformat.TextRun) error {
	if run == nil {
		return &textformat.ArgumentError{Param: "run", Reason: "text source delivered no run"}
	}
	if run.Length() < 1 {
		return &textformat.ArgumentError{Param: "Length", Reason: "length must be greater than zero"}
	}
	kind := run.Kind()
	if kind != textformat.KindCharacters && kind != textformat.KindInlineObject {
		return nil
	}
	if kind == textformat.KindCharacters {
		cr, ok := run.(textformat.CharacterRun)
		if !ok || len(cr.Characters()) < run.Length() {
			return &textformat.ArgumentError{Param: "Characters", Reason: "run carries fewer characters than its length"}
		}
	}
	props := run.Properties()
	if props == nil {
		return &textformat.ArgumentError{Param: "Properties", Reason: "must not be nil"}
	}
	em := props.FontRenderingEmSize()
	if em <= 0 || math.IsNaN(em) {
		return &textformat.ArgumentError{Param: "FontRenderingEmSize", Reason: "must be greater than zero"}
	}
	if em > textformat.MaxFontRenderingEmSize {
		return &textformat.ArgumentError{
			Param:  "FontRenderingEmSize",
			Reason: fmt.Sprintf("must not be greater than %g", textformat.MaxFontRenderingEmSize),
		}
	}
	if _, ok := textformat.SpecificCulture(props.Culture()); !ok {
		return &textformat.ArgumentError{
			Param:  "Culture",
			Reason: fmt.Sprintf("%v cannot be resolved to a specific culture", props.Culture()),
		}
	}
	if props.Typeface().IsNull() {
		return &textformat.ArgumentError{Param: "Typeface", Reason: "must not be null"}
	}
	return nil
}

// GetPrecedingText returns the text preceding limit. If the cache holds a
// run covering limit-1, the cached run is used, otherwise the call is
// delegated to the text source.
func (c *Cache) GetPrecedingText(source textformat.TextSource, limit int) (textformat.TextSpan, error) {
	if limit > 0 {
		rider := span.NewRider(c.runs)
		if rider.At(limit-1) && rider.CurrentValue() != nil {
			run := rider.CurrentValue()
			start := rider.CurrentSpanStart()
			if textformat.IsShapeable(run) && run.Properties() != nil {
				chars := run.(textformat.CharacterRun).Characters()
				n := min(limit-start, len(chars))
				culture, _ := textformat.SpecificCulture(run.Properties().Culture())
				return textformat.TextSpan{Length: n, Culture: culture, Chars: chars[:n]}, nil
			}
			return textformat.TextSpan{Length: limit - start}, nil
		}
	}
	return source.GetPrecedingText(limit)
}

// RunSpan is a span of the cache. Run is nil for ranges not fetched yet.
type RunSpan struct {
	Length int
	Run    textformat.TextRun
}

// GetTextRunSpans returns every span of the cache, including gaps.
func (c *Cache) GetTextRunSpans() []RunSpan {
	spans := make([]RunSpan, c.runs.Count())
	for i := range spans {
		s := c.runs.At(i)
		spans[i] = RunSpan{Length: s.Length, Run: s.Value}
	}
	return spans
}
