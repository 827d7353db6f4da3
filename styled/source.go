package styled

import (
	"github.com/npillmayer/textformat"
	"github.com/npillmayer/textformat/span"
	"golang.org/x/text/language"
)

// PropertyStyle is a style which knows how to format runs of text. Styles
// which are not property styles are formatted with the paragraph's default
// run properties.
type PropertyStyle interface {
	Style
	RunProperties(base textformat.TextRunProperties) textformat.TextRunProperties
}

// Source delivers a styled text as a single paragraph to the line-breaking
// machinery. It implements textformat.TextSource.
//
// Every run of text spans at most a single style run. Line separators become
// end-of-line runs, and the paragraph ends with an end-of-paragraph run of
// length 1 at position text.Len().
type Source struct {
	text  *Text
	para  textformat.TextParagraphProperties
	ppd   float64
	props []styleProps
}

type styleProps struct {
	style Style
	props textformat.TextRunProperties
}

var _ textformat.TextSource = (*Source)(nil)

// Source creates a text source for t, formatted with paragraph properties
// para. The source reflects later edits of t.
func (t *Text) Source(para textformat.TextParagraphProperties) *Source {
	return &Source{text: t, para: para, ppd: 1.0}
}

// SetPixelsPerDip changes the scale reported to the formatting machinery.
func (src *Source) SetPixelsPerDip(ppd float64) {
	if ppd > 0 {
		src.ppd = ppd
	}
}

// PixelsPerDip is part of interface textformat.TextSource.
func (src *Source) PixelsPerDip() float64 {
	return src.ppd
}

// runProperties returns the properties for a style. Properties are created
// once per style, so runs of equal style share a single record.
func (src *Source) runProperties(sty Style) textformat.TextRunProperties {
	base := src.para.DefaultTextRunProperties()
	ps, ok := sty.(PropertyStyle)
	if !ok {
		return base
	}
	for _, p := range src.props {
		if p.style.Equals(sty) {
			return p.props
		}
	}
	props := ps.RunProperties(base)
	src.props = append(src.props, styleProps{style: sty, props: props})
	return props
}

func isLineSeparator(r rune) bool {
	return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
}

// GetTextRun is part of interface textformat.TextSource.
func (src *Source) GetTextRun(index int) (textformat.TextRun, error) {
	chars := src.text.text
	switch {
	case index < 0 || index > len(chars):
		return nil, &textformat.ArgumentError{Param: "index", Reason: "outside of text"}
	case index == len(chars):
		return textformat.NewTextEndOfParagraph(1, src.para.DefaultTextRunProperties()), nil
	case chars[index] == '\r':
		if index+1 < len(chars) && chars[index+1] == '\n' {
			return textformat.NewTextEndOfLine(2, src.para.DefaultTextRunProperties()), nil
		}
		return textformat.NewTextEndOfLine(1, src.para.DefaultTextRunProperties()), nil
	case chars[index] == '\u2029':
		return textformat.NewTextEndOfParagraph(1, src.para.DefaultTextRunProperties()), nil
	case isLineSeparator(chars[index]):
		return textformat.NewTextEndOfLine(1, src.para.DefaultTextRunProperties()), nil
	}
	rider := span.NewRider(src.text.runs)
	rider.At(index)
	end := index + rider.Length()
	for i := index; i < end; i++ {
		if isLineSeparator(chars[i]) {
			end = i
			break
		}
	}
	run := textformat.NewTextCharacters(chars[index:end:end], src.runProperties(rider.CurrentValue()))
	tracer().Debugf("styled source: run @ %d = %v", index, run)
	return run, nil
}

// GetPrecedingText is part of interface textformat.TextSource. The text
// returned does not reach back beyond the start of the style run or the line
// containing limit-1.
func (src *Source) GetPrecedingText(limit int) (textformat.TextSpan, error) {
	chars := src.text.text
	limit = min(limit, len(chars))
	if limit <= 0 {
		return textformat.TextSpan{}, nil
	}
	if isLineSeparator(chars[limit-1]) {
		return textformat.TextSpan{Length: 1, Culture: language.Und}, nil
	}
	rider := span.NewRider(src.text.runs)
	rider.At(limit - 1)
	start := rider.CurrentSpanStart()
	for i := limit - 1; i > start; i-- {
		if isLineSeparator(chars[i-1]) {
			start = i
			break
		}
	}
	props := src.runProperties(rider.CurrentValue())
	culture, ok := textformat.SpecificCulture(props.Culture())
	if !ok {
		culture = language.AmericanEnglish
	}
	return textformat.TextSpan{Length: limit - start, Culture: culture, Chars: chars[start:limit:limit]}, nil
}

// GetTextEffectCharacterIndexFromTextSourceCharacterIndex is not supported
// for styled text.
func (src *Source) GetTextEffectCharacterIndexFromTextSourceCharacterIndex(int) (int, error) {
	return 0, textformat.ErrUnsupported
}
