/*
Package marker generates the text of list-item markers.

A marker is either a symbol (a bullet) or an auto-numbering string, such as
“3.”, “c.” or “iv.”. Markers are delivered through the regular text source
contract, so the line-breaking machinery treats them like any other text.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/
package marker

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textformat"
	"golang.org/x/text/language"
)

// tracer writes to trace with key 'textformat'
func tracer() tracing.Trace {
	return tracing.Select("textformat")
}

// Style is the kind of a list marker.
type Style int8

// Marker styles
const (
	None Style = iota
	Disc
	Circle
	Square
	Box
	LowerRoman
	UpperRoman
	LowerLatin
	UpperLatin
	Decimal
)

func (s Style) String() string {
	switch s {
	case None:
		return "none"
	case Disc:
		return "disc"
	case Circle:
		return "circle"
	case Square:
		return "square"
	case Box:
		return "box"
	case LowerRoman:
		return "lower-roman"
	case UpperRoman:
		return "upper-roman"
	case LowerLatin:
		return "lower-latin"
	case UpperLatin:
		return "upper-latin"
	case Decimal:
		return "decimal"
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// ParseStyle finds a marker style by name, as returned by Style.String.
func ParseStyle(name string) (Style, error) {
	for s := None; s <= Decimal; s++ {
		if s.String() == name {
			return s, nil
		}
	}
	return None, &textformat.ArgumentError{Param: "style", Reason: fmt.Sprintf("unknown marker style %q", name)}
}

// IsIndexStyle reports whether a style numbers list items.
func (s Style) IsIndexStyle() bool {
	return s >= LowerRoman && s <= Decimal
}

// SymbolFontFamily is the font family bullet symbols are taken from.
const SymbolFontFamily = "Wingdings"

// Symbols of the symbol font, per symbol style.
var symbols = map[Style]rune{
	Disc:   '\x9f',
	Circle: '\xa1',
	Square: '\x71',
	Box:    '\xa7',
}

// Source is a text source delivering the text of a list marker.
type Source struct {
	style    Style
	chars    []rune
	runProps textformat.TextRunProperties
	ppd      float64
}

var _ textformat.TextSource = (*Source)(nil)

// NewSource creates the marker text for a paragraph. Index is the 1-based
// number of the list item and must be positive for index styles.
func NewSource(para textformat.TextParagraphProperties, style Style, index int) (*Source, error) {
	if para == nil || para.DefaultTextRunProperties() == nil {
		return nil, &textformat.ArgumentError{Param: "para", Reason: "paragraph properties with default run properties required"}
	}
	src := &Source{style: style, runProps: para.DefaultTextRunProperties(), ppd: 1.0}
	if ppd := src.runProps.PixelsPerDip(); ppd > 0 {
		src.ppd = ppd
	}
	if style.IsIndexStyle() && index < 1 {
		return nil, &textformat.ArgumentError{Param: "index", Reason: "auto-numbering index must be greater than zero"}
	}
	switch style {
	case None:
	case Disc, Circle, Square, Box:
		base := src.runProps.Typeface()
		src.runProps = &symbolProperties{
			TextRunProperties: src.runProps,
			typeface: textformat.Typeface{
				Family:  SymbolFontFamily,
				Style:   base.Style,
				Weight:  base.Weight,
				Stretch: base.Stretch,
			},
		}
		src.chars = []rune{symbols[style]}
	case LowerRoman, UpperRoman:
		src.chars = []rune(ConvertNumberToRomanString(index, style == UpperRoman))
	case LowerLatin:
		src.chars = []rune(ConvertNumberToString(index, true, LowerLatinLetters))
	case UpperLatin:
		src.chars = []rune(ConvertNumberToString(index, true, UpperLatinLetters))
	case Decimal:
		src.chars = []rune(ConvertNumberToString(index, false, DecimalDigits))
	default:
		return nil, &textformat.ArgumentError{Param: "style", Reason: fmt.Sprintf("unknown marker style %v", style)}
	}
	tracer().Debugf("marker %v #%d = %q", style, index, string(src.chars))
	return src, nil
}

// Style returns the marker style of the source.
func (src *Source) Style() Style {
	return src.style
}

// Text returns the marker text.
func (src *Source) Text() string {
	return string(src.chars)
}

// GetTextRun returns the marker text from index on. Beyond the marker text,
// an end of paragraph is returned.
func (src *Source) GetTextRun(index int) (textformat.TextRun, error) {
	if index >= 0 && index < len(src.chars) {
		return textformat.NewTextCharacters(src.chars[index:], src.runProps), nil
	}
	return textformat.NewTextEndOfParagraph(1, nil), nil
}

// GetPrecedingText returns the marker text before limit.
func (src *Source) GetPrecedingText(limit int) (textformat.TextSpan, error) {
	if limit > 0 && len(src.chars) > 0 {
		n := min(limit, len(src.chars))
		culture, ok := textformat.SpecificCulture(src.runProps.Culture())
		if !ok {
			culture = language.AmericanEnglish
		}
		return textformat.TextSpan{Length: n, Culture: culture, Chars: src.chars[:n]}, nil
	}
	return textformat.TextSpan{}, nil
}

// GetTextEffectCharacterIndexFromTextSourceCharacterIndex is not supported for markers.
func (src *Source) GetTextEffectCharacterIndexFromTextSourceCharacterIndex(int) (int, error) {
	return 0, textformat.ErrUnsupported
}

// PixelsPerDip is part of interface textformat.TextSource.
func (src *Source) PixelsPerDip() float64 {
	return src.ppd
}

// symbolProperties are run properties using the symbol font family.
type symbolProperties struct {
	textformat.TextRunProperties
	typeface textformat.Typeface
}

func (sp *symbolProperties) Typeface() textformat.Typeface {
	return sp.typeface
}

// --- Marker properties -----------------------------------------------------

// Properties describes the marker of a paragraph. It implements
// textformat.TextMarkerProperties.
type Properties struct {
	offset float64
	source *Source
}

var _ textformat.TextMarkerProperties = (*Properties)(nil)

// NewProperties creates a marker of a given style for a paragraph. Offset is
// the distance from the start of the marker to the start of the paragraph's
// text.
func NewProperties(style Style, offset float64, index int, para textformat.TextParagraphProperties) (*Properties, error) {
	src, err := NewSource(para, style, index)
	if err != nil {
		return nil, err
	}
	return &Properties{offset: offset, source: src}, nil
}

// Offset is part of interface textformat.TextMarkerProperties.
func (mp *Properties) Offset() float64 {
	return mp.offset
}

// TextSource is part of interface textformat.TextMarkerProperties.
func (mp *Properties) TextSource() textformat.TextSource {
	return mp.source
}
