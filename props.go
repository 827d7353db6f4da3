package textformat

import (
	"fmt"
	"image/color"

	"golang.org/x/text/language"
)

// --- Typefaces -------------------------------------------------------------

// FontStyle is the slant of a typeface.
type FontStyle int8

// Font styles
const (
	StyleNormal FontStyle = iota
	StyleItalic
	StyleOblique
)

// FontWeight is the stroke thickness of a typeface, following the usual
// 100…900 scale.
type FontWeight int16

// Some common font weights
const (
	WeightThin     FontWeight = 100
	WeightLight    FontWeight = 300
	WeightNormal   FontWeight = 400
	WeightMedium   FontWeight = 500
	WeightSemiBold FontWeight = 600
	WeightBold     FontWeight = 700
	WeightBlack    FontWeight = 900
)

// FontStretch is the width of a typeface relative to its normal aspect ratio,
// from 1 (ultra-condensed) to 9 (ultra-expanded).
type FontStretch int8

// Font stretches
const (
	StretchCondensed FontStretch = 3
	StretchNormal    FontStretch = 5
	StretchExpanded  FontStretch = 7
)

// Typeface is a combination of a font family, style, weight and stretch.
// The zero value is the null typeface, which is not valid for runs of text.
type Typeface struct {
	Family  string
	Style   FontStyle
	Weight  FontWeight
	Stretch FontStretch
}

// NewTypeface creates a typeface of normal style, weight and stretch.
func NewTypeface(family string) Typeface {
	return Typeface{
		Family:  family,
		Style:   StyleNormal,
		Weight:  WeightNormal,
		Stretch: StretchNormal,
	}
}

// IsNull reports whether tf is the null typeface.
func (tf Typeface) IsNull() bool {
	return tf.Family == ""
}

func (tf Typeface) String() string {
	if tf.IsNull() {
		return "<null typeface>"
	}
	return fmt.Sprintf("%s/%d/%d/%d", tf.Family, tf.Style, tf.Weight, tf.Stretch)
}

// --- Run level enumerations ------------------------------------------------

// TextDecorations is a set of lines drawn along a run of text.
type TextDecorations uint8

// Text decorations
const (
	Underline TextDecorations = 1 << iota
	Overline
	Strikethrough
	BaselineDecoration
)

// BaselineAlignment positions a run vertically relative to its line.
type BaselineAlignment int8

// Baseline alignments
const (
	AlignBaseline BaselineAlignment = iota
	AlignTop
	AlignCenter
	AlignBottom
	AlignTextTop
	AlignTextBottom
	AlignSubscript
	AlignSuperscript
)

// NumberSubstitutionMethod selects how digits are substituted.
type NumberSubstitutionMethod int8

// Substitution methods
const (
	SubstituteAsCulture NumberSubstitutionMethod = iota
	SubstituteContext
	SubstituteEuropean
	SubstituteNativeNational
	SubstituteTraditional
)

// NumberSubstitution controls the digit shapes used for a run of text.
type NumberSubstitution struct {
	Culture language.Tag
	Method  NumberSubstitutionMethod
}

// --- Paragraph level enumerations ------------------------------------------

// FlowDirection is the inline progression of a paragraph.
type FlowDirection int8

// Flow directions
const (
	LeftToRight FlowDirection = iota
	RightToLeft
)

// TextAlignment aligns lines horizontally within a paragraph.
type TextAlignment int8

// Text alignments
const (
	AlignLeft TextAlignment = iota
	AlignRight
	AlignCenterText
	AlignJustify
)

// TextWrapping controls whether lines are wrapped at the paragraph width.
type TextWrapping int8

// Wrapping modes.
//
// WrapWithOverflow breaks lines at break opportunities only; a word longer
// than the paragraph width overflows the line. Wrap additionally breaks
// within a word if a word does not fit on a line by itself.
const (
	WrapWithOverflow TextWrapping = iota
	NoWrap
	Wrap
)

func (w TextWrapping) String() string {
	switch w {
	case WrapWithOverflow:
		return "WrapWithOverflow"
	case NoWrap:
		return "NoWrap"
	case Wrap:
		return "Wrap"
	}
	return fmt.Sprintf("TextWrapping(%d)", int(w))
}

// TabStop is an explicit tab position, measured from the start of a line.
type TabStop struct {
	Location float64
}

// --- Property interfaces ---------------------------------------------------

// TextRunProperties is the resolved formatting of a run of text.
//
// PixelsPerDip is not part of a run's formatting identity; it is refreshed from
// the text source every time a run is handed out by the run cache.
type TextRunProperties interface {
	Typeface() Typeface
	FontRenderingEmSize() float64
	FontHintingEmSize() float64
	TextDecorations() TextDecorations
	ForegroundBrush() color.Color
	BackgroundBrush() color.Color
	BaselineAlignment() BaselineAlignment
	Culture() language.Tag
	NumberSubstitution() *NumberSubstitution
	PixelsPerDip() float64
	SetPixelsPerDip(float64)
}

// TextMarkerProperties describes the list marker of a paragraph. Offset is the
// distance from the start of the marker to the start of the paragraph text.
type TextMarkerProperties interface {
	Offset() float64
	TextSource() TextSource
}

// TextParagraphProperties is the resolved formatting of a paragraph.
//
// Indent applies to the first line of a paragraph only, ParagraphIndent applies
// to every line. LineHeight is 0 if line heights are to be derived from the
// fonts of a line.
type TextParagraphProperties interface {
	FlowDirection() FlowDirection
	TextAlignment() TextAlignment
	LineHeight() float64
	FirstLineInParagraph() bool
	AlwaysCollapsible() bool
	DefaultTextRunProperties() TextRunProperties
	TextWrapping() TextWrapping
	TextMarkerProperties() TextMarkerProperties // may be nil
	Indent() float64
	ParagraphIndent() float64
	DefaultIncrementalTab() float64
	Tabs() []TabStop
}
