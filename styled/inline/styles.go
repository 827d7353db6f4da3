package inline

import (
	"fmt"
	"image/color"

	"github.com/npillmayer/textformat"
	"github.com/npillmayer/textformat/generic"
	"github.com/npillmayer/textformat/styled"
)

// Some standard text formats
const (
	PlainStyle Style = 0
	BoldStyle  Style = 1 << (iota - 1)
	ItalicsStyle
	StrongStyle
	EmStyle
	SmallStyle
	MarkedStyle
)

const styleCount = 6

// SmallScale is the factor by which SmallStyle scales the em-size of text.
const SmallScale = 0.8

// MarkedBackground is the background brush of MarkedStyle.
var MarkedBackground color.Color = color.RGBA{R: 0xff, G: 0xee, B: 0x58, A: 0xff}

func styleString(s Style) string {
	switch s {
	case PlainStyle:
		return "plain"
	case BoldStyle:
		return "b"
	case ItalicsStyle:
		return "i"
	case StrongStyle:
		return "strong"
	case EmStyle:
		return "em"
	case SmallStyle:
		return "small"
	case MarkedStyle:
		return "mark"
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// StyleFromHTMLName returns the style for an HTML element name, or PlainStyle
// for elements without an inline style.
func StyleFromHTMLName(name string) Style {
	for i := range styleCount {
		if s := Style(1 << i); styleString(s) == name {
			return s
		}
	}
	return PlainStyle
}

// Style is a text style, applicable on runs of characters
type Style int

// Add combines a style with another style.
func (s Style) Add(other Style) Style {
	return s | other
}

// Minus removes the styles of other from s.
func (s Style) Minus(other Style) Style {
	return s & ^other
}

// Has reports whether s includes all of the styles of other.
func (s Style) Has(other Style) bool {
	return s&other == other
}

func (s Style) String() string {
	if s == 0 {
		return styleString(0)
	}
	str := ""
	for i := range styleCount {
		if s&(1<<i) > 0 {
			if str != "" {
				str += "+"
			}
			str += styleString(1 << i)
		}
	}
	if str != "" {
		return str
	}
	return styleString(s)
}

// Equals is part of interface styled.Style.
func (s Style) Equals(other styled.Style) bool {
	o, ok := other.(Style)
	return ok && o == s
}

// RunProperties is part of interface styled.PropertyStyle. Bold and strong
// text is set in a bold typeface, italics and emphasized text in an italic
// one. Small text is scaled by SmallScale, marked text gets a background.
func (s Style) RunProperties(base textformat.TextRunProperties) textformat.TextRunProperties {
	if s == PlainStyle {
		return base
	}
	props := generic.FromProperties(base)
	tf := props.Typeface()
	if s&(BoldStyle|StrongStyle) != 0 {
		tf.Weight = textformat.WeightBold
	}
	if s&(ItalicsStyle|EmStyle) != 0 {
		tf.Style = textformat.StyleItalic
	}
	if tf != props.Typeface() {
		props = props.WithTypeface(tf)
	}
	if s.Has(SmallStyle) {
		props = props.WithEmSize(props.FontRenderingEmSize() * SmallScale)
	}
	if s.Has(MarkedStyle) {
		props = props.WithBackground(MarkedBackground)
	}
	tracer().Debugf("inline style %v: %v @ %.1f", s, props.Typeface(), props.FontRenderingEmSize())
	return props
}

var _ styled.PropertyStyle = PlainStyle
