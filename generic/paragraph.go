package generic

import (
	"slices"

	"github.com/npillmayer/textformat"
)

// ParagraphProperties is a generic implementation of
// textformat.TextParagraphProperties.
//
// Flow direction, alignment, line height and wrapping may be changed with
// setters, for re-formatting a single paragraph with modified settings.
type ParagraphProperties struct {
	flowDirection textformat.FlowDirection
	alignment textformat.TextAlignment
	firstLine       bool
	collapsible     bool
	defaultRun textformat.TextRunProperties
	wrapping textformat.TextWrapping
	lineHeight      float64
	indent          float64
	paragraphIndent float64
	incrementalTab  float64
	tabs            []textformat.TabStop
	marker textformat.TextMarkerProperties
}

var _ textformat.TextParagraphProperties = (*ParagraphProperties)(nil)

// NewParagraphProperties creates a paragraph property record.
// If incrementalTab is not positive, tabs advance by 4 em of the default run
// properties.
func NewParagraphProperties(
	flowDirection textformat.FlowDirection,
	alignment textformat.TextAlignment,
	firstLineInParagraph, alwaysCollapsible bool,
	defaultRun textformat.TextRunProperties,
	wrapping textformat.TextWrapping,
	lineHeight, indent, paragraphIndent, incrementalTab float64,
	tabs []textformat.TabStop,
	marker textformat.TextMarkerProperties,
) *ParagraphProperties {
	if incrementalTab <= 0 && defaultRun != nil {
		incrementalTab = 4 * defaultRun.FontRenderingEmSize()
	}
	return &ParagraphProperties{
		flowDirection:   flowDirection,
		alignment:       alignment,
		firstLine:       firstLineInParagraph,
		collapsible:     alwaysCollapsible,
		defaultRun:      defaultRun,
		wrapping:        wrapping,
		lineHeight:      lineHeight,
		indent:          indent,
		paragraphIndent: paragraphIndent,
		incrementalTab:  incrementalTab,
		tabs:            slices.Clone(tabs),
		marker:          marker,
	}
}

// SimpleParagraph creates paragraph properties for left-to-right, left-aligned
// text without indents or marker.
func SimpleParagraph(defaultRun textformat.TextRunProperties, wrapping textformat.TextWrapping) *ParagraphProperties {
	return NewParagraphProperties(textformat.LeftToRight, textformat.AlignLeft, true, false,
		defaultRun, wrapping, 0, 0, 0, 0, nil, nil)
}

func (pp *ParagraphProperties) FlowDirection() textformat.FlowDirection { return pp.flowDirection }
func (pp *ParagraphProperties) TextAlignment() textformat.TextAlignment { return pp.alignment }
func (pp *ParagraphProperties) LineHeight() float64 { return pp.lineHeight }
func (pp *ParagraphProperties) FirstLineInParagraph() bool { return pp.firstLine }
func (pp *ParagraphProperties) AlwaysCollapsible() bool { return pp.collapsible }
func (pp *ParagraphProperties) TextWrapping() textformat.TextWrapping { return pp.wrapping }
func (pp *ParagraphProperties) Indent() float64 { return pp.indent }
func (pp *ParagraphProperties) ParagraphIndent() float64 { return pp.paragraphIndent }
func (pp *ParagraphProperties) DefaultIncrementalTab() float64 { return pp.incrementalTab }

// DefaultTextRunProperties is part of interface textformat.TextParagraphProperties.
func (pp *ParagraphProperties) DefaultTextRunProperties() textformat.TextRunProperties {
	return pp.defaultRun
}

// TextMarkerProperties returns the list marker of the paragraph, or nil.
func (pp *ParagraphProperties) TextMarkerProperties() textformat.TextMarkerProperties {
	return pp.marker
}

// Tabs returns a copy of the explicit tab stops.
func (pp *ParagraphProperties) Tabs() []textformat.TabStop {
	return slices.Clone(pp.tabs)
}

// SetFlowDirection changes the flow direction.
func (pp *ParagraphProperties) SetFlowDirection(dir textformat.FlowDirection) {
	pp.flowDirection = dir
}

// SetTextAlignment changes the text alignment.
func (pp *ParagraphProperties) SetTextAlignment(align textformat.TextAlignment) {
	pp.alignment = align
}

// SetLineHeight changes the line height. 0 derives line heights from fonts.
func (pp *ParagraphProperties) SetLineHeight(h float64) {
	pp.lineHeight = h
}

// SetTextWrapping changes the wrapping mode.
func (pp *ParagraphProperties) SetTextWrapping(w textformat.TextWrapping) {
	pp.wrapping = w
}

// WithMarker returns a copy of pp carrying a list marker.
func (pp *ParagraphProperties) WithMarker(marker textformat.TextMarkerProperties) *ParagraphProperties {
	c := *pp
	c.tabs = slices.Clone(pp.tabs)
	c.marker = marker
	return &c
}

// WithIndents returns a copy of pp using different indents.
func (pp *ParagraphProperties) WithIndents(indent, paragraphIndent float64) *ParagraphProperties {
	c := *pp
	c.tabs = slices.Clone(pp.tabs)
	c.indent, c.paragraphIndent = indent, paragraphIndent
	return &c
}

// Equal compares two paragraph records structurally. Default run properties
// are compared by identity unless both are generic records.
func (pp *ParagraphProperties) Equal(other *ParagraphProperties) bool {
	if pp == other {
		return true
	}
	if pp == nil || other == nil {
		return false
	}
	if !equalRun(pp.defaultRun, other.defaultRun) {
		return false
	}
	return pp.flowDirection == other.flowDirection &&
		pp.alignment == other.alignment &&
		pp.firstLine == other.firstLine &&
		pp.collapsible == other.collapsible &&
		pp.wrapping == other.wrapping &&
		pp.lineHeight == other.lineHeight &&
		pp.indent == other.indent &&
		pp.paragraphIndent == other.paragraphIndent &&
		pp.incrementalTab == other.incrementalTab &&
		slices.Equal(pp.tabs, other.tabs) &&
		pp.marker == other.marker
}

// Hash returns a hash over the formatting identity of pp.
func (pp *ParagraphProperties) Hash() uint64 {
	h := newHasher()
	h.writeInts(int64(pp.flowDirection), int64(pp.alignment), int64(pp.wrapping))
	h.writeInts(boolToInt(pp.firstLine), boolToInt(pp.collapsible))
	h.writeFloats(pp.lineHeight, pp.indent, pp.paragraphIndent, pp.incrementalTab)
	for _, tab := range pp.tabs {
		h.writeFloats(tab.Location)
	}
	if rp, ok := pp.defaultRun.(*RunProperties); ok {
		h.writeInts(int64(rp.Hash()))
	}
	return h.Sum64()
}

func equalRun(a, b textformat.TextRunProperties) bool {
	ra, oka := a.(*RunProperties)
	rb, okb := b.(*RunProperties)
	if oka && okb {
		return ra.Equal(rb)
	}
	return a == b
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
