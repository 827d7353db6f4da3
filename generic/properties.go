/*
Package generic provides plain value implementations of the run and
paragraph property contracts.

Property records are constructed once per distinct combination of
formatting values and may be shared freely. Equality and hashing are
structural. Pixels-per-dip is a per-call display setting, not part of a
record's identity.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/
package generic

import (
	"encoding/binary"
	"image/color"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/npillmayer/textformat"
	"golang.org/x/text/language"
)

// RunProperties is a generic implementation of textformat.TextRunProperties.
type RunProperties struct {
	typeface     textformat.Typeface
	emSize       float64
	hintingEm    float64
	decorations  textformat.TextDecorations
	foreground   color.Color
	background   color.Color
	baseline     textformat.BaselineAlignment
	culture      language.Tag
	substitution *textformat.NumberSubstitution
	pixelsPerDip float64
}

var _ textformat.TextRunProperties = (*RunProperties)(nil)

// NewRunProperties creates a run property record. Brushes and number
// substitution may be nil.
func NewRunProperties(
	typeface textformat.Typeface,
	emSize, hintingEmSize float64,
	decorations textformat.TextDecorations,
	foreground, background color.Color,
	baseline textformat.BaselineAlignment,
	culture language.Tag,
	substitution *textformat.NumberSubstitution,
	pixelsPerDip float64,
) *RunProperties {
	return &RunProperties{
		typeface:     typeface,
		emSize:       emSize,
		hintingEm:    hintingEmSize,
		decorations:  decorations,
		foreground:   foreground,
		background:   background,
		baseline:     baseline,
		culture:      culture,
		substitution: substitution,
		pixelsPerDip: pixelsPerDip,
	}
}

// Plain creates run properties for a typeface family and em-size, with black
// text in culture en-US and no decorations.
func Plain(family string, emSize float64) *RunProperties {
	return NewRunProperties(textformat.NewTypeface(family), emSize, emSize, 0,
		color.Black, nil, textformat.AlignBaseline, language.AmericanEnglish, nil, 1.0)
}

// FromProperties returns run properties with the values of props. If props
// already is a generic record, it is returned unchanged.
func FromProperties(props textformat.TextRunProperties) *RunProperties {
	if rp, ok := props.(*RunProperties); ok {
		return rp
	}
	return NewRunProperties(props.Typeface(), props.FontRenderingEmSize(), props.FontHintingEmSize(),
		props.TextDecorations(), props.ForegroundBrush(), props.BackgroundBrush(),
		props.BaselineAlignment(), props.Culture(), props.NumberSubstitution(), props.PixelsPerDip())
}

// WithTypeface returns a copy of rp using a different typeface.
func (rp *RunProperties) WithTypeface(tf textformat.Typeface) *RunProperties {
	c := *rp
	c.typeface = tf
	return &c
}

// WithEmSize returns a copy of rp using a different rendering and hinting em-size.
func (rp *RunProperties) WithEmSize(em float64) *RunProperties {
	c := *rp
	c.emSize, c.hintingEm = em, em
	return &c
}

// WithBackground returns a copy of rp using a different background brush.
func (rp *RunProperties) WithBackground(bg color.Color) *RunProperties {
	c := *rp
	c.background = bg
	return &c
}

func (rp *RunProperties) Typeface() textformat.Typeface { return rp.typeface }
func (rp *RunProperties) FontRenderingEmSize() float64 { return rp.emSize }
func (rp *RunProperties) FontHintingEmSize() float64 { return rp.hintingEm }
func (rp *RunProperties) TextDecorations() textformat.TextDecorations { return rp.decorations }
func (rp *RunProperties) ForegroundBrush() color.Color { return rp.foreground }
func (rp *RunProperties) BackgroundBrush() color.Color { return rp.background }
func (rp *RunProperties) BaselineAlignment() textformat.BaselineAlignment { return rp.baseline }
func (rp *RunProperties) Culture() language.Tag { return rp.culture }
func (rp *RunProperties) PixelsPerDip() float64 { return rp.pixelsPerDip }

// NumberSubstitution returns the digit substitution, which may be nil.
func (rp *RunProperties) NumberSubstitution() *textformat.NumberSubstitution {
	return rp.substitution
}

// SetPixelsPerDip is part of interface textformat.TextRunProperties.
func (rp *RunProperties) SetPixelsPerDip(ppd float64) {
	rp.pixelsPerDip = ppd
}

// Equal compares the formatting identity of two records.
func (rp *RunProperties) Equal(other *RunProperties) bool {
	if rp == other {
		return true
	}
	if rp == nil || other == nil {
		return false
	}
	return rp.typeface == other.typeface &&
		rp.emSize == other.emSize &&
		rp.hintingEm == other.hintingEm &&
		rp.decorations == other.decorations &&
		equalColor(rp.foreground, other.foreground) &&
		equalColor(rp.background, other.background) &&
		rp.baseline == other.baseline &&
		rp.culture == other.culture &&
		equalSubstitution(rp.substitution, other.substitution)
}

// Hash returns a hash over the formatting identity of rp. Records which are
// Equal have the same hash.
func (rp *RunProperties) Hash() uint64 {
	h := newHasher()
	h.writeString(rp.typeface.Family)
	h.writeInts(int64(rp.typeface.Style), int64(rp.typeface.Weight), int64(rp.typeface.Stretch))
	h.writeFloats(rp.emSize, rp.hintingEm)
	h.writeInts(int64(rp.decorations), int64(rp.baseline))
	h.writeColor(rp.foreground)
	h.writeColor(rp.background)
	h.writeString(rp.culture.String())
	if rp.substitution != nil {
		h.writeString(rp.substitution.Culture.String())
		h.writeInts(int64(rp.substitution.Method))
	}
	return h.Sum64()
}

func equalColor(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	r1, g1, b1, a1 := a.RGBA()
	r2, g2, b2, a2 := b.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}

func equalSubstitution(a, b *textformat.NumberSubstitution) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// --- Hashing ---------------------------------------------------------------

type hasher struct {
	*xxhash.Digest
	buf [8]byte
}

func newHasher() *hasher {
	return &hasher{Digest: xxhash.New()}
}

func (h *hasher) writeInts(values ...int64) {
	for _, v := range values {
		binary.LittleEndian.PutUint64(h.buf[:], uint64(v))
		h.Write(h.buf[:])
	}
}

func (h *hasher) writeFloats(values ...float64) {
	for _, v := range values {
		if v == 0 {
			v = 0 // -0 equals +0
		}
		binary.LittleEndian.PutUint64(h.buf[:], math.Float64bits(v))
		h.Write(h.buf[:])
	}
}

func (h *hasher) writeString(s string) {
	h.WriteString(s)
	h.Write([]byte{0})
}

func (h *hasher) writeColor(c color.Color) {
	if c == nil {
		h.writeInts(-1)
		return
	}
	r, g, b, a := c.RGBA()
	h.writeInts(int64(r)<<48 | int64(g)<<32 | int64(b)<<16 | int64(a))
}
