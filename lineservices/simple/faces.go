package simple

import (
	"fmt"
	"strings"
	"sync"

	"github.com/npillmayer/textformat"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FixedFamily selects a fixed-width bitmap face of 7×13 pixels at em-size 13,
// scaled linearly to other em-sizes. Every character has the same advance.
const FixedFamily = "Fixed"

// basicEmSize is the em-size at which the bitmap face is not scaled.
const basicEmSize = 13.0

// metrics measures glyphs of a face at a given em-size. Faces are not safe
// for concurrent use, so measuring is serialized.
type metrics struct {
	mu              sync.Mutex
	face            font.Face
	scale           float64
	ascent, descent float64
}

func newMetrics(face font.Face, scale float64) *metrics {
	m := face.Metrics()
	return &metrics{
		face:    face,
		scale:   scale,
		ascent:  fromFixed(m.Ascent) * scale,
		descent: fromFixed(m.Descent) * scale,
	}
}

// advance returns the advance of rune r. Runes missing from the face are
// measured as the replacement character.
func (m *metrics) advance(r rune) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.face.GlyphAdvance(r)
	if !ok {
		if a, ok = m.face.GlyphAdvance('\uFFFD'); !ok {
			a, _ = m.face.GlyphAdvance('?')
		}
	}
	return fromFixed(a) * m.scale
}

func fromFixed(x fixed.Int26_6) float64 {
	return float64(x) / 64
}

type faceKey struct {
	file string
	em   float64
}

// faceCache resolves typefaces to the Go fonts. Faces are created on demand
// and shared between contexts.
type faceCache struct {
	mu    sync.Mutex
	fonts map[string]*opentype.Font
	faces map[faceKey]*metrics
	fixed map[float64]*metrics
}

func newFaceCache() *faceCache {
	return &faceCache{
		fonts: make(map[string]*opentype.Font),
		faces: make(map[faceKey]*metrics),
		fixed: make(map[float64]*metrics),
	}
}

var goFonts = map[string][]byte{
	"regular":    goregular.TTF,
	"bold":       gobold.TTF,
	"italic":     goitalic.TTF,
	"bolditalic": gobolditalic.TTF,
	"mono":       gomono.TTF,
	"monobold":   gomonobold.TTF,
}

// fontFile selects one of the Go fonts for a typeface. Families containing
// “mono” select the monospaced fonts, every other family is proportional.
func fontFile(tf textformat.Typeface) string {
	bold := tf.Weight >= textformat.WeightSemiBold
	italic := tf.Style != textformat.StyleNormal
	if strings.Contains(strings.ToLower(tf.Family), "mono") {
		if bold {
			return "monobold"
		}
		return "mono"
	}
	switch {
	case bold && italic:
		return "bolditalic"
	case bold:
		return "bold"
	case italic:
		return "italic"
	}
	return "regular"
}

func (fc *faceCache) lookup(tf textformat.Typeface, em float64) (*metrics, error) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if tf.Family == FixedFamily {
		m, ok := fc.fixed[em]
		if !ok {
			m = newMetrics(basicfont.Face7x13, em/basicEmSize)
			fc.fixed[em] = m
		}
		return m, nil
	}
	key := faceKey{file: fontFile(tf), em: em}
	if m, ok := fc.faces[key]; ok {
		return m, nil
	}
	f, ok := fc.fonts[key.file]
	if !ok {
		var err error
		if f, err = opentype.Parse(goFonts[key.file]); err != nil {
			return nil, fmt.Errorf("parsing Go font %s: %w", key.file, err)
		}
		fc.fonts[key.file] = f
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    em,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("creating face %v at %g: %w", tf, em, err)
	}
	m := newMetrics(face, 1.0)
	fc.faces[key] = m
	tracer().Debugf("face %s @ %g: ascent %.2f, descent %.2f", key.file, em, m.ascent, m.descent)
	return m, nil
}
