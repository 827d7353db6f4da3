package textformat

import (
	"fmt"

	"golang.org/x/text/language"
)

// TextSource is the client contract for delivering text to the formatting
// machinery. Character indices are absolute indices into the client's text.
type TextSource interface {
	// GetTextRun returns the run of text starting at index.
	GetTextRun(index int) (TextRun, error)

	// GetPrecedingText returns the text immediately preceding limit. The
	// returned span may be shorter than limit, but must end at limit.
	GetPrecedingText(limit int) (TextSpan, error)

	// GetTextEffectCharacterIndexFromTextSourceCharacterIndex maps a text
	// source character index to a text effect character index. Sources
	// without text effects return ErrUnsupported.
	GetTextEffectCharacterIndexFromTextSourceCharacterIndex(index int) (int, error)

	// PixelsPerDip is the current scale of device pixels per device independent unit.
	PixelsPerDip() float64
}

// TextSpan is a culture-specific range of characters, as returned by
// TextSource.GetPrecedingText. Length is the number of characters covered,
// which equals len(Chars) for text, and may be larger for non-text content
// (in which case Chars is empty and Culture is language.Und).
type TextSpan struct {
	Length  int
	Culture language.Tag
	Chars   []rune
}

// --- Runs ------------------------------------------------------------------

// RunKind classifies text runs for the line-breaking machinery.
type RunKind int8

// Kinds of text runs
const (
	KindCharacters RunKind = iota
	KindInlineObject
	KindHidden
	KindEndOfLine
	KindEndOfParagraph
)

func (k RunKind) String() string {
	switch k {
	case KindCharacters:
		return "characters"
	case KindInlineObject:
		return "inline-object"
	case KindHidden:
		return "hidden"
	case KindEndOfLine:
		return "end-of-line"
	case KindEndOfParagraph:
		return "end-of-paragraph"
	}
	return fmt.Sprintf("RunKind(%d)", int(k))
}

// TextRun is a run of uniformly formatted content delivered by a text source.
// Length is measured in characters of the text source.
type TextRun interface {
	Length() int
	Kind() RunKind
	Properties() TextRunProperties // may be nil for runs other than text and objects
}

// CharacterRun is a run which carries characters.
type CharacterRun interface {
	TextRun
	Characters() []rune
}

// KindOf classifies a run. A nil run is reported as end of paragraph.
func KindOf(run TextRun) RunKind {
	if run == nil {
		return KindEndOfParagraph
	}
	return run.Kind()
}

// IsShapeable reports whether a run carries characters which will be shaped
// into glyphs.
func IsShapeable(run TextRun) bool {
	if run == nil || run.Kind() != KindCharacters {
		return false
	}
	_, ok := run.(CharacterRun)
	return ok
}

// TextCharacters is a run of characters with uniform formatting.
type TextCharacters struct {
	chars []rune
	props TextRunProperties
}

// NewTextCharacters creates a run for a slice of characters. The slice is not copied.
func NewTextCharacters(chars []rune, props TextRunProperties) *TextCharacters {
	return &TextCharacters{chars: chars, props: props}
}

// Length is part of interface TextRun.
func (tc *TextCharacters) Length() int { return len(tc.chars) }

// Kind is part of interface TextRun.
func (tc *TextCharacters) Kind() RunKind { return KindCharacters }

// Properties is part of interface TextRun.
func (tc *TextCharacters) Properties() TextRunProperties { return tc.props }

// Characters is part of interface CharacterRun.
func (tc *TextCharacters) Characters() []rune { return tc.chars }

func (tc *TextCharacters) String() string {
	return fmt.Sprintf("chars[%d]'%s'", len(tc.chars), string(tc.chars))
}

// TextEmbeddedObject is an inline object of fixed extent, e.g. an image.
type TextEmbeddedObject struct {
	length   int
	props    TextRunProperties
	Width    float64
	Height   float64
	Baseline float64
	// Breaking reports whether lines may break around the object.
	Breaking bool
}

// NewTextEmbeddedObject creates an inline object run covering length characters.
func NewTextEmbeddedObject(length int, props TextRunProperties, width, height, baseline float64) *TextEmbeddedObject {
	return &TextEmbeddedObject{
		length:   length,
		props:    props,
		Width:    width,
		Height:   height,
		Baseline: baseline,
		Breaking: true,
	}
}

// Length is part of interface TextRun.
func (obj *TextEmbeddedObject) Length() int { return obj.length }

// Kind is part of interface TextRun.
func (obj *TextEmbeddedObject) Kind() RunKind { return KindInlineObject }

// Properties is part of interface TextRun.
func (obj *TextEmbeddedObject) Properties() TextRunProperties { return obj.props }

// TextHidden is a run of characters which do not take part in formatting.
type TextHidden struct {
	length int
}

// NewTextHidden creates a hidden run covering length characters.
func NewTextHidden(length int) *TextHidden {
	return &TextHidden{length: length}
}

// Length is part of interface TextRun.
func (h *TextHidden) Length() int { return h.length }

// Kind is part of interface TextRun.
func (h *TextHidden) Kind() RunKind { return KindHidden }

// Properties is part of interface TextRun.
func (h *TextHidden) Properties() TextRunProperties { return nil }

// TextEndOfLine is a forced line break within a paragraph. Length is the
// number of characters the break covers, e.g. 2 for CR LF.
type TextEndOfLine struct {
	length int
	props  TextRunProperties
}

// NewTextEndOfLine creates an end-of-line run. props may be nil.
func NewTextEndOfLine(length int, props TextRunProperties) *TextEndOfLine {
	return &TextEndOfLine{length: length, props: props}
}

// Length is part of interface TextRun.
func (eol *TextEndOfLine) Length() int { return eol.length }

// Kind is part of interface TextRun.
func (eol *TextEndOfLine) Kind() RunKind { return KindEndOfLine }

// Properties is part of interface TextRun.
func (eol *TextEndOfLine) Properties() TextRunProperties { return eol.props }

// TextEndOfParagraph terminates a paragraph.
type TextEndOfParagraph struct {
	TextEndOfLine
}

// NewTextEndOfParagraph creates an end-of-paragraph run. props may be nil.
func NewTextEndOfParagraph(length int, props TextRunProperties) *TextEndOfParagraph {
	return &TextEndOfParagraph{TextEndOfLine{length: length, props: props}}
}

// Kind is part of interface TextRun.
func (eop *TextEndOfParagraph) Kind() RunKind { return KindEndOfParagraph }
