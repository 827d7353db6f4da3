package styled

import (
	"strings"

	"github.com/npillmayer/uax/bidi"
)

// Paragraph represents a styled paragraph of text. It usually is a section of
// a styled text, but differs from a text insofar as it may be prepared for output.
// Outputting styled text in general includes identifying runs of bidirectional
// text, which is an operation defined on paragraphs (at least by Unicode Annex #9).
// Moreover, output of styled text includes breaking up paragraphs into lines.
// Linebreaking in turn interacts with the handling of runs of bidirectional text,
// which in a sense restricts line-breaking to paragraphs.
//
// After a styled paragraph has been created, its textual content is not to
// change any more. However, it is allowed to change styles for spans of a
// paragraph's text.
//
// Offset is the paragraph's start position in terms of character positions of
// the embedding text. It is held solely for a client's bookkeeping purposes.
type Paragraph struct {
	text   *Text
	Offset int
	cutoff int                  // characters cut off by wrapping
	levels *bidi.ResolvedLevels // levels from UAX#9 algorithm
}

// ParagraphFromText creates a styled paragraph from a section [from, to) of
// a styled text.
//
// Paragraphs may contain left-to-right text as well as right-to-left text.
// Clients should provide the overall Bidi context to apply, together with an
// optional function providing hints for Bidi runs. ParagraphFromText will apply
// the Unicode Bidi Algorithm to the paragraph's text.
func ParagraphFromText(text *Text, from, to int, embBidi bidi.Direction,
	m bidi.OutOfLineBidiMarkup) (*Paragraph, error) {
	//
	para := &Paragraph{Offset: from}
	if from == 0 && to == text.Len() {
		para.text = text
	} else {
		var err error
		if para.text, err = Section(text, from, to); err != nil {
			return nil, err
		}
	}
	if para.text.Len() > 0 {
		para.levels = bidi.ResolveParagraph(strings.NewReader(para.text.String()), m,
			bidi.DefaultDirection(embBidi), bidi.IgnoreParagraphSeparators(true))
	}
	return para, nil
}

// Style styles a run of text of a styled paragraph, given the start and end
// position relative to the paragraph's text.
func (para *Paragraph) Style(style Style, from, to int) *Paragraph {
	para.text.Style(style, from, to)
	return para
}

// Text returns the text of the paragraph which has not been wrapped yet.
func (para *Paragraph) Text() *Text {
	return para.text
}

// BidiLevels returns the resolved Bidi levels of the paragraph's text which has
// not been wrapped yet.
func (para *Paragraph) BidiLevels() *bidi.ResolvedLevels {
	return para.levels
}

// StyleRuns returns the style runs of the text not wrapped yet. Positions
// include para.Offset.
func (para *Paragraph) StyleRuns() []StyleChange {
	return para.text.styleRuns(para.Offset + para.cutoff)
}

// WrapAt splits off a front segment (usually a “line”) from a paragraph. pos is
// the end of the segment, relative to the start of the paragraph. Positions
// beyond the end of the paragraph are clipped.
//
// The returned ordering holds the Bidi runs of the segment, in terms of byte
// positions of the segment's text. It is nil for an empty segment.
func (para *Paragraph) WrapAt(pos int) (*Text, *bidi.Ordering, error) {
	pos -= para.cutoff
	if pos >= para.text.Len() {
		tracer().Debugf("Paragraph.WrapAt(EOT)")
		pos = para.text.Len()
	}
	line, err := Section(para.text, 0, pos)
	if err != nil {
		return nil, nil, err
	}
	rest, err := Section(para.text, pos, para.text.Len())
	if err != nil {
		return nil, nil, err
	}
	para.text = rest
	para.cutoff += pos
	if pos == 0 || para.levels == nil {
		return line, nil, nil
	}
	lineLev := para.levels
	if para.text.Len() == 0 {
		para.levels = nil
	} else {
		lineLev, para.levels = para.levels.Split(uint64(len(line.String())), true)
	}
	return line, lineLev.Reorder(), nil
}
