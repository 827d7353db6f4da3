package styled

import (
	"github.com/npillmayer/textformat"
)

// TextBuilder is for building styled text from style runs.
type TextBuilder struct {
	chars  []rune
	styles []styleSpan
	done   bool
}

type styleSpan struct {
	style    Style
	from, to int
}

// NewTextBuilder creates a new and empty builder for styled.Text.
func NewTextBuilder() *TextBuilder {
	return &TextBuilder{}
}

// Text returns the styled text which this builder is holding up to now.
// It is illegal to continue adding fragments after `Text` has been called,
// but `Text` may be called multiple times.
func (b *TextBuilder) Text() *Text {
	b.done = true
	text := TextFromRunes(b.chars)
	if text.Len() == 0 {
		tracer().Debugf("text builder: text is void")
		return text
	}
	for _, s := range b.styles {
		if s.style != nil {
			text.runs.Set(s.from, s.to-s.from, s.style)
		}
	}
	return text
}

// Append appends a text fragment with a style at the end of the text to build.
func (b *TextBuilder) Append(fragment string, style Style) error {
	if b.done {
		return textformat.ErrTextCompleted
	}
	if fragment == "" {
		return nil
	}
	from := len(b.chars)
	b.chars = append(b.chars, []rune(fragment)...)
	b.styles = append(b.styles, styleSpan{style: style, from: from, to: len(b.chars)})
	return nil
}
