package styled

import (
	"iter"
	"slices"

	"github.com/npillmayer/textformat"
	"github.com/npillmayer/textformat/span"
)

// Style is a style applicable to runs of text.
type Style interface {
	Equals(other Style) bool
	String() string
}

func equalStyles(a, b Style) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equals(b)
}

// Subscriber is told about every edit of a styled text, including changes of
// style. Run caches of the line-breaking machinery are subscribers.
type Subscriber interface {
	Change(offset, added, removed int)
}

// --- Styled Text -----------------------------------------------------------

// Text is a styled text. Its text and its styles are automatically synchronized.
// Positions are character positions, i.e. indices of runes.
type Text struct {
	text        []rune
	runs        *span.Vector[Style]
	subscribers []Subscriber
}

func newRuns(length int) *span.Vector[Style] {
	runs := span.NewVector[Style](nil, equalStyles)
	runs.Append(length, nil)
	return runs
}

// TextFromString creates a stylable text from a string.
func TextFromString(s string) *Text {
	chars := []rune(s)
	return &Text{text: chars, runs: newRuns(len(chars))}
}

// TextFromRunes creates a stylable text from a copy of chars.
func TextFromRunes(chars []rune) *Text {
	return &Text{text: slices.Clone(chars), runs: newRuns(len(chars))}
}

// Len returns the number of characters of t.
func (t *Text) Len() int {
	return len(t.text)
}

// Raw returns a copy of the text without any styles.
func (t *Text) Raw() []rune {
	return slices.Clone(t.text)
}

func (t *Text) String() string {
	return string(t.text)
}

// StyleAt returns the style at position pos of the styled text, together with
// the position where the style run containing pos starts.
func (t *Text) StyleAt(pos int) (Style, int, error) {
	if pos < 0 || pos >= len(t.text) {
		return nil, pos, textformat.ErrIndexOutOfBounds
	}
	rider := span.NewRider(t.runs)
	rider.At(pos)
	return rider.CurrentValue(), rider.CurrentSpanStart(), nil
}

// EachStyleRun applies a function to each run of a single style.
// pos is the text position of this run of text within the overall
// styled text.
//
// This may be thought of as a “push”-interface to access style runs for a text.
// For a “pull”-interface please refer to RangeStyleRun.
func (t *Text) EachStyleRun(f func(content string, sty Style, pos int) error) error {
	pos := 0
	for _, s := range t.runs.Spans() {
		if err := f(string(t.text[pos:pos+s.Length]), s.Value, pos); err != nil {
			return err
		}
		pos += s.Length
	}
	return nil
}

// RangeStyleRun iterates over the runs of a single style.
func (t *Text) RangeStyleRun() iter.Seq2[string, Style] {
	return func(yield func(string, Style) bool) {
		pos := 0
		for _, s := range t.runs.Spans() {
			if !yield(string(t.text[pos:pos+s.Length]), s.Value) {
				return
			}
			pos += s.Length
		}
	}
}

// Style styles a run of text, given the start and end position. Positions
// beyond the end of the text are ignored.
func (t *Text) Style(sty Style, from, to int) *Text {
	from, to = max(0, from), min(to, len(t.text))
	if from >= to {
		return t
	}
	t.runs.Set(from, to-from, sty)
	t.notify(from, to-from, to-from)
	return t
}

// Insert inserts s at position pos. The new characters continue the style of
// the character before pos.
func (t *Text) Insert(pos int, s string) error {
	if pos < 0 || pos > len(t.text) {
		return textformat.ErrIndexOutOfBounds
	}
	chars := []rune(s)
	if len(chars) == 0 {
		return nil
	}
	var sty Style
	if pos > 0 {
		sty, _, _ = t.StyleAt(pos - 1)
	} else if len(t.text) > 0 {
		sty, _, _ = t.StyleAt(0)
	}
	t.text = slices.Insert(t.text, pos, chars...)
	t.runs.Insert(pos, len(chars), sty)
	t.notify(pos, len(chars), 0)
	return nil
}

// Delete removes the characters in [from, to).
func (t *Text) Delete(from, to int) error {
	if from < 0 || to > len(t.text) || from > to {
		return textformat.ErrIndexOutOfBounds
	}
	if from == to {
		return nil
	}
	t.text = slices.Delete(t.text, from, to)
	t.runs.Delete(from, to-from)
	t.notify(from, 0, to-from)
	return nil
}

// Subscribe registers s to be told about edits of t, before the editing
// operation returns. The returned function cancels the subscription.
func (t *Text) Subscribe(s Subscriber) (unsubscribe func()) {
	t.subscribers = append(t.subscribers, s)
	return func() {
		if i := slices.Index(t.subscribers, s); i >= 0 {
			t.subscribers = slices.Delete(t.subscribers, i, i+1)
		}
	}
}

func (t *Text) notify(offset, added, removed int) {
	tracer().Debugf("styled text: change @ %d (+%d/-%d)", offset, added, removed)
	for _, s := range t.subscribers {
		s.Change(offset, added, removed)
	}
}

// Section copies a piece of styled text, delimited by parameters from and to.
func Section(t *Text, from, to int) (*Text, error) {
	if from < 0 || to > len(t.text) || from > to {
		return nil, textformat.ErrIndexOutOfBounds
	}
	section := TextFromRunes(t.text[from:to])
	pos := 0
	for _, s := range t.runs.Spans() {
		l, r := max(pos, from), min(pos+s.Length, to)
		if l < r && s.Value != nil {
			section.runs.Set(l-from, r-l, s.Value)
		}
		pos += s.Length
	}
	return section, nil
}

// StyleChange holds a style and the text position where the style run starts.
type StyleChange struct {
	Style    Style
	Position int
	Length   int
}

// StyleRuns returns a slice of style runs for a styled text.
func (t *Text) StyleRuns() []StyleChange {
	return t.styleRuns(0)
}

func (t *Text) styleRuns(offset int) []StyleChange {
	spans := t.runs.Spans()
	changes := make([]StyleChange, len(spans))
	pos := 0
	for i, s := range spans {
		changes[i] = StyleChange{Style: s.Value, Position: pos + offset, Length: s.Length}
		pos += s.Length
	}
	return changes
}
