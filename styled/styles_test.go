package styled

import (
	"fmt"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textformat"
	"github.com/npillmayer/textformat/generic"
	"github.com/npillmayer/uax/bidi"
)

func TestBasicStyle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textformat")
	defer teardown()
	//
	text := TextFromString("Hello World")
	bold := teststyle("bold")
	text.Style(bold, 6, text.Len())
	if cnt := len(text.StyleRuns()); cnt != 2 {
		t.Errorf("expected formatted text to have 2 segments, has %d", cnt)
	}
	text.Style(bold, 0, 1)
	if cnt := len(text.StyleRuns()); cnt != 3 {
		t.Errorf("expected formatted text to have 3 segments, has %d", cnt)
	}
	text.Style(bold, 1, 6)
	if cnt := len(text.StyleRuns()); cnt != 1 {
		t.Errorf("expected equal styles to merge into 1 segment, have %d", cnt)
	}
}

func TestTextSimple(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textformat")
	defer teardown()
	//
	text := TextFromString("Hello World, how are you?")
	bold, italic := teststyle("bold"), teststyle("italic")
	text.Style(bold, 6, 11)
	text.Style(italic, 8, 16) // erase part of bold run
	want := []StyleChange{
		{nil, 0, 6},
		{bold, 6, 2},
		{italic, 8, 8},
		{nil, 16, 9},
	}
	if diff := cmp.Diff(want, text.StyleRuns()); diff != "" {
		t.Errorf("unexpected style runs (-want +got):\n%s", diff)
	}
	sty, start, err := text.StyleAt(10)
	if err != nil || !sty.Equals(italic) || start != 8 {
		t.Errorf("expected italic run starting at 8, have %v @ %d (%v)", sty, start, err)
	}
	if _, _, err = text.StyleAt(text.Len()); err != textformat.ErrIndexOutOfBounds {
		t.Errorf("expected StyleAt beyond text to fail, have %v", err)
	}
}

func TestEach(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textformat")
	defer teardown()
	//
	text := TextFromString("Hello World, how are you?")
	bold := teststyle("bold")
	text.Style(bold, 6, 16)
	//
	var contents []string
	text.EachStyleRun(func(content string, sty Style, pos int) error {
		t.Logf("%v @ %d: (%s)", sty, pos, content)
		contents = append(contents, content)
		return nil
	})
	want := []string{"Hello ", "World, how", " are you?"}
	if diff := cmp.Diff(want, contents); diff != "" {
		t.Errorf("unexpected style runs (-want +got):\n%s", diff)
	}
	n := 0
	for content, sty := range text.RangeStyleRun() {
		if n == 1 && (content != "World, how" || !sty.Equals(bold)) {
			t.Errorf("expected second run to be bold 'World, how', is %v '%s'", sty, content)
		}
		n++
	}
	if n != 3 {
		t.Errorf("expected to range over 3 style runs, did %d", n)
	}
}

func TestEditsAreNotified(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textformat")
	defer teardown()
	//
	text := TextFromString("Hello World")
	bold := teststyle("bold")
	text.Style(bold, 0, 5)
	rec := &recorder{}
	unsubscribe := text.Subscribe(rec)
	if err := text.Insert(5, "!!"); err != nil {
		t.Fatal(err)
	}
	if text.String() != "Hello!! World" {
		t.Errorf("unexpected text after insert: '%s'", text)
	}
	if sty, _, _ := text.StyleAt(6); sty == nil || !sty.Equals(bold) {
		t.Errorf("expected inserted text to continue bold style, is %v", sty)
	}
	if err := text.Delete(0, 2); err != nil {
		t.Fatal(err)
	}
	text.Style(bold, 6, 8)
	unsubscribe()
	text.Delete(0, 1)
	want := []change{{5, 2, 0}, {0, 0, 2}, {6, 2, 2}}
	if diff := cmp.Diff(want, rec.changes); diff != "" {
		t.Errorf("unexpected change notifications (-want +got):\n%s", diff)
	}
	if err := text.Insert(100, "x"); err != textformat.ErrIndexOutOfBounds {
		t.Errorf("expected insert beyond text to fail, have %v", err)
	}
	if text.Len() != len(text.Raw()) || text.Len() != totalLength(text) {
		t.Errorf("text and styles out of sync: %d characters, %d styled", text.Len(), totalLength(text))
	}
}

func TestSectionAndBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textformat")
	defer teardown()
	//
	bold := teststyle("bold")
	b := NewTextBuilder()
	b.Append("Hello ", nil)
	b.Append("World", bold)
	b.Append("!", nil)
	text := b.Text()
	if err := b.Append("more", nil); err != textformat.ErrTextCompleted {
		t.Errorf("expected builder to be completed, have %v", err)
	}
	section, err := Section(text, 4, 8)
	if err != nil {
		t.Fatal(err)
	}
	want := []StyleChange{{nil, 0, 2}, {bold, 2, 2}}
	if diff := cmp.Diff(want, section.StyleRuns()); diff != "" {
		t.Errorf("unexpected style runs of section (-want +got):\n%s", diff)
	}
	if section.String() != "o Wo" {
		t.Errorf("expected section to be 'o Wo', is '%s'", section)
	}
	if _, err = Section(text, 5, 100); err == nil {
		t.Errorf("expected section beyond text to fail")
	}
}

func TestSourceRuns(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textformat")
	defer teardown()
	//
	text := TextFromString("Hello\nWorld")
	large := emstyle(20)
	text.Style(large, 0, 3)
	para := generic.SimpleParagraph(generic.Plain("Go", 10), textformat.Wrap)
	src := text.Source(para)
	var dump []string
	for i := 0; i <= text.Len(); {
		run, err := src.GetTextRun(i)
		if err != nil {
			t.Fatal(err)
		}
		s := fmt.Sprintf("%v/%d", run.Kind(), run.Length())
		if cr, ok := run.(textformat.CharacterRun); ok {
			s = fmt.Sprintf("%s/%s/%.0f", s, string(cr.Characters()), run.Properties().FontRenderingEmSize())
		}
		dump = append(dump, s)
		i += run.Length()
	}
	want := []string{
		"characters/3/Hel/20",
		"characters/2/lo/10",
		"end-of-line/1",
		"characters/5/World/10",
		"end-of-paragraph/1",
	}
	if diff := cmp.Diff(want, dump); diff != "" {
		t.Errorf("unexpected runs (-want +got):\n%s", diff)
	}
	first, _ := src.GetTextRun(0)
	again, _ := src.GetTextRun(1)
	if first.Properties() != again.Properties() {
		t.Errorf("expected runs of equal style to share properties")
	}
	span, _ := src.GetPrecedingText(8)
	if span.Length != 2 || string(span.Chars) != "Wo" {
		t.Errorf("expected preceding text 'Wo', have %d '%s'", span.Length, string(span.Chars))
	}
	span, _ = src.GetPrecedingText(6)
	if span.Length != 1 || len(span.Chars) != 0 {
		t.Errorf("expected newline to be reported without characters, have %v", span)
	}
	if _, err := src.GetTextRun(text.Len() + 1); err == nil {
		t.Errorf("expected run beyond end of paragraph to fail")
	}
}

func TestParagraphWrapAt(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textformat")
	defer teardown()
	//
	text := TextFromString("The quick brown fox")
	text.Style(teststyle("bold"), 4, 9)
	para, err := ParagraphFromText(text, 0, text.Len(), bidi.LeftToRight, nil)
	if err != nil {
		t.Fatal(err)
	}
	line, ordering, err := para.WrapAt(10)
	if err != nil {
		t.Fatal(err)
	}
	if line.String() != "The quick " || ordering == nil {
		t.Errorf("expected first line 'The quick ' with bidi runs, have '%s' %v", line, ordering)
	}
	if runs := para.StyleRuns(); len(runs) != 1 || runs[0].Position != 10 {
		t.Errorf("expected remaining text to start @ 10, have %v", runs)
	}
	line, _, err = para.WrapAt(100)
	if err != nil || line.String() != "brown fox" {
		t.Errorf("expected second line 'brown fox', have '%s' (%v)", line, err)
	}
	if para.Text().Len() != 0 {
		t.Errorf("expected paragraph to be consumed, %d characters left", para.Text().Len())
	}
}

// --- Test Helpers ----------------------------------------------------------

type mystyle []string

func teststyle(sty string) mystyle {
	return mystyle{sty}
}

func (sty mystyle) Equals(other Style) bool {
	o, ok := other.(mystyle)
	return ok && slices.Equal(sty, o)
}

func (sty mystyle) String() string {
	return fmt.Sprintf("%v", []string(sty))
}

var _ Style = mystyle{}

// emstyle changes the em-size of runs.
type emstyle float64

func (sty emstyle) Equals(other Style) bool {
	o, ok := other.(emstyle)
	return ok && o == sty
}

func (sty emstyle) String() string {
	return fmt.Sprintf("em=%.1f", float64(sty))
}

func (sty emstyle) RunProperties(base textformat.TextRunProperties) textformat.TextRunProperties {
	return generic.Plain(base.Typeface().Family, float64(sty))
}

var _ PropertyStyle = emstyle(0)

type change struct {
	Offset, Added, Removed int
}

type recorder struct {
	changes []change
}

func (r *recorder) Change(offset, added, removed int) {
	r.changes = append(r.changes, change{offset, added, removed})
}

func totalLength(text *Text) int {
	n := 0
	for _, run := range text.StyleRuns() {
		n += run.Length
	}
	return n
}
