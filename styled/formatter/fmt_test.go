package formatter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textformat"
	"github.com/npillmayer/textformat/breakpoint"
	"github.com/npillmayer/textformat/generic"
	"github.com/npillmayer/textformat/lineservices/simple"
	"github.com/npillmayer/textformat/marker"
	"github.com/npillmayer/textformat/styled"
	"github.com/npillmayer/textformat/styled/inline"
	"github.com/npillmayer/uax/bidi"
	"github.com/npillmayer/uax/uax11"
)

func paragraph(align textformat.TextAlignment) *generic.ParagraphProperties {
	props := generic.SimpleParagraph(generic.Plain(simple.FixedFamily, 13), textformat.Wrap)
	props.SetTextAlignment(align)
	return props
}

func format(t *testing.T, text *styled.Text, props textformat.TextParagraphProperties, width int) []Line {
	backend := simple.New(simple.Options{})
	pc, err := breakpoint.NewParagraphCache(backend, text.Source(props), props, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer pc.Close()
	lines, err := Format(pc, &Config{LineWidth: width})
	if err != nil {
		t.Fatal(err)
	}
	if l, p, r := backend.Resources(); l+p+r != 0 {
		t.Errorf("expected formatting to release all lines, have %d/%d/%d", l, p, r)
	}
	return lines
}

func lengths(lines []Line) []int {
	var l []int
	for _, line := range lines {
		l = append(l, line.Length)
	}
	return l
}

func TestFormatLines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textformat")
	defer teardown()
	//
	text := styled.TextFromString("The quick brown fox jumps over the lazy dog")
	lines := format(t, text, paragraph(textformat.AlignLeft), 20)
	if diff := cmp.Diff([]int{20, 20, 4}, lengths(lines)); diff != "" {
		t.Errorf("unexpected line lengths (-want +got):\n%s", diff)
	}
	if lines[2].NewlineLength != 1 || lines[2].Position != 40 {
		t.Errorf("expected last line @ 40 to end the paragraph, is %v", lines[2])
	}
}

func TestFormatArguments(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textformat")
	defer teardown()
	//
	if _, err := Format(nil, &Config{}); err == nil {
		t.Errorf("expected Format to reject missing paragraph")
	}
	if err := Output(nil, nil, &bytes.Buffer{}, &Config{}, NewHTML()); err == nil {
		t.Errorf("expected Output to reject missing paragraph")
	}
}

func TestEditsInvalidateRuns(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textformat")
	defer teardown()
	//
	text := styled.TextFromString("The quick brown fox")
	props := paragraph(textformat.AlignLeft)
	backend := simple.New(simple.Options{})
	pc, err := breakpoint.NewParagraphCache(backend, text.Source(props), props, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer pc.Close()
	text.Subscribe(pc)
	config := &Config{LineWidth: 16}
	lines, err := Format(pc, config)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{16, 4}, lengths(lines)); diff != "" {
		t.Errorf("unexpected line lengths (-want +got):\n%s", diff)
	}
	text.Insert(4, "very ")
	if lines, err = Format(pc, config); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{15, 10}, lengths(lines)); diff != "" {
		t.Errorf("unexpected line lengths after edit (-want +got):\n%s", diff)
	}
}

func TestConsoleOutput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textformat")
	defer teardown()
	color.NoColor = true
	//
	text := styled.TextFromString("The quick brown fox jumps over the lazy dog")
	text.Style(inline.BoldStyle, 4, 9)
	lines := format(t, text, paragraph(textformat.AlignRight), 20)
	para, err := styled.ParagraphFromText(text, 0, text.Len(), bidi.LeftToRight, nil)
	if err != nil {
		t.Fatal(err)
	}
	out := &bytes.Buffer{}
	console := NewConsoleFixedWidthFormat(&PlainCodes, nil)
	config := &Config{LineWidth: 20, Context: uax11.LatinContext}
	if err = Output(para, lines, out, config, console); err != nil {
		t.Fatal(err)
	}
	want := []string{
		" The quick brown fox ",
		" jumps over the lazy ",
		strings.Repeat(" ", 17) + "dog",
		"",
	}
	if diff := cmp.Diff(want, strings.Split(out.String(), "\n")); diff != "" {
		t.Errorf("unexpected console output (-want +got):\n%s", diff)
	}
}

func TestHTMLOutput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textformat")
	defer teardown()
	//
	text := styled.TextFromString("Fish & chips for everybody")
	text.Style(inline.BoldStyle.Add(inline.ItalicsStyle), 0, 4)
	lines := format(t, text, paragraph(textformat.AlignLeft), 20)
	para, err := styled.ParagraphFromText(text, 0, text.Len(), bidi.LeftToRight, nil)
	if err != nil {
		t.Fatal(err)
	}
	out := &bytes.Buffer{}
	if err = NewHTML().Print(para, lines, out, &Config{LineWidth: 20, Context: uax11.LatinContext}); err != nil {
		t.Fatal(err)
	}
	t.Logf("HTML = %s", out.String())
	if !strings.Contains(out.String(), "<b><i>Fish</i></b> &amp; chips") {
		t.Errorf("expected styled and escaped HTML output, have %q", out.String())
	}
	if !strings.HasPrefix(out.String(), "<pre>\n") || !strings.HasSuffix(out.String(), "</pre>\n") {
		t.Errorf("expected output to be enclosed in a pre element")
	}
}

func TestMarkerIsOutput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textformat")
	defer teardown()
	color.NoColor = true
	//
	props := paragraph(textformat.AlignLeft)
	mp, err := marker.NewProperties(marker.Decimal, 20, 7, props)
	if err != nil {
		t.Fatal(err)
	}
	props = props.WithMarker(mp)
	text := styled.TextFromString("Hello")
	lines := format(t, text, props, 20)
	if len(lines) != 1 || lines[0].Marker != "7." {
		t.Fatalf("expected a single line with marker '7.', have %v", lines)
	}
	para, _ := styled.ParagraphFromText(text, 0, text.Len(), bidi.LeftToRight, nil)
	out := &bytes.Buffer{}
	Output(para, lines, out, &Config{LineWidth: 20}, NewConsoleFixedWidthFormat(&PlainCodes, nil))
	if out.String() != "7. Hello\n" {
		t.Errorf("expected marker to precede the text, have %q", out.String())
	}
}

func TestBidiRunsAreOutput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textformat")
	defer teardown()
	color.NoColor = true
	//
	const hebrew = "שלום"
	text := styled.TextFromString("abc " + hebrew + " def")
	lines := format(t, text, paragraph(textformat.AlignLeft), 40)
	config := &Config{LineWidth: 40, Context: uax11.LatinContext}
	para, err := styled.ParagraphFromText(text, 0, text.Len(), bidi.LeftToRight, nil)
	if err != nil {
		t.Fatal(err)
	}
	out := &bytes.Buffer{}
	if err = Output(para, lines, out, config, NewConsoleFixedWidthFormat(&PlainCodes, nil)); err != nil {
		t.Fatal(err)
	}
	if out.String() != "abc "+hebrew+" def\n" {
		t.Errorf("expected runs to be output in logical order, have %q", out.String())
	}
	para, _ = styled.ParagraphFromText(text, 0, text.Len(), bidi.LeftToRight, nil)
	out.Reset()
	if err = NewHTML().Print(para, lines, out, config); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `<span dir="rtl">`+hebrew) {
		t.Errorf("expected right-to-left run to be marked, have %q", out.String())
	}
}
