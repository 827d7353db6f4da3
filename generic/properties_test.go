package generic

import (
	"image/color"
	"math"
	"testing"

	"github.com/npillmayer/textformat"
	"golang.org/x/text/language"
)

func TestRunPropertiesIdentity(t *testing.T) {
	a := Plain("Go", 12)
	b := Plain("Go", 12)
	b.SetPixelsPerDip(2.5)
	if !a.Equal(b) {
		t.Errorf("expected pixels-per-dip not to take part in equality")
	}
	if a.Hash() != b.Hash() {
		t.Errorf("expected equal records to have equal hashes")
	}
	c := a.WithBackground(color.RGBA{R: 0xff, A: 0xff})
	if a.Equal(c) {
		t.Errorf("expected records with different brushes to differ")
	}
	d := a.WithEmSize(14)
	if a.Equal(d) || a.Hash() == d.Hash() {
		t.Errorf("expected records with different em-sizes to differ")
	}
	if a.FontRenderingEmSize() != 12 {
		t.Errorf("expected copy-on-write, original em-size changed to %g", a.FontRenderingEmSize())
	}
}

func TestRunPropertiesNilBrushes(t *testing.T) {
	tf := textformat.NewTypeface("Go")
	a := NewRunProperties(tf, 10, 10, 0, nil, nil, textformat.AlignBaseline, language.German, nil, 1)
	b := NewRunProperties(tf, 10, 10, 0, nil, nil, textformat.AlignBaseline, language.German, nil, 1)
	if !a.Equal(b) || a.Hash() != b.Hash() {
		t.Errorf("expected records without brushes to be equal")
	}
	if a.Equal(Plain("Go", 10)) {
		t.Errorf("expected records with different cultures to differ")
	}
}

func TestRunPropertiesSignedZero(t *testing.T) {
	tf := textformat.NewTypeface("Go")
	a := NewRunProperties(tf, 10, 0, 0, nil, nil, textformat.AlignBaseline, language.German, nil, 1)
	b := NewRunProperties(tf, 10, math.Copysign(0, -1), 0, nil, nil, textformat.AlignBaseline, language.German, nil, 1)
	if !a.Equal(b) {
		t.Fatalf("expected hinting em-sizes 0 and -0 to be equal")
	}
	if a.Hash() != b.Hash() {
		t.Errorf("expected equal records to have equal hashes, have %x and %x", a.Hash(), b.Hash())
	}
}

func TestParagraphMutators(t *testing.T) {
	run := Plain("Go", 12)
	p := SimpleParagraph(run, textformat.Wrap)
	q := SimpleParagraph(Plain("Go", 12), textformat.Wrap)
	if !p.Equal(q) || p.Hash() != q.Hash() {
		t.Fatalf("expected structurally equal paragraphs")
	}
	if p.DefaultIncrementalTab() != 48 {
		t.Errorf("expected default incremental tab of 4 em, is %g", p.DefaultIncrementalTab())
	}
	p.SetTextAlignment(textformat.AlignCenterText)
	p.SetFlowDirection(textformat.RightToLeft)
	p.SetLineHeight(20)
	p.SetTextWrapping(textformat.NoWrap)
	if p.TextAlignment() != textformat.AlignCenterText || p.FlowDirection() != textformat.RightToLeft ||
		p.LineHeight() != 20 || p.TextWrapping() != textformat.NoWrap {
		t.Errorf("setters did not take effect")
	}
	if p.Equal(q) {
		t.Errorf("expected paragraphs to differ after mutation")
	}
}

func TestParagraphTabsAreCopied(t *testing.T) {
	tabs := []textformat.TabStop{{Location: 30}}
	p := NewParagraphProperties(textformat.LeftToRight, textformat.AlignLeft, true, false,
		Plain("Go", 10), textformat.Wrap, 0, 0, 0, 20, tabs, nil)
	tabs[0].Location = 99
	if p.Tabs()[0].Location != 30 {
		t.Errorf("expected tab stops to be copied on construction")
	}
}

type foreignProperties struct {
	*RunProperties
}

func TestFromProperties(t *testing.T) {
	a := Plain("Go", 12)
	if FromProperties(a) != a {
		t.Errorf("expected generic record to be returned unchanged")
	}
	b := FromProperties(foreignProperties{a.WithEmSize(9)})
	if !b.Equal(a.WithEmSize(9)) {
		t.Errorf("expected converted record to equal its source")
	}
}
