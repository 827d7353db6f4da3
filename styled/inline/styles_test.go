package inline

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textformat"
	"github.com/npillmayer/textformat/generic"
)

func TestStyleString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textformat")
	defer teardown()
	//
	s := ItalicsStyle
	if styleString(s) != "i" {
		t.Errorf("expected italics to be 'i', is %q", styleString(s))
	}
	s = s.Add(MarkedStyle)
	if s.String() != "i+mark" {
		t.Errorf("expected combined style to be 'i+mark', is %q", s.String())
	}
	if s.Minus(ItalicsStyle) != MarkedStyle {
		t.Errorf("expected italics to be removed, have %v", s.Minus(ItalicsStyle))
	}
	if !s.Equals(ItalicsStyle|MarkedStyle) || s.Equals(MarkedStyle) {
		t.Errorf("unexpected result of Equals for %v", s)
	}
	if StyleFromHTMLName("strong") != StrongStyle || StyleFromHTMLName("div") != PlainStyle {
		t.Errorf("unexpected mapping of HTML element names to styles")
	}
}

func TestStyleRunProperties(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textformat")
	defer teardown()
	//
	base := generic.Plain("Go", 10)
	if PlainStyle.RunProperties(base) != base {
		t.Errorf("expected plain style to keep the base properties")
	}
	props := BoldStyle.Add(EmStyle).Add(SmallStyle).RunProperties(base)
	tf := props.Typeface()
	if tf.Weight != textformat.WeightBold || tf.Style != textformat.StyleItalic {
		t.Errorf("expected bold italic typeface, have %v", tf)
	}
	if em := props.FontRenderingEmSize(); em < 7.99 || em > 8.01 {
		t.Errorf("expected small text to be set at 8, is %g", em)
	}
	if props.BackgroundBrush() != nil {
		t.Errorf("expected no background for unmarked text")
	}
	if MarkedStyle.RunProperties(base).BackgroundBrush() == nil {
		t.Errorf("expected marked text to have a background")
	}
	if base.Typeface().Weight != textformat.WeightNormal {
		t.Errorf("expected base properties to remain unchanged")
	}
}
