package textformat

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/text/language"
)

func TestArgumentErrorMatchesSentinel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textformat")
	defer teardown()
	//
	var err error = &ArgumentError{Param: "index", Reason: "outside of text"}
	if !errors.Is(err, ErrIllegalArguments) {
		t.Errorf("expected argument error to match ErrIllegalArguments")
	}
	if errors.Is(err, ErrDisposed) {
		t.Errorf("expected argument error not to match ErrDisposed")
	}
	if err.Error() != "invalid argument index: outside of text" {
		t.Errorf("unexpected error message '%s'", err)
	}
	err = &BackendError{Op: "CreateLine", Code: -3, Name: "out of memory"}
	if err.Error() != "CreateLine failed: backend error -3 (out of memory)" {
		t.Errorf("unexpected error message '%s'", err)
	}
}

func TestSpecificCulture(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textformat")
	defer teardown()
	//
	if c, ok := SpecificCulture(language.English); !ok || c != language.AmericanEnglish {
		t.Errorf("expected en to resolve to en-US, have %v", c)
	}
	if c, ok := SpecificCulture(language.BritishEnglish); !ok || c != language.BritishEnglish {
		t.Errorf("expected en-GB to stay as it is, have %v", c)
	}
	if _, ok := SpecificCulture(language.Und); ok {
		t.Errorf("expected undefined culture not to resolve")
	}
}

func TestRunKinds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textformat")
	defer teardown()
	//
	chars := NewTextCharacters([]rune("Hello"), nil)
	if KindOf(chars) != KindCharacters || chars.Length() != 5 {
		t.Errorf("expected 5 characters, have %v/%d", KindOf(chars), chars.Length())
	}
	if KindOf(NewTextEndOfParagraph(1, nil)) != KindEndOfParagraph {
		t.Errorf("expected end of paragraph")
	}
	if KindOf(nil) != KindEndOfParagraph {
		t.Errorf("expected a missing run to end the paragraph")
	}
}
