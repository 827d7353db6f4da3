package breakpoint

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textformat"
	"github.com/npillmayer/textformat/generic"
	"github.com/npillmayer/textformat/lineservices"
	"github.com/npillmayer/textformat/lineservices/simple"
	"github.com/npillmayer/textformat/marker"
)

// testSource delivers a sequence of runs, followed by an end of paragraph.
type testSource struct {
	runs []textformat.TextRun
}

func newTestSource(runs ...textformat.TextRun) *testSource {
	return &testSource{runs: runs}
}

func (src *testSource) GetTextRun(index int) (textformat.TextRun, error) {
	pos := 0
	for _, run := range src.runs {
		if index < pos+run.Length() {
			if tc, ok := run.(*textformat.TextCharacters); ok {
				return textformat.NewTextCharacters(tc.Characters()[index-pos:], tc.Properties()), nil
			}
			return run, nil
		}
		pos += run.Length()
	}
	return textformat.NewTextEndOfParagraph(1, nil), nil
}

func (src *testSource) GetPrecedingText(int) (textformat.TextSpan, error) {
	return textformat.TextSpan{}, nil
}

func (src *testSource) GetTextEffectCharacterIndexFromTextSourceCharacterIndex(int) (int, error) {
	return 0, textformat.ErrUnsupported
}

func (src *testSource) PixelsPerDip() float64 { return 1 }

// Every character of the fixed family is about 7 units wide at em-size 13.
func fixed() *generic.RunProperties {
	return generic.Plain(simple.FixedFamily, 13)
}

func text(s string) *textformat.TextCharacters {
	return textformat.NewTextCharacters([]rune(s), fixed())
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= 0.05
}

func disposeAll(bps []*Breakpoint) {
	for _, bp := range bps {
		bp.Dispose()
	}
}

// ---------------------------------------------------------------------------

func TestFormatParagraph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textformat")
	defer teardown()
	//
	const paragraph = "Hello world, this is a test paragraph that wraps."
	backend := simple.New(simple.Options{})
	props := generic.SimpleParagraph(fixed(), textformat.Wrap)
	pc, err := NewParagraphCache(backend, newTestSource(text(paragraph)), props, 0, 100)
	if err != nil {
		t.Fatal(err)
	}
	pos, lines := 0, 0
	var previous *LineBreak
	for pos < len(paragraph) && lines < 20 {
		bps, best, err := CreateMultiple(pc, pos, 100, previous, 0)
		if err != nil {
			t.Fatalf("line %d: %v", lines, err)
		}
		if len(bps) == 0 {
			t.Fatalf("line %d: no breakpoints", lines)
		}
		last := 0
		for _, bp := range bps {
			l, _ := bp.Length()
			if l <= last {
				t.Errorf("line %d: expected breakpoints to increase, got length %d after %d", lines, l, last)
			}
			last = l
		}
		m, _ := bps[best].Metrics()
		if m.Width > 100 {
			t.Errorf("line %d: best fit is too wide: %v", lines, m)
		}
		if truncated, _ := bps[best].IsTruncated(); truncated {
			t.Errorf("line %d: expected no word to be broken", lines)
		}
		if previous != nil {
			previous.Dispose()
		}
		if previous, err = bps[best].TextLineBreak(); err != nil {
			t.Fatal(err)
		}
		t.Logf("line %d @ %d: %v", lines, pos, m)
		pos += m.Length
		lines++
		disposeAll(bps)
	}
	previous.Dispose()
	if pos != len(paragraph)+1 {
		t.Errorf("expected lines to cover %d characters and the end of paragraph, covered %d", len(paragraph), pos)
	}
	if lines < 2 {
		t.Errorf("expected paragraph to wrap, got %d line(s)", lines)
	}
	if err := pc.Close(); err != nil {
		t.Error(err)
	}
	if l, p, r := backend.Resources(); l+p+r != 0 {
		t.Errorf("expected all backend resources to be released, have %d/%d/%d", l, p, r)
	}
}

// countingBackend counts the lines disposed.
type countingBackend struct {
	*simple.Backend
	disposals int
}

func (cb *countingBackend) DisposeLine(h lineservices.LineHandle, force bool) lineservices.Code {
	cb.disposals++
	return cb.Backend.DisposeLine(h, force)
}

func TestDisposeIsIdempotent(t *testing.T) {
	backend := &countingBackend{Backend: simple.New(simple.Options{})}
	props := generic.SimpleParagraph(fixed(), textformat.Wrap)
	pc, _ := NewParagraphCache(backend, newTestSource(text("Hello")), props, 0, 100)
	defer pc.Close()
	bps, _, err := CreateMultiple(pc, 0, 100, nil, 0)
	if err != nil || len(bps) != 1 {
		t.Fatalf("expected a single breakpoint, got %d (%v)", len(bps), err)
	}
	bp := bps[0]
	bp.Dispose()
	bp.Dispose()
	if backend.disposals != 1 {
		t.Errorf("expected line to be disposed once, was disposed %d times", backend.disposals)
	}
	if _, err := bp.Metrics(); !errors.Is(err, textformat.ErrDisposed) {
		t.Errorf("expected disposed breakpoint to refuse metrics, got %v", err)
	}
	if _, err := bp.Length(); !errors.Is(err, textformat.ErrDisposed) {
		t.Errorf("expected disposed breakpoint to refuse length, got %v", err)
	}
	if _, err := bp.TextLineBreak(); !errors.Is(err, textformat.ErrDisposed) {
		t.Errorf("expected disposed breakpoint to refuse line break, got %v", err)
	}
	if _, err := bp.TextPenaltyResource(); !errors.Is(err, textformat.ErrDisposed) {
		t.Errorf("expected disposed breakpoint to refuse penalty resource, got %v", err)
	}
}

func TestTextPenaltyResource(t *testing.T) {
	backend := simple.New(simple.Options{})
	props := generic.SimpleParagraph(fixed(), textformat.Wrap)
	pc, _ := NewParagraphCache(backend, newTestSource(text("Hello")), props, 0, 100)
	defer pc.Close()
	bps, _, _ := CreateMultiple(pc, 0, 100, nil, 0)
	ph, err := bps[0].TextPenaltyResource()
	if err != nil {
		t.Fatal(err)
	}
	_, err = bps[0].TextPenaltyResource()
	var berr *textformat.BackendError
	if !errors.As(err, &berr) || berr.Code != int(lineservices.ErrAlreadyRelieved) {
		t.Errorf("expected backend to reject second hand-over, got %v", err)
	}
	disposeAll(bps)
	if _, code := backend.Penalty(ph); code != lineservices.OK {
		t.Errorf("expected penalty resource to outlive its breakpoint, got %v", code)
	}
	if code := backend.ReleasePenaltyResource(ph); code != lineservices.OK {
		t.Errorf("release failed: %v", code)
	}
}

func TestMarkerIndentAndAlignment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textformat")
	defer teardown()
	//
	base := generic.SimpleParagraph(fixed(), textformat.Wrap)
	mp, err := marker.NewProperties(marker.Decimal, 20, 1, base)
	if err != nil {
		t.Fatal(err)
	}
	props := base.WithMarker(mp).WithIndents(10, 0)
	props.SetTextAlignment(textformat.AlignRight)
	props.SetLineHeight(26)
	backend := simple.New(simple.Options{})
	pc, _ := NewParagraphCache(backend, newTestSource(text("ab")), props, 0, 200)
	defer pc.Close()
	bps, _, err := CreateMultiple(pc, 0, 200, nil, 0)
	if err != nil || len(bps) != 1 {
		t.Fatalf("expected a single breakpoint, got %d (%v)", len(bps), err)
	}
	defer disposeAll(bps)
	m, _ := bps[0].Metrics()
	if m.Length != 3 || m.NewlineLength != 1 {
		t.Errorf("expected line of 3 characters ending in newline, got %v", m)
	}
	if m.MarkerHeight != 13 || m.MarkerBaseline != 11 {
		t.Errorf("expected marker extents of the fixed font, got %v", m)
	}
	if m.TextHeight != 13 || m.Height != 26 || m.Baseline != 22 {
		t.Errorf("expected explicit line height to scale the baseline, got %+v", m)
	}
	if !near(m.Start, 10+190-m.Width) {
		t.Errorf("expected right aligned line to start at %.2f, got %.2f", 200-m.Width, m.Start)
	}
}

func TestHiddenTextIsMapped(t *testing.T) {
	backend := simple.New(simple.Options{})
	props := generic.SimpleParagraph(fixed(), textformat.Wrap)
	source := newTestSource(text("ab"), textformat.NewTextHidden(3), text("cd"))
	pc, _ := NewParagraphCache(backend, source, props, 0, 200)
	defer pc.Close()
	bps, best, err := CreateMultiple(pc, 0, 200, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer disposeAll(bps)
	m, _ := bps[best].Metrics()
	if m.Length != 8 {
		t.Errorf("expected line to cover 2+3+2 characters and the end of paragraph, got %d", m.Length)
	}
	if !near(m.Width, 28) {
		t.Errorf("expected hidden text not to count for the width, got %.2f", m.Width)
	}
}

// --- Scripted backend ------------------------------------------------------

// scriptedBackend returns a fixed set of breaks.
type scriptedBackend struct {
	breaks    []lineservices.BreakInfo
	code      lineservices.Code
	cbErr     error
	noContext bool
	released  int
	disposed  int
}

func (sb *scriptedBackend) AcquireContext(lineservices.Host, int) (lineservices.Context, lineservices.Code) {
	if sb.noContext {
		return nil, lineservices.ErrNoContext
	}
	return scriptedContext{sb}, lineservices.OK
}

func (sb *scriptedBackend) CreateSession() (lineservices.Session, lineservices.Code) { return 1, lineservices.OK }
func (sb *scriptedBackend) DestroySession(lineservices.Session) lineservices.Code   { return lineservices.OK }

func (sb *scriptedBackend) LineExtents(lineservices.LineHandle, lineservices.LineWidths) (lineservices.LineExtents, lineservices.Code) {
	return lineservices.LineExtents{Width: 10, WidthIncludingTrailingWhitespace: 10, Ascent: 8, Descent: 2}, lineservices.OK
}

func (sb *scriptedBackend) AcquireBreakRecord(lineservices.LineHandle) (lineservices.BreakRecord, lineservices.Code) {
	return 1, lineservices.OK
}

func (sb *scriptedBackend) DisposeBreakRecord(lineservices.BreakRecord) lineservices.Code {
	return lineservices.OK
}

func (sb *scriptedBackend) DisposeLine(lineservices.LineHandle, bool) lineservices.Code {
	sb.disposed++
	return lineservices.OK
}

func (sb *scriptedBackend) RelievePenaltyResource(lineservices.LineHandle) lineservices.Code {
	return lineservices.OK
}

func (sb *scriptedBackend) ReleasePenaltyResource(lineservices.PenaltyHandle) lineservices.Code {
	return lineservices.OK
}

func (sb *scriptedBackend) Penalty(lineservices.PenaltyHandle) (int, lineservices.Code) {
	return 0, lineservices.OK
}

type scriptedContext struct {
	sb *scriptedBackend
}

func (sc scriptedContext) SetTabs(lineservices.TabState) lineservices.Code { return lineservices.OK }
func (sc scriptedContext) CallbackErr() error                              { return sc.sb.cbErr }
func (sc scriptedContext) Release()                                        { sc.sb.released++ }

func (sc scriptedContext) CreateBreaks(int, lineservices.BreakRecord, lineservices.Session, int) ([]lineservices.BreakInfo, int, lineservices.Code) {
	if sc.sb.code != lineservices.OK {
		return nil, 0, sc.sb.code
	}
	return sc.sb.breaks, len(sc.sb.breaks) - 1, lineservices.OK
}

func scriptedParagraph(t *testing.T, sb *scriptedBackend) *ParagraphCache {
	t.Helper()
	props := generic.SimpleParagraph(fixed(), textformat.Wrap)
	pc, err := NewParagraphCache(sb, newTestSource(text("Hello world")), props, 0, 100)
	if err != nil {
		t.Fatal(err)
	}
	return pc
}

func TestTruncationFlag(t *testing.T) {
	sb := &scriptedBackend{breaks: []lineservices.BreakInfo{
		{Info: lineservices.LineInfo{Limit: 3, Forced: true}, Line: 1, Penalty: 2},
		{Info: lineservices.LineInfo{Limit: 5}, Line: 3, Penalty: 4},
	}}
	pc := scriptedParagraph(t, sb)
	bps, best, err := CreateMultiple(pc, 0, 100, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(bps) != 2 || best != 1 {
		t.Fatalf("expected 2 breakpoints with best fit #1, got %d and #%d", len(bps), best)
	}
	if truncated, _ := bps[0].IsTruncated(); !truncated {
		t.Errorf("expected forced break to be truncated")
	}
	if truncated, _ := bps[1].IsTruncated(); truncated {
		t.Errorf("expected regular break not to be truncated")
	}
	if l, _ := bps[0].Length(); l != 3 {
		t.Errorf("expected length 3, got %d", l)
	}
	if sb.released != 1 {
		t.Errorf("expected context to be released once, was released %d times", sb.released)
	}
	disposeAll(bps)
	if sb.disposed != 2 {
		t.Errorf("expected 2 lines to be disposed, got %d", sb.disposed)
	}
}

func TestCallbackErrorTakesPriority(t *testing.T) {
	errSource := errors.New("source failed")
	sb := &scriptedBackend{code: lineservices.ErrCallback, cbErr: errSource}
	pc := scriptedParagraph(t, sb)
	if _, _, err := CreateMultiple(pc, 0, 100, nil, 0); err != errSource {
		t.Errorf("expected error of callback, got %v", err)
	}
	if sb.released != 1 {
		t.Errorf("expected context to be released on error, was released %d times", sb.released)
	}
}

func TestBackendErrorCarriesCode(t *testing.T) {
	sb := &scriptedBackend{code: lineservices.ErrTooLong}
	pc := scriptedParagraph(t, sb)
	_, _, err := CreateMultiple(pc, 0, 100, nil, 0)
	var berr *textformat.BackendError
	if !errors.As(err, &berr) || berr.Code != int(lineservices.ErrTooLong) {
		t.Errorf("expected backend error with code %d, got %v", lineservices.ErrTooLong, err)
	}
	if sb.released != 1 {
		t.Errorf("expected context to be released on error, was released %d times", sb.released)
	}
	sb.noContext = true
	if _, _, err = CreateMultiple(pc, 0, 100, nil, 0); !errors.As(err, &berr) || berr.Code != int(lineservices.ErrNoContext) {
		t.Errorf("expected missing context to be reported, got %v", err)
	}
}

func TestArguments(t *testing.T) {
	backend := simple.New(simple.Options{})
	props := generic.SimpleParagraph(fixed(), textformat.Wrap)
	if _, err := NewParagraphCache(backend, nil, props, 0, 100); !errors.Is(err, textformat.ErrIllegalArguments) {
		t.Errorf("expected missing source to be rejected, got %v", err)
	}
	pc, _ := NewParagraphCache(backend, newTestSource(text("x")), props, 5, 100)
	if _, _, err := CreateMultiple(pc, 4, 100, nil, 0); !errors.Is(err, textformat.ErrIllegalArguments) {
		t.Errorf("expected index before paragraph to be rejected, got %v", err)
	}
	pc.Close()
	if _, _, err := CreateMultiple(pc, 5, 100, nil, 0); !errors.Is(err, textformat.ErrDisposed) {
		t.Errorf("expected closed paragraph to be rejected, got %v", err)
	}
}
