package breakpoint

import (
	"fmt"
	"runtime"

	"github.com/npillmayer/textformat"
	"github.com/npillmayer/textformat/lineservices"
)

// Metrics are the measurements of a line ending at a breakpoint.
//
// Lengths count characters of the client's text. Length includes the
// characters of a line break ending the line, which are counted by
// NewlineLength as well. DependentLength is the number of characters after the
// line which have been looked at to find the break; the line has to be
// re-formatted if one of them changes.
type Metrics struct {
	Length          int
	DependentLength int
	NewlineLength   int
	// Start is the offset of the line's text from the left edge of the
	// paragraph, following from indent and text alignment.
	Start float64
	// Width excludes trailing white space. Hosts should use it verbatim for
	// positioning the line.
	Width                            float64
	WidthIncludingTrailingWhitespace float64
	// Height and Baseline account for an explicit line height of the
	// paragraph, TextHeight and TextBaseline are taken from the fonts.
	Height         float64
	TextHeight     float64
	Baseline       float64
	TextBaseline   float64
	MarkerBaseline float64
	MarkerHeight   float64
}

func (m Metrics) String() string {
	return fmt.Sprintf("[len=%d|%d|%d start=%.2f width=%.2f/%.2f height=%.2f baseline=%.2f]",
		m.Length, m.DependentLength, m.NewlineLength, m.Start, m.Width,
		m.WidthIncludingTrailingWhitespace, m.Height, m.Baseline)
}

// Breakpoint is a candidate break of a line. It owns a line of the backend,
// together with the line's penalty resource, until it is disposed.
type Breakpoint struct {
	backend   lineservices.Backend
	line      lineservices.LineHandle
	penalty   lineservices.PenaltyHandle
	metrics   Metrics
	truncated bool
}

// newBreakpoint measures a line of the backend and takes ownership of it.
func newBreakpoint(backend lineservices.Backend, ft *fullText, br lineservices.BreakInfo) (*Breakpoint, error) {
	settings := ft.settings
	indent, maxWidth := settings.TextIndent(), settings.MaxLineWidth()
	ext, code := backend.LineExtents(br.Line, lineservices.LineWidths{
		StartMainText: indent,
		StartTrailing: maxWidth,
		Limit:         maxWidth,
	})
	if code != lineservices.OK {
		return nil, code.Err("LineExtents")
	}
	bp := &Breakpoint{
		backend:   backend,
		line:      br.Line,
		penalty:   br.Penalty,
		truncated: br.Info.Forced,
	}
	bp.metrics = computeMetrics(ft, br.Info, ext)
	runtime.SetFinalizer(bp, (*Breakpoint).finalize)
	tracer().Debugf("breakpoint %v", bp.metrics)
	return bp, nil
}

func computeMetrics(ft *fullText, info lineservices.LineInfo, ext lineservices.LineExtents) Metrics {
	settings := ft.settings
	para := settings.Paragraph()
	limit := ft.toExternal(info.Limit)
	m := Metrics{
		Length:                           limit - ft.first,
		DependentLength:                  max(0, ft.toExternal(info.DependentLimit)-limit),
		Width:                            ext.Width,
		WidthIncludingTrailingWhitespace: ext.WidthIncludingTrailingWhitespace,
		TextHeight:                       ext.Ascent + ext.Descent,
		TextBaseline:                     ext.Ascent,
		MarkerBaseline:                   ext.MarkerAscent,
		MarkerHeight:                     ext.MarkerAscent + ext.MarkerDescent,
	}
	if info.EndsInNewline {
		m.NewlineLength = ft.newlineLength(info.Limit)
	}
	m.Height, m.Baseline = m.TextHeight, m.TextBaseline
	if lh := para.LineHeight(); lh > 0 {
		if m.TextHeight > 0 {
			m.Baseline = m.TextBaseline * lh / m.TextHeight
		}
		m.Height = lh
	}
	indent := settings.TextIndent()
	slack := max(0, settings.MaxLineWidth()-indent-m.Width)
	switch para.TextAlignment() {
	case textformat.AlignRight:
		m.Start = indent + slack
	case textformat.AlignCenterText:
		m.Start = indent + slack/2
	default:
		m.Start = indent
	}
	return m
}

// Metrics returns the measurements of the line ending at bp.
func (bp *Breakpoint) Metrics() (Metrics, error) {
	if bp.line == 0 {
		return Metrics{}, textformat.ErrDisposed
	}
	return bp.metrics, nil
}

// Length returns the number of characters of the line ending at bp.
func (bp *Breakpoint) Length() (int, error) {
	if bp.line == 0 {
		return 0, textformat.ErrDisposed
	}
	return bp.metrics.Length, nil
}

// Width returns the width of the line ending at bp, without trailing white space.
func (bp *Breakpoint) Width() (float64, error) {
	if bp.line == 0 {
		return 0, textformat.ErrDisposed
	}
	return bp.metrics.Width, nil
}

// IsTruncated reports whether the line has been broken within a word, because
// the word did not fit on a line by itself.
func (bp *Breakpoint) IsTruncated() (bool, error) {
	if bp.line == 0 {
		return false, textformat.ErrDisposed
	}
	return bp.truncated, nil
}

// IsDisposed reports whether bp has released its backend resources.
func (bp *Breakpoint) IsDisposed() bool {
	return bp.line == 0
}

// TextLineBreak returns the state of the break at bp, to be passed on to the
// formatting of the next line. Clients must dispose the line break.
func (bp *Breakpoint) TextLineBreak() (*LineBreak, error) {
	if bp.line == 0 {
		return nil, textformat.ErrDisposed
	}
	record, code := bp.backend.AcquireBreakRecord(bp.line)
	if code != lineservices.OK {
		return nil, code.Err("AcquireBreakRecord")
	}
	lb := &LineBreak{backend: bp.backend, record: record}
	runtime.SetFinalizer(lb, (*LineBreak).finalize)
	return lb, nil
}

// TextPenaltyResource hands the penalty resource of bp over to the caller, who
// becomes responsible for releasing it with the backend. bp will no longer
// release the resource on disposal.
func (bp *Breakpoint) TextPenaltyResource() (lineservices.PenaltyHandle, error) {
	if bp.line == 0 {
		return 0, textformat.ErrDisposed
	}
	if code := bp.backend.RelievePenaltyResource(bp.line); code != lineservices.OK {
		return 0, code.Err("RelievePenaltyResource")
	}
	return bp.penalty, nil
}

// Dispose releases the backend resources of bp. Disposing twice is a no-op.
func (bp *Breakpoint) Dispose() {
	bp.dispose(true)
	runtime.SetFinalizer(bp, nil)
}

func (bp *Breakpoint) finalize() {
	bp.dispose(false)
}

// dispose releases the backend line. Outside of an explicit Dispose, the
// backend is told to release the line immediately.
func (bp *Breakpoint) dispose(disposing bool) {
	if bp.line == 0 {
		return
	}
	if code := bp.backend.DisposeLine(bp.line, !disposing); code != lineservices.OK {
		tracer().Errorf("breakpoint: %v", code.Err("DisposeLine"))
	}
	bp.line = 0
	bp.penalty = 0
}

// --- Line breaks -----------------------------------------------------------

// LineBreak is the state of a break, which the formatting of the following
// line continues from.
type LineBreak struct {
	backend lineservices.Backend
	record  lineservices.BreakRecord
}

// IsDisposed reports whether lb has released its backend resources.
func (lb *LineBreak) IsDisposed() bool {
	return lb.record == 0
}

// Dispose releases the backend resources of lb. Disposing twice is a no-op.
func (lb *LineBreak) Dispose() {
	lb.dispose()
	runtime.SetFinalizer(lb, nil)
}

func (lb *LineBreak) finalize() {
	lb.dispose()
}

func (lb *LineBreak) dispose() {
	if lb.record == 0 {
		return
	}
	if code := lb.backend.DisposeBreakRecord(lb.record); code != lineservices.OK {
		tracer().Errorf("line break: %v", code.Err("DisposeBreakRecord"))
	}
	lb.record = 0
}
