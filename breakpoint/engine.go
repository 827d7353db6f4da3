package breakpoint

import (
	"math"

	"github.com/npillmayer/textformat"
	"github.com/npillmayer/textformat/lineservices"
)

// CreateMultiple returns the candidate breakpoints of the line starting at
// firstCharIndex of a paragraph, in increasing order of their lengths, and the
// index of the best fit among them.
//
// maxLineWidth is the width of the line; if it is 0, the paragraph's width is
// used. previous is the line break of the preceding line, or nil for the first
// line of a paragraph. A positive penaltyRestriction drops candidates with
// a higher penalty, unless no candidate would remain.
//
// If a callback into the client's text source fails, its error is returned.
// Errors of the backend are returned as *textformat.BackendError. No
// breakpoints are returned in either case.
func CreateMultiple(pc *ParagraphCache, firstCharIndex int, maxLineWidth float64, previous *LineBreak,
	penaltyRestriction int) ([]*Breakpoint, int, error) {
	//
	if pc == nil {
		return nil, 0, &textformat.ArgumentError{Param: "pc", Reason: "must not be nil"}
	}
	if pc.IsClosed() {
		return nil, 0, textformat.ErrDisposed
	}
	if firstCharIndex < pc.FirstCharIndex() {
		return nil, 0, &textformat.ArgumentError{Param: "firstCharIndex", Reason: "before start of paragraph"}
	}
	if maxLineWidth == 0 {
		maxLineWidth = pc.ParagraphWidth()
	}
	if maxLineWidth <= 0 || math.IsNaN(maxLineWidth) || maxLineWidth > textformat.RealInfiniteWidth {
		return nil, 0, &textformat.ArgumentError{Param: "maxLineWidth", Reason: "out of range"}
	}
	var record lineservices.BreakRecord
	if previous != nil {
		if previous.record == 0 {
			return nil, 0, textformat.ErrDisposed
		}
		record = previous.record
	}
	settings := pc.Settings()
	settings.UpdateForCurrentLine(maxLineWidth, previous, previous == nil && firstCharIndex == pc.FirstCharIndex())
	ft, err := newFullText(pc, settings, firstCharIndex)
	if err != nil {
		tracer().Errorf("cannot format line @ %d: %v", firstCharIndex, err)
		return nil, 0, err
	}
	ctx, code := pc.backend.AcquireContext(ft, textformat.TypicalCharactersPerLine)
	if code != lineservices.OK {
		tracer().Errorf("cannot format line @ %d: %v", firstCharIndex, code)
		return nil, 0, code.Err("AcquireContext")
	}
	breaks, bestFit, err := createBreaks(ctx, ft, record, pc.session, penaltyRestriction)
	if err != nil {
		tracer().Errorf("cannot format line @ %d: %v", firstCharIndex, err)
		return nil, 0, err
	}
	bps := make([]*Breakpoint, 0, len(breaks))
	for i, br := range breaks {
		bp, err := newBreakpoint(pc.backend, ft, br)
		if err != nil {
			for _, b := range bps {
				b.Dispose()
			}
			for _, rest := range breaks[i:] {
				pc.backend.DisposeLine(rest.Line, false)
			}
			return nil, 0, err
		}
		bps = append(bps, bp)
	}
	tracer().Infof("line @ %d: %d breakpoints, best fit #%d", firstCharIndex, len(bps), bestFit)
	return bps, bestFit, nil
}

// createBreaks runs the backend's break enumeration with a context, which is
// released on every path. Errors of the text source, raised during the
// enumeration, take priority over the backend's error code.
func createBreaks(ctx lineservices.Context, ft *fullText, record lineservices.BreakRecord,
	session lineservices.Session, restriction int) ([]lineservices.BreakInfo, int, error) {
	//
	defer ctx.Release()
	if code := ctx.SetTabs(ft.tabState()); code != lineservices.OK {
		return nil, 0, code.Err("SetTabs")
	}
	breaks, bestFit, code := ctx.CreateBreaks(ft.toInternal(ft.first), record, session, restriction)
	if code != lineservices.OK {
		if err := ctx.CallbackErr(); err != nil {
			return nil, 0, err
		}
		return nil, 0, code.Err("CreateBreaks")
	}
	return breaks, bestFit, nil
}
