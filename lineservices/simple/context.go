package simple

import (
	"math"
	"slices"
	"unicode"

	"github.com/npillmayer/textformat"
	"github.com/npillmayer/textformat/compact"
	"github.com/npillmayer/textformat/lexical"
	"github.com/npillmayer/textformat/lineservices"
	"github.com/npillmayer/textformat/runcache"
)

// Penalties of candidate lines which do not fit.
const (
	forcedPenalty   = 1000
	overflowPenalty = 1000
)

// Characters standing in for non-text positions of a line.
const (
	objectReplacement  = '\uFFFC'
	wordJoiner         = '\u2060'
	lineSeparator      = '\n'
	paragraphSeparator = '\u2029'
)

// context is a formatting context of Backend. It is not safe for concurrent use.
type context struct {
	backend  *Backend
	host     lineservices.Host
	hint     int
	tabs     lineservices.TabState
	cbErr    error
	released bool
}

var _ lineservices.Context = (*context)(nil)

// SetTabs configures tab stops. Explicit stops have to be in increasing order.
func (c *context) SetTabs(ts lineservices.TabState) lineservices.Code {
	if c.released {
		return lineservices.ErrReleased
	}
	for i := 1; i < len(ts.Tabs); i++ {
		if ts.Tabs[i].Location <= ts.Tabs[i-1].Location {
			return lineservices.ErrInvalidArgs
		}
	}
	c.tabs = lineservices.TabState{
		Tabs:         slices.Clone(ts.Tabs),
		Incremental:  ts.Incremental,
		ExcludeBelow: ts.ExcludeBelow,
	}
	return lineservices.OK
}

// CallbackErr is part of interface lineservices.Context.
func (c *context) CallbackErr() error {
	return c.cbErr
}

// Release returns c to its backend. Releasing twice is a no-op.
func (c *context) Release() {
	if c.released {
		return
	}
	c.released = true
	c.backend.release()
}

func (c *context) callbackFailed(op string, err error) ([]lineservices.BreakInfo, int, lineservices.Code) {
	tracer().Errorf("backend: host callback %s failed: %v", op, err)
	c.cbErr = err
	return nil, 0, lineservices.ErrCallback
}

// CreateBreaks enumerates the candidate breaks of the line starting at start.
func (c *context) CreateBreaks(start int, previous lineservices.BreakRecord, session lineservices.Session,
	restriction int) ([]lineservices.BreakInfo, int, lineservices.Code) {
	//
	if c.released {
		return nil, 0, lineservices.ErrReleased
	}
	if session == 0 || !c.backend.hasSession(session) {
		return nil, 0, lineservices.ErrInvalidSession
	}
	if previous != 0 && !c.backend.hasRecord(previous) {
		return nil, 0, lineservices.ErrInvalidHandle
	}
	if start < 0 {
		return nil, 0, lineservices.ErrInvalidArgs
	}
	c.cbErr = nil
	para := c.host.Paragraph()
	if para.DefaultRun == nil {
		return nil, 0, lineservices.ErrInvalidArgs
	}
	var mk markerExtents
	if para.FirstLine && para.MarkerLength > 0 {
		var code lineservices.Code
		if mk, code = c.measureMarker(para); code != lineservices.OK {
			return nil, 0, code
		}
	}
	lt := newLineText(c.hint)
	avail := para.WrapWidth - para.TextIndent
	lim, chunkLim := start, -1
	var chunk lexical.Chunk
	for {
		if lim-start >= c.backend.opts.MaxLinePositions {
			tracer().Errorf("backend: line at %d exceeds %d positions", start, c.backend.opts.MaxLinePositions)
			return nil, 0, lineservices.ErrTooLong
		}
		run, err := c.host.FetchRun(lim)
		if err != nil {
			return c.callbackFailed("FetchRun", err)
		}
		if code := c.measure(lt, run, para, lim); code != lineservices.OK {
			return nil, 0, code
		}
		lim += run.Length
		if lt.newline {
			break
		}
		if para.Wrapping == textformat.NoWrap || lt.solidWidth() <= avail {
			continue
		}
		if chunk, err = c.host.LexicalChunk(start, lim); err != nil {
			return c.callbackFailed("LexicalChunk", err)
		}
		chunkLim = lim
		if para.Wrapping == textformat.Wrap || hasOpportunity(chunk, lt.len()) {
			break
		}
	}
	if chunkLim != lim {
		var err error
		if chunk, err = c.host.LexicalChunk(start, lim); err != nil {
			return c.callbackFailed("LexicalChunk", err)
		}
	}
	cands := candidates(lt, chunk, para, avail)
	if restriction > 0 {
		restricted := slices.DeleteFunc(slices.Clone(cands), func(cd candidate) bool {
			return cd.penalty > restriction
		})
		if len(restricted) > 0 {
			cands = restricted
		}
	}
	breaks := make([]lineservices.BreakInfo, len(cands))
	for i, cd := range cands {
		info := lineservices.LineInfo{
			Start:          start,
			Limit:          start + cd.limit,
			DependentLimit: lim,
			Forced:         cd.forced,
			EndsInNewline:  lt.newline && cd.limit == lt.len(),
			Penalty:        cd.penalty,
		}
		ascent, descent := lt.extentsBefore(cd.limit)
		extents := lineservices.LineExtents{
			Width:                            lt.solid[cd.limit],
			WidthIncludingTrailingWhitespace: lt.x[cd.limit],
			Ascent:                           ascent,
			Descent:                          descent,
			MarkerWidth:                      mk.width,
			MarkerAscent:                     mk.ascent,
			MarkerDescent:                    mk.descent,
		}
		h, ph := c.backend.newLine(info, extents)
		breaks[i] = lineservices.BreakInfo{Info: info, Line: h, Penalty: ph}
		tracer().Debugf("backend: candidate [%d,%d) width %.2f, penalty %d", info.Start, info.Limit,
			extents.Width, info.Penalty)
	}
	tracer().Infof("backend: line at %d has %d candidate breaks", start, len(breaks))
	return breaks, len(breaks) - 1, lineservices.OK
}

// hasOpportunity reports whether a chunk of n positions may be broken within.
// The end of a chunk does not count, as it has been cut arbitrarily.
func hasOpportunity(chunk lexical.Chunk, n int) bool {
	bks := chunk.Breaks()
	if bks == nil {
		return false
	}
	for _, p := range bks.Positions() {
		if p > 0 && p < n {
			return true
		}
	}
	return false
}

type candidate struct {
	limit   int // line-relative
	penalty int
	forced  bool
}

// candidates enumerates the breaks of a line in increasing order. Every
// candidate fits into the available width, except for a single overflowing
// or forced candidate if nothing fits.
func candidates(lt *lineText, chunk lexical.Chunk, para lineservices.ParagraphParams,
	avail float64) []candidate {
	//
	n := lt.len()
	bks := chunk.Breaks()
	var cands []candidate
	overflow := 0
	for p := 1; p <= n; p++ {
		newline := lt.newline && p == n
		var opp, mandatory bool
		var pen int
		if newline {
			opp, mandatory = true, true
		} else if bks != nil && p < n && p <= bks.Length() {
			opp, mandatory, pen = bks.IsBreakBefore(p), bks.IsMandatory(p), bks.Penalty(p)
		}
		if !opp || (para.Wrapping == textformat.NoWrap && !mandatory) {
			continue
		}
		w := lt.solid[p]
		if para.Wrapping != textformat.NoWrap && w > avail {
			overflow = p
			break
		}
		cd := candidate{limit: p}
		if !mandatory {
			cd.penalty = slackPenalty(avail-w, avail) + max(0, pen)
		}
		cands = append(cands, cd)
		if mandatory {
			break
		}
	}
	if len(cands) > 0 {
		return cands
	}
	if para.Wrapping == textformat.Wrap {
		return []candidate{{limit: forcedLimit(lt, avail), penalty: forcedPenalty, forced: true}}
	}
	if overflow == 0 {
		overflow = n
	}
	return []candidate{{limit: overflow, penalty: overflowPenalty}}
}

// forcedLimit finds the longest prefix of a line which fits into avail and
// may be split from the rest. The prefix has at least one character.
func forcedLimit(lt *lineText, avail float64) int {
	n := lt.len()
	q := 0
	for p := 1; p <= n && lt.solid[p] <= avail; p++ {
		if runcache.IsSafeSplit(lt.chars, p) {
			q = p
		}
	}
	if q > 0 {
		return q
	}
	q = 1
	for q < n && !runcache.IsSafeSplit(lt.chars, q) {
		q++
	}
	return q
}

// slackPenalty is the squared relative slack of a line, scaled to 100.
func slackPenalty(slack, avail float64) int {
	if avail <= 0 {
		return 0
	}
	r := slack / avail
	return int(math.Round(100 * r * r))
}

// --- Measuring -------------------------------------------------------------

type markerExtents struct {
	width, ascent, descent float64
}

// measureMarker measures the marker text of a paragraph's first line. Marker
// text hangs in the indent and is never subject to tabs.
func (c *context) measureMarker(para lineservices.ParagraphParams) (markerExtents, lineservices.Code) {
	var mk markerExtents
	for p := 0; p < para.MarkerLength; {
		run, err := c.host.FetchRun(p)
		if err != nil {
			_, _, code := c.callbackFailed("FetchRun", err)
			return mk, code
		}
		if !run.IsMarker || run.Kind != textformat.KindCharacters {
			break
		}
		if run.Length <= 0 || run.Props == nil {
			return mk, lineservices.ErrInvalidArgs
		}
		m, err := c.backend.faces.lookup(run.Props.Typeface(), run.Props.FontRenderingEmSize())
		if err != nil {
			tracer().Errorf("backend: %v", err)
			return mk, lineservices.ErrInvalidArgs
		}
		for _, r := range run.Chars[:min(run.Length, len(run.Chars))] {
			mk.width += m.advance(r)
		}
		mk.ascent = max(mk.ascent, m.ascent)
		mk.descent = max(mk.descent, m.descent)
		p += run.Length
	}
	return mk, lineservices.OK
}

// measure appends the positions of a run to a line.
func (c *context) measure(lt *lineText, run lineservices.Run, para lineservices.ParagraphParams, lsdcp int) lineservices.Code {
	if run.Length <= 0 {
		return lineservices.ErrInvalidArgs
	}
	switch run.Kind {
	case textformat.KindCharacters:
		if run.Props == nil || len(run.Chars) != run.Length {
			return lineservices.ErrInvalidArgs
		}
		em := run.Props.FontRenderingEmSize()
		m, err := c.backend.faces.lookup(run.Props.Typeface(), em)
		if err != nil {
			tracer().Errorf("backend: %v", err)
			return lineservices.ErrInvalidArgs
		}
		from := lt.len()
		advances := compact.New(em, run.Length)
		for i, r := range run.Chars {
			var w float64
			switch {
			case r == '\t' && lsdcp+i >= c.tabs.ExcludeBelow:
				w = c.nextTab(para, lt.width()) - lt.width()
			case unicode.Is(unicode.Cf, r):
			default:
				w = m.advance(r)
			}
			advances.Set(i, w)
			lt.push(r, advances.At(i), isWhite(r))
		}
		lt.extend(from, m.ascent, m.descent)
	case textformat.KindInlineObject:
		if run.Object == nil || run.Length != 1 {
			return lineservices.ErrInvalidArgs
		}
		lt.extend(lt.len(), run.Object.Baseline, run.Object.Height-run.Object.Baseline)
		lt.push(objectReplacement, run.Object.Width, false)
	case textformat.KindHidden:
		if run.Length != 1 {
			return lineservices.ErrInvalidArgs
		}
		lt.push(wordJoiner, 0, true)
	case textformat.KindEndOfLine, textformat.KindEndOfParagraph:
		if run.Length != 1 {
			return lineservices.ErrInvalidArgs
		}
		props := run.Props
		if props == nil {
			props = para.DefaultRun
		}
		m, err := c.backend.faces.lookup(props.Typeface(), props.FontRenderingEmSize())
		if err != nil {
			tracer().Errorf("backend: %v", err)
			return lineservices.ErrInvalidArgs
		}
		lt.extend(lt.len(), m.ascent, m.descent)
		sep := rune(lineSeparator)
		if run.Kind == textformat.KindEndOfParagraph {
			sep = paragraphSeparator
		}
		lt.push(sep, 0, true)
		lt.newline = true
	default:
		return lineservices.ErrInvalidArgs
	}
	return lineservices.OK
}

// nextTab returns the line-relative position of the tab stop following x.
// Tab stops are measured from the start of the line.
func (c *context) nextTab(para lineservices.ParagraphParams, x float64) float64 {
	pos := para.TextIndent + x
	for _, ts := range c.tabs.Tabs {
		if ts.Location > pos {
			return ts.Location - para.TextIndent
		}
	}
	inc := c.tabs.Incremental
	if inc <= 0 {
		inc = para.IncrementalTab
	}
	if inc <= 0 {
		inc = 4 * para.DefaultRun.FontRenderingEmSize()
	}
	return (math.Floor(pos/inc)+1)*inc - para.TextIndent
}

// isWhite reports whether r is white space which does not count at the end of
// a line. No-break spaces are not.
func isWhite(r rune) bool {
	return r != '\u00A0' && r != '\u202F' && unicode.IsSpace(r)
}

// --- Line text -------------------------------------------------------------

// lineText collects the measured positions of a line, relative to the line's
// start.
type lineText struct {
	chars   []rune
	x       []float64 // x[i] is the width of positions [0, i)
	solid   []float64 // solid[i] is x[i] without trailing white space
	extents []runExtent
	newline bool
}

type runExtent struct {
	from            int
	ascent, descent float64
}

func newLineText(hint int) *lineText {
	return &lineText{
		chars: make([]rune, 0, hint),
		x:     make([]float64, 1, hint+1),
		solid: make([]float64, 1, hint+1),
	}
}

func (lt *lineText) len() int {
	return len(lt.chars)
}

func (lt *lineText) width() float64 {
	return lt.x[len(lt.x)-1]
}

func (lt *lineText) solidWidth() float64 {
	return lt.solid[len(lt.solid)-1]
}

func (lt *lineText) push(r rune, w float64, white bool) {
	lt.chars = append(lt.chars, r)
	x := lt.width() + w
	s := lt.solidWidth()
	if !white {
		s = x
	}
	lt.x = append(lt.x, x)
	lt.solid = append(lt.solid, s)
}

func (lt *lineText) extend(from int, ascent, descent float64) {
	lt.extents = append(lt.extents, runExtent{from: from, ascent: ascent, descent: descent})
}

// extentsBefore returns the maximum ascent and descent of the runs starting
// before limit.
func (lt *lineText) extentsBefore(limit int) (ascent, descent float64) {
	for _, e := range lt.extents {
		if e.from < limit {
			ascent = max(ascent, e.ascent)
			descent = max(descent, e.descent)
		}
	}
	return
}
