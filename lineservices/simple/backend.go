/*
Package simple is a line-breaking backend which measures text with the Go
fonts and breaks lines at the opportunities of the Unicode line breaking
algorithm.

For every line it enumerates all candidate breaks which fit into the line's
width, in increasing order, and weights each with a penalty: the squared
relative slack of the line plus the penalty of the break opportunity. The
longest fitting candidate is the best fit.

The backend serves as a reference implementation of the lineservices
contract. It does not shape text: every character is measured by the
advance of its glyph, kerning and ligatures are not applied.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/
package simple

import (
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textformat/lineservices"
)

// tracer writes to trace with key 'textformat'
func tracer() tracing.Trace {
	return tracing.Select("textformat")
}

// Options configure a backend.
type Options struct {
	MaxContexts      int // number of formatting contexts, default 4
	MaxLinePositions int // maximum number of positions a line may look at, default 1<<20
}

// Backend is the reference line-breaking backend.
//
// A Backend is safe for concurrent use; every formatting context, however,
// must be used by a single goroutine.
type Backend struct {
	opts  Options
	faces *faceCache

	mu          sync.Mutex
	outstanding int
	nextHandle  uintptr
	lines       map[lineservices.LineHandle]*line
	penalties   map[lineservices.PenaltyHandle]*line
	records     map[lineservices.BreakRecord]record
	sessions    map[lineservices.Session]struct{}
}

var _ lineservices.Backend = (*Backend)(nil)

// line is the backend allocation of a candidate line. It is referenced by a
// line handle and by a penalty handle.
type line struct {
	info     lineservices.LineInfo
	extents  lineservices.LineExtents
	penalty  lineservices.PenaltyHandle
	relieved bool // penalty resource detached from the line
}

// record is the break state of a line, handed on to the next line.
type record struct {
	limit  int
	forced bool
}

// New creates a backend.
func New(opts Options) *Backend {
	if opts.MaxContexts <= 0 {
		opts.MaxContexts = 4
	}
	if opts.MaxLinePositions <= 0 {
		opts.MaxLinePositions = 1 << 20
	}
	return &Backend{
		opts:      opts,
		faces:     newFaceCache(),
		lines:     make(map[lineservices.LineHandle]*line),
		penalties: make(map[lineservices.PenaltyHandle]*line),
		records:   make(map[lineservices.BreakRecord]record),
		sessions:  make(map[lineservices.Session]struct{}),
	}
}

func (b *Backend) handle() uintptr {
	b.nextHandle++
	return b.nextHandle
}

// AcquireContext hands out a formatting context bound to host. It fails if
// all contexts are in use.
func (b *Backend) AcquireContext(host lineservices.Host, hint int) (lineservices.Context, lineservices.Code) {
	if host == nil {
		return nil, lineservices.ErrInvalidArgs
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.outstanding >= b.opts.MaxContexts {
		tracer().Errorf("backend: all %d formatting contexts in use", b.opts.MaxContexts)
		return nil, lineservices.ErrNoContext
	}
	b.outstanding++
	if hint <= 0 {
		hint = 128
	}
	return &context{backend: b, host: host, hint: hint}, lineservices.OK
}

// Outstanding returns the number of contexts currently acquired.
func (b *Backend) Outstanding() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.outstanding
}

func (b *Backend) release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.outstanding--
}

// CreateSession creates a break session. Lines of a paragraph are broken
// within one session.
func (b *Backend) CreateSession() (lineservices.Session, lineservices.Code) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := lineservices.Session(b.handle())
	b.sessions[s] = struct{}{}
	return s, lineservices.OK
}

// DestroySession ends a break session.
func (b *Backend) DestroySession(s lineservices.Session) lineservices.Code {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.sessions[s]; !ok {
		return lineservices.ErrInvalidSession
	}
	delete(b.sessions, s)
	return lineservices.OK
}

func (b *Backend) hasSession(s lineservices.Session) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.sessions[s]
	return ok
}

func (b *Backend) hasRecord(r lineservices.BreakRecord) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.records[r]
	return ok
}

// newLine registers a candidate line and returns its handles.
func (b *Backend) newLine(info lineservices.LineInfo, extents lineservices.LineExtents) (lineservices.LineHandle, lineservices.PenaltyHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	l := &line{info: info, extents: extents}
	h := lineservices.LineHandle(b.handle())
	l.penalty = lineservices.PenaltyHandle(b.handle())
	b.lines[h] = l
	b.penalties[l.penalty] = l
	return h, l.penalty
}

// LineExtents measures a line. Trailing white space extending beyond
// widths.StartTrailing is not counted.
func (b *Backend) LineExtents(h lineservices.LineHandle, widths lineservices.LineWidths) (lineservices.LineExtents, lineservices.Code) {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, ok := b.lines[h]
	if !ok {
		return lineservices.LineExtents{}, lineservices.ErrInvalidHandle
	}
	if widths.Limit < 0 || widths.StartTrailing < widths.StartMainText {
		return lineservices.LineExtents{}, lineservices.ErrInvalidArgs
	}
	ext := l.extents
	if trailing := widths.StartTrailing - widths.StartMainText; ext.WidthIncludingTrailingWhitespace > trailing {
		ext.WidthIncludingTrailingWhitespace = max(ext.Width, trailing)
	}
	return ext, lineservices.OK
}

// AcquireBreakRecord saves the break state of a line.
func (b *Backend) AcquireBreakRecord(h lineservices.LineHandle) (lineservices.BreakRecord, lineservices.Code) {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, ok := b.lines[h]
	if !ok {
		return 0, lineservices.ErrInvalidHandle
	}
	r := lineservices.BreakRecord(b.handle())
	b.records[r] = record{limit: l.info.Limit, forced: l.info.Forced}
	return r, lineservices.OK
}

// DisposeBreakRecord releases a break record.
func (b *Backend) DisposeBreakRecord(r lineservices.BreakRecord) lineservices.Code {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.records[r]; !ok {
		return lineservices.ErrInvalidHandle
	}
	delete(b.records, r)
	return lineservices.OK
}

// DisposeLine releases a line, together with its penalty resource unless the
// resource has been relieved from the line.
func (b *Backend) DisposeLine(h lineservices.LineHandle, force bool) lineservices.Code {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, ok := b.lines[h]
	if !ok {
		return lineservices.ErrInvalidHandle
	}
	delete(b.lines, h)
	if !l.relieved {
		delete(b.penalties, l.penalty)
	}
	if force {
		tracer().Debugf("backend: line %d disposed forcibly", h)
	}
	return lineservices.OK
}

// RelievePenaltyResource detaches the penalty resource of a line from the
// line's lifetime.
func (b *Backend) RelievePenaltyResource(h lineservices.LineHandle) lineservices.Code {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, ok := b.lines[h]
	if !ok {
		return lineservices.ErrInvalidHandle
	}
	if l.relieved {
		return lineservices.ErrAlreadyRelieved
	}
	l.relieved = true
	return lineservices.OK
}

// ReleasePenaltyResource releases a penalty resource which has been relieved
// from its line.
func (b *Backend) ReleasePenaltyResource(p lineservices.PenaltyHandle) lineservices.Code {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, ok := b.penalties[p]
	if !ok {
		return lineservices.ErrInvalidHandle
	}
	if !l.relieved {
		return lineservices.ErrInvalidArgs
	}
	delete(b.penalties, p)
	return lineservices.OK
}

// Penalty returns the penalty of a candidate line.
func (b *Backend) Penalty(p lineservices.PenaltyHandle) (int, lineservices.Code) {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, ok := b.penalties[p]
	if !ok {
		return 0, lineservices.ErrInvalidHandle
	}
	return l.info.Penalty, lineservices.OK
}

// Resources reports the number of live lines, penalty resources and break
// records.
func (b *Backend) Resources() (lines, penalties, records int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines), len(b.penalties), len(b.records)
}
