/*
Package lineservices defines the contract between the breakpoint engine and
a line-breaking backend.

A backend enumerates candidate line breaks for a line of text, starting at
a given position. It pulls the text to format through a Host, a callback
surface the engine provides for each formatting call. Backends own the
resources they create: formatting contexts, lines, penalty resources, break
records and break sessions are all referenced by opaque handles, and every
handle must be handed back to the backend exactly once.

Positions in this package are internal positions of the backend. They differ
from character indices of a client's text wherever content occupies a
different number of positions than characters, e.g. for hidden text or for
list markers.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/
package lineservices

import (
	"fmt"

	"github.com/npillmayer/textformat"
	"github.com/npillmayer/textformat/lexical"
)

// Handles of backend resources. The zero value denotes “no resource”.
type (
	LineHandle    uintptr
	PenaltyHandle uintptr
	BreakRecord   uintptr
	Session       uintptr
)

// Code is a result code of a backend operation.
type Code int

// Result codes
const (
	OK                 Code = 0
	ErrCallback        Code = -1 // a host callback failed; see Context.CallbackErr
	ErrNoContext       Code = -2 // all formatting contexts are in use
	ErrInvalidHandle   Code = -3
	ErrInvalidSession  Code = -4
	ErrInvalidArgs     Code = -5
	ErrAlreadyRelieved Code = -6 // penalty resource has already been relieved from its line
	ErrReleased        Code = -7 // context has been released
	ErrTooLong         Code = -8 // line exceeds the backend's capacity
)

func (c Code) String() string {
	switch c {
	case OK:
		return "ok"
	case ErrCallback:
		return "callback failed"
	case ErrNoContext:
		return "no formatting context available"
	case ErrInvalidHandle:
		return "invalid handle"
	case ErrInvalidSession:
		return "invalid break session"
	case ErrInvalidArgs:
		return "invalid arguments"
	case ErrAlreadyRelieved:
		return "penalty resource already relieved"
	case ErrReleased:
		return "context already released"
	case ErrTooLong:
		return "line too long"
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// Err converts c into an error for operation op. OK yields nil.
func (c Code) Err(op string) error {
	if c == OK {
		return nil
	}
	return &textformat.BackendError{Op: op, Code: int(c), Name: c.String()}
}

// --- Host callbacks --------------------------------------------------------

// ParagraphParams are the formatting parameters of the line being broken.
//
// TextIndent is the distance of the start of the main text from the left
// edge of the paragraph, WrapWidth is the width available from the left
// edge. Marker positions [0, MarkerLength) are present on the first line of
// a paragraph with a list marker only; they hang in the indent.
type ParagraphParams struct {
	WrapWidth      float64
	TextIndent     float64
	Wrapping       textformat.TextWrapping
	FirstLine      bool
	MarkerLength   int
	LineHeight     float64
	DefaultRun     textformat.TextRunProperties
	FlowDirection  textformat.FlowDirection
	IncrementalTab float64
}

// Run is a run of content delivered to the backend, starting at the internal
// position it has been fetched for.
//
// Text runs occupy one position per character. Every other kind of run
// occupies exactly one position.
type Run struct {
	Kind     textformat.RunKind
	Chars    []rune // characters of a text run
	Length   int    // number of internal positions
	Props    textformat.TextRunProperties
	Object   *textformat.TextEmbeddedObject // for inline objects
	IsMarker bool
}

// Host is the callback surface a backend uses to retrieve the content of a
// paragraph. Errors returned by callbacks are captured by the backend's
// context and abort the current operation.
type Host interface {
	// Paragraph returns the parameters for the line being formatted.
	Paragraph() ParagraphParams
	// FetchRun returns the run at an internal position. Runs must be fetched
	// in order, without gaps.
	FetchRun(lsdcp int) (Run, error)
	// LexicalChunk returns the break analysis for internal positions
	// [lsdcpFirst, lsdcpLim). Break positions of the chunk are relative to
	// lsdcpFirst.
	LexicalChunk(lsdcpFirst, lsdcpLim int) (lexical.Chunk, error)
}

// --- Results ---------------------------------------------------------------

// TabState configures tab stops for a context. Tab characters at positions
// below ExcludeBelow are not treated as tabs.
type TabState struct {
	Tabs         []textformat.TabStop
	Incremental  float64
	ExcludeBelow int
}

// BreakInfo describes a candidate line break, as returned by CreateBreaks.
// Line and Penalty are handles of the same backend allocation.
type BreakInfo struct {
	Info    LineInfo
	Line    LineHandle
	Penalty PenaltyHandle
}

// LineInfo are the break properties of a candidate line.
type LineInfo struct {
	Start          int  // first position of the line's main text
	Limit          int  // first position after the line
	DependentLimit int  // first position after the content the line has looked at
	Forced         bool // break within a word, which did not fit on a line by itself
	EndsInNewline  bool // line ends with an end of line or end of paragraph
	Penalty        int
}

// LineWidths tells the backend how to measure a line. StartMainText is the
// offset of the main text, trailing white space starting at or beyond
// StartTrailing does not count, and Limit is the line's maximum width.
type LineWidths struct {
	StartMainText float64
	StartTrailing float64
	Limit         float64
}

// LineExtents are the measurements of a line.
type LineExtents struct {
	Width                            float64 // width of the main text, without trailing white space
	WidthIncludingTrailingWhitespace float64
	Ascent, Descent                  float64 // extents of the main text
	MarkerWidth                      float64
	MarkerAscent, MarkerDescent      float64
}

// --- Backend ---------------------------------------------------------------

// Context is a formatting context of a backend. Contexts are scarce: a
// context is acquired for a single call of CreateBreaks and has to be
// released on every path.
type Context interface {
	// SetTabs configures tab stops for subsequent calls.
	SetTabs(TabState) Code
	// CreateBreaks enumerates candidate breaks for the line starting at
	// internal position start, in increasing order of their limits. It
	// returns the candidates and the index of the best fit.
	CreateBreaks(start int, previous BreakRecord, session Session, restriction int) ([]BreakInfo, int, Code)
	// CallbackErr returns the error of a failed host callback, if any.
	CallbackErr() error
	// Release returns the context to its backend.
	Release()
}

// Backend is a line-breaking backend. Implementations must tolerate calls of
// DisposeLine from a goroutine other than the formatting one.
type Backend interface {
	AcquireContext(host Host, hint int) (Context, Code)
	CreateSession() (Session, Code)
	DestroySession(Session) Code
	LineExtents(line LineHandle, widths LineWidths) (LineExtents, Code)
	AcquireBreakRecord(line LineHandle) (BreakRecord, Code)
	DisposeBreakRecord(BreakRecord) Code
	// DisposeLine releases a line. If force is set, the backend must not
	// defer the release.
	DisposeLine(line LineHandle, force bool) Code
	// RelievePenaltyResource detaches a line's penalty resource from the
	// line's lifetime. The resource then has to be released separately.
	RelievePenaltyResource(line LineHandle) Code
	ReleasePenaltyResource(PenaltyHandle) Code
	// Penalty returns the penalty of a candidate line, for comparing breaks.
	Penalty(PenaltyHandle) (int, Code)
}
