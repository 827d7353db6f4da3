package breakpoint

import (
	"math"

	"github.com/npillmayer/textformat"
	"github.com/npillmayer/textformat/lineservices"
	"github.com/npillmayer/textformat/runcache"
)

// ParagraphCache holds the state of a paragraph across the formatting of its
// lines: the text source, the paragraph's properties, the run cache and the
// backend's break session.
type ParagraphCache struct {
	backend  lineservices.Backend
	settings *FormatSettings
	runs     *runcache.Cache
	first    int
	width    float64
	session  lineservices.Session
}

// NewParagraphCache prepares a paragraph starting at firstCharIndex of source
// for formatting with backend. Width is the width of the paragraph, which is
// used for lines formatted without an explicit line width.
//
// Clients must call Close when done with the paragraph.
func NewParagraphCache(backend lineservices.Backend, source textformat.TextSource,
	props textformat.TextParagraphProperties, firstCharIndex int, width float64) (*ParagraphCache, error) {
	//
	switch {
	case backend == nil:
		return nil, &textformat.ArgumentError{Param: "backend", Reason: "must not be nil"}
	case source == nil:
		return nil, &textformat.ArgumentError{Param: "source", Reason: "must not be nil"}
	case props == nil || props.DefaultTextRunProperties() == nil:
		return nil, &textformat.ArgumentError{Param: "props", Reason: "paragraph properties with default run properties required"}
	case firstCharIndex < 0:
		return nil, &textformat.ArgumentError{Param: "firstCharIndex", Reason: "must not be negative"}
	case width < 0 || math.IsNaN(width) || width > textformat.RealInfiniteWidth:
		return nil, &textformat.ArgumentError{Param: "width", Reason: "out of range"}
	}
	session, code := backend.CreateSession()
	if code != lineservices.OK {
		return nil, code.Err("CreateSession")
	}
	return &ParagraphCache{
		backend:  backend,
		settings: newFormatSettings(source, props),
		runs:     runcache.New(),
		first:    firstCharIndex,
		width:    width,
		session:  session,
	}, nil
}

// FirstCharIndex returns the character index the paragraph starts at.
func (pc *ParagraphCache) FirstCharIndex() int {
	return pc.first
}

// ParagraphWidth returns the width of the paragraph.
func (pc *ParagraphCache) ParagraphWidth() float64 {
	return pc.width
}

// Settings returns the format settings of the paragraph.
func (pc *ParagraphCache) Settings() *FormatSettings {
	return pc.settings
}

// Runs returns the run cache of the paragraph.
func (pc *ParagraphCache) Runs() *runcache.Cache {
	return pc.runs
}

// Change notifies the paragraph about an edit of the client's text. See
// runcache.Cache.Change.
func (pc *ParagraphCache) Change(offset, added, removed int) {
	pc.runs.Change(offset, added, removed)
}

// IsClosed reports whether the paragraph's break session has ended.
func (pc *ParagraphCache) IsClosed() bool {
	return pc.session == 0
}

// Close ends the backend's break session for the paragraph. Closing twice is a
// no-op.
func (pc *ParagraphCache) Close() error {
	if pc.session == 0 {
		return nil
	}
	code := pc.backend.DestroySession(pc.session)
	pc.session = 0
	return code.Err("DestroySession")
}

// --- Format settings -------------------------------------------------------

// FormatSettings are the parameters of the line currently being formatted.
// It implements runcache.Settings.
type FormatSettings struct {
	source       textformat.TextSource
	para         textformat.TextParagraphProperties
	maxLineWidth float64
	textIndent   float64
	firstLine    bool
	previous     *LineBreak
}

var _ runcache.Settings = (*FormatSettings)(nil)

func newFormatSettings(source textformat.TextSource, para textformat.TextParagraphProperties) *FormatSettings {
	return &FormatSettings{source: source, para: para, firstLine: true}
}

// UpdateForCurrentLine sets up the parameters for the next line to format.
// The paragraph indent applies to every line, the first-line indent is added
// for the first line of a paragraph only.
func (fs *FormatSettings) UpdateForCurrentLine(maxLineWidth float64, previous *LineBreak, firstLine bool) {
	fs.maxLineWidth = maxLineWidth
	fs.previous = previous
	fs.firstLine = firstLine
	fs.textIndent = fs.para.ParagraphIndent()
	if firstLine {
		fs.textIndent += fs.para.Indent()
	}
}

// TextSource is part of interface runcache.Settings.
func (fs *FormatSettings) TextSource() textformat.TextSource {
	return fs.source
}

// Paragraph returns the properties of the paragraph.
func (fs *FormatSettings) Paragraph() textformat.TextParagraphProperties {
	return fs.para
}

// MaxLineWidth returns the width of the current line.
func (fs *FormatSettings) MaxLineWidth() float64 {
	return fs.maxLineWidth
}

// TextIndent returns the indent of the current line.
func (fs *FormatSettings) TextIndent() float64 {
	return fs.textIndent
}

// IsFirstLine reports whether the current line is the first line of its paragraph.
func (fs *FormatSettings) IsFirstLine() bool {
	return fs.firstLine
}

// PreviousLineBreak returns the break the current line continues from, if any.
func (fs *FormatSettings) PreviousLineBreak() *LineBreak {
	return fs.previous
}
