package breakpoint

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/npillmayer/textformat"
	"github.com/npillmayer/textformat/lexical"
	"github.com/npillmayer/textformat/lineservices"
	"github.com/npillmayer/textformat/runcache"
)

// Characters representing non-text positions for the lexical analysis.
const (
	objectReplacement  = '\uFFFC'
	wordJoiner         = '\u2060'
	lineSeparator      = '\n'
	paragraphSeparator = '\u2029'
)

// piece is a run of content at an internal position, covering a number of
// characters of the client's text. Marker pieces cover no characters.
type piece struct {
	lsdcp  int
	extLen int
	run    lineservices.Run
}

func (p piece) limit() int {
	return p.lsdcp + p.run.Length
}

// at returns the part of p's run starting at lsdcp.
func (p piece) at(lsdcp int) lineservices.Run {
	off := lsdcp - p.lsdcp
	if off == 0 || p.run.Kind != textformat.KindCharacters {
		return p.run
	}
	r := p.run
	r.Chars = r.Chars[off:]
	r.Length -= off
	return r
}

// placeholder is the character standing in for a non-text piece.
func (p piece) placeholder() rune {
	switch p.run.Kind {
	case textformat.KindInlineObject:
		if p.run.Object.Breaking {
			return objectReplacement
		}
		return wordJoiner
	case textformat.KindEndOfLine:
		return lineSeparator
	case textformat.KindEndOfParagraph:
		return paragraphSeparator
	}
	return wordJoiner
}

// fullText is the content of a single line, as seen by a backend. It is the
// host of the backend's callbacks for a single call of CreateMultiple.
//
// Internal positions [0, markerLen) hold the marker text on the first line of
// a paragraph with a marker. The line's text starts at internal position
// markerLen, which corresponds to character index first.
type fullText struct {
	pc        *ParagraphCache
	settings  *FormatSettings
	first     int
	markerLen int
	pieces    []piece
	mapping   *lexical.Map // relative to first and markerLen
	extLim    int          // characters fetched, relative to first
	lsdcpLim  int          // first internal position not fetched
}

var _ lineservices.Host = (*fullText)(nil)

func newFullText(pc *ParagraphCache, settings *FormatSettings, first int) (*fullText, error) {
	ft := &fullText{
		pc:       pc,
		settings: settings,
		first:    first,
		mapping:  lexical.NewMap(),
	}
	if mp := settings.para.TextMarkerProperties(); settings.firstLine && mp != nil && mp.TextSource() != nil {
		if err := ft.fetchMarker(mp.TextSource()); err != nil {
			return nil, err
		}
	}
	ft.lsdcpLim = ft.markerLen
	return ft, nil
}

// fetchMarker collects the runs of marker text, up to the first run which is
// not text.
func (ft *fullText) fetchMarker(source textformat.TextSource) error {
	for {
		run, err := source.GetTextRun(ft.markerLen)
		if err != nil {
			return fmt.Errorf("marker text @ %d: %w", ft.markerLen, err)
		}
		if textformat.KindOf(run) != textformat.KindCharacters {
			break
		}
		if err := runcache.ValidateRun(run); err != nil {
			return fmt.Errorf("marker text @ %d: %w", ft.markerLen, err)
		}
		cr, ok := run.(textformat.CharacterRun)
		if !ok {
			return &textformat.ArgumentError{Param: "run", Reason: "marker text run without characters"}
		}
		chars := cr.Characters()
		ft.pieces = append(ft.pieces, piece{
			lsdcp: ft.markerLen,
			run: lineservices.Run{
				Kind:     textformat.KindCharacters,
				Chars:    chars,
				Length:   len(chars),
				Props:    run.Properties(),
				IsMarker: true,
			},
		})
		ft.markerLen += len(chars)
	}
	tracer().Debugf("line @ %d: marker of length %d", ft.first, ft.markerLen)
	return nil
}

// fetchNext appends the next run of the line's text.
func (ft *fullText) fetchNext() error {
	cp := ft.first + ft.extLim
	run, offset, length, err := ft.pc.runs.FetchTextRun(ft.settings, cp, ft.first)
	if err != nil {
		return err
	}
	p := piece{lsdcp: ft.lsdcpLim, extLen: length}
	switch kind := run.Kind(); kind {
	case textformat.KindCharacters:
		cr, ok := run.(textformat.CharacterRun)
		if !ok {
			return &textformat.ArgumentError{Param: "run", Reason: "text run without characters"}
		}
		p.run = lineservices.Run{
			Kind:   kind,
			Chars:  cr.Characters()[offset : offset+length],
			Length: length,
			Props:  run.Properties(),
		}
	case textformat.KindInlineObject:
		obj, ok := run.(*textformat.TextEmbeddedObject)
		if !ok {
			return &textformat.ArgumentError{Param: "run", Reason: fmt.Sprintf("unknown inline object %T", run)}
		}
		p.run = lineservices.Run{Kind: kind, Length: 1, Props: run.Properties(), Object: obj}
	default:
		p.run = lineservices.Run{Kind: kind, Length: 1, Props: run.Properties()}
	}
	ft.mapping.Append(p.extLen, p.lsdcp-ft.markerLen, p.run.Length)
	ft.pieces = append(ft.pieces, p)
	ft.extLim += p.extLen
	ft.lsdcpLim += p.run.Length
	return nil
}

// fetchUpTo makes sure content up to internal position lsdcp is available.
func (ft *fullText) fetchUpTo(lsdcp int) error {
	for lsdcp >= ft.lsdcpLim {
		if err := ft.fetchNext(); err != nil {
			return err
		}
	}
	return nil
}

// pieceAt returns the piece containing internal position lsdcp, which must have
// been fetched.
func (ft *fullText) pieceAt(lsdcp int) piece {
	i, found := slices.BinarySearchFunc(ft.pieces, lsdcp, func(p piece, target int) int {
		return cmp.Compare(p.lsdcp, target)
	})
	if !found {
		i--
	}
	return ft.pieces[i]
}

// Paragraph is part of interface lineservices.Host.
func (ft *fullText) Paragraph() lineservices.ParagraphParams {
	para := ft.settings.para
	return lineservices.ParagraphParams{
		WrapWidth:      ft.settings.maxLineWidth,
		TextIndent:     ft.settings.textIndent,
		Wrapping:       para.TextWrapping(),
		FirstLine:      ft.settings.firstLine,
		MarkerLength:   ft.markerLen,
		LineHeight:     para.LineHeight(),
		DefaultRun:     para.DefaultTextRunProperties(),
		FlowDirection:  para.FlowDirection(),
		IncrementalTab: para.DefaultIncrementalTab(),
	}
}

// FetchRun is part of interface lineservices.Host.
func (ft *fullText) FetchRun(lsdcp int) (lineservices.Run, error) {
	if lsdcp < 0 {
		return lineservices.Run{}, &textformat.ArgumentError{Param: "lsdcp", Reason: "must not be negative"}
	}
	if err := ft.fetchUpTo(lsdcp); err != nil {
		return lineservices.Run{}, err
	}
	return ft.pieceAt(lsdcp).at(lsdcp), nil
}

// LexicalChunk is part of interface lineservices.Host. The chunk's mapping
// relates characters from the start of the chunk to positions from the start
// of the chunk.
func (ft *fullText) LexicalChunk(first, lim int) (lexical.Chunk, error) {
	if first < 0 || lim < first {
		return lexical.NoBreakChunk(), &textformat.ArgumentError{Param: "lsdcp", Reason: "invalid range"}
	}
	if lim == first {
		return lexical.NoBreakChunk(), nil
	}
	if err := ft.fetchUpTo(lim - 1); err != nil {
		return lexical.NoBreakChunk(), err
	}
	chars := make([]rune, 0, lim-first)
	m := lexical.NewMap()
	for lsdcp := first; lsdcp < lim; {
		p := ft.pieceAt(lsdcp)
		end := min(lim, p.limit())
		if p.run.Kind == textformat.KindCharacters {
			chars = append(chars, p.run.Chars[lsdcp-p.lsdcp:end-p.lsdcp]...)
			if !p.run.IsMarker {
				m.Append(end-lsdcp, lsdcp-first, end-lsdcp)
			}
		} else {
			chars = append(chars, p.placeholder())
			m.Append(p.extLen, lsdcp-first, 1)
		}
		lsdcp = end
	}
	return lexical.NewChunk(lexical.Analyze(chars), m), nil
}

// --- Mapping ---------------------------------------------------------------

// toInternal maps a character index of the line to an internal position.
func (ft *fullText) toInternal(cp int) int {
	return ft.markerLen + ft.mapping.InternalFromExternal(cp-ft.first)
}

// toExternal maps an internal position to a character index. Marker positions
// map to the start of the line.
func (ft *fullText) toExternal(lsdcp int) int {
	if lsdcp <= ft.markerLen {
		return ft.first
	}
	return ft.first + ft.mapping.ExternalFromInternal(lsdcp-ft.markerLen)
}

// newlineLength returns the number of characters of the line break ending
// before internal position limit.
func (ft *fullText) newlineLength(limit int) int {
	if limit <= ft.markerLen || limit > ft.lsdcpLim {
		return 0
	}
	p := ft.pieceAt(limit - 1)
	if p.run.Kind == textformat.KindEndOfLine || p.run.Kind == textformat.KindEndOfParagraph {
		return p.extLen
	}
	return 0
}

// tabState returns the tab stops of the paragraph in increasing order. Marker
// positions are excluded from tab handling.
func (ft *fullText) tabState() lineservices.TabState {
	para := ft.settings.para
	tabs := slices.Clone(para.Tabs())
	slices.SortFunc(tabs, func(a, b textformat.TabStop) int {
		return cmp.Compare(a.Location, b.Location)
	})
	tabs = slices.CompactFunc(tabs, func(a, b textformat.TabStop) bool {
		return a.Location == b.Location
	})
	return lineservices.TabState{
		Tabs:         tabs,
		Incremental:  para.DefaultIncrementalTab(),
		ExcludeBelow: ft.markerLen,
	}
}
