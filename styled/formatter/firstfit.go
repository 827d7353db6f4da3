package formatter

import (
	"fmt"

	"github.com/npillmayer/textformat"
	"github.com/npillmayer/textformat/breakpoint"
)

// Line is a formatted line of a paragraph.
type Line struct {
	Position int    // character index of the start of the line
	Marker   string // text of the paragraph's marker, for the first line only
	breakpoint.Metrics
}

func (l Line) String() string {
	return fmt.Sprintf("line@%d%v", l.Position, l.Metrics)
}

/*
Wikipedia:

	1. |  SpaceLeft := LineWidth
	2. |  for each Word in Text
	3. |      if (Width(Word) + SpaceWidth) > SpaceLeft
	4. |           insert line break before Word in Text
	5. |           SpaceLeft := LineWidth - Width(Word)
	6. |      else
	7. |           SpaceLeft := SpaceLeft - (Width(Word) + SpaceWidth)

The backend does the measuring for us, and hands us the best fit for every line.
*/

// Format breaks the paragraph of pc into lines, one line after the other,
// taking the best fit of the candidate breaks for every line. Format returns
// after the line ending the paragraph.
//
// Every breakpoint and line break acquired is disposed before Format returns.
func Format(pc *breakpoint.ParagraphCache, config *Config) ([]Line, error) {
	if pc == nil || config == nil {
		return nil, textformat.ErrIllegalArguments
	}
	source := pc.Settings().TextSource()
	marker := markerText(pc.Settings().Paragraph())
	var previous *breakpoint.LineBreak
	defer func() {
		if previous != nil {
			previous.Dispose()
		}
	}()
	var lines []Line
	cp := pc.FirstCharIndex()
	for {
		bps, best, err := breakpoint.CreateMultiple(pc, cp, config.lineWidth(), previous, config.PenaltyRestriction)
		if err != nil {
			T().Errorf("formatter: cannot break line @ %d: %v", cp, err)
			return nil, err
		}
		metrics, lb, err := takeBest(bps, best)
		if err != nil {
			return nil, err
		}
		if previous != nil {
			previous.Dispose()
		}
		previous = lb
		line := Line{Position: cp, Metrics: metrics}
		if len(lines) == 0 {
			line.Marker = marker
		}
		T().Debugf("formatter: %v", line)
		lines = append(lines, line)
		if metrics.Length <= 0 {
			return nil, fmt.Errorf("formatter: empty line @ %d", cp)
		}
		cp += metrics.Length
		if metrics.NewlineLength > 0 {
			run, err := source.GetTextRun(cp - metrics.NewlineLength)
			if err != nil {
				return nil, err
			}
			if textformat.KindOf(run) == textformat.KindEndOfParagraph {
				break
			}
		}
	}
	T().Infof("formatter: paragraph @ %d has %d lines", pc.FirstCharIndex(), len(lines))
	return lines, nil
}

// takeBest returns the metrics and the line break of the best fit of a set of
// candidate breaks, and disposes all of the candidates.
func takeBest(bps []*breakpoint.Breakpoint, best int) (breakpoint.Metrics, *breakpoint.LineBreak, error) {
	defer func() {
		for _, bp := range bps {
			bp.Dispose()
		}
	}()
	metrics, err := bps[best].Metrics()
	if err != nil {
		return metrics, nil, err
	}
	lb, err := bps[best].TextLineBreak()
	return metrics, lb, err
}

// markerText collects the characters of a paragraph's marker.
func markerText(para textformat.TextParagraphProperties) string {
	mp := para.TextMarkerProperties()
	if mp == nil || mp.TextSource() == nil {
		return ""
	}
	var chars []rune
	for {
		run, err := mp.TextSource().GetTextRun(len(chars))
		if err != nil {
			return string(chars)
		}
		cr, ok := run.(textformat.CharacterRun)
		if !ok || run.Kind() != textformat.KindCharacters || len(cr.Characters()) == 0 {
			return string(chars)
		}
		chars = append(chars, cr.Characters()...)
	}
}
