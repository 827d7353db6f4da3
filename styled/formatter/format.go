package formatter

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

import (
	"io"
	"math"
	"os"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/textformat"
	"github.com/npillmayer/textformat/styled"
	"github.com/npillmayer/uax/bidi"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
)

// DefaultCellWidth is the advance of a character of the fixed-width family of
// the simple line-services backend.
const DefaultCellWidth = 7.0

// Config represents a set of configuration parameters for formatting.
type Config struct {
	LineWidth          int            // line width in console cells; 0 uses the paragraph's width
	CellWidth          float64        // width of a console cell, in units of the backend
	PenaltyRestriction int            // see breakpoint.CreateMultiple
	Direction          bidi.Direction // embedding text direction
	Context            *uax11.Context // context for character widths
}

func (config *Config) cellWidth() float64 {
	if config.CellWidth > 0 {
		return config.CellWidth
	}
	return DefaultCellWidth
}

// lineWidth is the width of a line in units of the backend.
func (config *Config) lineWidth() float64 {
	return float64(config.LineWidth) * config.cellWidth()
}

// cells converts a distance in units of the backend to console cells.
func (config *Config) cells(x float64) int {
	return int(math.Round(x / config.cellWidth()))
}

// Device is an interface for output drivers, given an io.Writer
type Device interface {
	Preamble(io.Writer)
	Postamble(io.Writer)
	StyledText(string, styled.Style, io.Writer)
	LTR(io.Writer)
	RTL(io.Writer)
	Line(indent int, length int, linelength int, w io.Writer)
	Newline(io.Writer)
}

var setupGraphemes sync.Once

// Output outputs lines of a paragraph of styled text using a given device.
// The lines are the result of formatting the paragraph's text with Format,
// and para must not have been wrapped before.
//
// Neither of the arguments may be nil. However, it is safe to have config.Context
// set to nil. In this case, uax11.LatinContext is used.
func Output(para *styled.Paragraph, lines []Line, out io.Writer, config *Config, device Device) error {
	//
	if para == nil || out == nil || config == nil || device == nil {
		return textformat.ErrIllegalArguments
	}
	context := config.Context
	if context == nil {
		context = uax11.LatinContext
	}
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	device.Preamble(out)
	for i, line := range lines {
		text, ordering, err := para.WrapAt(line.Position + line.Length - para.Offset)
		if err != nil {
			T().Errorf("error Paragraph.WrapAt = %v", err)
			return err
		}
		if visible := line.Length - line.NewlineLength; visible < text.Len() {
			if text, err = styled.Section(text, 0, max(0, visible)); err != nil {
				return err
			}
		}
		s := text.String()
		T().Infof("[%3d] \"%s\"", i, s)
		T().Debugf("      with styles = %v", text.StyleRuns())
		length := textWidth(strings.TrimRightFunc(s, unicode.IsSpace), context)
		if line.Marker != "" {
			length += textWidth(line.Marker, context) + 1
		}
		device.Line(config.cells(line.Start), length, config.LineWidth, out)
		if line.Marker != "" {
			device.StyledText(line.Marker+" ", nil, out)
		}
		if ordering != nil {
			for _, run := range ordering.Runs {
				if run.Dir == bidi.RightToLeft {
					device.RTL(out)
				} else {
					device.LTR(out)
				}
				// segments stay in logical order; the device renders RTL runs
				segit := run.SegmentIterator(false)
				for segit.Next() {
					_, from, to := segit.Segment()
					if err = outputSegment(text, s, int(from), int(to), out, device); err != nil {
						return err
					}
				}
			}
		}
		device.Newline(out)
	}
	device.Postamble(out)
	return nil
}

// outputSegment outputs the style runs of text between byte positions from
// and to of s, which is the string of text.
func outputSegment(text *styled.Text, s string, from, to int, out io.Writer, device Device) error {
	from, to = min(from, len(s)), min(to, len(s))
	if from >= to {
		return nil
	}
	section, err := styled.Section(text, utf8.RuneCountInString(s[:from]), utf8.RuneCountInString(s[:to]))
	if err != nil {
		return err
	}
	return section.EachStyleRun(func(content string, sty styled.Style, pos int) error {
		device.StyledText(content, sty, out)
		return nil
	})
}

func textWidth(s string, context *uax11.Context) int {
	if s == "" {
		return 0
	}
	return uax11.StringWidth(grapheme.StringFromString(s), context)
}

// Print outputs the lines of a styled paragraph to stdout.
//
// If parameter config is nil,
// a heuristic will create a config from the current terminal's properties (if
// stdout is interactive). Config.Context will also be created based on heuristics
// from the user environment.
func Print(para *styled.Paragraph, lines []Line, config *Config) error {
	if config == nil {
		config = ConfigFromTerminal()
	}
	consoleFmt := NewConsoleFixedWidthFormat(nil, nil)
	return Output(para, lines, os.Stdout, config, consoleFmt)
}
