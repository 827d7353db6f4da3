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
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/npillmayer/textformat/styled"
	"github.com/npillmayer/textformat/styled/inline"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/term"
)

// ControlCodes holds certain escape sequences which a terminal uses to control
// Bidi behaviour.
type ControlCodes struct {
	Preamble, Postamble []byte
	LTR, RTL            []byte
	Newline             []byte
}

// DefaultCodes is the default set of control codes.
// See https://terminal-wg.pages.freedesktop.org/bidi/recommendation/escape-sequences.html
var DefaultCodes = ControlCodes{
	Preamble:  []byte{27, '[', '8', 'l'}, // switch to explicit mode
	Postamble: []byte{27, '[', '0', ' ', 'k'},
	LTR:       []byte{27, '[', '1', ' ', 'k'},
	RTL:       []byte{27, '[', '2', ' ', 'k'},
	Newline:   []byte{'\n'},
}

// PlainCodes is a set of control codes for terminals without Bidi support.
var PlainCodes = ControlCodes{
	Newline: []byte{'\n'},
}

// ConsoleFixedWidth is a type for outputting formatted text to a console with
// a fixed width font.
//
// Console/Terminal output is notoriously tricky for bi-directional text and for
// scripts other than Latin. To fully appreciate the difficulties behind this,
// refer for example to
// https://terminal-wg.pages.freedesktop.org/bidi/bidi-intro/why-terminals-are-special.html
//
// As long as there is not widely accepted standard for Bidi-handling in terminals, we
// have to rely on heuristics and explicitly set device-dependent configuration.
type ConsoleFixedWidth struct {
	Codes  *ControlCodes
	colors map[styled.Style]*color.Color
}

// Print outputs the lines of a styled paragraph to stdout.
//
// If parameter config is nil,
// a heuristic will create a config from the current terminal's properties (if
// stdout is interactive).
func (fw *ConsoleFixedWidth) Print(para *styled.Paragraph, lines []Line, config *Config) error {
	if config == nil {
		config = ConfigFromTerminal()
	}
	return Output(para, lines, os.Stdout, config, fw)
}

// NewConsoleFixedWidthFormat creates a new device. It is to be used for consoles
// with a fixed width font.
//
// codes is a table of escape sequences to control Bidi behaviour of the console.
// colors is a map from the styled.Styles to colors, used for display. It may contain
// just a subset of the styles used in the texts which will be handled
// by this device. Inline styles missing from the map are displayed with
// attributes matching the style.
func NewConsoleFixedWidthFormat(codes *ControlCodes, colors map[styled.Style]*color.Color) *ConsoleFixedWidth {
	fw := &ConsoleFixedWidth{
		Codes:  &DefaultCodes,
		colors: make(map[styled.Style]*color.Color),
	}
	if codes != nil {
		fw.Codes = codes
	}
	for sty, c := range colors {
		fw.colors[sty] = c
	}
	return fw
}

// colorFor returns the display attributes of a style, or nil for styles to be
// output unchanged.
func (fw *ConsoleFixedWidth) colorFor(style styled.Style) *color.Color {
	if c, ok := fw.colors[style]; ok {
		return c
	}
	st, ok := style.(inline.Style)
	if !ok || st == inline.PlainStyle {
		return nil
	}
	var attrs []color.Attribute
	if st&(inline.BoldStyle|inline.StrongStyle) != 0 {
		attrs = append(attrs, color.Bold)
	}
	if st&(inline.ItalicsStyle|inline.EmStyle) != 0 {
		attrs = append(attrs, color.Italic)
	}
	if st.Has(inline.SmallStyle) {
		attrs = append(attrs, color.Faint)
	}
	if st.Has(inline.MarkedStyle) {
		attrs = append(attrs, color.BgYellow)
	}
	c := color.New(attrs...)
	fw.colors[style] = c
	return c
}

// StyledText is called by the formatting driver to output a sequence of
// uniformly styled text (item). It uses colors to visualize styles.
// (Part of interface Device)
func (fw *ConsoleFixedWidth) StyledText(s string, style styled.Style, w io.Writer) {
	if style != nil {
		if c := fw.colorFor(style); c != nil {
			c.Fprint(w, s)
			return
		}
	}
	w.Write([]byte(s))
}

// Preamble is called by the output driver before a paragraph of text will be formatted.
// It outputs the `Preamble` escape sequence from fw.Codes.
// (Part of interface Device)
func (fw *ConsoleFixedWidth) Preamble(w io.Writer) {
	w.Write(fw.Codes.Preamble)
}

// Postamble will be called after a paragraph of text has been formatted.
// It outputs the `Postamble` escape sequence from fw.Codes.
// (Part of interface Device)
func (fw *ConsoleFixedWidth) Postamble(w io.Writer) {
	w.Write(fw.Codes.Postamble)
}

// LTR signals to w that a bidi.LeftToRight sequence is to be output.
// (Part of interface Device)
func (fw *ConsoleFixedWidth) LTR(w io.Writer) {
	w.Write(fw.Codes.LTR)
}

// RTL signals to w that a bidi.RightToLeft sequence is to be output.
// (Part of interface Device)
func (fw *ConsoleFixedWidth) RTL(w io.Writer) {
	w.Write(fw.Codes.RTL)
}

// Line is a signal from the output driver that a new line is to be output.
// indent is the distance of the text from the left margin, length is the total
// width of the characters that will be formatted, both measured in “en”s, i.e.
// fixed width positions. linelength is the target line length.
//
// The line is indented by padding with spaces, as long as it fits into
// linelength.
// (Part of interface Device)
func (fw *ConsoleFixedWidth) Line(indent int, length int, linelength int, w io.Writer) {
	pad := indent
	if linelength > 0 {
		pad = min(pad, max(0, linelength-length))
	}
	if pad > 0 {
		w.Write([]byte(strings.Repeat(" ", pad)))
	}
}

// Newline will be called at the end of every formatted line of text.
// It outputs the `Newline` escape sequence from fw.Codes.
// (Part of interface Device)
func (fw *ConsoleFixedWidth) Newline(w io.Writer) {
	w.Write(fw.Codes.Newline)
}

// --- Config for terminals --------------------------------------------------

// ConfigFromTerminal is a simple helper for creating a formatting Config.
// It checks wether stdout is a terminal, and if so it reads the terminal's width
// and sets the Config.LineWidth parameter accordingly. Config.Context is
// created based on heuristics from the user environment.
func ConfigFromTerminal() *Config {
	config := &Config{
		LineWidth: 65,
		Context:   uax11.ContextFromEnvironment(),
	}
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil {
			if w > 65 {
				config.LineWidth = w - 10
			} else if w > 30 {
				config.LineWidth = w - 5
			} else if w > 10 {
				config.LineWidth = w
			} else {
				config.LineWidth = 10
			}
		}
	}
	T().P("format", "console").Infof("setting line length to %d en", config.LineWidth)
	return config
}
