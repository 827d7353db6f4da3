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
	"strings"

	"github.com/npillmayer/textformat/styled"
	"github.com/npillmayer/textformat/styled/inline"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/net/html"
)

var htmlStyleNames = map[inline.Style]string{
	inline.PlainStyle:   "",
	inline.BoldStyle:    "b",
	inline.ItalicsStyle: "i",
	inline.StrongStyle:  "strong",
	inline.EmStyle:      "em",
	inline.SmallStyle:   "small",
	inline.MarkedStyle:  "mark",
}

// HTML is a device for simple HTML output. Lines are output within a
// `pre` element.
type HTML struct {
	bidi bool // a span for a Bidi run is open
}

// NewHTML creates an HTML device.
func NewHTML() *HTML {
	return &HTML{}
}

// Print outputs the lines of a styled paragraph as HTML.
//
// If parameter config is nil, a default configuration will be used.
func (h *HTML) Print(para *styled.Paragraph, lines []Line, w io.Writer, config *Config) error {
	if config == nil {
		config = &Config{
			LineWidth: 40,
			Context:   uax11.ContextFromEnvironment(),
		}
	}
	return Output(para, lines, w, config, h)
}

// StyledText is called by the formatting driver to output a sequence of
// uniformly styled text (item).
// (Part of interface Device)
func (h *HTML) StyledText(s string, style styled.Style, w io.Writer) {
	s = html.EscapeString(s)
	switch st := style.(type) {
	case inline.Style:
		io.WriteString(w, HTMLStyle(st).tags(false))
		io.WriteString(w, s)
		io.WriteString(w, HTMLStyle(st).tags(true))
		return
	case HTMLStyle:
		io.WriteString(w, st.tags(false))
		io.WriteString(w, s)
		io.WriteString(w, st.tags(true))
		return
	}
	io.WriteString(w, s)
}

// Preamble is called by the output driver before a paragraph of text will be formatted.
// It outputs the a `pre` tag.
// (Part of interface Device)
func (h *HTML) Preamble(w io.Writer) {
	io.WriteString(w, "<pre>\n")
}

// Postamble will be called after a paragraph of text has been formatted.
// It outputs a closing `</span>` if necessary, and a closing `</pre>` tag.
// (Part of interface Device)
func (h *HTML) Postamble(w io.Writer) {
	h.closeSpan(w)
	io.WriteString(w, "</pre>\n")
}

func (h *HTML) closeSpan(w io.Writer) {
	if h.bidi {
		io.WriteString(w, "</span>")
		h.bidi = false
	}
}

// LTR signals to w that a bidi.LeftToRight sequence is to be output.
// It outputs a closing `</span>` if necessary, and a `<span dir="ltr">` tag.
// (Part of interface Device)
func (h *HTML) LTR(w io.Writer) {
	h.closeSpan(w)
	io.WriteString(w, `<span dir="ltr">`)
	h.bidi = true
}

// RTL signals to w that a bidi.RightToLeft sequence is to be output.
// It outputs a closing `</span>` if necessary, and a `<span dir="rtl">` tag.
// (Part of interface Device)
func (h *HTML) RTL(w io.Writer) {
	h.closeSpan(w)
	io.WriteString(w, `<span dir="rtl">`)
	h.bidi = true
}

// Line is a signal from the output driver that a new line is to be output.
// The line is indented by indent spaces.
// (Part of interface Device)
func (h *HTML) Line(indent int, length int, linelength int, w io.Writer) {
	if indent > 0 {
		io.WriteString(w, strings.Repeat(" ", indent))
	}
}

// Newline will be called at the end of every formatted line of text.
// (Part of interface Device)
func (h *HTML) Newline(w io.Writer) {
	h.closeSpan(w)
	io.WriteString(w, "\n")
}

// HTMLStyle is a style equivalent to inline.Style, which offers some convenience
// functions.
type HTMLStyle inline.Style

func (s HTMLStyle) String() string {
	return s.tags(false)
}

// Equals is part of interface styled.Style.
func (s HTMLStyle) Equals(other styled.Style) bool {
	o, ok := other.(HTMLStyle)
	return ok && o == s
}

func (s HTMLStyle) tags(closing bool) string {
	if s == 0 {
		return ""
	}
	var b strings.Builder
	for i := range len(htmlStyleNames) - 1 {
		bit := i
		if closing {
			bit = len(htmlStyleNames) - 2 - i
		}
		if st := inline.Style(1 << bit); inline.Style(s).Has(st) {
			b.WriteString("<")
			if closing {
				b.WriteString("/")
			}
			b.WriteString(htmlStyleNames[st])
			b.WriteString(">")
		}
	}
	return b.String() // may be empty string
}

// Add combines a style with another style
func (s HTMLStyle) Add(sty HTMLStyle) HTMLStyle {
	return s | sty
}
