/*
Package formatter formats styled text on output devices with
fixed-width fonts. It is intended for situations where the application is
responsible for the visual representation (as opposed to output to a
browser, which usually addresses the complications of text by itself,
transparently for applications).
Think of this package in terms of `fmt.Println` for styled, bi-directional
text.

Output of styled text differs in many aspectes from simple string output.
Not only do we need an output device which is capable of displaying text
styles, but we need to consider line-breaking and the handling of
bi-directional (Bidi) text as well. This package helps performing the
following tasks:

▪︎ Break a paragraph into lines, using the line-breaking machinery of package breakpoint

▪︎ Select a device for a given (monospaced) output and create a suitable configuration

▪︎ Output the lines of a styled paragraph of possibly bi-directional text to the device

Line-breaking measures text with the fonts of a line-services backend. For
console output, the backend should use a fixed-width family, with Config.CellWidth
being the advance of a single character. Output will apply rules from UAX#9
(bidi), UAX#29 (graphemes) and UAX#11 (character width), as well as some
heuristics depending on the output device.

# API

Clients format a paragraph into lines and then output the lines to a device:

	text := styled.TextFromString("The quick brown fox jumps over the כלב עצלן!")
	text.Style(inline.BoldStyle, 4, 9)  // want 'quick' in boldface
	pc, _ := breakpoint.NewParagraphCache(backend, text.Source(props), props, 0, 0)
	defer pc.Close()
	config := formatter.ConfigFromTerminal()
	lines, _ := formatter.Format(pc, config)
	para, _ := styled.ParagraphFromText(text, 0, text.Len(), bidi.LeftToRight, nil)
	formatter.Print(para, lines, config)

Device is an interface type and this package offers two implementations,
one for console output (like in the example above) and one for HTML output.

# Status

Work in progress.
API not stable.

_________________________________________________________________________

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
package formatter

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}
