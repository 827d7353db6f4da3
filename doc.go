/*
Package textformat lays out paragraphs of styled text into lines, one potential
breakpoint at a time.

Overview

Formatting a paragraph is an incremental process. A layout host asks for the
candidate breakpoints of the next line, chooses one of them, and continues
formatting from the chosen break position. Package textformat and its
sub-packages provide the pieces needed for this:

▪︎ a text source contract, through which clients deliver runs of styled
characters (package textformat)

▪︎ a cache for text runs, which is invalidated when clients edit their text
(package runcache)

▪︎ property records for runs and paragraphs (package generic)

▪︎ synthetic text for list markers, i.e. bullets and auto-numbering
(package marker)

▪︎ a mapping between external character indices and the internal positions of
a line-breaking backend (package lexical)

▪︎ the breakpoint engine, which drives a line-breaking backend and owns the
backend resources of the resulting breakpoints (package breakpoint)

The line-breaking backend itself sits behind the contract of package
lineservices. Package lineservices/simple offers a backend which measures glyphs
with the Go fonts and finds break opportunities with UAX#14.

Character Indices

All character indices of this module count runes, not bytes. Clients
which hold UTF-16 text may deliver surrogate code points as separate runes;
the run cache will never split such a pair.

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
package textformat

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// tracer writes to trace with key 'textformat'
func tracer() tracing.Trace {
	return tracing.Select("textformat")
}

// TypicalCharactersPerLine is the number of characters a line of text is
// expected to hold. The run cache will chop long runs of characters close
// to this length.
const TypicalCharactersPerLine = 100

// Width limits of the line-breaking machinery. Widths are real (device
// independent) units; a backend may represent them as ideal integer units,
// so widths and em-sizes must stay well within integer range.
const (
	idealInfiniteWidth     = 0x3FFFFFFE
	realToIdeal            = 300.0
	RealInfiniteWidth      = idealInfiniteWidth / realToIdeal
	GreatestMultiplierOfEm = 100
)

// MaxFontRenderingEmSize is the largest em-size a run of text may carry.
const MaxFontRenderingEmSize = RealInfiniteWidth / GreatestMultiplierOfEm
