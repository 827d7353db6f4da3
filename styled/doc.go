/*
Package styled makes styled text.

A styled text is a sequence of characters, together with runs of styles
applied to ranges of the characters. Styles are opaque to this package;
clients bring their own style types, for example from package inline.

A styled text can act as a text source for the line-breaking machinery:

	text := styled.TextFromString("The quick brown fox")
	text.Style(inline.BoldStyle, 4, 9)
	source := text.Source(para)
	pc, err := breakpoint.NewParagraphCache(backend, source, para, 0, width)
	...
	text.Subscribe(pc)  // edits of text will invalidate pc's cached runs

# Status

Work in progress.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/
package styled

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textformat'
func tracer() tracing.Trace {
	return tracing.Select("textformat")
}
