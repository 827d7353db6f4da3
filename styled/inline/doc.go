/*
Package inline provides a set of inline text styles, as known from HTML.

Styles of this package are bit-sets and may be combined. They know how to
modify run properties for the line-breaking machinery:

	text := styled.TextFromString("The quick brown fox")
	text.Style(inline.BoldStyle.Add(inline.ItalicsStyle), 4, 9)

A styled text may also be created from an HTML fragment with TextFromHTML.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/
package inline

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textformat'
func tracer() tracing.Trace {
	return tracing.Select("textformat")
}
