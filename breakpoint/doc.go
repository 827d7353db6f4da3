/*
Package breakpoint finds the candidate breakpoints of a line of text.

A layout host formats a paragraph one line at a time. For every line it calls
CreateMultiple, which asks a line-breaking backend for all the breaks of the
line which fit into the line's width, and returns them as Breakpoints:

	pc, err := breakpoint.NewParagraphCache(backend, source, props, 0, 300)
	...
	defer pc.Close()
	bps, best, err := breakpoint.CreateMultiple(pc, 0, 300, nil, 0)

The host chooses one of the breakpoints, usually the best fit, and continues
with the next line at the character index following the chosen breakpoint,
passing on the breakpoint's line break:

	lb, err := bps[best].TextLineBreak()
	length, err := bps[best].Length()
	bps2, best2, err := breakpoint.CreateMultiple(pc, length, 300, lb, 0)

Breakpoints hold resources of the backend. Clients should call Dispose on
every breakpoint as soon as they are done with it. A finalizer releases the
resources of breakpoints which are never disposed, but the point in time
this happens is not predictable.

Character indices used by clients are indices of the client's text source.
Internally, a backend counts positions differently: a run of hidden text
occupies a single position, and so does an inline object or a line break of
more than one character. On the first line of a list item, the backend
additionally sees the text of the item's marker in front of the text.
Package breakpoint maps between the two for every line it formats.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/
package breakpoint

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textformat'
func tracer() tracing.Trace {
	return tracing.Select("textformat")
}
