package compact

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textformat'
func tracer() tracing.Trace {
	return tracing.Select("textformat")
}
