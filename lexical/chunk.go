package lexical

import (
	"fmt"

	"github.com/npillmayer/textformat/span"
)

// Map maps between external character indices and internal positions of a
// line-breaking backend.
//
// The table is indexed by external length: every span covers a number of
// external characters and carries the internal position of its first
// character. A run of text maps 1:1, but a run of hidden characters may
// occupy a single internal position, so the mapping is not affine and has
// to be computed by walking the spans.
type Map struct {
	spans         *span.Vector[int]
	internalLimit int
}

// NewMap creates an empty map. An empty map is the identity mapping.
func NewMap() *Map {
	return &Map{spans: span.NewVector(0, nil)}
}

// Append adds a span of extLen external characters, which occupies internal
// positions [internalPos, internalPos+internalLen).
func (m *Map) Append(extLen, internalPos, internalLen int) {
	if extLen <= 0 {
		return
	}
	if m.spans.Count() > 0 && internalPos < m.internalLimit {
		panic(fmt.Sprintf("lexical map: internal position %d out of order (limit %d)", internalPos, m.internalLimit))
	}
	m.spans.Append(extLen, internalPos)
	m.internalLimit = internalPos + internalLen
}

// IsEmpty reports whether m is the identity mapping.
func (m *Map) IsEmpty() bool {
	return m == nil || m.spans.Count() == 0
}

// ExternalLength is the number of external characters covered by m.
func (m *Map) ExternalLength() int {
	if m.IsEmpty() {
		return 0
	}
	return m.spans.TotalLength()
}

// InternalLimit is the first internal position after the last span of m.
func (m *Map) InternalLimit() int {
	if m.IsEmpty() {
		return 0
	}
	return m.internalLimit
}

// ExternalFromInternal maps an internal position to an external character index.
// Internal positions past the table's end are extrapolated 1:1.
func (m *Map) ExternalFromInternal(lsdcp int) int {
	if m.IsEmpty() {
		return lsdcp
	}
	if lsdcp >= m.internalLimit {
		return m.spans.TotalLength() + lsdcp - m.internalLimit
	}
	ich, cchLast, lsdcpLast := 0, 0, 0
	for i := 0; i < m.spans.Count(); i++ {
		s := m.spans.At(i)
		if s.Value > lsdcp {
			break
		}
		cchLast = s.Length
		lsdcpLast = s.Value
		ich += cchLast
	}
	return ich - cchLast + min(cchLast, lsdcp-lsdcpLast)
}

// InternalFromExternal maps an external character index to an internal position.
// Indices past the table's end are extrapolated 1:1.
func (m *Map) InternalFromExternal(ich int) int {
	if m.IsEmpty() {
		return ich
	}
	rider := span.NewRider(m.spans)
	if !rider.At(ich) {
		return m.internalLimit + ich - m.spans.TotalLength()
	}
	return rider.CurrentValue() + ich - rider.CurrentSpanStart()
}

func (m *Map) String() string {
	if m.IsEmpty() {
		return "identity"
	}
	return fmt.Sprintf("%v→%d", m.spans, m.internalLimit)
}

// --- Chunks ----------------------------------------------------------------

// Chunk pairs the break analysis of a range of text with the mapping between
// external character indices and internal positions for that range.
// A chunk without analysis is a no-break chunk and maps 1:1.
type Chunk struct {
	breaks  *Breaks
	mapping *Map
}

// NewChunk creates a chunk. If breaks is nil, the no-break chunk is returned.
func NewChunk(breaks *Breaks, mapping *Map) Chunk {
	if breaks == nil {
		return NoBreakChunk()
	}
	return Chunk{breaks: breaks, mapping: mapping}
}

// NoBreakChunk returns a chunk without break opportunities.
func NoBreakChunk() Chunk {
	return Chunk{}
}

// IsNoBreak reports whether c carries no break analysis.
func (c Chunk) IsNoBreak() bool {
	return c.breaks == nil
}

// Breaks returns the break analysis of c. It is nil for the no-break chunk.
func (c Chunk) Breaks() *Breaks {
	return c.breaks
}

// ExternalFromInternal maps an internal position to an external character index.
func (c Chunk) ExternalFromInternal(lsdcp int) int {
	if c.IsNoBreak() {
		return lsdcp
	}
	return c.mapping.ExternalFromInternal(lsdcp)
}

// InternalFromExternal maps an external character index to an internal position.
func (c Chunk) InternalFromExternal(ich int) int {
	if c.IsNoBreak() {
		return ich
	}
	return c.mapping.InternalFromExternal(ich)
}
