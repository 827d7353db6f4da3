/*
Package compact stores sequences of real numbers, such as glyph advances,
in a space-saving way.

Values which are typical for text, i.e. distances in the range of a few
em, are stored as 16-bit integers in units of thousandths of an em. If a
value cannot be represented this way, the sequence falls back to storing
float64 values, irreversibly.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/
package compact

import (
	"fmt"
	"math"

	"github.com/npillmayer/textformat"
)

// CutoffEmSize is the largest em-size for which values will be stored in
// compacted form.
const CutoffEmSize = 48

const (
	toThousandthOfEm = 1000.0
	toReal           = 1.0 / toThousandthOfEm
)

// Float64s is a fixed-length sequence of float64 values, stored as scaled
// 16-bit integers relative to an em-size whenever possible.
//
// A Float64s created by
//
//	Float64s{}
//
// is a valid sequence of length 0.
type Float64s struct {
	emSize  float64
	shorts  []int16   // compacted storage, nil after fall-back
	doubles []float64 // full precision storage, nil as long as compacted
}

// New creates a sequence of n zero values for a given em-size.
func New(emSize float64, n int) *Float64s {
	if n < 0 {
		n = 0
	}
	a := &Float64s{emSize: emSize}
	if emSize > CutoffEmSize || emSize <= 0 || math.IsNaN(emSize) {
		a.doubles = make([]float64, n)
	} else {
		a.shorts = make([]int16, n)
	}
	return a
}

// FromSlice creates a sequence holding the values of a slice.
func FromSlice(emSize float64, values []float64) *Float64s {
	a := New(emSize, len(values))
	for i, v := range values {
		a.Set(i, v)
	}
	return a
}

// Len returns the fixed length of the sequence.
func (a *Float64s) Len() int {
	if a.shorts != nil {
		return len(a.shorts)
	}
	return len(a.doubles)
}

// EmSize returns the em-size values are scaled to.
func (a *Float64s) EmSize() float64 {
	return a.emSize
}

// IsCompact reports whether values are stored in compacted form.
func (a *Float64s) IsCompact() bool {
	return a.doubles == nil && a.shorts != nil
}

// At returns the value at index i. It panics if i is out of range.
func (a *Float64s) At(i int) float64 {
	if a.doubles != nil {
		return a.doubles[i]
	}
	return float64(a.shorts[i]) * toReal * a.emSize
}

// Set stores a value at index i. It panics if i is out of range.
//
// If the value cannot be represented in thousandths of an em, all values
// are moved to full precision storage before v is stored.
func (a *Float64s) Set(i int, v float64) {
	if a.doubles != nil {
		a.doubles[i] = v
		return
	}
	if s, ok := a.toThousandthOfEm(v); ok {
		a.shorts[i] = s
		return
	}
	tracer().Debugf("compact: value %g exceeds range for em-size %g, falling back", v, a.emSize)
	a.expand()
	a.doubles[i] = v
}

func (a *Float64s) toThousandthOfEm(v float64) (int16, bool) {
	scaled := v / a.emSize * toThousandthOfEm
	if math.IsNaN(scaled) || scaled > math.MaxInt16 || scaled < math.MinInt16 {
		return 0, false
	}
	r := math.RoundToEven(scaled)
	if r > math.MaxInt16 || r < math.MinInt16 {
		return 0, false
	}
	return int16(r), true
}

// expand moves all values to full precision storage.
func (a *Float64s) expand() {
	d := make([]float64, len(a.shorts))
	for i := range a.shorts {
		d[i] = a.At(i)
	}
	a.doubles = d
	a.shorts = nil
}

// Values copies the values of the sequence to a new slice.
func (a *Float64s) Values() []float64 {
	v := make([]float64, a.Len())
	for i := range v {
		v[i] = a.At(i)
	}
	return v
}

// IndexOf returns the index of the first value equal to v, or -1.
func (a *Float64s) IndexOf(v float64) int {
	for i := 0; i < a.Len(); i++ {
		if a.At(i) == v {
			return i
		}
	}
	return -1
}

// Contains reports whether a value equal to v is contained in the sequence.
func (a *Float64s) Contains(v float64) bool {
	return a.IndexOf(v) >= 0
}

// Add is not supported for fixed-size sequences.
func (a *Float64s) Add(float64) error {
	return textformat.ErrNotSupported
}

// Insert is not supported for fixed-size sequences.
func (a *Float64s) Insert(int, float64) error {
	return textformat.ErrNotSupported
}

// Remove is not supported for fixed-size sequences.
func (a *Float64s) Remove(float64) (bool, error) {
	return false, textformat.ErrNotSupported
}

// RemoveAt is not supported for fixed-size sequences.
func (a *Float64s) RemoveAt(int) error {
	return textformat.ErrNotSupported
}

func (a *Float64s) String() string {
	mode := "compact"
	if !a.IsCompact() {
		mode = "float64"
	}
	return fmt.Sprintf("Float64s{em=%g, %s, %v}", a.emSize, mode, a.Values())
}
