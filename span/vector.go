/*
Package span maps ranges of offsets to values.

A Vector is a sequence of spans, each one having a length and a value.
Spans are contiguous and start at offset 0; a span's start is the sum of
the lengths of all preceding spans. Ranges which have never been set carry
the vector's default value.

A Rider is a cursor into a vector, positioned at an offset.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/
package span

import (
	"fmt"
	"slices"
	"strings"
)

// Span is a range of offsets carrying a value.
type Span[T any] struct {
	Length int
	Value  T
}

// Vector is an ordered sequence of non-overlapping, contiguous spans.
type Vector[T any] struct {
	spans []Span[T]
	def   T
	equal func(a, b T) bool
	total int
}

// NewVector creates an empty vector. Ranges not covered by an explicit Set
// carry value def. equal decides whether neighbouring spans may be merged;
// if it is nil, spans will never be merged.
func NewVector[T any](def T, equal func(a, b T) bool) *Vector[T] {
	return &Vector[T]{def: def, equal: equal}
}

// Default returns the default value of the vector.
func (v *Vector[T]) Default() T {
	return v.def
}

// Count returns the number of spans.
func (v *Vector[T]) Count() int {
	return len(v.spans)
}

// At returns the i-th span.
func (v *Vector[T]) At(i int) Span[T] {
	return v.spans[i]
}

// TotalLength is the sum of the lengths of all spans.
func (v *Vector[T]) TotalLength() int {
	return v.total
}

// Spans returns a copy of the spans of v.
func (v *Vector[T]) Spans() []Span[T] {
	return slices.Clone(v.spans)
}

// Append adds a span at the end of the vector. Spans of length <= 0 are ignored.
func (v *Vector[T]) Append(length int, value T) {
	if length <= 0 {
		return
	}
	v.spans = append(v.spans, Span[T]{Length: length, Value: value})
	v.total += length
	v.coalesce(len(v.spans) - 1)
}

// Set assigns value to the range [first, first+length). If first lies beyond
// the end of the vector, the gap is filled with the default value.
func (v *Vector[T]) Set(first, length int, value T) {
	if first < 0 || length <= 0 {
		return
	}
	if first > v.total {
		v.Append(first-v.total, v.def)
	}
	i := v.split(first)
	j := len(v.spans)
	if first+length < v.total {
		j = v.split(first + length)
	}
	removed := 0
	for _, s := range v.spans[i:j] {
		removed += s.Length
	}
	v.spans = slices.Replace(v.spans, i, j, Span[T]{Length: length, Value: value})
	v.total += length - removed
	v.coalesce(i)
}

// Insert opens a span of length at offset pos, moving all following spans
// towards the end. If pos lies beyond the end of the vector, the gap is filled
// with the default value.
func (v *Vector[T]) Insert(pos, length int, value T) {
	if pos < 0 || length <= 0 {
		return
	}
	if pos > v.total {
		v.Append(pos-v.total, v.def)
	}
	i := v.split(pos)
	v.spans = slices.Insert(v.spans, i, Span[T]{Length: length, Value: value})
	v.total += length
	v.coalesce(i)
}

// Delete removes the range [first, first+length), moving all following spans
// towards the start.
func (v *Vector[T]) Delete(first, length int) {
	if first < 0 || length <= 0 || first >= v.total {
		return
	}
	length = min(length, v.total-first)
	i := v.split(first)
	j := len(v.spans)
	if first+length < v.total {
		j = v.split(first + length)
	}
	v.spans = slices.Delete(v.spans, i, j)
	v.total -= length
	v.coalesce(i)
}

// split makes sure a span starts at offset pos and returns the index of that
// span. pos must not be larger than the total length; if it is equal to the
// total length, the number of spans is returned.
func (v *Vector[T]) split(pos int) int {
	start := 0
	for i, s := range v.spans {
		if pos == start {
			return i
		}
		if pos < start+s.Length {
			left := Span[T]{Length: pos - start, Value: s.Value}
			right := Span[T]{Length: start + s.Length - pos, Value: s.Value}
			v.spans = slices.Insert(v.spans, i+1, right)
			v.spans[i] = left
			return i + 1
		}
		start += s.Length
	}
	return len(v.spans)
}

// coalesce merges span i with equal neighbours.
func (v *Vector[T]) coalesce(i int) {
	if v.equal == nil || i < 0 || i >= len(v.spans) {
		return
	}
	if i+1 < len(v.spans) && v.equal(v.spans[i].Value, v.spans[i+1].Value) {
		v.spans[i].Length += v.spans[i+1].Length
		v.spans = slices.Delete(v.spans, i+1, i+2)
	}
	if i > 0 && v.equal(v.spans[i-1].Value, v.spans[i].Value) {
		v.spans[i-1].Length += v.spans[i].Length
		v.spans = slices.Delete(v.spans, i, i+1)
	}
}

func (v *Vector[T]) String() string {
	var b strings.Builder
	b.WriteString("[")
	for i, s := range v.spans {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%d:%v", s.Length, s.Value)
	}
	b.WriteString("]")
	return b.String()
}
