package span

// Rider is a cursor into a span vector. It remembers the span it is
// positioned on, making forward moves cheap.
//
// A rider must be re-positioned with At after its vector has been modified.
type Rider[T any] struct {
	vector *Vector[T]
	index  int // index of the current span; vector.Count() if beyond the end
	start  int // offset of the current span's start
	cp     int // current position
}

// NewRider creates a rider positioned at offset 0.
func NewRider[T any](v *Vector[T]) *Rider[T] {
	r := &Rider[T]{vector: v}
	r.At(0)
	return r
}

// At positions the rider at offset cp. It returns false if cp lies beyond the
// end of the vector; the rider then reports the vector's default value.
func (r *Rider[T]) At(cp int) bool {
	if cp < 0 {
		cp = 0
	}
	if r.index > r.vector.Count() || cp < r.start {
		r.index, r.start = 0, 0
	}
	for r.index < r.vector.Count() {
		l := r.vector.spans[r.index].Length
		if cp < r.start+l {
			r.cp = cp
			return true
		}
		r.start += l
		r.index++
	}
	r.cp = cp
	return false
}

// CurrentValue returns the value of the span the rider is positioned on.
func (r *Rider[T]) CurrentValue() T {
	if r.index >= r.vector.Count() {
		return r.vector.def
	}
	return r.vector.spans[r.index].Value
}

// CurrentSpanStart returns the offset at which the current span starts.
// Beyond the end of the vector this is the vector's total length.
func (r *Rider[T]) CurrentSpanStart() int {
	return r.start
}

// CurrentPosition returns the offset the rider is positioned at.
func (r *Rider[T]) CurrentPosition() int {
	return r.cp
}

// SpanIndex returns the index of the current span.
func (r *Rider[T]) SpanIndex() int {
	return r.index
}

// Length returns the number of offsets from the current position to the end
// of the current span. Beyond the end of the vector it returns 0.
func (r *Rider[T]) Length() int {
	if r.index >= r.vector.Count() {
		return 0
	}
	return r.start + r.vector.spans[r.index].Length - r.cp
}
