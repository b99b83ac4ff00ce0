package buffer

// Ring is a fixed-capacity FIFO of samples. Index 0 is the oldest sample.
type Ring struct {
	data []float64
	head int
	n    int
}

// NewRing returns an empty ring holding at most capacity samples. A
// capacity below 1 is raised to 1.
func NewRing(capacity int) *Ring {
	return &Ring{data: make([]float64, max(capacity, 1))}
}

// Len returns the number of stored samples.
func (r *Ring) Len() int { return r.n }

// Cap returns the capacity.
func (r *Ring) Cap() int { return len(r.data) }

// Full reports whether the next Push evicts.
func (r *Ring) Full() bool { return r.n == len(r.data) }

// Push appends x. When the ring is full the oldest sample is dropped and
// returned with evicted set.
func (r *Ring) Push(x float64) (old float64, evicted bool) {
	if r.n == len(r.data) {
		old = r.data[r.head]
		r.data[r.head] = x
		r.head = (r.head + 1) % len(r.data)
		return old, true
	}

	r.data[(r.head+r.n)%len(r.data)] = x
	r.n++
	return 0, false
}

// At returns sample i, 0 being the oldest. It panics when i is out of
// range, like a slice index.
func (r *Ring) At(i int) float64 {
	if i < 0 || i >= r.n {
		panic("buffer: ring index out of range")
	}

	return r.data[(r.head+i)%len(r.data)]
}

// Last returns the newest sample.
func (r *Ring) Last() (float64, bool) {
	if r.n == 0 {
		return 0, false
	}

	return r.At(r.n - 1), true
}

// Samples returns a copy of the contents, oldest first.
func (r *Ring) Samples() []float64 {
	out := make([]float64, r.n)
	r.CopyTo(out)
	return out
}

// CopyTo copies up to len(dst) samples, oldest first, and returns the
// count.
func (r *Ring) CopyTo(dst []float64) int {
	k := min(len(dst), r.n)
	first := min(k, len(r.data)-r.head)
	copy(dst, r.data[r.head:r.head+first])
	copy(dst[first:k], r.data)
	return k
}

// Tail returns a copy of the newest n samples, oldest first.
func (r *Ring) Tail(n int) []float64 {
	n = min(max(n, 0), r.n)
	out := make([]float64, n)
	for i := range out {
		out[i] = r.At(r.n - n + i)
	}

	return out
}

// DropOldest removes up to n samples from the front and returns how many
// were removed.
func (r *Ring) DropOldest(n int) int {
	n = min(max(n, 0), r.n)
	r.head = (r.head + n) % len(r.data)
	r.n -= n
	return n
}

// TrimTo drops the newest samples until at most n remain.
func (r *Ring) TrimTo(n int) {
	if n < r.n {
		r.n = max(n, 0)
	}
}

// SetCapacity resizes the ring, keeping the newest samples that fit.
func (r *Ring) SetCapacity(capacity int) {
	capacity = max(capacity, 1)
	keep := r.Tail(capacity)

	r.data = make([]float64, capacity)
	copy(r.data, keep)
	r.head = 0
	r.n = len(keep)
}

// Clear removes all samples.
func (r *Ring) Clear() {
	r.head = 0
	r.n = 0
}
