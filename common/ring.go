package common

// Ring is a bounded FIFO. Pushing onto a full ring evicts the oldest value.
type Ring[T any] struct {
	buffer []T
	start  int
	count  int
}

func NewRing[T any](capacity int) Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return Ring[T]{buffer: make([]T, capacity)}
}

func (r *Ring[T]) wrappedIndex(idx int) int {
	l := len(r.buffer)
	for idx >= l {
		idx -= l
	}
	for idx < 0 {
		idx += l
	}
	return idx
}

// Push appends v and reports whether an old value was evicted.
func (r *Ring[T]) Push(v T) bool {
	if len(r.buffer) == 0 {
		r.buffer = make([]T, 1)
	}
	if r.count < len(r.buffer) {
		r.buffer[r.wrappedIndex(r.start+r.count)] = v
		r.count++
		return false
	}
	r.buffer[r.start] = v
	r.start = r.wrappedIndex(r.start + 1)
	return true
}

func (r *Ring[T]) Len() int {
	return r.count
}

func (r *Ring[T]) Cap() int {
	return len(r.buffer)
}

// At returns the i-th value, 0 being the oldest.
func (r *Ring[T]) At(i int) (T, bool) {
	var zero T
	if i < 0 || i >= r.count {
		return zero, false
	}
	return r.buffer[r.wrappedIndex(r.start+i)], true
}

// Newest returns the most recently pushed value.
func (r *Ring[T]) Newest() (T, bool) {
	return r.At(r.count - 1)
}

// Snapshot copies the values out in oldest-to-newest order.
func (r *Ring[T]) Snapshot() []T {
	out := make([]T, r.count)
	for i := range out {
		out[i] = r.buffer[r.wrappedIndex(r.start+i)]
	}
	return out
}

func (r *Ring[T]) Clear() {
	var zero T
	for i := range r.buffer {
		r.buffer[i] = zero
	}
	r.start = 0
	r.count = 0
}
