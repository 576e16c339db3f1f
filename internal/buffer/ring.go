// Package buffer provides a fixed-capacity ring buffer with
// overwrite-oldest semantics. It backs the diagnostics event store:
// once full, every push evicts the single oldest element, so memory
// stays bounded for the lifetime of the session.
package buffer

import "iter"

// Capacity bounds for a ring. Requested capacities outside this range
// are clamped, never rejected.
const (
	MinCapacity     = 16
	MaxCapacity     = 65536
	DefaultCapacity = 2048
)

// Capacity is a validated ring capacity.
type Capacity int

// NewCapacity clamps n into [MinCapacity, MaxCapacity]. A
// non-positive n yields DefaultCapacity.
func NewCapacity(n int) Capacity {
	switch {
	case n <= 0:
		return DefaultCapacity
	case n < MinCapacity:
		return MinCapacity
	case n > MaxCapacity:
		return MaxCapacity
	default:
		return Capacity(n)
	}
}

// Int returns the capacity as a plain int.
func (c Capacity) Int() int { return int(c) }

// Ring is a fixed-capacity circular buffer. The zero value is not
// usable; construct with New. Ring is not safe for concurrent use:
// the collector is its single owner.
type Ring[T any] struct {
	items []T
	head  int // index of the oldest element
	count int
}

// New creates an empty ring with the given capacity.
func New[T any](capacity Capacity) *Ring[T] {
	return &Ring[T]{items: make([]T, capacity.Int())}
}

// Push appends item, evicting the oldest element when full.
func (r *Ring[T]) Push(item T) {
	if r.count == len(r.items) {
		r.items[r.head] = item
		r.head = (r.head + 1) % len(r.items)
		return
	}
	r.items[(r.head+r.count)%len(r.items)] = item
	r.count++
}

// Len returns the number of buffered elements.
func (r *Ring[T]) Len() int { return r.count }

// Capacity returns the fixed capacity.
func (r *Ring[T]) Capacity() int { return len(r.items) }

// IsEmpty reports whether the ring holds no elements.
func (r *Ring[T]) IsEmpty() bool { return r.count == 0 }

// Clear removes all elements. The backing store is zeroed so evicted
// values do not pin memory.
func (r *Ring[T]) Clear() {
	clear(r.items)
	r.head = 0
	r.count = 0
}

// All iterates the buffered elements oldest to newest. The ring must
// not be mutated during iteration.
func (r *Ring[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < r.count; i++ {
			if !yield(r.items[(r.head+i)%len(r.items)]) {
				return
			}
		}
	}
}

// Snapshot returns a copy of the buffered elements oldest to newest.
// The copy is independent of the ring and safe to hold across later
// pushes.
func (r *Ring[T]) Snapshot() []T {
	out := make([]T, 0, r.count)
	for i := 0; i < r.count; i++ {
		out = append(out, r.items[(r.head+i)%len(r.items)])
	}
	return out
}
