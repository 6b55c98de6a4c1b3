// Package circularbuffer keeps the most recent values pushed into it.
package circularbuffer

import (
	"iter"
	"sync"

	"gregoryjjb/looper/ring"
	"gregoryjjb/looper/seq"
)

type CircularBuffer[T any] struct {
	values   []T
	position int
	full     bool
	mu       sync.Mutex
}

// New returns a buffer holding at most size values. A buffer of size zero
// drops everything pushed into it.
func New[T any](size int) *CircularBuffer[T] {
	v := make([]T, max(size, 0))

	return &CircularBuffer[T]{
		values:   v,
		position: 0,
	}
}

func (cb *CircularBuffer[T]) Push(element T) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if len(cb.values) == 0 {
		return
	}

	cb.values[cb.position] = element
	cb.position++

	if cb.position >= len(cb.values) {
		cb.position = 0
		cb.full = true
	}
}

func (cb *CircularBuffer[T]) Len() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.len()
}

func (cb *CircularBuffer[T]) Cap() int {
	return len(cb.values)
}

// Each iterates over all elements in the buffer in the order they were inserted
func (cb *CircularBuffer[T]) Each(fn func(T)) {
	for _, v := range cb.Snapshot() {
		fn(v)
	}
}

// All yields a snapshot of the buffer, oldest first.
func (cb *CircularBuffer[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range cb.Snapshot() {
			if !yield(v) {
				return
			}
		}
	}
}

// Snapshot copies the buffer contents, oldest first.
func (cb *CircularBuffer[T]) Snapshot() []T {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	n := cb.len()
	out := make([]T, 0, n)
	if n == 0 {
		return out
	}

	oldest := 0
	if cb.full {
		oldest = cb.position
	}

	// Two laps are enough for any window that starts inside the first one.
	view, err := ring.NewRandom[int, T](seq.Slice[T](cb.values), ring.Times(2))
	if err != nil {
		panic(err)
	}
	start := view.Begin().Add(oldest)
	stop := start.Add(n)
	for p := start; !p.Equal(stop); p.Next() {
		out = append(out, p.Value())
	}
	return out
}

func (cb *CircularBuffer[T]) len() int {
	if cb.full {
		return len(cb.values)
	}
	return cb.position
}
