package seq

import "gregoryjjb/looper/ring"

// Reversed presents a random-access sequence back to front. Positions are
// indices into the reversed order.
type Reversed[P comparable, T any] struct {
	base ring.RandomSequence[P, T]
}

func Reverse[P comparable, T any](base ring.RandomSequence[P, T]) Reversed[P, T] {
	return Reversed[P, T]{base: base}
}

func (r Reversed[P, T]) Begin() int                { return 0 }
func (r Reversed[P, T]) End() int                  { return r.base.Len() }
func (r Reversed[P, T]) Next(i int) int            { return i + 1 }
func (r Reversed[P, T]) Prev(i int) int            { return i - 1 }
func (r Reversed[P, T]) Offset(i, n int) int       { return i + n }
func (r Reversed[P, T]) Distance(from, to int) int { return to - from }
func (r Reversed[P, T]) Len() int                  { return r.base.Len() }

func (r Reversed[P, T]) Get(i int) T {
	return r.base.Get(r.at(i))
}

// Set writes through to the base sequence, which must be ring.Writable.
func (r Reversed[P, T]) Set(i int, v T) {
	w, ok := r.base.(ring.Writable[P, T])
	if !ok {
		panic("seq: reversed base sequence is read-only")
	}
	w.Set(r.at(i), v)
}

func (r Reversed[P, T]) at(i int) P {
	return r.base.Offset(r.base.End(), -(i + 1))
}
