package main

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"

	"gregoryjjb/looper/pipe"
	"gregoryjjb/looper/ring"
	"gregoryjjb/looper/seq"
)

var (
	ErrEmptyPlaylist = errors.New("playlist is empty")
	ErrOutOfRange    = errors.New("position out of range")
)

// CircularList is a cursor over a list that repeats a fixed number of times
// or forever. Step counts moves from the first element and may go negative
// on an unbounded list.
type CircularList[T any] struct {
	values []T
	view   *ring.RandomView[int, T]
	pos    ring.RandomPosition[int, T]
	step   int
}

func NewCircularList[T any](vs []T, repeat ring.Bound) (*CircularList[T], error) {
	cl := &CircularList[T]{}
	if err := cl.Replace(vs, repeat); err != nil {
		return nil, err
	}
	return cl, nil
}

// Replace swaps the contents and rewinds to the first element.
func (cl *CircularList[T]) Replace(vs []T, repeat ring.Bound) error {
	values := slices.Clone(vs)
	view, err := ring.NewRandom[int, T](seq.Slice[T](values), repeat)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	cl.values = values
	cl.view = view
	cl.Reset()
	return nil
}

func (cl *CircularList[T]) Reset() {
	cl.pos = cl.view.Begin()
	cl.step = 0
}

// Current returns the element under the cursor, or false once the list is
// exhausted.
func (cl *CircularList[T]) Current() (T, bool) {
	return cl.Peek(0)
}

// Peek returns the element k steps away from the cursor.
func (cl *CircularList[T]) Peek(k int) (T, bool) {
	var zero T
	if !cl.reachable(k, false) {
		return zero, false
	}
	return cl.pos.At(k), true
}

// Move shifts the cursor k steps. A bounded list can be moved onto its end
// but not past it, nor before its first element.
func (cl *CircularList[T]) Move(k int) error {
	if cl.view.Empty() {
		if k == 0 {
			return nil
		}
		return ErrEmptyPlaylist
	}
	if !cl.reachable(k, true) {
		return fmt.Errorf("%w: cannot move %d from step %d", ErrOutOfRange, k, cl.step)
	}

	cl.pos.Advance(k)
	cl.step += k
	return nil
}

// reachable reports whether the step k away from the cursor lies on the
// ring. end allows landing exactly on the end of a bounded ring.
func (cl *CircularList[T]) reachable(k int, end bool) bool {
	if cl.view.Empty() {
		return false
	}
	size, bounded := cl.view.Size()
	if !bounded {
		// Only the step counter can overflow. MinInt has no magnitude.
		if k == math.MinInt {
			return false
		}
		return (k <= 0 || cl.step <= math.MaxInt-k) && (k >= 0 || cl.step >= math.MinInt-k)
	}

	remaining := size - cl.step
	if k < 0 {
		return cl.step+k >= 0
	}
	if end {
		return k <= remaining
	}
	return k < remaining
}

// Values yields the elements from k steps ahead of the cursor onwards. It
// never ends on a non-empty unbounded list.
func (cl *CircularList[T]) Values(k int) iter.Seq[T] {
	return func(yield func(T) bool) {
		if !cl.reachable(k, false) {
			return
		}
		last := cl.view.End()
		for p := cl.pos.Add(k); !p.Equal(last); p.Next() {
			if !yield(p.Value()) {
				return
			}
		}
	}
}

// Window copies up to count elements starting k steps from the cursor.
func (cl *CircularList[T]) Window(k, count int) []T {
	return slices.Collect(pipe.Take(cl.Values(k), count))
}

// Remaining is the number of steps left before the end of a bounded list.
func (cl *CircularList[T]) Remaining() (int, bool) {
	if _, bounded := cl.view.Size(); !bounded {
		return 0, false
	}
	return cl.view.End().Diff(cl.pos), true
}

// Done reports whether a bounded list has been walked to its end.
func (cl *CircularList[T]) Done() bool {
	n, ok := cl.Remaining()
	return ok && n == 0
}

// Lap counts completed passes over the list. Unbounded rings do not track
// laps, so it is derived from the step there and stays zero below step 0.
func (cl *CircularList[T]) Lap() uint64 {
	if _, bounded := cl.view.Size(); bounded || cl.step < 0 || len(cl.values) == 0 {
		return cl.pos.Lap()
	}
	return uint64(cl.step / len(cl.values))
}

func (cl *CircularList[T]) Step() int          { return cl.step }
func (cl *CircularList[T]) Length() int        { return len(cl.values) }
func (cl *CircularList[T]) Repeat() ring.Bound { return cl.view.Bound() }
func (cl *CircularList[T]) Size() (int, bool)  { return cl.view.Size() }
func (cl *CircularList[T]) Items() []T         { return slices.Clone(cl.values) }
