package ring

import "iter"

// View repeats a forward sequence.
type View[P comparable, T any] struct {
	seq   Sequence[P, T]
	bound Bound
}

func New[P comparable, T any](seq Sequence[P, T], b Bound) *View[P, T] {
	return &View[P, T]{seq: seq, bound: b}
}

func (v *View[P, T]) Begin() Position[P, T] {
	return Position[P, T]{c: start(v.bound, v.seq.Begin(), v.seq.End()), seq: v.seq}
}

// End returns the terminal boundary: the position after the last lap when
// bounded, the sentinel otherwise.
func (v *View[P, T]) End() Position[P, T] {
	return Position[P, T]{c: finish(v.bound, v.seq.Begin(), v.seq.End()), seq: v.seq}
}

func (v *View[P, T]) Done(p Position[P, T]) bool {
	return p.Equal(v.End())
}

func (v *View[P, T]) Size() (int, bool) {
	return size(v.seq, v.bound)
}

func (v *View[P, T]) Empty() bool {
	return empty(v.seq, v.bound)
}

func (v *View[P, T]) Bound() Bound {
	return v.bound
}

func (v *View[P, T]) Base() Sequence[P, T] {
	return v.seq
}

func (v *View[P, T]) Category() Category {
	return CategoryForward
}

func (v *View[P, T]) Positions() iter.Seq[Position[P, T]] {
	return func(yield func(Position[P, T]) bool) {
		last := v.End()
		for p := v.Begin(); !p.Equal(last); p.Next() {
			if !yield(p) {
				return
			}
		}
	}
}

// All yields every element of the ring in order. It never ends for a
// non-empty unbounded ring.
func (v *View[P, T]) All() iter.Seq[T] {
	return values[T](v.Positions())
}

// BidiView repeats a bidirectional sequence.
type BidiView[P comparable, T any] struct {
	seq   BidiSequence[P, T]
	bound Bound
}

func NewBidi[P comparable, T any](seq BidiSequence[P, T], b Bound) *BidiView[P, T] {
	return &BidiView[P, T]{seq: seq, bound: b}
}

func (v *BidiView[P, T]) Begin() BidiPosition[P, T] {
	return BidiPosition[P, T]{c: start(v.bound, v.seq.Begin(), v.seq.End()), seq: v.seq}
}

func (v *BidiView[P, T]) End() BidiPosition[P, T] {
	return BidiPosition[P, T]{c: finish(v.bound, v.seq.Begin(), v.seq.End()), seq: v.seq}
}

func (v *BidiView[P, T]) Done(p BidiPosition[P, T]) bool {
	return p.Equal(v.End())
}

func (v *BidiView[P, T]) Size() (int, bool) {
	return size(v.seq, v.bound)
}

func (v *BidiView[P, T]) Empty() bool {
	return empty[P, T](v.seq, v.bound)
}

func (v *BidiView[P, T]) Bound() Bound {
	return v.bound
}

func (v *BidiView[P, T]) Base() BidiSequence[P, T] {
	return v.seq
}

func (v *BidiView[P, T]) Category() Category {
	return CategoryBidirectional
}

func (v *BidiView[P, T]) Positions() iter.Seq[BidiPosition[P, T]] {
	return func(yield func(BidiPosition[P, T]) bool) {
		last := v.End()
		for p := v.Begin(); !p.Equal(last); p.Next() {
			if !yield(p) {
				return
			}
		}
	}
}

func (v *BidiView[P, T]) All() iter.Seq[T] {
	return values[T](v.Positions())
}

// Backward yields the elements of a bounded ring from last to first.
func (v *BidiView[P, T]) Backward() iter.Seq[T] {
	expects(v.bound.bounded, "backward traversal requires a bounded ring")

	return func(yield func(T) bool) {
		first := v.Begin()
		for p := v.End(); !p.Equal(first); {
			p.Prev()
			if !yield(p.Value()) {
				return
			}
		}
	}
}

// RandomView repeats a random-access sequence. Bounded random views are
// random access themselves. Unbounded ones still accept offsets but have no
// size, distance or ordering since laps are not counted.
type RandomView[P comparable, T any] struct {
	seq   RandomSequence[P, T]
	bound Bound
	size  int
}

// NewRandom fails with an *OverflowError when the total element count of a
// bounded view does not fit in an int.
func NewRandom[P comparable, T any](seq RandomSequence[P, T], b Bound) (*RandomView[P, T], error) {
	n, err := total(b, seq.Len())
	if err != nil {
		return nil, err
	}
	return &RandomView[P, T]{seq: seq, bound: b, size: n}, nil
}

func (v *RandomView[P, T]) Begin() RandomPosition[P, T] {
	return RandomPosition[P, T]{c: start(v.bound, v.seq.Begin(), v.seq.End()), seq: v.seq}
}

func (v *RandomView[P, T]) End() RandomPosition[P, T] {
	return RandomPosition[P, T]{c: finish(v.bound, v.seq.Begin(), v.seq.End()), seq: v.seq}
}

func (v *RandomView[P, T]) Done(p RandomPosition[P, T]) bool {
	return p.Equal(v.End())
}

func (v *RandomView[P, T]) Size() (int, bool) {
	return v.size, v.bound.bounded
}

func (v *RandomView[P, T]) Empty() bool {
	return empty[P, T](v.seq, v.bound)
}

func (v *RandomView[P, T]) Bound() Bound {
	return v.bound
}

func (v *RandomView[P, T]) Base() RandomSequence[P, T] {
	return v.seq
}

func (v *RandomView[P, T]) Category() Category {
	if v.bound.bounded {
		return CategoryRandomAccess
	}
	return CategoryBidirectional
}

// At returns the element k steps from the beginning of the ring.
func (v *RandomView[P, T]) At(k int) T {
	return v.Begin().At(k)
}

func (v *RandomView[P, T]) Positions() iter.Seq[RandomPosition[P, T]] {
	return func(yield func(RandomPosition[P, T]) bool) {
		last := v.End()
		for p := v.Begin(); !p.Equal(last); p.Next() {
			if !yield(p) {
				return
			}
		}
	}
}

func (v *RandomView[P, T]) All() iter.Seq[T] {
	return values[T](v.Positions())
}

func (v *RandomView[P, T]) Backward() iter.Seq[T] {
	expects(v.bound.bounded, "backward traversal requires a bounded ring")

	return func(yield func(T) bool) {
		first := v.Begin()
		for p := v.End(); !p.Equal(first); {
			p.Prev()
			if !yield(p.Value()) {
				return
			}
		}
	}
}

func values[T any, C interface{ Value() T }](positions iter.Seq[C]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for p := range positions {
			if !yield(p.Value()) {
				return
			}
		}
	}
}

func size(s any, b Bound) (int, bool) {
	sized, ok := s.(Sized)
	if !ok || !b.bounded {
		return 0, false
	}

	n, err := total(b, sized.Len())
	if err != nil {
		panic(err)
	}
	return n, true
}

func empty[P comparable, T any](s Sequence[P, T], b Bound) bool {
	if b.bounded && b.n == 0 {
		return true
	}
	return isEmpty(s)
}
