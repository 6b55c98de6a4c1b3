// Package ring implements lazy cyclic views over finite sequences.
//
// A view repeats its underlying sequence either forever (Unbounded) or a
// fixed number of laps (Times). The traversal capability of the underlying
// sequence decides which view type can be built over it: View for forward
// sequences, BidiView for bidirectional ones and RandomView for random-access
// ones. A view never offers more than its sequence supports.
package ring

// Sequence is a finite, forward-traversable sequence. Positions are values of
// type P; End is one past the last element and Begin equals End when the
// sequence is empty.
type Sequence[P comparable, T any] interface {
	Begin() P
	End() P
	Next(p P) P
	Get(p P) T
}

// BidiSequence can also step backwards. Prev(End()) is the last element.
type BidiSequence[P comparable, T any] interface {
	Sequence[P, T]
	Prev(p P) P
}

// RandomSequence supports constant time offsets and distances.
type RandomSequence[P comparable, T any] interface {
	BidiSequence[P, T]
	Offset(p P, n int) P
	Distance(from, to P) int
	Len() int
}

// Sized sequences report their length. Views over them report a size when
// bounded.
type Sized interface {
	Len() int
}

// Writable sequences allow positions to assign elements in place.
type Writable[P comparable, T any] interface {
	Set(p P, v T)
}

type Category int

const (
	CategoryForward Category = iota + 1
	CategoryBidirectional
	CategoryRandomAccess
)

func (c Category) String() string {
	switch c {
	case CategoryForward:
		return "forward"
	case CategoryBidirectional:
		return "bidirectional"
	case CategoryRandomAccess:
		return "random-access"
	default:
		return "unknown"
	}
}

// The read-only wrappers embed the capability interface only, so a Set method
// on the wrapped sequence is not promoted.
type (
	readOnly[P comparable, T any]       struct{ Sequence[P, T] }
	readOnlyBidi[P comparable, T any]   struct{ BidiSequence[P, T] }
	readOnlyRandom[P comparable, T any] struct{ RandomSequence[P, T] }
)

func set[P comparable, T any](s any, p P, v T) {
	w, ok := s.(Writable[P, T])
	expects(ok, "sequence is read-only")
	w.Set(p, v)
}

func isEmpty[P comparable, T any](s Sequence[P, T]) bool {
	return s.Begin() == s.End()
}
