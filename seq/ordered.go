package seq

import "github.com/google/btree"

// Key is a position in an Ordered sequence: an element, or the end.
type Key[T btree.Ordered] struct {
	v   T
	end bool
}

func (k Key[T]) Value() (T, bool) {
	return k.v, !k.end
}

// Ordered is a read-only bidirectional sequence over the distinct values of
// a btree, in ascending order. Each step is a logarithmic tree lookup.
type Ordered[T btree.Ordered] struct {
	t *btree.BTreeG[T]
}

func NewOrdered[T btree.Ordered](degree int, vs ...T) Ordered[T] {
	t := btree.NewOrderedG[T](degree)
	for _, v := range vs {
		t.ReplaceOrInsert(v)
	}
	return Ordered[T]{t: t}
}

func FromBTree[T btree.Ordered](t *btree.BTreeG[T]) Ordered[T] {
	return Ordered[T]{t: t}
}

func (s Ordered[T]) Begin() Key[T] {
	if v, ok := s.t.Min(); ok {
		return Key[T]{v: v}
	}
	return s.End()
}

func (s Ordered[T]) End() Key[T] {
	return Key[T]{end: true}
}

func (s Ordered[T]) Next(k Key[T]) Key[T] {
	next := s.End()
	s.t.AscendGreaterOrEqual(k.v, func(item T) bool {
		if item == k.v {
			return true
		}
		next = Key[T]{v: item}
		return false
	})
	return next
}

func (s Ordered[T]) Prev(k Key[T]) Key[T] {
	if k.end {
		if v, ok := s.t.Max(); ok {
			return Key[T]{v: v}
		}
		return s.End()
	}

	prev := s.End()
	s.t.DescendLessOrEqual(k.v, func(item T) bool {
		if item == k.v {
			return true
		}
		prev = Key[T]{v: item}
		return false
	})
	return prev
}

func (s Ordered[T]) Get(k Key[T]) T {
	return k.v
}

func (s Ordered[T]) Len() int {
	return s.t.Len()
}

func (s Ordered[T]) Tree() *btree.BTreeG[T] {
	return s.t
}
