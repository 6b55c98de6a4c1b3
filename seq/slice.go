// Package seq adapts common Go containers to the capability interfaces of
// package ring.
package seq

// Slice is a random-access, writable sequence over a Go slice. Positions are
// indices. Two slices of equal length share the same begin and end
// positions, so positions taken from different slices cannot be told apart.
type Slice[T any] []T

func (s Slice[T]) Begin() int                { return 0 }
func (s Slice[T]) End() int                  { return len(s) }
func (s Slice[T]) Next(i int) int            { return i + 1 }
func (s Slice[T]) Prev(i int) int            { return i - 1 }
func (s Slice[T]) Offset(i, n int) int       { return i + n }
func (s Slice[T]) Distance(from, to int) int { return to - from }
func (s Slice[T]) Len() int                  { return len(s) }
func (s Slice[T]) Get(i int) T               { return s[i] }
func (s Slice[T]) Set(i int, v T)            { s[i] = v }

// String is a read-only random-access sequence over the bytes of a string.
type String string

func (s String) Begin() int                { return 0 }
func (s String) End() int                  { return len(s) }
func (s String) Next(i int) int            { return i + 1 }
func (s String) Prev(i int) int            { return i - 1 }
func (s String) Offset(i, n int) int       { return i + n }
func (s String) Distance(from, to int) int { return to - from }
func (s String) Len() int                  { return len(s) }
func (s String) Get(i int) byte            { return s[i] }

// Single holds exactly one element.
type Single[T any] struct {
	v *T
}

func NewSingle[T any](v T) Single[T] {
	return Single[T]{v: &v}
}

func (s Single[T]) Begin() int                { return 0 }
func (s Single[T]) End() int                  { return 1 }
func (s Single[T]) Next(i int) int            { return i + 1 }
func (s Single[T]) Prev(i int) int            { return i - 1 }
func (s Single[T]) Offset(i, n int) int       { return i + n }
func (s Single[T]) Distance(from, to int) int { return to - from }
func (s Single[T]) Len() int                  { return 1 }
func (s Single[T]) Get(int) T                 { return *s.v }
func (s Single[T]) Set(_ int, v T)            { *s.v = v }

// Empty has no elements.
type Empty[T any] struct{}

func (Empty[T]) Begin() int                { return 0 }
func (Empty[T]) End() int                  { return 0 }
func (Empty[T]) Next(i int) int            { return i + 1 }
func (Empty[T]) Prev(i int) int            { return i - 1 }
func (Empty[T]) Offset(i, n int) int       { return i + n }
func (Empty[T]) Distance(from, to int) int { return to - from }
func (Empty[T]) Len() int                  { return 0 }

func (Empty[T]) Get(int) T {
	panic("seq: Get on an empty sequence")
}
