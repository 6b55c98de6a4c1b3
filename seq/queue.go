package seq

import "github.com/eapache/queue"

// Queue is a read-only random-access sequence over an eapache/queue ring
// buffer, oldest element first. Every element must hold a T.
type Queue[T any] struct {
	q *queue.Queue
}

func NewQueue[T any](vs ...T) Queue[T] {
	q := queue.New()
	for _, v := range vs {
		q.Add(v)
	}
	return Queue[T]{q: q}
}

func FromQueue[T any](q *queue.Queue) Queue[T] {
	return Queue[T]{q: q}
}

func (s Queue[T]) Begin() int                { return 0 }
func (s Queue[T]) End() int                  { return s.q.Length() }
func (s Queue[T]) Next(i int) int            { return i + 1 }
func (s Queue[T]) Prev(i int) int            { return i - 1 }
func (s Queue[T]) Offset(i, n int) int       { return i + n }
func (s Queue[T]) Distance(from, to int) int { return to - from }
func (s Queue[T]) Len() int                  { return s.q.Length() }
func (s Queue[T]) Get(i int) T               { return s.q.Get(i).(T) }

func (s Queue[T]) Queue() *queue.Queue {
	return s.q
}
