package seq

import "container/list"

// List is a bidirectional, writable sequence over a container/list whose
// elements hold values of type T. The end position is nil.
type List[T any] struct {
	l *list.List
}

func NewList[T any](vs ...T) List[T] {
	l := list.New()
	for _, v := range vs {
		l.PushBack(v)
	}
	return List[T]{l: l}
}

func FromList[T any](l *list.List) List[T] {
	return List[T]{l: l}
}

func (s List[T]) Begin() *list.Element { return s.l.Front() }
func (s List[T]) End() *list.Element   { return nil }
func (s List[T]) Len() int             { return s.l.Len() }

func (s List[T]) Next(e *list.Element) *list.Element {
	return e.Next()
}

func (s List[T]) Prev(e *list.Element) *list.Element {
	if e == nil {
		return s.l.Back()
	}
	return e.Prev()
}

func (s List[T]) Get(e *list.Element) T {
	return e.Value.(T)
}

func (s List[T]) Set(e *list.Element, v T) {
	e.Value = v
}

// List returns the wrapped list.
func (s List[T]) List() *list.List {
	return s.l
}

// Node is an element of a ForwardList.
type Node[T any] struct {
	Value T
	next  *Node[T]
}

// ForwardList is a singly linked, forward-only sequence. It does not track
// its length.
type ForwardList[T any] struct {
	head *Node[T]
}

func NewForwardList[T any](vs ...T) *ForwardList[T] {
	f := &ForwardList[T]{}
	for i := len(vs) - 1; i >= 0; i-- {
		f.PushFront(vs[i])
	}
	return f
}

func (f *ForwardList[T]) PushFront(v T) {
	f.head = &Node[T]{Value: v, next: f.head}
}

func (f *ForwardList[T]) Begin() *Node[T]          { return f.head }
func (f *ForwardList[T]) End() *Node[T]            { return nil }
func (f *ForwardList[T]) Next(n *Node[T]) *Node[T] { return n.next }
func (f *ForwardList[T]) Get(n *Node[T]) T         { return n.Value }
func (f *ForwardList[T]) Set(n *Node[T], v T)      { n.Value = v }
