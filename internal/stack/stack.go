// Package stack provides a LIFO container built on a singly linked list.
package stack

type link[T any] struct {
	item T
	next *link[T]
}

// Stack is a last-in first-out list. The zero value is an empty stack
// ready for use.
type Stack[T any] struct {
	top  *link[T]
	size int
}

// New returns an empty stack.
func New[T any]() *Stack[T] {
	return &Stack[T]{}
}

// Push puts item on top of the stack.
func (s *Stack[T]) Push(item T) {
	s.top = &link[T]{item: item, next: s.top}
	s.size++
}

// Pop removes and returns the top item. ok is false when the stack is
// empty.
func (s *Stack[T]) Pop() (item T, ok bool) {
	if s.top == nil {
		return item, false
	}
	l := s.top
	s.top = l.next
	s.size--
	return l.item, true
}

// Peek returns the top item without removing it.
func (s *Stack[T]) Peek() (item T, ok bool) {
	if s.top == nil {
		return item, false
	}
	return s.top.item, true
}

func (s *Stack[T]) IsEmpty() bool {
	return s.top == nil
}

func (s *Stack[T]) Len() int {
	return s.size
}
