package stack_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cosmos/avl-bench/internal/stack"
)

func TestStack_LIFO(t *testing.T) {
	s := stack.New[int]()
	require.True(t, s.IsEmpty())
	require.Equal(t, 0, s.Len())

	for i := 1; i <= 5; i++ {
		s.Push(i)
	}
	require.False(t, s.IsEmpty())
	require.Equal(t, 5, s.Len())

	top, ok := s.Peek()
	require.True(t, ok)
	require.Equal(t, 5, top)
	require.Equal(t, 5, s.Len())

	var popped []int
	for !s.IsEmpty() {
		v, ok := s.Pop()
		require.True(t, ok)
		popped = append(popped, v)
	}
	require.Equal(t, []int{5, 4, 3, 2, 1}, popped)
	require.Equal(t, 0, s.Len())
}

func TestStack_Empty(t *testing.T) {
	var s stack.Stack[string]

	v, ok := s.Pop()
	require.False(t, ok)
	require.Equal(t, "", v)

	v, ok = s.Peek()
	require.False(t, ok)
	require.Equal(t, "", v)

	s.Push("a")
	s.Push("b")
	v, _ = s.Pop()
	require.Equal(t, "b", v)
	s.Push("c")
	v, _ = s.Pop()
	require.Equal(t, "c", v)
	v, _ = s.Pop()
	require.Equal(t, "a", v)
	require.True(t, s.IsEmpty())
}
