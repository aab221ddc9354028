package avl

import (
	"iter"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"

	"github.com/cosmos/avl-bench/internal/stack"
)

// Order selects the sequence in which Traverse visits nodes.
type Order string

const (
	PreOrder  Order = "pre"
	InOrder   Order = "in"
	PostOrder Order = "post"
)

// ErrInvalidOrder is returned for a traversal order other than pre, in or
// post.
var ErrInvalidOrder = errors.New("unknown traversal order")

func (o Order) valid() bool {
	switch o {
	case PreOrder, InOrder, PostOrder:
		return true
	}
	return false
}

// ParseOrder converts s into an Order.
func ParseOrder(s string) (Order, error) {
	o := Order(s)
	if !o.valid() {
		return "", errors.Wrapf(ErrInvalidOrder, "%q", s)
	}
	return o, nil
}

// Pair is a single key/value pair produced by a traversal.
type Pair[K any, V any] struct {
	Key   K
	Value V
}

type entryKind uint8

const (
	entryNode entryKind = iota // subtree still to be expanded
	entryPair                  // pair ready to be emitted
)

type entry[K any, V constraints.Ordered] struct {
	kind  entryKind
	node  *node[K, V]
	key   K
	value V
}

// Traverse returns the pairs of the tree in the given order. The order is
// validated before the tree is touched. Each range over the returned
// sequence walks the tree as it is at that moment; modifying the tree while
// a walk is in progress gives an unspecified sequence.
func (t *Tree[K, V]) Traverse(order Order) (iter.Seq2[K, V], error) {
	if !order.valid() {
		return nil, errors.Wrapf(ErrInvalidOrder, "%q", order)
	}

	return func(yield func(K, V) bool) {
		s := stack.New[entry[K, V]]()
		if t.root != nil {
			s.Push(entry[K, V]{kind: entryNode, node: t.root})
		}

		for !s.IsEmpty() {
			e, _ := s.Pop()
			if e.kind == entryPair {
				if !yield(e.key, e.value) {
					return
				}
				continue
			}

			// pushed in reverse of the order they must come back out
			n := e.node
			pair := entry[K, V]{kind: entryPair, key: n.key, value: n.value}
			if order == PostOrder {
				s.Push(pair)
			}
			if n.right != nil {
				s.Push(entry[K, V]{kind: entryNode, node: n.right})
			}
			if order == InOrder {
				s.Push(pair)
			}
			if n.left != nil {
				s.Push(entry[K, V]{kind: entryNode, node: n.left})
			}
			if order == PreOrder {
				s.Push(pair)
			}
		}
	}, nil
}

// Pairs collects a full traversal into a slice.
func (t *Tree[K, V]) Pairs(order Order) ([]Pair[K, V], error) {
	seq, err := t.Traverse(order)
	if err != nil {
		return nil, err
	}
	pairs := make([]Pair[K, V], 0, t.count)
	for k, v := range seq {
		pairs = append(pairs, Pair[K, V]{Key: k, Value: v})
	}
	return pairs, nil
}
