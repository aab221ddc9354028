package avl

import "golang.org/x/exp/constraints"

// Tree holds the root of an AVL tree ordered by V.
type Tree[K any, V constraints.Ordered] struct {
	root  *node[K, V]
	count int
}

// New creates an empty tree.
func New[K any, V constraints.Ordered]() *Tree[K, V] {
	return &Tree[K, V]{}
}

// IsEmpty reports whether the tree holds no pairs.
func (t *Tree[K, V]) IsEmpty() bool {
	return t.root == nil
}

// Len returns the number of pairs in the tree.
func (t *Tree[K, V]) Len() int {
	return t.count
}

// Height returns the height of the root, 0 for an empty tree.
func (t *Tree[K, V]) Height() int {
	return height(t.root)
}

// Min returns the pair holding the smallest value.
func (t *Tree[K, V]) Min() (key K, value V, ok bool) {
	n := t.root
	if n == nil {
		return key, value, false
	}
	for n.left != nil {
		n = n.left
	}
	return n.key, n.value, true
}

// Max returns the pair holding the largest value.
func (t *Tree[K, V]) Max() (key K, value V, ok bool) {
	n := t.root
	if n == nil {
		return key, value, false
	}
	for n.right != nil {
		n = n.right
	}
	return n.key, n.value, true
}
