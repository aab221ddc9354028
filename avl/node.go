package avl

import "golang.org/x/exp/constraints"

type node[K any, V constraints.Ordered] struct {
	key    K
	value  V
	left   *node[K, V]
	right  *node[K, V]
	height int
}

func newNode[K any, V constraints.Ordered](key K, value V) *node[K, V] {
	return &node[K, V]{key: key, value: value, height: 1}
}

// height of an empty subtree is 0, a leaf is 1.
func height[K any, V constraints.Ordered](n *node[K, V]) int {
	if n == nil {
		return 0
	}
	return n.height
}

// updateHeight MUST be called after any change to n's children and before
// n is handed back to its parent.
func (n *node[K, V]) updateHeight() {
	n.height = max(height(n.left), height(n.right)) + 1
}

// heightDiff is positive when n is left heavy, negative when right heavy.
func (n *node[K, V]) heightDiff() int {
	return height(n.left) - height(n.right)
}

/*
rotateRight raises top's left child:

	    top          p
	   /   \        / \
	  p     z  =>  x   top
	 / \              /   \
	x   y            y     z
*/
func rotateRight[K any, V constraints.Ordered](top *node[K, V]) *node[K, V] {
	toRaise := top.left
	top.left = toRaise.right
	toRaise.right = top

	top.updateHeight()
	toRaise.updateHeight()
	return toRaise
}

// rotateLeft is the mirror of rotateRight, raising top's right child.
func rotateLeft[K any, V constraints.Ordered](top *node[K, V]) *node[K, V] {
	toRaise := top.right
	top.right = toRaise.left
	toRaise.left = top

	top.updateHeight()
	toRaise.updateHeight()
	return toRaise
}
