package avl

import "golang.org/x/exp/constraints"

// IsBalanced reports whether every node satisfies the AVL height rule.
// Insert and Delete keep the tree balanced on their own; this is a
// diagnostic for tests and the bench harness.
func (t *Tree[K, V]) IsBalanced() bool {
	if t.IsEmpty() {
		return true
	}
	return isBalanced(t.root)
}

// internal: stops at the first node out of balance
func isBalanced[K any, V constraints.Ordered](n *node[K, V]) bool {
	if n == nil {
		return true
	}
	if d := n.heightDiff(); d > 1 || d < -1 {
		return false
	}
	return isBalanced(n.left) && isBalanced(n.right)
}
