package avl

import "golang.org/x/exp/constraints"

// Delete removes the pair stored under value and reports whether it was
// found.
func (t *Tree[K, V]) Delete(value V) bool {
	var removed bool
	t.root, removed = remove(t.root, value)
	if removed {
		t.count--
	}
	return removed
}

// remove returns:
// - (n, false) -> value not in subtree, nothing changed
// - (newRoot, true) -> value removed, newRoot may be nil
func remove[K any, V constraints.Ordered](n *node[K, V], value V) (*node[K, V], bool) {
	if n == nil {
		return nil, false
	}

	var removed bool
	switch {
	case value < n.value:
		n.left, removed = remove(n.left, value)
		n = balanceLeft(n)

	case value > n.value:
		n.right, removed = remove(n.right, value)
		n = balanceRight(n)

	case n.left == nil:
		return n.right, true

	case n.right == nil:
		return n.left, true

	default:
		// two children: take over the in-order successor's pair
		n.key, n.value, n.right = deleteMin(n.right)
		n = balanceRight(n)
		removed = true
	}

	n.updateHeight()
	return n, removed
}

// deleteMin unlinks the smallest node of the subtree rooted at n and
// returns its pair together with what is left of the subtree.
func deleteMin[K any, V constraints.Ordered](n *node[K, V]) (K, V, *node[K, V]) {
	if n.left == nil {
		return n.key, n.value, n.right
	}

	var (
		key   K
		value V
	)
	key, value, n.left = deleteMin(n.left)
	n = balanceLeft(n)
	n.updateHeight()
	return key, value, n
}

// balanceLeft fixes a node whose left subtree has shrunk.
func balanceLeft[K any, V constraints.Ordered](n *node[K, V]) *node[K, V] {
	if n.heightDiff() < -1 {
		if n.right.heightDiff() > 0 {
			n.right = rotateRight(n.right)
		}
		n = rotateLeft(n)
	}
	return n
}

// balanceRight fixes a node whose right subtree has shrunk.
func balanceRight[K any, V constraints.Ordered](n *node[K, V]) *node[K, V] {
	if n.heightDiff() > 1 {
		if n.left.heightDiff() < 0 {
			n.left = rotateLeft(n.left)
		}
		n = rotateRight(n)
	}
	return n
}
