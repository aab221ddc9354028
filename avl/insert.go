package avl

import "golang.org/x/exp/constraints"

// Insert stores key under value. It returns true when a new node was
// created and false when value was already present, in which case only the
// stored key is replaced.
func (t *Tree[K, V]) Insert(key K, value V) bool {
	var added bool
	t.root, added = insert(t.root, key, value)
	if added {
		t.count++
	}
	return added
}

// insert returns the possibly new root of the subtree and whether a node
// was added.
func insert[K any, V constraints.Ordered](n *node[K, V], key K, value V) (*node[K, V], bool) {
	if n == nil {
		return newNode(key, value), true
	}

	var added bool
	switch {
	case value == n.value:
		// update only, height and balance are unchanged
		n.key = key
		return n, false

	case value < n.value:
		n.left, added = insert(n.left, key, value)
		if n.heightDiff() > 1 {
			// the new value went under the inside grandchild, raise it first
			if n.left.value < value {
				n.left = rotateLeft(n.left)
			}
			n = rotateRight(n)
		}

	default:
		n.right, added = insert(n.right, key, value)
		if n.heightDiff() < -1 {
			if value < n.right.value {
				n.right = rotateRight(n.right)
			}
			n = rotateLeft(n)
		}
	}

	n.updateHeight()
	return n, added
}
