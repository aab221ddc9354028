package bench

import "golang.org/x/exp/constraints"

type bstNode[K any, V constraints.Ordered] struct {
	key         K
	value       V
	left, right *bstNode[K, V]
}

// BST is an unbalanced search tree ordered by value. It is the baseline the
// AVL tree is compared against.
type BST[K any, V constraints.Ordered] struct {
	root  *bstNode[K, V]
	count int
}

func NewBST[K any, V constraints.Ordered]() *BST[K, V] {
	return &BST[K, V]{}
}

func (t *BST[K, V]) Len() int {
	return t.count
}

// Insert adds value with key, or replaces the key of an existing value.
// It returns true if a node was added.
func (t *BST[K, V]) Insert(key K, value V) bool {
	link := &t.root
	for *link != nil {
		n := *link
		switch {
		case value == n.value:
			n.key = key
			return false
		case value < n.value:
			link = &n.left
		default:
			link = &n.right
		}
	}
	*link = &bstNode[K, V]{key: key, value: value}
	t.count++
	return true
}

// Delete removes value, replacing a node with two children by its in-order
// successor.
func (t *BST[K, V]) Delete(value V) bool {
	link := &t.root
	for *link != nil && (*link).value != value {
		if value < (*link).value {
			link = &(*link).left
		} else {
			link = &(*link).right
		}
	}
	n := *link
	if n == nil {
		return false
	}
	t.count--

	switch {
	case n.left == nil:
		*link = n.right
	case n.right == nil:
		*link = n.left
	default:
		succ := &n.right
		for (*succ).left != nil {
			succ = &(*succ).left
		}
		s := *succ
		*succ = s.right
		n.key, n.value = s.key, s.value
	}
	return true
}

// Height is the number of levels, zero when empty.
func (t *BST[K, V]) Height() int {
	return bstHeight(t.root)
}

func bstHeight[K any, V constraints.Ordered](n *bstNode[K, V]) int {
	if n == nil {
		return 0
	}
	return max(bstHeight(n.left), bstHeight(n.right)) + 1
}

// IsBalanced reports whether the subtree heights of every node differ by
// at most one.
func (t *BST[K, V]) IsBalanced() bool {
	_, ok := bstCheck(t.root)
	return ok
}

func bstCheck[K any, V constraints.Ordered](n *bstNode[K, V]) (int, bool) {
	if n == nil {
		return 0, true
	}
	lh, lok := bstCheck(n.left)
	if !lok {
		return 0, false
	}
	rh, rok := bstCheck(n.right)
	if !rok {
		return 0, false
	}
	if lh-rh > 1 || rh-lh > 1 {
		return 0, false
	}
	return max(lh, rh) + 1, true
}
