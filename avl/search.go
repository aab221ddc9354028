package avl

// Search returns the key stored with value. ok is false when value is not
// in the tree.
func (t *Tree[K, V]) Search(value V) (key K, ok bool) {
	n := t.root
	for n != nil {
		switch {
		case value < n.value:
			n = n.left
		case value > n.value:
			n = n.right
		default:
			return n.key, true
		}
	}
	return key, false
}

// Contains reports whether value is in the tree.
func (t *Tree[K, V]) Contains(value V) bool {
	_, ok := t.Search(value)
	return ok
}
