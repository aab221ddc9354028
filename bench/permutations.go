package bench

import (
	"fmt"
	"iter"
	"slices"

	"golang.org/x/exp/constraints"

	"github.com/cosmos/avl-bench/avl"
)

// Permutations yields every ordering of values in lexicographic order of
// their positions, so a sorted input produces sorted output. Each yielded
// slice is a fresh copy.
func Permutations[T any](values []T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		n := len(values)
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		for {
			perm := make([]T, n)
			for i, j := range idx {
				perm[i] = values[j]
			}
			if !yield(perm) {
				return
			}
			if !nextPermutation(idx) {
				return
			}
		}
	}
}

// nextPermutation advances idx to its lexicographic successor, returning
// false once idx is the last permutation.
func nextPermutation(idx []int) bool {
	i := len(idx) - 2
	for i >= 0 && idx[i] >= idx[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(idx) - 1
	for idx[j] <= idx[i] {
		j--
	}
	idx[i], idx[j] = idx[j], idx[i]
	slices.Reverse(idx[i+1:])
	return true
}

// PermutationReport lists the insertion orders of a value set that yield a
// balanced plain BST and those that yield an unbalanced AVL tree.
type PermutationReport[V any] struct {
	Total         int
	BalancedBST   [][]V
	UnbalancedAVL [][]V
}

// ComparePermutations inserts every permutation of values into a BST and
// an AVL tree, keyed by insertion index, and records which orders leave
// each tree balanced. Both trees are emptied by deletion between
// permutations.
func ComparePermutations[V constraints.Ordered](values []V) (PermutationReport[V], error) {
	var report PermutationReport[V]
	bst := NewBST[int, V]()
	tree := avl.New[int, V]()

	for perm := range Permutations(values) {
		report.Total++
		for i, v := range perm {
			bst.Insert(i, v)
			tree.Insert(i, v)
		}
		if bst.IsBalanced() {
			report.BalancedBST = append(report.BalancedBST, perm)
		}
		if !tree.IsBalanced() {
			report.UnbalancedAVL = append(report.UnbalancedAVL, perm)
		}
		for _, v := range perm {
			bst.Delete(v)
			tree.Delete(v)
		}
		if bst.Len() != 0 || !tree.IsEmpty() {
			return report, fmt.Errorf("trees not empty after deleting permutation %v", perm)
		}
	}
	return report, nil
}
