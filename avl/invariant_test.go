package avl

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/constraints"
)

// checkNode verifies the cached height, the balance rule and the value
// ordering of the subtree rooted at n, returning its height.
func checkNode[K any, V constraints.Ordered](t *testing.T, n *node[K, V], lo, hi *V) int {
	t.Helper()
	if n == nil {
		return 0
	}
	if lo != nil {
		require.Less(t, *lo, n.value)
	}
	if hi != nil {
		require.Less(t, n.value, *hi)
	}
	lh := checkNode(t, n.left, lo, &n.value)
	rh := checkNode(t, n.right, &n.value, hi)
	require.Equal(t, max(lh, rh)+1, n.height, "stale height at %v", n.value)
	require.LessOrEqual(t, lh-rh, 1)
	require.GreaterOrEqual(t, lh-rh, -1)
	return n.height
}

func TestInvariantsUnderChurn(t *testing.T) {
	cases := []struct {
		name string
		seed int64
		span int
	}{
		{"dense", 1, 64},
		{"sparse", 2, 10_000},
		{"tiny", 3, 8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(tc.seed))
			tree := New[int, int]()
			for i := 0; i < 2_000; i++ {
				v := rng.Intn(tc.span)
				if rng.Intn(2) == 0 {
					tree.Delete(v)
				} else {
					tree.Insert(i, v)
				}
				checkNode(t, tree.root, nil, nil)
			}
		})
	}
}

func TestRotations(t *testing.T) {
	// 3 <- 2 <- 1 chain
	top := newNode(0, 3)
	top.left = newNode(1, 2)
	top.left.left = newNode(2, 1)
	top.left.updateHeight()
	top.updateHeight()
	require.Equal(t, 2, top.heightDiff())

	root := rotateRight(top)
	require.Equal(t, 2, root.value)
	require.Equal(t, 1, root.left.value)
	require.Equal(t, 3, root.right.value)
	require.Equal(t, 2, root.height)
	require.Equal(t, 1, root.right.height)
	require.Equal(t, 0, root.heightDiff())

	root = rotateLeft(root)
	require.Equal(t, 3, root.value)
	require.Equal(t, 2, root.left.value)
	require.Equal(t, 1, root.left.left.value)
	require.Equal(t, 3, root.height)
	require.Equal(t, 2, root.heightDiff())
	checkHeights := func(n *node[int, int]) {
		require.Equal(t, 0, height[int, int](nil))
		require.Equal(t, 1, height(n.left.left))
	}
	checkHeights(root)
}

func TestIsBalancedDetectsViolation(t *testing.T) {
	// hand-built chain that Insert would never produce
	tree := New[int, int]()
	tree.root = newNode(0, 1)
	tree.root.right = newNode(1, 2)
	tree.root.right.right = newNode(2, 3)
	tree.root.right.updateHeight()
	tree.root.updateHeight()
	require.False(t, tree.IsBalanced())

	tree.root = rotateLeft(tree.root)
	require.True(t, tree.IsBalanced())
}
