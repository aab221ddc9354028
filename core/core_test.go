package core_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/cosmos/avl-bench/core"
	"github.com/cosmos/avl-bench/core/metrics"
)

func TestAVLTree(t *testing.T) {
	tree := core.NewAVLTree()
	added, err := tree.Set("a", 3)
	require.NoError(t, err)
	require.True(t, added)
	added, err = tree.Set("b", 1)
	require.NoError(t, err)
	require.True(t, added)
	added, err = tree.Set("c", 3)
	require.NoError(t, err)
	require.False(t, added)

	key, ok, err := tree.Get(3)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "c", key)
	require.Equal(t, int64(2), tree.Size())
	require.Equal(t, int8(2), tree.Height())
	require.True(t, tree.Balanced())

	h1, v1, err := tree.SaveVersion()
	require.NoError(t, err)
	require.Equal(t, int64(1), v1)
	h2, v2, err := tree.SaveVersion()
	require.NoError(t, err)
	require.Equal(t, int64(2), v2)
	require.Equal(t, h1, h2)

	ok, err = tree.Remove(1)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = tree.Remove(1)
	require.NoError(t, err)
	require.False(t, ok)

	h3, _, err := tree.SaveVersion()
	require.NoError(t, err)
	require.NotEqual(t, h1, h3)
}

func TestOracle(t *testing.T) {
	oracle := core.NewOracle(4)
	tree := core.NewAVLTree()
	nodes := []*core.Node{
		{StoreKey: "s", Key: "x", Value: 5},
		{StoreKey: "s", Key: "y", Value: 2},
		{StoreKey: "s", Key: "z", Value: 5},
		{StoreKey: "s", Value: 2, Delete: true},
		{StoreKey: "s", Value: 9, Delete: true},
	}
	for _, n := range nodes {
		var want bool
		if n.Delete {
			want, _ = tree.Remove(n.Value)
		} else {
			want, _ = tree.Set(n.Key, n.Value)
		}
		require.Equal(t, want, oracle.Apply(n))
	}
	require.Equal(t, 1, oracle.Len("s"))
	require.NoError(t, oracle.Compare("s", tree))

	_, err := tree.Set("w", 7)
	require.NoError(t, err)
	require.Error(t, oracle.Compare("s", tree))

	oracle.Apply(&core.Node{StoreKey: "s", Key: "other", Value: 7})
	err = oracle.Compare("s", tree)
	require.Error(t, err)
	require.Contains(t, err.Error(), "position 1")
}

func TestMultiTree(t *testing.T) {
	mt := core.NewAVLMultiTree("b", "a")
	require.Equal(t, []string{"a", "b"}, mt.StoreKeys())
	_, err := mt.GetTree("c")
	require.Error(t, err)

	a, err := mt.GetTree("a")
	require.NoError(t, err)
	_, err = a.Set("k", 1)
	require.NoError(t, err)

	h1, err := mt.SaveVersions()
	require.NoError(t, err)
	h2, err := mt.SaveVersions()
	require.NoError(t, err)
	require.Equal(t, h1, h2)
	require.Len(t, h1, 32)
}

func newContext(t *testing.T, gens []core.ChangesetGenerator) *core.TreeContext {
	t.Helper()
	return &core.TreeContext{
		Context:    context.Background(),
		Log:        zerolog.Nop(),
		Generators: gens,
		Verify:     true,
	}
}

func TestTreeContext_Build(t *testing.T) {
	gens, err := core.Profile("medium", 42, 5)
	require.NoError(t, err)

	var hashLog bytes.Buffer
	ctx := newContext(t, gens)
	ctx.HashLog = &hashLog
	ctx.HashInterval = 2
	ctx.Metrics = metrics.NewMetrics()
	ctx.MetricLeafCount = prometheus.NewCounter(prometheus.CounterOpts{Name: "test_leaf_count"})
	ctx.MetricTreeSize = prometheus.NewGauge(prometheus.GaugeOpts{Name: "test_tree_size"})
	ctx.MetricsTreeHeight = prometheus.NewGauge(prometheus.GaugeOpts{Name: "test_tree_height"})

	mt := core.NewAVLMultiTree(ctx.StoreKeys()...)
	res, err := ctx.Build(mt)
	require.NoError(t, err)

	require.Equal(t, int64(5), res.Versions)
	require.Equal(t, res.Changes, res.Inserts+res.Updates+res.Deletes)
	require.Equal(t, res.Inserts-res.Deletes, res.Size)
	require.Positive(t, res.Updates)
	require.Len(t, res.Hash, 32)
	require.Equal(t, float64(res.Changes), testutil.ToFloat64(ctx.MetricLeafCount))
	require.Equal(t, float64(res.Size), testutil.ToFloat64(ctx.MetricTreeSize))
	require.Equal(t, float64(res.Height), testutil.ToFloat64(ctx.MetricsTreeHeight))

	lines := strings.Split(strings.TrimSpace(hashLog.String()), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "2|"))
	require.True(t, strings.HasPrefix(lines[1], "4|"))

	ctx.Metrics.Flush()
	require.Equal(t, res.Inserts, ctx.Metrics.Last()["tree.inserts"])
	require.Equal(t, res.Size, ctx.Metrics.Last()["tree.size"])

	// same seed, same state
	again, err := newContext(t, gens).Build(core.NewAVLMultiTree(ctx.StoreKeys()...))
	require.NoError(t, err)
	require.Equal(t, res.Hash, again.Hash)
}

func TestTreeContext_VersionLimit(t *testing.T) {
	ctx := newContext(t, []core.ChangesetGenerator{core.SmallGenerator(1, 10)})
	ctx.VersionLimit = 3
	res, err := ctx.Build(core.NewAVLMultiTree(ctx.StoreKeys()...))
	require.NoError(t, err)
	require.Equal(t, int64(3), res.Versions)
}

func TestTreeContext_Cancelled(t *testing.T) {
	ctx := newContext(t, []core.ChangesetGenerator{core.SmallGenerator(1, 10)})
	cctx, cancel := context.WithCancel(context.Background())
	cancel()
	ctx.Context = cctx
	_, err := ctx.Build(core.NewAVLMultiTree(ctx.StoreKeys()...))
	require.ErrorIs(t, err, context.Canceled)
}

func TestTreeContext_MissingStore(t *testing.T) {
	ctx := newContext(t, []core.ChangesetGenerator{core.SmallGenerator(1, 2)})
	_, err := ctx.Build(core.NewAVLMultiTree("other"))
	require.Error(t, err)
}
