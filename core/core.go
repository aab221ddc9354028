package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/cosmos/avl-bench/core/metrics"
)

var (
	ErrUnbalanced = errors.New("tree out of balance")
	ErrMismatch   = errors.New("tree disagrees with oracle")
)

type TreeContext struct {
	context.Context

	Log          zerolog.Logger
	Generators   []ChangesetGenerator
	VersionLimit int64
	// Verify checks balance and compares every store against a btree
	// oracle after each version.
	Verify       bool
	HashLog      io.Writer
	HashInterval int64

	MetricLeafCount   prometheus.Counter
	MetricTreeSize    prometheus.Gauge
	MetricsTreeHeight prometheus.Gauge

	// optional in-process series, printed at the end of a run
	Metrics *metrics.Metrics
}

// Result summarises a Build.
type Result struct {
	Versions int64
	Changes  int64
	Inserts  int64
	Updates  int64
	Deletes  int64
	Size     int64
	Height   int8
	Hash     []byte
	Duration time.Duration
}

// StoreKeys returns the store names of the context's generators.
func (c *TreeContext) StoreKeys() []string {
	var keys []string
	seen := map[string]bool{}
	for _, g := range c.Generators {
		if !seen[g.StoreKey] {
			seen[g.StoreKey] = true
			keys = append(keys, g.StoreKey)
		}
	}
	return keys
}

func (c *TreeContext) Build(multiTree *NaiveMultiTree) (Result, error) {
	var (
		res    Result
		oracle *Oracle
		cnt    int64
	)
	start := time.Now()
	since := start
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if c.Verify {
		oracle = NewOracle(32)
	}

	var inserts, updates, deletes *metrics.Counter
	var sizeGauge, heightGauge *metrics.Gauge
	if c.Metrics != nil {
		inserts = c.Metrics.NewCounter("tree.inserts")
		updates = c.Metrics.NewCounter("tree.updates")
		deletes = c.Metrics.NewCounter("tree.deletes")
		sizeGauge = c.Metrics.NewGauge("tree.size")
		heightGauge = c.Metrics.NewGauge("tree.height")
	}

	itr, err := NewChangesetIterators(c.Generators)
	if err != nil {
		return res, err
	}

	for ; itr.Valid(); err = itr.Next() {
		if err != nil {
			return res, err
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		changeset := itr.GetChangeset()
		version := changeset.Version

		if c.VersionLimit > 0 && version > c.VersionLimit {
			break
		}

		for _, n := range changeset.Nodes {
			cnt++
			if cnt%100_000 == 0 {
				c.Log.Info().Msgf("processed %s changes in %s; %s changes/s; version=%d",
					humanize.Comma(cnt),
					time.Since(since),
					humanize.Comma(int64(100_000/time.Since(since).Seconds())),
					version)
				since = time.Now()
			}
			if c.MetricLeafCount != nil {
				c.MetricLeafCount.Inc()
			}

			if n.Block != version {
				return res, fmt.Errorf("expected block %d; got %d", version, n.Block)
			}
			tree, err := multiTree.GetTree(n.StoreKey)
			if err != nil {
				return res, err
			}
			if oracle != nil {
				oracle.Apply(n)
			}

			if !n.Delete {
				added, err := tree.Set(n.Key, n.Value)
				if err != nil {
					return res, err
				}
				if added {
					res.Inserts++
					if inserts != nil {
						inserts.Inc()
					}
				} else {
					res.Updates++
					if updates != nil {
						updates.Inc()
					}
				}
			} else {
				ok, err := tree.Remove(n.Value)
				if err != nil {
					return res, err
				}
				if !ok {
					return res, fmt.Errorf("failed to remove value %d; store %s; version %d", n.Value, n.StoreKey, n.Block)
				}
				res.Deletes++
				if deletes != nil {
					deletes.Inc()
				}
			}
		}

		hash, err := multiTree.SaveVersions()
		if err != nil {
			return res, err
		}
		res.Hash = hash
		res.Versions = version

		var size int64
		var height int8
		for _, k := range multiTree.StoreKeys() {
			tree := multiTree.Trees[k]
			size += tree.Size()
			height = max(height, tree.Height())
			if !c.Verify {
				continue
			}
			if !tree.Balanced() {
				return res, fmt.Errorf("store %s; version %d: %w", k, version, ErrUnbalanced)
			}
			if err := oracle.Compare(k, tree); err != nil {
				return res, fmt.Errorf("version %d: %w: %w", version, ErrMismatch, err)
			}
		}
		res.Size, res.Height = size, height
		if c.MetricTreeSize != nil {
			c.MetricTreeSize.Set(float64(size))
		}
		if c.MetricsTreeHeight != nil {
			c.MetricsTreeHeight.Set(float64(height))
		}
		if sizeGauge != nil {
			sizeGauge.Set(size)
			heightGauge.Set(int64(height))
		}

		if c.HashLog != nil && c.HashInterval > 0 && version%c.HashInterval == 0 {
			if _, err = fmt.Fprintf(c.HashLog, "%d|%x\n", version, hash); err != nil {
				return res, err
			}
		}
		c.Log.Debug().
			Int64("version", version).
			Int("changes", len(changeset.Nodes)).
			Int64("size", size).
			Int8("height", height).
			Msg("committed version")
	}

	res.Changes = cnt
	res.Duration = time.Since(start)
	c.Log.Info().
		Int64("versions", res.Versions).
		Str("changes", humanize.Comma(res.Changes)).
		Int64("size", res.Size).
		Int8("height", res.Height).
		Dur("duration", res.Duration).
		Msgf("build complete; hash=%x", res.Hash)
	return res, nil
}
