package core

import (
	"encoding/hex"
	"fmt"
	"math/rand"
)

// Node is a single change applied to a store's tree. The tree is ordered
// by Value; Key is the payload stored with it. Deletes carry only Value.
type Node struct {
	StoreKey string
	Block    int64
	Key      string
	Value    int64
	Delete   bool
}

// Changeset holds every change of one version, in application order.
type Changeset struct {
	Version int64
	Nodes   []*Node
}

type ChangesetGenerator struct {
	StoreKey  string
	Seed      int64
	KeyMean   int
	KeyStdDev int
	// ValueSpace bounds generated values to [0, ValueSpace). Zero means
	// values are handed out in ascending order instead of at random.
	ValueSpace       int64
	InitialSize      int
	FinalSize        int
	Versions         int
	ChangePerVersion int
	DeleteFraction   float64
}

func (c ChangesetGenerator) validate() error {
	if c.FinalSize < c.InitialSize {
		return fmt.Errorf("final size must be greater than initial size")
	}
	if c.Versions < 1 {
		return fmt.Errorf("versions must be at least 1; got %d", c.Versions)
	}
	if c.DeleteFraction < 0 || c.DeleteFraction > 1 {
		return fmt.Errorf("delete fraction must be within [0, 1]; got %f", c.DeleteFraction)
	}
	if c.ValueSpace < 0 {
		return fmt.Errorf("value space must not be negative")
	}
	if c.ValueSpace != 0 && c.ValueSpace < 2*int64(c.FinalSize) {
		return fmt.Errorf("value space %d too small for final size %d", c.ValueSpace, c.FinalSize)
	}
	return nil
}

func (c ChangesetGenerator) Iterator() (*ChangesetIterator, error) {
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("store %s: %w", c.StoreKey, err)
	}

	itr := &ChangesetIterator{
		gen:  c,
		rand: rand.New(rand.NewSource(c.Seed)),
		live: map[int64]struct{}{},
	}
	if c.Versions > 1 {
		itr.createsPerVersion = (c.FinalSize - c.InitialSize) / (c.Versions - 1)
	}

	err := itr.Next()
	return itr, err
}

type ChangesetIterator struct {
	changeset *Changeset
	version   int64

	rand              *rand.Rand
	gen               ChangesetGenerator
	values            []int64
	live              map[int64]struct{}
	nextAscending     int64
	createsPerVersion int
}

func (itr *ChangesetIterator) nextVersion() {
	itr.version++
	cs := &Changeset{Version: itr.version}

	deletes := int(itr.gen.DeleteFraction * float64(itr.gen.ChangePerVersion))
	updates := itr.gen.ChangePerVersion - deletes
	// values removed this version may not be recreated in it, otherwise the
	// shuffle below could order the create ahead of the delete
	removed := map[int64]struct{}{}

	// only delete and update past version 1
	if itr.version > 1 {
		for i := 0; i < deletes && len(itr.values) > 0; i++ {
			j := itr.rand.Intn(len(itr.values))
			v := itr.values[j]
			itr.values[j] = itr.values[len(itr.values)-1]
			itr.values = itr.values[:len(itr.values)-1]
			delete(itr.live, v)
			removed[v] = struct{}{}

			cs.Nodes = append(cs.Nodes, &Node{
				StoreKey: itr.gen.StoreKey,
				Block:    itr.version,
				Value:    v,
				Delete:   true,
			})
		}

		for i := 0; i < updates && len(itr.values) > 0; i++ {
			j := itr.rand.Intn(len(itr.values))
			cs.Nodes = append(cs.Nodes, &Node{
				StoreKey: itr.gen.StoreKey,
				Block:    itr.version,
				Key:      itr.genKey(),
				Value:    itr.values[j],
			})
		}
	}

	var creates int
	if itr.version == 1 {
		creates = itr.gen.InitialSize
	} else {
		creates = itr.createsPerVersion + len(removed)
	}
	if room := itr.gen.FinalSize - len(itr.values); creates > room {
		creates = room
	}
	for i := 0; i < creates; i++ {
		v := itr.freshValue(removed)
		itr.values = append(itr.values, v)
		itr.live[v] = struct{}{}
		cs.Nodes = append(cs.Nodes, &Node{
			StoreKey: itr.gen.StoreKey,
			Block:    itr.version,
			Key:      itr.genKey(),
			Value:    v,
		})
	}

	if itr.gen.ValueSpace != 0 {
		itr.rand.Shuffle(len(cs.Nodes), func(i, j int) {
			cs.Nodes[i], cs.Nodes[j] = cs.Nodes[j], cs.Nodes[i]
		})
	}
	itr.changeset = cs
}

func (itr *ChangesetIterator) freshValue(removed map[int64]struct{}) int64 {
	if itr.gen.ValueSpace == 0 {
		itr.nextAscending++
		return itr.nextAscending
	}
	for {
		v := itr.rand.Int63n(itr.gen.ValueSpace)
		if _, ok := itr.live[v]; ok {
			continue
		}
		if _, ok := removed[v]; ok {
			continue
		}
		return v
	}
}

func (itr *ChangesetIterator) Next() error {
	if itr.version == int64(itr.gen.Versions) {
		itr.changeset = nil
		return nil
	}
	itr.nextVersion()
	return nil
}

func (itr *ChangesetIterator) Valid() bool {
	return itr.changeset != nil
}

func (itr *ChangesetIterator) GetChangeset() *Changeset {
	return itr.changeset
}

// Live returns the number of values present after the current version.
func (itr *ChangesetIterator) Live() int {
	return len(itr.values)
}

func (itr *ChangesetIterator) genKey() string {
	length := int(itr.rand.NormFloat64()*float64(itr.gen.KeyStdDev) + float64(itr.gen.KeyMean))
	// retry closer to the mean rather than clamping, clamping skews the
	// distribution towards 1
	if length < 1 {
		length = int(itr.rand.NormFloat64()*float64(itr.gen.KeyMean/3) + float64(itr.gen.KeyMean))
		if length < 1 {
			length = 1
		}
	}
	b := make([]byte, length)
	itr.rand.Read(b)
	return hex.EncodeToString(b)
}

// ChangesetIterators merges several generators version by version.
type ChangesetIterators struct {
	iterators []*ChangesetIterator
	changeset *Changeset
}

func NewChangesetIterators(gens []ChangesetGenerator) (*ChangesetIterators, error) {
	if len(gens) == 0 {
		return nil, fmt.Errorf("must provide at least one generator")
	}

	var iterators []*ChangesetIterator
	version := gens[0].Versions
	for _, gen := range gens {
		if gen.Versions != version {
			return nil, fmt.Errorf("all generators must have the same number of versions")
		}
		itr, err := gen.Iterator()
		if err != nil {
			return nil, err
		}
		iterators = append(iterators, itr)
	}

	itr := &ChangesetIterators{iterators: iterators}
	itr.merge()
	return itr, nil
}

// merge combines the current changeset of every iterator.
func (itr *ChangesetIterators) merge() {
	var merged *Changeset
	for _, it := range itr.iterators {
		if !it.Valid() {
			continue
		}
		cs := it.GetChangeset()
		if merged == nil {
			merged = &Changeset{Version: cs.Version}
		}
		merged.Nodes = append(merged.Nodes, cs.Nodes...)
	}
	itr.changeset = merged
}

func (itr *ChangesetIterators) Next() error {
	for _, it := range itr.iterators {
		if err := it.Next(); err != nil {
			return err
		}
	}
	itr.merge()
	return nil
}

func (itr *ChangesetIterators) Valid() bool {
	return itr.changeset != nil
}

func (itr *ChangesetIterators) GetChangeset() *Changeset {
	return itr.changeset
}
