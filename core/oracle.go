package core

import (
	"fmt"

	"github.com/google/btree"
)

type oracleItem struct {
	key   string
	value int64
}

func (i oracleItem) less(than oracleItem) bool {
	return i.value < than.value
}

// Oracle mirrors every store in a btree so a tree under test can be
// compared against an independent ordered index.
type Oracle struct {
	degree int
	stores map[string]*btree.BTreeG[oracleItem]
}

func NewOracle(degree int) *Oracle {
	return &Oracle{
		degree: degree,
		stores: make(map[string]*btree.BTreeG[oracleItem]),
	}
}

func (o *Oracle) store(storeKey string) *btree.BTreeG[oracleItem] {
	s, ok := o.stores[storeKey]
	if !ok {
		s = btree.NewG[oracleItem](o.degree, oracleItem.less)
		o.stores[storeKey] = s
	}
	return s
}

// Apply records n and returns whether it inserted a new value or removed
// an existing one, matching Tree.Set and Tree.Remove.
func (o *Oracle) Apply(n *Node) bool {
	s := o.store(n.StoreKey)
	if n.Delete {
		_, found := s.Delete(oracleItem{value: n.Value})
		return found
	}
	_, replaced := s.ReplaceOrInsert(oracleItem{key: n.Key, value: n.Value})
	return !replaced
}

func (o *Oracle) Len(storeKey string) int {
	return o.store(storeKey).Len()
}

// Compare walks tree in order and fails on the first pair that differs
// from the oracle's copy of storeKey.
func (o *Oracle) Compare(storeKey string, tree Tree) error {
	s := o.store(storeKey)
	if int64(s.Len()) != tree.Size() {
		return fmt.Errorf("store %s: size %d; oracle has %d", storeKey, tree.Size(), s.Len())
	}

	var (
		want     []oracleItem
		mismatch error
		i        int
	)
	want = make([]oracleItem, 0, s.Len())
	s.Ascend(func(it oracleItem) bool {
		want = append(want, it)
		return true
	})
	err := tree.Ascend(func(key string, value int64) bool {
		if i >= len(want) {
			mismatch = fmt.Errorf("store %s: extra value %d", storeKey, value)
			return false
		}
		if want[i].value != value || want[i].key != key {
			mismatch = fmt.Errorf("store %s: position %d has %d=%q; oracle has %d=%q",
				storeKey, i, value, key, want[i].value, want[i].key)
			return false
		}
		i++
		return true
	})
	if err != nil {
		return err
	}
	return mismatch
}
