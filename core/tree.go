package core

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/cosmos/avl-bench/avl"
)

type Tree interface {
	Set(key string, value int64) (bool, error)
	Get(value int64) (string, bool, error)
	Remove(value int64) (bool, error)
	SaveVersion() ([]byte, int64, error)
	Ascend(fn func(key string, value int64) bool) error
	Size() int64
	Height() int8
	Balanced() bool
}

type MultiTree interface {
	GetTree(key string) (Tree, error)
	SaveVersions() ([]byte, error)
}

// AVLTree adapts avl.Tree to Tree. A version hash is the sha256 of the
// in-order pairs.
type AVLTree struct {
	tree    *avl.Tree[string, int64]
	version int64
}

func NewAVLTree() *AVLTree {
	return &AVLTree{tree: avl.New[string, int64]()}
}

func (t *AVLTree) Set(key string, value int64) (bool, error) {
	return t.tree.Insert(key, value), nil
}

func (t *AVLTree) Get(value int64) (string, bool, error) {
	key, ok := t.tree.Search(value)
	return key, ok, nil
}

func (t *AVLTree) Remove(value int64) (bool, error) {
	return t.tree.Delete(value), nil
}

func (t *AVLTree) Ascend(fn func(key string, value int64) bool) error {
	seq, err := t.tree.Traverse(avl.InOrder)
	if err != nil {
		return err
	}
	for k, v := range seq {
		if !fn(k, v) {
			break
		}
	}
	return nil
}

func (t *AVLTree) SaveVersion() ([]byte, int64, error) {
	h := sha256.New()
	var buf [8]byte
	err := t.Ascend(func(key string, value int64) bool {
		binary.BigEndian.PutUint64(buf[:], uint64(value))
		h.Write(buf[:])
		h.Write([]byte(key))
		return true
	})
	if err != nil {
		return nil, 0, err
	}
	t.version++
	return h.Sum(nil), t.version, nil
}

func (t *AVLTree) Size() int64 {
	return int64(t.tree.Len())
}

func (t *AVLTree) Height() int8 {
	return int8(t.tree.Height())
}

func (t *AVLTree) Balanced() bool {
	return t.tree.IsBalanced()
}

// Unwrap exposes the underlying tree for diagnostics.
func (t *AVLTree) Unwrap() *avl.Tree[string, int64] {
	return t.tree
}

type NaiveMultiTree struct {
	Trees map[string]Tree
}

func (nmt *NaiveMultiTree) GetTree(key string) (Tree, error) {
	tree, ok := nmt.Trees[key]
	if !ok {
		return nil, fmt.Errorf("tree with key %s not found", key)
	}
	return tree, nil
}

// StoreKeys returns the store names in sorted order.
func (nmt *NaiveMultiTree) StoreKeys() []string {
	keys := make([]string, 0, len(nmt.Trees))
	for k := range nmt.Trees {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (nmt *NaiveMultiTree) SaveVersions() ([]byte, error) {
	var hashes []byte
	for _, k := range nmt.StoreKeys() {
		hash, _, err := nmt.Trees[k].SaveVersion()
		if err != nil {
			return nil, err
		}
		hashes = append(hashes, hash...)
	}
	h := sha256.Sum256(hashes)
	return h[:], nil
}

func NewMultiTree() *NaiveMultiTree {
	return &NaiveMultiTree{
		Trees: make(map[string]Tree),
	}
}

// NewAVLMultiTree creates one AVLTree per store key.
func NewAVLMultiTree(storeKeys ...string) *NaiveMultiTree {
	mt := NewMultiTree()
	for _, k := range storeKeys {
		mt.Trees[k] = NewAVLTree()
	}
	return mt
}
