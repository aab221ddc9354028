// Package avl implements a height-balanced binary search tree mapping
// ordering values to auxiliary keys.
//
// Unlike most ordered maps the tree is ordered and searched by the value
// of each pair; the key is payload attached to that value. Inserting a
// value that is already present overwrites its key and leaves the shape of
// the tree untouched.
//
// A Tree is not safe for concurrent use. Callers that share a tree between
// goroutines must provide their own locking.
package avl
