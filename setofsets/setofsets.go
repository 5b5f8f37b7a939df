// Package setofsets implements a trie-indexed container of sets (§4.1
// Component 1), supporting subset/superset/disjoint queries used to prune
// MinimalSubsets (§4.6) and MaximalConsistentSubsets (§4.7) search.
package setofsets

import (
	"sort"

	"github.com/google/btree"
)

// Ordered constrains set elements to a totally ordered type; callers
// map axioms to an ordered key before inserting them here (package
// repair uses each axiom's String() form).
type Ordered interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64 | ~string
}

// childItem is a google/btree.Item ordering trie children by their edge
// label, giving each trie level O(log branching) lookup instead of a
// linear scan of an unordered map — the corpus's established use of
// google/btree (AKJUS-bsc-erigon's history_reader_v3.go) for ordered
// in-memory indices.
type childItem[T Ordered] struct {
	key  T
	node *node[T]
}

func (a childItem[T]) Less(than btree.Item) bool {
	return a.key < than.(childItem[T]).key
}

type node[T Ordered] struct {
	children *btree.BTree
	terminal bool // a stored set ends exactly at this node
}

func newNode[T Ordered]() *node[T] {
	return &node[T]{children: btree.New(8)}
}

func (n *node[T]) child(key T) (*node[T], bool) {
	item := n.children.Get(childItem[T]{key: key})
	if item == nil {
		return nil, false
	}
	return item.(childItem[T]).node, true
}

func (n *node[T]) childOrCreate(key T) *node[T] {
	if c, ok := n.child(key); ok {
		return c
	}
	c := newNode[T]()
	n.children.ReplaceOrInsert(childItem[T]{key: key, node: c})
	return c
}

func (n *node[T]) eachChild(f func(key T, child *node[T]) bool) {
	n.children.Ascend(func(item btree.Item) bool {
		ci := item.(childItem[T])
		return f(ci.key, ci.node)
	})
}

// SetOfSets is a trie over sorted element sequences, one trie edge per
// element in ascending order, supporting the query contract of §4.1
// Component 1.
type SetOfSets[T Ordered] struct {
	root  *node[T]
	count int
}

// New returns an empty SetOfSets.
func New[T Ordered]() *SetOfSets[T] {
	return &SetOfSets[T]{root: newNode[T]()}
}

func sorted[T Ordered](set []T) []T {
	out := append([]T(nil), set...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Insert adds set to the container. Duplicate inserts are no-ops.
func (s *SetOfSets[T]) Insert(set []T) {
	sorted := sorted(set)
	n := s.root
	for _, e := range sorted {
		n = n.childOrCreate(e)
	}
	if !n.terminal {
		n.terminal = true
		s.count++
	}
}

// Len returns the number of distinct sets stored.
func (s *SetOfSets[T]) Len() int { return s.count }

// Contains reports whether set was inserted exactly (same elements).
func (s *SetOfSets[T]) Contains(set []T) bool {
	sorted := sorted(set)
	n := s.root
	for _, e := range sorted {
		c, ok := n.child(e)
		if !ok {
			return false
		}
		n = c
	}
	return n.terminal
}

// ContainsSubset reports whether any stored set is a subset of set
// (§8 testable property 6: "containsSubset(S) is true iff any stored set
// is ⊆ S").
func (s *SetOfSets[T]) ContainsSubset(set []T) bool {
	target := sorted(set)
	var walk func(n *node[T], pos int) bool
	walk = func(n *node[T], pos int) bool {
		if n.terminal {
			return true
		}
		for i := pos; i < len(target); i++ {
			if c, ok := n.child(target[i]); ok {
				if walk(c, i+1) {
					return true
				}
			}
		}
		return false
	}
	return walk(s.root, 0)
}

// ContainsSuperset reports whether any stored set is a superset of set.
func (s *SetOfSets[T]) ContainsSuperset(set []T) bool {
	return len(s.Supersets(set)) > 0
}

// ContainsDisjoint reports whether any stored set shares no elements
// with set.
func (s *SetOfSets[T]) ContainsDisjoint(set []T) bool {
	forbidden := make(map[T]struct{}, len(set))
	for _, e := range set {
		forbidden[e] = struct{}{}
	}
	found := false
	var walk func(n *node[T])
	walk = func(n *node[T]) {
		if found {
			return
		}
		if n.terminal {
			found = true
			return
		}
		n.eachChild(func(key T, child *node[T]) bool {
			if _, blocked := forbidden[key]; !blocked {
				walk(child)
			}
			return !found
		})
	}
	walk(s.root)
	return found
}

// Supersets returns every stored set that is a superset of set.
func (s *SetOfSets[T]) Supersets(set []T) [][]T {
	target := sorted(set)
	var out [][]T
	var walk func(n *node[T], pos int, path []T)
	walk = func(n *node[T], pos int, path []T) {
		if pos == len(target) {
			if n.terminal {
				out = append(out, append([]T(nil), path...))
			}
			n.eachChild(func(key T, child *node[T]) bool {
				walk(child, pos, append(path, key))
				return true
			})
			return
		}
		n.eachChild(func(key T, child *node[T]) bool {
			if key == target[pos] {
				walk(child, pos+1, append(path, key))
			} else {
				walk(child, pos, append(path, key))
			}
			return true
		})
	}
	walk(s.root, 0, nil)
	return out
}

// Subsets returns every stored set that is a subset of set.
func (s *SetOfSets[T]) Subsets(set []T) [][]T {
	target := sorted(set)
	var out [][]T
	var walk func(n *node[T], pos int, path []T)
	walk = func(n *node[T], pos int, path []T) {
		if n.terminal {
			out = append(out, append([]T(nil), path...))
		}
		for i := pos; i < len(target); i++ {
			if c, ok := n.child(target[i]); ok {
				walk(c, i+1, append(path, target[i]))
			}
		}
	}
	walk(s.root, 0, nil)
	return out
}

// GetDisjoint returns every stored set disjoint from set.
func (s *SetOfSets[T]) GetDisjoint(set []T) [][]T {
	forbidden := make(map[T]struct{}, len(set))
	for _, e := range set {
		forbidden[e] = struct{}{}
	}
	var out [][]T
	var walk func(n *node[T], path []T)
	walk = func(n *node[T], path []T) {
		if n.terminal {
			out = append(out, append([]T(nil), path...))
		}
		n.eachChild(func(key T, child *node[T]) bool {
			if _, blocked := forbidden[key]; !blocked {
				walk(child, append(path, key))
			}
			return true
		})
	}
	walk(s.root, nil)
	return out
}

// All returns every stored set.
func (s *SetOfSets[T]) All() [][]T {
	return s.Supersets(nil)
}
