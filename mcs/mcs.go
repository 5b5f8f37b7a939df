// Package mcs implements MaximalConsistentSubsets (§3, §4.1 Component 7,
// §4.7): BFS enumeration of maximal consistent subsets and their
// complementary minimal correction sets, plus minimal unsatisfiable
// subset extraction.
package mcs

import (
	"github.com/nodeadmin/dlrepair/minimal"
	"github.com/nodeadmin/dlrepair/setofsets"
)

// Consistency reports whether subset, taken as a stand-alone axiom set,
// satisfies the repair predicate (e.g. ontology.ConsistencyPredicate
// over a Core built from subset).
type Consistency[T any] func(subset []T) (bool, error)

func complement[T comparable](universe, removed []T) []T {
	skip := make(map[T]struct{}, len(removed))
	for _, e := range removed {
		skip[e] = struct{}{}
	}
	out := make([]T, 0, len(universe))
	for _, e := range universe {
		if _, ok := skip[e]; !ok {
			out = append(out, e)
		}
	}
	return out
}

// MinimalCorrectionSets enumerates up to maxResults minimal correction
// sets: minimal subsets of universe whose removal restores consistency
// (§4.7). BFS over "axioms already removed": each queue item (k,
// removed) expands by appending any axiom from position k onward, so
// every removed set is generated exactly once and in nondecreasing
// size order.
//
// Pruning (a): an item is skipped once its removed set is a superset of
// an already-found correction set (setofsets.ContainsSubset) — removing
// even more axioms than a known-sufficient correction set can never be
// minimal. Child validity is checked eagerly on generation rather than
// after the next pop (a scheduling detail, not a semantic difference):
// a child that is already valid is recorded immediately instead of
// being requeued for its own expansion, since expanding it further
// could only produce strictly larger, non-minimal correction sets.
func MinimalCorrectionSets[T setofsets.Ordered](universe []T, valid Consistency[T], maxResults int) ([][]T, error) {
	type item struct {
		k       int
		removed []T
	}

	found := setofsets.New[T]()
	var results [][]T

	ok, err := valid(universe)
	if err != nil {
		return nil, err
	}
	if ok {
		// Nothing to remove: the full ontology is already consistent.
		return nil, nil
	}

	queue := []item{{k: 0, removed: nil}}
	for len(queue) > 0 && (maxResults <= 0 || len(results) < maxResults) {
		it := queue[0]
		queue = queue[1:]

		for i := it.k; i < len(universe); i++ {
			candidate := append(append([]T(nil), it.removed...), universe[i])

			if found.ContainsSubset(candidate) {
				continue
			}

			remaining := complement(universe, candidate)
			isValid, err := valid(remaining)
			if err != nil {
				return nil, err
			}
			if isValid {
				found.Insert(candidate)
				results = append(results, candidate)
				if maxResults > 0 && len(results) >= maxResults {
					return results, nil
				}
				continue
			}
			queue = append(queue, item{k: i + 1, removed: candidate})
		}
	}
	return results, nil
}

// MaximalConsistentSubsets enumerates up to maxResults maximal
// consistent subsets of universe: the complements of the minimal
// correction sets found by MinimalCorrectionSets.
func MaximalConsistentSubsets[T setofsets.Ordered](universe []T, valid Consistency[T], maxResults int) ([][]T, error) {
	corrections, err := MinimalCorrectionSets(universe, valid, maxResults)
	if err != nil {
		return nil, err
	}
	if corrections == nil {
		ok, err := valid(universe)
		if err != nil {
			return nil, err
		}
		if ok {
			return [][]T{append([]T(nil), universe...)}, nil
		}
		return nil, nil
	}
	out := make([][]T, len(corrections))
	for i, c := range corrections {
		out[i] = complement(universe, c)
	}
	return out, nil
}

// SomeMCS returns one maximal consistent subset (the first one BFS
// finds), or ok=false if universe itself is already inconsistent and
// has no non-empty consistent subset candidates to explore (an empty
// ontology is trivially consistent, so this only happens if valid
// itself errors or the search is bounded before finding one).
func SomeMCS[T setofsets.Ordered](universe []T, valid Consistency[T]) (result []T, ok bool, err error) {
	out, err := MaximalConsistentSubsets(universe, valid, 1)
	if err != nil {
		return nil, false, err
	}
	if len(out) == 0 {
		return nil, false, nil
	}
	return out[0], true, nil
}

// LargestMCS returns the maximal consistent subset with the fewest
// removed axioms. Because MinimalCorrectionSets' BFS visits removed
// sets in nondecreasing size order, the first correction set found is
// already of minimum size (§4.7 "when largest=true, stop once the
// correction-set size strictly exceeds the first found"): LargestMCS
// stops the underlying search as soon as one is found.
func LargestMCS[T setofsets.Ordered](universe []T, valid Consistency[T]) (result []T, ok bool, err error) {
	return SomeMCS(universe, valid)
}

// MinimalUnsatisfiableSubset finds one minimal subset of universe that
// is itself inconsistent (a MUS), via minimal.Single over the monotone
// "is inconsistent" predicate (a superset of an inconsistent set is
// inconsistent).
func MinimalUnsatisfiableSubset[T any](universe []T, valid Consistency[T]) (result []T, ok bool, err error) {
	inconsistent := func(s []T) (bool, error) {
		v, err := valid(s)
		if err != nil {
			return false, err
		}
		return !v, nil
	}
	return minimal.Single(universe, nil, inconsistent)
}
