// Package minimal implements MinimalSubsets (§3, §4.1 Component 6,
// §4.6): single-minimal (QuickXPlain-style divide-and-conquer), many-
// minimal (MergeXplain) and all-minimal (HS-Tree) search over a
// monotone predicate, plus minimal hitting sets.
package minimal

import (
	"math/rand"
	"sort"

	"github.com/nodeadmin/dlrepair/setofsets"
)

// Predicate reports whether contained∪S satisfies the property under
// search; monotone in the sense required by §4.6: if Predicate(S) holds
// then Predicate(S') holds for every S' ⊇ S.
type Predicate[T any] func(s []T) (bool, error)

func concat[T any](a, b []T) []T {
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

func holds[T any](p Predicate[T], contained, extra []T) (bool, error) {
	return p(concat(contained, extra))
}

// Single finds one minimal subset of universe such that contained∪S
// satisfies p, given that contained∪universe does (the caller's
// responsibility per §4.6's monotonicity precondition). Returns
// ok=false if contained∪universe does not satisfy p.
//
// Implemented as QuickXPlain's recursive divide-and-conquer shrink
// (Junker 2004): O(k·log(n/k)) predicate evaluations for a result of
// size k (§4.6 "exponential-probe scan with binary search for the
// first indispensable element").
func Single[T any](universe, contained []T, p Predicate[T]) (result []T, ok bool, err error) {
	full, err := holds(p, contained, universe)
	if err != nil {
		return nil, false, err
	}
	if !full {
		return nil, false, nil
	}
	result, err = shrink(universe, contained, p)
	if err != nil {
		return nil, false, err
	}
	return result, true, nil
}

// shrink returns the minimal subset of w that, added to contained,
// satisfies p — assuming contained∪w already does.
func shrink[T any](w, contained []T, p Predicate[T]) ([]T, error) {
	if len(w) == 0 {
		return nil, nil
	}
	onlyContained, err := p(append([]T(nil), contained...))
	if err != nil {
		return nil, err
	}
	if onlyContained {
		return nil, nil
	}
	if len(w) == 1 {
		return append([]T(nil), w...), nil
	}

	mid := len(w) / 2
	w1, w2 := w[:mid], w[mid:]

	// If contained∪w2 already suffices, none of w1 is needed.
	withW2, err := holds(p, contained, w2)
	if err != nil {
		return nil, err
	}
	if withW2 {
		return shrink(w2, contained, p)
	}

	necessary2, err := shrink(w2, concat(contained, w1), p)
	if err != nil {
		return nil, err
	}
	necessary1, err := shrink(w1, concat(contained, necessary2), p)
	if err != nil {
		return nil, err
	}
	return concat(necessary1, necessary2), nil
}

// Many finds up to maxResults distinct minimal subsets of universe via
// MergeXplain (§4.6 "divide-and-conquer; recurses on halves, then re-
// mines conflicts across the combined invalid residues"): the universe
// is partitioned into blocks, each block (and progressively merged
// pairs of blocks) is probed for a satisfying combination, and any hit
// is shrunk to a minimal witness via Single.
func Many[T setofsets.Ordered](universe, contained []T, p Predicate[T], maxResults int) ([][]T, error) {
	if len(universe) == 0 || maxResults <= 0 {
		return nil, nil
	}

	blockCount := blockCountFor(len(universe))
	blocks := partition(universe, blockCount)

	seen := setofsets.New[T]()
	var results [][]T

	record := func(s []T) {
		if seen.Contains(s) {
			return
		}
		seen.Insert(s)
		results = append(results, s)
	}

	frontier := make([][]T, len(blocks))
	copy(frontier, blocks)

	for len(frontier) > 0 && len(results) < maxResults {
		var nextFrontier [][]T
		for _, block := range frontier {
			if len(results) >= maxResults {
				break
			}
			ok, err := holds(p, contained, block)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			sol, found, err := Single(block, contained, p)
			if err != nil {
				return nil, err
			}
			if found {
				record(sol)
			}
		}
		// Merge adjacent blocks pairwise and re-probe the combined
		// residue, mining conflicts that only show up across a block
		// boundary (the MergeXplain "re-mine" step).
		for i := 0; i+1 < len(frontier); i += 2 {
			nextFrontier = append(nextFrontier, concat(frontier[i], frontier[i+1]))
		}
		if len(nextFrontier) == len(frontier) {
			break // no further merging possible
		}
		frontier = nextFrontier
	}
	return results, nil
}

func blockCountFor(n int) int {
	b := 1
	for b*b < n {
		b++
	}
	if b < 1 {
		b = 1
	}
	return b
}

func partition[T any](universe []T, blocks int) [][]T {
	if blocks <= 0 {
		blocks = 1
	}
	out := make([][]T, 0, blocks)
	size := (len(universe) + blocks - 1) / blocks
	if size == 0 {
		size = 1
	}
	for i := 0; i < len(universe); i += size {
		end := i + size
		if end > len(universe) {
			end = len(universe)
		}
		out = append(out, universe[i:end])
	}
	return out
}

// All enumerates minimal subsets of universe via an HS-Tree search
// (§4.6): each discovered minimal set blocks a subtree per element it
// contains (Reiter's hitting-set tree), so the frontier is an explicit
// stack of exclusion sets rather than recursion — the same LIFO-stack
// discipline the completion-rule saturation engine uses for its
// worklist. Bounded by maxResults to keep the search finite; callers
// that want an exhaustive enumeration pass a generous bound and check
// whether it was reached.
func All[T setofsets.Ordered](universe, contained []T, p Predicate[T], maxResults int) ([][]T, error) {
	type frame struct {
		excluded map[T]struct{}
	}

	var results [][]T
	found := setofsets.New[T]()
	stack := []frame{{excluded: map[T]struct{}{}}}

	for len(stack) > 0 && (maxResults <= 0 || len(results) < maxResults) {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		excludedSlice := make([]T, 0, len(f.excluded))
		for e := range f.excluded {
			excludedSlice = append(excludedSlice, e)
		}
		// Prune: if some already-found minimal set's elements are all
		// already excluded along this path, this branch cannot surface
		// anything that isn't already accounted for (§4.6 "maintains
		// minimalSets ... that short-circuit branches whose current path
		// already contains a known hitting set").
		if found.ContainsSubset(excludedSlice) {
			continue
		}

		remaining := make([]T, 0, len(universe))
		for _, e := range universe {
			if _, excluded := f.excluded[e]; !excluded {
				remaining = append(remaining, e)
			}
		}

		sol, ok, err := Single(remaining, contained, p)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if found.Contains(sol) {
			continue
		}
		found.Insert(sol)
		results = append(results, sol)

		for _, e := range sol {
			child := make(map[T]struct{}, len(f.excluded)+1)
			for x := range f.excluded {
				child[x] = struct{}{}
			}
			child[e] = struct{}{}
			stack = append(stack, frame{excluded: child})
		}
	}
	return results, nil
}

// Randomized runs Single up to tries times, shuffling universe's order
// before each attempt (Single's divide-and-conquer split is order-
// sensitive, so different shuffles can surface different minimal sets),
// deduplicating results (§4.6 "Randomized variant shuffles the input
// sequence per call and deduplicates results across k tries").
func Randomized[T setofsets.Ordered](universe, contained []T, p Predicate[T], tries int, rng *rand.Rand) ([][]T, error) {
	if tries <= 0 {
		tries = 1
	}
	seen := setofsets.New[T]()
	var results [][]T
	shuffled := append([]T(nil), universe...)
	for i := 0; i < tries; i++ {
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		sol, ok, err := Single(shuffled, contained, p)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if seen.Contains(sol) {
			continue
		}
		seen.Insert(sol)
		results = append(results, sol)
	}
	return results, nil
}

// HittingSets finds up to maxResults minimal hitting sets of sets: sets
// S such that S intersects every element of sets (§4.6 "minimal hitting
// sets"). Implemented by reusing All with the predicate "every given
// set is hit", since a minimal hitting set is exactly a minimal subset
// satisfying that (monotone: hitting more things only helps) predicate
// — the same duality Reiter's original hitting-set tree exploits.
func HittingSets[T setofsets.Ordered](sets [][]T, maxResults int) ([][]T, error) {
	universe := map[T]struct{}{}
	for _, s := range sets {
		for _, e := range s {
			universe[e] = struct{}{}
		}
	}
	uni := make([]T, 0, len(universe))
	for e := range universe {
		uni = append(uni, e)
	}
	sort.Slice(uni, func(i, j int) bool { return uni[i] < uni[j] })

	hitsAll := func(candidate []T) (bool, error) {
		chosen := map[T]struct{}{}
		for _, e := range candidate {
			chosen[e] = struct{}{}
		}
		for _, s := range sets {
			hit := false
			for _, e := range s {
				if _, ok := chosen[e]; ok {
					hit = true
					break
				}
			}
			if !hit {
				return false, nil
			}
		}
		return true, nil
	}

	return All(uni, nil, hitsAll, maxResults)
}
