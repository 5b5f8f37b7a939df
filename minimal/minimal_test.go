package minimal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nodeadmin/dlrepair/minimal"
)

// hasAll is monotone: adding more elements to a superset of target
// never makes the predicate false.
func hasAll(target map[int]bool) minimal.Predicate[int] {
	return func(s []int) (bool, error) {
		present := map[int]bool{}
		for _, e := range s {
			present[e] = true
		}
		for t := range target {
			if !present[t] {
				return false, nil
			}
		}
		return true, nil
	}
}

func TestSingleFindsExactMinimalSet(t *testing.T) {
	universe := []int{1, 2, 3, 4, 5, 6, 7, 8}
	p := hasAll(map[int]bool{3: true, 7: true})

	result, ok, err := minimal.Single(universe, nil, p)
	require.NoError(t, err)
	require.True(t, ok)
	require.ElementsMatch(t, []int{3, 7}, result)
}

func TestSingleReportsUnsatisfiableUniverse(t *testing.T) {
	universe := []int{1, 2}
	p := hasAll(map[int]bool{99: true})

	_, ok, err := minimal.Single(universe, nil, p)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSingleEmptyResultWhenContainedAlreadySatisfies(t *testing.T) {
	universe := []int{1, 2, 3}
	p := hasAll(map[int]bool{})

	result, ok, err := minimal.Single(universe, nil, p)
	require.NoError(t, err)
	require.True(t, ok)
	require.Empty(t, result)
}

func TestManyFindsDistinctMinimalSets(t *testing.T) {
	universe := []int{1, 2, 3, 4, 5, 6}
	// Two disjoint qualifying pairs; Many should surface at least one
	// minimal hit per block without duplication.
	p := func(s []int) (bool, error) {
		has := map[int]bool{}
		for _, e := range s {
			has[e] = true
		}
		return (has[1] && has[2]) || (has[5] && has[6]), nil
	}
	results, err := minimal.Many(universe, nil, p, 5)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for _, r := range results {
		ok, err := p(r)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestAllEnumeratesMultipleMinimalSets(t *testing.T) {
	universe := []int{1, 2, 3}
	// Predicate holds iff at least one of {1,3} or {2,3} is fully present.
	p := func(s []int) (bool, error) {
		has := map[int]bool{}
		for _, e := range s {
			has[e] = true
		}
		return (has[1] && has[3]) || (has[2] && has[3]), nil
	}
	results, err := minimal.All(universe, nil, p, 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for _, r := range results {
		ok, err := p(r)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestHittingSetsIntersectEverySet(t *testing.T) {
	sets := [][]int{{1, 2}, {2, 3}, {3, 4}}
	results, err := minimal.HittingSets(sets, 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for _, hs := range results {
		chosen := map[int]bool{}
		for _, e := range hs {
			chosen[e] = true
		}
		for _, s := range sets {
			hit := false
			for _, e := range s {
				if chosen[e] {
					hit = true
					break
				}
			}
			require.True(t, hit, "hitting set %v must intersect %v", hs, s)
		}
	}
}
