package mcs_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nodeadmin/dlrepair/expr"
	"github.com/nodeadmin/dlrepair/mcs"
	"github.com/nodeadmin/dlrepair/ontology"
	"github.com/nodeadmin/dlrepair/oracle/miniel"
)

// consistencyOf builds a throwaway Core from subset and reports whether
// it is consistent, to stand in for the repair predicate mcs expects.
func consistencyOf(t *testing.T) mcs.Consistency[expr.Axiom] {
	t.Helper()
	return func(subset []expr.Axiom) (bool, error) {
		core := ontology.New(miniel.New(), subset, nil)
		defer core.Release()
		return core.IsConsistent()
	}
}

func contains(axioms []expr.Axiom, target expr.Axiom) bool {
	for _, a := range axioms {
		if a.Equal(target) {
			return true
		}
	}
	return false
}

// fidoIsA ties the fixture's inconsistency to a concrete individual: a
// bare SubClassOf(A, Bottom) alone never makes miniel's model search
// inconsistent (a model can just set A false everywhere), so the
// offending axiom set must also force some individual into A.
func fidoIsA() expr.Axiom {
	return expr.ClassAssertion(expr.Atomic("A"), "fido")
}

func TestMinimalCorrectionSetsRestoreConsistency(t *testing.T) {
	bad := expr.SubClassOf(expr.Atomic("A"), expr.Bottom())
	assertion := fidoIsA()
	ok1 := expr.SubClassOf(expr.Atomic("B"), expr.Atomic("C"))
	universe := []expr.Axiom{bad, assertion, ok1}

	corrections, err := mcs.MinimalCorrectionSets(universe, consistencyOf(t), 0)
	require.NoError(t, err)
	require.NotEmpty(t, corrections)
	for _, c := range corrections {
		require.True(t, contains(c, bad) || contains(c, assertion),
			"every correction set must remove the unsatisfiable class axiom or its assertion")
	}
}

func TestMaximalConsistentSubsetsAreConsistent(t *testing.T) {
	bad := expr.SubClassOf(expr.Atomic("A"), expr.Bottom())
	assertion := fidoIsA()
	universe := []expr.Axiom{bad, assertion}

	valid := consistencyOf(t)
	subsets, err := mcs.MaximalConsistentSubsets(universe, valid, 0)
	require.NoError(t, err)
	require.NotEmpty(t, subsets)
	for _, s := range subsets {
		ok, err := valid(s)
		require.NoError(t, err)
		require.True(t, ok)
		require.False(t, contains(s, bad) && contains(s, assertion))
	}
}

func TestMaximalConsistentSubsetsWhenAlreadyConsistent(t *testing.T) {
	universe := []expr.Axiom{
		expr.SubClassOf(expr.Atomic("A"), expr.Atomic("B")),
	}
	valid := consistencyOf(t)
	subsets, err := mcs.MaximalConsistentSubsets(universe, valid, 0)
	require.NoError(t, err)
	require.Len(t, subsets, 1)
	require.ElementsMatch(t, universe, subsets[0])
}

func TestSomeMCSFindsOne(t *testing.T) {
	bad := expr.SubClassOf(expr.Atomic("A"), expr.Bottom())
	assertion := fidoIsA()
	universe := []expr.Axiom{bad, assertion}
	result, ok, err := mcs.SomeMCS(universe, consistencyOf(t))
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, result, 1)
}

func TestMinimalUnsatisfiableSubsetFindsOffendingAxioms(t *testing.T) {
	bad := expr.SubClassOf(expr.Atomic("A"), expr.Bottom())
	assertion := fidoIsA()
	ok1 := expr.SubClassOf(expr.Atomic("B"), expr.Atomic("C"))
	universe := []expr.Axiom{ok1, bad, assertion}

	result, ok, err := mcs.MinimalUnsatisfiableSubset(universe, consistencyOf(t))
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, contains(result, bad))
	require.True(t, contains(result, assertion))
	require.False(t, contains(result, ok1))
}
