package miniel_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nodeadmin/dlrepair/expr"
	"github.com/nodeadmin/dlrepair/oracle/miniel"
)

func classify(t *testing.T, axioms ...expr.Axiom) *oracle_handle {
	t.Helper()
	h, err := miniel.New().Classify(axioms)
	require.NoError(t, err)
	return &oracle_handle{h}
}

// oracle_handle narrows miniel's unexported *handle down to the methods
// tests need, avoiding a dependency on its concrete type name.
type oracle_handle struct {
	h interface {
		IsConsistent() (bool, error)
		IsEntailed(expr.Axiom) (bool, error)
		IsSatisfiable(expr.Concept) (bool, error)
		Flush(additions, removals []expr.Axiom) error
	}
}

func TestTBoxOnlyOntologyIsVacuouslyConsistent(t *testing.T) {
	h := classify(t,
		expr.DisjointClasses(expr.Atomic("Dog"), expr.Atomic("Cat")),
	)
	ok, err := h.h.IsConsistent()
	require.NoError(t, err)
	require.True(t, ok, "a TBox with no asserted individuals is satisfiable by setting every atom false")
}

func TestClassAssertionConflictIsInconsistent(t *testing.T) {
	h := classify(t,
		expr.DisjointClasses(expr.Atomic("Dog"), expr.Atomic("Cat")),
		expr.ClassAssertion(expr.Atomic("Dog"), "fido"),
		expr.ClassAssertion(expr.Atomic("Cat"), "fido"),
	)
	ok, err := h.h.IsConsistent()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSubClassOfIsEntailedTransitively(t *testing.T) {
	h := classify(t,
		expr.SubClassOf(expr.Atomic("Dog"), expr.Atomic("Mammal")),
		expr.SubClassOf(expr.Atomic("Mammal"), expr.Atomic("Animal")),
	)
	ok, err := h.h.IsEntailed(expr.SubClassOf(expr.Atomic("Dog"), expr.Atomic("Animal")))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSubClassOfIsNotEntailedWhenUnrelated(t *testing.T) {
	h := classify(t,
		expr.SubClassOf(expr.Atomic("Dog"), expr.Atomic("Mammal")),
	)
	ok, err := h.h.IsEntailed(expr.SubClassOf(expr.Atomic("Dog"), expr.Atomic("Cat")))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDisjointClassesMakesIntersectionUnsatisfiable(t *testing.T) {
	h := classify(t,
		expr.DisjointClasses(expr.Atomic("Dog"), expr.Atomic("Cat")),
	)
	ok, err := h.h.IsSatisfiable(expr.Intersection(expr.Atomic("Dog"), expr.Atomic("Cat")))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestBottomIsNeverSatisfiable(t *testing.T) {
	h := classify(t)
	ok, err := h.h.IsSatisfiable(expr.Bottom())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestClassAssertionEntailedWhenForcedByTBox(t *testing.T) {
	h := classify(t,
		expr.SubClassOf(expr.Atomic("Dog"), expr.Atomic("Animal")),
		expr.ClassAssertion(expr.Atomic("Dog"), "fido"),
	)
	ok, err := h.h.IsEntailed(expr.ClassAssertion(expr.Atomic("Animal"), "fido"))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestFlushAppliesAxiomDeltaOnTopOfClassifiedSnapshot(t *testing.T) {
	h := classify(t,
		expr.DisjointClasses(expr.Atomic("Dog"), expr.Atomic("Cat")),
		expr.ClassAssertion(expr.Atomic("Dog"), "fido"),
		expr.ClassAssertion(expr.Atomic("Cat"), "fido"),
	)
	ok, err := h.h.IsConsistent()
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, h.h.Flush(nil, []expr.Axiom{expr.ClassAssertion(expr.Atomic("Cat"), "fido")}))

	ok, err = h.h.IsConsistent()
	require.NoError(t, err)
	require.True(t, ok)
}
