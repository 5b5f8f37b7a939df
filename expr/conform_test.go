package expr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nodeadmin/dlrepair/expr"
)

func TestIsALCAcceptsCoreConstructors(t *testing.T) {
	r := expr.NamedRole("hasOwner")
	c := expr.Intersection(
		expr.Atomic("Dog"),
		expr.Complement(expr.Atomic("Cat")),
		expr.Existential(r, expr.Union(expr.Atomic("Person"), expr.Top())),
	)
	require.True(t, expr.IsALC(c))
}

func TestIsALCRejectsCardinalityAndNominals(t *testing.T) {
	r := expr.NamedRole("hasOwner")
	require.False(t, expr.IsALC(expr.MinCard(2, r, expr.Atomic("Dog"))))
	require.False(t, expr.IsALC(expr.OneOf("alice", "bob")))
	require.False(t, expr.IsALC(expr.HasSelf(r)))
	require.False(t, expr.IsALC(expr.HasValue(r, "alice")))
}

func TestIsALCRejectsNonALCNestedInIntersection(t *testing.T) {
	r := expr.NamedRole("hasOwner")
	c := expr.Intersection(expr.Atomic("Dog"), expr.HasSelf(r))
	require.False(t, expr.IsALC(c))
}

func TestConceptIsBinary(t *testing.T) {
	require.True(t, expr.Intersection(expr.Atomic("A"), expr.Atomic("B")).IsBinary())
	require.False(t, expr.Intersection(expr.Atomic("A"), expr.Atomic("B"), expr.Atomic("C")).IsBinary())
	require.True(t, expr.Atomic("A").IsBinary())
}

func TestAxiomIsBinary(t *testing.T) {
	require.True(t, expr.DisjointClasses(expr.Atomic("A"), expr.Atomic("B")).IsBinary())
	require.False(t, expr.DisjointClasses(expr.Atomic("A"), expr.Atomic("B"), expr.Atomic("C")).IsBinary())
	require.True(t, expr.SubClassOf(expr.Atomic("A"), expr.Atomic("B")).IsBinary())
}

func TestAxiomIsBinaryForIndividualSets(t *testing.T) {
	require.True(t, expr.SameIndividual("alice", "ally").IsBinary())
	require.False(t, expr.SameIndividual("alice", "ally", "al").IsBinary())
}
