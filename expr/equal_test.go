package expr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nodeadmin/dlrepair/expr"
)

func TestConceptEqualAtomic(t *testing.T) {
	require.True(t, expr.Atomic("Dog").Equal(expr.Atomic("Dog")))
	require.False(t, expr.Atomic("Dog").Equal(expr.Atomic("Cat")))
}

func TestConceptEqualTopBottom(t *testing.T) {
	require.True(t, expr.Top().Equal(expr.Top()))
	require.True(t, expr.Bottom().Equal(expr.Bottom()))
	require.False(t, expr.Top().Equal(expr.Bottom()))
}

func TestConceptEqualDifferentKinds(t *testing.T) {
	require.False(t, expr.Atomic("Dog").Equal(expr.Top()))
}

func TestConceptEqualExistential(t *testing.T) {
	r := expr.NamedRole("hasOwner")
	a := expr.Existential(r, expr.Atomic("Person"))
	b := expr.Existential(r, expr.Atomic("Person"))
	c := expr.Existential(r, expr.Atomic("Animal"))
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

func TestConceptEqualIntersectionIsOrderInsensitive(t *testing.T) {
	a := expr.Intersection(expr.Atomic("Dog"), expr.Atomic("Cat"))
	b := expr.Intersection(expr.Atomic("Cat"), expr.Atomic("Dog"))
	require.True(t, a.Equal(b))
}

func TestConceptEqualIntersectionDifferentArity(t *testing.T) {
	a := expr.Intersection(expr.Atomic("Dog"), expr.Atomic("Cat"))
	b := expr.Intersection(expr.Atomic("Dog"), expr.Atomic("Cat"), expr.Atomic("Bird"))
	require.False(t, a.Equal(b))
}

func TestConceptEqualOneOfIsSetLike(t *testing.T) {
	a := expr.OneOf("alice", "bob")
	b := expr.OneOf("bob", "alice")
	require.True(t, a.Equal(b))
}

func TestConceptEqualHasValue(t *testing.T) {
	r := expr.NamedRole("hasOwner")
	a := expr.HasValue(r, "alice")
	b := expr.HasValue(r, "alice")
	c := expr.HasValue(r, "bob")
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

func TestAxiomEqualSubClassOf(t *testing.T) {
	a := expr.SubClassOf(expr.Atomic("Dog"), expr.Atomic("Animal"))
	b := expr.SubClassOf(expr.Atomic("Dog"), expr.Atomic("Animal"))
	c := expr.SubClassOf(expr.Atomic("Cat"), expr.Atomic("Animal"))
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

func TestAxiomEqualDisjointClassesIsOrderInsensitive(t *testing.T) {
	a := expr.DisjointClasses(expr.Atomic("Dog"), expr.Atomic("Cat"))
	b := expr.DisjointClasses(expr.Atomic("Cat"), expr.Atomic("Dog"))
	require.True(t, a.Equal(b))
}

func TestAxiomEqualInversePropertiesIsSymmetric(t *testing.T) {
	r1, r2 := expr.NamedRole("hasPart"), expr.NamedRole("isPartOf")
	a := expr.InverseProperties(r1, r2)
	b := expr.InverseProperties(r2, r1)
	require.True(t, a.Equal(b))
}

func TestAxiomEqualClassAssertion(t *testing.T) {
	a := expr.ClassAssertion(expr.Atomic("Dog"), "fido")
	b := expr.ClassAssertion(expr.Atomic("Dog"), "fido")
	c := expr.ClassAssertion(expr.Atomic("Dog"), "rex")
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

func TestAxiomEqualSameIndividualIsSetLike(t *testing.T) {
	a := expr.SameIndividual("alice", "ally")
	b := expr.SameIndividual("ally", "alice")
	require.True(t, a.Equal(b))
}

func TestAxiomEqualDifferentKindsAreNotEqual(t *testing.T) {
	a := expr.SubClassOf(expr.Atomic("Dog"), expr.Atomic("Animal"))
	b := expr.DisjointClasses(expr.Atomic("Dog"), expr.Atomic("Cat"))
	require.False(t, a.Equal(b))
}
