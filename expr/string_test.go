package expr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nodeadmin/dlrepair/expr"
)

func TestConceptStringAtomicAndTopBottom(t *testing.T) {
	require.Equal(t, "Dog", expr.Atomic("Dog").String())
	require.Equal(t, "⊤", expr.Top().String())
	require.Equal(t, "⊥", expr.Bottom().String())
}

func TestConceptStringParenthesizesCompoundOperands(t *testing.T) {
	c := expr.Intersection(expr.Atomic("Dog"), expr.Union(expr.Atomic("Cat"), expr.Atomic("Bird")))
	require.Equal(t, "Dog ⊓ (Cat ⊔ Bird)", c.String())
}

func TestConceptStringExistentialAndUniversal(t *testing.T) {
	r := expr.NamedRole("hasOwner")
	require.Equal(t, "∃hasOwner.Person", expr.Existential(r, expr.Atomic("Person")).String())
	require.Equal(t, "∀hasOwner.Person", expr.Universal(r, expr.Atomic("Person")).String())
}

func TestConceptStringHasValueAndHasSelf(t *testing.T) {
	r := expr.NamedRole("hasOwner")
	require.Equal(t, "∋hasOwner.{alice}", expr.HasValue(r, "alice").String())
	require.Equal(t, "∃hasOwner.Self", expr.HasSelf(r).String())
}

func TestConceptStringOneOf(t *testing.T) {
	require.Equal(t, "{alice, bob}", expr.OneOf("alice", "bob").String())
}

func TestAxiomStringSubClassOf(t *testing.T) {
	a := expr.SubClassOf(expr.Atomic("Dog"), expr.Atomic("Animal"))
	require.Equal(t, "Dog ⊑ Animal", a.String())
}

func TestAxiomStringClassAssertion(t *testing.T) {
	a := expr.ClassAssertion(expr.Atomic("Dog"), "fido")
	require.Equal(t, "Dog(fido)", a.String())
}

func TestAxiomStringDisjointClasses(t *testing.T) {
	a := expr.DisjointClasses(expr.Atomic("Dog"), expr.Atomic("Cat"))
	require.Equal(t, "Disjoint(Dog, Cat)", a.String())
}

func TestAxiomStringPropertyAssertion(t *testing.T) {
	r := expr.NamedRole("hasOwner")
	a := expr.PropertyAssertion(r, "fido", "alice")
	require.Equal(t, "hasOwner(fido, alice)", a.String())
}
