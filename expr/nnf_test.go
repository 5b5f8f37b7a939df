package expr_test

import (
	"testing"

	"github.com/nodeadmin/dlrepair/expr"
	"github.com/stretchr/testify/require"
)

func TestNNFIdempotent(t *testing.T) {
	r := expr.NamedRole("hasPart")
	c := expr.Complement(expr.Intersection(
		expr.Atomic("A"),
		expr.Union(expr.Atomic("B"), expr.Complement(expr.Atomic("C"))),
		expr.Existential(r, expr.Complement(expr.Atomic("D"))),
	))

	once := expr.NNF(c)
	twice := expr.NNF(once)
	require.True(t, once.Equal(twice), "NNF(NNF(c)) must equal NNF(c): %s vs %s", once, twice)
	require.True(t, expr.IsNNF(once), "NNF output must satisfy IsNNF: %s", once)
}

func TestComplementNNFDoubleNegation(t *testing.T) {
	a := expr.Atomic("A")
	got := expr.ComplementNNF(expr.Complement(a))
	require.True(t, got.Equal(a))
}

func TestComplementNNFDeMorgan(t *testing.T) {
	// ¬(A ⊓ B) in NNF is ¬A ⊔ ¬B.
	in := expr.Intersection(expr.Atomic("A"), expr.Atomic("B"))
	got := expr.ComplementNNF(in)
	want := expr.Union(expr.Complement(expr.Atomic("A")), expr.Complement(expr.Atomic("B")))
	require.True(t, got.Equal(want), "got %s want %s", got, want)
}

func TestConceptEqualIntersectionOrderInsensitive(t *testing.T) {
	a := expr.Intersection(expr.Atomic("A"), expr.Atomic("B"))
	b := expr.Intersection(expr.Atomic("B"), expr.Atomic("A"))
	require.True(t, a.Equal(b))
}

func TestCardinalityComplement(t *testing.T) {
	r := expr.NamedRole("hasChild")
	c := expr.MinCard(2, r, expr.Atomic("Person"))
	got := expr.ComplementNNF(c)
	want := expr.MaxCard(1, r, expr.Atomic("Person"))
	require.True(t, got.Equal(want), "got %s want %s", got, want)
}

func TestRoleInverseInvolution(t *testing.T) {
	r := expr.NamedRole("hasPart")
	require.True(t, r.Inverse().Inverse().Equal(r))
}

func TestNoOpSentinels(t *testing.T) {
	require.True(t, expr.IsNoOpWeakening(expr.NoOpWeakening()))
	require.True(t, expr.IsNoOpStrengthening(expr.NoOpStrengthening()))
	require.False(t, expr.IsNoOpWeakening(expr.NoOpStrengthening()))
}

func TestOriginPropagatesToRoot(t *testing.T) {
	original := expr.SubClassOf(expr.Atomic("A"), expr.Atomic("B"))
	once := expr.SubClassOf(expr.Atomic("A"), expr.Top()).WithOrigin(original)
	twice := expr.SubClassOf(expr.Atomic("A"), expr.Union(expr.Atomic("B"), expr.Atomic("C"))).WithOrigin(once)

	require.NotNil(t, twice.Origin())
	require.True(t, twice.Origin().Equal(original), "origin must chain to the true root, not the intermediate")
}
