package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nodeadmin/dlrepair/expr"
	"github.com/nodeadmin/dlrepair/normalize"
)

// TestEquivalentClassesNeverBecomesDisjointClasses pins down the §9
// open-question decision recorded in DESIGN.md: EquivalentClasses
// always normalizes to a pairwise SubClassOf cycle, never to
// DisjointClasses. Nobody should "fix" this back.
func TestEquivalentClassesNeverBecomesDisjointClasses(t *testing.T) {
	a, b, c := expr.Atomic("A"), expr.Atomic("B"), expr.Atomic("C")
	out := normalize.Axioms([]expr.Axiom{expr.EquivalentClasses(a, b, c)}, normalize.Options{})

	require.False(t, containsKind(out, expr.KindDisjointClasses))
	allOfKind(t, out, expr.KindSubClassOf)
	require.Len(t, out, 3)
}
