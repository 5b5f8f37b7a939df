package weaken_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nodeadmin/dlrepair/cover"
	"github.com/nodeadmin/dlrepair/expr"
	"github.com/nodeadmin/dlrepair/ontology"
	"github.com/nodeadmin/dlrepair/oracle/miniel"
	"github.com/nodeadmin/dlrepair/weaken"
)

func diamondWeakener(t *testing.T, dir string) *weaken.AxiomWeakener {
	t.Helper()
	axioms := []expr.Axiom{
		expr.SubClassOf(expr.Atomic("Dog"), expr.Atomic("Mammal")),
		expr.SubClassOf(expr.Atomic("Cat"), expr.Atomic("Mammal")),
		expr.SubClassOf(expr.Atomic("Mammal"), expr.Atomic("Animal")),
	}
	core := ontology.New(miniel.New(), axioms, nil)
	cc := cover.NewConceptCover(core, []expr.Concept{
		expr.Top(), expr.Bottom(),
		expr.Atomic("Dog"), expr.Atomic("Cat"), expr.Atomic("Mammal"), expr.Atomic("Animal"),
	})
	hasPart := expr.NamedRole("hasPart")
	partOf := expr.NamedRole("partOf")
	rc := cover.NewRoleCover(core, []expr.Role{hasPart, partOf}, map[string]bool{
		hasPart.String(): true, partOf.String(): true,
	})
	simple := map[string]bool{hasPart.String(): true, partOf.String(): true}
	regular := weaken.NewRegularPreorder()
	if dir == "strengthen" {
		return weaken.NewStrengthener(cc, rc, simple, regular, weaken.Flags{}, cover.IntUpCover, cover.IntDownCover)
	}
	return weaken.NewWeakener(cc, rc, simple, regular, weaken.Flags{}, cover.IntUpCover, cover.IntDownCover)
}

func names(as []expr.Axiom) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.String()
	}
	return out
}

func TestWeakenSubClassOfGeneralizesSupAndSpecializesSub(t *testing.T) {
	w := diamondWeakener(t, "weaken")

	out, err := w.WeakerAxioms(expr.SubClassOf(expr.Atomic("Dog"), expr.Atomic("Mammal")))
	require.NoError(t, err)

	got := names(out)
	require.Contains(t, got, expr.SubClassOf(expr.Atomic("Dog"), expr.Atomic("Animal")).String())
	require.Contains(t, got, expr.NoOpWeakening().String())
}

func TestStrengthenSubClassOfIsDualOfWeaken(t *testing.T) {
	w := diamondWeakener(t, "strengthen")

	out, err := w.WeakerAxioms(expr.SubClassOf(expr.Atomic("Animal"), expr.Atomic("Mammal")))
	require.NoError(t, err)

	got := names(out)
	require.Contains(t, got, expr.NoOpStrengthening().String())
	// Strengthening generalizes the sub-side via Other() (Specialize's
	// opposite, i.e. Generalize): Animal's up-cover is Animal and ⊤. We
	// only check the no-op sentinel and that the result is not empty.
	require.NotEmpty(t, out)
}

func TestWeakenClassAssertionGeneralizesConcept(t *testing.T) {
	w := diamondWeakener(t, "weaken")

	out, err := w.WeakerAxioms(expr.ClassAssertion(expr.Atomic("Dog"), "fido"))
	require.NoError(t, err)

	got := names(out)
	require.Contains(t, got, expr.ClassAssertion(expr.Atomic("Mammal"), "fido").String())
}

func TestWeakenPropertyAssertionIncludesIdentityAndNoOp(t *testing.T) {
	w := diamondWeakener(t, "weaken")
	original := expr.PropertyAssertion(expr.NamedRole("hasPart"), "a", "b")

	out, err := w.WeakerAxioms(original)
	require.NoError(t, err)

	got := names(out)
	require.Contains(t, got, original.String())
	require.Contains(t, got, expr.NoOpWeakening().String())
}

func TestWeakenPropertyAssertionSuppressedByNoRoleRefinement(t *testing.T) {
	axioms := []expr.Axiom{expr.SubClassOf(expr.Atomic("Dog"), expr.Atomic("Mammal"))}
	core := ontology.New(miniel.New(), axioms, nil)
	hasPart, partOf := expr.NamedRole("hasPart"), expr.NamedRole("partOf")
	cc := cover.NewConceptCover(core, []expr.Concept{expr.Top(), expr.Bottom(), expr.Atomic("Dog"), expr.Atomic("Mammal")})
	rc := cover.NewRoleCover(core, []expr.Role{hasPart, partOf}, map[string]bool{hasPart.String(): true, partOf.String(): true})
	w := weaken.NewWeakener(cc, rc, map[string]bool{hasPart.String(): true, partOf.String(): true}, weaken.NewRegularPreorder(), weaken.Flags{NoRoleRefinement: true}, cover.IntUpCover, cover.IntDownCover)

	original := expr.PropertyAssertion(hasPart, "a", "b")
	out, err := w.WeakerAxioms(original)
	require.NoError(t, err)
	require.Len(t, out, 2) // identity + no-op only, no role-refined variants
}

func TestWeakenSameIndividualDropsOneAtATime(t *testing.T) {
	w := diamondWeakener(t, "weaken")

	out, err := w.WeakerAxioms(expr.SameIndividual("a", "b", "c"))
	require.NoError(t, err)

	got := names(out)
	require.Contains(t, got, expr.SameIndividual("b", "c").String())
	require.Contains(t, got, expr.SameIndividual("a", "c").String())
	require.Contains(t, got, expr.SameIndividual("a", "b").String())
}

func TestStrengthenSameIndividualDoesNotDropMembers(t *testing.T) {
	w := diamondWeakener(t, "strengthen")

	out, err := w.WeakerAxioms(expr.SameIndividual("a", "b", "c"))
	require.NoError(t, err)
	require.Len(t, out, 2) // identity + no-op; no rule defined for strengthening
}

func TestWeakenEquivalentClassesDropsOneOperandAtATime(t *testing.T) {
	w := diamondWeakener(t, "weaken")

	out, err := w.WeakerAxioms(expr.EquivalentClasses(expr.Atomic("Dog"), expr.Atomic("Cat"), expr.Atomic("Mammal")))
	require.NoError(t, err)

	got := names(out)
	require.Contains(t, got, expr.EquivalentClasses(expr.Atomic("Cat"), expr.Atomic("Mammal")).String())
}

func TestWeakenDisjointClassesSpecializesEachOperand(t *testing.T) {
	w := diamondWeakener(t, "weaken")

	out, err := w.WeakerAxioms(expr.DisjointClasses(expr.Atomic("Mammal"), expr.Atomic("Animal")))
	require.NoError(t, err)
	require.NotEmpty(t, out)
	found := false
	for _, a := range out {
		if a.Kind() == expr.KindDisjointClasses {
			found = true
		}
	}
	require.True(t, found)
}

func TestWeakenSubObjectPropertyOfRefinesSubDownwardWhenSimple(t *testing.T) {
	w := diamondWeakener(t, "weaken")
	hasPart, partOf := expr.NamedRole("hasPart"), expr.NamedRole("partOf")

	out, err := w.WeakerAxioms(expr.SubObjectPropertyOf(hasPart, partOf))
	require.NoError(t, err)
	require.NotEmpty(t, out)
	require.Contains(t, names(out), expr.NoOpWeakening().String())
}

func TestWeakenSubPropertyChainOfHoldsChainFixed(t *testing.T) {
	w := diamondWeakener(t, "weaken")
	hasPart := expr.NamedRole("hasPart")
	chain := []expr.Role{hasPart, hasPart}

	out, err := w.WeakerAxioms(expr.SubPropertyChainOf(chain, hasPart))
	require.NoError(t, err)
	for _, a := range out {
		if a.Kind() == expr.KindSubPropertyChainOf {
			require.Equal(t, chain, a.Chain())
		}
	}
}

func TestWeakenDeclarationIsNeverRefined(t *testing.T) {
	w := diamondWeakener(t, "weaken")

	out, err := w.WeakerAxioms(expr.Declaration(expr.DeclareClass, "Dog"))
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, expr.KindDeclaration, out[0].Kind())
}

func TestWeakenDefaultRejectsUnhandledShapeInStrictMode(t *testing.T) {
	axioms := []expr.Axiom{expr.SubClassOf(expr.Atomic("Dog"), expr.Atomic("Mammal"))}
	core := ontology.New(miniel.New(), axioms, nil)
	cc := cover.NewConceptCover(core, []expr.Concept{expr.Top(), expr.Bottom(), expr.Atomic("Dog"), expr.Atomic("Mammal")})
	hasPart := expr.NamedRole("hasPart")
	rc := cover.NewRoleCover(core, []expr.Role{hasPart}, map[string]bool{hasPart.String(): true})
	w := weaken.NewWeakener(cc, rc, map[string]bool{hasPart.String(): true}, weaken.NewRegularPreorder(), weaken.Flags{Strict: true}, cover.IntUpCover, cover.IntDownCover)

	_, err := w.WeakerAxioms(expr.TransitiveProperty(hasPart))
	require.Error(t, err)
	var ns *weaken.NotSupported
	require.ErrorAs(t, err, &ns)
}

func TestWeakenDefaultPassesThroughNonStrict(t *testing.T) {
	w := diamondWeakener(t, "weaken")

	out, err := w.WeakerAxioms(expr.TransitiveProperty(expr.NamedRole("hasPart")))
	require.NoError(t, err)
	require.Len(t, out, 2)
}
