package expr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nodeadmin/dlrepair/expr"
)

func TestSignatureOfCollectsConceptsRolesAndIndividuals(t *testing.T) {
	r := expr.NamedRole("hasOwner")
	axioms := []expr.Axiom{
		expr.SubClassOf(expr.Atomic("Dog"), expr.Existential(r, expr.Atomic("Person"))),
		expr.ClassAssertion(expr.Atomic("Dog"), "fido"),
		expr.PropertyAssertion(r, "fido", "alice"),
	}

	sig := expr.SignatureOf(axioms)

	require.Contains(t, sig.Concepts, "Dog")
	require.Contains(t, sig.Concepts, "Person")
	require.Contains(t, sig.Roles, "hasOwner")
	require.Contains(t, sig.Individuals, "fido")
	require.Contains(t, sig.Individuals, "alice")
}

func TestSignatureOfIgnoresSyntheticTopBottom(t *testing.T) {
	axioms := []expr.Axiom{
		expr.SubClassOf(expr.Atomic("Dog"), expr.Top()),
	}
	sig := expr.SignatureOf(axioms)
	require.Contains(t, sig.Concepts, "Dog")
	require.Len(t, sig.Concepts, 1)
}

func TestSignatureOfDeclarationAxiom(t *testing.T) {
	axioms := []expr.Axiom{
		expr.Declaration(expr.DeclareClass, "Dog"),
		expr.Declaration(expr.DeclareObjectProperty, "hasOwner"),
		expr.Declaration(expr.DeclareIndividual, "fido"),
	}
	sig := expr.SignatureOf(axioms)
	require.Contains(t, sig.Concepts, "Dog")
	require.Contains(t, sig.Roles, "hasOwner")
	require.Contains(t, sig.Individuals, "fido")
}

func TestSignatureOfEmptyAxiomListIsEmpty(t *testing.T) {
	sig := expr.SignatureOf(nil)
	require.Empty(t, sig.Concepts)
	require.Empty(t, sig.Roles)
	require.Empty(t, sig.Individuals)
}

func TestAddAxiomAccumulatesAcrossCalls(t *testing.T) {
	sig := expr.NewSignature()
	sig.AddAxiom(expr.SubClassOf(expr.Atomic("Dog"), expr.Atomic("Animal")))
	sig.AddAxiom(expr.SubClassOf(expr.Atomic("Cat"), expr.Atomic("Animal")))
	require.Len(t, sig.Concepts, 3)
}
