package expr

import (
	"fmt"
	"strings"
)

// String renders c for diagnostics and test failure messages; it is not
// a parseable serialization (serialization is a spec Non-goal).
func (c Concept) String() string {
	switch c.kind {
	case KindAtomic:
		return c.name
	case KindTop:
		return "⊤"
	case KindBottom:
		return "⊥"
	case KindComplement:
		return "¬" + parenthesize(c.operands[0])
	case KindIntersection:
		return joinOperands(c.operands, " ⊓ ")
	case KindUnion:
		return joinOperands(c.operands, " ⊔ ")
	case KindExistential:
		return fmt.Sprintf("∃%s.%s", c.role, parenthesize(c.operands[0]))
	case KindUniversal:
		return fmt.Sprintf("∀%s.%s", c.role, parenthesize(c.operands[0]))
	case KindHasValue:
		return fmt.Sprintf("∋%s.{%s}", c.role, c.individuals[0])
	case KindHasSelf:
		return fmt.Sprintf("∃%s.Self", c.role)
	case KindMinCard:
		return fmt.Sprintf("≥%d %s.%s", c.card, c.role, parenthesize(c.operands[0]))
	case KindMaxCard:
		return fmt.Sprintf("≤%d %s.%s", c.card, c.role, parenthesize(c.operands[0]))
	case KindExactCard:
		return fmt.Sprintf("=%d %s.%s", c.card, c.role, parenthesize(c.operands[0]))
	case KindOneOf:
		return "{" + strings.Join(c.individuals, ", ") + "}"
	default:
		return fmt.Sprintf("<concept kind=%d>", int(c.kind))
	}
}

func parenthesize(c Concept) string {
	switch c.kind {
	case KindAtomic, KindTop, KindBottom, KindHasSelf, KindHasValue, KindOneOf:
		return c.String()
	default:
		return "(" + c.String() + ")"
	}
}

func joinOperands(cs []Concept, sep string) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = parenthesize(c)
	}
	return strings.Join(parts, sep)
}

// String renders a for diagnostics.
func (a Axiom) String() string {
	switch a.kind {
	case KindSubClassOf:
		return fmt.Sprintf("%s ⊑ %s", a.concepts[0], a.concepts[1])
	case KindEquivalentClasses:
		return joinConcepts(a.concepts, " ≡ ")
	case KindDisjointClasses:
		return "Disjoint(" + joinConcepts(a.concepts, ", ") + ")"
	case KindDisjointUnion:
		return fmt.Sprintf("%s ≡ DisjointUnion(%s)", a.concepts[0], joinConcepts(a.concepts[1:], ", "))
	case KindObjectPropertyDomain:
		return fmt.Sprintf("Domain(%s) = %s", a.role, a.concept1)
	case KindObjectPropertyRange:
		return fmt.Sprintf("Range(%s) = %s", a.role, a.concept1)
	case KindSubObjectPropertyOf:
		return fmt.Sprintf("%s ⊑ %s", a.roles[0], a.roles[1])
	case KindSubPropertyChainOf:
		return fmt.Sprintf("%s ⊑ %s", joinRoles(a.chain, " ∘ "), a.roles[0])
	case KindInverseProperties:
		return fmt.Sprintf("InverseOf(%s, %s)", a.roles[0], a.roles[1])
	case KindTransitiveProperty:
		return fmt.Sprintf("Transitive(%s)", a.role)
	case KindSymmetricProperty:
		return fmt.Sprintf("Symmetric(%s)", a.role)
	case KindAsymmetricProperty:
		return fmt.Sprintf("Asymmetric(%s)", a.role)
	case KindReflexiveProperty:
		return fmt.Sprintf("Reflexive(%s)", a.role)
	case KindIrreflexiveProperty:
		return fmt.Sprintf("Irreflexive(%s)", a.role)
	case KindEquivalentProperties:
		return joinRoles(a.roles, " ≡ ")
	case KindDisjointProperties:
		return "Disjoint(" + joinRoles(a.roles, ", ") + ")"
	case KindClassAssertion:
		return fmt.Sprintf("%s(%s)", a.concept2, a.individuals[0])
	case KindPropertyAssertion:
		return fmt.Sprintf("%s(%s, %s)", a.role, a.individuals[0], a.individuals[1])
	case KindNegativePropertyAssertion:
		return fmt.Sprintf("¬%s(%s, %s)", a.role, a.individuals[0], a.individuals[1])
	case KindSameIndividual:
		return strings.Join(a.individuals, " ≈ ")
	case KindDifferentIndividuals:
		return strings.Join(a.individuals, " ≠ ")
	case KindDeclaration:
		return fmt.Sprintf("Declaration(%s)", a.entity)
	case KindAnnotation:
		return fmt.Sprintf("Annotation(%q)", a.annotation)
	default:
		return fmt.Sprintf("<axiom kind=%d>", int(a.kind))
	}
}

func joinConcepts(cs []Concept, sep string) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, sep)
}

func joinRoles(rs []Role, sep string) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = r.String()
	}
	return strings.Join(parts, sep)
}
