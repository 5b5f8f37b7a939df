package expr

// Equal reports structural (syntactic) equality of two concepts.
func (c Concept) Equal(o Concept) bool {
	if c.kind != o.kind {
		return false
	}
	switch c.kind {
	case KindAtomic:
		return c.name == o.name
	case KindTop, KindBottom:
		return true
	case KindComplement, KindExistential, KindUniversal, KindMinCard, KindMaxCard, KindExactCard:
		if c.card != o.card || !c.role.Equal(o.role) {
			return false
		}
		return equalConceptSlice(c.operands, o.operands)
	case KindHasSelf:
		return c.role.Equal(o.role)
	case KindHasValue:
		return c.role.Equal(o.role) && c.individuals[0] == o.individuals[0]
	case KindOneOf:
		return equalStringSetOrdered(c.individuals, o.individuals)
	case KindIntersection, KindUnion:
		return equalConceptMultiset(c.operands, o.operands)
	default:
		return false
	}
}

func equalConceptSlice(a, b []Concept) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// equalConceptMultiset compares intersection/union operands order-
// insensitively, matching OWL's set semantics for n-ary constructors.
func equalConceptMultiset(a, b []Concept) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, x := range a {
		found := false
		for j, y := range b {
			if used[j] {
				continue
			}
			if x.Equal(y) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func equalStringSetOrdered(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, x := range a {
		found := false
		for j, y := range b {
			if used[j] {
				continue
			}
			if x == y {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Equal reports structural equality of two axioms. Origin annotations are
// not compared: two axioms with the same logical content but different
// provenance are considered equal for set-membership purposes.
func (a Axiom) Equal(o Axiom) bool {
	if a.kind != o.kind {
		return false
	}
	switch a.kind {
	case KindSubClassOf:
		return a.concepts[0].Equal(o.concepts[0]) && a.concepts[1].Equal(o.concepts[1])
	case KindEquivalentClasses, KindDisjointClasses, KindDisjointUnion:
		return equalConceptMultiset(a.concepts, o.concepts)
	case KindObjectPropertyDomain, KindObjectPropertyRange:
		return a.role.Equal(o.role) && a.concept1.Equal(o.concept1)
	case KindSubObjectPropertyOf:
		return a.roles[0].Equal(o.roles[0]) && a.roles[1].Equal(o.roles[1])
	case KindSubPropertyChainOf:
		if !a.roles[0].Equal(o.roles[0]) || len(a.chain) != len(o.chain) {
			return false
		}
		for i := range a.chain {
			if !a.chain[i].Equal(o.chain[i]) {
				return false
			}
		}
		return true
	case KindInverseProperties:
		return (a.roles[0].Equal(o.roles[0]) && a.roles[1].Equal(o.roles[1])) ||
			(a.roles[0].Equal(o.roles[1]) && a.roles[1].Equal(o.roles[0]))
	case KindTransitiveProperty, KindSymmetricProperty, KindAsymmetricProperty,
		KindReflexiveProperty, KindIrreflexiveProperty:
		return a.role.Equal(o.role)
	case KindEquivalentProperties, KindDisjointProperties:
		return equalRoleMultiset(a.roles, o.roles)
	case KindClassAssertion:
		return a.concept2.Equal(o.concept2) && a.individuals[0] == o.individuals[0]
	case KindPropertyAssertion, KindNegativePropertyAssertion:
		return a.role.Equal(o.role) && a.individuals[0] == o.individuals[0] && a.individuals[1] == o.individuals[1]
	case KindSameIndividual, KindDifferentIndividuals:
		return equalStringSetOrdered(a.individuals, o.individuals)
	case KindDeclaration:
		return a.declKind == o.declKind && a.entity == o.entity
	case KindAnnotation:
		return a.annotation == o.annotation
	default:
		return false
	}
}

func equalRoleMultiset(a, b []Role) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, x := range a {
		found := false
		for j, y := range b {
			if used[j] {
				continue
			}
			if x.Equal(y) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
