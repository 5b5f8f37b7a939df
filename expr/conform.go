package expr

// IsALC reports whether c uses only ALC constructors: atomic classes,
// ⊤/⊥, complement, intersection, union, and unqualified-role
// existential/universal restrictions. Used by the refinement operator's
// ALC_STRICT flag (§4.3).
func IsALC(c Concept) bool {
	switch c.kind {
	case KindAtomic, KindTop, KindBottom:
		return true
	case KindComplement:
		return IsALC(c.operands[0])
	case KindIntersection, KindUnion:
		for _, o := range c.operands {
			if !IsALC(o) {
				return false
			}
		}
		return true
	case KindExistential, KindUniversal:
		return IsALC(c.operands[0])
	default:
		return false
	}
}

// IsBinary reports whether a set-like concept (Intersection/Union) or
// axiom (EquivalentClasses/DisjointClasses/SameIndividual/
// DifferentIndividuals/DisjointProperties) has exactly two operands, as
// SROIQ_STRICT requires (§4.3 FLAG_SROIQ_STRICT).
func (c Concept) IsBinary() bool {
	switch c.kind {
	case KindIntersection, KindUnion:
		return len(c.operands) == 2
	default:
		return true
	}
}

// IsBinary reports the SROIQ_STRICT binary-operand requirement for axioms
// whose OWL syntax is conventionally n-ary in this spec but binary in
// strict SROIQ (EquivalentClasses, DisjointClasses, SameIndividual,
// DifferentIndividuals, DisjointProperties).
func (a Axiom) IsBinary() bool {
	switch a.kind {
	case KindEquivalentClasses, KindDisjointClasses, KindSameIndividual,
		KindDifferentIndividuals, KindEquivalentProperties, KindDisjointProperties:
		n := len(a.concepts)
		if n == 0 {
			n = len(a.roles)
			if n == 0 {
				n = len(a.individuals)
			}
		}
		return n == 2
	default:
		return true
	}
}
