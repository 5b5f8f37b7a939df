package expr

// NNF pushes negations inward, producing a concept whose only complements
// are directly above atomic classes (§4.3 FLAG_NNF_STRICT, §6
// Concept::nnf()). NNF is idempotent: NNF(NNF(c)).Equal(NNF(c)).
func NNF(c Concept) Concept {
	switch c.kind {
	case KindAtomic, KindTop, KindBottom, KindHasSelf, KindHasValue, KindOneOf:
		return c
	case KindComplement:
		return ComplementNNF(c.operands[0])
	case KindIntersection:
		return Intersection(nnfAll(c.operands)...)
	case KindUnion:
		return Union(nnfAll(c.operands)...)
	case KindExistential:
		return Existential(c.role, NNF(c.operands[0]))
	case KindUniversal:
		return Universal(c.role, NNF(c.operands[0]))
	case KindMinCard:
		return MinCard(c.card, c.role, NNF(c.operands[0]))
	case KindMaxCard:
		return MaxCard(c.card, c.role, NNF(c.operands[0]))
	case KindExactCard:
		return ExactCard(c.card, c.role, NNF(c.operands[0]))
	default:
		return c
	}
}

func nnfAll(cs []Concept) []Concept {
	out := make([]Concept, len(cs))
	for i, c := range cs {
		out[i] = NNF(c)
	}
	return out
}

// ComplementNNF computes NNF(¬c): negation-preserving NNF (§6
// Concept::complement_nnf()). Unlike NNF, the result is the NNF of the
// complement of c, not of c itself.
func ComplementNNF(c Concept) Concept {
	switch c.kind {
	case KindAtomic:
		return Complement(c)
	case KindTop:
		return Bottom()
	case KindBottom:
		return Top()
	case KindComplement:
		return NNF(c.operands[0])
	case KindIntersection:
		return Union(complementAll(c.operands)...)
	case KindUnion:
		return Intersection(complementAll(c.operands)...)
	case KindExistential:
		return Universal(c.role, ComplementNNF(c.operands[0]))
	case KindUniversal:
		return Existential(c.role, ComplementNNF(c.operands[0]))
	case KindMinCard:
		// ¬(≥n R.C) = ≤(n-1) R.C
		if c.card <= 0 {
			return Bottom()
		}
		return MaxCard(c.card-1, c.role, NNF(c.operands[0]))
	case KindMaxCard:
		// ¬(≤n R.C) = ≥(n+1) R.C
		return MinCard(c.card+1, c.role, NNF(c.operands[0]))
	case KindExactCard:
		// ¬(=n R.C) = (≤(n-1) R.C) ⊔ (≥(n+1) R.C)
		filler := NNF(c.operands[0])
		above := MinCard(c.card+1, c.role, filler)
		if c.card <= 0 {
			return above
		}
		below := MaxCard(c.card-1, c.role, filler)
		return Union(below, above)
	case KindHasSelf, KindHasValue, KindOneOf:
		return Complement(c)
	default:
		return Complement(c)
	}
}

func complementAll(cs []Concept) []Concept {
	out := make([]Concept, len(cs))
	for i, c := range cs {
		out[i] = ComplementNNF(c)
	}
	return out
}

// IsNNF reports whether c has complements only directly above atomic
// classes, as FLAG_NNF_STRICT requires on input.
func IsNNF(c Concept) bool {
	switch c.kind {
	case KindComplement:
		return c.operands[0].kind == KindAtomic
	case KindIntersection, KindUnion:
		for _, o := range c.operands {
			if !IsNNF(o) {
				return false
			}
		}
		return true
	case KindExistential, KindUniversal, KindMinCard, KindMaxCard, KindExactCard:
		return IsNNF(c.operands[0])
	default:
		return true
	}
}
