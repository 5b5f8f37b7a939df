// Package normalize rewrites axioms into a canonical SROIQ form (§3,
// §4.1 Component 8, §4.9): TBox axioms reduce to SubClassOf, ABox
// n-ary assertions split into binary form, RBox constructs reduce to
// role inclusions/chains/DisjointProperties or TBox axioms, and
// concept constructors binarize and optionally reduce to NNF.
package normalize

import (
	"github.com/google/uuid"

	"github.com/nodeadmin/dlrepair/expr"
)

// Options controls the optional normalization passes (§4.9).
type Options struct {
	// NNF pushes negation to the leaves of every concept (optional
	// concept-normalization pass).
	NNF bool
	// BinarizeNAry rewrites n-ary ⊓/⊔ into right-folded binary form.
	BinarizeNAry bool
	// FullPairwiseEquality expands SameIndividual into the full O(n²)
	// pairwise form instead of the minimal transitive chain.
	FullPairwiseEquality bool
}

// Axioms runs all four normalization passes, in order: TBox, ABox,
// RBox, then Concept (§4.9). Declarations and annotations pass through
// unchanged.
func Axioms(axioms []expr.Axiom, opts Options) []expr.Axiom {
	out := tboxPass(axioms)
	out = aboxPass(out, opts)
	out = rboxPass(out)
	out = conceptPass(out, opts)
	return out
}

func derived(from expr.Axiom, to expr.Axiom) expr.Axiom {
	return to.WithOrigin(from)
}

// --- TBox pass: every non-SubClassOf TBox axiom reduces to SubClassOf. ---

func tboxPass(axioms []expr.Axiom) []expr.Axiom {
	expanded := make([]expr.Axiom, 0, len(axioms))
	for _, a := range axioms {
		if a.Kind() == expr.KindDisjointUnion {
			expanded = append(expanded, expandDisjointUnion(a)...)
			continue
		}
		expanded = append(expanded, a)
	}

	out := make([]expr.Axiom, 0, len(expanded))
	for _, a := range expanded {
		switch a.Kind() {
		case expr.KindEquivalentClasses:
			out = append(out, equivalentClassesToSubClassOf(a)...)
		case expr.KindDisjointClasses:
			out = append(out, disjointClassesToSubClassOf(a)...)
		case expr.KindObjectPropertyDomain:
			out = append(out, domainToSubClassOf(a))
		case expr.KindObjectPropertyRange:
			out = append(out, rangeToSubClassOf(a))
		default:
			out = append(out, a)
		}
	}
	return out
}

// expandDisjointUnion rewrites DisjointUnion(A, C1..Cn) into
// Disjoint(C1..Cn) + Equivalent(A, C1⊔...⊔Cn) (§4.9 "DisjointUnion →
// disjoint+equivalent → subclasses"); the caller's second loop reduces
// both further to SubClassOf.
func expandDisjointUnion(a expr.Axiom) []expr.Axiom {
	cs := a.Concepts()
	defined, parts := cs[0], cs[1:]
	disjoint := derived(a, expr.DisjointClasses(parts...))
	equivalent := derived(a, expr.EquivalentClasses(defined, expr.Union(parts...)))
	return []expr.Axiom{disjoint, equivalent}
}

// equivalentClassesToSubClassOf rewrites C1 ≡ ... ≡ Cn into the cyclic
// chain C1⊑C2, C2⊑C3, ..., Cn⊑C1, which entails full equivalence with
// n rather than n(n-1) axioms. Always pairwise SubClassOf, never
// DisjointClasses (§9 open-question decision, see DESIGN.md).
func equivalentClassesToSubClassOf(a expr.Axiom) []expr.Axiom {
	cs := a.Concepts()
	if len(cs) < 2 {
		return nil
	}
	out := make([]expr.Axiom, 0, len(cs))
	for i := range cs {
		next := cs[(i+1)%len(cs)]
		out = append(out, derived(a, expr.SubClassOf(cs[i], next)))
	}
	return out
}

// disjointClassesToSubClassOf rewrites Disjoint(C1..Cn) into Ci ⊑ ¬Cj
// for every i<j.
func disjointClassesToSubClassOf(a expr.Axiom) []expr.Axiom {
	cs := a.Concepts()
	var out []expr.Axiom
	for i := 0; i < len(cs); i++ {
		for j := i + 1; j < len(cs); j++ {
			out = append(out, derived(a, expr.SubClassOf(cs[i], expr.Complement(cs[j]))))
		}
	}
	return out
}

// domainToSubClassOf rewrites Domain(R)=C into ∃R.⊤ ⊑ C.
func domainToSubClassOf(a expr.Axiom) expr.Axiom {
	return derived(a, expr.SubClassOf(expr.Existential(a.RoleArg(), expr.Top()), a.DomainRangeConcept()))
}

// rangeToSubClassOf rewrites Range(R)=C into ⊤ ⊑ ∀R.C.
func rangeToSubClassOf(a expr.Axiom) expr.Axiom {
	return derived(a, expr.SubClassOf(expr.Top(), expr.Universal(a.RoleArg(), a.DomainRangeConcept())))
}

// --- ABox pass: n-ary Same/DifferentIndividuals split into binary form. ---

func aboxPass(axioms []expr.Axiom, opts Options) []expr.Axiom {
	out := make([]expr.Axiom, 0, len(axioms))
	for _, a := range axioms {
		switch a.Kind() {
		case expr.KindSameIndividual:
			out = append(out, sameIndividualToBinary(a, opts.FullPairwiseEquality)...)
		case expr.KindDifferentIndividuals:
			out = append(out, differentIndividualsToBinary(a)...)
		default:
			out = append(out, a)
		}
	}
	return out
}

func sameIndividualToBinary(a expr.Axiom, fullPairwise bool) []expr.Axiom {
	ind := a.Individuals()
	if len(ind) < 2 {
		return nil
	}
	var out []expr.Axiom
	if fullPairwise {
		for i := 0; i < len(ind); i++ {
			for j := i + 1; j < len(ind); j++ {
				out = append(out, derived(a, expr.SameIndividual(ind[i], ind[j])))
			}
		}
		return out
	}
	// Minimal transitive chain: equality is transitive, so a chain of
	// n-1 pairs entails the full equivalence class.
	for i := 0; i+1 < len(ind); i++ {
		out = append(out, derived(a, expr.SameIndividual(ind[i], ind[i+1])))
	}
	return out
}

// differentIndividualsToBinary always expands to the full pairwise
// form: unlike equality, "different" is not transitive, so a chain
// would under-assert the n(n-1)/2 required inequalities.
func differentIndividualsToBinary(a expr.Axiom) []expr.Axiom {
	ind := a.Individuals()
	var out []expr.Axiom
	for i := 0; i < len(ind); i++ {
		for j := i + 1; j < len(ind); j++ {
			out = append(out, derived(a, expr.DifferentIndividuals(ind[i], ind[j])))
		}
	}
	return out
}

// --- RBox pass ---

func rboxPass(axioms []expr.Axiom) []expr.Axiom {
	out := make([]expr.Axiom, 0, len(axioms))
	for _, a := range axioms {
		switch a.Kind() {
		case expr.KindTransitiveProperty:
			out = append(out, derived(a, expr.SubPropertyChainOf([]expr.Role{a.RoleArg(), a.RoleArg()}, a.RoleArg())))
		case expr.KindSymmetricProperty:
			out = append(out, derived(a, expr.SubObjectPropertyOf(a.RoleArg().Inverse(), a.RoleArg())))
		case expr.KindAsymmetricProperty:
			out = append(out, derived(a, expr.DisjointProperties(a.RoleArg(), a.RoleArg().Inverse())))
		case expr.KindReflexiveProperty:
			out = append(out, reflexiveToTBox(a)...)
		case expr.KindIrreflexiveProperty:
			out = append(out, derived(a, expr.SubClassOf(expr.Top(), expr.Complement(expr.HasSelf(a.RoleArg())))))
		case expr.KindInverseProperties:
			rs := a.Roles()
			out = append(out,
				derived(a, expr.SubObjectPropertyOf(rs[0], rs[1].Inverse())),
				derived(a, expr.SubObjectPropertyOf(rs[1], rs[0].Inverse())),
			)
		case expr.KindEquivalentProperties:
			out = append(out, equivalentPropertiesToSubRole(a)...)
		default:
			out = append(out, a)
		}
	}
	return out
}

// reflexiveToTBox rewrites Reflexive(R) into ⊤ ⊑ ∃R.Self via a fresh,
// synthetic simple sub-role R' ⊑ R rather than asserting ∃R.Self on R
// directly: Self restrictions are only well-formed on simple roles
// (§4.3's RIA regularity/simplicity constraint), and R itself may
// already be non-simple (e.g. it appears in a role chain elsewhere).
// R' is reflexive by construction and R' ⊑ R approximates R's intended
// reflexivity without violating simplicity — this is the one place
// normalization is not strictly equivalence-preserving (§8 property 7
// notes the deviation explicitly).
func reflexiveToTBox(a expr.Axiom) []expr.Axiom {
	fresh := expr.NamedRole("reflexive-sub-role-" + uuid.NewString())
	return []expr.Axiom{
		derived(a, expr.SubObjectPropertyOf(fresh, a.RoleArg())),
		derived(a, expr.SubClassOf(expr.Top(), expr.HasSelf(fresh))),
	}
}

// equivalentPropertiesToSubRole rewrites R1 ≡ ... ≡ Rn into the cyclic
// chain R1⊑R2, ..., Rn⊑R1, mirroring equivalentClassesToSubClassOf.
func equivalentPropertiesToSubRole(a expr.Axiom) []expr.Axiom {
	rs := a.Roles()
	if len(rs) < 2 {
		return nil
	}
	out := make([]expr.Axiom, 0, len(rs))
	for i := range rs {
		next := rs[(i+1)%len(rs)]
		out = append(out, derived(a, expr.SubObjectPropertyOf(rs[i], next)))
	}
	return out
}

// --- Concept pass: binarize n-ary operators, reduce HasValue/ExactCard, optional NNF. ---

func conceptPass(axioms []expr.Axiom, opts Options) []expr.Axiom {
	out := make([]expr.Axiom, len(axioms))
	for i, a := range axioms {
		out[i] = rewriteAxiomConcepts(a, opts)
	}
	return out
}

func rewriteAxiomConcepts(a expr.Axiom, opts Options) expr.Axiom {
	switch a.Kind() {
	case expr.KindSubClassOf:
		return expr.SubClassOf(rewriteConcept(a.Sub(), opts), rewriteConcept(a.Sup(), opts)).WithOrigin(a)
	case expr.KindClassAssertion:
		return expr.ClassAssertion(rewriteConcept(a.AssertedConcept(), opts), a.Individual()).WithOrigin(a)
	case expr.KindEquivalentClasses, expr.KindDisjointClasses:
		cs := a.Concepts()
		rewritten := make([]expr.Concept, len(cs))
		for i, c := range cs {
			rewritten[i] = rewriteConcept(c, opts)
		}
		if a.Kind() == expr.KindEquivalentClasses {
			return expr.EquivalentClasses(rewritten...).WithOrigin(a)
		}
		return expr.DisjointClasses(rewritten...).WithOrigin(a)
	default:
		return a
	}
}

// rewriteConcept normalizes HasValue/ExactCard into their SROIQ
// expansions, optionally binarizes n-ary Intersection/Union, and
// optionally pushes the result into NNF. Order matters: expansion and
// binarization run first so NNF sees only the primitive constructors.
func rewriteConcept(c expr.Concept, opts Options) expr.Concept {
	c = expandCardinalities(c, opts)
	if opts.BinarizeNAry {
		c = binarize(c, opts)
	} else {
		c = mapOperands(c, func(o expr.Concept) expr.Concept { return rewriteConcept(o, opts) })
	}
	if opts.NNF {
		c = expr.NNF(c)
	}
	return c
}

// expandCardinalities rewrites HasValue(R,a) into Existential(R,
// OneOf(a)) and ExactCard(n,R,C) into MinCard(n,R,C) ⊓ MaxCard(n,R,C)
// (§4.9 "rewrite HasValue, ExactCardinality into conjunction of
// Min/Max"), recursing into fillers first.
func expandCardinalities(c expr.Concept, opts Options) expr.Concept {
	c = mapOperands(c, func(o expr.Concept) expr.Concept { return expandCardinalities(o, opts) })
	switch c.Kind() {
	case expr.KindHasValue:
		return expr.Existential(c.Role(), expr.OneOf(c.Individuals()[0]))
	case expr.KindExactCard:
		return expr.Intersection(
			expr.MinCard(c.Card(), c.Role(), c.Filler()),
			expr.MaxCard(c.Card(), c.Role(), c.Filler()),
		)
	default:
		return c
	}
}

// binarize right-folds n-ary Intersection/Union into binary form,
// recursing into operands first.
func binarize(c expr.Concept, opts Options) expr.Concept {
	switch c.Kind() {
	case expr.KindIntersection, expr.KindUnion:
		ops := c.Operands()
		rewritten := make([]expr.Concept, len(ops))
		for i, o := range ops {
			rewritten[i] = binarize(o, opts)
		}
		return foldBinary(c.Kind(), rewritten)
	default:
		return mapOperands(c, func(o expr.Concept) expr.Concept { return binarize(o, opts) })
	}
}

func foldBinary(kind expr.ConceptKind, ops []expr.Concept) expr.Concept {
	if len(ops) == 0 {
		if kind == expr.KindIntersection {
			return expr.Top()
		}
		return expr.Bottom()
	}
	if len(ops) == 1 {
		return ops[0]
	}
	acc := ops[len(ops)-1]
	for i := len(ops) - 2; i >= 0; i-- {
		if kind == expr.KindIntersection {
			acc = expr.Intersection(ops[i], acc)
		} else {
			acc = expr.Union(ops[i], acc)
		}
	}
	return acc
}

// mapOperands rewrites a concept's unary/n-ary filler operands via f,
// leaving leaf and role-only constructs (Atomic, Top, Bottom, HasSelf,
// HasValue, OneOf) untouched.
func mapOperands(c expr.Concept, f func(expr.Concept) expr.Concept) expr.Concept {
	switch c.Kind() {
	case expr.KindComplement:
		return expr.Complement(f(c.Filler()))
	case expr.KindIntersection:
		ops := c.Operands()
		out := make([]expr.Concept, len(ops))
		for i, o := range ops {
			out[i] = f(o)
		}
		return expr.Intersection(out...)
	case expr.KindUnion:
		ops := c.Operands()
		out := make([]expr.Concept, len(ops))
		for i, o := range ops {
			out[i] = f(o)
		}
		return expr.Union(out...)
	case expr.KindExistential:
		return expr.Existential(c.Role(), f(c.Filler()))
	case expr.KindUniversal:
		return expr.Universal(c.Role(), f(c.Filler()))
	case expr.KindMinCard:
		return expr.MinCard(c.Card(), c.Role(), f(c.Filler()))
	case expr.KindMaxCard:
		return expr.MaxCard(c.Card(), c.Role(), f(c.Filler()))
	case expr.KindExactCard:
		return expr.ExactCard(c.Card(), c.Role(), f(c.Filler()))
	default:
		return c
	}
}
