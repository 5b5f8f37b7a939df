// Package refine implements the RefinementOperator (§3, §4.1
// Component 10, §4.3): syntax-directed generalization and
// specialization over Concept and Role, built from a (way, back) pair
// of covers.
package refine

import (
	"sort"

	"github.com/nodeadmin/dlrepair/expr"
)

// Direction selects which way the operator moves the subsumption
// lattice: Generalize widens (moves up), Specialize narrows (moves
// down).
type Direction int

const (
	Generalize Direction = iota
	Specialize
)

func (d Direction) opposite() Direction {
	if d == Generalize {
		return Specialize
	}
	return Generalize
}

// Opposite returns the reverse direction (Generalize ↔ Specialize), for
// callers outside this package that need to flip direction explicitly
// (e.g. weaken.AxiomWeakener mirroring Operator.Other()).
func (d Direction) Opposite() Direction { return d.opposite() }

// ConceptCover is the subset of cover.ConceptCover / cover.CachedConceptCover
// the operator needs.
type ConceptCover interface {
	UpCover(c expr.Concept) []expr.Concept
	DownCover(c expr.Concept) []expr.Concept
}

// RoleCover is the subset of cover.RoleCover the operator needs.
type RoleCover interface {
	UpCover(r expr.Role, simpleOnly bool) []expr.Role
	DownCover(r expr.Role, simpleOnly bool) []expr.Role
}

// Flags gates which concept constructs the operator accepts and how it
// reassembles n-ary operators (§4.3).
type Flags struct {
	// ALCStrict rejects any non-ALC construct (role restrictions beyond
	// plain ∃/∀ are already out of ALC; this flag rejects those too).
	ALCStrict bool
	// SROIQStrict enforces binary ⊓/⊔ on output.
	SROIQStrict bool
	// NNFStrict requires input already in NNF and keeps output in NNF
	// (negations produced via expr.ComplementNNF instead of expr.Complement).
	NNFStrict bool
	// OWL2SingleOperands permits singleton ⊓/⊔ instead of collapsing
	// them to their sole operand.
	OWL2SingleOperands bool
}

// NotSupported reports that a construct was refined under a strict
// flag that forbids it (§4.3 "Failure: in strict mode, encountering a
// non-conforming axiom fails with NotSupported").
type NotSupported struct {
	Concept expr.Concept
}

func (e *NotSupported) Error() string {
	return "refine: construct not supported under the active strict flags: " + e.Concept.String()
}

// Operator is a RefinementOperator fixed to one direction and cover
// pair (§4.3).
type Operator struct {
	dir      Direction
	concepts ConceptCover
	roles    RoleCover
	flags    Flags
}

// New constructs an Operator. dir selects generalize (way=upCover,
// back=downCover) or specialize (way=downCover, back=upCover).
func New(dir Direction, concepts ConceptCover, roles RoleCover, flags Flags) *Operator {
	return &Operator{dir: dir, concepts: concepts, roles: roles, flags: flags}
}

// Other returns an Operator for the opposite direction over the same
// covers and flags (the "back" operator §4.3 refinement rules
// reference for complement and cardinality fillers).
func (o *Operator) Other() *Operator {
	return New(o.dir.opposite(), o.concepts, o.roles, o.flags)
}

func (o *Operator) way(c expr.Concept) []expr.Concept {
	if o.dir == Generalize {
		return o.concepts.UpCover(c)
	}
	return o.concepts.DownCover(c)
}

func (o *Operator) wayRole(r expr.Role, simpleOnly bool) []expr.Role {
	if o.dir == Generalize {
		return o.roles.UpCover(r, simpleOnly)
	}
	return o.roles.DownCover(r, simpleOnly)
}

func (o *Operator) backRole(r expr.Role, simpleOnly bool) []expr.Role {
	return o.Other().wayRole(r, simpleOnly)
}

func (o *Operator) wayInt(n int, intUp, intDown func(int) []int) []int {
	if o.dir == Generalize {
		return intUp(n)
	}
	return intDown(n)
}

func (o *Operator) negate(c expr.Concept) expr.Concept {
	if o.flags.NNFStrict {
		return expr.ComplementNNF(c)
	}
	return expr.Complement(c)
}

// Refine returns c's single-step refinements in the operator's
// direction (§4.3's per-constructor table; specialization is the
// structural mirror of generalization with way/back and the recursive
// direction on antitone positions swapped).
func (o *Operator) Refine(c expr.Concept, intUp, intDown func(int) []int) ([]expr.Concept, error) {
	if o.flags.ALCStrict {
		switch c.Kind() {
		case expr.KindHasValue, expr.KindHasSelf, expr.KindMinCard, expr.KindMaxCard, expr.KindExactCard, expr.KindOneOf:
			return nil, &NotSupported{Concept: c}
		}
	}
	if o.flags.NNFStrict && !expr.IsNNF(c) {
		return nil, &NotSupported{Concept: c}
	}

	switch c.Kind() {
	case expr.KindAtomic, expr.KindTop, expr.KindBottom:
		return dedupConcepts(o.way(c)), nil

	case expr.KindComplement:
		inner, err := o.Other().Refine(c.Filler(), intUp, intDown)
		if err != nil {
			return nil, err
		}
		out := make([]expr.Concept, 0, len(inner)+len(o.way(c)))
		for _, c2 := range inner {
			out = append(out, o.negate(c2))
		}
		out = append(out, o.way(c)...)
		return dedupConcepts(out), nil

	case expr.KindIntersection:
		return o.refineNary(c, expr.KindIntersection, intUp, intDown)

	case expr.KindUnion:
		return o.refineNary(c, expr.KindUnion, intUp, intDown)

	case expr.KindExistential:
		return o.refineExistential(c, intUp, intDown)

	case expr.KindUniversal:
		return o.refineUniversal(c, intUp, intDown)

	case expr.KindHasSelf:
		var out []expr.Concept
		for _, r := range o.wayRole(c.Role(), true) {
			out = append(out, expr.HasSelf(r))
		}
		return dedupConcepts(out), nil

	case expr.KindMaxCard:
		return o.refineMaxCard(c, intUp, intDown)

	case expr.KindMinCard:
		return o.refineMinCard(c, intUp, intDown)

	case expr.KindExactCard:
		return o.refineExactCard(c, intUp, intDown)

	case expr.KindOneOf, expr.KindHasValue:
		return nil, nil

	default:
		return nil, nil
	}
}

// refineNary implements the pointwise-operand rule shared by ⊓ and ⊔:
// for each operand position, substitute one refinement of that operand
// at a time, then reassemble and dedup (collapsing a resulting
// singleton unless OWL2SingleOperands is set).
func (o *Operator) refineNary(c expr.Concept, kind expr.ConceptKind, intUp, intDown func(int) []int) ([]expr.Concept, error) {
	ops := c.Operands()
	var out []expr.Concept
	for i, op := range ops {
		refined, err := o.Refine(op, intUp, intDown)
		if err != nil {
			return nil, err
		}
		for _, r := range refined {
			next := append([]expr.Concept(nil), ops...)
			next[i] = r
			out = append(out, o.reassemble(kind, next))
		}
	}
	return dedupConcepts(out), nil
}

func (o *Operator) reassemble(kind expr.ConceptKind, ops []expr.Concept) expr.Concept {
	deduped := dedupConcepts(ops)
	if len(deduped) == 1 && !o.flags.OWL2SingleOperands {
		return deduped[0]
	}
	if o.flags.SROIQStrict && len(deduped) > 2 {
		return foldBinary(kind, deduped)
	}
	if kind == expr.KindIntersection {
		return expr.Intersection(deduped...)
	}
	return expr.Union(deduped...)
}

// foldBinary right-folds n-ary operands into binary form, enforced by
// SROIQStrict ("enforce binary ⊓/⊔" §4.3).
func foldBinary(kind expr.ConceptKind, ops []expr.Concept) expr.Concept {
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

func (o *Operator) refineExistential(c expr.Concept, intUp, intDown func(int) []int) ([]expr.Concept, error) {
	r, filler := c.Role(), c.Filler()
	fillerRefined, err := o.Refine(filler, intUp, intDown)
	if err != nil {
		return nil, err
	}
	var out []expr.Concept
	for _, f := range fillerRefined {
		out = append(out, expr.Existential(r, f))
	}
	for _, r2 := range o.wayRole(r, false) {
		out = append(out, expr.Existential(r2, filler))
	}
	out = append(out, o.way(c)...)
	return dedupConcepts(out), nil
}

func (o *Operator) refineUniversal(c expr.Concept, intUp, intDown func(int) []int) ([]expr.Concept, error) {
	r, filler := c.Role(), c.Filler()
	fillerRefined, err := o.Refine(filler, intUp, intDown)
	if err != nil {
		return nil, err
	}
	var out []expr.Concept
	for _, f := range fillerRefined {
		out = append(out, expr.Universal(r, f))
	}
	// ∀ is antitone in the role position: generalizing ∀R.C needs a
	// narrower (specialized) role, hence the swapped direction.
	for _, r2 := range o.backRole(r, false) {
		out = append(out, expr.Universal(r2, filler))
	}
	return dedupConcepts(out), nil
}

// refineMaxCard implements ≤n R.C: antitone in C (so the filler
// refines via the opposite direction), same direction in R (simple
// roles only), monotone in n via the way-direction integer cover.
func (o *Operator) refineMaxCard(c expr.Concept, intUp, intDown func(int) []int) ([]expr.Concept, error) {
	n, r, filler := c.Card(), c.Role(), c.Filler()
	fillerRefined, err := o.Other().Refine(filler, intUp, intDown)
	if err != nil {
		return nil, err
	}
	var out []expr.Concept
	for _, f := range fillerRefined {
		out = append(out, expr.MaxCard(n, r, f))
	}
	for _, r2 := range o.wayRole(r, true) {
		out = append(out, expr.MaxCard(n, r2, filler))
	}
	for _, m := range o.wayInt(n, intUp, intDown) {
		out = append(out, expr.MaxCard(m, r, filler))
	}
	return dedupConcepts(out), nil
}

// refineMinCard implements ≥n R.C: the dual of MaxCard — monotone in
// C (same-direction filler refinement) and uses the opposite integer
// cover.
func (o *Operator) refineMinCard(c expr.Concept, intUp, intDown func(int) []int) ([]expr.Concept, error) {
	n, r, filler := c.Card(), c.Role(), c.Filler()
	fillerRefined, err := o.Refine(filler, intUp, intDown)
	if err != nil {
		return nil, err
	}
	var out []expr.Concept
	for _, f := range fillerRefined {
		out = append(out, expr.MinCard(n, r, f))
	}
	for _, r2 := range o.wayRole(r, true) {
		out = append(out, expr.MinCard(n, r2, filler))
	}
	for _, m := range o.Other().wayInt(n, intUp, intDown) {
		out = append(out, expr.MinCard(m, r, filler))
	}
	return dedupConcepts(out), nil
}

// refineExactCard rewrites =n R.C as ≥n R.C ⊓ ≤n R.C (§4.9's cardinality
// normalization target) and refines each conjunct, matching the
// literal spec rule "rewrite as ≥n R.C ⊓ ≤n R.C and refine each
// conjunct" — the result is returned as the rewritten Intersection
// shape, not reassembled back into ExactCard.
func (o *Operator) refineExactCard(c expr.Concept, intUp, intDown func(int) []int) ([]expr.Concept, error) {
	n, r, filler := c.Card(), c.Role(), c.Filler()
	min, max := expr.MinCard(n, r, filler), expr.MaxCard(n, r, filler)
	return o.refineNary(expr.Intersection(min, max), expr.KindIntersection, intUp, intDown)
}

func conceptKey(c expr.Concept) string { return c.String() }

func dedupConcepts(cs []expr.Concept) []expr.Concept {
	seen := map[string]struct{}{}
	out := make([]expr.Concept, 0, len(cs))
	for _, c := range cs {
		k := conceptKey(c)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return conceptKey(out[i]) < conceptKey(out[j]) })
	return out
}
