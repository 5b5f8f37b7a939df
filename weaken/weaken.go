// Package weaken implements AxiomRefinement (§3, §4.1 Component 11,
// §4.4): lifting RefinementOperator's concept/role-level generalization
// and specialization up to the shape of an Axiom, so a repair algorithm
// can ask "what are the weaker (or stronger) versions of this axiom?"
package weaken

import (
	"sort"

	"github.com/nodeadmin/dlrepair/expr"
	"github.com/nodeadmin/dlrepair/preorder"
	"github.com/nodeadmin/dlrepair/refine"
)

// RegularPreorder tracks the ordering used to guard RBox regularity
// (§4.4: "verified via a regular_preorder.assertSuccessor(a,b) check
// plus denySuccessor(b,a) for chain predecessors") when a role
// inclusion's super-role is refined upward: widening chain ⊑ sup to
// chain ⊑ sup′ is only safe if sup′ does not already regular-precede
// any role in chain, which would close a cycle and make the RBox
// non-regular (undecidable).
type RegularPreorder struct {
	pre *preorder.Cache[string]
}

// NewRegularPreorder returns an empty regular-order tracker.
func NewRegularPreorder() *RegularPreorder {
	return &RegularPreorder{pre: preorder.New[string]()}
}

// AssertSuccessor records a ≺ b.
func (rp *RegularPreorder) AssertSuccessor(a, b expr.Role) {
	rp.pre.Assert(a.String(), b.String())
}

// DenySuccessor records that b does not ≺ a, the converse bookkeeping
// performed alongside AssertSuccessor for each chain predecessor.
func (rp *RegularPreorder) DenySuccessor(b, a expr.Role) {
	rp.pre.Deny(b.String(), a.String())
}

// Regular reports whether widening chain ⊑ _ to target candidate keeps
// the RBox regular: candidate must not already be a known successor of
// itself via any role in chain (no cycle candidate ≺ r ≺ ... ≺
// candidate).
func (rp *RegularPreorder) Regular(chain []expr.Role, candidate expr.Role) bool {
	for _, r := range chain {
		for _, succ := range rp.pre.KnownStrictSucc(candidate.String()) {
			if succ == r.String() {
				return false
			}
		}
	}
	return true
}

// Commit records the regularity bookkeeping for an accepted chain ⊑ sup
// refinement.
func (rp *RegularPreorder) Commit(chain []expr.Role, sup expr.Role) {
	for _, r := range chain {
		rp.AssertSuccessor(r, sup)
		rp.DenySuccessor(sup, r)
	}
}

// Flags gates axiom-level weakening/strengthening behavior, layered on
// top of the concept-level refine.Flags (§4.4's "Weakener flags").
type Flags struct {
	refine.Flags
	// SimpleRolesStrict rejects (rather than silently skips) a
	// role-position refinement that is only valid for simple roles
	// when the role in question is not simple.
	SimpleRolesStrict bool
	// NoRoleRefinement disables refining the role of property
	// assertions, SubObjectPropertyOf/SubPropertyChainOf, and
	// DisjointProperties, leaving only their identity/no-op output.
	NoRoleRefinement bool
	// Strict rejects (rather than passing through identity+no-op)
	// any axiom shape not named in §4.4's table.
	Strict bool
}

// NotSupported reports an axiom refined under a flag combination that
// forbids it (§4.4 "Failure: in strict mode, encountering a
// non-conforming axiom fails with NotSupported and the axiom").
type NotSupported struct {
	Axiom expr.Axiom
}

func (e *NotSupported) Error() string {
	return "weaken: axiom not supported under the active strict flags: " + e.Axiom.Kind().String()
}

// AxiomWeakener lifts a refine.Operator to axiom shapes (§4.4). Build
// one with NewWeakener (generalizing direction) or NewStrengthener
// (specializing direction); Other returns its opposite-direction
// counterpart over the same covers.
type AxiomWeakener struct {
	dir         refine.Direction
	op          *refine.Operator
	concepts    refine.ConceptCover
	roles       refine.RoleCover
	simpleRoles map[string]bool
	regular     *RegularPreorder
	flags       Flags
	intUp       func(int) []int
	intDown     func(int) []int
}

func newAxiomWeakener(dir refine.Direction, concepts refine.ConceptCover, roles refine.RoleCover, simpleRoles map[string]bool, regular *RegularPreorder, flags Flags, intUp, intDown func(int) []int) *AxiomWeakener {
	return &AxiomWeakener{
		dir:         dir,
		op:          refine.New(dir, concepts, roles, flags.Flags),
		concepts:    concepts,
		roles:       roles,
		simpleRoles: simpleRoles,
		regular:     regular,
		flags:       flags,
		intUp:       intUp,
		intDown:     intDown,
	}
}

// NewWeakener builds an axiom-level weakener: replacements are always
// logically weaker than (entailed by) the original axiom.
func NewWeakener(concepts refine.ConceptCover, roles refine.RoleCover, simpleRoles map[string]bool, regular *RegularPreorder, flags Flags, intUp, intDown func(int) []int) *AxiomWeakener {
	return newAxiomWeakener(refine.Generalize, concepts, roles, simpleRoles, regular, flags, intUp, intDown)
}

// NewStrengthener builds an axiom-level strengthener: replacements are
// always logically stronger than the original axiom.
func NewStrengthener(concepts refine.ConceptCover, roles refine.RoleCover, simpleRoles map[string]bool, regular *RegularPreorder, flags Flags, intUp, intDown func(int) []int) *AxiomWeakener {
	return newAxiomWeakener(refine.Specialize, concepts, roles, simpleRoles, regular, flags, intUp, intDown)
}

// Other returns the opposite-direction counterpart sharing this
// weakener's covers, simple-role set, and regular-order tracker.
func (w *AxiomWeakener) Other() *AxiomWeakener {
	return newAxiomWeakener(w.dir.Opposite(), w.concepts, w.roles, w.simpleRoles, w.regular, w.flags, w.intUp, w.intDown)
}

func (w *AxiomWeakener) noOp() expr.Axiom {
	if w.dir == refine.Generalize {
		return expr.NoOpWeakening()
	}
	return expr.NoOpStrengthening()
}

func (w *AxiomWeakener) isSimple(r expr.Role) bool { return w.simpleRoles[r.String()] }

// roleWay refines r in this weakener's own direction (the "sup-like",
// monotone position).
func (w *AxiomWeakener) roleWay(r expr.Role, simpleOnly bool) []expr.Role {
	if w.dir == refine.Generalize {
		return w.roles.UpCover(r, simpleOnly)
	}
	return w.roles.DownCover(r, simpleOnly)
}

// conceptRefine refines c in this weakener's own direction via the
// shared refine.Operator, threading the integer covers through.
func (w *AxiomWeakener) conceptRefine(c expr.Concept) ([]expr.Concept, error) {
	return w.op.Refine(c, w.intUp, w.intDown)
}

// WeakerAxioms returns a's replacements under this weakener's direction
// (§4.4's per-shape table), always including the direction's no-op
// sentinel except for Declaration, which is never refined.
func (w *AxiomWeakener) WeakerAxioms(a expr.Axiom) ([]expr.Axiom, error) {
	switch a.Kind() {
	case expr.KindDeclaration:
		return []expr.Axiom{a}, nil

	case expr.KindSubClassOf:
		return w.weakenSubClassOf(a)

	case expr.KindClassAssertion:
		return w.weakenClassAssertion(a)

	case expr.KindPropertyAssertion:
		return w.weakenPropertyAssertion(a, expr.PropertyAssertion)

	case expr.KindNegativePropertyAssertion:
		return w.weakenPropertyAssertion(a, expr.NegativePropertyAssertion)

	case expr.KindSameIndividual:
		return w.weakenIndividualSet(a, expr.SameIndividual)

	case expr.KindEquivalentClasses:
		return w.weakenClassSet(a)

	case expr.KindEquivalentProperties:
		return w.weakenPropertySet(a)

	case expr.KindDisjointClasses:
		return w.weakenDisjointClasses(a)

	case expr.KindDisjointProperties:
		return w.weakenDisjointProperties(a)

	case expr.KindSubObjectPropertyOf:
		return w.weakenSubObjectPropertyOf(a)

	case expr.KindSubPropertyChainOf:
		return w.weakenSubPropertyChainOf(a)

	default:
		return w.weakenDefault(a)
	}
}

func (w *AxiomWeakener) weakenSubClassOf(a expr.Axiom) ([]expr.Axiom, error) {
	sub, sup := a.Sub(), a.Sup()
	// Sub is antitone (shrinking it is what weakens the axiom); Sup is
	// monotone (growing it weakens the axiom). Strengthening flips both
	// via Other(), which is exactly w.dir.opposite() composed in.
	subRefined, err := w.Other().conceptRefine(sub)
	if err != nil {
		return nil, err
	}
	supRefined, err := w.conceptRefine(sup)
	if err != nil {
		return nil, err
	}
	out := make([]expr.Axiom, 0, len(subRefined)+len(supRefined)+1)
	for _, s := range subRefined {
		out = append(out, expr.SubClassOf(s, sup).WithOrigin(a))
	}
	for _, s := range supRefined {
		out = append(out, expr.SubClassOf(sub, s).WithOrigin(a))
	}
	out = append(out, w.noOp())
	return dedupAxioms(out), nil
}

func (w *AxiomWeakener) weakenClassAssertion(a expr.Axiom) ([]expr.Axiom, error) {
	refined, err := w.conceptRefine(a.AssertedConcept())
	if err != nil {
		return nil, err
	}
	out := make([]expr.Axiom, 0, len(refined)+1)
	for _, c := range refined {
		out = append(out, expr.ClassAssertion(c, a.Individual()).WithOrigin(a))
	}
	out = append(out, w.noOp())
	return dedupAxioms(out), nil
}

func (w *AxiomWeakener) weakenPropertyAssertion(a expr.Axiom, build func(expr.Role, string, string) expr.Axiom) ([]expr.Axiom, error) {
	out := []expr.Axiom{a, w.noOp()}
	if !w.flags.NoRoleRefinement {
		for _, r := range w.roleWay(a.RoleArg(), false) {
			out = append(out, build(r, a.Subject(), a.Object()).WithOrigin(a))
		}
	}
	return dedupAxioms(out), nil
}

// weakenIndividualSet implements the SameIndividual/DifferentIndividuals
// rule: for weakening with more than two operands, emit the axiom with
// one individual removed at a time; DifferentIndividuals is excluded by
// callers since §4.4 only names SameIndividual here (removing a
// DifferentIndividuals operand does not weaken pairwise inequality in
// general — it only drops constraints involving that individual, which
// §4.4 does not list as a rule, so DifferentIndividuals falls through
// to the default identity+no-op path instead).
func (w *AxiomWeakener) weakenIndividualSet(a expr.Axiom, build func(...string) expr.Axiom) ([]expr.Axiom, error) {
	individuals := a.Individuals()
	if w.dir != refine.Generalize || len(individuals) <= 2 {
		return []expr.Axiom{a, w.noOp()}, nil
	}
	out := make([]expr.Axiom, 0, len(individuals)+1)
	for i := range individuals {
		rest := make([]string, 0, len(individuals)-1)
		rest = append(rest, individuals[:i]...)
		rest = append(rest, individuals[i+1:]...)
		out = append(out, build(rest...).WithOrigin(a))
	}
	out = append(out, w.noOp())
	return dedupAxioms(out), nil
}

func (w *AxiomWeakener) weakenClassSet(a expr.Axiom) ([]expr.Axiom, error) {
	ops := a.Concepts()
	if w.dir != refine.Generalize || len(ops) <= 2 {
		return []expr.Axiom{a, w.noOp()}, nil
	}
	out := make([]expr.Axiom, 0, len(ops)+1)
	for i := range ops {
		rest := make([]expr.Concept, 0, len(ops)-1)
		rest = append(rest, ops[:i]...)
		rest = append(rest, ops[i+1:]...)
		out = append(out, expr.EquivalentClasses(rest...).WithOrigin(a))
	}
	out = append(out, w.noOp())
	return dedupAxioms(out), nil
}

func (w *AxiomWeakener) weakenPropertySet(a expr.Axiom) ([]expr.Axiom, error) {
	ops := a.Roles()
	if w.dir != refine.Generalize || len(ops) <= 2 {
		return []expr.Axiom{a, w.noOp()}, nil
	}
	out := make([]expr.Axiom, 0, len(ops)+1)
	for i := range ops {
		rest := make([]expr.Role, 0, len(ops)-1)
		rest = append(rest, ops[:i]...)
		rest = append(rest, ops[i+1:]...)
		out = append(out, expr.EquivalentProperties(rest...).WithOrigin(a))
	}
	out = append(out, w.noOp())
	return dedupAxioms(out), nil
}

// weakenDisjointClasses specializes each operand in turn (weakening) or
// generalizes each operand in turn (strengthening) — antitone in every
// position, since shrinking any Ci makes the pairwise-disjointness
// constraint easier to satisfy. Reassembly drops an operand that
// refinement collapsed into equality with a sibling rather than
// attempting the double-negation distinctness hack for genuinely
// OWL2-illegal duplicate operands, since expr.DisjointClasses already
// accepts duplicate operands structurally (the "distinctness" OWL
// restriction is a syntactic constraint of the serialized ontology
// format, not of this in-memory model).
func (w *AxiomWeakener) weakenDisjointClasses(a expr.Axiom) ([]expr.Axiom, error) {
	ops := a.Concepts()
	other := w.Other()
	out := make([]expr.Axiom, 0, len(ops)+1)
	for i, op := range ops {
		refined, err := other.conceptRefine(op)
		if err != nil {
			return nil, err
		}
		for _, r := range refined {
			next := append([]expr.Concept(nil), ops...)
			next[i] = r
			out = append(out, expr.DisjointClasses(dedupKeepOrderConcepts(next)...).WithOrigin(a))
		}
	}
	out = append(out, w.noOp())
	return dedupAxioms(out), nil
}

func (w *AxiomWeakener) weakenDisjointProperties(a expr.Axiom) ([]expr.Axiom, error) {
	if w.flags.NoRoleRefinement {
		return []expr.Axiom{a, w.noOp()}, nil
	}
	ops := a.Roles()
	other := w.Other()
	out := make([]expr.Axiom, 0, len(ops)+1)
	for i, op := range ops {
		if !w.isSimple(op) && w.flags.SimpleRolesStrict {
			return nil, &NotSupported{Axiom: a}
		}
		if !w.isSimple(op) {
			continue
		}
		for _, r := range other.roleWay(op, true) {
			next := append([]expr.Role(nil), ops...)
			next[i] = r
			out = append(out, expr.DisjointProperties(dedupKeepOrderRoles(next)...).WithOrigin(a))
		}
	}
	out = append(out, w.noOp())
	return dedupAxioms(out), nil
}

// weakenSubObjectPropertyOf implements §4.4's "refine sub-side downward
// if the sub-role is simple; refine super-side upward only if it is
// simple or if doing so preserves RBox regularity". "Downward"/"upward"
// describe the weakening direction; Other()/self are used so the same
// code serves strengthening by symmetry, exactly as weakenSubClassOf
// does for concepts.
func (w *AxiomWeakener) weakenSubObjectPropertyOf(a expr.Axiom) ([]expr.Axiom, error) {
	sub, sup := a.SubRole(), a.SupRole()
	out := []expr.Axiom{w.noOp()}
	if w.flags.NoRoleRefinement {
		return append(out, a), nil
	}
	if w.isSimple(sub) {
		for _, r := range w.Other().roleWay(sub, true) {
			out = append(out, expr.SubObjectPropertyOf(r, sup).WithOrigin(a))
		}
	} else if w.flags.SimpleRolesStrict {
		return nil, &NotSupported{Axiom: a}
	}
	for _, r := range w.roleWay(sup, false) {
		if !w.isSimple(sup) && !w.regular.Regular([]expr.Role{sub}, r) {
			continue
		}
		w.regular.Commit([]expr.Role{sub}, r)
		out = append(out, expr.SubObjectPropertyOf(sub, r).WithOrigin(a))
	}
	return dedupAxioms(out), nil
}

// weakenSubPropertyChainOf only varies the chain's super-role: §4.4
// does not define a refinement of the chain's constituent roles
// themselves (there is no single "sub-role" position to specialize, the
// way there is for SubObjectPropertyOf), so the chain is held fixed and
// only the regularity-gated super-role position is refined.
func (w *AxiomWeakener) weakenSubPropertyChainOf(a expr.Axiom) ([]expr.Axiom, error) {
	chain, sup := a.Chain(), a.SupRole()
	out := []expr.Axiom{w.noOp()}
	if w.flags.NoRoleRefinement {
		return append(out, a), nil
	}
	for _, r := range w.roleWay(sup, false) {
		if !w.isSimple(sup) && !w.regular.Regular(chain, r) {
			continue
		}
		w.regular.Commit(chain, r)
		out = append(out, expr.SubPropertyChainOf(chain, r).WithOrigin(a))
	}
	return dedupAxioms(out), nil
}

func (w *AxiomWeakener) weakenDefault(a expr.Axiom) ([]expr.Axiom, error) {
	if w.flags.Strict {
		return nil, &NotSupported{Axiom: a}
	}
	return []expr.Axiom{a, w.noOp()}, nil
}

func axiomKey(a expr.Axiom) string { return a.String() }

func dedupAxioms(as []expr.Axiom) []expr.Axiom {
	seen := map[string]struct{}{}
	out := make([]expr.Axiom, 0, len(as))
	for _, a := range as {
		k := axiomKey(a)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return axiomKey(out[i]) < axiomKey(out[j]) })
	return out
}

func dedupKeepOrderConcepts(cs []expr.Concept) []expr.Concept {
	seen := map[string]struct{}{}
	out := make([]expr.Concept, 0, len(cs))
	for _, c := range cs {
		k := c.String()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, c)
	}
	return out
}

func dedupKeepOrderRoles(rs []expr.Role) []expr.Role {
	seen := map[string]struct{}{}
	out := make([]expr.Role, 0, len(rs))
	for _, r := range rs {
		k := r.String()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}
