// Package miniel is a small finite-model reference implementation of the
// oracle.Reasoner contract (§6), used by this repository's own tests and
// by the cmd/dlrepair demo harness. A real OWL/SROIQ reasoner is an
// external collaborator out of scope for this spec (§1); miniel exists
// only so the oracle interface has a concrete, dependency-free
// implementation to exercise against.
//
// miniel decides consistency and entailment over the ALC fragment
// (atomic classes, ⊤/⊥, complement, intersection, union) by brute-force
// boolean search per individual. Role restrictions (existential,
// universal, has-self, cardinalities) and RBox axioms are treated as
// unconstraining: a concept built from them is assumed always
// satisfiable. This is a deliberate, documented approximation — good
// enough to drive the spec's own worked scenarios (S1-S3, S5) and
// general regression tests, not a claim of SROIQ completeness.
package miniel

import (
	"github.com/nodeadmin/dlrepair/expr"
	"github.com/nodeadmin/dlrepair/oracle"
)

type reasoner struct{}

// New returns a miniel Reasoner.
func New() *reasoner { return &reasoner{} }

type handle struct {
	axioms []expr.Axiom
}

func (r *reasoner) Classify(axioms []expr.Axiom) (oracle.Handle, error) {
	return &handle{axioms: append([]expr.Axiom(nil), axioms...)}, nil
}

func (h *handle) Flush(additions, removals []expr.Axiom) error {
	h.axioms = applyDelta(h.axioms, additions, removals)
	return nil
}

func applyDelta(base, additions, removals []expr.Axiom) []expr.Axiom {
	out := make([]expr.Axiom, 0, len(base)+len(additions))
	for _, a := range base {
		skip := false
		for _, r := range removals {
			if a.Equal(r) {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, a)
		}
	}
	out = append(out, additions...)
	return out
}

func (h *handle) Dispose() {}

func (h *handle) IsConsistent() (bool, error) {
	return isConsistent(h.axioms), nil
}

func (h *handle) IsEntailed(a expr.Axiom) (bool, error) {
	return isEntailed(h.axioms, a), nil
}

func (h *handle) IsSatisfiable(c expr.Concept) (bool, error) {
	return isSatisfiable(h.axioms, c), nil
}

// --- finite-model search ---

func atomNames(axioms []expr.Axiom) []string {
	seen := map[string]struct{}{}
	var collect func(c expr.Concept)
	collect = func(c expr.Concept) {
		switch c.Kind() {
		case expr.KindAtomic:
			seen[c.Name()] = struct{}{}
		case expr.KindComplement:
			collect(c.Filler())
		case expr.KindIntersection, expr.KindUnion:
			for _, o := range c.Operands() {
				collect(o)
			}
		}
	}
	for _, a := range axioms {
		switch a.Kind() {
		case expr.KindSubClassOf:
			collect(a.Sub())
			collect(a.Sup())
		case expr.KindEquivalentClasses, expr.KindDisjointClasses:
			for _, c := range a.Concepts() {
				collect(c)
			}
		case expr.KindClassAssertion:
			collect(a.AssertedConcept())
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	return names
}

func individualsOf(axioms []expr.Axiom) []string {
	seen := map[string]struct{}{}
	for _, a := range axioms {
		switch a.Kind() {
		case expr.KindClassAssertion:
			seen[a.Individual()] = struct{}{}
		case expr.KindSameIndividual, expr.KindDifferentIndividuals:
			for _, ind := range a.Individuals() {
				seen[ind] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	return out
}

// assignment maps an atomic class name to truth for one individual.
type assignment map[string]bool

func eval(c expr.Concept, a assignment) bool {
	switch c.Kind() {
	case expr.KindTop:
		return true
	case expr.KindBottom:
		return false
	case expr.KindAtomic:
		return a[c.Name()]
	case expr.KindComplement:
		return !eval(c.Filler(), a)
	case expr.KindIntersection:
		for _, o := range c.Operands() {
			if !eval(o, a) {
				return false
			}
		}
		return true
	case expr.KindUnion:
		for _, o := range c.Operands() {
			if eval(o, a) {
				return true
			}
		}
		return false
	default:
		// Role-based constructs: approximated as always satisfiable.
		return true
	}
}

// satisfiesTBox checks the universal (per-individual) TBox constraints
// against one candidate assignment.
func satisfiesTBox(axioms []expr.Axiom, a assignment) bool {
	for _, ax := range axioms {
		switch ax.Kind() {
		case expr.KindSubClassOf:
			if eval(ax.Sub(), a) && !eval(ax.Sup(), a) {
				return false
			}
		case expr.KindEquivalentClasses:
			cs := ax.Concepts()
			if len(cs) == 0 {
				continue
			}
			first := eval(cs[0], a)
			for _, c := range cs[1:] {
				if eval(c, a) != first {
					return false
				}
			}
		case expr.KindDisjointClasses:
			trueCount := 0
			for _, c := range ax.Concepts() {
				if eval(c, a) {
					trueCount++
				}
			}
			if trueCount > 1 {
				return false
			}
		case expr.KindDisjointUnion:
			cs := ax.Concepts()
			defined := eval(cs[0], a)
			trueCount := 0
			anyTrue := false
			for _, c := range cs[1:] {
				v := eval(c, a)
				if v {
					trueCount++
					anyTrue = true
				}
			}
			if trueCount > 1 {
				return false
			}
			if defined != anyTrue {
				return false
			}
		}
	}
	return true
}

// findModel brute-forces an assignment over names satisfying both the
// TBox constraints and the per-individual extra constraints (ABox
// memberships, or a hypothesis concept for satisfiability checks).
func findModel(names []string, axioms []expr.Axiom, extra func(assignment) bool) (assignment, bool) {
	n := len(names)
	if n > 20 {
		// Cap brute-force search; beyond this the fixture is not what
		// miniel is meant for. Fall back to an optimistic "satisfiable"
		// answer rather than hang.
		return assignment{}, true
	}
	total := 1 << uint(n)
	for mask := 0; mask < total; mask++ {
		a := make(assignment, n)
		for i, name := range names {
			a[name] = mask&(1<<uint(i)) != 0
		}
		if satisfiesTBox(axioms, a) && extra(a) {
			return a, true
		}
	}
	return nil, false
}

func isConsistent(axioms []expr.Axiom) bool {
	names := atomNames(axioms)
	individuals := individualsOf(axioms)
	if len(individuals) == 0 {
		_, ok := findModel(names, axioms, func(assignment) bool { return true })
		return ok
	}
	for _, ind := range individuals {
		_, ok := findModel(names, axioms, func(a assignment) bool {
			for _, ax := range axioms {
				if ax.Kind() == expr.KindClassAssertion && ax.Individual() == ind {
					if !eval(ax.AssertedConcept(), a) {
						return false
					}
				}
			}
			return true
		})
		if !ok {
			return false
		}
	}
	return true
}

func isSatisfiable(axioms []expr.Axiom, c expr.Concept) bool {
	names := atomNames(axioms)
	names = append(names, atomNames([]expr.Axiom{expr.SubClassOf(c, expr.Top())})...)
	_, ok := findModel(dedupStrings(names), axioms, func(a assignment) bool {
		return eval(c, a)
	})
	return ok
}

func isEntailed(axioms []expr.Axiom, ax expr.Axiom) bool {
	switch ax.Kind() {
	case expr.KindSubClassOf:
		// C ⊑ D is entailed iff C ⊓ ¬D is unsatisfiable under the TBox.
		witness := expr.Intersection(ax.Sub(), expr.Complement(ax.Sup()))
		return !isSatisfiable(axioms, witness)
	case expr.KindClassAssertion:
		names := dedupStrings(append(atomNames(axioms), atomNames([]expr.Axiom{expr.SubClassOf(ax.AssertedConcept(), expr.Top())})...))
		_, ok := findModel(names, axioms, func(a assignment) bool {
			for _, other := range axioms {
				if other.Kind() == expr.KindClassAssertion && other.Individual() == ax.Individual() {
					if !eval(other.AssertedConcept(), a) {
						return false
					}
				}
			}
			return !eval(ax.AssertedConcept(), a)
		})
		return !ok
	default:
		return false
	}
}

func dedupStrings(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
