// Package ontology implements OntologyCore (§3, §4.1 Component 5,
// §4.5): the single mutation point for an axiom set, partitioned into
// static and refutable axioms, backed by an oracle.Cache.
package ontology

import (
	"github.com/nodeadmin/dlrepair/expr"
	"github.com/nodeadmin/dlrepair/oracle"
)

// Core holds the static/refutable axiom partition for one ontology
// together with a reference-counted handle on a reasoner cache (§3:
// "a tuple (Sₛ, S_r, oracle) where Sₛ is the set of static axioms ...
// and S_r the set of refutable axioms; Sₛ ∩ S_r = ∅").
//
// Not safe for concurrent mutation; callers that need independent
// parallel mutation paths call CloneWithSeparateCache (§4.5 "repair
// variants that want parallelism must call cloneWithSeparateCache").
type Core struct {
	static    map[string]expr.Axiom
	refutable map[string]expr.Axiom
	cache     *oracle.Cache
}

func key(a expr.Axiom) string { return a.String() }

// New builds a Core over the given static and refutable axioms, backed
// by a freshly created oracle.Cache over reasoner.
func New(reasoner oracle.Reasoner, static, refutable []expr.Axiom) *Core {
	return newWithCache(oracle.NewCache(reasoner), static, refutable)
}

func newWithCache(cache *oracle.Cache, static, refutable []expr.Axiom) *Core {
	c := &Core{
		static:    map[string]expr.Axiom{},
		refutable: map[string]expr.Axiom{},
		cache:     cache,
	}
	for _, a := range static {
		c.static[key(a)] = a
	}
	for _, a := range refutable {
		c.refutable[key(a)] = a
	}
	return c
}

// StaticAxioms returns a snapshot of Sₛ.
func (c *Core) StaticAxioms() []expr.Axiom { return values(c.static) }

// RefutableAxioms returns a snapshot of S_r.
func (c *Core) RefutableAxioms() []expr.Axiom { return values(c.refutable) }

// AllAxioms returns Sₛ ∪ S_r.
func (c *Core) AllAxioms() []expr.Axiom {
	out := make([]expr.Axiom, 0, len(c.static)+len(c.refutable))
	out = append(out, values(c.static)...)
	out = append(out, values(c.refutable)...)
	return out
}

func values(m map[string]expr.Axiom) []expr.Axiom {
	out := make([]expr.Axiom, 0, len(m))
	for _, a := range m {
		out = append(out, a)
	}
	return out
}

// AddStatic adds a to Sₛ, removing it from S_r first if present so the
// partition invariant Sₛ ∩ S_r = ∅ holds.
func (c *Core) AddStatic(a expr.Axiom) {
	delete(c.refutable, key(a))
	c.static[key(a)] = a
}

// AddRefutable adds a to S_r, removing it from Sₛ first if present.
func (c *Core) AddRefutable(a expr.Axiom) {
	delete(c.static, key(a))
	c.refutable[key(a)] = a
}

// Remove deletes a from whichever side it is in; a no-op if absent.
func (c *Core) Remove(a expr.Axiom) {
	delete(c.static, key(a))
	delete(c.refutable, key(a))
}

// Contains reports whether a is present in either partition.
func (c *Core) Contains(a expr.Axiom) bool {
	if _, ok := c.static[key(a)]; ok {
		return true
	}
	_, ok := c.refutable[key(a)]
	return ok
}

// Replace atomically removes old and adds reps, each carrying old's
// origin annotation (§3: "replace(old, new…) preserves origin
// annotation of old on each new"). old's side (static/refutable)
// determines where the replacements land.
func (c *Core) Replace(old expr.Axiom, reps ...expr.Axiom) {
	_, wasStatic := c.static[key(old)]
	c.Remove(old)
	for _, rep := range reps {
		tagged := rep.WithOrigin(old)
		if wasStatic {
			c.AddStatic(tagged)
		} else {
			c.AddRefutable(tagged)
		}
	}
}

// Clone returns a new Core over a copy of the axiom partitions, sharing
// this Core's oracle.Cache (and therefore its reference count and hot
// reasoner handle) (§3 "clone (shares oracle)").
func (c *Core) Clone() *Core {
	c.cache.AddRef()
	return newWithCache(c.cache, values(c.static), values(c.refutable))
}

// CloneWithSeparateCache returns a new Core over a copy of the axiom
// partitions, backed by an independent oracle.Cache against the same
// underlying Reasoner (§4.5: parallel repair workers need independent
// oracle state since calls sharing a cache serialize).
func (c *Core) CloneWithSeparateCache(reasoner oracle.Reasoner) *Core {
	return New(reasoner, values(c.static), values(c.refutable))
}

// CloneWithRefutable returns a clone whose refutable set is replaced by
// refutable, keeping Sₛ and the oracle cache unchanged (§3
// "cloneWithRefutable(S)").
func (c *Core) CloneWithRefutable(refutable []expr.Axiom) *Core {
	c.cache.AddRef()
	return newWithCache(c.cache, values(c.static), refutable)
}

// Release drops this Core's reference on its oracle.Cache, disposing the
// underlying reasoner handle once the last reference is gone (§3
// "OntologyCore owns a reference count in its ReasonerCache").
func (c *Core) Release() { c.cache.Release() }

// Signature returns the concept/role/individual names reachable from
// the full axiom set.
func (c *Core) Signature() expr.Signature {
	return *expr.SignatureOf(c.AllAxioms())
}

// IsConsistent runs an is_consistent query over the full axiom set.
func (c *Core) IsConsistent() (bool, error) {
	return c.cache.IsConsistent(c.AllAxioms())
}

// IsEntailed reports whether a is entailed by the full axiom set.
func (c *Core) IsEntailed(a expr.Axiom) (bool, error) {
	return c.cache.IsEntailed(c.AllAxioms(), a)
}

// IsSatisfiable reports whether concept is satisfiable under the full
// axiom set.
func (c *Core) IsSatisfiable(concept expr.Concept) (bool, error) {
	return c.cache.IsSatisfiable(c.AllAxioms(), concept)
}

// ConsistencyPredicate is a monotone repair predicate (§4.6 "monotone
// predicate P") holding iff the ontology is consistent. Suitable as the
// P argument to MinimalSubsets/MaximalConsistentSubsets and as a repair
// goal (§6 "Repair goals").
func ConsistencyPredicate(c *Core) (bool, error) { return c.IsConsistent() }

// CoherencePredicate holds iff every atomic class named in the
// signature is satisfiable (§6 "Repair goals"; SUPPLEMENTED FEATURES:
// a first-class coherence goal alongside consistency, exercised by
// scenario S2).
func CoherencePredicate(c *Core) (bool, error) {
	sig := c.Signature()
	for name := range sig.Concepts {
		ok, err := c.IsSatisfiable(expr.Atomic(name))
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
