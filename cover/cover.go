// Package cover implements Covers (§3, §4.1 Component 9, §4.2): up/down
// covers over concepts and roles built on preorder.Cache, plus the
// integer covers used by cardinality refinement.
package cover

import (
	"sort"

	"github.com/nodeadmin/dlrepair/expr"
	"github.com/nodeadmin/dlrepair/memo"
	"github.com/nodeadmin/dlrepair/ontology"
	"github.com/nodeadmin/dlrepair/preorder"
)

// ConceptCover computes upCover/downCover over a fixed domain of
// reference concepts for one ontology (§4.2: "Cover results must be
// stable for a given reference ontology").
type ConceptCover struct {
	core    *ontology.Core
	pre     *preorder.Cache[string]
	byKey   map[string]expr.Concept
	domain  []string
	lastErr error
}

func conceptKey(c expr.Concept) string { return c.String() }

// NewConceptCover builds a ConceptCover whose reference domain is
// domain (typically the ontology's atomic concepts plus ⊤/⊥).
func NewConceptCover(core *ontology.Core, domain []expr.Concept) *ConceptCover {
	cc := &ConceptCover{
		core:  core,
		pre:   preorder.New[string](),
		byKey: map[string]expr.Concept{},
	}
	for _, c := range domain {
		k := conceptKey(c)
		if _, ok := cc.byKey[k]; !ok {
			cc.byKey[k] = c
			cc.domain = append(cc.domain, k)
		}
	}
	sort.Strings(cc.domain)
	return cc
}

// Err returns the first oracle error encountered since construction, if
// any; cover queries treat oracle failures as "not subsumed" so search
// can continue, but surface the failure here for the caller to inspect.
func (cc *ConceptCover) Err() error { return cc.lastErr }

func (cc *ConceptCover) register(c expr.Concept) string {
	k := conceptKey(c)
	if _, ok := cc.byKey[k]; !ok {
		cc.byKey[k] = c
	}
	return k
}

func (cc *ConceptCover) isSub(aKey, bKey string) bool {
	return cc.pre.Query(aKey, bKey, func(ak, bk string) bool {
		ok, err := cc.core.IsEntailed(expr.SubClassOf(cc.byKey[ak], cc.byKey[bk]))
		if err != nil {
			cc.lastErr = err
			return false
		}
		return ok
	})
}

func (cc *ConceptCover) isStrictSub(aKey, bKey string) bool {
	return cc.isSub(aKey, bKey) && !cc.isSub(bKey, aKey)
}

// UpCover returns { X ∈ dom | isSub(c,X) ∧ ¬∃ Y∈dom: isStrictSub(c,Y) ∧
// isStrictSub(Y,X) } (§4.2).
func (cc *ConceptCover) UpCover(c expr.Concept) []expr.Concept {
	return cc.cover(c, cc.isSub, cc.isStrictSub)
}

// DownCover returns the dual of UpCover.
func (cc *ConceptCover) DownCover(c expr.Concept) []expr.Concept {
	flip := func(a, b string) bool { return cc.isSub(b, a) }
	flipStrict := func(a, b string) bool { return cc.isStrictSub(b, a) }
	return cc.cover(c, flip, flipStrict)
}

func (cc *ConceptCover) cover(c expr.Concept, isSub, isStrictSub func(a, b string) bool) []expr.Concept {
	key := cc.register(c)
	var candidates []string
	for _, x := range cc.domain {
		if isSub(key, x) {
			candidates = append(candidates, x)
		}
	}
	var out []expr.Concept
	for _, x := range candidates {
		minimal := true
		for _, y := range candidates {
			if y == x {
				continue
			}
			if isStrictSub(key, y) && isStrictSub(y, x) {
				minimal = false
				break
			}
		}
		if minimal {
			out = append(out, cc.byKey[x])
		}
	}
	return out
}

// CachedConceptCover wraps a ConceptCover's UpCover/DownCover in an LRU
// memoizer (§4.2 "exposes a cached variant wrapping the stream-producing
// function in an LRU memoizer").
type CachedConceptCover struct {
	inner *ConceptCover
	up    memo.Cache[string, []expr.Concept]
	down  memo.Cache[string, []expr.Concept]
}

// NewCachedConceptCover wraps inner with a bounded LRU of the given size
// for each direction.
func NewCachedConceptCover(inner *ConceptCover, size int) *CachedConceptCover {
	return &CachedConceptCover{
		inner: inner,
		up:    memo.NewBounded[string, []expr.Concept](size),
		down:  memo.NewBounded[string, []expr.Concept](size),
	}
}

// UpCover returns the memoized up-cover of c.
func (c *CachedConceptCover) UpCover(concept expr.Concept) []expr.Concept {
	return c.up.GetOrCompute(conceptKey(concept), func() []expr.Concept { return c.inner.UpCover(concept) })
}

// DownCover returns the memoized down-cover of c.
func (c *CachedConceptCover) DownCover(concept expr.Concept) []expr.Concept {
	return c.down.GetOrCompute(conceptKey(concept), func() []expr.Concept { return c.inner.DownCover(concept) })
}

// Err returns the first oracle error encountered by the wrapped cover.
func (c *CachedConceptCover) Err() error { return c.inner.Err() }

// RoleCover computes upCover/downCover over a fixed domain of reference
// roles, with a simple/non-simple split (§4.2: "Role covers come in two
// flavors: simple ... and non-simple ...; the choice affects which
// constructs are permitted to be refined").
type RoleCover struct {
	core      *ontology.Core
	pre       *preorder.Cache[string]
	byKey     map[string]expr.Role
	domain    []string
	simple    map[string]bool
	lastErr   error
}

func roleKey(r expr.Role) string { return r.String() }

// NewRoleCover builds a RoleCover over domain, with simpleRoles
// identifying which role names are simple (non-simple roles are
// excluded from simple-only refinement per §4.3's roleRefine(R, simple)
// rule).
func NewRoleCover(core *ontology.Core, domain []expr.Role, simpleRoles map[string]bool) *RoleCover {
	rc := &RoleCover{
		core:   core,
		pre:    preorder.New[string](),
		byKey:  map[string]expr.Role{},
		simple: simpleRoles,
	}
	for _, r := range domain {
		k := roleKey(r)
		if _, ok := rc.byKey[k]; !ok {
			rc.byKey[k] = r
			rc.domain = append(rc.domain, k)
		}
	}
	sort.Strings(rc.domain)
	return rc
}

// Err returns the first oracle error encountered since construction.
func (rc *RoleCover) Err() error { return rc.lastErr }

func (rc *RoleCover) register(r expr.Role) string {
	k := roleKey(r)
	if _, ok := rc.byKey[k]; !ok {
		rc.byKey[k] = r
	}
	return k
}

func (rc *RoleCover) isSub(aKey, bKey string) bool {
	return rc.pre.Query(aKey, bKey, func(ak, bk string) bool {
		ok, err := rc.core.IsEntailed(expr.SubObjectPropertyOf(rc.byKey[ak], rc.byKey[bk]))
		if err != nil {
			rc.lastErr = err
			return false
		}
		return ok
	})
}

func (rc *RoleCover) isStrictSub(aKey, bKey string) bool {
	return rc.isSub(aKey, bKey) && !rc.isSub(bKey, aKey)
}

func (rc *RoleCover) filteredDomain(simpleOnly bool) []string {
	if !simpleOnly {
		return rc.domain
	}
	var out []string
	for _, k := range rc.domain {
		if rc.simple[k] {
			out = append(out, k)
		}
	}
	return out
}

// UpCover returns the up-cover of r, restricted to simple roles when
// simpleOnly is true.
func (rc *RoleCover) UpCover(r expr.Role, simpleOnly bool) []expr.Role {
	return rc.cover(r, rc.filteredDomain(simpleOnly), rc.isSub, rc.isStrictSub)
}

// DownCover returns the down-cover of r, restricted to simple roles when
// simpleOnly is true.
func (rc *RoleCover) DownCover(r expr.Role, simpleOnly bool) []expr.Role {
	flip := func(a, b string) bool { return rc.isSub(b, a) }
	flipStrict := func(a, b string) bool { return rc.isStrictSub(b, a) }
	return rc.cover(r, rc.filteredDomain(simpleOnly), flip, flipStrict)
}

func (rc *RoleCover) cover(r expr.Role, domain []string, isSub, isStrictSub func(a, b string) bool) []expr.Role {
	key := rc.register(r)
	var candidates []string
	for _, x := range domain {
		if isSub(key, x) {
			candidates = append(candidates, x)
		}
	}
	var out []expr.Role
	for _, x := range candidates {
		minimal := true
		for _, y := range candidates {
			if y == x {
				continue
			}
			if isStrictSub(key, y) && isStrictSub(y, x) {
				minimal = false
				break
			}
		}
		if minimal {
			out = append(out, rc.byKey[x])
		}
	}
	return out
}

// IntUpCover returns the integer up-cover {n, n+1} (§3).
func IntUpCover(n int) []int { return []int{n, n + 1} }

// IntDownCover returns the integer down-cover: {0} for n=0, {n, n-1}
// otherwise (§3).
func IntDownCover(n int) []int {
	if n == 0 {
		return []int{0}
	}
	return []int{n, n - 1}
}
