// Package oracle defines the external reasoner contract (§6) and
// ReasonerCache (§4.1 Component 4, §4.5): a reference-counted,
// diffing facade over a "hot" reasoner handle that avoids
// re-classification between calls.
package oracle

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/nodeadmin/dlrepair/expr"
)

// Handle is a live reasoner session bound to a snapshot of axioms (§6).
type Handle interface {
	// Flush applies an in-place axiom delta to the bound reasoner.
	Flush(additions, removals []expr.Axiom) error
	IsConsistent() (bool, error)
	IsEntailed(a expr.Axiom) (bool, error)
	IsSatisfiable(c expr.Concept) (bool, error)
	Dispose()
}

// Reasoner is the abstract external entailment engine the core requires
// (§1 "a reasoner oracle answering subsumption and consistency queries").
type Reasoner interface {
	// Classify returns a Handle bound to a snapshot of axioms.
	Classify(axioms []expr.Axiom) (Handle, error)
}

// Failure wraps an underlying reasoner error as the OracleFailure error
// kind (§7), propagated unchanged to callers.
type Failure struct {
	cause error
}

func (f *Failure) Error() string { return "oracle: " + f.cause.Error() }
func (f *Failure) Unwrap() error { return f.cause }

// Wrap tags err as an OracleFailure, or returns nil if err is nil.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	return &Failure{cause: errors.Wrap(err, "reasoner oracle call failed")}
}

// IsOracleFailure reports whether err is (or wraps) an oracle Failure.
func IsOracleFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f)
}

func axiomKey(a expr.Axiom) string { return a.String() }

// Cache is a reference-counted wrapper around a Reasoner (§4.5): it keeps
// one hot Handle per cache, diffs the axiom set between calls, and
// applies only the symmetric difference before delegating to the
// handle. Calls that share a Cache serialize (§4.5); repair variants
// that want parallelism call CloneWithSeparateCache (via
// ontology.Core.CloneWithSeparateCache) to obtain an independent Cache.
type Cache struct {
	mu       sync.Mutex // held for the whole of each WithReasoner call
	reasoner Reasoner
	refs     int
	handle   Handle
	current  map[string]expr.Axiom
}

// NewCache wraps reasoner in a fresh ReasonerCache with one reference.
func NewCache(reasoner Reasoner) *Cache {
	return &Cache{reasoner: reasoner, refs: 1, current: map[string]expr.Axiom{}}
}

// AddRef increments the reference count; every AddRef must be matched by
// a Release (§3 "OntologyCore owns a reference count in its
// ReasonerCache; dropping the last handle disposes the external
// reasoner").
func (c *Cache) AddRef() { c.refs++ }

// Release decrements the reference count, disposing the underlying
// reasoner handle once it reaches zero.
func (c *Cache) Release() {
	c.refs--
	if c.refs <= 0 && c.handle != nil {
		c.handle.Dispose()
		c.handle = nil
	}
}

func (c *Cache) ensureHandle(axioms []expr.Axiom) error {
	want := make(map[string]expr.Axiom, len(axioms))
	for _, a := range axioms {
		want[axiomKey(a)] = a
	}

	if c.handle == nil {
		h, err := c.reasoner.Classify(axioms)
		if err != nil {
			return Wrap(err)
		}
		c.handle = h
		c.current = want
		return nil
	}

	var additions, removals []expr.Axiom
	for k, a := range want {
		if _, ok := c.current[k]; !ok {
			additions = append(additions, a)
		}
	}
	for k, a := range c.current {
		if _, ok := want[k]; !ok {
			removals = append(removals, a)
		}
	}
	if len(additions) == 0 && len(removals) == 0 {
		return nil
	}
	if err := c.handle.Flush(additions, removals); err != nil {
		return Wrap(err)
	}
	c.current = want
	return nil
}

// WithReasoner classifies axioms into a hot handle (computing only the
// delta from the previous call) and runs f against it.
func (c *Cache) WithReasoner(axioms []expr.Axiom, f func(Handle) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureHandle(axioms); err != nil {
		return err
	}
	return f(c.handle)
}

// IsConsistent runs an is_consistent query against the current axioms.
func (c *Cache) IsConsistent(axioms []expr.Axiom) (bool, error) {
	var result bool
	err := c.WithReasoner(axioms, func(h Handle) error {
		r, err := h.IsConsistent()
		result = r
		return Wrap(err)
	})
	return result, err
}

// IsEntailed runs an is_entailed query.
func (c *Cache) IsEntailed(axioms []expr.Axiom, a expr.Axiom) (bool, error) {
	var result bool
	err := c.WithReasoner(axioms, func(h Handle) error {
		r, err := h.IsEntailed(a)
		result = r
		return Wrap(err)
	})
	return result, err
}

// IsSatisfiable runs an is_satisfiable query.
func (c *Cache) IsSatisfiable(axioms []expr.Axiom, concept expr.Concept) (bool, error) {
	var result bool
	err := c.WithReasoner(axioms, func(h Handle) error {
		r, err := h.IsSatisfiable(concept)
		result = r
		return Wrap(err)
	})
	return result, err
}
