// Package memo provides bounded and unbounded thread-safe function
// memoization (§4.1 Component 2), plus a stream-to-slice adapter for
// iterator-returning functions (§9 "Streams"). Cover results (§4.2) and
// weakener covers (§4.4) are cached through this package.
package memo

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache is a get-or-compute memoizer: concurrent calls for the same key
// compute the value at most once (the first caller computes; later
// concurrent callers for the same key block on the same computation).
type Cache[K comparable, V any] interface {
	// GetOrCompute returns the cached value for key, calling compute to
	// populate the cache on a miss.
	GetOrCompute(key K, compute func() V) V
	// Invalidate removes a key's cached value, if present.
	Invalidate(key K)
	// Clear empties the cache.
	Clear()
}

type entry[V any] struct {
	once sync.Once
	val  V
}

// unbounded is a mutex-guarded map memoizer with no eviction, used where
// the domain is small and bounded by the ontology signature (e.g. per-
// ontology cover caches in BASIC_CACHED mode).
type unbounded[K comparable, V any] struct {
	mu sync.Mutex
	m  map[K]*entry[V]
}

// NewUnbounded returns an unbounded thread-safe memoizer.
func NewUnbounded[K comparable, V any]() Cache[K, V] {
	return &unbounded[K, V]{m: make(map[K]*entry[V])}
}

func (u *unbounded[K, V]) GetOrCompute(key K, compute func() V) V {
	u.mu.Lock()
	e, ok := u.m[key]
	if !ok {
		e = &entry[V]{}
		u.m[key] = e
	}
	u.mu.Unlock()

	e.once.Do(func() { e.val = compute() })
	return e.val
}

func (u *unbounded[K, V]) Invalidate(key K) {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.m, key)
}

func (u *unbounded[K, V]) Clear() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.m = make(map[K]*entry[V])
}

// bounded wraps github.com/hashicorp/golang-lru/v2 with eldest-eviction
// and the same once-per-key compute guarantee as unbounded.
type bounded[K comparable, V any] struct {
	mu    sync.Mutex
	inner *lru.Cache[K, *entry[V]]
}

// NewBounded returns a thread-safe memoizer holding at most size entries,
// evicting the least recently used entry once full.
func NewBounded[K comparable, V any](size int) Cache[K, V] {
	c, err := lru.New[K, *entry[V]](size)
	if err != nil {
		// size <= 0: degrade to a single-entry cache rather than panic,
		// matching golang-lru's own documented minimum of 1.
		c, _ = lru.New[K, *entry[V]](1)
	}
	return &bounded[K, V]{inner: c}
}

func (b *bounded[K, V]) GetOrCompute(key K, compute func() V) V {
	b.mu.Lock()
	e, ok := b.inner.Get(key)
	if !ok {
		e = &entry[V]{}
		b.inner.Add(key, e)
	}
	b.mu.Unlock()

	e.once.Do(func() { e.val = compute() })
	return e.val
}

func (b *bounded[K, V]) Invalidate(key K) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inner.Remove(key)
}

func (b *bounded[K, V]) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inner.Purge()
}
