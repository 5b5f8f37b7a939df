package memo

// Stream is a lazy, possibly-restartable sequence (§9 "Streams"):
// repeated calls to Next() after Stream is exhausted return ok == false.
// Callers that need to scan a stream twice must materialize it first
// with Collect.
type Stream[T any] struct {
	next func() (T, bool)
}

// NewStream builds a Stream from a pull function.
func NewStream[T any](next func() (T, bool)) Stream[T] { return Stream[T]{next: next} }

// Next pulls the next element.
func (s Stream[T]) Next() (T, bool) { return s.next() }

// Collect materializes a Stream into a slice, for any sequence that
// must be scanned more than once.
func Collect[T any](s Stream[T]) []T {
	out := []T{}
	for {
		v, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// FromSlice adapts a pre-materialized slice into a Stream.
func FromSlice[T any](items []T) Stream[T] {
	i := 0
	return NewStream(func() (T, bool) {
		if i >= len(items) {
			var zero T
			return zero, false
		}
		v := items[i]
		i++
		return v, true
	})
}

// Map lazily transforms each element of s.
func Map[T, U any](s Stream[T], f func(T) U) Stream[U] {
	return NewStream(func() (U, bool) {
		v, ok := s.Next()
		if !ok {
			var zero U
			return zero, false
		}
		return f(v), true
	})
}

// Filter lazily keeps only elements satisfying pred.
func Filter[T any](s Stream[T], pred func(T) bool) Stream[T] {
	return NewStream(func() (T, bool) {
		for {
			v, ok := s.Next()
			if !ok {
				var zero T
				return zero, false
			}
			if pred(v) {
				return v, true
			}
		}
	})
}

// Concat lazily chains streams in order.
func Concat[T any](streams ...Stream[T]) Stream[T] {
	idx := 0
	return NewStream(func() (T, bool) {
		for idx < len(streams) {
			v, ok := streams[idx].Next()
			if ok {
				return v, true
			}
			idx++
		}
		var zero T
		return zero, false
	})
}

// Distinct materializes s and removes duplicates per eq, preserving
// first-occurrence order. This backs AxiomRefinement's documented use of
// distinct() (§9) when structural equality must dedup a refinement
// stream (e.g. collapsed cardinality refinements).
func Distinct[T any](s Stream[T], eq func(a, b T) bool) []T {
	all := Collect(s)
	out := make([]T, 0, len(all))
	for _, v := range all {
		dup := false
		for _, seen := range out {
			if eq(seen, v) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return out
}
