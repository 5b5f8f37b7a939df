package repair

// NotReparable is returned when staticAxioms alone fail the repair
// predicate, or when a strategy exhausts its candidate moves without
// finding one that progresses (§7 "static axioms alone fail the
// predicate").
type NotReparable struct {
	Reason string
}

func (e *NotReparable) Error() string {
	if e.Reason == "" {
		return "repair: not reparable"
	}
	return "repair: not reparable: " + e.Reason
}

// Cancelled is returned when the cooperative cancellation token (a
// context.Context) is observed at an iteration boundary (§7, §5
// "the cooperative cancel token is thread interrupt").
type Cancelled struct{}

func (e *Cancelled) Error() string { return "repair: cancelled" }

// ResourceExhausted is returned by BestOfKWeakening when every worker
// round failed; the workers' own errors are combined with it (§7).
type ResourceExhausted struct {
	cause error
}

func (e *ResourceExhausted) Error() string {
	if e.cause == nil {
		return "repair: resource exhausted"
	}
	return "repair: resource exhausted: " + e.cause.Error()
}

func (e *ResourceExhausted) Unwrap() error { return e.cause }
