package value

// Ref and Unref implement the pin-counting safety hook spec 4.B requires
// of the allocator: any component that needs to protect a transient
// value across a step that might otherwise collect it increments the
// pin count with Ref and decrements it with Unref once the value is safe
// again (reachable from the environment stack, or no longer needed).
//
// Reclamation itself is delegated entirely to the Go runtime's tracing
// collector, which satisfies spec 4.B's contract trivially: every
// pinned value and everything reachable from the environment stack is,
// by construction, still referenced by some Go variable or slice and so
// can never be collected regardless of the pin count. The bookkeeping
// here exists so the evaluator can still observe and test the pin
// discipline spec's design notes call out as "the single most common
// class of bug in such a core": a pin/unpin imbalance is a real defect
// in the evaluator even though Go's GC papers over its consequences.

// Ref increments v's pin count and returns v for chaining. Ref(nil) is a
// no-op that returns nil.
func Ref(v Value) Value {
	if v == nil {
		return nil
	}
	p := v.pinCount()
	*p++
	return v
}

// Unref decrements v's pin count. Unref(nil) is a no-op. Unref never
// reduces a value's pin count below zero; an imbalance beyond zero is
// the evaluator's bug to fix, not something this package papers over.
func Unref(v Value) {
	if v == nil {
		return
	}
	if p := v.pinCount(); *p > 0 {
		*p--
	}
}

// Pinned reports whether v currently has a positive pin count.
func Pinned(v Value) bool {
	if v == nil {
		return false
	}
	return *v.pinCount() > 0
}
