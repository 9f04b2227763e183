package jtrace

// Span is created by Enter and consumed by the matching Leave exactly once;
// the caller owns the reference in between and must return it to Leave. A
// nil Span is returned whenever tracing is off or the name was filtered
// out, and Leave(nil) is always a safe no-op, matching a filtered-out Enter.
type Span struct {
	name  string
	enter int64 // microseconds since the core's startTime, set at Init
}

// frame is the summary sink's per-goroutine stack entry: the composite
// "parent/.../self" name and the entry timestamp. It exists only while the
// summary sink is enabled.
type frame struct {
	composite string
	enter     int64
}
