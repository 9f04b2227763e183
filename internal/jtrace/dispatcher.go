package jtrace

import "fmt"

// Enter records a function-entry event and returns the Span to pass back to
// Leave. name must be non-empty; an empty name is a caller-misuse warning,
// not a panic, and Enter returns nil as if tracing were off.
//
// format/args follow fmt.Sprintf; pass format == "" to omit the "(...)"
// suffix entirely, matching spec §4.4's "if a format was supplied" branch.
func Enter(name string, format string, args ...any) *Span {
	flags := currentFlags()
	if flags == FlagOff {
		return nil
	}
	c := active
	if c == nil {
		return nil
	}
	if name == "" {
		c.logger.Warningf("jtrace: Enter called with empty name")
		return nil
	}

	if !c.filter.Check(name) {
		return nil
	}

	tc := currentThreadContext(flags.has(FlagBinary))
	ts := c.timestampMicros()
	span := &Span{name: name, enter: ts}

	if flags.has(FlagEcho) {
		echoEnter(c, tc, ts, name, format, args)
	}
	if flags.has(FlagBinary) {
		binaryEnter(c, tc, ts, name)
	}
	if flags.has(FlagSummary) {
		summaryPush(tc, name, ts)
	}

	tc.depth++
	return span
}

// Leave consumes span. Leave(nil) is always a safe no-op, matching an Enter
// that returned nil because tracing was off or name was filtered out.
func Leave(span *Span) {
	if span == nil {
		return
	}
	flags := currentFlags()
	if flags == FlagOff {
		return
	}
	c := active
	if c == nil {
		return
	}

	if !c.filter.Check(span.name) {
		return
	}

	tc := currentThreadContext(flags.has(FlagBinary))
	if tc.depth == 0 {
		c.logger.Warningf("jtrace: Leave(%q) with no matching Enter on this goroutine", span.name)
		return
	}
	tc.depth--
	ts := c.timestampMicros()
	duration := ts - span.enter

	if flags.has(FlagEcho) {
		echoLeave(c, tc, ts, span.name, duration)
	}
	if flags.has(FlagBinary) {
		binaryLeave(c, tc, ts, span.name)
	}
	if flags.has(FlagSummary) {
		summaryPop(c, tc, duration)
	}
}

// FileBegin records the start of a file operation.
func FileBegin(path string, op FileOp) {
	flags := currentFlags()
	if flags == FlagOff {
		return
	}
	c := active
	if c == nil {
		return
	}
	tc := currentThreadContext(flags.has(FlagBinary))
	ts := c.timestampMicros()

	if flags.has(FlagEcho) {
		echoFileBegin(c, path, op)
	}
	if flags.has(FlagBinary) {
		binaryFileBegin(c, tc, ts, path)
	}
}

// FileEnd records the completion of a file operation. length and offset are
// only meaningful (and only echoed) for Read and Write.
func FileEnd(path string, op FileOp, length, offset int64) {
	flags := currentFlags()
	if flags == FlagOff {
		return
	}
	c := active
	if c == nil {
		return
	}
	tc := currentThreadContext(flags.has(FlagBinary))
	ts := c.timestampMicros()

	if flags.has(FlagEcho) {
		echoFileEnd(c, path, op, length, offset)
	}
	if flags.has(FlagBinary) {
		binaryFileEnd(c, tc, ts, path, op, length)
	}
}

// Counter records a new value for a named, process-scoped counter.
func Counter(name string, value float64) {
	flags := currentFlags()
	if flags == FlagOff {
		return
	}
	c := active
	if c == nil {
		return
	}
	tc := currentThreadContext(flags.has(FlagBinary))
	ts := c.timestampMicros()

	if flags.has(FlagEcho) {
		echoCounter(c, name, value)
	}
	if flags.has(FlagBinary) {
		binaryCounter(c, tc, ts, name, value)
	}
}

func formatArgs(format string, args []any) string {
	if format == "" {
		return ""
	}
	return fmt.Sprintf(format, args...)
}
