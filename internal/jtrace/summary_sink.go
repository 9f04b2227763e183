package jtrace

// summaryPush composes the current composite stack path and pushes a frame
// for it onto the calling goroutine's stack. No lock is needed: the stack
// is owned entirely by the current goroutine (spec §4.4).
func summaryPush(tc *threadContext, name string, ts int64) {
	composite := name
	if n := len(tc.frames); n > 0 {
		composite = tc.frames[n-1].composite + "/" + name
	}
	tc.frames = append(tc.frames, &frame{composite: composite, enter: ts})
}

// summaryPop pops the top frame and folds its duration into the summary
// table under the summary lock, the only lock this sink needs.
func summaryPop(c *core, tc *threadContext, durationMicros int64) {
	n := len(tc.frames)
	if n == 0 {
		// Imbalance guard: defended against, but indicates a caller bug.
		c.logger.Warningf("jtrace: summary stack underflow on Leave")
		return
	}
	top := tc.frames[n-1]
	tc.frames = tc.frames[:n-1]

	seconds := float64(durationMicros) / 1_000_000

	c.summaryMu.Lock()
	defer c.summaryMu.Unlock()
	e := c.summaryTable[top.composite]
	e.seconds += seconds
	e.count++
	c.summaryTable[top.composite] = e
}
