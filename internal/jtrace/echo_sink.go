package jtrace

import (
	"fmt"
	"strings"
)

// echoHeader renders "[sec.usec] process_name thread_name: " followed by
// two spaces per level of depth, matching spec §4.4/§6. ts is microseconds
// since the arbitrary epoch chosen at Init.
func echoHeader(c *core, tc *threadContext, ts int64, depth uint32) string {
	sec := ts / 1_000_000
	usec := ts % 1_000_000
	indent := strings.Repeat("  ", int(depth))
	return fmt.Sprintf("[%d.%06d] %s %s: %s", sec, usec, c.processName, tc.displayName, indent)
}

func echoEnter(c *core, tc *threadContext, ts int64, name, format string, args []any) {
	c.echoMu.Lock()
	defer c.echoMu.Unlock()
	header := echoHeader(c, tc, ts, tc.depth)
	if formatted := formatArgs(format, args); formatted != "" {
		fmt.Fprintf(c.echoOut, "%sENTER %s (%s)\n", header, name, formatted)
	} else {
		fmt.Fprintf(c.echoOut, "%sENTER %s\n", header, name)
	}
}

func echoLeave(c *core, tc *threadContext, ts int64, name string, durationMicros int64) {
	c.echoMu.Lock()
	defer c.echoMu.Unlock()
	header := echoHeader(c, tc, ts, tc.depth)
	fmt.Fprintf(c.echoOut, "%sLEAVE %s [%d.%06d s]\n", header, name, durationMicros/1_000_000, durationMicros%1_000_000)
}

func echoFileBegin(c *core, path string, op FileOp) {
	c.echoMu.Lock()
	defer c.echoMu.Unlock()
	fmt.Fprintf(c.echoOut, "BEGIN %s %s\n", op.String(), path)
}

func echoFileEnd(c *core, path string, op FileOp, length, offset int64) {
	c.echoMu.Lock()
	defer c.echoMu.Unlock()
	if op == Read || op == Write {
		fmt.Fprintf(c.echoOut, "END %s %s (length=%d, offset=%d)\n", op.String(), path, length, offset)
	} else {
		fmt.Fprintf(c.echoOut, "END %s %s\n", op.String(), path)
	}
}

func echoCounter(c *core, name string, value float64) {
	c.echoMu.Lock()
	defer c.echoMu.Unlock()
	fmt.Fprintf(c.echoOut, "COUNTER %s %g\n", name, value)
}
