package jtrace

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Beyney/julea/internal/julog"
	"github.com/Beyney/julea/internal/otf"
)

// core is the single opaque singleton holding the process-wide mutable
// tracing state built at Init: the filter, the three sinks, and the intern
// and summary tables. It is constructed by Init and torn down by Fini. The
// fast-path flag word (activeFlags, below) and the per-goroutine context
// registry and counters (context.go) are package-level variables outside
// core.
type core struct {
	processName string
	startTime   time.Time
	filter      *Filter
	logger      julog.Logger

	echoMu  sync.Mutex
	echoOut io.Writer

	binaryMu     sync.Mutex
	binaryWriter otf.Writer
	functionIDs  *internTable
	fileIDs      *internTable
	counterIDs   *internTable

	summaryMu    sync.Mutex
	summaryTable map[string]summaryEntry
}

type summaryEntry struct {
	seconds float64
	count   uint64
}

var (
	// activeFlags is read on every dispatcher call's fast path; it is the
	// only piece of tracing state touched when tracing is off.
	activeFlags atomic.Uint32

	// lifecycleMu serializes Init/Fini transitions; it is never held
	// across a dispatcher call.
	lifecycleMu sync.Mutex

	// active is nil whenever activeFlags loads as FlagOff.
	active *core
)

func currentFlags() Flags {
	return Flags(activeFlags.Load())
}

// timestampMicros returns microseconds since c.startTime, the arbitrary
// epoch chosen at Init.
func (c *core) timestampMicros() int64 {
	return time.Since(c.startTime).Microseconds()
}

func defaultEchoOutput() io.Writer {
	return os.Stderr
}
