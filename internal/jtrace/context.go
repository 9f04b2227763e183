package jtrace

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// threadContext is the per-goroutine state the spec calls "Thread Context":
// a display name, the current function depth (for echo indentation), the
// summary sink's per-goroutine frame stack, and — when the binary sink is
// enabled — a process id assigned once from a global monotonic counter.
//
// Go exposes neither OS-thread-local storage nor a stable, public goroutine
// id, and offers no hook that runs when a goroutine exits (unlike pthread's
// TLS destructors, which the original design assumes). This port realizes
// "thread" as "goroutine", recovers a goroutine id from runtime.Stack, and
// evicts stale entries with an amortized sweep that runs once every
// sweepEvery newly created contexts, on the calling goroutine, rather than
// from a dedicated goroutine, so the "no threads of its own"
// invariant (see spec concurrency model) still holds.
type threadContext struct {
	displayName string
	depth       uint32
	frames      []*frame
	processID   uint64 // 0 if binary sink is not enabled
	lastSeen    int64  // unix nanos, updated on every access
}

var (
	contexts         sync.Map // goroutine id (uint64) -> *threadContext
	nextThreadNumber atomic.Uint64
	nextProcessID    atomic.Uint64
	enterCount       atomic.Uint64
)

const (
	sweepEvery   = 4096
	sweepMaxIdle = 60 * time.Second
)

// goroutineID recovers the runtime's internal goroutine id by parsing the
// header line of runtime.Stack's output ("goroutine 123 [running]:"). It is
// not part of any public API contract, but it is stable for the lifetime of
// the goroutine, which is all this package needs.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]
	const prefix = "goroutine "
	if !bytes.HasPrefix(b, []byte(prefix)) {
		return 0
	}
	b = b[len(prefix):]
	if idx := bytes.IndexByte(b, ' '); idx >= 0 {
		b = b[:idx]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// currentThreadContext returns the calling goroutine's context, creating it
// lazily on first use. binaryEnabled controls whether a process id is
// assigned and process-definition/begin records are emitted.
func currentThreadContext(binaryEnabled bool) *threadContext {
	gid := goroutineID()
	if v, ok := contexts.Load(gid); ok {
		tc := v.(*threadContext)
		atomic.StoreInt64(&tc.lastSeen, time.Now().UnixNano())
		return tc
	}

	tc := &threadContext{lastSeen: time.Now().UnixNano()}
	if n := nextThreadNumber.Add(1); n == 1 {
		tc.displayName = "Main process"
	} else {
		tc.displayName = "Thread " + strconv.FormatUint(n, 10)
	}
	if binaryEnabled {
		tc.processID = nextProcessID.Add(1)
	}
	actual, loaded := contexts.LoadOrStore(gid, tc)
	if loaded {
		return actual.(*threadContext)
	}
	if binaryEnabled {
		emitProcessBegin(tc)
	}
	maybeSweep()
	return tc
}

// maybeSweep runs a cheap, amortized eviction pass so that threadContext
// entries for goroutines that have exited are eventually reclaimed, without
// spawning any goroutine of our own. It is called each time a new context
// is created, and sweeps on every sweepEvery-th such call.
func maybeSweep() {
	if enterCount.Add(1)%sweepEvery != 0 {
		return
	}
	now := time.Now()
	contexts.Range(func(key, value any) bool {
		tc := value.(*threadContext)
		if tc.depth == 0 && now.Sub(time.Unix(0, atomic.LoadInt64(&tc.lastSeen))) > sweepMaxIdle {
			if tc.processID != 0 {
				emitProcessEnd(tc)
			}
			contexts.Delete(key)
		}
		return true
	})
}

// resetContexts clears all thread-context state. Called by Fini so a
// subsequent Init (in tests) starts from a clean slate; the live process
// never calls Init twice in its lifetime per spec.
func resetContexts() {
	contexts.Range(func(key, _ any) bool {
		contexts.Delete(key)
		return true
	})
	nextThreadNumber.Store(0)
	nextProcessID.Store(0)
	enterCount.Store(0)
}
