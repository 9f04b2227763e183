// Package backgroundop is a bounded worker pool standing in for
// JBackgroundOperation, JULEA's background-operation thread pool. Each
// submitted operation runs on its own goroutine, bracketed in
// jtrace.Enter/Leave, so the pool itself shows up as traced work rather
// than being an invisible implementation detail.
package backgroundop

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Beyney/julea/internal/jtrace"
)

// Pool runs submitted operations on at most Workers goroutines at a time.
// Unlike the tracer core, a Pool does own goroutines — spec §5's "no
// tracing-owned goroutines" constrains jtrace itself, not its callers.
type Pool struct {
	group    *errgroup.Group
	groupCtx context.Context
}

// New starts a Pool bounded to workers concurrent operations. workers <= 0
// is treated as 1, matching errgroup.SetLimit's own precondition.
func New(ctx context.Context, workers int) *Pool {
	g, gctx := errgroup.WithContext(ctx)
	if workers <= 0 {
		workers = 1
	}
	g.SetLimit(workers)
	return &Pool{group: g, groupCtx: gctx}
}

// Submit queues name to run op on a pool goroutine. Submit blocks only if
// the pool is already at its worker limit; it never blocks waiting for op
// itself to finish. op is bracketed in an Enter("backgroundop:"+name)/Leave
// pair so its duration appears in any active trace.
func (p *Pool) Submit(name string, op func(ctx context.Context) error) {
	p.group.Go(func() error {
		span := jtrace.Enter("backgroundop:"+name, "")
		defer jtrace.Leave(span)
		return op(p.groupCtx)
	})
}

// Wait blocks until every submitted operation has returned, and returns
// the first non-nil error, if any (mirroring errgroup.Group.Wait).
func (p *Pool) Wait() error {
	return p.group.Wait()
}
