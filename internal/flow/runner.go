// Package flow runs page requests in the background: the caller starts a
// request and returns at once, and failures end up in the log.
package flow

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"recipebook-tracker/internal/logging"
)

// State is where a runner's requests stand.
type State int

const (
	Idle State = iota
	Requesting
)

func (s State) String() string {
	if s == Requesting {
		return "requesting"
	}
	return "idle"
}

// Runner starts fire-and-forget requests. There is no retry, no cancellation
// and no de-duplication: overlapping requests all run, and whichever finishes
// last is the one whose result is rendered last.
type Runner struct {
	ctx      context.Context
	log      *zap.Logger
	group    errgroup.Group
	inFlight atomic.Int64
	started  atomic.Int64
}

// NewRunner returns a runner whose requests run under ctx.
func NewRunner(ctx context.Context, log *zap.Logger) *Runner {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Runner{ctx: ctx, log: logging.OrNop(log)}
}

// Go starts fn on its own goroutine and returns immediately. A returned error
// is logged under name and not propagated.
func (r *Runner) Go(name string, fn func(ctx context.Context) error) {
	r.inFlight.Add(1)
	r.started.Add(1)
	r.group.Go(func() error {
		defer r.inFlight.Add(-1)
		start := time.Now()
		if err := fn(r.ctx); err != nil {
			r.log.Error("request failed", zap.String("request", name), zap.Duration("took", time.Since(start)), zap.Error(err))
			return nil
		}
		r.log.Debug("request done", zap.String("request", name), zap.Duration("took", time.Since(start)))
		return nil
	})
}

// State reports Requesting while any request is outstanding.
func (r *Runner) State() State {
	if r.inFlight.Load() > 0 {
		return Requesting
	}
	return Idle
}

// InFlight returns the number of outstanding requests.
func (r *Runner) InFlight() int {
	return int(r.inFlight.Load())
}

// Started returns how many requests have been started in total.
func (r *Runner) Started() int {
	return int(r.started.Load())
}

// Wait blocks until every started request has finished.
func (r *Runner) Wait() {
	_ = r.group.Wait()
}
