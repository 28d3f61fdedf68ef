package scoring

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Runner fires RefreshAll on a fixed wall-clock interval until its context
// is cancelled. Exact timing is not guaranteed, only eventual firing.
type Runner struct {
	refresher *Refresher
	interval  time.Duration
	log       *zap.Logger
	done      chan struct{}
}

func NewRunner(refresher *Refresher, interval time.Duration, log *zap.Logger) *Runner {
	return &Runner{
		refresher: refresher,
		interval:  interval,
		log:       log,
		done:      make(chan struct{}),
	}
}

// Start launches the refresh loop in its own goroutine.
func (r *Runner) Start(ctx context.Context) {
	go r.loop(ctx)
}

func (r *Runner) loop(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.log.Info("score refresh runner started", zap.Duration("interval", r.interval))

	for {
		select {
		case <-ctx.Done():
			r.log.Info("score refresh runner stopped")
			return
		case <-ticker.C:
			if err := r.refresher.RefreshAll(ctx); err != nil {
				r.log.Error("score refresh run failed", zap.Error(err))
			}
		}
	}
}

// Wait blocks until the loop has exited after context cancellation.
func (r *Runner) Wait() {
	<-r.done
}
