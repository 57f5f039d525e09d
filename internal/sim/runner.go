package sim

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/teachos/schedsim/internal/kernel/scheduler"
)

// Runner drives the simulation continuously from exactly one goroutine,
// pacing ExecuteCycle with a rate limiter so autoplay is watchable. It is
// the coordinating driver the engine contract requires.
type Runner struct {
	sim     *Simulator
	limiter *rate.Limiter
	log     *zap.Logger
}

// NewRunner creates a runner ticking at ticksPerSecond.
func NewRunner(sim *Simulator, ticksPerSecond float64, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		sim:     sim,
		limiter: rate.NewLimiter(rate.Limit(ticksPerSecond), 1),
		log:     log,
	}
}

// Run executes up to cycles ticks, stopping early when the context is
// canceled. It returns the events of the executed cycles.
func (r *Runner) Run(ctx context.Context, cycles int) ([]scheduler.Event, error) {
	events := make([]scheduler.Event, 0, cycles)
	for i := 0; i < cycles; i++ {
		if err := r.limiter.Wait(ctx); err != nil {
			return events, err
		}
		event := r.sim.ExecuteCycle()
		events = append(events, event)
	}
	return events, nil
}

// RunProducerConsumer demonstrates the concurrent execution model: a
// producer goroutine pushes every item through the blocking Produce path
// while a consumer goroutine drains the same number of items, both
// genuinely suspending on the buffer's semaphores. It returns the items
// in consumption order.
//
// Cancellation is honored between operations; the blocking primitives
// themselves carry no timeout, so a bounded wait has to be layered here,
// by the caller.
func (r *Runner) RunProducerConsumer(ctx context.Context, items []string) []string {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, item := range items {
			select {
			case <-ctx.Done():
				return
			default:
			}
			r.sim.Produce(item)
			r.log.Debug("produced", zap.String("item", item))
		}
	}()

	consumed := make([]string, 0, len(items))
	for range items {
		select {
		case <-ctx.Done():
			return consumed
		default:
		}
		item := r.sim.Consume()
		r.log.Debug("consumed", zap.String("item", item))
		consumed = append(consumed, item)
	}
	<-done
	return consumed
}
