package router

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rickgao/payments-engine/internal/model"
)

// Router dispatches events to per-shard queues.
type Router struct {
	cfg    Config
	logger *slog.Logger

	// Output to workers, indexed by shard
	queues []*Queue[model.Event]

	closeOnce sync.Once

	// Stats
	mu       sync.RWMutex
	received int64
	routed   int64
	dropped  int64
}

// New creates a Router with one queue per worker.
func New(cfg Config, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	queues := make([]*Queue[model.Event], cfg.Workers)
	for i := range queues {
		queues[i] = NewQueue[model.Event](cfg.QueueSize)
	}

	return &Router{
		cfg:    cfg,
		logger: logger,
		queues: queues,
	}
}

// Shards returns the number of shards.
func (r *Router) Shards() int {
	return len(r.queues)
}

// Queue returns the inbound queue of a shard's worker.
func (r *Router) Queue(shard int) *Queue[model.Event] {
	return r.queues[shard]
}

// Run dispatches events from input until it is closed or ctx is cancelled,
// then closes every worker queue.
func (r *Router) Run(ctx context.Context, input <-chan model.Event) error {
	defer r.Close()

	r.logger.Info("dispatcher started",
		"workers", len(r.queues),
		"queue_size", r.cfg.QueueSize,
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-input:
			if !ok {
				r.logger.Info("input channel closed")
				return nil
			}
			_ = r.Dispatch(ev)
		}
	}
}

// Dispatch forwards ev to its shard without blocking. A full queue drops the
// event; the error is logged and returned but never retried.
func (r *Router) Dispatch(ev model.Event) error {
	shard := ShardFor(ev.ClientID, len(r.queues))

	r.mu.Lock()
	r.received++
	r.mu.Unlock()

	if err := r.queues[shard].TrySend(ev); err != nil {
		r.mu.Lock()
		r.dropped++
		r.mu.Unlock()

		r.logger.Error("failed sending event",
			"tx", ev.TransactionID,
			"client", ev.ClientID,
			"shard", shard,
			"error", err,
		)
		return fmt.Errorf("dispatch tx %d to shard %d: %w", ev.TransactionID, shard, err)
	}

	r.mu.Lock()
	r.routed++
	r.mu.Unlock()
	return nil
}

// Close closes all worker queues. Workers drain what is left and stop.
func (r *Router) Close() {
	r.closeOnce.Do(func() {
		for _, q := range r.queues {
			q.Close()
		}
	})
}

// Stats returns current statistics.
func (r *Router) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	queues := make([]QueueStats, len(r.queues))
	for i, q := range r.queues {
		queues[i] = q.Stats()
	}

	return Stats{
		EventsReceived: r.received,
		EventsRouted:   r.routed,
		EventsDropped:  r.dropped,
		Queues:         queues,
	}
}
