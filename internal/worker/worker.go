// Package worker runs the sequential apply loop for one shard of accounts.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rickgao/payments-engine/internal/ledger"
	"github.com/rickgao/payments-engine/internal/model"
	"github.com/rickgao/payments-engine/internal/router"
)

// Reporter receives a worker's final balances once its queue is drained.
// Implementations must be safe for concurrent use by several workers.
type Reporter interface {
	Report(ctx context.Context, shard int, accounts []ledger.Snapshot) error
}

// Config holds worker configuration.
type Config struct {
	ID     int               // Shard this worker owns
	Shards int               // Total shard count, used to detect misrouted events
	Policy ledger.LockPolicy // Applied to every account the worker opens
}

// Stats contains worker statistics.
type Stats struct {
	Applied   int64
	Rejected  int64
	Misrouted int64
	Accounts  int
}

// Worker owns one partition of accounts and applies its events in order.
type Worker struct {
	cfg      Config
	logger   *slog.Logger
	input    *router.Queue[model.Event]
	reporter Reporter
	book     *ledger.Book

	done chan struct{}

	mu    sync.Mutex
	stats Stats
}

// New creates a Worker reading from input.
func New(cfg Config, input *router.Queue[model.Event], reporter Reporter, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Shards < 1 {
		cfg.Shards = 1
	}
	return &Worker{
		cfg:      cfg,
		logger:   logger.With("worker", cfg.ID),
		input:    input,
		reporter: reporter,
		book:     ledger.NewBook(cfg.Policy),
		done:     make(chan struct{}),
	}
}

// Run applies events until the input queue is closed and drained, then
// reports every owned account and returns.
func (w *Worker) Run(ctx context.Context) error {
	defer close(w.done)

	for {
		ev, ok := w.input.Receive()
		if !ok {
			break
		}
		w.handle(ev)
	}

	snapshots := w.book.Snapshots()

	w.mu.Lock()
	w.stats.Accounts = len(snapshots)
	stats := w.stats
	w.mu.Unlock()

	w.logger.Info("worker drained",
		"accounts", stats.Accounts,
		"applied", stats.Applied,
		"rejected", stats.Rejected,
	)

	if w.reporter == nil {
		return nil
	}
	if err := w.reporter.Report(ctx, w.cfg.ID, snapshots); err != nil {
		return fmt.Errorf("report shard %d: %w", w.cfg.ID, err)
	}
	return nil
}

// Done is closed when Run returns.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// handle applies a single event to the book.
func (w *Worker) handle(ev model.Event) {
	if shard := router.ShardFor(ev.ClientID, w.cfg.Shards); shard != w.cfg.ID {
		w.logger.Error("discarding misrouted event",
			"tx", ev.TransactionID,
			"client", ev.ClientID,
			"shard", shard,
		)
		w.count(func(s *Stats) { s.Misrouted++ })
		return
	}

	if err := w.book.Apply(ev); err != nil {
		var rej *ledger.RejectError
		if errors.As(err, &rej) {
			w.logger.Warn("event rejected",
				"kind", rej.Kind,
				"tx", rej.TxID,
				"client", rej.ClientID,
				"error", rej.Err,
			)
		} else {
			w.logger.Warn("event rejected", "tx", ev.TransactionID, "error", err)
		}
		w.count(func(s *Stats) { s.Rejected++ })
		return
	}
	w.count(func(s *Stats) { s.Applied++ })
}

// Stats returns current statistics.
func (w *Worker) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *Worker) count(fn func(*Stats)) {
	w.mu.Lock()
	fn(&w.stats)
	w.mu.Unlock()
}
