package writer

import (
	"context"

	"github.com/rickgao/payments-engine/internal/ledger"
)

// Sink receives final balances. Begin is called once before any worker
// reports; Report is called once per worker, possibly concurrently.
type Sink interface {
	Begin(ctx context.Context) error
	Report(ctx context.Context, shard int, accounts []ledger.Snapshot) error
}

// Multi fans every call out to each sink in order, stopping at the first error.
type Multi []Sink

func (m Multi) Begin(ctx context.Context) error {
	for _, s := range m {
		if err := s.Begin(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) Report(ctx context.Context, shard int, accounts []ledger.Snapshot) error {
	for _, s := range m {
		if err := s.Report(ctx, shard, accounts); err != nil {
			return err
		}
	}
	return nil
}

// PostgresConfig contains configuration for the PostgreSQL sink.
type PostgresConfig struct {
	// BatchSize is the number of rows queued per round trip.
	BatchSize int
}

// DefaultPostgresConfig returns sensible defaults.
func DefaultPostgresConfig() PostgresConfig {
	return PostgresConfig{
		BatchSize: 500,
	}
}

// balanceRow represents a row in the account_balances table.
type balanceRow struct {
	RunID     string // UUID
	ClientID  string // numeric(20,0): client ids span the full uint64 range
	Shard     int
	Available string // numeric, 4 decimal places
	Held      string
	Total     string
	Locked    bool
}

// WriterMetrics holds metrics for a writer.
type WriterMetrics struct {
	Inserts   int64
	Conflicts int64
	Errors    int64
	Flushes   int64
}
