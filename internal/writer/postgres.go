package writer

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rickgao/payments-engine/internal/ledger"
)

const createBalancesTable = `
	CREATE TABLE IF NOT EXISTS account_balances (
		run_id     uuid           NOT NULL,
		client_id  numeric(20, 0) NOT NULL,
		shard      integer        NOT NULL,
		available  numeric        NOT NULL,
		held       numeric        NOT NULL,
		total      numeric        NOT NULL,
		locked     boolean        NOT NULL,
		written_at timestamptz    NOT NULL DEFAULT now(),
		PRIMARY KEY (run_id, client_id)
	)`

const insertBalance = `
	INSERT INTO account_balances (run_id, client_id, shard, available, held, total, locked)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (run_id, client_id) DO NOTHING`

// PostgresWriter stores each run's final balances in account_balances.
type PostgresWriter struct {
	cfg    PostgresConfig
	logger *slog.Logger
	db     *pgxpool.Pool
	runID  uuid.UUID

	mu      sync.Mutex
	metrics WriterMetrics
}

// NewPostgresWriter creates a PostgresWriter tagging rows with runID.
func NewPostgresWriter(cfg PostgresConfig, db *pgxpool.Pool, runID uuid.UUID, logger *slog.Logger) *PostgresWriter {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BatchSize < 1 {
		cfg.BatchSize = DefaultPostgresConfig().BatchSize
	}
	return &PostgresWriter{
		cfg:    cfg,
		logger: logger,
		db:     db,
		runID:  runID,
	}
}

// Begin creates the balances table if it does not exist.
func (w *PostgresWriter) Begin(ctx context.Context) error {
	_, err := w.db.Exec(ctx, createBalancesTable)
	return err
}

// Report inserts one worker's balances in batches.
func (w *PostgresWriter) Report(ctx context.Context, shard int, accounts []ledger.Snapshot) error {
	for start := 0; start < len(accounts); start += w.cfg.BatchSize {
		end := min(start+w.cfg.BatchSize, len(accounts))

		rows := make([]balanceRow, 0, end-start)
		for _, a := range accounts[start:end] {
			rows = append(rows, w.transform(shard, a))
		}

		if err := w.flush(ctx, rows); err != nil {
			return err
		}
	}
	return nil
}

// Stats returns current metrics.
func (w *PostgresWriter) Stats() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

// transform converts a snapshot to a balanceRow.
func (w *PostgresWriter) transform(shard int, s ledger.Snapshot) balanceRow {
	return balanceRow{
		RunID:     w.runID.String(),
		ClientID:  strconv.FormatUint(s.ClientID, 10),
		Shard:     shard,
		Available: s.Available.StringFixed(AmountPlaces),
		Held:      s.Held.StringFixed(AmountPlaces),
		Total:     s.Total.StringFixed(AmountPlaces),
		Locked:    s.Locked,
	}
}

// flush writes rows and updates metrics.
func (w *PostgresWriter) flush(ctx context.Context, rows []balanceRow) error {
	start := time.Now()

	conflicts, err := w.batchInsert(ctx, rows)
	if err != nil {
		w.logger.Error("batch insert failed", "error", err, "count", len(rows))
		w.mu.Lock()
		w.metrics.Errors++
		w.mu.Unlock()
		return err
	}

	w.mu.Lock()
	w.metrics.Inserts += int64(len(rows) - conflicts)
	w.metrics.Conflicts += int64(conflicts)
	w.metrics.Flushes++
	w.mu.Unlock()

	w.logger.Debug("flushed balances",
		"count", len(rows),
		"conflicts", conflicts,
		"duration", time.Since(start),
	)
	return nil
}

// batchInsert inserts rows using pgx.Batch with ON CONFLICT DO NOTHING.
func (w *PostgresWriter) batchInsert(ctx context.Context, rows []balanceRow) (conflicts int, err error) {
	batch := &pgx.Batch{}
	for _, r := range rows {
		batch.Queue(insertBalance, r.RunID, r.ClientID, r.Shard, r.Available, r.Held, r.Total, r.Locked)
	}

	results := w.db.SendBatch(ctx, batch)
	defer results.Close()

	for range rows {
		ct, err := results.Exec()
		if err != nil {
			return 0, err
		}
		if ct.RowsAffected() == 0 {
			conflicts++
		}
	}

	return conflicts, nil
}
