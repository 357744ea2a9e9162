package writer

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestPostgresWriter_Transform(t *testing.T) {
	runID := uuid.MustParse("6f1c2a0e-2d7b-4c1e-9a0f-3b8d5e7c9a12")
	w := NewPostgresWriter(DefaultPostgresConfig(), nil, runID, nil)

	s := snapshot(^uint64(0), "10.25", "3", true)
	row := w.transform(5, s)

	if row.RunID != "6f1c2a0e-2d7b-4c1e-9a0f-3b8d5e7c9a12" {
		t.Errorf("RunID = %s, want %s", row.RunID, runID)
	}
	if row.ClientID != "18446744073709551615" {
		t.Errorf("ClientID = %s, want 18446744073709551615", row.ClientID)
	}
	if row.Shard != 5 {
		t.Errorf("Shard = %d, want 5", row.Shard)
	}
	if row.Available != "10.2500" || row.Held != "3.0000" || row.Total != "13.2500" {
		t.Errorf("amounts = %s/%s/%s, want 10.2500/3.0000/13.2500", row.Available, row.Held, row.Total)
	}
	if !row.Locked {
		t.Error("Locked = false, want true")
	}
}

func TestNewPostgresWriter_DefaultBatchSize(t *testing.T) {
	w := NewPostgresWriter(PostgresConfig{}, nil, uuid.New(), nil)
	if w.cfg.BatchSize != 500 {
		t.Errorf("BatchSize = %d, want 500", w.cfg.BatchSize)
	}
}

func TestPostgresWriter_EmptyReport(t *testing.T) {
	// No rows means no round trip, so a nil pool is never touched.
	w := NewPostgresWriter(DefaultPostgresConfig(), nil, uuid.New(), nil)
	if err := w.Report(context.Background(), 0, nil); err != nil {
		t.Errorf("Report error = %v", err)
	}
	if stats := w.Stats(); stats.Flushes != 0 {
		t.Errorf("Flushes = %d, want 0", stats.Flushes)
	}
}
