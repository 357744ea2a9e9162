package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/payments-engine/internal/parser"
	"github.com/rickgao/payments-engine/internal/router"
	"github.com/rickgao/payments-engine/internal/worker"
)

// Summary reports what a run did with its input. Callers use it to detect
// partial data loss, which never fails a run.
type Summary struct {
	RunID   uuid.UUID
	Workers int

	Parser parser.Stats
	Router router.Stats

	// Totals across workers
	Applied   int64
	Rejected  int64
	Misrouted int64
	Accounts  int

	Duration time.Duration
}

func (s *Summary) addWorker(ws worker.Stats) {
	s.Applied += ws.Applied
	s.Rejected += ws.Rejected
	s.Misrouted += ws.Misrouted
	s.Accounts += ws.Accounts
}

// Skipped counts input records and events that did not reach an account.
func (s Summary) Skipped() int64 {
	return s.Parser.DecodeErrors + s.Parser.Unreadable +
		s.Router.EventsDropped + s.Rejected + s.Misrouted
}

// Complete reports whether every record was read, decoded, delivered and
// applied.
func (s Summary) Complete() bool {
	return s.Skipped() == 0
}

// LogAttrs returns the summary as slog key/value pairs.
func (s Summary) LogAttrs() []any {
	return []any{
		"workers", s.Workers,
		"lines", s.Parser.LinesRead,
		"events", s.Parser.EventsDecoded,
		"decode_errors", s.Parser.DecodeErrors,
		"unreadable", s.Parser.Unreadable,
		"dropped", s.Router.EventsDropped,
		"applied", s.Applied,
		"rejected", s.Rejected,
		"misrouted", s.Misrouted,
		"accounts", s.Accounts,
		"duration", s.Duration,
	}
}
