package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rickgao/payments-engine/internal/config"
	"github.com/rickgao/payments-engine/internal/ledger"
	"github.com/rickgao/payments-engine/internal/parser"
	"github.com/rickgao/payments-engine/internal/router"
	"github.com/rickgao/payments-engine/internal/worker"
	"github.com/rickgao/payments-engine/internal/writer"
)

// Config holds the settings of every pipeline stage.
type Config struct {
	RunID  uuid.UUID // Generated when zero
	Parser parser.Config
	Router router.Config
	Policy ledger.LockPolicy
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		Parser: parser.DefaultConfig(),
		Router: router.DefaultConfig(),
		Policy: ledger.RejectAll,
	}
}

// ConfigFrom maps a validated EngineConfig onto pipeline settings.
func ConfigFrom(cfg *config.EngineConfig) (Config, error) {
	policy, err := ledger.ParseLockPolicy(cfg.Ledger.LockedPolicy)
	if err != nil {
		return Config{}, err
	}
	return Config{
		Parser: parser.Config{
			ChunkLines: cfg.Pipeline.ChunkLines,
			BufferSize: cfg.Pipeline.ParserBuffer,
		},
		Router: router.Config{
			Workers:   cfg.Pipeline.Workers,
			QueueSize: cfg.Pipeline.QueueSize,
		},
		Policy: policy,
	}, nil
}

// Engine processes input files into final balances.
type Engine struct {
	cfg    Config
	sink   writer.Sink
	logger *slog.Logger
}

// New creates an Engine reporting to sink.
func New(cfg Config, sink writer.Sink, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if sink == nil {
		sink = writer.Multi{}
	}
	if cfg.RunID == uuid.Nil {
		cfg.RunID = uuid.New()
	}
	return &Engine{
		cfg:    cfg,
		sink:   sink,
		logger: logger.With("run_id", cfg.RunID.String()),
	}
}

// RunID identifies this engine's output.
func (e *Engine) RunID() uuid.UUID {
	return e.cfg.RunID
}

// Run processes path to completion and returns once every worker has
// reported. A file that cannot be opened fails with *parser.InputError before
// anything is written to the sink. Bad records, dropped events and rejected
// operations never fail the run; they are counted in the Summary.
func (e *Engine) Run(ctx context.Context, path string) (Summary, error) {
	start := time.Now()

	p, err := parser.Open(path, e.cfg.Parser, e.logger)
	if err != nil {
		return Summary{}, err
	}

	if err := e.sink.Begin(ctx); err != nil {
		p.Close()
		return Summary{}, fmt.Errorf("begin report: %w", err)
	}

	r := router.New(e.cfg.Router, e.logger)
	workers := make([]*worker.Worker, r.Shards())
	for i := range workers {
		workers[i] = worker.New(worker.Config{
			ID:     i,
			Shards: r.Shards(),
			Policy: e.cfg.Policy,
		}, r.Queue(i), e.sink, e.logger)
	}

	e.logger.Info("run started",
		"path", path,
		"workers", len(workers),
		"policy", e.cfg.Policy,
	)

	events := p.NewChannel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return p.Run(gctx, events) })
	g.Go(func() error { return r.Run(gctx, events) })
	for _, w := range workers {
		w := w
		g.Go(func() error { return w.Run(gctx) })
	}
	err = g.Wait()

	summary := Summary{
		RunID:    e.cfg.RunID,
		Workers:  len(workers),
		Parser:   p.Stats(),
		Router:   r.Stats(),
		Duration: time.Since(start),
	}
	for _, w := range workers {
		summary.addWorker(w.Stats())
	}

	if err != nil {
		e.logger.Error("run failed", "error", err)
		return summary, fmt.Errorf("run %s: %w", e.cfg.RunID, err)
	}

	e.logger.Info("run complete", summary.LogAttrs()...)
	return summary, nil
}
