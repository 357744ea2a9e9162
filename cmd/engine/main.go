package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/rickgao/payments-engine/internal/config"
	"github.com/rickgao/payments-engine/internal/database"
	"github.com/rickgao/payments-engine/internal/engine"
	"github.com/rickgao/payments-engine/internal/parser"
	"github.com/rickgao/payments-engine/internal/version"
	"github.com/rickgao/payments-engine/internal/writer"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to config file (defaults apply when empty)")
	workers := flag.Int("workers", 0, "worker count, overrides pipeline.workers")
	logLevel := flag.String("log-level", "", "debug, info, warn or error; overrides logging.level")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <input.csv>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return 0
	}

	// Logs go to stderr, stdout carries the report
	logger := newLogger(config.DefaultLogFormat, slog.LevelInfo)

	// .env lets ${VAR} in the config file resolve locally
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return 1
	}

	// Flag overrides
	if *workers != 0 {
		cfg.Pipeline.Workers = *workers
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		return 1
	}

	level, _ := cfg.Logging.SlogLevel()
	logger = newLogger(cfg.Logging.Format, level)
	slog.SetDefault(logger)

	if flag.NArg() != 1 {
		logger.Error("missing input file", "usage", "engine [flags] <input.csv>")
		return 1
	}
	path := flag.Arg(0)

	logger.Info("starting engine",
		version.Attr(),
		"config", *configPath,
		"input", path,
	)

	engineCfg, err := engine.ConfigFrom(cfg)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return 1
	}
	engineCfg.RunID = uuid.New()

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	var sinks writer.Multi

	if pg := cfg.Output.Postgres; pg.Enabled {
		logger.Info("connecting to database",
			"host", pg.Host,
			"port", pg.Port,
			"database", pg.Name,
		)

		pool, err := database.Connect(ctx, pg.DBConfig)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			return 1
		}
		defer pool.Close()

		logger.Info("database connected")

		// Ahead of the table so a schema failure happens before the header prints
		sinks = append(sinks, writer.NewPostgresWriter(
			writer.PostgresConfig{BatchSize: pg.BatchSize},
			pool,
			engineCfg.RunID,
			logger,
		))
	}
	sinks = append(sinks, writer.NewTableWriter(os.Stdout))

	summary, err := engine.New(engineCfg, sinks, logger).Run(ctx, path)
	if err != nil {
		var inputErr *parser.InputError
		if errors.As(err, &inputErr) {
			logger.Error("failed to open input", "path", inputErr.Path, "error", inputErr.Err)
		} else {
			logger.Error("run failed", "error", err)
		}
		return 1
	}

	if !summary.Complete() {
		logger.Warn("some records were not applied", "skipped", summary.Skipped())
	}
	return 0
}

func newLogger(format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
