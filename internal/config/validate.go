package config

import (
	"errors"
	"fmt"

	"github.com/rickgao/payments-engine/internal/ledger"
)

// Validate checks that all values are usable.
func (c *EngineConfig) Validate() error {
	if c.Pipeline.Workers < 1 {
		return errors.New("pipeline.workers must be >= 1")
	}
	if c.Pipeline.ParserBuffer < 1 {
		return errors.New("pipeline.parser_buffer must be >= 1")
	}
	if c.Pipeline.ChunkLines < 1 {
		return errors.New("pipeline.chunk_lines must be >= 1")
	}
	if c.Pipeline.QueueSize < 1 {
		return errors.New("pipeline.queue_size must be >= 1")
	}

	if _, err := ledger.ParseLockPolicy(c.Ledger.LockedPolicy); err != nil {
		return fmt.Errorf("ledger.locked_policy: %w", err)
	}

	if _, err := c.Logging.SlogLevel(); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}

	if c.Output.Postgres.Enabled {
		if err := c.Output.Postgres.validate("output.postgres"); err != nil {
			return err
		}
		if c.Output.Postgres.BatchSize < 1 {
			return errors.New("output.postgres.batch_size must be >= 1")
		}
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
