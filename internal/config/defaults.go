package config

// Default values for optional configuration fields.
const (
	DefaultWorkers      = 8
	DefaultParserBuffer = 100
	DefaultChunkLines   = 100
	DefaultQueueSize    = 100
	DefaultLockedPolicy = "reject_all"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
	DefaultDBPort       = 5432
	DefaultDBSSLMode    = "prefer"
	DefaultMaxConns     = 4
	DefaultBatchSize    = 500
)

// Default returns a configuration with every default applied.
func Default() *EngineConfig {
	cfg := &EngineConfig{}
	cfg.applyDefaults()
	return cfg
}

func (c *EngineConfig) applyDefaults() {
	// Pipeline defaults
	if c.Pipeline.Workers == 0 {
		c.Pipeline.Workers = DefaultWorkers
	}
	if c.Pipeline.ParserBuffer == 0 {
		c.Pipeline.ParserBuffer = DefaultParserBuffer
	}
	if c.Pipeline.ChunkLines == 0 {
		c.Pipeline.ChunkLines = DefaultChunkLines
	}
	if c.Pipeline.QueueSize == 0 {
		c.Pipeline.QueueSize = DefaultQueueSize
	}

	if c.Ledger.LockedPolicy == "" {
		c.Ledger.LockedPolicy = DefaultLockedPolicy
	}

	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}

	// Output defaults
	pg := &c.Output.Postgres
	if pg.Port == 0 {
		pg.Port = DefaultDBPort
	}
	if pg.SSLMode == "" {
		pg.SSLMode = DefaultDBSSLMode
	}
	if pg.MaxConns == 0 {
		pg.MaxConns = DefaultMaxConns
	}
	if pg.BatchSize == 0 {
		pg.BatchSize = DefaultBatchSize
	}
}
