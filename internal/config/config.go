package config

import "log/slog"

// EngineConfig is the root configuration for an engine run.
type EngineConfig struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
	Ledger   LedgerConfig   `yaml:"ledger"`
	Logging  LoggingConfig  `yaml:"logging"`
	Output   OutputConfig   `yaml:"output"`
}

// PipelineConfig sizes the parser, dispatcher and worker pool.
type PipelineConfig struct {
	Workers      int `yaml:"workers"`       // Shard count
	ParserBuffer int `yaml:"parser_buffer"` // Parser -> dispatcher channel capacity
	ChunkLines   int `yaml:"chunk_lines"`   // Raw lines decoded per batch
	QueueSize    int `yaml:"queue_size"`    // Per-worker inbound queue capacity
}

// LedgerConfig holds account state machine settings.
type LedgerConfig struct {
	LockedPolicy string `yaml:"locked_policy"` // reject_all | block_disputes
}

// LoggingConfig holds slog settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// SlogLevel parses Level.
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(l.Level))
	return level, err
}

// OutputConfig holds report sinks beyond stdout.
type OutputConfig struct {
	Postgres PostgresOutputConfig `yaml:"postgres"`
}

// PostgresOutputConfig enables exporting final balances to PostgreSQL.
type PostgresOutputConfig struct {
	Enabled   bool `yaml:"enabled"`
	DBConfig  `yaml:",inline"`
	BatchSize int `yaml:"batch_size"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}
