package router

// Config holds configuration for the dispatcher.
type Config struct {
	Workers   int // Number of shards. Default: 8
	QueueSize int // Per-worker inbound queue capacity. Default: 100
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		Workers:   8,
		QueueSize: 100,
	}
}

// Stats contains dispatcher runtime statistics.
type Stats struct {
	EventsReceived int64
	EventsRouted   int64
	EventsDropped  int64
	Queues         []QueueStats
}

// ShardFor returns the shard owning clientID. The mapping is a pure function
// of the id and the shard count, so every event for a client lands on the
// same worker.
func ShardFor(clientID uint64, shards int) int {
	return int(clientID % uint64(shards))
}
