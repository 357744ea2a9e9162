// Package router fans parsed events out to per-worker queues.
//
// Events are sharded by client id (client_id mod workers). Queues are bounded
// and sends never block: when a worker's queue is full the event is dropped
// and logged, keeping the pipeline live under load.
package router
