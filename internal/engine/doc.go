// Package engine wires the parser, dispatcher and worker pool into a single
// run over one input file.
//
// Data flows one way:
//
//	file -> parser -> dispatcher -> worker(shard) -> sink
//
// The parser's output channel is the only backpressure point. The dispatcher
// never blocks: an event whose worker queue is full is dropped and counted.
// Run returns once every worker has drained its queue and reported, which is
// the completion barrier for the whole pipeline.
package engine
