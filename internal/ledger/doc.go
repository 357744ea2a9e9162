// Package ledger implements the per-client account state machine.
//
// An Account tracks available, held and total funds together with the
// transactions settled against it and the lifecycle of any disputes. A Book
// is one worker's partition of accounts. Neither type is safe for concurrent
// use: each Book is owned by exactly one worker goroutine.
package ledger
