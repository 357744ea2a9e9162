// Package parser streams ledger events from a delimited input file.
//
// The first line is a header and is always skipped. Remaining lines are read
// in chunks and decoded as a batch; a line that cannot be decoded is logged
// and dropped without affecting the rest of its chunk. Only a failure to open
// the file is fatal.
//
// Record layout: type, tx, client, amount (amount only for deposit and
// withdrawal). Types are matched case-insensitively.
package parser
