// Package writer implements report sinks for final account balances.
//
// Sinks:
//   - TableWriter: right-aligned text table on stdout
//   - PostgresWriter: account_balances rows keyed by run id
//
// Each worker reports its whole partition in one call, so a sink writes one
// worker's accounts as a contiguous block. Amounts are rendered with four
// decimal places.
package writer
