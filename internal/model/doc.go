// Package model defines the event types shared by the parser, router and ledger.
//
// Conventions:
//   - Amounts: shopspring decimal, never binary floating point
//   - IDs: uint64 for both client and transaction ids
//   - Kind: closed set, switch on it through Kinds() in tests to keep handlers exhaustive
package model
