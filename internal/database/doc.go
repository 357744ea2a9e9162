// Package database opens the PostgreSQL pool used to export final account
// balances. The engine never reads ledger state back from the database.
package database
