// Package archive keeps finalized match summaries.
//
// Only finished innings are archived; live match state is never
// persisted. Saving is idempotent per summary id, so a retried save
// after a crash cannot produce a duplicate entry.
//
// Two implementations are provided: Memory for tests and short sessions,
// and Store, a SQLite database in WAL mode.
package archive
