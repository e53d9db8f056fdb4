// Package store provides the SQLite-backed export journal.
//
// The journal is append-only. Each export records:
//   - exports: one row per run (source, decorator fingerprint, markup digest)
//   - export_blocks: one row per block (key, type, text digest, markup)
//
// The journal is never consulted while rendering; it exists so a user can
// see what a given configuration produced for a given document.
//
// Ordering uses the seq column, a logical clock assigned on insert, never
// wall-clock time. Queries order by seq ASC, id ASC COLLATE BINARY.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON
package store
