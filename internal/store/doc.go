// Package store provides SQLite-backed durable storage for section change
// history.
//
// The store is an append-only log of section-level change records. It
// implements diff.SectionChangesPersistence, so a diff invocation can write
// its records straight into the database, and it exposes ordered reads for
// the history and replay commands.
//
// # Critical Patterns
//
// CP-1: Logical Time
//   - Ordering uses a per-draft seq INTEGER assigned transactionally at
//     write time, never timestamps. Replay order is deterministic
//     regardless of wall time.
//
// CP-2: Deterministic Query Results
//   - All reads order by seq ASC, id ASC.
//
// CP-3: Append-Only
//   - Records are never updated or deleted. An import that fails midway
//     leaves its already-written records in place; the import token ties
//     them back to the invocation that produced them.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON
package store
