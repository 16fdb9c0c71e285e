// Package store keeps hotel catalogs in SQLite.
//
// Rows are content-addressed: each hotel carries the SHA-256 hash of its
// canonical JSON form (ID excluded), and a UNIQUE index on that hash makes
// re-importing the same catalog a no-op. Hotels without an ID get a UUIDv7
// on import.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// All reads order by seq, the insertion order, never by wall time.
package store
