// Package store provides SQLite-backed flash storage for analytics commands.
//
// Each row of flash_entries holds the early and normal phases for one
// (session, key) pair as JSON arrays of segments with strings kept byte for
// byte, plus a digest of
// both phases computed by ir.SegmentsDigest. Writes whose digest matches the
// stored one are skipped.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// Listings are ordered by session_id and key COLLATE BINARY so output is
// stable across runs.
package store
