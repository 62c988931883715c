// Package history journals organize runs in SQLite so they can be listed and
// reverted.
//
// Each run gets a row in runs and one row per classified file in moves. The
// journal only records what happened; reverting moves is driven by the
// organizer, which marks moves and runs as reverted through this package.
//
// Schema changes bump schemaVersion in schema.go. Older databases are rejected
// rather than migrated; delete history.db to start a fresh journal.
package history
