// Package results persists reviewer accounts and per-case classification
// results in SQLite. Each reviewer records at most one result per case; a
// resubmission updates the existing row. The store is the system of record
// the CSV exports and the case list annotations are built from.
package results
