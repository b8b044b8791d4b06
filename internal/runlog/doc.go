// Package runlog archives cleanup-run summaries in SQLite so past runs can
// be inspected from the CLI. It is reporting only; the downstream media
// managers remain the system of record.
package runlog
