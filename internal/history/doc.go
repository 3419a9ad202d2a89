// Package history persists completed cleaning runs in a SQLite ledger.
//
// One row per live run, written once after summarizing: totals, the
// per-category and per-method histograms (as JSON), the backup directory if
// one was created, and whether the run was interrupted. Dry runs are never
// recorded. The `metawipe history` command reads recent rows back.
package history
