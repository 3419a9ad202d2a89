// Package runner drives a cleaning batch from scan to summary.
//
// One Runner executes one run: resolve and preflight the root, enumerate
// files, then either report (dry run), or confirm and process each file
// sequentially — optional backup, dispatch, fold into statistics, progress
// line — before rendering the summary and recording the run in history.
// Interrupts are honored between files; an interrupted run still prints a
// valid summary with the unprocessed remainder counted as skipped.
package runner
