// Package logging assembles the structured slog loggers used across
// metawipe.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and can tee every record into a per-run log file next to the
// console stream. The package also provides a no-op logger for tests and
// wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits records with the same shape and routing.
package logging
