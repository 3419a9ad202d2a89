// Package report accumulates per-run cleaning statistics and renders them.
package report

import (
	"time"

	"metawipe/internal/classify"
	"metawipe/internal/clean"
)

// Stats is the batch aggregate. It has a single writer: the orchestrator's
// processing loop folds one outcome at a time, so no locking is needed.
// At the end of every run Cleaned+Failed+Skipped == Total, including
// interrupted runs.
type Stats struct {
	Total   int
	Cleaned int
	Failed  int
	Skipped int

	ByCategory map[classify.Category]int
	ByMethod   map[clean.Method]int

	Elapsed   time.Duration
	BackupDir string
}

func New() *Stats {
	return &Stats{
		ByCategory: make(map[classify.Category]int),
		ByMethod:   make(map[clean.Method]int),
	}
}

// Fold records one processed file. Failed outcomes land in the method
// histogram under their (necessarily none) method.
func (s *Stats) Fold(outcome clean.Outcome) {
	s.Total++
	s.ByCategory[outcome.Category]++
	s.ByMethod[outcome.Method]++
	if outcome.Success {
		s.Cleaned++
	} else {
		s.Failed++
	}
}

// MarkSkipped accounts for files never reached, normally because the run was
// interrupted mid-batch.
func (s *Stats) MarkSkipped(n int) {
	if n <= 0 {
		return
	}
	s.Total += n
	s.Skipped += n
}

// Balanced reports whether the completion invariant holds.
func (s *Stats) Balanced() bool {
	return s.Cleaned+s.Failed+s.Skipped == s.Total
}

// Categorize classifies every path and returns the category histogram.
// Dry-run reporting uses this without touching any file.
func Categorize(paths []string) map[classify.Category]int {
	counts := make(map[classify.Category]int)
	for _, path := range paths {
		counts[classify.Classify(path)]++
	}
	return counts
}
