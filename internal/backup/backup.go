// Package backup snapshots files into a timestamped mirror tree before they
// are mutated.
//
// Backups are anchored to the walk root: a file at <root>/a/b.jpg lands at
// <backupRoot>/a/b.jpg. Backup failures are reported to the caller and
// logged, but the cleaning run continues — the backup is an auxiliary
// safety net, not a gate on mutation.
package backup

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"metawipe/internal/fileutil"
)

// Manager copies files into a per-run backup directory, mirroring their
// path relative to the walk root.
type Manager struct {
	walkRoot string
	dir      string
	logger   *slog.Logger
}

// NewManager creates the per-run backup directory under baseDir, named after
// the run's start time plus a short run identifier to keep simultaneous runs
// from colliding.
func NewManager(baseDir, walkRoot, runID string, started time.Time, logger *slog.Logger) (*Manager, error) {
	name := started.Format("20060102_150405")
	if len(runID) >= 8 {
		name += "_" + runID[:8]
	}
	dir := filepath.Join(baseDir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup directory: %w", err)
	}
	return &Manager{walkRoot: walkRoot, dir: dir, logger: logger}, nil
}

// Dir returns the backup directory for this run.
func (m *Manager) Dir() string {
	return m.dir
}

// Backup copies path into the backup tree, preserving its root-relative
// structure and modification time. It reports false and logs on any failure.
func (m *Manager) Backup(path string) bool {
	rel, err := filepath.Rel(m.walkRoot, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		m.logger.Error("backup failed: path outside walk root", "path", path)
		return false
	}
	dst := filepath.Join(m.dir, rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		m.logger.Error("backup failed", "path", path, "error", err)
		return false
	}
	if err := fileutil.CopyPreservingTimes(path, dst); err != nil {
		m.logger.Error("backup failed", "path", path, "error", err)
		return false
	}
	return true
}
