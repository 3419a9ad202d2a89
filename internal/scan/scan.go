// Package scan enumerates the regular files a cleaning run will process.
//
// The walk prunes excluded directory names before descending into them, so
// nothing under a version-control or dependency-cache directory is ever
// visited. Unreadable directories are logged and skipped rather than failing
// the whole walk.
package scan

import (
	"io/fs"
	"log/slog"
	"path/filepath"
)

// DefaultExcludes are directory names the walker never descends into.
var DefaultExcludes = []string{".git", "__pycache__", "node_modules", ".venv", "venv"}

// Walk returns every regular file under root, depth-first, excluding any
// subtree whose directory name is in excludes. Symlinks and other
// non-regular entries are skipped silently. The returned slice is a fresh
// enumeration; nothing is cached between calls.
func Walk(root string, excludes []string, logger *slog.Logger) ([]string, error) {
	excluded := make(map[string]struct{}, len(excludes))
	for _, name := range excludes {
		excluded[name] = struct{}{}
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			if logger != nil {
				logger.Warn("skipping unreadable path", "path", path, "error", walkErr)
			}
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			if path == root {
				return nil
			}
			if _, skip := excluded[entry.Name()]; skip {
				return fs.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
