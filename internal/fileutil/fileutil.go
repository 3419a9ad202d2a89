// Package fileutil provides the copy and atomic-replace primitives shared by
// the backup manager and every mutating cleaning strategy.
//
// ReplaceAtomic is the single write discipline for mutations: output is
// staged in a temporary file beside the target and swapped in with one
// rename, so a failure at any earlier point leaves the original untouched.
package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyFile streams src to dst with default permissions (0o644).
func CopyFile(src, dst string) error {
	return CopyFileMode(src, dst, 0o644)
}

// CopyFileMode streams src to dst, setting the given file mode on dst.
func CopyFileMode(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// CopyPreservingTimes copies src to dst and carries over src's modification
// time, so the duplicate is a faithful pre-mutation snapshot rather than a
// file that itself looks freshly touched.
func CopyPreservingTimes(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if err := CopyFileMode(src, dst, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// ReplaceAtomic writes the contents produced by write into a temporary file
// in target's directory, syncs it, and renames it over target. If write or
// any later step fails, the temporary file is removed and target is left
// exactly as it was.
func ReplaceAtomic(target string, write func(io.Writer) error) error {
	dir := filepath.Dir(target)
	tmp, err := os.CreateTemp(dir, filepath.Base(target)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmpPath != "" {
			_ = os.Remove(tmpPath)
		}
	}()

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// Carry the original's permissions when it exists.
	if info, err := os.Stat(target); err == nil {
		_ = os.Chmod(tmpPath, info.Mode().Perm())
	}

	if err := os.Rename(tmpPath, target); err != nil {
		return fmt.Errorf("replace %s: %w", target, err)
	}
	tmpPath = ""
	return nil
}

// ReplaceWithFile renames src over target, falling back to a copy-then-remove
// when the rename crosses filesystems. src must already contain the complete
// replacement content.
func ReplaceWithFile(target, src string) error {
	if err := os.Rename(src, target); err == nil {
		return nil
	}
	if err := CopyFile(src, target); err != nil {
		return err
	}
	return os.Remove(src)
}
