package backup

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestManager(t *testing.T, walkRoot string) *Manager {
	t.Helper()
	m, err := NewManager(t.TempDir(), walkRoot, "0123456789abcdef", time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestBackupMirrorsRelativeStructure(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "photos", "2023", "trip.jpg")
	if err := os.MkdirAll(filepath.Dir(nested), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(nested, []byte("jpeg bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	stamp := time.Date(2021, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := os.Chtimes(nested, stamp, stamp); err != nil {
		t.Fatal(err)
	}

	m := newTestManager(t, root)
	if !m.Backup(nested) {
		t.Fatal("backup reported failure")
	}

	copied := filepath.Join(m.Dir(), "photos", "2023", "trip.jpg")
	data, err := os.ReadFile(copied)
	if err != nil {
		t.Fatalf("backup copy missing: %v", err)
	}
	if string(data) != "jpeg bytes" {
		t.Fatalf("backup content mismatch: %q", data)
	}
	info, err := os.Stat(copied)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(stamp) {
		t.Fatalf("backup mtime not preserved: %v", info.ModTime())
	}
}

func TestBackupDirNameCarriesTimestampAndRunID(t *testing.T) {
	root := t.TempDir()
	m := newTestManager(t, root)
	base := filepath.Base(m.Dir())
	if base != "20240301_103000_01234567" {
		t.Fatalf("unexpected backup dir name %q", base)
	}
}

func TestBackupFailureIsNonFatal(t *testing.T) {
	root := t.TempDir()
	m := newTestManager(t, root)
	if m.Backup(filepath.Join(root, "missing.txt")) {
		t.Fatal("expected failure for missing source")
	}
}

func TestBackupRejectsPathOutsideRoot(t *testing.T) {
	root := t.TempDir()
	outside := filepath.Join(t.TempDir(), "other.txt")
	if err := os.WriteFile(outside, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	m := newTestManager(t, root)
	if m.Backup(outside) {
		t.Fatal("expected failure for path outside walk root")
	}
}
