package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"metawipe/internal/logging"
)

func TestNewConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := logging.New(logging.Options{
		Level:   "info",
		Format:  "console",
		Console: &buf,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer closer()

	logger.Info("cleaned file", "path", "/tmp/a.jpg", "method", "exiftool")
	logger.Debug("should be filtered")

	out := buf.String()
	if !strings.Contains(out, "INFO cleaned file") {
		t.Fatalf("console output missing message: %q", out)
	}
	if !strings.Contains(out, "path=/tmp/a.jpg") || !strings.Contains(out, "method=exiftool") {
		t.Fatalf("console output missing attrs: %q", out)
	}
	if strings.Contains(out, "should be filtered") {
		t.Fatalf("debug record leaked past info level: %q", out)
	}
}

func TestNewConsoleQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := logging.New(logging.Options{Console: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer closer()

	logger.Warn("skipping", "reason", "no strategy available")
	if !strings.Contains(buf.String(), `reason="no strategy available"`) {
		t.Fatalf("value with spaces not quoted: %q", buf.String())
	}
}

func TestNewConsoleFlattensGroups(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := logging.New(logging.Options{Console: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer closer()

	logger.WithGroup("run").With("id", "abc123").Info("started")
	if !strings.Contains(buf.String(), "run.id=abc123") {
		t.Fatalf("grouped attr not flattened: %q", buf.String())
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := logging.New(logging.Options{
		Level:   "debug",
		Format:  "json",
		Console: &buf,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer closer()

	logger.Error("strategy failed", "category", "pdf")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if record["level"] != "error" {
		t.Fatalf("unexpected level field: %v", record["level"])
	}
	if record["msg"] != "strategy failed" {
		t.Fatalf("unexpected msg field: %v", record["msg"])
	}
	if _, ok := record["ts"]; !ok {
		t.Fatal("missing ts field")
	}
	if record["category"] != "pdf" {
		t.Fatalf("unexpected category attr: %v", record["category"])
	}
}

func TestNewTeesToFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "clean_20240301.log")
	logger, closer, err := logging.New(logging.Options{
		Console:  &buf,
		FilePath: path,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("hello")
	if err := closer(); err != nil {
		t.Fatalf("closer returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("file missing record: %q", data)
	}
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("console missing record: %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestDiscardNeverPanics(t *testing.T) {
	logger := logging.Discard()
	logger.Info("ignored", "k", "v")
	logger.Error("ignored")
}
