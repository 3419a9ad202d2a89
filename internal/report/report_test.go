package report_test

import (
	"strings"
	"testing"
	"time"

	"metawipe/internal/classify"
	"metawipe/internal/clean"
	"metawipe/internal/report"
)

func TestFoldKeepsInvariant(t *testing.T) {
	stats := report.New()
	stats.Fold(clean.Outcome{Success: true, Method: clean.MethodExiftool, Category: classify.CategoryImage})
	stats.Fold(clean.Outcome{Success: true, Method: clean.MethodPDF, Category: classify.CategoryPDF})
	stats.Fold(clean.Outcome{Success: false, Method: clean.MethodNone, Category: classify.CategoryUnknown})
	stats.MarkSkipped(2)

	if stats.Total != 5 {
		t.Fatalf("unexpected total: %d", stats.Total)
	}
	if stats.Cleaned != 2 || stats.Failed != 1 || stats.Skipped != 2 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if !stats.Balanced() {
		t.Fatal("invariant violated")
	}
	if stats.ByCategory[classify.CategoryImage] != 1 {
		t.Fatalf("category histogram wrong: %v", stats.ByCategory)
	}
	if stats.ByMethod[clean.MethodNone] != 1 {
		t.Fatalf("method histogram wrong: %v", stats.ByMethod)
	}
}

func TestMarkSkippedIgnoresNonPositive(t *testing.T) {
	stats := report.New()
	stats.MarkSkipped(0)
	stats.MarkSkipped(-3)
	if stats.Total != 0 || stats.Skipped != 0 {
		t.Fatalf("non-positive skip counted: %+v", stats)
	}
}

func TestCategorize(t *testing.T) {
	counts := report.Categorize([]string{"a.jpg", "b.PNG", "c.pdf", "d.xyz"})
	if counts[classify.CategoryImage] != 2 {
		t.Fatalf("image count: %d", counts[classify.CategoryImage])
	}
	if counts[classify.CategoryPDF] != 1 || counts[classify.CategoryUnknown] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestSummaryRendersAllSections(t *testing.T) {
	stats := report.New()
	stats.Fold(clean.Outcome{Success: true, Method: clean.MethodExiftool, Category: classify.CategoryImage})
	stats.Fold(clean.Outcome{Success: false, Method: clean.MethodNone, Category: classify.CategoryArchive})
	stats.Elapsed = 90 * time.Second
	stats.BackupDir = "/tmp/backups/20240301"

	out := stats.Summary()
	for _, want := range []string{"Total files", "Cleaned", "Failed", "Skipped", "1m30s", "/tmp/backups/20240301", "Image", "Archive", "exiftool", "none"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestDryRunReport(t *testing.T) {
	counts := report.Categorize([]string{"a.jpg", "b.pdf"})
	out := report.DryRunReport(counts, 2048)
	if !strings.Contains(out, "Found 2 files") {
		t.Fatalf("missing scan line:\n%s", out)
	}
	if !strings.Contains(out, "PDF") || !strings.Contains(out, "Image") {
		t.Fatalf("missing category rows:\n%s", out)
	}
	if !strings.Contains(out, "Dry run: no files were modified.") {
		t.Fatalf("missing dry-run notice:\n%s", out)
	}
}

func TestScanSummarySingular(t *testing.T) {
	if got := report.ScanSummary(1, 512); !strings.Contains(got, "1 file (") {
		t.Fatalf("unexpected: %q", got)
	}
}
