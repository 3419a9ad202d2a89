package clean_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"metawipe/internal/clean"
	"metawipe/internal/deps"
)

const samplePDF = `%PDF-1.7
1 0 obj
<< /Type /Catalog /Pages 2 0 R >>
endobj
3 0 obj
<< /Title (Quarterly Report) /Author (J. Doe) /Producer (WordProcessor 9000) /CreationDate (D:20240101120000) >>
endobj
4 0 obj
<< /Type /Metadata /Subtype /XML /Length 120 >>
stream
<?xpacket begin="" id="W5M0MpCehiHzreSzNTczkc9d"?><x:xmpmeta xmlns:x="adobe:ns:meta/"><dc:creator>J. Doe</dc:creator></x:xmpmeta><?xpacket end="w"?>
endstream
endobj
%%EOF
`

func TestPDFRewriteStripsInfoAndXMP(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "report.pdf")
	if err := os.WriteFile(target, []byte(samplePDF), 0o644); err != nil {
		t.Fatal(err)
	}

	d := testDispatcher(t, deps.Availability{}, clean.Options{})
	outcome := d.Dispatch(context.Background(), target)
	if !outcome.Success || outcome.Method != clean.MethodPDF {
		t.Fatalf("expected pdf-rewrite success, got %+v", outcome)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, leaked := range []string{"Quarterly Report", "J. Doe", "WordProcessor 9000", "20240101120000", "xmpmeta", "xpacket"} {
		if strings.Contains(out, leaked) {
			t.Fatalf("metadata survived rewrite: %q", leaked)
		}
	}
	if !strings.HasPrefix(out, "%PDF-1.7") {
		t.Fatal("pdf header damaged")
	}
	if !strings.Contains(out, "/Type /Catalog") {
		t.Fatal("document structure damaged")
	}
}

func TestPDFRewriteIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "report.pdf")
	if err := os.WriteFile(target, []byte(samplePDF), 0o644); err != nil {
		t.Fatal(err)
	}

	d := testDispatcher(t, deps.Availability{}, clean.Options{})
	if outcome := d.Dispatch(context.Background(), target); !outcome.Success {
		t.Fatal("first pass failed")
	}
	first, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}

	if outcome := d.Dispatch(context.Background(), target); !outcome.Success {
		t.Fatal("second pass on already-clean file must still succeed")
	}
	second, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Fatal("second pass changed an already-clean file")
	}
}

func TestPDFRewriteRejectsNonPDF(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "fake.pdf")
	if err := os.WriteFile(target, []byte("just text"), 0o644); err != nil {
		t.Fatal(err)
	}

	d := testDispatcher(t, deps.Availability{}, clean.Options{})
	if outcome := d.Dispatch(context.Background(), target); outcome.Success {
		t.Fatal("file without pdf header must fail")
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "just text" {
		t.Fatalf("original mutated: %q", data)
	}
}
