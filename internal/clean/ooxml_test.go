package clean_test

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"metawipe/internal/clean"
	"metawipe/internal/deps"
)

const taggedCoreXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
  xmlns:dc="http://purl.org/dc/elements/1.1/">
  <dc:creator>Jane Author</dc:creator>
  <dc:title>Budget 2024</dc:title>
  <cp:lastModifiedBy>Jane Author</cp:lastModifiedBy>
</cp:coreProperties>`

const taggedAppXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">
  <Application>OfficeSuite 12</Application>
  <Company>Acme Corp</Company>
</Properties>`

func writeDocx(t *testing.T, path string) {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	entries := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"docProps/core.xml":   taggedCoreXML,
		"docProps/app.xml":    taggedAppXML,
		"word/document.xml":   `<?xml version="1.0"?><document><body>hello</body></document>`,
	}
	for name, body := range entries {
		f, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readZipEntry(t *testing.T, path, name string) string {
	t.Helper()
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("result is not a zip: %v", err)
	}
	defer r.Close()
	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatal(err)
		}
		return string(data)
	}
	t.Fatalf("entry %s missing from container", name)
	return ""
}

func TestOfficeRewriteBlanksDocProps(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "budget.docx")
	writeDocx(t, target)

	d := testDispatcher(t, deps.Availability{}, clean.Options{})
	outcome := d.Dispatch(context.Background(), target)
	if !outcome.Success || outcome.Method != clean.MethodOffice {
		t.Fatalf("expected office-rewrite success, got %+v", outcome)
	}

	core := readZipEntry(t, target, "docProps/core.xml")
	if strings.Contains(core, "Jane Author") || strings.Contains(core, "Budget 2024") {
		t.Fatalf("core properties survived: %q", core)
	}
	app := readZipEntry(t, target, "docProps/app.xml")
	if strings.Contains(app, "Acme Corp") || strings.Contains(app, "OfficeSuite") {
		t.Fatalf("app properties survived: %q", app)
	}
	body := readZipEntry(t, target, "word/document.xml")
	if !strings.Contains(body, "hello") {
		t.Fatalf("document content damaged: %q", body)
	}
}

func TestOfficeRewriteLegacyOLEFails(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "legacy.doc")
	// OLE compound-file magic, not a zip.
	ole := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, bytes.Repeat([]byte{0}, 64)...)
	if err := os.WriteFile(target, ole, 0o644); err != nil {
		t.Fatal(err)
	}

	d := testDispatcher(t, deps.Availability{}, clean.Options{})
	outcome := d.Dispatch(context.Background(), target)
	if outcome.Success {
		t.Fatal("legacy OLE container must fail without exiftool")
	}
	if outcome.Method != clean.MethodNone {
		t.Fatalf("expected method none, got %q", outcome.Method)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, ole) {
		t.Fatal("original mutated on failure")
	}
}

func TestOfficeRewriteXlsxUsesSameStrategy(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "numbers.xlsx")
	writeDocx(t, target)

	d := testDispatcher(t, deps.Availability{}, clean.Options{})
	outcome := d.Dispatch(context.Background(), target)
	if !outcome.Success || outcome.Method != clean.MethodOffice {
		t.Fatalf("expected office-rewrite success for xlsx, got %+v", outcome)
	}
}
