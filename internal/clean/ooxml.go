package clean

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"

	"metawipe/internal/fileutil"
)

const blankCoreXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
  xmlns:dc="http://purl.org/dc/elements/1.1/"
  xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
</cp:coreProperties>`

const blankAppXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">
</Properties>`

const blankCustomXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/custom-properties">
</Properties>`

// officeStrategy rebuilds the OPC zip container with empty document
// properties. Legacy OLE containers (.doc, .xls) are not zips; the rebuild
// fails to open them and the strategy reports failure.
type officeStrategy struct {
	logger *slog.Logger
}

func newOfficeStrategy(logger *slog.Logger) *officeStrategy {
	return &officeStrategy{logger: logger}
}

func (s *officeStrategy) Method() Method { return MethodOffice }

func (s *officeStrategy) Attempt(_ context.Context, path string) bool {
	reader, err := zip.OpenReader(path)
	if err != nil {
		s.logger.Debug("not an opc container", "path", path, "error", err)
		return false
	}
	defer reader.Close()

	err = fileutil.ReplaceAtomic(path, func(w io.Writer) error {
		return rebuildOPC(w, &reader.Reader)
	})
	if err != nil {
		s.logger.Error("office rewrite failed", "path", path, "error", err)
		return false
	}
	return true
}

func rebuildOPC(w io.Writer, reader *zip.Reader) error {
	out := zip.NewWriter(w)
	for _, file := range reader.File {
		content, err := readZipEntry(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file.Name, err)
		}

		switch file.Name {
		case "docProps/core.xml":
			content = []byte(blankCoreXML)
		case "docProps/app.xml":
			content = []byte(blankAppXML)
		case "docProps/custom.xml":
			// Emptied rather than dropped so [Content_Types].xml stays valid.
			content = []byte(blankCustomXML)
		}

		entry, err := out.Create(file.Name)
		if err != nil {
			return fmt.Errorf("create %s: %w", file.Name, err)
		}
		if _, err := entry.Write(content); err != nil {
			return fmt.Errorf("write %s: %w", file.Name, err)
		}
	}
	return out.Close()
}

func readZipEntry(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
