package clean

import (
	"context"
	"io"
	"log/slog"
	"os"
	"regexp"

	"metawipe/internal/fileutil"
)

// pdfInfoKeys are the standard Info dictionary entries worth scrubbing.
var pdfInfoKeys = []string{
	"Title", "Author", "Subject", "Keywords",
	"Creator", "Producer", "CreationDate", "ModDate",
}

var (
	pdfInfoPatterns = func() []*regexp.Regexp {
		patterns := make([]*regexp.Regexp, 0, len(pdfInfoKeys)*2)
		for _, key := range pdfInfoKeys {
			patterns = append(patterns,
				regexp.MustCompile(`/`+key+`\s*\(([^)\\]|\\.)*\)\s*`),
				regexp.MustCompile(`/`+key+`\s*<[0-9A-Fa-f\s]*>\s*`))
		}
		return patterns
	}()

	pdfXMPPacket = regexp.MustCompile(`(?s)<\?xpacket begin.*?<\?xpacket end[^>]*>`)
	pdfXMPMeta   = regexp.MustCompile(`(?s)<x:xmpmeta.*?</x:xmpmeta>`)
)

// pdfStrategy removes Info dictionary entries and the XMP packet at the byte
// level. It is a heuristic scrubber, not a full PDF parser, which keeps it
// safe: anything it does not recognize it leaves alone.
type pdfStrategy struct {
	logger *slog.Logger
}

func newPDFStrategy(logger *slog.Logger) *pdfStrategy {
	return &pdfStrategy{logger: logger}
}

func (s *pdfStrategy) Method() Method { return MethodPDF }

func (s *pdfStrategy) Attempt(_ context.Context, path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.Debug("could not read pdf", "path", path, "error", err)
		return false
	}
	if len(data) < 5 || string(data[:5]) != "%PDF-" {
		s.logger.Debug("not a pdf header", "path", path)
		return false
	}

	cleaned := scrubPDF(data)

	err = fileutil.ReplaceAtomic(path, func(w io.Writer) error {
		_, werr := w.Write(cleaned)
		return werr
	})
	if err != nil {
		s.logger.Error("pdf rewrite failed", "path", path, "error", err)
		return false
	}
	return true
}

func scrubPDF(data []byte) []byte {
	for _, re := range pdfInfoPatterns {
		data = re.ReplaceAll(data, nil)
	}
	data = pdfXMPPacket.ReplaceAll(data, nil)
	data = pdfXMPMeta.ReplaceAll(data, nil)
	return data
}
