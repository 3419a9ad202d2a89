package clean

import (
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"metawipe/internal/fileutil"
)

// imageStrategy re-encodes the raw pixel data into a fresh file carrying no
// ancillary segments. Formats the standard decoders cannot round-trip
// (webp, heic, camera raw) are left to exiftool; this strategy reports
// failure for them.
type imageStrategy struct {
	jpegQuality int
	logger      *slog.Logger
}

func newImageStrategy(jpegQuality int, logger *slog.Logger) *imageStrategy {
	return &imageStrategy{jpegQuality: jpegQuality, logger: logger}
}

func (s *imageStrategy) Method() Method { return MethodImage }

func (s *imageStrategy) Attempt(_ context.Context, path string) bool {
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".jpg" || ext == ".jpeg" {
		has, err := jpegHasEXIF(path)
		if err != nil {
			s.logger.Debug("could not probe jpeg", "path", path, "error", err)
			return false
		}
		if !has {
			// Already clean; re-running is a no-op success.
			s.logger.Debug("jpeg carries no exif, skipping rewrite", "path", path)
			return true
		}
	}

	if ext == ".gif" {
		return s.rewriteGIF(path)
	}

	img, err := decodeImage(path, ext)
	if err != nil {
		s.logger.Debug("image decode failed", "path", path, "error", err)
		return false
	}

	err = fileutil.ReplaceAtomic(path, func(w io.Writer) error {
		return s.encodeImage(w, img, ext)
	})
	if err != nil {
		s.logger.Error("image rewrite failed", "path", path, "error", err)
		return false
	}
	return true
}

// rewriteGIF round-trips all frames so animations survive the rewrite.
func (s *imageStrategy) rewriteGIF(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		s.logger.Debug("could not open gif", "path", path, "error", err)
		return false
	}
	anim, err := gif.DecodeAll(f)
	f.Close()
	if err != nil {
		s.logger.Debug("gif decode failed", "path", path, "error", err)
		return false
	}

	err = fileutil.ReplaceAtomic(path, func(w io.Writer) error {
		return gif.EncodeAll(w, anim)
	})
	if err != nil {
		s.logger.Error("gif rewrite failed", "path", path, "error", err)
		return false
	}
	return true
}

func decodeImage(path, ext string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch ext {
	case ".jpg", ".jpeg":
		return jpeg.Decode(f)
	case ".png":
		return png.Decode(f)
	case ".tif", ".tiff":
		return tiff.Decode(f)
	case ".bmp":
		return bmp.Decode(f)
	default:
		return nil, fmt.Errorf("no decoder for %s", ext)
	}
}

func (s *imageStrategy) encodeImage(w io.Writer, img image.Image, ext string) error {
	switch ext {
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: s.jpegQuality})
	case ".png":
		return png.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case ".bmp":
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("no encoder for %s", ext)
	}
}

// jpegHasEXIF reports whether the file contains a decodable EXIF segment.
func jpegHasEXIF(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	if _, err := exif.Decode(f); err != nil {
		return false, nil
	}
	return true, nil
}
