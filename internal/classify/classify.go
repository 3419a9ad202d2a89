// Package classify maps file paths to coarse cleaning categories by extension.
package classify

import (
	"path/filepath"
	"sort"
	"strings"
)

// Category is the coarse file-type bucket a path falls into. It decides which
// cleaning strategies the dispatcher will consider for the file.
type Category string

const (
	CategoryImage   Category = "image"
	CategoryVideo   Category = "video"
	CategoryPDF     Category = "pdf"
	CategoryDocx    Category = "docx"
	CategoryXlsx    Category = "xlsx"
	CategoryPptx    Category = "pptx"
	CategoryAudio   Category = "audio"
	CategoryArchive Category = "archive"
	CategoryUnknown Category = "unknown"
)

// extensions maps each category to its lowercase extension set.
var extensions = map[Category][]string{
	CategoryImage:   {".jpg", ".jpeg", ".png", ".webp", ".tif", ".tiff", ".bmp", ".gif", ".heic", ".heif", ".raw", ".cr2", ".nef", ".dng"},
	CategoryVideo:   {".mp4", ".mov", ".mkv", ".avi", ".webm", ".flv", ".wmv", ".m4v", ".mpg", ".mpeg"},
	CategoryPDF:     {".pdf"},
	CategoryDocx:    {".docx", ".doc"},
	CategoryXlsx:    {".xlsx", ".xls"},
	CategoryPptx:    {".pptx", ".ppt"},
	CategoryAudio:   {".mp3", ".m4a", ".flac", ".wav", ".ogg", ".wma", ".aac", ".opus"},
	CategoryArchive: {".zip", ".rar", ".7z", ".tar", ".gz", ".bz2"},
}

var byExtension = func() map[string]Category {
	m := make(map[string]Category)
	for category, exts := range extensions {
		for _, ext := range exts {
			m[ext] = category
		}
	}
	return m
}()

// Classify returns the category for path based on its extension,
// case-insensitively. Paths with unmapped or missing extensions yield
// CategoryUnknown. Classify never touches the filesystem.
func Classify(path string) Category {
	ext := strings.ToLower(filepath.Ext(path))
	if category, ok := byExtension[ext]; ok {
		return category
	}
	return CategoryUnknown
}

// All returns every category in stable order, CategoryUnknown last.
// Report rendering uses this to keep histogram rows deterministic.
func All() []Category {
	out := make([]Category, 0, len(extensions)+1)
	for category := range extensions {
		out = append(out, category)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return append(out, CategoryUnknown)
}
