package clean

import (
	"context"
	"os/exec"

	"metawipe/internal/classify"
)

// Method identifies which strategy produced an outcome. Reports key their
// per-method histogram on these values.
type Method string

const (
	MethodNone     Method = "none"
	MethodExiftool Method = "exiftool"
	MethodImage    Method = "image-rewrite"
	MethodFFmpeg   Method = "ffmpeg"
	MethodPDF      Method = "pdf-rewrite"
	MethodOffice   Method = "office-rewrite"
	MethodAudio    Method = "audio-tags"
)

// Outcome is the per-file result of a dispatch. Method is MethodNone exactly
// when no strategy succeeded.
type Outcome struct {
	Success  bool
	Method   Method
	Category classify.Category
}

// Strategy is one self-contained way of stripping metadata from a file.
// Attempt mutates the file in place and reports success; it never returns an
// error, and it must leave the original intact on every failure path.
type Strategy interface {
	Method() Method
	Attempt(ctx context.Context, path string) bool
}

// commandContext is swapped out by tests to stub external binaries.
var commandContext = exec.CommandContext
