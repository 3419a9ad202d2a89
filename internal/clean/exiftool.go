package clean

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// exiftoolStrategy shells out to exiftool in erase-everything mode. It is
// the widest-coverage stripper and runs first for every file when the binary
// is present.
type exiftoolStrategy struct {
	binary  string
	timeout time.Duration
	logger  *slog.Logger
}

func newExiftoolStrategy(binary string, timeout time.Duration, logger *slog.Logger) *exiftoolStrategy {
	return &exiftoolStrategy{binary: binary, timeout: timeout, logger: logger}
}

func (s *exiftoolStrategy) Method() Method { return MethodExiftool }

func (s *exiftoolStrategy) Attempt(ctx context.Context, path string) bool {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := commandContext(ctx, s.binary, "-all=", "-overwrite_original", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		s.logger.Debug("exiftool failed",
			"path", path,
			"error", err,
			"output", string(output))
		return false
	}

	// Older exiftool builds leave a sidecar copy even with
	// -overwrite_original; remove it so the tree holds no untracked copies.
	sidecar := path + "_original"
	if _, statErr := os.Stat(sidecar); statErr == nil {
		if rmErr := os.Remove(sidecar); rmErr != nil {
			s.logger.Warn("could not remove exiftool sidecar", "path", sidecar, "error", rmErr)
		}
	}
	return true
}
