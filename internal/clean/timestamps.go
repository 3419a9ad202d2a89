package clean

import (
	"log/slog"
	"os"
	"time"
)

var epoch = time.Unix(0, 0)

// NormalizeTimestamps resets the file's access and modification times to the
// epoch. Best-effort: failures are logged and never affect the cleaning
// outcome.
func NormalizeTimestamps(path string, logger *slog.Logger) {
	if err := os.Chtimes(path, epoch, epoch); err != nil {
		logger.Warn("could not normalize timestamps", "path", path, "error", err)
	}
}
