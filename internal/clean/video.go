package clean

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"metawipe/internal/fileutil"
)

// videoStrategy drives ffmpeg in two escalating passes: a fast stream-copy
// remux that drops container metadata, then exactly one escalation to a full
// re-encode when the remux fails. Output lands in a sibling temp file and is
// swapped in only on success.
type videoStrategy struct {
	binary       string
	timeout      time.Duration
	reencodeOnly bool
	logger       *slog.Logger
}

func newVideoStrategy(binary string, timeout time.Duration, reencodeOnly bool, logger *slog.Logger) *videoStrategy {
	return &videoStrategy{binary: binary, timeout: timeout, reencodeOnly: reencodeOnly, logger: logger}
}

func (s *videoStrategy) Method() Method { return MethodFFmpeg }

func (s *videoStrategy) Attempt(ctx context.Context, path string) bool {
	passes := []struct {
		name string
		args []string
	}{
		{"copy", []string{"-map", "0", "-c", "copy", "-map_metadata", "-1", "-movflags", "+faststart"}},
		{"reencode", []string{"-map_metadata", "-1", "-c:v", "libx264", "-crf", "23", "-c:a", "aac", "-b:a", "192k", "-movflags", "+faststart"}},
	}
	if s.reencodeOnly {
		passes = passes[1:]
	}

	tmp := cleanTempPath(path)
	defer os.Remove(tmp)

	for _, pass := range passes {
		if !s.runPass(ctx, path, tmp, pass.name, pass.args) {
			os.Remove(tmp)
			continue
		}
		if err := fileutil.ReplaceWithFile(path, tmp); err != nil {
			s.logger.Error("could not swap in cleaned video", "path", path, "error", err)
			return false
		}
		return true
	}
	return false
}

func (s *videoStrategy) runPass(ctx context.Context, path, tmp, name string, args []string) bool {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	full := append([]string{"-y", "-i", path}, args...)
	full = append(full, tmp)
	cmd := commandContext(ctx, s.binary, full...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		s.logger.Debug("ffmpeg pass failed",
			"path", path,
			"pass", name,
			"error", err,
			"output", tail(string(output), 400))
		return false
	}

	info, err := os.Stat(tmp)
	if err != nil || info.Size() == 0 {
		s.logger.Debug("ffmpeg produced no output", "path", path, "pass", name)
		return false
	}
	return true
}

// cleanTempPath places the working copy beside the original with the same
// extension so ffmpeg infers the right container.
func cleanTempPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_clean" + ext
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
