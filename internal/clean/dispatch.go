package clean

import (
	"context"
	"log/slog"
	"time"

	"metawipe/internal/classify"
	"metawipe/internal/config"
	"metawipe/internal/deps"
)

// Options are the per-run knobs the dispatcher honors.
type Options struct {
	ReencodeVideos bool
	NormalizeTimes bool
}

// Dispatcher holds the strategy table for one run. It is built once from
// the availability snapshot and never re-probes collaborators.
type Dispatcher struct {
	exiftool  Strategy
	video     Strategy
	fallbacks map[classify.Category]Strategy
	normalize bool
	logger    *slog.Logger
}

// NewDispatcher assembles the strategy table. Missing external binaries
// leave their slots nil, permanently disabling those strategies for the run.
func NewDispatcher(avail deps.Availability, cfg *config.Config, opts Options, logger *slog.Logger) *Dispatcher {
	commandTimeout := time.Duration(cfg.Tools.CommandTimeout) * time.Second
	videoTimeout := time.Duration(cfg.Tools.VideoTimeout) * time.Second

	d := &Dispatcher{
		normalize: opts.NormalizeTimes,
		logger:    logger,
	}
	if avail.Exiftool {
		d.exiftool = newExiftoolStrategy(avail.ExiftoolPath, commandTimeout, logger)
	}
	if avail.FFmpeg {
		d.video = newVideoStrategy(avail.FFmpegPath, videoTimeout, opts.ReencodeVideos, logger)
	}

	office := newOfficeStrategy(logger)
	d.fallbacks = map[classify.Category]Strategy{
		classify.CategoryImage: newImageStrategy(cfg.Cleaning.JPEGQuality, logger),
		classify.CategoryPDF:   newPDFStrategy(logger),
		classify.CategoryDocx:  office,
		classify.CategoryXlsx:  office,
		classify.CategoryAudio: newAudioStrategy(logger),
	}
	return d
}

// Dispatch runs the ordered decision procedure for one file:
//
//  1. exiftool first, for every category, when available.
//  2. video files always go through ffmpeg as well; exiftool is not
//     authoritative for container-level video metadata.
//  3. other categories fall back to their library strategy only when
//     exiftool was missing or failed.
//  4. no strategy succeeding is a failure with method none.
//
// Timestamp normalization runs only after a successful clean and never
// flips the outcome.
func (d *Dispatcher) Dispatch(ctx context.Context, path string) Outcome {
	category := classify.Classify(path)
	outcome := Outcome{Category: category, Method: MethodNone}

	if d.exiftool != nil && d.exiftool.Attempt(ctx, path) {
		outcome.Success = true
		outcome.Method = MethodExiftool
	}

	if category == classify.CategoryVideo {
		if d.video != nil && d.video.Attempt(ctx, path) {
			outcome.Success = true
			outcome.Method = MethodFFmpeg
		}
	} else if !outcome.Success {
		if strategy, ok := d.fallbacks[category]; ok && strategy.Attempt(ctx, path) {
			outcome.Success = true
			outcome.Method = strategy.Method()
		}
	}

	if outcome.Success && d.normalize {
		NormalizeTimestamps(path, d.logger)
	}
	return outcome
}
