package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"golang.org/x/sys/unix"

	"metawipe/internal/backup"
	"metawipe/internal/classify"
	"metawipe/internal/clean"
	"metawipe/internal/config"
	"metawipe/internal/deps"
	"metawipe/internal/history"
	"metawipe/internal/report"
	"metawipe/internal/scan"
)

// Sentinel errors the CLI maps onto exit codes.
var (
	// ErrFilesFailed means at least one file could not be cleaned.
	ErrFilesFailed = errors.New("some files failed to clean")
	// ErrInterrupted means a signal stopped the run before it could summarize.
	ErrInterrupted = errors.New("run interrupted")
	// ErrLocked means another run already holds the lock.
	ErrLocked = errors.New("another metawipe run is already in progress")
)

// Options are the per-run knobs read once at startup and never mutated.
type Options struct {
	Root           string
	DryRun         bool
	Backup         bool
	ReencodeVideos bool
	NormalizeTimes bool
	Verbose        bool
	SkipConfirm    bool
}

// Runner executes one cleaning batch.
type Runner struct {
	cfg    *config.Config
	opts   Options
	logger *slog.Logger
	out    io.Writer
	in     io.Reader
	store  *history.Store
	color  bool
}

// New builds a Runner. store may be nil, in which case the run is not
// recorded in history.
func New(cfg *config.Config, opts Options, logger *slog.Logger, out io.Writer, in io.Reader, store *history.Store) *Runner {
	r := &Runner{cfg: cfg, opts: opts, logger: logger, out: out, in: in, store: store}
	if f, ok := out.(*os.File); ok {
		r.color = isatty.IsTerminal(f.Fd())
	}
	return r
}

// Run drives the batch to completion and returns the final statistics.
// A nil error means every processed file succeeded (or the run was a dry
// run, found nothing, or was cancelled at the prompt). ErrInterrupted is
// returned only when an interrupt lands before the summary is rendered;
// an interrupt mid-batch skips the remaining files, still summarizes, and
// the outcome is decided by the failure count like any other run.
func (r *Runner) Run(ctx context.Context) (*report.Stats, error) {
	stats := report.New()
	started := time.Now()
	runID := uuid.NewString()

	root, err := r.resolveRoot()
	if err != nil {
		return stats, err
	}
	if err := r.cfg.EnsureDirectories(); err != nil {
		return stats, err
	}

	avail := deps.Probe(r.cfg.Tools.ExiftoolBinary, r.cfg.Tools.FFmpegBinary)
	if r.opts.Verbose {
		fmt.Fprintln(r.out, renderDependencyTable(avail))
	}

	files, err := scan.Walk(root, r.cfg.Scan.ExcludeDirs, r.logger)
	if err != nil {
		return stats, fmt.Errorf("scan %s: %w", root, err)
	}
	if ctx.Err() != nil {
		return stats, ErrInterrupted
	}
	if len(files) == 0 {
		fmt.Fprintln(r.out, "No files found.")
		return stats, nil
	}
	totalBytes := sumSizes(files)

	if r.opts.DryRun {
		fmt.Fprint(r.out, report.DryRunReport(report.Categorize(files), totalBytes))
		return stats, nil
	}

	fmt.Fprintln(r.out, report.ScanSummary(len(files), totalBytes))

	lock := flock.New(filepath.Join(r.cfg.Paths.LogDir, "metawipe.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return stats, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return stats, ErrLocked
	}
	defer func() { _ = lock.Unlock() }()

	if !r.opts.SkipConfirm {
		if !r.confirm(len(files)) {
			fmt.Fprintln(r.out, "Cancelled.")
			return stats, nil
		}
		if ctx.Err() != nil {
			return stats, ErrInterrupted
		}
	}

	var backups *backup.Manager
	if r.opts.Backup {
		backups, err = backup.NewManager(r.cfg.Paths.BackupDir, root, runID, started, r.logger)
		if err != nil {
			return stats, fmt.Errorf("prepare backups: %w", err)
		}
		stats.BackupDir = backups.Dir()
	}

	dispatcher := clean.NewDispatcher(avail, r.cfg, clean.Options{
		ReencodeVideos: r.opts.ReencodeVideos,
		NormalizeTimes: r.opts.NormalizeTimes,
	}, r.logger)

	r.logger.Info("processing started",
		"run_id", runID,
		"root", root,
		"files", len(files),
		"backup", r.opts.Backup)

	interrupted := false
	for i, path := range files {
		if ctx.Err() != nil {
			stats.MarkSkipped(len(files) - i)
			interrupted = true
			break
		}

		if backups != nil {
			backups.Backup(path)
		}

		outcome := dispatcher.Dispatch(ctx, path)
		if ctx.Err() != nil && !outcome.Success {
			// The in-flight file was cut short by the interrupt; its
			// outcome is not recorded.
			stats.MarkSkipped(len(files) - i)
			interrupted = true
			break
		}

		stats.Fold(outcome)
		r.progress(i+1, len(files), root, path, outcome)
	}

	if interrupted {
		fmt.Fprintln(r.out, "Interrupted; remaining files were skipped.")
	}

	stats.Elapsed = time.Since(started)
	fmt.Fprint(r.out, stats.Summary())

	r.record(runID, root, started, stats, interrupted)

	if stats.Failed > 0 {
		return stats, ErrFilesFailed
	}
	return stats, nil
}

// resolveRoot is the one fatal preflight: a root that cannot be resolved or
// read aborts before any file is touched.
func (r *Runner) resolveRoot() (string, error) {
	root := r.opts.Root
	if root == "" {
		root = "."
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root path: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("resolve root path: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("root path %s is not a directory", root)
	}
	if err := unix.Access(root, unix.R_OK); err != nil {
		return "", fmt.Errorf("root path %s is not readable: %w", root, err)
	}
	return root, nil
}

func (r *Runner) confirm(count int) bool {
	fmt.Fprintln(r.out, "")
	if r.opts.Backup {
		fmt.Fprintf(r.out, "About to clean %d files. Backups will be written under %s.\n", count, r.cfg.Paths.BackupDir)
	} else {
		fmt.Fprintf(r.out, "About to clean %d files WITHOUT backups; files are modified in place.\n", count)
	}
	fmt.Fprint(r.out, "Proceed? [yes/no]: ")

	scanner := bufio.NewScanner(r.in)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "yes" || answer == "y"
}

func (r *Runner) progress(done, total int, root, path string, outcome clean.Outcome) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}

	mark := "ok"
	if outcome.Success {
		if r.color {
			mark = text.FgGreen.Sprint("ok")
		}
	} else {
		mark = "FAIL"
		if r.color {
			mark = text.FgRed.Sprint("FAIL")
		}
	}
	fmt.Fprintf(r.out, "[%d/%d] %s %s (%s)\n", done, total, mark, rel, outcome.Method)
}

func (r *Runner) record(runID, root string, started time.Time, stats *report.Stats, interrupted bool) {
	if r.store == nil {
		return
	}
	run := history.Run{
		ID:          runID,
		Root:        root,
		StartedAt:   started.UTC(),
		Elapsed:     stats.Elapsed,
		Total:       stats.Total,
		Cleaned:     stats.Cleaned,
		Failed:      stats.Failed,
		Skipped:     stats.Skipped,
		ByCategory:  categoryHistogram(stats.ByCategory),
		ByMethod:    methodHistogram(stats.ByMethod),
		BackupDir:   stats.BackupDir,
		Interrupted: interrupted,
	}
	if err := r.store.Record(context.Background(), run); err != nil {
		r.logger.Warn("could not record run in history", "error", err)
	}
}

func renderDependencyTable(avail deps.Availability) string {
	rows := make([][]string, 0, 6)
	for _, status := range avail.Statuses() {
		state := "available"
		if !status.Available {
			state = "missing"
			if status.Detail != "" {
				state = status.Detail
			}
		}
		rows = append(rows, []string{status.Name, status.Command, state})
	}
	return report.RenderTable(
		[]string{"Dependency", "Command", "Status"},
		rows,
		[]report.ColumnAlignment{report.AlignLeft, report.AlignLeft, report.AlignLeft})
}

func sumSizes(files []string) int64 {
	var total int64
	for _, path := range files {
		if info, err := os.Stat(path); err == nil {
			total += info.Size()
		}
	}
	return total
}

func categoryHistogram(counts map[classify.Category]int) map[string]int {
	out := make(map[string]int, len(counts))
	for category, n := range counts {
		out[string(category)] = n
	}
	return out
}

func methodHistogram(counts map[clean.Method]int) map[string]int {
	out := make(map[string]int, len(counts))
	for method, n := range counts {
		out[string(method)] = n
	}
	return out
}
