package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"metawipe/internal/history"
	"metawipe/internal/logging"
	"metawipe/internal/runner"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var opts runner.Options

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Strip metadata from every file under a directory",
		Long: `Walk a directory tree and strip embedded metadata (EXIF/XMP/IPTC, PDF
info, document properties, audio tags) from every regular file found.
Each file goes to exiftool first when it is installed, then to a
category-specific fallback. Use --dry-run to see what would be touched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			level := cfg.Logging.Level
			if opts.Verbose {
				level = "debug"
			}
			logOpts := logging.Options{
				Level:   level,
				Format:  cfg.Logging.Format,
				Console: cmd.ErrOrStderr(),
			}
			if !opts.DryRun {
				name := "clean_" + time.Now().Format("20060102_150405") + ".log"
				logOpts.FilePath = filepath.Join(cfg.Paths.LogDir, name)
			}
			logger, closeLogs, err := logging.New(logOpts)
			if err != nil {
				return err
			}
			defer closeLogs()

			var store *history.Store
			if !opts.DryRun {
				store, err = history.Open(cfg.Paths.HistoryDB)
				if err != nil {
					// The ledger is best-effort; the run proceeds without it.
					logger.Warn("history database unavailable", "error", err)
				} else {
					defer store.Close()
				}
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			r := runner.New(cfg, opts, logger, cmd.OutOrStdout(), cmd.InOrStdin(), store)
			_, err = r.Run(runCtx)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Root, "path", "p", ".", "Directory to clean")
	flags.BoolVar(&opts.DryRun, "dry-run", false, "Classify and report without touching any file")
	flags.BoolVar(&opts.Backup, "backup", false, "Copy each file into a timestamped backup tree before cleaning")
	flags.BoolVar(&opts.ReencodeVideos, "reencode-videos", false, "Skip the stream-copy pass and re-encode videos directly")
	flags.BoolVar(&opts.NormalizeTimes, "normalize-time", false, "Reset file timestamps to the epoch after cleaning")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Debug logging and a dependency table before the run")
	flags.BoolVarP(&opts.SkipConfirm, "skip-confirm", "y", false, "Do not ask for confirmation")

	return cmd
}
