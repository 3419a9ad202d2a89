package config

const (
	defaultLogDir         = "~/.local/share/metawipe/logs"
	defaultBackupDir      = "~/.local/share/metawipe/backups"
	defaultHistoryDB      = "~/.local/share/metawipe/history.db"
	defaultExiftoolBinary = "exiftool"
	defaultFFmpegBinary   = "ffmpeg"
	defaultCommandTimeout = 300
	defaultVideoTimeout   = 600
	defaultJPEGQuality    = 95
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

func defaultExcludeDirs() []string {
	return []string{".git", "__pycache__", "node_modules", ".venv", "venv"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:    defaultLogDir,
			BackupDir: defaultBackupDir,
			HistoryDB: defaultHistoryDB,
		},
		Scan: Scan{
			ExcludeDirs: defaultExcludeDirs(),
		},
		Tools: Tools{
			ExiftoolBinary: defaultExiftoolBinary,
			FFmpegBinary:   defaultFFmpegBinary,
			CommandTimeout: defaultCommandTimeout,
			VideoTimeout:   defaultVideoTimeout,
		},
		Cleaning: Cleaning{
			JPEGQuality: defaultJPEGQuality,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
