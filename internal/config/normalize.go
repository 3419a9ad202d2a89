package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScan()
	c.normalizeTools()
	c.normalizeCleaning()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.BackupDir) == "" {
		c.Paths.BackupDir = defaultBackupDir
	}
	if c.Paths.BackupDir, err = expandPath(c.Paths.BackupDir); err != nil {
		return fmt.Errorf("paths.backup_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryDB) == "" {
		c.Paths.HistoryDB = defaultHistoryDB
	}
	if c.Paths.HistoryDB, err = expandPath(c.Paths.HistoryDB); err != nil {
		return fmt.Errorf("paths.history_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeScan() {
	if len(c.Scan.ExcludeDirs) == 0 {
		c.Scan.ExcludeDirs = defaultExcludeDirs()
		return
	}
	cleaned := make([]string, 0, len(c.Scan.ExcludeDirs))
	for _, name := range c.Scan.ExcludeDirs {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	c.Scan.ExcludeDirs = cleaned
}

func (c *Config) normalizeTools() {
	if strings.TrimSpace(c.Tools.ExiftoolBinary) == "" {
		c.Tools.ExiftoolBinary = defaultExiftoolBinary
	}
	if strings.TrimSpace(c.Tools.FFmpegBinary) == "" {
		c.Tools.FFmpegBinary = defaultFFmpegBinary
	}
	if c.Tools.CommandTimeout <= 0 {
		c.Tools.CommandTimeout = defaultCommandTimeout
	}
	if c.Tools.VideoTimeout <= 0 {
		c.Tools.VideoTimeout = defaultVideoTimeout
	}
}

func (c *Config) normalizeCleaning() {
	if c.Cleaning.JPEGQuality <= 0 {
		c.Cleaning.JPEGQuality = defaultJPEGQuality
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
