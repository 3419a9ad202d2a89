package config

import (
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateCleaning(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTools() error {
	if c.Tools.CommandTimeout > c.Tools.VideoTimeout {
		return fmt.Errorf("tools.command_timeout (%d) must not exceed tools.video_timeout (%d)", c.Tools.CommandTimeout, c.Tools.VideoTimeout)
	}
	return nil
}

func (c *Config) validateCleaning() error {
	if c.Cleaning.JPEGQuality < 1 || c.Cleaning.JPEGQuality > 100 {
		return fmt.Errorf("cleaning.jpeg_quality must be between 1 and 100, got %d", c.Cleaning.JPEGQuality)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
