package main

import (
	"metawipe/internal/config"
)

// commandContext loads configuration lazily and shares it across commands.
type commandContext struct {
	configFlag *string

	cfg    *config.Config
	path   string
	exists bool
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, path, exists, err := config.Load(*c.configFlag)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	c.path = path
	c.exists = exists
	return cfg, nil
}
