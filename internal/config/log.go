package config

import (
	"io"

	"github.com/hashicorp/go-hclog"
)

// Logger builds the root logger at the configured level.
func (c *Config) Logger(name string, out io.Writer) hclog.Logger {
	level := hclog.LevelFromString(c.Log.Level)
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Level:  level,
		Output: out,
	})
}
