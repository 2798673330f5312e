package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

const (
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
)

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
}

func (cfg *LogConfig) Validate() error {
	if cfg.Level == "" {
		cfg.Level = defaultLogLevel
	}
	if _, err := zerolog.ParseLevel(cfg.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	switch cfg.Format {
	case "":
		cfg.Format = defaultLogFormat
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format %q, should be one of {console, json}", cfg.Format)
	}

	return nil
}
