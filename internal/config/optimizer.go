package config

import "errors"

const defaultMaxIterations = 1000

type OptimizerConfig struct {
	MaxIterations int `mapstructure:"max-iterations"`
}

func (cfg *OptimizerConfig) Validate() error {
	if cfg.MaxIterations < 0 {
		return errors.New("max-iterations must not be negative")
	}
	if cfg.MaxIterations == 0 {
		cfg.MaxIterations = defaultMaxIterations
	}

	return nil
}
