package config

import "errors"

const defaultMaxInFlight = 20

type AggregatorConfig struct {
	// MaxInFlight bounds concurrent per-validator queries
	MaxInFlight int `mapstructure:"max-in-flight"`
	// Strict fails the whole aggregation on the first per-validator error
	// instead of counting the validator as a zero contribution.
	Strict bool `mapstructure:"strict"`
}

func (cfg *AggregatorConfig) Validate() error {
	if cfg.MaxInFlight < 0 {
		return errors.New("max-in-flight must not be negative")
	}
	if cfg.MaxInFlight == 0 {
		cfg.MaxInFlight = defaultMaxInFlight
	}

	return nil
}
