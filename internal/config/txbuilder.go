package config

import (
	"errors"
	"net/url"
	"time"
)

const defaultTxBuilderTimeout = 30 * time.Second

// TxBuilderConfig points at the sidecar that builds and seals Namada
// transactions for the locally signed sign-bytes.
type TxBuilderConfig struct {
	URL           string        `mapstructure:"url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func (cfg *TxBuilderConfig) Validate() error {
	if cfg.URL == "" {
		return errors.New("url must be set")
	}
	if _, err := url.ParseRequestURI(cfg.URL); err != nil {
		return errors.New("url must be a valid URL")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTxBuilderTimeout
	}

	if cfg.MaxRetryTimes == 0 {
		cfg.MaxRetryTimes = defaultMaxRetryTimes
	}

	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = defaultRetryInterval
	}

	return nil
}
