package config

import (
	"errors"
	"net/url"
	"time"
)

const (
	defaultNamadaTimeout = 20 * time.Second
	defaultCommitTimeout = time.Minute
)

type NamadaConfig struct {
	// RPCAddr is the CometBFT RPC endpoint of a Namada node, e.g. http://localhost:26657
	RPCAddr       string        `mapstructure:"rpc-addr"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
	// CommitTimeout bounds the wait for a broadcast tx to land in a block
	CommitTimeout time.Duration `mapstructure:"commit-timeout"`
}

func (cfg *NamadaConfig) Validate() error {
	if cfg.RPCAddr == "" {
		return errors.New("rpc-addr is required")
	}
	if _, err := url.ParseRequestURI(cfg.RPCAddr); err != nil {
		return errors.New("rpc-addr must be a valid URL")
	}

	if cfg.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}

	if cfg.MaxRetryTimes == 0 {
		return errors.New("max-retry-times must be positive")
	}

	if cfg.RetryInterval <= 0 {
		return errors.New("retry-interval must be positive")
	}

	if cfg.CommitTimeout <= 0 {
		cfg.CommitTimeout = defaultCommitTimeout
	}

	return nil
}
