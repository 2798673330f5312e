package config

import (
	"errors"
	"time"
)

const (
	defaultSleepFor = 5 * time.Second
	// defaultBaseFee is 0.05 NAM in its smallest denomination
	defaultBaseFee       = 50_000
	defaultTokenDecimals = 6
	maxTokenDecimals     = 18
)

type CompounderConfig struct {
	SecretKey string `mapstructure:"secret-key"`
	// DelegatorAddress overrides the implicit address derived from SecretKey
	DelegatorAddress string `mapstructure:"delegator-address"`
	// BaseFee is the fee of a single transaction in the token's smallest denomination
	BaseFee       uint64        `mapstructure:"base-fee"`
	TokenDecimals uint32        `mapstructure:"token-decimals"`
	DryRun        bool          `mapstructure:"dry-run"`
	OneShot       bool          `mapstructure:"one-shot"`
	SleepFor      time.Duration `mapstructure:"sleep-for"`
}

func (cfg *CompounderConfig) Validate() error {
	if cfg.SecretKey == "" {
		return errors.New("secret-key is required")
	}

	if cfg.TokenDecimals > maxTokenDecimals {
		return errors.New("token-decimals must not exceed 18")
	}

	if cfg.SleepFor <= 0 {
		cfg.SleepFor = defaultSleepFor
	}

	return nil
}
