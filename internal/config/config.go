package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Namada     NamadaConfig     `mapstructure:"namada"`
	TxBuilder  TxBuilderConfig  `mapstructure:"tx-builder"`
	Compounder CompounderConfig `mapstructure:"compounder"`
	Aggregator AggregatorConfig `mapstructure:"aggregator"`
	Optimizer  OptimizerConfig  `mapstructure:"optimizer"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Log        LogConfig        `mapstructure:"log"`
}

func (cfg *Config) Validate() error {
	if err := cfg.Namada.Validate(); err != nil {
		return fmt.Errorf("invalid namada config: %w", err)
	}

	// dry runs never submit, so they don't need a tx builder
	if !cfg.Compounder.DryRun {
		if err := cfg.TxBuilder.Validate(); err != nil {
			return fmt.Errorf("invalid tx-builder config: %w", err)
		}
	}

	if err := cfg.Compounder.Validate(); err != nil {
		return fmt.Errorf("invalid compounder config: %w", err)
	}

	if err := cfg.Aggregator.Validate(); err != nil {
		return fmt.Errorf("invalid aggregator config: %w", err)
	}

	if err := cfg.Optimizer.Validate(); err != nil {
		return fmt.Errorf("invalid optimizer config: %w", err)
	}

	if err := cfg.Metrics.Validate(); err != nil {
		return fmt.Errorf("invalid metrics config: %w", err)
	}

	if err := cfg.Log.Validate(); err != nil {
		return fmt.Errorf("invalid log config: %w", err)
	}

	return nil
}

// flagKeys maps command line flags to the config keys they override
var flagKeys = map[string]string{
	"dry-run":  "compounder.dry-run",
	"one-shot": "compounder.one-shot",
}

// New reads the config file at cfgPath. Every key can be overridden from the
// environment by upper-casing it and replacing "." and "-" with "_", e.g.
// COMPOUNDER_SECRET_KEY. Flags present in flags take precedence over both.
func New(cfgPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgPath)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", cfgPath, err)
	}

	if flags != nil {
		for flag, key := range flagKeys {
			if f := flags.Lookup(flag); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys that are
// absent from the file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("namada.rpc-addr", "")
	v.SetDefault("namada.timeout", defaultNamadaTimeout)
	v.SetDefault("namada.max-retry-times", defaultMaxRetryTimes)
	v.SetDefault("namada.retry-interval", defaultRetryInterval)
	v.SetDefault("namada.commit-timeout", defaultCommitTimeout)

	v.SetDefault("tx-builder.url", "")
	v.SetDefault("tx-builder.timeout", defaultTxBuilderTimeout)
	v.SetDefault("tx-builder.max-retry-times", defaultMaxRetryTimes)
	v.SetDefault("tx-builder.retry-interval", defaultRetryInterval)

	v.SetDefault("compounder.secret-key", "")
	v.SetDefault("compounder.delegator-address", "")
	v.SetDefault("compounder.base-fee", defaultBaseFee)
	v.SetDefault("compounder.token-decimals", defaultTokenDecimals)
	v.SetDefault("compounder.dry-run", false)
	v.SetDefault("compounder.one-shot", false)
	v.SetDefault("compounder.sleep-for", defaultSleepFor)

	v.SetDefault("aggregator.max-in-flight", defaultMaxInFlight)
	v.SetDefault("aggregator.strict", false)

	v.SetDefault("optimizer.max-iterations", defaultMaxIterations)

	v.SetDefault("metrics.host", defaultMetricsHost)
	v.SetDefault("metrics.port", defaultMetricsPort)

	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.format", defaultLogFormat)
}

const (
	defaultMaxRetryTimes = 3
	defaultRetryInterval = 500 * time.Millisecond
)
