package config

import "errors"

const (
	defaultMetricsHost = "0.0.0.0"
	defaultMetricsPort = 2112
)

type MetricsConfig struct {
	Host string `mapstructure:"host"`
	// Port 0 disables the metrics server
	Port int `mapstructure:"port"`
}

func (cfg *MetricsConfig) Validate() error {
	if cfg.Port < 0 || cfg.Port > 65535 {
		return errors.New("metrics port must be between 0 and 65535")
	}

	return nil
}

func (cfg *MetricsConfig) GetMetricsPort() int {
	return cfg.Port
}

func (cfg *MetricsConfig) Enabled() bool {
	return cfg.Port != 0
}
