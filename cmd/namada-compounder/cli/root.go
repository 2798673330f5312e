package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const (
	defaultConfigFileName = "config.yml"
)

var cfgPath string

func NewRootCmd() (*cobra.Command, error) {
	homePath, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	defaultConfigPath := getDefaultConfigFile(homePath, defaultConfigFileName)

	rootCmd := &cobra.Command{
		Use:          "namada-compounder",
		Short:        "Auto-compounds Namada staking rewards at the fee-optimal frequency",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(StartCmd())
	rootCmd.AddCommand(EstimateCmd())
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath, fmt.Sprintf("config file (default %s)", defaultConfigPath))

	return rootCmd, nil
}

func Setup() error {
	rootCmd, err := NewRootCmd()
	if err != nil {
		return err
	}

	return rootCmd.Execute()
}

func getDefaultConfigFile(homePath, filename string) string {
	return filepath.Join(homePath, filename)
}

func GetConfigPath() string {
	return cfgPath
}
