package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/yieldloop/namada-compounder/internal/clients/namadaclient"
	"github.com/yieldloop/namada-compounder/internal/clients/txbuilder"
	"github.com/yieldloop/namada-compounder/internal/config"
	"github.com/yieldloop/namada-compounder/internal/keys"
	"github.com/yieldloop/namada-compounder/internal/observability/logging"
	"github.com/yieldloop/namada-compounder/internal/observability/metrics"
	"github.com/yieldloop/namada-compounder/internal/services"
	"github.com/yieldloop/namada-compounder/internal/types"
	"github.com/yieldloop/namada-compounder/pkg"
	"github.com/yieldloop/namada-compounder/pkg/clock"
)

func StartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Starts the compounder",
		Args:  cobra.NoArgs,
		RunE:  start,
	}

	cmd.Flags().Bool("dry-run", false, "report the optimal compounding schedule and exit without submitting transactions")
	cmd.Flags().Bool("one-shot", false, "run a single compounding cycle and exit")

	return cmd
}

func start(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath, cmd.Flags())
	if err != nil {
		return fmt.Errorf("error while loading config file %s: %w", cfgPath, err)
	}

	logging.Setup(cfg.Log)
	log := log.Ctx(ctx)

	key, err := keys.ParseSecretKey(cfg.Compounder.SecretKey)
	if err != nil {
		return fmt.Errorf("invalid compounder secret-key: %w", err)
	}

	delegator, err := delegatorAddress(&cfg.Compounder, key)
	if err != nil {
		return err
	}

	// dry runs only query, they never build transactions
	var builder txbuilder.Builder
	if !cfg.Compounder.DryRun {
		builder = txbuilder.NewClient(&cfg.TxBuilder)
	}

	namadaClient, err := namadaclient.NewNamadaClient(&cfg.Namada, builder)
	if err != nil {
		return err
	}
	namada := namadaclient.NewNamadaClientWithMetrics(namadaClient)

	if cfg.Metrics.Enabled() {
		metrics.Init(cfg.Metrics.Host, cfg.Metrics.GetMetricsPort())
	}

	log.Info().
		Str("delegator", delegator.String()).
		Str("public_key", key.PublicKey()).
		Str("rpc", cfg.Namada.RPCAddr).
		Msg("Compounder configured")

	service := services.NewService(cfg, namada, key, delegator, clock.SystemClock{})
	return service.Run(ctx)
}

// delegatorAddress is the configured delegator address or, when unset, the
// implicit address of the signing key.
func delegatorAddress(cfg *config.CompounderConfig, key *keys.SigningKey) (types.Address, error) {
	if cfg.DelegatorAddress == "" {
		return key.ImplicitAddress()
	}

	if err := pkg.ValidateNamadaAddress(cfg.DelegatorAddress); err != nil {
		return "", fmt.Errorf("invalid compounder delegator-address %q: %w", cfg.DelegatorAddress, err)
	}
	return types.Address(cfg.DelegatorAddress), nil
}
