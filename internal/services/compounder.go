package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/yieldloop/namada-compounder/internal/observability/metrics"
	"github.com/yieldloop/namada-compounder/internal/utils/poller"
)

// Run drives the compounder in the configured mode. A dry run and a one-shot
// run return after one pass; otherwise Run polls until ctx is cancelled and
// returns nil. Cancellation takes effect between cycles only.
func (s *Service) Run(ctx context.Context) error {
	cfg := s.cfg.Compounder

	log.Ctx(ctx).Info().
		Str("delegator", s.delegator.String()).
		Bool("dry_run", cfg.DryRun).
		Bool("one_shot", cfg.OneShot).
		Dur("sleep_for", cfg.SleepFor).
		Msg("Starting compounder")

	if cfg.DryRun {
		return s.DryRun(ctx)
	}

	// nothing is persisted, a restart reclaims on its first cycle
	log.Ctx(ctx).Info().Msg("Reclaim schedule starts fresh, the first cycle reclaims immediately")

	cycle := metrics.RecordPollerDuration("compounding_cycle", s.runCycle)
	if cfg.OneShot {
		return cycle(context.WithoutCancel(ctx))
	}

	p := poller.NewPollerWithClock(cfg.SleepFor, s.clock, cycle)
	p.Start(ctx)
	return nil
}

// DryRun reports the optimal compounding schedule without submitting anything.
func (s *Service) DryRun(ctx context.Context) error {
	_, report, err := s.plan(ctx)
	if err != nil {
		return err
	}

	log.Ctx(ctx).Info().
		EmbedObject(report).
		Msgf("Dry run: compound every %.0f hours (%.0f days)",
			report.Result.HoursBetweenCompoundingRounded(), report.Result.DaysBetweenCompoundingRounded())
	return nil
}
