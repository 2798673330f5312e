package services

import (
	"context"
	"fmt"
	"time"

	"cosmossdk.io/math"
	"github.com/rs/zerolog/log"

	"github.com/yieldloop/namada-compounder/internal/compounding"
	"github.com/yieldloop/namada-compounder/internal/observability/metrics"
	"github.com/yieldloop/namada-compounder/internal/observability/tracing"
	"github.com/yieldloop/namada-compounder/internal/utils"
)

// plan aggregates the delegator's stake and computes the compounding
// frequency that maximizes it.
func (s *Service) plan(ctx context.Context) (*Snapshot, *compounding.Report, error) {
	snapshot, err := s.Aggregate(ctx, s.delegator)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to aggregate chain snapshot: %w", err)
	}
	log.Ctx(ctx).Debug().Stringer("snapshot", snapshot).Msg("Chain snapshot aggregated")

	decimals := s.cfg.Compounder.TokenDecimals
	principal, err := utils.ToTokens(snapshot.Metrics.TotalBonded, decimals)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to convert bonded balance %s: %w", snapshot.Metrics.TotalBonded, err)
	}

	// one base fee per validator the cycle acts on
	fee := math.NewIntFromUint64(s.cfg.Compounder.BaseFee).MulRaw(int64(snapshot.Validators.Len()))
	feePerCycle, err := utils.ToTokens(fee, decimals)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to convert fee %s: %w", fee, err)
	}

	result, err := s.optimizer.Optimize(principal, snapshot.Metrics.NetAPR, feePerCycle)
	if err != nil {
		return nil, nil, err
	}

	report := compounding.NewReport(principal, snapshot.Metrics.NetAPR, feePerCycle, result)
	metrics.RecordBondedBalance(principal)
	metrics.RecordOptimization(result.OptimalFrequency, report.APY())

	return snapshot, report, nil
}

// runCycle is one pass of the compounding loop: plan, ask the scheduler, and
// reclaim when due.
func (s *Service) runCycle(ctx context.Context) error {
	ctx = tracing.InjectTraceID(ctx, "cycleId")
	log := log.Ctx(ctx)

	snapshot, report, err := s.plan(ctx)
	if err != nil {
		return err
	}

	decision := s.scheduler.Evaluate(report.Result.Interval())
	if !decision.ShouldReclaim() {
		metrics.RecordNextReclaim(decision.Remaining)
		log.Info().
			Str("state", decision.State.String()).
			Msgf("Next reclaim in %s", decision.Remaining.Round(time.Second))
		return nil
	}
	metrics.RecordNextReclaim(0)

	log.Info().
		Str("state", decision.State.String()).
		EmbedObject(report).
		Msg("Reclaiming rewards")

	reward, err := s.ReclaimAndRebond(ctx, s.delegator, snapshot.Validators, s.signer)
	metrics.RecordReclaim(err != nil)
	if err != nil {
		return fmt.Errorf("reclaim failed: %w", err)
	}
	s.scheduler.MarkReclaimed()

	rewardTokens, err := utils.ToTokens(reward, s.cfg.Compounder.TokenDecimals)
	if err != nil {
		log.Warn().Err(err).Str("reward", reward.String()).Msg("Failed to record realized reward")
	} else {
		metrics.RecordRealizedReward(rewardTokens)
	}

	log.Info().
		Str("reward", reward.String()).
		Msgf("Reclaim done, next reclaim in %s", report.Result.Interval().Round(time.Second))
	return nil
}
