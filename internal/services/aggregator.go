package services

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/yieldloop/namada-compounder/internal/observability/metrics"
	"github.com/yieldloop/namada-compounder/internal/types"
	"github.com/yieldloop/namada-compounder/internal/utils"
)

// AggregateMetrics are the chain figures the optimizer works from.
type AggregateMetrics struct {
	MeanCommission float64
	// TotalBonded is in the token's smallest denomination
	TotalBonded math.Int
	NetAPR      float64
}

// Snapshot is the state of the delegator's stake at one epoch.
type Snapshot struct {
	Epoch         types.Epoch
	InflationRate float64
	Validators    types.ValidatorSet
	// FailedQueries counts validators whose queries failed and were counted
	// as zero contributions. Always zero in strict mode.
	FailedQueries int
	Metrics       AggregateMetrics
}

type validatorSample struct {
	validator  types.Address
	commission float64
	bond       math.Int
	failed     bool
}

// Aggregate collects the delegator's chain snapshot at the current epoch.
func (s *Service) Aggregate(ctx context.Context, delegator types.Address) (*Snapshot, error) {
	epoch, err := s.namada.GetCurrentEpoch(ctx)
	if err != nil {
		return nil, err
	}

	inflationDec, err := s.namada.GetInflationRate(ctx)
	if err != nil {
		return nil, err
	}
	inflation, err := utils.DecToFloat(inflationDec)
	if err != nil {
		return nil, types.NewErrorWithMsg(types.ErrConversion, "inflation rate %s: %v", inflationDec, err)
	}

	validators, err := s.namada.GetDelegatorValidators(ctx, delegator, epoch)
	if err != nil {
		return nil, err
	}
	if validators.Len() == 0 {
		return nil, types.NewErrorWithMsg(types.ErrEmptyInput,
			"delegator %s has no validators at epoch %s", delegator, epoch)
	}

	samples, err := s.queryValidators(ctx, delegator, epoch, validators)
	if err != nil {
		return nil, err
	}

	commissions := make([]float64, 0, len(samples))
	totalBonded := math.ZeroInt()
	failed := 0
	for _, sample := range samples {
		commissions = append(commissions, sample.commission)
		totalBonded = totalBonded.Add(sample.bond)
		if sample.failed {
			failed++
		}
	}

	if failed == len(samples) {
		return nil, types.NewErrorWithMsg(types.ErrEmptyInput,
			"no usable validator samples at epoch %s, all %d validators failed", epoch, failed)
	}

	meanCommission, ok := utils.Mean(commissions)
	if !ok {
		return nil, types.NewErrorWithMsg(types.ErrEmptyInput, "no commission samples at epoch %s", epoch)
	}

	return &Snapshot{
		Epoch:         epoch,
		InflationRate: inflation,
		Validators:    validators,
		FailedQueries: failed,
		Metrics: AggregateMetrics{
			MeanCommission: meanCommission,
			TotalBonded:    totalBonded,
			NetAPR:         inflation * (1 - meanCommission),
		},
	}, nil
}

// queryValidators fans out the per-validator queries. In strict mode the first
// failure cancels the rest; otherwise a failed query counts as a zero sample.
func (s *Service) queryValidators(
	ctx context.Context, delegator types.Address, epoch types.Epoch, validators types.ValidatorSet,
) ([]validatorSample, error) {
	p := pool.NewWithResults[validatorSample]().
		WithMaxGoroutines(s.cfg.Aggregator.MaxInFlight).
		WithContext(ctx)
	if s.cfg.Aggregator.Strict {
		p = p.WithCancelOnError().WithFirstError()
	}

	for _, validator := range validators.Sorted() {
		p.Go(func(ctx context.Context) (validatorSample, error) {
			return s.queryValidator(ctx, delegator, validator, epoch)
		})
	}

	return p.Wait()
}

func (s *Service) queryValidator(
	ctx context.Context, delegator, validator types.Address, epoch types.Epoch,
) (validatorSample, error) {
	sample := validatorSample{validator: validator, bond: math.ZeroInt()}

	commission, err := s.validatorCommission(ctx, validator, epoch)
	if err != nil {
		if s.cfg.Aggregator.Strict {
			return sample, err
		}
		recordQueryFailure(ctx, validator, "commission", err)
		sample.failed = true
	} else {
		sample.commission = commission
	}

	bond, err := s.validatorBond(ctx, delegator, validator, epoch)
	if err != nil {
		if s.cfg.Aggregator.Strict {
			return sample, err
		}
		recordQueryFailure(ctx, validator, "bond", err)
		sample.failed = true
	} else {
		sample.bond = bond
	}

	return sample, nil
}

func (s *Service) validatorCommission(ctx context.Context, validator types.Address, epoch types.Epoch) (float64, error) {
	commissionDec, err := s.namada.GetValidatorCommission(ctx, validator, epoch)
	if err != nil {
		return 0, err
	}
	commission, err := utils.DecToFloat(commissionDec)
	if err != nil || commission < 0 || commission > 1 {
		return 0, types.NewErrorWithMsg(types.ErrConversion,
			"commission %s of validator %s is not a ratio", commissionDec, validator)
	}
	return commission, nil
}

func (s *Service) validatorBond(
	ctx context.Context, delegator, validator types.Address, epoch types.Epoch,
) (math.Int, error) {
	bond, err := s.namada.GetBond(ctx, validator, delegator, epoch)
	if err != nil {
		return math.Int{}, err
	}
	if bond.IsNil() || bond.IsNegative() {
		return math.Int{}, types.NewErrorWithMsg(types.ErrConversion, "invalid bond %s to validator %s", bond, validator)
	}
	return bond, nil
}

func recordQueryFailure(ctx context.Context, validator types.Address, query string, err error) {
	log.Ctx(ctx).Warn().
		Err(err).
		Str("validator", validator.String()).
		Str("query", query).
		Msg("validator query failed, counting it as zero")
	metrics.IncValidatorQueryFailures()
}

func (s *Snapshot) String() string {
	return fmt.Sprintf("epoch=%s validators=%d inflation=%.6f mean_commission=%.6f net_apr=%.6f total_bonded=%s failed=%d",
		s.Epoch, s.Validators.Len(), s.InflationRate, s.Metrics.MeanCommission, s.Metrics.NetAPR,
		s.Metrics.TotalBonded, s.FailedQueries)
}
