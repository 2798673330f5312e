package namadaclient

import (
	"context"
	"time"

	"cosmossdk.io/math"

	"github.com/yieldloop/namada-compounder/internal/observability/metrics"
	"github.com/yieldloop/namada-compounder/internal/types"
)

type namadaClientWithMetrics struct {
	namada NamadaInterface
}

func NewNamadaClientWithMetrics(namada NamadaInterface) *namadaClientWithMetrics {
	return &namadaClientWithMetrics{namada: namada}
}

func (n *namadaClientWithMetrics) GetCurrentEpoch(ctx context.Context) (types.Epoch, error) {
	return runNamadaClientMethodWithMetrics("GetCurrentEpoch", func() (types.Epoch, error) {
		return n.namada.GetCurrentEpoch(ctx)
	})
}

func (n *namadaClientWithMetrics) GetInflationRate(ctx context.Context) (math.LegacyDec, error) {
	return runNamadaClientMethodWithMetrics("GetInflationRate", func() (math.LegacyDec, error) {
		return n.namada.GetInflationRate(ctx)
	})
}

func (n *namadaClientWithMetrics) GetDelegatorValidators(
	ctx context.Context, delegator types.Address, epoch types.Epoch,
) (types.ValidatorSet, error) {
	return runNamadaClientMethodWithMetrics("GetDelegatorValidators", func() (types.ValidatorSet, error) {
		return n.namada.GetDelegatorValidators(ctx, delegator, epoch)
	})
}

func (n *namadaClientWithMetrics) GetValidatorCommission(
	ctx context.Context, validator types.Address, epoch types.Epoch,
) (math.LegacyDec, error) {
	return runNamadaClientMethodWithMetrics("GetValidatorCommission", func() (math.LegacyDec, error) {
		return n.namada.GetValidatorCommission(ctx, validator, epoch)
	})
}

func (n *namadaClientWithMetrics) GetBond(
	ctx context.Context, validator, delegator types.Address, epoch types.Epoch,
) (math.Int, error) {
	return runNamadaClientMethodWithMetrics("GetBond", func() (math.Int, error) {
		return n.namada.GetBond(ctx, validator, delegator, epoch)
	})
}

func (n *namadaClientWithMetrics) GetBalance(ctx context.Context, owner, token types.Address) (math.Int, error) {
	return runNamadaClientMethodWithMetrics("GetBalance", func() (math.Int, error) {
		return n.namada.GetBalance(ctx, owner, token)
	})
}

func (n *namadaClientWithMetrics) GetNativeToken(ctx context.Context) (types.Address, error) {
	return runNamadaClientMethodWithMetrics("GetNativeToken", func() (types.Address, error) {
		return n.namada.GetNativeToken(ctx)
	})
}

func (n *namadaClientWithMetrics) SubmitClaimRewards(
	ctx context.Context, delegator types.Address, validators types.ValidatorSet, signer Signer,
) (*TxAck, error) {
	return runNamadaClientMethodWithMetrics("SubmitClaimRewards", func() (*TxAck, error) {
		return n.namada.SubmitClaimRewards(ctx, delegator, validators, signer)
	})
}

func (n *namadaClientWithMetrics) SubmitBond(
	ctx context.Context, delegator types.Address, validators types.ValidatorSet, amount math.Int, signer Signer,
) (*TxAck, error) {
	return runNamadaClientMethodWithMetrics("SubmitBond", func() (*TxAck, error) {
		return n.namada.SubmitBond(ctx, delegator, validators, amount, signer)
	})
}

func runNamadaClientMethodWithMetrics[T any](method string, f func() (T, error)) (T, error) {
	startTime := time.Now()
	v, err := f()
	duration := time.Since(startTime)

	metrics.RecordNamadaClientLatency(duration, method, err != nil)
	return v, err
}
