package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yieldloop/namada-compounder/internal/clients/namadaclient"
	"github.com/yieldloop/namada-compounder/internal/clients/namadaclient/mocks"
	"github.com/yieldloop/namada-compounder/internal/types"
)

// expectDelegation sets up a delegator with 3,000,000 NAM bonded to a single
// validator at 11.8% and no commission. With the 5 NAM test fee the optimum is
// 343 rounds a year, one every ~25.5 hours.
func expectDelegation(namada *mocks.NamadaInterface) {
	namada.On("GetCurrentEpoch", mock.Anything).Return(epoch, nil)
	namada.On("GetInflationRate", mock.Anything).Return(dec("0.118"), nil)
	namada.On("GetDelegatorValidators", mock.Anything, delegator, epoch).Return(types.NewValidatorSet(validatorA), nil)
	namada.On("GetValidatorCommission", mock.Anything, validatorA, epoch).Return(dec("0"), nil)
	namada.On("GetBond", mock.Anything, validatorA, delegator, epoch).Return(math.NewInt(3_000_000_000_000), nil)
}

// expectReclaims makes every claim add 1 NAM to the balance.
func expectReclaims(namada *mocks.NamadaInterface) *atomic.Int64 {
	var balance atomic.Int64
	namada.On("GetNativeToken", mock.Anything).Return(nativeNAM, nil)
	namada.On("GetBalance", mock.Anything, delegator, nativeNAM).
		Return(func(context.Context, types.Address, types.Address) (math.Int, error) {
			return math.NewInt(balance.Load()), nil
		})
	namada.On("SubmitClaimRewards", mock.Anything, delegator, mock.Anything, mock.Anything).
		Return(func(context.Context, types.Address, types.ValidatorSet, namadaclient.Signer) (*namadaclient.TxAck, error) {
			balance.Add(1_000_000)
			return &namadaclient.TxAck{TxHashes: []string{"CLAIM"}}, nil
		})
	namada.On("SubmitBond", mock.Anything, delegator, mock.Anything, amountOf(1_000_000), mock.Anything).
		Return(&namadaclient.TxAck{TxHashes: []string{"BOND"}}, nil)
	return &balance
}

func TestPlan(t *testing.T) {
	s, namada, _ := newTestService(t, testConfig())
	expectDelegation(namada)

	snapshot, report, err := s.plan(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.Validators.Len())
	assert.Equal(t, 3_000_000.0, report.Principal)
	assert.Equal(t, 5.0, report.FeePerCycle)
	assert.Equal(t, uint64(343), report.Result.OptimalFrequency)
	assert.InDelta(t, 0.12461, report.APY(), 1e-5)
}

func TestPlan_FeesScaleWithValidators(t *testing.T) {
	s, namada, _ := newTestService(t, testConfig())
	namada.On("GetCurrentEpoch", mock.Anything).Return(epoch, nil)
	namada.On("GetInflationRate", mock.Anything).Return(dec("0.118"), nil)
	namada.On("GetDelegatorValidators", mock.Anything, delegator, epoch).
		Return(types.NewValidatorSet(validatorA, validatorB), nil)
	namada.On("GetValidatorCommission", mock.Anything, mock.Anything, epoch).Return(dec("0"), nil)
	namada.On("GetBond", mock.Anything, mock.Anything, delegator, epoch).Return(math.NewInt(1_500_000_000_000), nil)

	_, report, err := s.plan(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 10.0, report.FeePerCycle)
	// twice the fee per round costs 343 * 5 NAM plus the lost compounding on it
	assert.InDelta(t, 3_372_023.925, report.Result.MaxProjectedBalance, 0.01)
}

func TestPlan_InfeasibleFee(t *testing.T) {
	cfg := testConfig()
	cfg.Compounder.BaseFee = 100_000_000
	s, namada, _ := newTestService(t, cfg)
	namada.On("GetCurrentEpoch", mock.Anything).Return(epoch, nil)
	namada.On("GetInflationRate", mock.Anything).Return(dec("0.01"), nil)
	namada.On("GetDelegatorValidators", mock.Anything, delegator, epoch).Return(types.NewValidatorSet(validatorA), nil)
	namada.On("GetValidatorCommission", mock.Anything, validatorA, epoch).Return(dec("0"), nil)
	namada.On("GetBond", mock.Anything, validatorA, delegator, epoch).Return(math.NewInt(10_000_000), nil)

	_, _, err := s.plan(t.Context())
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.ErrOptimizationFailure))
}

func TestRunCycle(t *testing.T) {
	t.Run("reclaims first, then only once the interval elapsed", func(t *testing.T) {
		s, namada, clk := newTestService(t, testConfig())
		expectDelegation(namada)
		balance := expectReclaims(namada)

		require.NoError(t, s.runCycle(t.Context()))
		assert.Equal(t, types.StateIdle, s.scheduler.State())
		namada.AssertNumberOfCalls(t, "SubmitClaimRewards", 1)
		namada.AssertNumberOfCalls(t, "SubmitBond", 1)

		clk.Advance(25 * time.Hour)
		require.NoError(t, s.runCycle(t.Context()))
		namada.AssertNumberOfCalls(t, "SubmitClaimRewards", 1)

		clk.Advance(time.Hour)
		require.NoError(t, s.runCycle(t.Context()))
		namada.AssertNumberOfCalls(t, "SubmitClaimRewards", 2)
		namada.AssertNumberOfCalls(t, "SubmitBond", 2)
		assert.Equal(t, int64(2_000_000), balance.Load())

		last, ok := s.scheduler.LastClaim()
		assert.True(t, ok)
		assert.Equal(t, clk.Now(), last)
	})

	t.Run("failed reclaim leaves the schedule untouched", func(t *testing.T) {
		s, namada, _ := newTestService(t, testConfig())
		expectDelegation(namada)
		namada.On("GetNativeToken", mock.Anything).Return(nativeNAM, nil)
		namada.On("GetBalance", mock.Anything, delegator, nativeNAM).Return(math.NewInt(5), nil)
		namada.On("SubmitClaimRewards", mock.Anything, delegator, mock.Anything, mock.Anything).
			Return(nil, types.NewErrorWithMsg(types.ErrTransport, "node unreachable"))

		err := s.runCycle(t.Context())
		require.Error(t, err)
		assert.True(t, types.IsErrorCode(err, types.ErrTransport))
		assert.Equal(t, types.StateNeverClaimed, s.scheduler.State())
	})

	t.Run("aggregation failure stops the cycle before the scheduler", func(t *testing.T) {
		s, namada, _ := newTestService(t, testConfig())
		namada.On("GetCurrentEpoch", mock.Anything).Return(epoch, nil)
		namada.On("GetInflationRate", mock.Anything).Return(dec("0.1"), nil)
		namada.On("GetDelegatorValidators", mock.Anything, delegator, epoch).Return(types.NewValidatorSet(), nil)

		err := s.runCycle(t.Context())
		assert.True(t, types.IsErrorCode(err, types.ErrEmptyInput))
		assert.Equal(t, types.StateNeverClaimed, s.scheduler.State())
	})
}

func TestRun(t *testing.T) {
	t.Run("dry run never submits", func(t *testing.T) {
		cfg := testConfig()
		cfg.Compounder.DryRun = true
		s, namada, _ := newTestService(t, cfg)
		expectDelegation(namada)

		require.NoError(t, s.Run(t.Context()))
		namada.AssertNotCalled(t, "GetNativeToken", mock.Anything)
		namada.AssertNotCalled(t, "SubmitClaimRewards", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("dry run reports failures", func(t *testing.T) {
		cfg := testConfig()
		cfg.Compounder.DryRun = true
		s, namada, _ := newTestService(t, cfg)
		namada.On("GetCurrentEpoch", mock.Anything).
			Return(types.Epoch(0), types.NewErrorWithMsg(types.ErrTransport, "connection refused"))

		assert.Error(t, s.Run(t.Context()))
	})

	t.Run("one shot runs a single cycle", func(t *testing.T) {
		cfg := testConfig()
		cfg.Compounder.OneShot = true
		s, namada, _ := newTestService(t, cfg)
		expectDelegation(namada)
		expectReclaims(namada)

		require.NoError(t, s.Run(t.Context()))
		namada.AssertNumberOfCalls(t, "SubmitClaimRewards", 1)
	})

	t.Run("one shot returns the cycle error", func(t *testing.T) {
		cfg := testConfig()
		cfg.Compounder.OneShot = true
		s, namada, _ := newTestService(t, cfg)
		namada.On("GetCurrentEpoch", mock.Anything).
			Return(types.Epoch(0), types.NewErrorWithMsg(types.ErrTransport, "connection refused"))

		err := s.Run(t.Context())
		assert.True(t, types.IsErrorCode(err, types.ErrTransport))
	})

	t.Run("continuous mode stops on cancellation between cycles", func(t *testing.T) {
		s, namada, clk := newTestService(t, testConfig())
		expectDelegation(namada)
		expectReclaims(namada)

		ctx, cancel := context.WithCancel(t.Context())
		done := make(chan error, 1)
		go func() { done <- s.Run(ctx) }()

		require.Eventually(t, func() bool { return clk.Waiters() == 1 }, 5*time.Second, time.Millisecond)
		clk.Advance(testConfig().Compounder.SleepFor)
		require.Eventually(t, func() bool { return clk.Waiters() == 1 }, 5*time.Second, time.Millisecond)

		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("compounder did not stop")
		}

		// the second cycle found the reclaim not yet due
		namada.AssertNumberOfCalls(t, "SubmitClaimRewards", 1)
		namada.AssertNumberOfCalls(t, "GetCurrentEpoch", 2)
	})
}
