package services

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/mock"

	"github.com/yieldloop/namada-compounder/internal/clients/namadaclient/mocks"
	"github.com/yieldloop/namada-compounder/internal/config"
	"github.com/yieldloop/namada-compounder/internal/types"
	"github.com/yieldloop/namada-compounder/pkg/clock"
)

const (
	delegator  = types.Address("tnam1delegator")
	validatorA = types.Address("tnam1validatora")
	validatorB = types.Address("tnam1validatorb")
	nativeNAM  = types.Address("tnam1nam")
)

type testSigner struct{}

func (testSigner) Sign(msg []byte) ([]byte, error) { return []byte("sig"), nil }
func (testSigner) PublicKey() string               { return "00ab" }

func testConfig() *config.Config {
	return &config.Config{
		Compounder: config.CompounderConfig{
			// 5 NAM per tx
			BaseFee:       5_000_000,
			TokenDecimals: 6,
			SleepFor:      time.Minute,
		},
		Aggregator: config.AggregatorConfig{MaxInFlight: 4},
		Optimizer:  config.OptimizerConfig{MaxIterations: 1000},
	}
}

func newTestService(t *testing.T, cfg *config.Config) (*Service, *mocks.NamadaInterface, *clock.Fake) {
	namada := mocks.NewNamadaInterface(t)
	clk := clock.NewFake(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	return NewService(cfg, namada, testSigner{}, delegator, clk), namada, clk
}

func dec(s string) math.LegacyDec {
	return math.LegacyMustNewDecFromStr(s)
}

func amountOf(v int64) any {
	return mock.MatchedBy(func(a math.Int) bool { return a.Equal(math.NewInt(v)) })
}
