package services

import (
	"github.com/yieldloop/namada-compounder/internal/clients/namadaclient"
	"github.com/yieldloop/namada-compounder/internal/compounding"
	"github.com/yieldloop/namada-compounder/internal/config"
	"github.com/yieldloop/namada-compounder/internal/scheduler"
	"github.com/yieldloop/namada-compounder/internal/types"
	"github.com/yieldloop/namada-compounder/pkg/clock"
)

// Service compounds the staking rewards of a single delegator.
type Service struct {
	cfg       *config.Config
	namada    namadaclient.NamadaInterface
	signer    namadaclient.Signer
	delegator types.Address
	clock     clock.Clock
	optimizer *compounding.Optimizer
	scheduler *scheduler.Scheduler
}

func NewService(
	cfg *config.Config,
	namada namadaclient.NamadaInterface,
	signer namadaclient.Signer,
	delegator types.Address,
	c clock.Clock,
) *Service {
	return &Service{
		cfg:       cfg,
		namada:    namada,
		signer:    signer,
		delegator: delegator,
		clock:     c,
		optimizer: compounding.NewOptimizer(compounding.WithMaxIterations(cfg.Optimizer.MaxIterations)),
		scheduler: scheduler.New(c),
	}
}
