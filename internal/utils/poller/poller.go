package poller

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yieldloop/namada-compounder/pkg/clock"
)

// Poller runs pollMethod, then sleeps interval, until stopped. Stop requests
// (context cancellation or Stop) are only honoured while sleeping: a running
// poll receives a context that is never cancelled so it can finish its work.
type Poller struct {
	interval   time.Duration
	clock      clock.Clock
	quit       chan struct{}
	pollMethod func(ctx context.Context) error
}

func NewPoller(interval time.Duration, pollMethod func(ctx context.Context) error) *Poller {
	return NewPollerWithClock(interval, clock.SystemClock{}, pollMethod)
}

func NewPollerWithClock(interval time.Duration, c clock.Clock, pollMethod func(ctx context.Context) error) *Poller {
	return &Poller{
		interval:   interval,
		clock:      c,
		quit:       make(chan struct{}),
		pollMethod: pollMethod,
	}
}

func (p *Poller) Start(ctx context.Context) {
	log.Info().Msgf("Starting poller with interval %s", p.interval)

	for {
		log.Debug().Msg("Executing poll method")
		if err := p.pollMethod(context.WithoutCancel(ctx)); err != nil {
			log.Error().Err(err).Msg("Error polling")
		} else {
			log.Debug().Msg("Poll method executed successfully")
		}

		select {
		case <-p.clock.After(p.interval):
		case <-ctx.Done():
			log.Info().Msg("Poller stopped due to context cancellation")
			return
		case <-p.quit:
			log.Info().Msg("Poller stopped")
			return
		}
	}
}

func (p *Poller) Stop() {
	close(p.quit)
}
