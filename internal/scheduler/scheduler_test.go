package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yieldloop/namada-compounder/internal/types"
	"github.com/yieldloop/namada-compounder/pkg/clock"
)

func TestScheduler(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("fresh scheduler is ready for any interval", func(t *testing.T) {
		s := New(clock.NewFake(start))
		assert.Equal(t, types.StateNeverClaimed, s.State())

		for _, interval := range []time.Duration{0, time.Minute, 25 * time.Hour, 365 * 24 * time.Hour} {
			d := s.Evaluate(interval)
			assert.Equal(t, types.StateReadyToReclaim, d.State, "interval %s", interval)
			assert.True(t, d.ShouldReclaim())
		}

		_, claimed := s.LastClaim()
		assert.False(t, claimed)
	})

	t.Run("idle until the interval elapses", func(t *testing.T) {
		c := clock.NewFake(start)
		s := New(c)
		const interval = 24 * time.Hour

		c.Advance(time.Hour)
		s.MarkReclaimed()
		claimedAt := c.Now()
		assert.Equal(t, types.StateIdle, s.State())

		last, claimed := s.LastClaim()
		assert.True(t, claimed)
		assert.Equal(t, claimedAt, last)

		c.Advance(interval / 2)
		d := s.Evaluate(interval)
		assert.Equal(t, types.StateIdle, d.State)
		assert.False(t, d.ShouldReclaim())
		assert.Equal(t, interval/2, d.Elapsed)
		assert.Equal(t, interval/2, d.Remaining)

		c.Advance(interval / 2)
		d = s.Evaluate(interval)
		assert.Equal(t, types.StateReadyToReclaim, d.State)
		assert.Zero(t, d.Remaining)

		c.Advance(time.Hour)
		assert.True(t, s.Evaluate(interval).ShouldReclaim())
	})

	t.Run("reclaim resets the baseline", func(t *testing.T) {
		c := clock.NewFake(start)
		s := New(c)
		const interval = 2 * time.Hour

		s.MarkReclaimed()
		c.Advance(3 * time.Hour)
		assert.True(t, s.Evaluate(interval).ShouldReclaim())

		s.MarkReclaimed()
		d := s.Evaluate(interval)
		assert.Equal(t, types.StateIdle, d.State)
		assert.Equal(t, interval, d.Remaining)
	})
}
