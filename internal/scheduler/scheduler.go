package scheduler

import (
	"time"

	"github.com/yieldloop/namada-compounder/internal/types"
	"github.com/yieldloop/namada-compounder/pkg/clock"
)

// Decision is the outcome of one scheduling evaluation. Remaining is only
// set when State is StateIdle.
type Decision struct {
	State     types.ReclaimState
	Elapsed   time.Duration
	Remaining time.Duration
}

func (d Decision) ShouldReclaim() bool {
	return d.State == types.StateReadyToReclaim
}

// Scheduler tracks the last successful reclaim for the lifetime of the
// process. It is not safe for concurrent use; the compounding loop is its
// only writer.
type Scheduler struct {
	clock          clock.Clock
	lastClaim      time.Time
	hasClaimedOnce bool
}

func New(c clock.Clock) *Scheduler {
	return &Scheduler{
		clock:     c,
		lastClaim: c.Now(),
	}
}

// State is the current state without an interval: NeverClaimed until the
// first reclaim, Idle afterwards.
func (s *Scheduler) State() types.ReclaimState {
	if !s.hasClaimedOnce {
		return types.StateNeverClaimed
	}
	return types.StateIdle
}

func (s *Scheduler) LastClaim() (time.Time, bool) {
	return s.lastClaim, s.hasClaimedOnce
}

// Evaluate decides whether a reclaim is due given the recommended interval
// between compounding rounds. A scheduler that never claimed is always due.
func (s *Scheduler) Evaluate(interval time.Duration) Decision {
	if !s.hasClaimedOnce {
		return Decision{State: types.StateReadyToReclaim}
	}

	elapsed := s.clock.Now().Sub(s.lastClaim)
	if elapsed >= interval {
		return Decision{State: types.StateReadyToReclaim, Elapsed: elapsed}
	}

	return Decision{
		State:     types.StateIdle,
		Elapsed:   elapsed,
		Remaining: interval - elapsed,
	}
}

// MarkReclaimed records a successful claim and re-bond.
func (s *Scheduler) MarkReclaimed() {
	s.lastClaim = s.clock.Now()
	s.hasClaimedOnce = true
}
