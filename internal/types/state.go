package types

// ReclaimState is the scheduler's view of whether a reclaim is due
type ReclaimState string

const (
	StateNeverClaimed   ReclaimState = "NEVER_CLAIMED"
	StateIdle           ReclaimState = "IDLE"
	StateReadyToReclaim ReclaimState = "READY_TO_RECLAIM"
)

func (s ReclaimState) String() string {
	return string(s)
}
