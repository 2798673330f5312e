package compounding

import (
	"math"
	"time"
)

const (
	secondsPerYear = 365 * 24 * 60 * 60
	// displayRoundingStep is the multiple interval views are rounded up to
	displayRoundingStep = 4
)

// OptimizationResult is the outcome of a frequency search. OptimalFrequency
// is always compounding rounds per year; use Interval for anything compared
// against wall-clock time.
type OptimizationResult struct {
	OptimalFrequency    uint64
	MaxProjectedBalance float64
}

func (r *OptimizationResult) SecondsBetweenCompounding() float64 {
	return secondsPerYear / float64(r.OptimalFrequency)
}

func (r *OptimizationResult) HoursBetweenCompounding() float64 {
	return r.SecondsBetweenCompounding() / 60 / 60
}

func (r *OptimizationResult) DaysBetweenCompounding() float64 {
	return r.HoursBetweenCompounding() / 24
}

// HoursBetweenCompoundingRounded rounds up to the next multiple of 4 hours.
func (r *OptimizationResult) HoursBetweenCompoundingRounded() float64 {
	return roundUpToMultiple(r.HoursBetweenCompounding(), displayRoundingStep)
}

// DaysBetweenCompoundingRounded rounds up to the next multiple of 4 days.
func (r *OptimizationResult) DaysBetweenCompoundingRounded() float64 {
	return roundUpToMultiple(r.DaysBetweenCompounding(), displayRoundingStep)
}

// Interval is the wall-clock time between two compounding rounds and the
// only value the scheduler compares elapsed time against.
func (r *OptimizationResult) Interval() time.Duration {
	return time.Duration(r.SecondsBetweenCompounding() * float64(time.Second))
}

// APY is the projected one-year yield on principal, including compounding
// and fees.
func (r *OptimizationResult) APY(principal float64) float64 {
	if principal <= 0 {
		return 0
	}
	return r.MaxProjectedBalance/principal - 1
}

func roundUpToMultiple(value, n float64) float64 {
	return math.Ceil(value/n) * n
}
