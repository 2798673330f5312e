package compounding

import "github.com/rs/zerolog"

// Report is an optimization result together with the inputs it was computed
// from, in whole tokens.
type Report struct {
	Principal   float64
	NetAPR      float64
	FeePerCycle float64
	Result      *OptimizationResult
}

func NewReport(principal, netAPR, feePerCycle float64, result *OptimizationResult) *Report {
	return &Report{
		Principal:   principal,
		NetAPR:      netAPR,
		FeePerCycle: feePerCycle,
		Result:      result,
	}
}

func (r *Report) APY() float64 {
	return r.Result.APY(r.Principal)
}

func (r *Report) MarshalZerologObject(e *zerolog.Event) {
	e.Uint64("optimal_frequency", r.Result.OptimalFrequency).
		Float64("interval_hours", r.Result.HoursBetweenCompoundingRounded()).
		Float64("interval_days", r.Result.DaysBetweenCompoundingRounded()).
		Float64("bonded_balance", r.Principal).
		Float64("projected_balance", r.Result.MaxProjectedBalance).
		Float64("fee_per_cycle", r.FeePerCycle).
		Float64("apr", r.NetAPR).
		Float64("apy", r.APY())
}
