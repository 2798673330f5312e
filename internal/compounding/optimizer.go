package compounding

import (
	"cmp"
	"math"
	"slices"

	"github.com/yieldloop/namada-compounder/internal/types"
)

const (
	HoursPerYear = 24 * 365
	// MaxFrequency is the finest compounding the search accepts: hourly
	MaxFrequency = HoursPerYear
	// DefaultMaxIterations bounds the simplex search
	DefaultMaxIterations = 1000

	horizonYears = 1.0

	reflectionCoef  = 1.0
	expansionCoef   = 2.0
	contractionCoef = 0.5
	shrinkCoef      = 0.5
)

// initialSimplex spans once a year to quarter-hourly
var initialSimplex = []float64{1, HoursPerYear / 4.0}

type vertex struct {
	frequency float64
	cost      float64
}

type Optimizer struct {
	maxIterations int
}

type Option func(*Optimizer)

func WithMaxIterations(n int) Option {
	return func(o *Optimizer) {
		if n > 0 {
			o.maxIterations = n
		}
	}
}

func NewOptimizer(opts ...Option) *Optimizer {
	o := &Optimizer{maxIterations: DefaultMaxIterations}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Optimize searches the compounding frequency that maximizes the one-year
// balance of principal at netAPR when every round costs feePerCycle. The
// search is a Nelder-Mead simplex over the frequency; it fails with
// ErrOptimizationFailure when it does not converge within the iteration
// budget or converges on an infeasible frequency.
func (o *Optimizer) Optimize(principal, netAPR, feePerCycle float64) (*OptimizationResult, error) {
	if err := validateInputs(principal, netAPR, feePerCycle); err != nil {
		return nil, err
	}

	objective := func(frequency float64) float64 {
		return cost(principal, netAPR, feePerCycle, frequency)
	}

	best, err := o.minimize(objective)
	if err != nil {
		return nil, err
	}
	if best.cost == math.MaxFloat64 {
		return nil, types.NewErrorWithMsg(types.ErrOptimizationFailure,
			"no feasible compounding frequency for principal %.6f, apr %.6f, fee %.6f", principal, netAPR, feePerCycle)
	}

	frequency := min(max(math.Round(best.frequency), 1), MaxFrequency)
	balance := SimulateBalance(principal, netAPR, feePerCycle, frequency, horizonYears)
	if balance <= 0 {
		return nil, types.NewErrorWithMsg(types.ErrOptimizationFailure,
			"fees exhaust the balance at the best actionable frequency %.0f", frequency)
	}

	return &OptimizationResult{
		OptimalFrequency:    uint64(frequency),
		MaxProjectedBalance: balance,
	}, nil
}

func (o *Optimizer) minimize(objective func(float64) float64) (vertex, error) {
	simplex := make([]vertex, len(initialSimplex))
	for i, f := range initialSimplex {
		simplex[i] = vertex{frequency: f, cost: objective(f)}
	}
	sortSimplex(simplex)

	for range o.maxIterations {
		if converged(simplex) {
			return simplex[0], nil
		}

		last := len(simplex) - 1
		best, secondWorst, worst := simplex[0], simplex[last-1], simplex[last]
		centroid := centroidWithout(simplex, last)

		reflected := centroid + reflectionCoef*(centroid-worst.frequency)
		reflectedCost := objective(reflected)

		switch {
		case reflectedCost < secondWorst.cost && reflectedCost >= best.cost:
			simplex[last] = vertex{reflected, reflectedCost}
		case reflectedCost < best.cost:
			expanded := centroid + expansionCoef*(reflected-centroid)
			if expandedCost := objective(expanded); expandedCost < reflectedCost {
				simplex[last] = vertex{expanded, expandedCost}
			} else {
				simplex[last] = vertex{reflected, reflectedCost}
			}
		default:
			contracted := centroid + contractionCoef*(worst.frequency-centroid)
			if contractedCost := objective(contracted); contractedCost < worst.cost {
				simplex[last] = vertex{contracted, contractedCost}
			} else {
				for i := 1; i < len(simplex); i++ {
					f := best.frequency + shrinkCoef*(simplex[i].frequency-best.frequency)
					simplex[i] = vertex{f, objective(f)}
				}
			}
		}
		sortSimplex(simplex)
	}

	if converged(simplex) {
		return simplex[0], nil
	}
	return vertex{}, types.NewErrorWithMsg(types.ErrOptimizationFailure,
		"simplex did not converge within %d iterations", o.maxIterations)
}

// cost is the negated balance; frequencies finer than hourly or that
// exhaust the balance are pushed away with the largest representable cost.
func cost(principal, apr, fee, frequency float64) float64 {
	if frequency > MaxFrequency {
		return math.MaxFloat64
	}

	balance := SimulateBalance(principal, apr, fee, frequency, horizonYears)
	if balance <= 0 {
		return math.MaxFloat64
	}

	return -balance
}

// converged reports whether the sample standard deviation of the vertex
// costs is below machine epsilon.
func converged(simplex []vertex) bool {
	n := float64(len(simplex))

	var mean float64
	for _, v := range simplex {
		mean += v.cost
	}
	mean /= n

	var variance float64
	for _, v := range simplex {
		variance += (v.cost - mean) * (v.cost - mean)
	}
	variance /= n - 1

	return math.Sqrt(variance) < epsilon
}

func centroidWithout(simplex []vertex, skip int) float64 {
	var sum float64
	for i, v := range simplex {
		if i != skip {
			sum += v.frequency
		}
	}
	return sum / float64(len(simplex)-1)
}

func sortSimplex(simplex []vertex) {
	slices.SortStableFunc(simplex, func(a, b vertex) int {
		return cmp.Compare(a.cost, b.cost)
	})
}

func validateInputs(principal, apr, fee float64) error {
	switch {
	case math.IsNaN(principal) || math.IsInf(principal, 0) || principal <= 0:
		return types.NewErrorWithMsg(types.ErrOptimizationFailure, "principal must be positive and finite, got %v", principal)
	case math.IsNaN(apr) || math.IsInf(apr, 0):
		return types.NewErrorWithMsg(types.ErrOptimizationFailure, "apr must be finite, got %v", apr)
	case math.IsNaN(fee) || math.IsInf(fee, 0) || fee < 0:
		return types.NewErrorWithMsg(types.ErrOptimizationFailure, "fee must be non-negative and finite, got %v", fee)
	}
	return nil
}

// epsilon is the difference between 1 and the next representable float64
var epsilon = math.Nextafter(1, 2) - 1
