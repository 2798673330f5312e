package types

import "cosmossdk.io/math"

type BondAllocation struct {
	Validator Address
	Amount    math.Int
}

// SplitBond divides amount evenly across the validators in sorted order. The
// integer remainder goes to the first validator. Validators whose share is
// zero are left out, so every allocation is positive.
func SplitBond(amount math.Int, validators ValidatorSet) []BondAllocation {
	if !amount.IsPositive() || validators.Len() == 0 {
		return nil
	}

	sorted := validators.Sorted()
	count := math.NewInt(int64(len(sorted)))
	share := amount.Quo(count)
	remainder := amount.Sub(share.Mul(count))

	allocations := make([]BondAllocation, 0, len(sorted))
	for i, v := range sorted {
		a := share
		if i == 0 {
			a = a.Add(remainder)
		}
		if !a.IsPositive() {
			continue
		}
		allocations = append(allocations, BondAllocation{Validator: v, Amount: a})
	}
	return allocations
}
