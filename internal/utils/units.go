package utils

import (
	"cosmossdk.io/math"
)

// ToTokens converts an amount in the smallest denomination into whole tokens.
func ToTokens(amount math.Int, decimals uint32) (float64, error) {
	return math.LegacyNewDecFromIntWithPrec(amount, int64(decimals)).Float64()
}

// DecToFloat converts a chain decimal into a float64 ratio.
func DecToFloat(d math.LegacyDec) (float64, error) {
	if d.IsNil() {
		return 0, nil
	}
	return d.Float64()
}
