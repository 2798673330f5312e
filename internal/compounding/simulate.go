package compounding

import "math"

// SimulateBalance projects principal over years when rewards are claimed and
// re-bonded frequency times per year, each round paying fee. It returns 0 as
// soon as the balance is exhausted: fees outpaced growth and the position
// cannot recover.
func SimulateBalance(principal, apr, fee, frequency, years float64) float64 {
	effectiveRate := apr / frequency
	rounds := int(math.Floor(frequency * years))

	balance := principal
	for range max(rounds, 0) {
		// explicit conversion keeps the product rounded before the
		// subtraction so no architecture fuses it into an FMA
		balance = float64(balance*(1+effectiveRate)) - fee
		if balance <= 0 {
			return 0
		}
	}

	return balance
}
