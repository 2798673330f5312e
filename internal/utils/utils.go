package utils

// Mean returns the arithmetic mean of values. An empty slice has no mean and
// reports ok=false rather than zero.
func Mean(values []float64) (mean float64, ok bool) {
	if len(values) == 0 {
		return 0, false
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}
