package catalog

import "math"

// Margin returns the profit markup percentage of sellPrice over buyPrice,
// rounded to two decimal places. A zero buy price yields 0 rather than a
// division by zero.
func Margin(sellPrice, buyPrice float64) float64 {
	if buyPrice == 0 {
		return 0
	}
	return round2((sellPrice - buyPrice) / buyPrice * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
