package spell

import "math"

// CostFunc derives a spell's cost from its effects.
type CostFunc func(effects []Effect) int

// DefaultCost sums the rounded-up mean of every damage and healing formula,
// ignoring negative means. Effects with neither contribute nothing.
func DefaultCost(effects []Effect) int {
	total := 0
	for _, e := range effects {
		if f, ok := e.Damage(); ok {
			total += int(math.Ceil(math.Max(0, f.Mean())))
		}
		if f, ok := e.Healing(); ok {
			total += int(math.Ceil(math.Max(0, f.Mean())))
		}
	}
	return total
}
