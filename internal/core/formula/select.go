package formula

import (
	"math"

	"github.com/Steffo99/royalspells/internal/core/random"
)

// Parameter ranges used by Select. The mean is drawn in steps of 10.
const (
	meanStepsMin = 1
	meanStepsMax = 80
	meanStep     = 10
	deltaMin     = 1
	deltaMax     = 300
)

// 70% gaussian, 20% uniform, 10% fixed.
var kindTable = random.MustCategorical(
	random.Bracket[Kind]{Upper: 70, Value: KindGaussian},
	random.Bracket[Kind]{Upper: 90, Value: KindUniform},
	random.Bracket[Kind]{Upper: 100, Value: KindFixed},
)

// Select picks a random formula from src.
//
// Draw order is fixed: the kind roll, then the mean, then the delta. All three
// are drawn regardless of the kind, so the number of draws a selection
// consumes never depends on its outcome.
func Select(src random.Source) Formula {
	kind := kindTable.Select(src)
	mean := src.IntRange(meanStepsMin, meanStepsMax) * meanStep
	delta := src.IntRange(deltaMin, deltaMax)

	switch kind {
	case KindGaussian:
		return Formula{kind: KindGaussian, mu: float64(mean), sigma: math.Sqrt(float64(delta))}
	case KindUniform:
		return Formula{kind: KindUniform, min: float64(mean - delta), max: float64(mean + delta)}
	default:
		return Formula{kind: KindFixed, value: mean}
	}
}
