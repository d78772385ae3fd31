package engine

import "math"

// CombinationModel names the probability union used for the overall risk.
const CombinationModel = "correlation_adjusted_union"

// Correlation factor bounds. Values below the floor would let a single
// moderate channel collapse the overall risk toward zero.
const (
	corrFloor   = 0.1
	corrCeiling = 1.0
)

// ClampCorrelation bounds the correlation factor to [0.1, 1.0].
func ClampCorrelation(corr float64) float64 {
	if corr < corrFloor {
		return corrFloor
	}
	if corr > corrCeiling {
		return corrCeiling
	}
	return corr
}

// CombineProbabilities merges per-channel injury probabilities into an
// overall probability of at least one injury. The independent union is
// 1 - prod(1 - p_i); correlation between channels is modeled by raising the
// no-injury probability to the clamped correlation factor, which shrinks the
// union toward the largest single channel as corr decreases. The product is
// accumulated in log space with Log1p so many small probabilities do not
// lose precision.
//
// At corr == 1.0 the adjusted union equals the independent union.
func CombineProbabilities(probs []float64, corr float64) (independent, adjusted float64) {
	var logNone float64
	for _, p := range probs {
		if p >= 1 {
			return 1, 1
		}
		if p > 0 {
			logNone += math.Log1p(-p)
		}
	}

	independent = 1 - math.Exp(logNone)
	adjusted = 1 - math.Exp(ClampCorrelation(corr)*logNone)
	return independent, adjusted
}
