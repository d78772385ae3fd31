package engine

import (
	"math"

	"github.com/m-mizutani/goerr/v2"
	"github.com/reneeyyx/Safety1st/pkg/domain/model/calibration"
	"github.com/reneeyyx/Safety1st/pkg/domain/types"
)

// Clamp bounds for curve arguments. Past these bounds the curves are fully
// saturated and the exact 0 or 1 is returned instead of the formula value.
const (
	probitZClamp   = 8.0
	logisticZClamp = 50.0
)

// Probability evaluates the calibrated risk curve for the given channel at
// value x. The curve form decides the mapping:
//
//	probit_lognormal: Phi((ln(x) - mu) / sigma), 0 for x <= 0
//	logistic:         1 / (1 + exp(-(b0 + b1*x)))
//	legacy_logistic:  1 / (1 + exp(-k*(x - x50)))
//
// Arguments beyond the clamp bounds saturate to exactly 0 or 1 so extreme
// inputs cannot produce NaN or overflow.
func Probability(cal *calibration.Calibration, channel types.InjuryChannel, x float64) (float64, error) {
	curve, err := cal.Curve(channel)
	if err != nil {
		return 0, err
	}

	switch curve.Form {
	case calibration.FormProbitLogNormal:
		if x <= 0 {
			return 0, nil
		}
		z := (math.Log(x) - curve.Mu) / curve.Sigma
		return saturatedPhi(z), nil

	case calibration.FormLogistic:
		return saturatedLogistic(curve.Beta0 + curve.Beta1*x), nil

	case calibration.FormLegacyLogistic:
		return saturatedLogistic(curve.K * (x - curve.X50)), nil

	default:
		return 0, goerr.New("unsupported risk curve form",
			goerr.V("channel", channel), goerr.V("form", curve.Form))
	}
}

func saturatedPhi(z float64) float64 {
	if z <= -probitZClamp {
		return 0
	}
	if z >= probitZClamp {
		return 1
	}
	return 0.5 * (1 + math.Erf(z/math.Sqrt2))
}

func saturatedLogistic(z float64) float64 {
	if z <= -logisticZClamp {
		return 0
	}
	if z >= logisticZClamp {
		return 1
	}
	return 1 / (1 + math.Exp(-z))
}
