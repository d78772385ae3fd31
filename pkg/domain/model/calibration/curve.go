package calibration

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/reneeyyx/Safety1st/pkg/domain/types"
)

// CurveForm selects the dose-response formula of a risk curve. The form is
// resolved once when the calibration table is built, never per call.
type CurveForm string

const (
	// FormProbitLogNormal: P = Phi((ln(x) - Mu) / Sigma), 0 for x <= 0
	FormProbitLogNormal CurveForm = "probit-log-normal"
	// FormLogistic: P = 1 / (1 + exp(-(Beta0 + Beta1*x)))
	FormLogistic CurveForm = "logistic"
	// FormLegacyLogistic: P = 1 / (1 + exp(-K*(x - X50)))
	FormLegacyLogistic CurveForm = "legacy-logistic"
)

// RiskCurve is one calibrated dose-response entry of the curve library.
// Only the parameters of the selected Form are meaningful.
type RiskCurve struct {
	Channel types.InjuryChannel
	Form    CurveForm

	// probit-on-log-normal parameters
	Mu    float64
	Sigma float64

	// logistic regression parameters
	Beta0 float64
	Beta1 float64

	// legacy X50/slope parameters
	X50 float64
	K   float64

	// Units of the criterion value the curve expects (documentation only)
	Units string
	// Severity is the injury outcome the curve predicts (e.g. "AIS3+")
	Severity string
	// Source names the calibration origin so downstream consumers can
	// distinguish published curves from placeholders programmatically
	Source      string
	Provisional bool
	// Diagnostic curves are reported but excluded from risk combination
	Diagnostic bool
}

// Validate checks the curve parameters for the selected form
func (c *RiskCurve) Validate() error {
	if err := c.Channel.Validate(); err != nil {
		return goerr.Wrap(err, "risk curve has invalid channel")
	}

	switch c.Form {
	case FormProbitLogNormal:
		if c.Sigma <= 0 {
			return goerr.New("probit-log-normal curve requires sigma > 0",
				goerr.V("channel", c.Channel), goerr.V("sigma", c.Sigma))
		}
	case FormLogistic:
		if c.Beta1 == 0 {
			return goerr.New("logistic curve requires non-zero beta1",
				goerr.V("channel", c.Channel))
		}
	case FormLegacyLogistic:
		if c.K == 0 {
			return goerr.New("legacy logistic curve requires non-zero slope",
				goerr.V("channel", c.Channel))
		}
	default:
		return goerr.New("unknown risk curve form",
			goerr.V("channel", c.Channel), goerr.V("form", c.Form))
	}

	return nil
}
