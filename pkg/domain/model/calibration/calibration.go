package calibration

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/reneeyyx/Safety1st/pkg/domain/types"
)

// Calibration is the complete, immutable calibration table injected into the
// risk engine. It is constructed once at process start and safely shared
// across concurrent evaluations without locking.
type Calibration struct {
	// Set tags the calibration revision so stored results record which
	// curves produced them
	Set string

	Curves         map[types.InjuryChannel]RiskCurve
	NeckIntercepts NeckInterceptTable

	// Neck oscillator parameters. Stiffness and damping are normally derived
	// from the natural frequency and damping ratio; a positive override pins
	// the raw coefficient instead.
	NeckNaturalFreqHz     float64
	NeckDampingRatio      float64
	NeckStiffnessOverride float64
	NeckDampingOverride   float64

	// BeltStiffness is the thorax spring model belt stiffness in N/m
	BeltStiffness float64
}

// Curve returns the calibrated curve for a channel. A missing channel is a
// programming error upstream and is reported as a failure, never defaulted.
func (c *Calibration) Curve(channel types.InjuryChannel) (RiskCurve, error) {
	curve, ok := c.Curves[channel]
	if !ok {
		return RiskCurve{}, goerr.Wrap(ErrUnknownChannel, "no risk curve for channel",
			goerr.V("channel", channel))
	}
	return curve, nil
}

// Validate checks every curve and the neck intercept table
func (c *Calibration) Validate() error {
	if c.Set == "" {
		return goerr.New("calibration set tag is required")
	}
	if len(c.Curves) == 0 {
		return goerr.New("calibration has no risk curves")
	}
	for channel, curve := range c.Curves {
		if channel != curve.Channel {
			return goerr.New("risk curve registered under wrong channel",
				goerr.V("key", channel), goerr.V("curve_channel", curve.Channel))
		}
		if err := curve.Validate(); err != nil {
			return goerr.Wrap(err, "invalid risk curve")
		}
	}
	if err := c.NeckIntercepts.Validate(); err != nil {
		return goerr.Wrap(err, "invalid neck intercept table")
	}
	if c.NeckNaturalFreqHz <= 0 {
		return goerr.New("neck natural frequency must be positive",
			goerr.V("natural_freq_hz", c.NeckNaturalFreqHz))
	}
	if c.NeckDampingRatio <= 0 {
		return goerr.New("neck damping ratio must be positive",
			goerr.V("damping_ratio", c.NeckDampingRatio))
	}
	if c.BeltStiffness <= 0 {
		return goerr.New("belt stiffness must be positive",
			goerr.V("belt_stiffness", c.BeltStiffness))
	}
	return nil
}

// Default returns the current calibration set. Head, neck and femur use
// published NHTSA injury risk functions; thorax uses the THOR-05F AIS3+
// IR-TRACC deflection IRF. The femur curve predicts AIS2+, a weaker
// evidentiary standard than the AIS3+ curves, and is labeled as such.
func Default() *Calibration {
	const defaultNeckForceN = 6806.0
	const defaultNeckMomentNm = 310.0

	modes := make(map[types.NeckLoadMode]NeckIntercepts, len(types.AllNeckLoadModes))
	for _, mode := range types.AllNeckLoadModes {
		modes[mode] = NeckIntercepts{ForceN: defaultNeckForceN, MomentNm: defaultNeckMomentNm}
	}

	return &Calibration{
		Set: "safety1st_baseline_v2_thor05f_thorax",
		Curves: map[types.InjuryChannel]RiskCurve{
			types.ChannelHeadHIC15: {
				Channel:  types.ChannelHeadHIC15,
				Form:     FormProbitLogNormal,
				Mu:       7.45231,
				Sigma:    0.73998,
				Units:    "HIC15",
				Severity: "AIS3+",
				Source:   "NHTSA (2000) expanded HIC15 skull fracture risk curve",
			},
			types.ChannelNeckNij: {
				Channel:  types.ChannelNeckNij,
				Form:     FormLogistic,
				Beta0:    -3.2269,
				Beta1:    1.9688,
				Units:    "Nij",
				Severity: "AIS3+",
				Source:   "NHTSA Nij AIS3+ logistic regression",
			},
			types.ChannelThoraxDeflMM: {
				Channel:  types.ChannelThoraxDeflMM,
				Form:     FormLogistic,
				Beta0:    -4.9522,
				Beta1:    0.1657,
				Units:    "mm",
				Severity: "AIS3+",
				Source:   "THOR-05F matched-pair AIS3+ IRF, max IR-TRACC deflection (X-Y resultant)",
			},
			types.ChannelFemurLoadKN: {
				Channel:  types.ChannelFemurLoadKN,
				Form:     FormLogistic,
				Beta0:    -5.7949,
				Beta1:    0.5196,
				Units:    "kN",
				Severity: "AIS2+",
				Source:   "Femur axial load AIS2+ logistic regression (weaker evidentiary standard)",
			},
			types.ChannelChestA3ms: {
				Channel:     types.ChannelChestA3ms,
				Form:        FormLegacyLogistic,
				X50:         60.0,
				K:           0.08,
				Units:       "g",
				Severity:    "AIS3+",
				Source:      "placeholder pending calibration",
				Provisional: true,
				Diagnostic:  true,
			},
		},
		NeckIntercepts: NeckInterceptTable{
			Modes:       modes,
			Source:      "50th percentile male intercepts, shared across modes pending mode-specific calibration",
			Provisional: true,
		},
		NeckNaturalFreqHz: 30.0,
		NeckDampingRatio:  0.3,
		BeltStiffness:     50000.0,
	}
}
