package engine

import (
	"math"

	"github.com/reneeyyx/Safety1st/pkg/domain/model"
	"github.com/reneeyyx/Safety1st/pkg/domain/model/calibration"
	"github.com/reneeyyx/Safety1st/pkg/domain/types"
)

// Neck strength multipliers applied to the instantaneous Nij value.
var neckStrengthScale = map[types.NeckStrength]float64{
	types.NeckStrengthWeak:    1.3,
	types.NeckStrengthAverage: 1.0,
	types.NeckStrengthStrong:  0.85,
}

// NijResult captures the peak of the normalized neck injury time history
// together with the load state at the peak.
type NijResult struct {
	Nij      float64
	Mode     types.NeckLoadMode
	PeakFzN  float64
	PeakMyNm float64
}

// ComputeNij simulates the head-neck complex as a single degree of freedom
// spring-damper excited by the occupant acceleration and folds the resulting
// axial force and bending moment into the normalized neck injury criterion.
//
// The head mass rides on a spring of stiffness k = m*(2*pi*f)^2 (or the
// calibrated override) with damping c = 2*zeta*sqrt(k*m). Integration is
// semi-implicit Euler: velocity updates on the current acceleration, then
// position on the new velocity, which keeps the oscillator stable at the
// fixed sample rate. At each step Fz = k*x + c*v and My = Fz * lever, where
// the lever arm grows with seat recline. Nij(t) is |Fz|/Fint + |My|/Mint for
// the intercepts of the sign-classified load mode, scaled by neck strength;
// the maximum over the pulse is returned along with its mode and loads.
func ComputeNij(p *Pulse, occAccel []float64, in *model.CrashInputs, cal *calibration.Calibration) (*NijResult, error) {
	m := in.HeadMassKg

	f := cal.NeckNaturalFreqHz
	if in.NeckNaturalFreqHz > 0 {
		f = in.NeckNaturalFreqHz
	}
	zeta := cal.NeckDampingRatio
	if in.NeckDampingRatio > 0 {
		zeta = in.NeckDampingRatio
	}

	k := m * math.Pow(2*math.Pi*f, 2)
	if kOv := firstPositive(in.NeckStiffnessOverride, cal.NeckStiffnessOverride); kOv > 0 {
		k = kOv
	}
	c := 2 * zeta * math.Sqrt(k*m)
	if cOv := firstPositive(in.NeckDampingOverride, cal.NeckDampingOverride); cOv > 0 {
		c = cOv
	}

	lever := in.NeckLeverArmM * (1 + in.SeatReclineAngleDeg/100.0)
	strength := neckStrengthScale[in.NeckStrength]
	if strength == 0 {
		strength = 1.0
	}

	res := &NijResult{Mode: types.NeckTensionFlexion}

	var x, v float64
	for i := range occAccel {
		// The head lags the torso, so the relative driving term is the
		// negated occupant acceleration.
		aRel := -occAccel[i] - (k*x+c*v)/m
		v += aRel * p.Dt
		x += v * p.Dt

		fz := k*x + c*v
		my := fz * lever

		mode := classifyNeckMode(fz, my)
		icp, err := cal.NeckIntercepts.Intercepts(mode)
		if err != nil {
			return nil, err
		}

		nij := (math.Abs(fz)/icp.ForceN + math.Abs(my)/icp.MomentNm) * strength
		if nij > res.Nij {
			res.Nij = nij
			res.Mode = mode
			res.PeakFzN = fz
			res.PeakMyNm = my
		}
	}

	return res, nil
}

func firstPositive(vs ...float64) float64 {
	for _, v := range vs {
		if v > 0 {
			return v
		}
	}
	return 0
}

// classifyNeckMode maps the signs of axial force and bending moment onto the
// four canonical neck load modes. Positive Fz is tension, positive My is
// flexion.
func classifyNeckMode(fz, my float64) types.NeckLoadMode {
	switch {
	case fz >= 0 && my >= 0:
		return types.NeckTensionFlexion
	case fz >= 0:
		return types.NeckTensionExtension
	case my >= 0:
		return types.NeckCompressionFlexion
	default:
		return types.NeckCompressionExtension
	}
}
