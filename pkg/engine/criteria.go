package engine

import (
	"github.com/reneeyyx/Safety1st/pkg/domain/model"
	"github.com/reneeyyx/Safety1st/pkg/domain/types"
)

const (
	// thoraxCoupling is the fraction of torso inertial load carried by the
	// belt path.
	thoraxCoupling = 0.8

	frontAirbagDeflectionScale = 0.7
	closeSeatDeflectionScale   = 1.3
	farSeatDeflectionScale     = 1.2
	pregnantDeflectionScale    = 1.1

	closeSeatDistanceM = 0.15
	farSeatDistanceM   = 0.50
)

// Belt fit multipliers for pelvis load sharing.
var beltFitScale = map[types.BeltFit]float64{
	types.BeltFitPoor:    1.25,
	types.BeltFitAverage: 1.0,
	types.BeltFitGood:    0.85,
}

const passengerFemurScale = 1.05

// ThoraxDeflection models the chest as a belt-loaded spring: deflection is
// the coupled torso inertial force over the belt stiffness. A deploying
// front airbag in a frontal crash reduces deflection, but a seat positioned
// very close to or very far from the wheel erodes part of that benefit.
// Pregnancy increases effective deflection. Result in meters.
func ThoraxDeflection(peakAccel float64, in *model.CrashInputs, beltStiffness float64) float64 {
	force := thoraxCoupling * in.TorsoMassKg * peakAccel
	deflection := force / beltStiffness

	if in.CrashSide == types.CrashSideFrontal && in.Restraints.FrontAirbag {
		deflection *= frontAirbagDeflectionScale
		if in.SeatDistanceFromWheelM < closeSeatDistanceM {
			deflection *= closeSeatDeflectionScale
		} else if in.SeatDistanceFromWheelM > farSeatDistanceM {
			deflection *= farSeatDeflectionScale
		}
	}

	if in.Pregnant {
		deflection *= pregnantDeflectionScale
	}

	return deflection
}

// FemurLoad estimates peak axial femur force in newtons from leg inertia,
// scaled by belt fit quality and seat role.
func FemurLoad(peakAccel float64, in *model.CrashInputs) float64 {
	scale := beltFitScale[in.BeltFit]
	if scale == 0 {
		scale = 1.0
	}

	load := in.LegMassKg * peakAccel * scale
	if in.SeatRole == types.SeatRolePassenger {
		load *= passengerFemurScale
	}
	return load
}
