package engine

import (
	"math"

	"github.com/reneeyyx/Safety1st/pkg/domain/types"
)

// Gravity is standard gravitational acceleration in m/s².
const Gravity = 9.80665

// SampleRateHz is the fixed sampling rate of synthesized crash pulses.
// At typical pulse durations this yields ~1000 samples per evaluation.
const SampleRateHz = 10000

// Pulse duration lookup by crash side. Unknown sides fall back to the
// frontal duration.
var pulseDurations = map[types.CrashSide]float64{
	types.CrashSideFrontal: 0.10,
	types.CrashSideSide:    0.07,
	types.CrashSideRear:    0.09,
}

const defaultPulseDuration = 0.10

// Pulse is an ephemeral, equally-spaced vehicle deceleration time history.
// It is produced by SynthesizePulse, consumed by the injury criteria, and
// discarded; it is never persisted in a result.
type Pulse struct {
	// DurationS is the total pulse duration in seconds
	DurationS float64
	// Dt is the sample spacing in seconds
	Dt float64
	// TimeS holds sample times over [0, DurationS]
	TimeS []float64
	// VehicleAccel holds vehicle deceleration magnitudes in m/s²
	VehicleAccel []float64
	// PeakAccel is the half-sine peak in m/s²
	PeakAccel float64
}

// PulseDuration returns the pulse duration for a crash side
func PulseDuration(side types.CrashSide) float64 {
	if d, ok := pulseDurations[side]; ok {
		return d
	}
	return defaultPulseDuration
}

// PeakAcceleration returns the half-sine peak satisfying
// integral(a, 0, T) == deltaV, i.e. (pi/2) * deltaV / T.
func PeakAcceleration(deltaV, duration float64) float64 {
	if duration <= 0 {
		return 0
	}
	return (math.Pi / 2.0) * (deltaV / duration)
}

// SynthesizePulse builds a half-sine vehicle deceleration pulse whose
// integral over [0,T] equals deltaV, sampled at SampleRateHz. The sample
// count is clamped to a minimum of 2 so a degenerate duration can never
// produce a zero-length series or a zero time step.
func SynthesizePulse(deltaV float64, side types.CrashSide) *Pulse {
	duration := PulseDuration(side)
	peak := PeakAcceleration(deltaV, duration)

	n := int(duration * SampleRateHz)
	if n < 2 {
		n = 2
	}
	dt := duration / float64(n-1)

	timeS := make([]float64, n)
	accel := make([]float64, n)
	for i := 0; i < n; i++ {
		t := float64(i) * dt
		timeS[i] = t
		accel[i] = peak * math.Sin(math.Pi*t/duration)
	}

	return &Pulse{
		DurationS:    duration,
		Dt:           dt,
		TimeS:        timeS,
		VehicleAccel: accel,
		PeakAccel:    peak,
	}
}

// DeltaV computes the velocity change transmitted to the vehicle for a
// barrier impact: (1 + e) * v0, with e = 0 for the rigid-barrier assumption.
func DeltaV(impactSpeed, restitution float64) float64 {
	return (1 + restitution) * impactSpeed
}
