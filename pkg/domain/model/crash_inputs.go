package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/reneeyyx/Safety1st/pkg/domain/types"
)

// Reference biomechanical parameters (50th percentile male, 75 kg / 1.75 m).
// Derived anthropometry scales from these via fixed body segment fractions.
const (
	ReferenceBodyMassKg = 75.0
	ReferenceHeightM    = 1.75
	ReferenceNeckLeverM = 0.125
	HeadMassFraction    = 4.75 / ReferenceBodyMassKg // ~6.3%
	TorsoMassFraction   = 35.0 / ReferenceBodyMassKg // ~46.7%
	LegMassFraction     = 10.0 / ReferenceBodyMassKg // ~13.3%
	TorsoLengthFraction = 0.34
	FemaleHeadMassScale = 0.95
	PregnantTorsoScale  = 1.15
)

// Restraints describes the restraint systems present and in use
type Restraints struct {
	SeatbeltUsed bool `json:"seatbelt_used"`
	Pretensioner bool `json:"seatbelt_pretensioner"`
	LoadLimiter  bool `json:"seatbelt_load_limiter"`
	FrontAirbag  bool `json:"front_airbag"`
	SideAirbag   bool `json:"side_airbag"`
}

// CrashInputs is the immutable input record for one evaluation. All values
// are SI units; range validation happens at the request boundary, not here.
// Derived anthropometry is computed once by NewCrashInputs and never
// recomputed mid-pipeline.
type CrashInputs struct {
	// Vehicle / crash parameters
	ImpactSpeedMPS float64         `json:"impact_speed_mps"`
	VehicleMassKg  float64         `json:"vehicle_mass_kg"`
	CrashSide      types.CrashSide `json:"crash_side"`
	// Restitution is 0 for the rigid-barrier assumption used here
	Restitution float64 `json:"coefficient_restitution"`

	// Occupant parameters
	OccupantMassKg  float64      `json:"occupant_mass_kg"`
	OccupantHeightM float64      `json:"occupant_height_m"`
	Gender          types.Gender `json:"gender"`
	Pregnant        bool         `json:"is_pregnant"`

	// Seating geometry
	SeatDistanceFromWheelM float64 `json:"seat_distance_from_wheel_m"`
	SeatReclineAngleDeg    float64 `json:"seat_recline_angle_deg"`
	SeatHeightToDashM      float64 `json:"seat_height_relative_to_dash_m"`

	// Occupant-specific vulnerability factors
	NeckStrength types.NeckStrength `json:"neck_strength"`
	SeatRole     types.SeatRole     `json:"seat_role"`
	BeltFit      types.BeltFit      `json:"pelvis_lap_belt_fit"`

	Restraints Restraints `json:"restraints"`

	// Structural parameters
	CrumpleZoneM  float64             `json:"crumple_zone_m"`
	CabinRigidity types.CabinRigidity `json:"cabin_rigidity"`
	IntrusionM    float64             `json:"intrusion_m"`

	// Neck dynamic model tuning. Zero values fall back to the calibration
	// defaults; explicit stiffness/damping overrides take precedence over
	// frequency/ratio derivation.
	NeckNaturalFreqHz     float64 `json:"neck_natural_freq_hz,omitempty"`
	NeckDampingRatio      float64 `json:"neck_damping_ratio,omitempty"`
	NeckStiffnessOverride float64 `json:"neck_stiffness_override,omitempty"`
	NeckDampingOverride   float64 `json:"neck_damping_override,omitempty"`

	// CorrelationFactor tunes the injury probability union model. It is an
	// external tuning input, not a physical constant; 1.0 is independence.
	CorrelationFactor float64 `json:"correlation_factor"`

	// Derived anthropometry, computed once at construction
	HeadMassKg    float64 `json:"calculated_head_mass_kg"`
	TorsoMassKg   float64 `json:"calculated_torso_mass_kg"`
	LegMassKg     float64 `json:"calculated_leg_mass_kg"`
	NeckLeverArmM float64 `json:"calculated_neck_lever_arm_m"`
	TorsoLengthM  float64 `json:"torso_length_m"`
}

// NewCrashInputs fills the derived anthropometry of the given inputs and
// returns the completed immutable record. Non-zero derived fields on the
// input are treated as explicit overrides and kept as-is.
func NewCrashInputs(in CrashInputs) (*CrashInputs, error) {
	if in.OccupantMassKg <= 0 {
		return nil, goerr.Wrap(ErrInvalidInput, "occupant mass must be positive",
			goerr.V("occupant_mass_kg", in.OccupantMassKg))
	}
	if in.OccupantHeightM <= 0 {
		return nil, goerr.Wrap(ErrInvalidInput, "occupant height must be positive",
			goerr.V("occupant_height_m", in.OccupantHeightM))
	}
	for _, err := range []error{
		in.CrashSide.Validate(),
		in.Gender.Validate(),
		in.NeckStrength.Validate(),
		in.SeatRole.Validate(),
		in.BeltFit.Validate(),
		in.CabinRigidity.Validate(),
	} {
		if err != nil {
			return nil, goerr.Wrap(ErrInvalidInput, err.Error())
		}
	}

	if in.HeadMassKg == 0 {
		in.HeadMassKg = in.OccupantMassKg * HeadMassFraction
		if in.Gender == types.GenderFemale {
			in.HeadMassKg *= FemaleHeadMassScale
		}
	}
	if in.TorsoMassKg == 0 {
		in.TorsoMassKg = in.OccupantMassKg * TorsoMassFraction
		if in.Pregnant {
			in.TorsoMassKg *= PregnantTorsoScale
		}
	}
	if in.LegMassKg == 0 {
		in.LegMassKg = in.OccupantMassKg * LegMassFraction
	}
	if in.NeckLeverArmM == 0 {
		in.NeckLeverArmM = ReferenceNeckLeverM * (in.OccupantHeightM / ReferenceHeightM)
	}
	if in.TorsoLengthM == 0 {
		in.TorsoLengthM = in.OccupantHeightM * TorsoLengthFraction
	}

	if in.CorrelationFactor == 0 {
		in.CorrelationFactor = 1.0
	}

	return &in, nil
}
