package model

import (
	"github.com/reneeyyx/Safety1st/pkg/domain/types"
)

// CrashDynamics summarizes the synthesized vehicle pulse
type CrashDynamics struct {
	DeltaVMPS      float64 `json:"delta_v_mps"`
	PulseDurationS float64 `json:"pulse_duration_s"`
	PulseType      string  `json:"pulse_type"`
	PeakAccelG     float64 `json:"peak_accel_g"`
}

// RestraintSummary describes the restraint configuration and how much of the
// vehicle pulse it transmits to the occupant
type RestraintSummary struct {
	Description    string  `json:"description"`
	TransferFactor float64 `json:"transfer_factor"`
}

// InjuryCriteria holds the four physically-derived criterion values plus the
// diagnostic chest 3 ms clip
type InjuryCriteria struct {
	HIC15 float64 `json:"hic15"`

	Nij         float64            `json:"nij"`
	NijMode     types.NeckLoadMode `json:"nij_mode"`
	NijPeakFzN  float64            `json:"nij_peak_fz_n"`
	NijPeakMyNm float64            `json:"nij_peak_my_nm"`

	ThoraxDeflectionM  float64 `json:"thorax_deflection_proxy_m"`
	ThoraxDeflectionMM float64 `json:"thorax_deflection_proxy_mm"`

	FemurLoadKN float64 `json:"femur_load_kn"`

	// ChestA3msG is diagnostic only and excluded from risk combination
	ChestA3msG float64 `json:"chest_a3ms_g"`
}

// InjuryProbabilities holds per-channel injury probabilities in [0,1]
type InjuryProbabilities struct {
	Head   float64 `json:"p_head"`
	Neck   float64 `json:"p_neck"`
	Thorax float64 `json:"p_thorax_ais3plus"`
	// Femur is an AIS2+ probability, a weaker evidentiary standard than
	// the AIS3+ channels
	Femur float64 `json:"p_femur_ais2plus"`
	// ChestA3msDiag is diagnostic only, excluded from the combination
	ChestA3msDiag float64 `json:"p_chest_a3ms_diag"`
}

// Combination records how the per-channel probabilities were merged, kept
// for auditability of the overall number
type Combination struct {
	Model             string  `json:"model"`
	CorrelationFactor float64 `json:"correlation_factor"`
	// IndependentUnion is 1 - prod(1-p_i), the correlation-free union
	IndependentUnion float64 `json:"independent_union"`
	// AdjustedUnion is 1 - prod(1-p_i)^corr, the reported probability
	AdjustedUnion float64 `json:"adjusted_union"`
}

// CrashRiskResult is the complete baseline output of one evaluation. It is
// created once per call, returned by value semantics, and never mutated
// after return. Every field is a JSON-serializable scalar, list of strings,
// or nested record so the result round-trips through a document store
// unchanged. The result is independently meaningful without any narrative
// or scraped augmentation.
type CrashRiskResult struct {
	CalibrationSet string `json:"calibration_set"`

	Dynamics      CrashDynamics       `json:"crash_dynamics"`
	Restraint     RestraintSummary    `json:"restraint"`
	Criteria      InjuryCriteria      `json:"injury_criteria"`
	Probabilities InjuryProbabilities `json:"injury_probabilities"`
	Combination   Combination         `json:"combination"`

	OverallProbability float64 `json:"p_baseline"`
	// RiskScore is OverallProbability * 100, rounded to one decimal place
	RiskScore float64 `json:"risk_score_0_100"`

	// Inputs echoes the evaluated input record for downstream context
	Inputs CrashInputs `json:"inputs"`

	Assumptions []string `json:"assumptions"`
}
