package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/m-mizutani/goerr/v2"
	"github.com/reneeyyx/Safety1st/pkg/domain/model"
	"github.com/reneeyyx/Safety1st/pkg/domain/model/calibration"
	"github.com/reneeyyx/Safety1st/pkg/domain/types"
	"github.com/reneeyyx/Safety1st/pkg/utils/logging"
)

// Calculator runs the full physics pipeline for one crash scenario: pulse
// synthesis, restraint transfer, injury criteria, calibrated risk curves and
// probability combination. It holds only the immutable calibration table and
// is safe for concurrent use.
type Calculator struct {
	cal *calibration.Calibration
}

// New returns a Calculator bound to a validated calibration table.
func New(cal *calibration.Calibration) (*Calculator, error) {
	if cal == nil {
		return nil, goerr.New("calibration is required")
	}
	if err := cal.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid calibration")
	}
	return &Calculator{cal: cal}, nil
}

// Calibration exposes the bound calibration table.
func (c *Calculator) Calibration() *calibration.Calibration {
	return c.cal
}

// Evaluate computes the baseline crash risk result for the given inputs.
// The inputs must come from model.NewCrashInputs so derived anthropometry is
// already filled. Evaluation is deterministic: the same inputs and
// calibration always produce the same result.
func (c *Calculator) Evaluate(ctx context.Context, in *model.CrashInputs) (*model.CrashRiskResult, error) {
	deltaV := DeltaV(in.ImpactSpeedMPS, in.Restitution)
	pulse := SynthesizePulse(deltaV, in.CrashSide)

	alpha := TransferFactor(in)
	occAccel, occPeak := OccupantAccel(pulse, alpha)

	hic := HIC15(occAccel, pulse.Dt)

	nij, err := ComputeNij(pulse, occAccel, in, c.cal)
	if err != nil {
		return nil, goerr.Wrap(err, "neck injury simulation failed")
	}

	thoraxM := ThoraxDeflection(occPeak, in, c.cal.BeltStiffness)
	femurKN := FemurLoad(occPeak, in) / 1000.0
	chestA3ms := ChestA3ms(occAccel, pulse.Dt)

	pHead, err := Probability(c.cal, types.ChannelHeadHIC15, hic)
	if err != nil {
		return nil, err
	}
	pNeck, err := Probability(c.cal, types.ChannelNeckNij, nij.Nij)
	if err != nil {
		return nil, err
	}
	pThorax, err := Probability(c.cal, types.ChannelThoraxDeflMM, thoraxM*1000.0)
	if err != nil {
		return nil, err
	}
	pFemur, err := Probability(c.cal, types.ChannelFemurLoadKN, femurKN)
	if err != nil {
		return nil, err
	}
	pChestDiag, err := Probability(c.cal, types.ChannelChestA3ms, chestA3ms)
	if err != nil {
		return nil, err
	}

	// The diagnostic chest channel never enters the combination.
	independent, adjusted := CombineProbabilities(
		[]float64{pHead, pNeck, pThorax, pFemur}, in.CorrelationFactor)

	result := &model.CrashRiskResult{
		CalibrationSet: c.cal.Set,
		Dynamics: model.CrashDynamics{
			DeltaVMPS:      deltaV,
			PulseDurationS: pulse.DurationS,
			PulseType:      "half_sine",
			PeakAccelG:     pulse.PeakAccel / Gravity,
		},
		Restraint: model.RestraintSummary{
			Description:    RestraintDescription(in),
			TransferFactor: alpha,
		},
		Criteria: model.InjuryCriteria{
			HIC15:              hic,
			Nij:                nij.Nij,
			NijMode:            nij.Mode,
			NijPeakFzN:         nij.PeakFzN,
			NijPeakMyNm:        nij.PeakMyNm,
			ThoraxDeflectionM:  thoraxM,
			ThoraxDeflectionMM: thoraxM * 1000.0,
			FemurLoadKN:        femurKN,
			ChestA3msG:         chestA3ms,
		},
		Probabilities: model.InjuryProbabilities{
			Head:          pHead,
			Neck:          pNeck,
			Thorax:        pThorax,
			Femur:         pFemur,
			ChestA3msDiag: pChestDiag,
		},
		Combination: model.Combination{
			Model:             CombinationModel,
			CorrelationFactor: ClampCorrelation(in.CorrelationFactor),
			IndependentUnion:  independent,
			AdjustedUnion:     adjusted,
		},
		OverallProbability: adjusted,
		RiskScore:          RoundScore(adjusted * 100.0),
		Inputs:             *in,
		Assumptions:        c.assumptions(in),
	}

	logging.From(ctx).Debug("crash risk evaluated",
		slog.Float64("delta_v_mps", deltaV),
		slog.Float64("hic15", hic),
		slog.Float64("nij", nij.Nij),
		slog.Float64("risk_score", result.RiskScore),
	)

	return result, nil
}

// RoundScore rounds a 0-100 score to one decimal place.
func RoundScore(score float64) float64 {
	return math.Round(score*10) / 10
}

func (c *Calculator) assumptions(in *model.CrashInputs) []string {
	a := []string{
		"rigid barrier impact, coefficient of restitution " + fmt.Sprintf("%.2f", in.Restitution),
		"half-sine crash pulse, duration " + fmt.Sprintf("%.0f ms for %s impact", PulseDuration(in.CrashSide)*1000, in.CrashSide),
		"occupant loading approximated by restraint transfer factor " + fmt.Sprintf("%.3f", TransferFactor(in)),
		"neck modeled as single degree of freedom spring-damper",
		"thorax deflection is a belt-spring proxy, not a measured chest response",
		"femur channel predicts AIS2+ severity; all other scored channels AIS3+",
		"calibration set " + c.cal.Set,
	}
	if curve, err := c.cal.Curve(types.ChannelChestA3ms); err == nil && curve.Provisional {
		a = append(a, "chest 3ms clip is diagnostic only, provisional curve excluded from risk combination")
	}
	return a
}
