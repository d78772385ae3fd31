package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/reneeyyx/Safety1st/pkg/domain/types"
)

func TestCrashSideValidate(t *testing.T) {
	tests := []struct {
		name    string
		side    types.CrashSide
		wantErr bool
	}{
		{"frontal", types.CrashSideFrontal, false},
		{"side", types.CrashSideSide, false},
		{"rear", types.CrashSideRear, false},
		{"empty", "", true},
		{"uppercase", "Frontal", true},
		{"unknown", "rollover", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.side.Validate()
			if tt.wantErr {
				gt.Error(t, err)
			} else {
				gt.NoError(t, err)
			}
		})
	}
}

func TestGenderValidate(t *testing.T) {
	gt.NoError(t, types.GenderMale.Validate())
	gt.NoError(t, types.GenderFemale.Validate())
	gt.Error(t, types.Gender("").Validate())
	gt.Error(t, types.Gender("unknown").Validate())
}

func TestNeckStrengthValidate(t *testing.T) {
	for _, s := range []types.NeckStrength{
		types.NeckStrengthWeak,
		types.NeckStrengthAverage,
		types.NeckStrengthStrong,
	} {
		gt.NoError(t, s.Validate())
	}
	gt.Error(t, types.NeckStrength("herculean").Validate())
}

func TestBeltFitValidate(t *testing.T) {
	for _, f := range []types.BeltFit{
		types.BeltFitPoor,
		types.BeltFitAverage,
		types.BeltFitGood,
	} {
		gt.NoError(t, f.Validate())
	}
	gt.Error(t, types.BeltFit("loose").Validate())
}

func TestNeckLoadModeValidate(t *testing.T) {
	gt.A(t, types.AllNeckLoadModes).Length(4)
	for _, m := range types.AllNeckLoadModes {
		gt.NoError(t, m.Validate())
	}
	gt.Error(t, types.NeckLoadMode("lateral-shear").Validate())
}

func TestInjuryChannelValidate(t *testing.T) {
	for _, c := range []types.InjuryChannel{
		types.ChannelHeadHIC15,
		types.ChannelNeckNij,
		types.ChannelThoraxDeflMM,
		types.ChannelFemurLoadKN,
		types.ChannelChestA3ms,
	} {
		gt.NoError(t, c.Validate())
	}
	gt.Error(t, types.InjuryChannel("pelvis_load").Validate())
}

func TestNewEvaluationID(t *testing.T) {
	a := types.NewEvaluationID()
	b := types.NewEvaluationID()

	gt.NoError(t, a.Validate())
	gt.B(t, a != b).True()
}
