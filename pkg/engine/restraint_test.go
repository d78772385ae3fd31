package engine_test

import (
	"math"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/reneeyyx/Safety1st/pkg/domain/model"
	"github.com/reneeyyx/Safety1st/pkg/domain/types"
	"github.com/reneeyyx/Safety1st/pkg/engine"
)

func TestTransferFactor(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.CrashInputs)
		want   float64
	}{
		{
			name: "belt and front airbag in frontal crash",
			mutate: func(in *model.CrashInputs) {
				in.Restraints = model.Restraints{SeatbeltUsed: true, FrontAirbag: true}
			},
			want: 0.55,
		},
		{
			name: "side airbag does not count in a frontal crash",
			mutate: func(in *model.CrashInputs) {
				in.Restraints = model.Restraints{SeatbeltUsed: true, SideAirbag: true}
			},
			want: 0.75,
		},
		{
			name: "side airbag counts in a side crash",
			mutate: func(in *model.CrashInputs) {
				in.CrashSide = types.CrashSideSide
				in.Restraints = model.Restraints{SeatbeltUsed: true, SideAirbag: true}
			},
			want: 0.55,
		},
		{
			name: "unbelted amplifies the pulse",
			mutate: func(in *model.CrashInputs) {
				in.Restraints = model.Restraints{}
			},
			want: 1.05,
		},
		{
			name: "pretensioner and load limiter discount multiplicatively",
			mutate: func(in *model.CrashInputs) {
				in.Restraints = model.Restraints{
					SeatbeltUsed: true, FrontAirbag: true,
					Pretensioner: true, LoadLimiter: true,
				}
			},
			want: 0.55 * 0.95 * 0.98,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baselineInputs(t, tt.mutate)
			got := engine.TransferFactor(in)
			gt.B(t, math.Abs(got-tt.want) < 1e-9).True()
		})
	}
}

func TestRestraintDescription(t *testing.T) {
	t.Run("full frontal restraint set", func(t *testing.T) {
		in := baselineInputs(t, nil)
		gt.V(t, engine.RestraintDescription(in)).
			Equal("seatbelt + pretensioner + load_limiter + front_airbag")
	})

	t.Run("unbelted", func(t *testing.T) {
		in := baselineInputs(t, func(in *model.CrashInputs) {
			in.Restraints = model.Restraints{}
		})
		gt.V(t, engine.RestraintDescription(in)).Equal("unbelted")
	})
}
