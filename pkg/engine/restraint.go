package engine

import (
	"strings"

	"github.com/reneeyyx/Safety1st/pkg/domain/model"
	"github.com/reneeyyx/Safety1st/pkg/domain/types"
)

// Restraint transfer base factors: the fraction of the vehicle pulse that
// reaches the occupant for each restraint class.
const (
	alphaBeltAndAirbag = 0.55
	alphaBeltOnly      = 0.75
	alphaUnbelted      = 1.05

	pretensionerDiscount = 0.95
	loadLimiterDiscount  = 0.98
)

// TransferFactor maps the restraint configuration to the dimensionless
// fraction of vehicle deceleration transmitted to the occupant. The relevant
// airbag is the front airbag for frontal crashes and the side airbag
// otherwise; pretensioner and load limiter apply independent multiplicative
// discounts.
func TransferFactor(in *model.CrashInputs) float64 {
	hasAirbag := in.Restraints.FrontAirbag
	if in.CrashSide != types.CrashSideFrontal {
		hasAirbag = in.Restraints.SideAirbag
	}

	var alpha float64
	switch {
	case in.Restraints.SeatbeltUsed && hasAirbag:
		alpha = alphaBeltAndAirbag
	case in.Restraints.SeatbeltUsed:
		alpha = alphaBeltOnly
	default:
		alpha = alphaUnbelted
	}

	if in.Restraints.Pretensioner {
		alpha *= pretensionerDiscount
	}
	if in.Restraints.LoadLimiter {
		alpha *= loadLimiterDiscount
	}

	return alpha
}

// OccupantAccel scales the vehicle pulse by the transfer factor, producing
// the occupant acceleration series in m/s² and its peak.
func OccupantAccel(p *Pulse, alpha float64) (accel []float64, peak float64) {
	accel = make([]float64, len(p.VehicleAccel))
	for i, a := range p.VehicleAccel {
		accel[i] = alpha * a
		if accel[i] > peak {
			peak = accel[i]
		}
	}
	return accel, peak
}

// RestraintDescription renders the restraint configuration as a
// human-readable string for result records.
func RestraintDescription(in *model.CrashInputs) string {
	var parts []string
	if in.Restraints.SeatbeltUsed {
		parts = append(parts, "seatbelt")
		if in.Restraints.Pretensioner {
			parts = append(parts, "pretensioner")
		}
		if in.Restraints.LoadLimiter {
			parts = append(parts, "load_limiter")
		}
	} else {
		parts = append(parts, "unbelted")
	}

	if in.Restraints.FrontAirbag && in.CrashSide == types.CrashSideFrontal {
		parts = append(parts, "front_airbag")
	}
	if in.Restraints.SideAirbag && in.CrashSide == types.CrashSideSide {
		parts = append(parts, "side_airbag")
	}

	return strings.Join(parts, " + ")
}
