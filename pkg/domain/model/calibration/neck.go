package calibration

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/reneeyyx/Safety1st/pkg/domain/types"
)

// NeckIntercepts holds the critical force/moment pair that normalizes the
// instantaneous neck loading for one loading mode.
type NeckIntercepts struct {
	// ForceN is the axial force intercept in N
	ForceN float64
	// MomentNm is the bending moment intercept in N·m
	MomentNm float64
}

// Validate checks that both intercepts are positive
func (n NeckIntercepts) Validate() error {
	if n.ForceN <= 0 {
		return goerr.New("neck force intercept must be positive", goerr.V("force_n", n.ForceN))
	}
	if n.MomentNm <= 0 {
		return goerr.New("neck moment intercept must be positive", goerr.V("moment_nm", n.MomentNm))
	}
	return nil
}

// NeckInterceptTable maps each of the four loading modes to its intercept
// pair. The current calibration initializes all modes to the same 50th
// percentile male values; the per-mode structure exists for future
// differentiated calibration.
type NeckInterceptTable struct {
	Modes       map[types.NeckLoadMode]NeckIntercepts
	Source      string
	Provisional bool
}

// Intercepts returns the intercept pair for a loading mode
func (t *NeckInterceptTable) Intercepts(mode types.NeckLoadMode) (NeckIntercepts, error) {
	ic, ok := t.Modes[mode]
	if !ok {
		return NeckIntercepts{}, goerr.New("no intercepts for neck load mode", goerr.V("mode", mode))
	}
	return ic, nil
}

// Validate checks that every loading mode has valid intercepts
func (t *NeckInterceptTable) Validate() error {
	for _, mode := range types.AllNeckLoadModes {
		ic, ok := t.Modes[mode]
		if !ok {
			return goerr.New("missing neck intercepts for mode", goerr.V("mode", mode))
		}
		if err := ic.Validate(); err != nil {
			return goerr.Wrap(err, "invalid neck intercepts", goerr.V("mode", mode))
		}
	}
	return nil
}
