package types

import "github.com/m-mizutani/goerr/v2"

// BeltFit categorizes the pelvis/lap-belt fit quality, which affects
// how crash loads distribute between the pelvis and the femur
type BeltFit string

const (
	BeltFitPoor    BeltFit = "poor"
	BeltFitAverage BeltFit = "average"
	BeltFitGood    BeltFit = "good"
)

// Validate checks if the BeltFit is a known category
func (b BeltFit) Validate() error {
	switch b {
	case BeltFitPoor, BeltFitAverage, BeltFitGood:
		return nil
	default:
		return goerr.New("invalid belt fit", goerr.V("belt_fit", b))
	}
}

// String returns the string representation of BeltFit
func (b BeltFit) String() string {
	return string(b)
}
