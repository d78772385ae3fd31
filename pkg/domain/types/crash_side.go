package types

import "github.com/m-mizutani/goerr/v2"

// CrashSide represents the side of the vehicle that takes the impact
type CrashSide string

const (
	CrashSideFrontal CrashSide = "frontal"
	CrashSideSide    CrashSide = "side"
	CrashSideRear    CrashSide = "rear"
)

// Validate checks if the CrashSide is a known configuration
func (c CrashSide) Validate() error {
	switch c {
	case CrashSideFrontal, CrashSideSide, CrashSideRear:
		return nil
	default:
		return goerr.New("invalid crash side", goerr.V("side", c))
	}
}

// String returns the string representation of CrashSide
func (c CrashSide) String() string {
	return string(c)
}
