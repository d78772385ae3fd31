package types

import "github.com/m-mizutani/goerr/v2"

// CabinRigidity categorizes the structural rigidity of the passenger cabin
type CabinRigidity string

const (
	CabinRigidityLow    CabinRigidity = "low"
	CabinRigidityMedium CabinRigidity = "medium"
	CabinRigidityHigh   CabinRigidity = "high"
)

// Validate checks if the CabinRigidity is a known category
func (c CabinRigidity) Validate() error {
	switch c {
	case CabinRigidityLow, CabinRigidityMedium, CabinRigidityHigh:
		return nil
	default:
		return goerr.New("invalid cabin rigidity", goerr.V("cabin_rigidity", c))
	}
}

// String returns the string representation of CabinRigidity
func (c CabinRigidity) String() string {
	return string(c)
}
