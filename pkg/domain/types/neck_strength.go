package types

import "github.com/m-mizutani/goerr/v2"

// NeckStrength categorizes the occupant's neck musculature
// (weak=elderly/injured, average=normal, strong=athletic)
type NeckStrength string

const (
	NeckStrengthWeak    NeckStrength = "weak"
	NeckStrengthAverage NeckStrength = "average"
	NeckStrengthStrong  NeckStrength = "strong"
)

// Validate checks if the NeckStrength is a known category
func (n NeckStrength) Validate() error {
	switch n {
	case NeckStrengthWeak, NeckStrengthAverage, NeckStrengthStrong:
		return nil
	default:
		return goerr.New("invalid neck strength", goerr.V("neck_strength", n))
	}
}

// String returns the string representation of NeckStrength
func (n NeckStrength) String() string {
	return string(n)
}
