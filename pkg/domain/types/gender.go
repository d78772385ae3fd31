package types

import "github.com/m-mizutani/goerr/v2"

// Gender represents the occupant gender used for anthropometric scaling
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Validate checks if the Gender is a known value
func (g Gender) Validate() error {
	switch g {
	case GenderMale, GenderFemale:
		return nil
	default:
		return goerr.New("invalid gender", goerr.V("gender", g))
	}
}

// String returns the string representation of Gender
func (g Gender) String() string {
	return string(g)
}
