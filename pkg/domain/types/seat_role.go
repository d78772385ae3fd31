package types

import "github.com/m-mizutani/goerr/v2"

// SeatRole represents the occupant's seating role in the vehicle
type SeatRole string

const (
	SeatRoleDriver    SeatRole = "driver"
	SeatRolePassenger SeatRole = "passenger"
)

// Validate checks if the SeatRole is a known role
func (s SeatRole) Validate() error {
	switch s {
	case SeatRoleDriver, SeatRolePassenger:
		return nil
	default:
		return goerr.New("invalid seat role", goerr.V("seat_role", s))
	}
}

// String returns the string representation of SeatRole
func (s SeatRole) String() string {
	return string(s)
}
