package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// EvaluationID uniquely identifies one persisted crash risk evaluation
type EvaluationID string

// NewEvaluationID generates a new time-ordered evaluation ID
func NewEvaluationID() EvaluationID {
	return EvaluationID(uuid.Must(uuid.NewV7()).String())
}

// Validate checks if the EvaluationID is a valid UUID
func (e EvaluationID) Validate() error {
	if e == "" {
		return goerr.New("evaluation ID cannot be empty")
	}
	if _, err := uuid.Parse(string(e)); err != nil {
		return goerr.Wrap(err, "evaluation ID must be a UUID", goerr.V("id", e))
	}
	return nil
}

// String returns the string representation of EvaluationID
func (e EvaluationID) String() string {
	return string(e)
}
