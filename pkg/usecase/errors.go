package usecase

import "errors"

// Sentinel errors for use case layer
var (
	ErrEvaluationNotFound = errors.New("evaluation not found")
)
