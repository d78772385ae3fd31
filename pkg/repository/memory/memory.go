package memory

import (
	"github.com/reneeyyx/Safety1st/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is an in-process repository used by tests and local development
type Memory struct {
	evaluation *evaluationRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		evaluation: newEvaluationRepository(),
	}
}

func (m *Memory) Evaluation() interfaces.EvaluationRepository {
	return m.evaluation
}

func (m *Memory) Close() error {
	return nil
}
