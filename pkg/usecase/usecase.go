package usecase

import (
	"github.com/reneeyyx/Safety1st/pkg/domain/interfaces"
	"github.com/reneeyyx/Safety1st/pkg/engine"
)

// DefaultMaxNarrativeAdjust bounds how far the narrative layer may move the
// baseline risk score, in points on the 0-100 scale.
const DefaultMaxNarrativeAdjust = 15.0

type UseCases struct {
	repo      interfaces.Repository
	research  interfaces.ResearchService
	narrative interfaces.NarrativeService

	maxNarrativeAdjust float64

	Crash *CrashUseCase
}

type Option func(*UseCases)

// WithResearch attaches the research collaborator. Without it, analysis
// requests skip the research step.
func WithResearch(svc interfaces.ResearchService) Option {
	return func(uc *UseCases) {
		uc.research = svc
	}
}

// WithNarrative attaches the narrative collaborator. Without it, analysis
// requests return the baseline unannotated.
func WithNarrative(svc interfaces.NarrativeService) Option {
	return func(uc *UseCases) {
		uc.narrative = svc
	}
}

// WithMaxNarrativeAdjust overrides the narrative score adjustment bound
func WithMaxNarrativeAdjust(points float64) Option {
	return func(uc *UseCases) {
		uc.maxNarrativeAdjust = points
	}
}

func New(repo interfaces.Repository, calculator *engine.Calculator, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:               repo,
		maxNarrativeAdjust: DefaultMaxNarrativeAdjust,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Crash = NewCrashUseCase(repo, calculator, uc.research, uc.narrative, uc.maxNarrativeAdjust)

	return uc
}
