package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/reneeyyx/Safety1st/pkg/domain/interfaces"
	"github.com/reneeyyx/Safety1st/pkg/domain/model"
	"github.com/reneeyyx/Safety1st/pkg/domain/types"
	"github.com/reneeyyx/Safety1st/pkg/engine"
	"github.com/reneeyyx/Safety1st/pkg/repository/firestore"
	"github.com/reneeyyx/Safety1st/pkg/repository/memory"
	"github.com/reneeyyx/Safety1st/pkg/utils/logging"
)

type CrashUseCase struct {
	repo       interfaces.Repository
	calculator *engine.Calculator
	research   interfaces.ResearchService
	narrative  interfaces.NarrativeService

	maxNarrativeAdjust float64
}

func NewCrashUseCase(repo interfaces.Repository, calculator *engine.Calculator,
	research interfaces.ResearchService, narrative interfaces.NarrativeService,
	maxNarrativeAdjust float64) *CrashUseCase {
	if maxNarrativeAdjust <= 0 {
		maxNarrativeAdjust = DefaultMaxNarrativeAdjust
	}
	return &CrashUseCase{
		repo:               repo,
		calculator:         calculator,
		research:           research,
		narrative:          narrative,
		maxNarrativeAdjust: maxNarrativeAdjust,
	}
}

// Evaluate runs the physics pipeline alone and persists the result. The
// stored record is complete and meaningful without any collaborator output.
func (uc *CrashUseCase) Evaluate(ctx context.Context, in *model.CrashInputs) (*model.Evaluation, error) {
	baseline, err := uc.calculator.Evaluate(ctx, in)
	if err != nil {
		return nil, err
	}

	ev := &model.Evaluation{
		ID:             types.NewEvaluationID(),
		CreatedAt:      time.Now().UTC(),
		Baseline:       baseline,
		FinalRiskScore: baseline.RiskScore,
	}

	if err := uc.repo.Evaluation().Put(ctx, ev); err != nil {
		return nil, goerr.Wrap(err, "failed to store evaluation")
	}

	return ev, nil
}

// EvaluateWithAnalysis runs the physics pipeline, then augments the result
// with research context and a narrative annotation. Both collaborators
// degrade gracefully: a failure is logged and the evaluation proceeds with
// whatever succeeded, so the baseline is never blocked by a remote outage.
func (uc *CrashUseCase) EvaluateWithAnalysis(ctx context.Context, in *model.CrashInputs) (*model.Evaluation, error) {
	baseline, err := uc.calculator.Evaluate(ctx, in)
	if err != nil {
		return nil, err
	}

	ev := &model.Evaluation{
		ID:             types.NewEvaluationID(),
		CreatedAt:      time.Now().UTC(),
		Baseline:       baseline,
		FinalRiskScore: baseline.RiskScore,
	}

	if uc.research != nil {
		research, err := uc.research.Gather(ctx, in)
		if err != nil {
			logging.From(ctx).Warn("research gathering failed, continuing without it",
				slog.Any("error", err))
		} else {
			ev.Research = research
		}
	}

	if uc.narrative != nil {
		annotation, err := uc.narrative.Annotate(ctx, baseline, ev.Research)
		if err != nil {
			logging.From(ctx).Warn("narrative annotation failed, returning baseline",
				slog.Any("error", err))
		} else {
			annotation.RiskScore = uc.clampNarrativeScore(baseline.RiskScore, annotation.RawRiskScore)
			ev.Narrative = annotation
			ev.FinalRiskScore = annotation.RiskScore
		}
	}

	if err := uc.repo.Evaluation().Put(ctx, ev); err != nil {
		return nil, goerr.Wrap(err, "failed to store evaluation")
	}

	return ev, nil
}

// clampNarrativeScore bounds the proposed score to the allowed band around
// the baseline and keeps it on the 0-100 scale.
func (uc *CrashUseCase) clampNarrativeScore(baseline, proposed float64) float64 {
	low := baseline - uc.maxNarrativeAdjust
	high := baseline + uc.maxNarrativeAdjust

	clamped := proposed
	if clamped < low {
		clamped = low
	}
	if clamped > high {
		clamped = high
	}
	if clamped < 0 {
		clamped = 0
	}
	if clamped > 100 {
		clamped = 100
	}
	return engine.RoundScore(clamped)
}

// ListEvaluations returns a page of stored evaluations newest first, along
// with the total count matching the filter.
func (uc *CrashUseCase) ListEvaluations(ctx context.Context, filter *model.EvaluationFilter, limit, offset int) ([]*model.Evaluation, int, error) {
	evaluations, err := uc.repo.Evaluation().List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, goerr.Wrap(err, "failed to list evaluations")
	}

	total, err := uc.repo.Evaluation().Count(ctx, filter)
	if err != nil {
		return nil, 0, goerr.Wrap(err, "failed to count evaluations")
	}

	return evaluations, total, nil
}

// GetEvaluation retrieves one stored evaluation by ID
func (uc *CrashUseCase) GetEvaluation(ctx context.Context, id types.EvaluationID) (*model.Evaluation, error) {
	ev, err := uc.repo.Evaluation().Get(ctx, id)
	if err != nil {
		if errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound) {
			return nil, goerr.Wrap(ErrEvaluationNotFound, "no such evaluation", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get evaluation", goerr.V("id", id))
	}
	return ev, nil
}

// DeleteEvaluation removes one stored evaluation by ID
func (uc *CrashUseCase) DeleteEvaluation(ctx context.Context, id types.EvaluationID) error {
	if err := uc.repo.Evaluation().Delete(ctx, id); err != nil {
		if errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound) {
			return goerr.Wrap(ErrEvaluationNotFound, "no such evaluation", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to delete evaluation", goerr.V("id", id))
	}
	return nil
}
