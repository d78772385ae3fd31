package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/reneeyyx/Safety1st/pkg/domain/model"
	"github.com/reneeyyx/Safety1st/pkg/domain/types"
)

type evaluationRepository struct {
	mu          sync.RWMutex
	evaluations map[types.EvaluationID]*model.Evaluation
}

func newEvaluationRepository() *evaluationRepository {
	return &evaluationRepository{
		evaluations: make(map[types.EvaluationID]*model.Evaluation),
	}
}

func (r *evaluationRepository) Put(ctx context.Context, ev *model.Evaluation) error {
	if err := ev.ID.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *ev
	r.evaluations[ev.ID] = &copied
	return nil
}

func (r *evaluationRepository) Get(ctx context.Context, id types.EvaluationID) (*model.Evaluation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ev, exists := r.evaluations[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "evaluation not found", goerr.V("id", id))
	}

	// Return a copy to prevent external modification
	copied := *ev
	return &copied, nil
}

func (r *evaluationRepository) List(ctx context.Context, filter *model.EvaluationFilter, limit, offset int) ([]*model.Evaluation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*model.Evaluation, 0, len(r.evaluations))
	for _, ev := range r.evaluations {
		if !matchesFilter(ev, filter) {
			continue
		}
		copied := *ev
		matched = append(matched, &copied)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if offset > 0 {
		if offset >= len(matched) {
			return []*model.Evaluation{}, nil
		}
		matched = matched[offset:]
	}
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}

	return matched, nil
}

func (r *evaluationRepository) Count(ctx context.Context, filter *model.EvaluationFilter) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int
	for _, ev := range r.evaluations {
		if matchesFilter(ev, filter) {
			count++
		}
	}
	return count, nil
}

func (r *evaluationRepository) Delete(ctx context.Context, id types.EvaluationID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.evaluations[id]; !exists {
		return goerr.Wrap(ErrNotFound, "evaluation not found", goerr.V("id", id))
	}

	delete(r.evaluations, id)
	return nil
}

func matchesFilter(ev *model.Evaluation, filter *model.EvaluationFilter) bool {
	if filter == nil || ev.Baseline == nil {
		return filter == nil
	}
	in := ev.Baseline.Inputs
	if filter.CrashSide != "" && in.CrashSide != filter.CrashSide {
		return false
	}
	if filter.Gender != "" && in.Gender != filter.Gender {
		return false
	}
	if filter.Pregnant != nil && in.Pregnant != *filter.Pregnant {
		return false
	}
	return true
}
