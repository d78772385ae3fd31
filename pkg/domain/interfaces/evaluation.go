package interfaces

import (
	"context"

	"github.com/reneeyyx/Safety1st/pkg/domain/model"
	"github.com/reneeyyx/Safety1st/pkg/domain/types"
)

type EvaluationRepository interface {
	// Put stores an evaluation under its ID, overwriting any existing record
	Put(ctx context.Context, ev *model.Evaluation) error

	// Get retrieves an evaluation by ID
	Get(ctx context.Context, id types.EvaluationID) (*model.Evaluation, error)

	// List retrieves evaluations newest first. A nil filter matches all;
	// limit <= 0 means no limit
	List(ctx context.Context, filter *model.EvaluationFilter, limit, offset int) ([]*model.Evaluation, error)

	// Count returns the number of evaluations matching the filter
	Count(ctx context.Context, filter *model.EvaluationFilter) (int, error)

	// Delete removes an evaluation by ID
	Delete(ctx context.Context, id types.EvaluationID) error
}
