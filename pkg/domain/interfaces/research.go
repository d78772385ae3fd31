package interfaces

import (
	"context"

	"github.com/reneeyyx/Safety1st/pkg/domain/model"
)

// ResearchService gathers published crash safety context relevant to the
// given scenario. Implementations should degrade gracefully: a scenario with
// no retrievable sources still returns a usable fallback context.
type ResearchService interface {
	Gather(ctx context.Context, in *model.CrashInputs) (*model.ResearchContext, error)
}
