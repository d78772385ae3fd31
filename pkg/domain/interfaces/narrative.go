package interfaces

import (
	"context"

	"github.com/reneeyyx/Safety1st/pkg/domain/model"
)

// NarrativeService produces an LLM-written annotation of a baseline result.
// The annotation may nudge the risk score; bounding that adjustment is the
// caller's responsibility.
type NarrativeService interface {
	Annotate(ctx context.Context, result *model.CrashRiskResult, research *model.ResearchContext) (*model.NarrativeAnnotation, error)
}
