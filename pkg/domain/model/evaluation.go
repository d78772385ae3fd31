package model

import (
	"time"

	"github.com/reneeyyx/Safety1st/pkg/domain/types"
)

// Evaluation is the persisted record of one crash risk evaluation: the
// baseline result plus optional collaborator augmentations. The baseline is
// always present and valid on its own; Narrative and Research may be nil
// when those collaborators were skipped or failed.
type Evaluation struct {
	ID        types.EvaluationID
	CreatedAt time.Time

	Baseline  *CrashRiskResult
	Narrative *NarrativeAnnotation
	Research  *ResearchContext

	// FinalRiskScore is the narrative-adjusted score when a narrative
	// annotation exists, otherwise the baseline score
	FinalRiskScore float64
}

// EvaluationFilter narrows List queries over stored evaluations
type EvaluationFilter struct {
	CrashSide types.CrashSide
	Gender    types.Gender
	Pregnant  *bool
}
