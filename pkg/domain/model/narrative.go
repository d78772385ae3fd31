package model

// NarrativeAnnotation is the generative-language layer's reading of a
// baseline result. The score it proposes is bounded by the caller relative
// to the baseline; the annotation never replaces the baseline record.
type NarrativeAnnotation struct {
	// RiskScore is the narrative-adjusted 0-100 score, already clamped to
	// the allowed band around the baseline by the use case
	RiskScore float64 `json:"risk_score"`
	// RawRiskScore is the unclamped score the model proposed
	RawRiskScore float64 `json:"raw_risk_score"`
	// Confidence is the model's self-reported confidence in [0,1]
	Confidence  float64  `json:"confidence"`
	Explanation string   `json:"explanation"`
	Insights    []string `json:"gender_bias_insights"`
}
