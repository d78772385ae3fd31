package model

// ResearchContext is a compact digest of third-party safety research pages
// relevant to one evaluation. It augments but never replaces the baseline.
type ResearchContext struct {
	Summary         string   `json:"summary"`
	GenderBiasNotes []string `json:"gender_bias_notes"`
	Sources         []string `json:"sources"`
}
