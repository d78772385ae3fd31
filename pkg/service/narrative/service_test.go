package narrative_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/m-mizutani/gt"
	"github.com/reneeyyx/Safety1st/pkg/domain/model"
	"github.com/reneeyyx/Safety1st/pkg/service/narrative"
)

func sampleResult() *model.CrashRiskResult {
	return &model.CrashRiskResult{
		CalibrationSet:     "test_set",
		OverallProbability: 0.31,
		RiskScore:          31.0,
		Criteria: model.InjuryCriteria{
			HIC15: 412.5,
			Nij:   0.62,
		},
	}
}

func TestNew(t *testing.T) {
	t.Run("nil LLM client is rejected", func(t *testing.T) {
		_, err := narrative.New(nil)
		gt.Error(t, err)
	})
}

func TestBuildUserPrompt(t *testing.T) {
	t.Run("includes baseline and research", func(t *testing.T) {
		research := &model.ResearchContext{
			Summary:         "Female drivers show higher odds of lower-limb injury.",
			GenderBiasNotes: []string{"crash test dummies model the mid-size male"},
			Sources:         []string{"https://example.org/iihs"},
		}

		prompt := narrative.BuildUserPrompt(sampleResult(), research)
		gt.B(t, strings.Contains(prompt, "Baseline Result")).True()
		gt.B(t, strings.Contains(prompt, "412.5")).True()
		gt.B(t, strings.Contains(prompt, "Female drivers")).True()
		gt.B(t, strings.Contains(prompt, "https://example.org/iihs")).True()
	})

	t.Run("handles missing research", func(t *testing.T) {
		prompt := narrative.BuildUserPrompt(sampleResult(), nil)
		gt.B(t, strings.Contains(prompt, "No research context available")).True()
	})
}

func TestBuildSystemPrompt(t *testing.T) {
	prompt := narrative.BuildSystemPrompt()
	gt.B(t, strings.Contains(prompt, "risk_score")).True()
	gt.B(t, strings.Contains(prompt, "gender_bias_insights")).True()
}

func TestBuildResponseSchema(t *testing.T) {
	schema := narrative.BuildResponseSchema()
	gt.V(t, schema.Type).Equal(gollem.TypeObject)

	for _, name := range []string{"risk_score", "confidence", "explanation", "gender_bias_insights"} {
		prop, ok := schema.Properties[name]
		gt.B(t, ok).True()
		gt.B(t, prop.Required).True()
	}
}

func TestStripCodeFence(t *testing.T) {
	gt.V(t, narrative.StripCodeFence("{\"a\":1}")).Equal("{\"a\":1}")
	gt.V(t, narrative.StripCodeFence("```json\n{\"a\":1}\n```")).Equal("{\"a\":1}")
	gt.V(t, narrative.StripCodeFence("```\n{\"a\":1}\n```")).Equal("{\"a\":1}")
}

func TestAnnotate_WithRealGemini(t *testing.T) {
	projectID := os.Getenv("TEST_GEMINI_PROJECT")
	if projectID == "" {
		t.Skip("TEST_GEMINI_PROJECT not set")
	}

	location := os.Getenv("TEST_GEMINI_LOCATION")
	if location == "" {
		t.Skip("TEST_GEMINI_LOCATION not set")
	}

	ctx := context.Background()

	llmClient, err := gemini.New(ctx, projectID, location)
	gt.NoError(t, err).Required()

	svc, err := narrative.New(llmClient)
	gt.NoError(t, err).Required()

	annotation, err := svc.Annotate(ctx, sampleResult(), &model.ResearchContext{
		Summary: "Belted female drivers show elevated odds of moderate injury in frontal crashes.",
	})
	gt.NoError(t, err).Required()

	gt.B(t, annotation.RiskScore >= 0 && annotation.RiskScore <= 100).True()
	gt.B(t, annotation.Confidence >= 0 && annotation.Confidence <= 1).True()
	gt.B(t, annotation.Explanation != "").True()
}
