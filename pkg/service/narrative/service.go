package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/reneeyyx/Safety1st/pkg/domain/interfaces"
	"github.com/reneeyyx/Safety1st/pkg/domain/model"
)

// client implements interfaces.NarrativeService
type client struct {
	llmClient gollem.LLMClient
}

// Option is a functional option for client configuration
type Option func(*client)

// New creates a narrative service backed by the provided LLM client
func New(llmClient gollem.LLMClient, opts ...Option) (interfaces.NarrativeService, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}

	c := &client{
		llmClient: llmClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Annotate asks the LLM to read a baseline result together with gathered
// research context and produce an adjusted score, an explanation, and
// gender bias insights. The returned score is the model's raw proposal;
// clamping against the baseline happens in the use case.
func (c *client) Annotate(ctx context.Context, result *model.CrashRiskResult, research *model.ResearchContext) (*model.NarrativeAnnotation, error) {
	if result == nil {
		return nil, goerr.New("baseline result is required")
	}

	session, err := c.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(buildResponseSchema()),
		gollem.WithSessionSystemPrompt(buildSystemPrompt()),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(buildUserPrompt(result, research)))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate content from LLM")
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.New("LLM returned no text")
	}

	var llmResp llmResponse
	raw := stripCodeFence(resp.Texts[0])
	if err := json.Unmarshal([]byte(raw), &llmResp); err != nil {
		return nil, goerr.Wrap(err, "failed to parse LLM response", goerr.V("response", resp.Texts[0]))
	}

	if llmResp.Confidence < 0 {
		llmResp.Confidence = 0
	}
	if llmResp.Confidence > 1 {
		llmResp.Confidence = 1
	}

	return &model.NarrativeAnnotation{
		RiskScore:    llmResp.RiskScore,
		RawRiskScore: llmResp.RiskScore,
		Confidence:   llmResp.Confidence,
		Explanation:  llmResp.Explanation,
		Insights:     llmResp.Insights,
	}, nil
}

type llmResponse struct {
	RiskScore   float64  `json:"risk_score"`
	Confidence  float64  `json:"confidence"`
	Explanation string   `json:"explanation"`
	Insights    []string `json:"gender_bias_insights"`
}

// stripCodeFence removes a markdown code fence if the model wrapped its JSON
// in one despite the JSON content type.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// buildSystemPrompt creates the fixed system prompt for result annotation
func buildSystemPrompt() string {
	var sb strings.Builder

	sb.WriteString("You are a vehicle crash safety analyst. You review physics-based occupant injury risk estimates and annotate them with context from published crash safety research.\n\n")
	sb.WriteString("## Instructions:\n\n")
	sb.WriteString("1. Read the baseline result: crash dynamics, injury criteria, per-channel probabilities and the combined 0-100 risk score.\n")
	sb.WriteString("2. Read the research context, which may describe injury odds disparities by occupant gender, pregnancy, and stature.\n")
	sb.WriteString("3. Propose an adjusted risk_score on the 0-100 scale. Stay close to the baseline; only move the score where the research gives a concrete reason.\n")
	sb.WriteString("4. Explain the adjustment in plain language a driver could understand.\n")
	sb.WriteString("5. List gender_bias_insights: concrete, research-backed notes on how this occupant's profile differs from the mid-size male assumption behind standard crash testing.\n")
	sb.WriteString("6. Report your confidence in [0,1].\n")

	return sb.String()
}

// buildUserPrompt serializes the baseline result and research context
func buildUserPrompt(result *model.CrashRiskResult, research *model.ResearchContext) string {
	var sb strings.Builder

	sb.WriteString("## Baseline Result:\n\n")
	if raw, err := json.MarshalIndent(result, "", "  "); err == nil {
		sb.Write(raw)
	}
	sb.WriteString("\n\n")

	if research != nil {
		sb.WriteString("## Research Context:\n\n")
		sb.WriteString(research.Summary)
		sb.WriteString("\n")
		for _, note := range research.GenderBiasNotes {
			fmt.Fprintf(&sb, "- %s\n", note)
		}
		if len(research.Sources) > 0 {
			sb.WriteString("\nSources:\n")
			for _, src := range research.Sources {
				fmt.Fprintf(&sb, "- %s\n", src)
			}
		}
	} else {
		sb.WriteString("## Research Context:\n\nNo research context available; annotate from the baseline alone.\n")
	}

	return sb.String()
}

// buildResponseSchema creates the JSON schema for structured output
func buildResponseSchema() *gollem.Parameter {
	return &gollem.Parameter{
		Title:       "CrashRiskAnnotation",
		Description: "Narrative annotation of a crash risk result",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"risk_score": {
				Type:        gollem.TypeNumber,
				Description: "Adjusted risk score on the 0-100 scale",
				Required:    true,
			},
			"confidence": {
				Type:        gollem.TypeNumber,
				Description: "Confidence in the adjustment, 0 to 1",
				Required:    true,
			},
			"explanation": {
				Type:        gollem.TypeString,
				Description: "Plain-language explanation of the adjustment",
				Required:    true,
			},
			"gender_bias_insights": {
				Type:        gollem.TypeArray,
				Description: "Research-backed notes on occupant profile vs crash test assumptions",
				Items:       &gollem.Parameter{Type: gollem.TypeString},
				Required:    true,
			},
		},
	}
}
