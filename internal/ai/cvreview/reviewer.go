package cvreview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"

	"github.com/Abraxas-365/careerkit/internal/ai"
	"github.com/Abraxas-365/careerkit/pkg/kernel"
)

// Reviewer grades a CV against a job description using OpenAI.
type Reviewer struct {
	client *openai.Client
}

func NewReviewer(apiKey string) *Reviewer {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &Reviewer{
		client: &client,
	}
}

// ReviewInput is the structured request for a CV review.
type ReviewInput struct {
	ResumeText     string
	JobDescription string
	Locale         kernel.Locale
}

// ReviewResult is the parsed model output.
type ReviewResult struct {
	MatchScore    int      `json:"match_score"`
	Strengths     []string `json:"strengths"`
	Gaps          []string `json:"gaps"`
	MissingSkills []string `json:"missing_skills"`
	Summary       string   `json:"summary"`
}

const systemPrompt = `You are an expert career assistant that evaluates how well a resume matches a job description. Base all reasoning only on the provided text and return ONLY valid JSON.`

// Review runs a single CV-vs-job-description evaluation, retrying transient
// upstream failures with exponential backoff.
func (r *Reviewer) Review(ctx context.Context, input ReviewInput) (*ReviewResult, error) {
	userPrompt := fmt.Sprintf(`Evaluate the resume below against the job description and respond in this JSON structure:

{
  "match_score": number (0-100),
  "strengths": string[] (experience and skills that match the role),
  "gaps": string[] (weak or missing areas),
  "missing_skills": string[] (required skills absent from the resume),
  "summary": string (short verdict, max 120 words)
}

%s

JOB DESCRIPTION:
%s

RESUME:
%s

Return ONLY the JSON object, no explanatory text.`,
		localeInstruction(input.Locale), input.JobDescription, input.ResumeText)

	completion, err := ai.Retry(ctx, ai.MaxAttempts, ai.BaseDelay, func(ctx context.Context) (*openai.ChatCompletion, error) {
		return r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(systemPrompt),
				openai.UserMessage(userPrompt),
			},
			Model: "gpt-4o",
			ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
				OfJSONObject: &openai.ResponseFormatJSONObjectParam{
					Type: constant.JSONObject("json_object"),
				},
			},
			Temperature: openai.Float(0.2),
			MaxTokens:   openai.Int(1500),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("openai review api error: %w", err)
	}

	if len(completion.Choices) == 0 {
		return nil, errors.New("no response from openai")
	}

	var result ReviewResult
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &result); err != nil {
		return nil, fmt.Errorf("failed to parse review JSON: %w", err)
	}

	if result.MatchScore < 0 {
		result.MatchScore = 0
	}
	if result.MatchScore > 100 {
		result.MatchScore = 100
	}

	return &result, nil
}

func localeInstruction(locale kernel.Locale) string {
	if locale.Normalize() == kernel.LocaleUkrainian {
		return "Write all string values in Ukrainian."
	}
	return "Write all string values in English."
}
