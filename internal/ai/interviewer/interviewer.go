package interviewer

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

// Interviewer generates interview questions and grades answers.
type Interviewer struct {
	client *openai.Client
}

func NewInterviewer(apiKey string) *Interviewer {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &Interviewer{
		client: &client,
	}
}

// GenerateQuestions produces count interview questions for a position. The
// job description is optional context.
func (i *Interviewer) GenerateQuestions(ctx context.Context, position, jobDescription string, locale kernel.Locale, count int) ([]string, error) {
	userPrompt := fmt.Sprintf(`Generate %d interview questions for a candidate applying to the position of %s.`, count, position)
	if jobDescription != "" {
		userPrompt += fmt.Sprintf("\nJob description for context:\n%s", jobDescription)
	}
	userPrompt += fmt.Sprintf(`

Mix behavioral and role-specific questions. %s
Respond in this JSON structure: {"questions": string[]}
Return ONLY the JSON object.`, languageLine(locale))

	completion, err := ai.Retry(ctx, ai.MaxAttempts, ai.BaseDelay, func(ctx context.Context) (*openai.ChatCompletion, error) {
		return i.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage("You are an experienced interviewer. Return ONLY valid JSON."),
				openai.UserMessage(userPrompt),
			},
			Model: "gpt-4o",
			ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
				OfJSONObject: &openai.ResponseFormatJSONObjectParam{
					Type: constant.JSONObject("json_object"),
				},
			},
			Temperature: openai.Float(0.6),
			MaxTokens:   openai.Int(1000),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("openai questions api error: %w", err)
	}

	if len(completion.Choices) == 0 {
		return nil, errors.New("no response from openai")
	}

	var parsed struct {
		Questions []string `json:"questions"`
	}
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse questions JSON: %w", err)
	}
	if len(parsed.Questions) == 0 {
		return nil, errors.New("model returned no questions")
	}

	return parsed.Questions, nil
}

// AnswerFeedback is the graded evaluation of one interview answer.
type AnswerFeedback struct {
	Score       int      `json:"score"`
	Feedback    string   `json:"feedback"`
	Suggestions []string `json:"suggestions"`
}

// EvaluateAnswer grades a candidate's answer to one question.
func (i *Interviewer) EvaluateAnswer(ctx context.Context, position, question, answer string, locale kernel.Locale) (*AnswerFeedback, error) {
	userPrompt := fmt.Sprintf(`A candidate for the position of %s was asked:

%s

They answered:

%s

Grade the answer. %s
Respond in this JSON structure:
{"score": number (0-10), "feedback": string (what was good and what was weak), "suggestions": string[] (how to improve)}
Return ONLY the JSON object.`, position, question, answer, languageLine(locale))

	completion, err := ai.Retry(ctx, ai.MaxAttempts, ai.BaseDelay, func(ctx context.Context) (*openai.ChatCompletion, error) {
		return i.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage("You are an experienced interviewer giving constructive feedback. Return ONLY valid JSON."),
				openai.UserMessage(userPrompt),
			},
			Model: "gpt-4o",
			ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
				OfJSONObject: &openai.ResponseFormatJSONObjectParam{
					Type: constant.JSONObject("json_object"),
				},
			},
			Temperature: openai.Float(0.3),
			MaxTokens:   openai.Int(800),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("openai feedback api error: %w", err)
	}

	if len(completion.Choices) == 0 {
		return nil, errors.New("no response from openai")
	}

	var feedback AnswerFeedback
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &feedback); err != nil {
		return nil, fmt.Errorf("failed to parse feedback JSON: %w", err)
	}

	if feedback.Score < 0 {
		feedback.Score = 0
	}
	if feedback.Score > 10 {
		feedback.Score = 10
	}

	return &feedback, nil
}

func languageLine(locale kernel.Locale) string {
	if locale.Normalize() == kernel.LocaleUkrainian {
		return "Write all string values in Ukrainian."
	}
	return "Write all string values in English."
}
