package letterwriter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/Abraxas-365/careerkit/internal/ai"
	"github.com/Abraxas-365/careerkit/pkg/kernel"
)

// Writer drafts cover letters from structured form data.
type Writer struct {
	client *openai.Client
}

func NewWriter(apiKey string) *Writer {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &Writer{
		client: &client,
	}
}

// DraftInput is the structured request for a cover letter draft.
type DraftInput struct {
	Position   string
	Company    string
	Recipient  string
	Highlights []string
	Locale     kernel.Locale
}

// Draft generates a cover letter body. The output is plain text, ready to be
// stored or edited by the user.
func (w *Writer) Draft(ctx context.Context, input DraftInput) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a professional cover letter for the position of %s", input.Position)
	if input.Company != "" {
		fmt.Fprintf(&b, " at %s", input.Company)
	}
	b.WriteString(".\n")
	if input.Recipient != "" {
		fmt.Fprintf(&b, "Address it to %s.\n", input.Recipient)
	}
	if len(input.Highlights) > 0 {
		b.WriteString("Work in these candidate highlights naturally:\n")
		for _, h := range input.Highlights {
			fmt.Fprintf(&b, "- %s\n", h)
		}
	}
	if input.Locale.Normalize() == kernel.LocaleUkrainian {
		b.WriteString("Write the letter in Ukrainian.\n")
	} else {
		b.WriteString("Write the letter in English.\n")
	}
	b.WriteString("Keep it under 300 words. Return only the letter body, no subject line and no commentary.")

	completion, err := ai.Retry(ctx, ai.MaxAttempts, ai.BaseDelay, func(ctx context.Context) (*openai.ChatCompletion, error) {
		return w.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage("You are a professional career writer producing concise, personalized cover letters."),
				openai.UserMessage(b.String()),
			},
			Model:       "gpt-4o",
			Temperature: openai.Float(0.7),
			MaxTokens:   openai.Int(800),
		})
	})
	if err != nil {
		return "", fmt.Errorf("openai letter api error: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", errors.New("no response from openai")
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
