// Package gemini implements the completion service using Google Gemini.
package gemini

import (
	"context"
	"errors"

	"github.com/fwojciec/sitechat"
	"google.golang.org/genai"
)

// DefaultModel is the model used for completions.
const DefaultModel = "gemini-2.5-flash"

// Ensure Completer implements sitechat.Completer at compile time.
var _ sitechat.Completer = (*Completer)(nil)

// Completer implements sitechat.Completer using Google Gemini.
type Completer struct {
	client *genai.Client
	model  string
}

// NewCompleter creates a new Completer. An empty model selects DefaultModel.
func NewCompleter(client *genai.Client, model string) *Completer {
	if model == "" {
		model = DefaultModel
	}
	return &Completer{client: client, model: model}
}

// Complete generates a response for the prompt.
func (c *Completer) Complete(ctx context.Context, prompt sitechat.Prompt) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt.User}},
		}},
		BuildConfig(prompt.System),
	)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", sitechat.Errorf(sitechat.EINTERNAL, "completion service error: %v", err)
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return "", err
		}
		return "", sitechat.Errorf(sitechat.EUNAVAILABLE, "completion service unreachable: %v", err)
	}
	if result == nil {
		return "", sitechat.Errorf(sitechat.EINTERNAL, "completion service returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for completion calls.
// Generation parameters are pinned so that behavior stays reproducible and
// output length stays bounded.
func BuildConfig(system string) *genai.GenerateContentConfig {
	temp := float32(0.7)
	topP := float32(0.7)
	topK := float32(50)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		},
		Temperature:     &temp,
		TopP:            &topP,
		TopK:            &topK,
		MaxOutputTokens: 512,
		StopSequences:   []string{"<|eot_id|>", "<|eom_id|>"},
	}
}
