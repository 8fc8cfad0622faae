package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Upstream is the generative-language service: prompt in, free text
// out. A non-nil error means the transport or the API itself failed;
// the content of the text is never judged here.
type Upstream interface {
	GenerateText(ctx context.Context, apiKey, prompt string) (string, error)
}

// Gemini calls the Gemini API. A fresh client is built per call because
// each call authenticates with a different rotated key.
type Gemini struct {
	Model string
}

func NewGemini() Gemini {
	return Gemini{Model: "gemini-2.5-flash"}
}

func (g Gemini) GenerateText(ctx context.Context, apiKey, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, g.Model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
