// Package ai builds prompts for study-material generation, rotates
// through the upstream key pool, and extracts structured results from
// the model's free-text replies.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrNoContent = errors.New("content is required")

const (
	defaultCount    = 5
	summaryFallback = "Could not generate summary"
)

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Generator is the generation facade: one pipeline shared by the three
// task variants, which differ only in prompt and output shape.
type Generator struct {
	keys     *KeyRotator
	upstream Upstream
}

func NewGenerator(keys *KeyRotator, upstream Upstream) *Generator {
	return &Generator{keys: keys, upstream: upstream}
}

// Summary returns the model's reply verbatim, or a fixed placeholder
// when the reply carries no text at all.
func (g *Generator) Summary(ctx context.Context, content string) (string, error) {
	if content == "" {
		return "", ErrNoContent
	}
	prompt := "Summarize the following text in a clear and concise way:\n\n" + content
	text, err := g.upstream.GenerateText(ctx, g.keys.Next(), prompt)
	if err != nil {
		return "", err
	}
	if text == "" {
		return summaryFallback, nil
	}
	return text, nil
}

// Quiz generates n multiple choice questions (5 when n is not
// positive). Malformed model output degrades to an empty slice, not an
// error; only upstream failures are returned as errors.
func (g *Generator) Quiz(ctx context.Context, content string, n int) ([]QuizQuestion, error) {
	if content == "" {
		return nil, ErrNoContent
	}
	if n <= 0 {
		n = defaultCount
	}
	prompt := fmt.Sprintf(`Generate %d multiple choice quiz questions based on the following content. Format as JSON array with structure: [{"question": "...", "options": ["a", "b", "c", "d"], "correctAnswer": 0}]

Content:
%s`, n, content)
	text, err := g.upstream.GenerateText(ctx, g.keys.Next(), prompt)
	if err != nil {
		return nil, err
	}
	return extractJSONArray[QuizQuestion](text), nil
}

// Flashcards generates n front/back cards (5 when n is not positive),
// with the same lenient extraction as Quiz.
func (g *Generator) Flashcards(ctx context.Context, content string, n int) ([]Flashcard, error) {
	if content == "" {
		return nil, ErrNoContent
	}
	if n <= 0 {
		n = defaultCount
	}
	prompt := fmt.Sprintf(`Generate %d flashcards based on the following content. Format as JSON array with structure: [{"front": "question", "back": "answer"}]

Content:
%s`, n, content)
	text, err := g.upstream.GenerateText(ctx, g.keys.Next(), prompt)
	if err != nil {
		return nil, err
	}
	return extractJSONArray[Flashcard](text), nil
}

// extractJSONArray parses the outermost [...] span of text (first "["
// through last "]"). A missing span or malformed contents yields an
// empty slice, never an error: model prose is unreliable by nature and
// a shape miss is not worth failing the request over.
func extractJSONArray[T any](text string) []T {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end < start {
		return []T{}
	}
	var items []T
	if err := json.Unmarshal([]byte(text[start:end+1]), &items); err != nil || items == nil {
		return []T{}
	}
	return items
}
