package llm

import (
	"context"
	"errors"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

var ErrNoCompletion = errors.New("no completion returned")

// Client sinh câu trả lời cho một message với system prompt cố định
type Client interface {
	Name() string
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
