package clients

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAI builds a chat client for the given model against an
// OpenAI-compatible endpoint. An empty baseURL falls back to the
// public API.
func OpenAI(apiKey, baseURL, model string) (*openai.LLM, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(model),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(strings.TrimRight(baseURL, "/")+"/v1"))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}
	return llm, nil
}
