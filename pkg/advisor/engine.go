package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/vbaranceanu/book-advisor/pkg/retrieval"
)

const recoSystemPrompt = `You are a reading advisor. You receive a user request and context fragments from documents (RAG).
Your job: recommend ONE book from the context. If there's an exact tie, you may include a second candidate.

Return STRICT JSON ONLY, no prose, matching this schema:
{
  "titles": ["Primary Title", "Optional Second Title"],
  "pitch": "One-sentence recommendation for the primary title.",
  "reasons": ["Short reason 1", "Short reason 2", "Optional reason 3"],
  "needs_clarification": false,
  "clarification_question": null
}

Rules:
- Titles must be exact strings as they appear in context.
- Keep 'reasons' short (bullet-style).
- If context is insufficient, set needs_clarification=true and provide a single brief question.
- Answer in English.
`

// Engine runs the retrieval-augmented recommendation pipeline: retrieve
// top-k passages, prompt the model, parse the structured reply.
type Engine struct {
	LLM       llms.Model
	Retriever retrieval.Retriever
	TopK      int
	Logger    *slog.Logger

	retryDelay time.Duration
}

func NewEngine(llm llms.Model, retriever retrieval.Retriever, topK int) *Engine {
	if topK <= 0 {
		topK = 4
	}
	return &Engine{
		LLM:        llm,
		Retriever:  retriever,
		TopK:       topK,
		Logger:     slog.Default(),
		retryDelay: time.Second,
	}
}

// Recommend answers a user query with a structured recommendation plus
// the passages it was grounded on, so the caller can derive the source
// list. A transport failure is returned as an error; a malformed model
// reply is recovered through the bold-span fallback and never surfaces
// as an error.
func (e *Engine) Recommend(ctx context.Context, query string) (Recommendation, []retrieval.Passage, error) {
	passages, err := e.Retriever.Search(ctx, query, e.TopK)
	if err != nil {
		return Recommendation{}, nil, fmt.Errorf("retrieval failed: %w", err)
	}

	input := fmt.Sprintf("User request: %s\n\nContext fragments:\n%s", query, FormatContext(passages))

	raw, err := e.generateWithRetry(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, recoSystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, input),
	})
	if err != nil {
		return Recommendation{}, passages, fmt.Errorf("recommendation call failed: %w", err)
	}

	rec, parseErr := ParseRecommendation(raw)
	if parseErr != nil {
		e.Logger.Warn("Model reply was not strict JSON, using fallback extraction", "error", parseErr)
		rec = FallbackRecommendation(raw)
	}

	return rec, passages, nil
}

// generateWithRetry calls the model up to 3 times, backing off linearly
// on transport errors. Malformed content is not retried here; the parse
// fallback handles it.
func (e *Engine) generateWithRetry(ctx context.Context, prompts []llms.MessageContent) (string, error) {
	maxRetries := 3
	var lastErr error

	for i := 0; i < maxRetries; i++ {
		if i > 0 {
			e.Logger.Warn("Retrying LLM generation", "attempt", i+1, "last_error", lastErr)
			time.Sleep(e.retryDelay * time.Duration(i))
		}

		resp, err := e.LLM.GenerateContent(ctx, prompts, llms.WithJSONMode())
		if err != nil {
			lastErr = fmt.Errorf("llm generation failed: %w", err)
			continue
		}

		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("llm returned no choices")
			continue
		}

		return resp.Choices[0].Content, nil
	}

	return "", fmt.Errorf("operation failed after %d retries: %w", maxRetries, lastErr)
}

// ParseRecommendation parses the raw model reply strictly as JSON.
func ParseRecommendation(raw string) (Recommendation, error) {
	var rec Recommendation
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return Recommendation{}, fmt.Errorf("json parse error: %w", err)
	}
	return rec, nil
}

var boldSpanRe = regexp.MustCompile(`\*\*(.+?)\*\*`)

// FallbackRecommendation salvages a title from free text by scanning for
// the first bold-emphasis span. No span means an empty-titles result,
// which downstream treats as "couldn't pick", not as a failure.
func FallbackRecommendation(raw string) Recommendation {
	var titles []string
	if m := boldSpanRe.FindStringSubmatch(raw); m != nil {
		if title := strings.TrimSpace(m[1]); title != "" {
			titles = []string{title}
		}
	}
	return Recommendation{Titles: titles}
}
