package router

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"github.com/vbaranceanu/book-advisor/pkg/library"
)

const toolName = "get_summary_by_title"

var summaryTool = llms.Tool{
	Type: "function",
	Function: &llms.FunctionDefinition{
		Name:        toolName,
		Description: "Returns the full summary for an exact book title (from the local library).",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{
					"type":        "string",
					"description": "Exact book title (e.g., '1984').",
				},
			},
			"required": []string{"title"},
		},
	},
}

// Router decides whether a query is a direct "give me the summary of X"
// request. It runs before the recommendation engine: when the model
// elects to call the summary tool, the router resolves it locally, asks
// for one followup completion and returns that text verbatim. Otherwise
// the caller falls through to the engine.
type Router struct {
	LLM     llms.Model
	Library *library.Library
	Logger  *slog.Logger
}

func New(llm llms.Model, lib *library.Library) *Router {
	return &Router{
		LLM:     llm,
		Library: lib,
		Logger:  slog.Default(),
	}
}

func (r *Router) systemPrompt() string {
	return fmt.Sprintf(`You are a book assistant. You have access to a tool called %s.
Call it only if the user explicitly asks for the summary of a specific book (exact/obvious title).
Available titles: %s
`, toolName, strings.Join(r.Library.Titles(), ", "))
}

// Route attempts the direct-summary path. The second return value says
// whether the query was handled; a transport failure on either call is
// logged and reported as "not handled" so the engine can take over.
func (r *Router) Route(ctx context.Context, query string) (string, bool) {
	history := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, r.systemPrompt()),
		llms.TextParts(llms.ChatMessageTypeHuman, query),
	}

	resp, err := r.LLM.GenerateContent(ctx, history,
		llms.WithTools([]llms.Tool{summaryTool}),
		llms.WithToolChoice("auto"),
	)
	if err != nil {
		r.Logger.Warn("Routing call failed, falling through to recommendation", "error", err)
		return "", false
	}
	if len(resp.Choices) == 0 {
		return "", false
	}

	choice := resp.Choices[0]
	if len(choice.ToolCalls) == 0 {
		return "", false
	}

	assistant := llms.MessageContent{Role: llms.ChatMessageTypeAI}
	for _, call := range choice.ToolCalls {
		assistant.Parts = append(assistant.Parts, call)
	}
	history = append(history, assistant)

	for _, call := range choice.ToolCalls {
		if call.FunctionCall == nil || call.FunctionCall.Name != toolName {
			continue
		}
		title := parseTitleArgument(call.FunctionCall.Arguments)
		r.Logger.Info("Resolving summary tool call", "title", title)

		history = append(history, llms.MessageContent{
			Role: llms.ChatMessageTypeTool,
			Parts: []llms.ContentPart{
				llms.ToolCallResponse{
					ToolCallID: call.ID,
					Name:       toolName,
					Content:    r.Library.LookupMessage(title),
				},
			},
		})
	}

	followup, err := r.LLM.GenerateContent(ctx, history)
	if err != nil {
		r.Logger.Warn("Tool followup call failed, falling through to recommendation", "error", err)
		return "", false
	}
	if len(followup.Choices) == 0 {
		return "", false
	}

	return followup.Choices[0].Content, true
}

// parseTitleArgument extracts the title from a tool-call argument
// payload, tolerating a bare JSON string in place of the object form.
func parseTitleArgument(arguments string) string {
	var args struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err == nil {
		return args.Title
	}

	var bare string
	if err := json.Unmarshal([]byte(arguments), &bare); err == nil {
		return bare
	}

	return ""
}
