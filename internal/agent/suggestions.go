package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

const maxSuggestions = 4

// suggestions asks the engine for follow-up prompts. Any failure, including
// unparseable output, falls back to the fixed default set so a turn never
// ships without suggestions.
func (o *Orchestrator) suggestions(ctx context.Context, query, response string) []string {
	ctx, span := o.tracer.Start(ctx, "agent.suggestions")
	defer span.End()

	snippet := truncate(response, 200)
	prompt := fmt.Sprintf(`Based on this conversation:
Query: %s
Response: %s...

Generate 3-4 helpful follow-up questions or actions the user might want to take.
Return as a JSON array of strings.`, query, snippet)

	resp, err := o.model.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	})
	if err != nil || len(resp.Choices) == 0 {
		o.logger.Debug("suggestion generation failed, using defaults", zap.Error(err))
		return defaultSuggestions
	}

	parsed, ok := parseSuggestions(resp.Choices[0].Content)
	if !ok {
		o.logger.Debug("suggestion output unparseable, using defaults")
		return defaultSuggestions
	}
	return parsed
}

// truncate shortens s to at most limit bytes without splitting a rune, so
// the snippet fed back to the engine stays valid UTF-8.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

// parseSuggestions extracts a JSON string array, tolerating a markdown code
// fence around it.
func parseSuggestions(raw string) ([]string, bool) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var items []string
	if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
		return nil, false
	}
	if len(items) == 0 {
		return nil, false
	}
	if len(items) > maxSuggestions {
		items = items[:maxSuggestions]
	}
	return items, true
}
