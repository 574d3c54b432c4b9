// Package extract turns free-form text into concepts and relationships
// using the LLM provider.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkg/errors"

	"github.com/graphweave/graphweave/plugin/ai"
)

// Relation is one extracted connection between two concepts.
type Relation struct {
	Source       string `json:"source"`
	Target       string `json:"target"`
	Relationship string `json:"relationship"`
}

// Result is the parsed model output for one extraction. Immutable once
// returned; every request produces a fresh Result.
type Result struct {
	Concepts      []string   `json:"concepts"`
	Relationships []Relation `json:"relationships"`
}

// IsEmpty reports whether the extraction yielded nothing to graph.
func (r *Result) IsEmpty() bool {
	return len(r.Concepts) == 0 && len(r.Relationships) == 0
}

const systemPrompt = "You are a helpful assistant that outputs only valid JSON."

const extractionPrompt = `You are an expert Knowledge Graph Extractor.
Analyze the following text and extract key concepts and their relationships.

Return ONLY a JSON object with this exact structure:
{
  "concepts": ["Concept 1", "Concept 2"],
  "relationships": [
    {"source": "Concept 1", "target": "Concept 2", "relationship": "verb phrase"}
  ]
}

Text to analyze:
%s`

// Extractor calls the LLM and parses its structured response.
type Extractor struct {
	llm ai.LLMService
}

// NewExtractor creates a new Extractor.
func NewExtractor(llm ai.LLMService) *Extractor {
	return &Extractor{llm: llm}
}

// Extract performs one extraction. The caller is responsible for rejecting
// empty text before calling; credential resolution also happens upstream.
// Exactly one outbound call per invocation, no retry, no caching.
func (e *Extractor) Extract(ctx context.Context, credential, text string) (*Result, error) {
	messages := []ai.Message{
		ai.SystemPrompt(systemPrompt),
		ai.UserMessage(fmt.Sprintf(extractionPrompt, text)),
	}

	response, err := e.llm.ChatJSON(ctx, credential, messages)
	if err != nil {
		return nil, errors.Wrap(err, "Groq API request failed")
	}

	result, err := parseResult(response)
	if err != nil {
		slog.Debug("unparseable extraction response", "response", truncateLog(response, 200))
		return nil, errors.Wrap(err, "model returned invalid JSON")
	}
	return result, nil
}

// parseResult parses the JSON object from the model response. Missing keys
// are empty sequences, not errors.
func parseResult(response string) (*Result, error) {
	cleaned := cleanJSONObject(response)

	var result Result
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// cleanJSONObject strips markdown code fences and any prose surrounding the
// JSON object. JSON mode makes this rare but smaller models still wrap
// their output occasionally.
func cleanJSONObject(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start >= 0 && end > start {
		response = response[start : end+1]
	}
	return response
}

// truncateLog truncates string for logging.
func truncateLog(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
