// Package ai provides the LLM client used by the extraction pipeline.
package ai

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"
)

// Message represents a chat message.
type Message struct {
	Role    string // system, user, assistant
	Content string
}

// LLMService is the LLM service interface. The credential is passed per
// call because it may be supplied by the request rather than the process
// environment.
type LLMService interface {
	// ChatJSON performs a synchronous chat completion constrained to a
	// JSON object response with sampling disabled.
	ChatJSON(ctx context.Context, credential string, messages []Message) (string, error)
}

// Config holds the LLM provider configuration.
type Config struct {
	BaseURL   string
	ChatModel string
	Timeout   time.Duration
}

// DefaultConfig returns the default Groq configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:   "https://api.groq.com/openai/v1",
		ChatModel: "llama-3.3-70b-versatile",
		Timeout:   60 * time.Second,
	}
}

type groqService struct {
	config *Config
}

// NewGroqService creates an LLMService backed by the Groq OpenAI-compatible
// API. There is deliberately no retry loop: a failed call surfaces
// immediately and the user triggers a new run.
func NewGroqService(cfg *Config) LLMService {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = "llama-3.3-70b-versatile"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &groqService{config: cfg}
}

func (s *groqService) ChatJSON(ctx context.Context, credential string, messages []Message) (string, error) {
	if credential == "" {
		return "", errors.New("missing API credential")
	}

	clientConfig := openai.DefaultConfig(credential)
	clientConfig.BaseURL = s.config.BaseURL
	client := openai.NewClientWithConfig(clientConfig)

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	llmMessages := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		llmMessages[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	req := openai.ChatCompletionRequest{
		Model:    s.config.ChatModel,
		Messages: llmMessages,
		// A literal zero is dropped by the omitempty marshalling; the
		// smallest positive value still disables sampling randomness.
		Temperature: math.SmallestNonzeroFloat32,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", errors.Wrap(err, "chat completion failed")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty chat response")
	}
	return resp.Choices[0].Message.Content, nil
}

// SystemPrompt creates a system message.
func SystemPrompt(content string) Message {
	return Message{Role: "system", Content: content}
}

// UserMessage creates a user message.
func UserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}
