package openai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"resume-critic/internal/llm"
	"resume-critic/internal/shared/telemetry"
)

// ChatCompleter is the subset of *openai.Client used here.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client implements llm.Client using OpenAI-compatible chat completions.
type Client struct {
	chat  ChatCompleter
	model string
}

// NewClient constructs a client for the OpenAI API or any compatible base URL.
func NewClient(apiKey, model, baseURL string) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("LLM_API_KEY is required")
	}
	cfg := openai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return NewWithCompleter(openai.NewClientWithConfig(cfg), model), nil
}

// NewWithCompleter wraps an existing chat completer.
func NewWithCompleter(chat ChatCompleter, model string) *Client {
	return &Client{chat: chat, model: strings.TrimSpace(model)}
}

// Critique asks the model for free-text commentary.
func (c *Client) Critique(ctx context.Context, input llm.CritiqueInput) (string, error) {
	messages := BuildPrompt(input)
	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	}
	if !isGPT5(c.model) {
		req.Temperature = 0.2
	}

	resp, err := c.chat.CreateChatCompletion(ctx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("openai request timeout: %w", err)
		}
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai response missing choices")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("openai response empty content")
	}

	telemetry.Info("llm.response", map[string]any{
		"model":             c.model,
		"prompt_hash":       hashPromptString(promptStringFromMessages(messages)),
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
		"total_tokens":      resp.Usage.TotalTokens,
	})
	return content, nil
}

// isGPT5 reports models that reject a non-default temperature.
func isGPT5(model string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(model)), "gpt-5")
}

func hashPromptString(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}

var _ llm.Client = (*Client)(nil)
