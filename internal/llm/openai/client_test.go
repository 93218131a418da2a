package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"resume-critic/internal/llm"
)

type capturingClient struct {
	lastReq openai.ChatCompletionRequest
	content string
	err     error
}

func (c *capturingClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	c.lastReq = req
	if c.err != nil {
		return openai.ChatCompletionResponse{}, c.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: c.content},
		}},
	}, nil
}

func TestIsGPT5(t *testing.T) {
	tests := []struct {
		name  string
		model string
		want  bool
	}{
		{name: "gpt5", model: "gpt-5", want: true},
		{name: "gpt5 variant", model: "gpt-5-mini", want: true},
		{name: "gpt5 uppercase", model: " GPT-5o ", want: true},
		{name: "gpt4", model: "gpt-4o", want: false},
		{name: "empty", model: "", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := isGPT5(tt.model); got != tt.want {
				t.Fatalf("isGPT5(%q) = %v, want %v", tt.model, got, tt.want)
			}
		})
	}
}

func TestCritiqueReturnsTrimmedContent(t *testing.T) {
	cc := &capturingClient{content: "  - Lead with impact\n"}
	client := NewWithCompleter(cc, "gpt-4o-mini")

	out, err := client.Critique(context.Background(), llm.CritiqueInput{ResumeText: "Jane", Industry: "technology", Score: 60})
	if err != nil {
		t.Fatalf("critique: %v", err)
	}
	if out != "- Lead with impact" {
		t.Fatalf("unexpected output %q", out)
	}
	if cc.lastReq.Model != "gpt-4o-mini" || cc.lastReq.Temperature == 0 {
		t.Fatalf("unexpected request %+v", cc.lastReq)
	}
}

func TestCritiqueOmitsTemperatureForGPT5(t *testing.T) {
	cc := &capturingClient{content: "ok"}
	if _, err := NewWithCompleter(cc, "gpt-5-mini").Critique(context.Background(), llm.CritiqueInput{}); err != nil {
		t.Fatalf("critique: %v", err)
	}
	if cc.lastReq.Temperature != 0 {
		t.Fatalf("expected default temperature, got %v", cc.lastReq.Temperature)
	}
}

func TestCritiqueErrors(t *testing.T) {
	if _, err := NewWithCompleter(&capturingClient{content: "   "}, "m").Critique(context.Background(), llm.CritiqueInput{}); err == nil {
		t.Fatal("expected error for empty content")
	}
	_, err := NewWithCompleter(&capturingClient{err: context.DeadlineExceeded}, "m").Critique(context.Background(), llm.CritiqueInput{})
	if !errors.Is(err, context.DeadlineExceeded) || !strings.Contains(err.Error(), "timeout") {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestNewClientUsesBaseURL(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Tighten the summary."}}],"usage":{"prompt_tokens":10,"completion_tokens":4,"total_tokens":14}}`))
	}))
	defer server.Close()

	client, err := NewClient("test-key", "local-model", server.URL+"/v1/")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	out, err := client.Critique(context.Background(), llm.CritiqueInput{ResumeText: "Jane"})
	if err != nil {
		t.Fatalf("critique: %v", err)
	}
	if out != "Tighten the summary." {
		t.Fatalf("unexpected output %q", out)
	}
	if gotPath != "/v1/chat/completions" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotBody["model"] != "local-model" {
		t.Fatalf("unexpected model %v", gotBody["model"])
	}
}

func TestNewClientValidates(t *testing.T) {
	if _, err := NewClient("key", "", ""); err == nil {
		t.Fatal("expected model error")
	}
	if _, err := NewClient("", "model", ""); err == nil {
		t.Fatal("expected api key error")
	}
}
