package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"incorporate-run-be/pkg/llm"
)

const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "llama3.1"
)

// Provider talks to a local Ollama server over its /api/chat endpoint with
// streaming off. Structured output is requested by passing the schema as the
// "format" field.
type Provider struct {
	baseURL string
	model   string
	client  *http.Client
}

var _ llm.LLMProvider = (*Provider)(nil)

func New(baseURL, model string) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Provider{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		// local models are slow on the first call while the weights load
		client: &http.Client{Timeout: 2 * time.Minute},
	}
}

type chatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type sampling struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type chatRequest struct {
	Model    string                 `json:"model"`
	Messages []chatTurn             `json:"messages"`
	Stream   bool                   `json:"stream"`
	Format   map[string]interface{} `json:"format,omitempty"`
	Options  sampling               `json:"options"`
}

type chatReply struct {
	Message chatTurn `json:"message"`
	Error   string   `json:"error,omitempty"`
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	body, err := json.Marshal(p.buildRequest(history, llm.ApplyOptions(opts...)))
	if err != nil {
		return "", fmt.Errorf("ollama: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ollama: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ollama: read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", &llm.RateLimitError{Provider: "ollama", Body: string(raw)}
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("ollama: status %d: %s", resp.StatusCode, raw)
	}

	var reply chatReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return "", fmt.Errorf("ollama: decode response: %w", err)
	}
	if reply.Error != "" {
		return "", fmt.Errorf("ollama: %s", reply.Error)
	}
	return reply.Message.Content, nil
}

func (p *Provider) buildRequest(history []llm.Message, options *llm.Options) chatRequest {
	turns := make([]chatTurn, 0, len(history))
	for _, m := range history {
		role := m.Role
		if role == "model" {
			role = "assistant"
		}
		turns = append(turns, chatTurn{Role: role, Content: m.Content})
	}

	model := p.model
	if options.Model != "" {
		model = options.Model
	}
	return chatRequest{
		Model:    model,
		Messages: turns,
		Format:   options.JSONSchema,
		Options:  sampling{Temperature: options.Temperature, NumPredict: options.MaxTokens},
	}
}
