package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var ErrUnavailable = errors.New("speech provider is not configured")

// Provider turns text into encoded audio.
type Provider interface {
	Synthesize(ctx context.Context, text string) (audio []byte, contentType string, err error)
}

type unavailable struct{}

func NewUnavailable() Provider { return unavailable{} }

func (unavailable) Synthesize(ctx context.Context, text string) ([]byte, string, error) {
	return nil, "", ErrUnavailable
}

// OpenAIProvider calls the audio/speech endpoint.
type OpenAIProvider struct {
	ApiKey  string
	BaseURL string
	Model   string
	Voice   string
	Client  *http.Client
}

func NewOpenAIProvider(apiKey, model, voice string) Provider {
	if apiKey == "" {
		return NewUnavailable()
	}
	if model == "" {
		model = "tts-1"
	}
	if voice == "" {
		voice = "alloy"
	}
	return &OpenAIProvider{
		ApiKey:  apiKey,
		BaseURL: "https://api.openai.com",
		Model:   model,
		Voice:   voice,
		Client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type speechRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format"`
}

func (p *OpenAIProvider) Synthesize(ctx context.Context, text string) ([]byte, string, error) {
	body, err := json.Marshal(speechRequest{
		Model:          p.Model,
		Input:          text,
		Voice:          p.Voice,
		ResponseFormat: "mp3",
	})
	if err != nil {
		return nil, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/v1/audio/speech", bytes.NewReader(body))
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Authorization", "Bearer "+p.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("openai speech request failed: %w", err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("openai speech error: status %d, body: %s", resp.StatusCode, string(audio))
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	return audio, contentType, nil
}
