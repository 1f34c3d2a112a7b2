package factory

import (
	"fmt"
	"time"

	"incorporate-run-be/pkg/llm"
	"incorporate-run-be/pkg/llm/gemini"
	"incorporate-run-be/pkg/llm/ollama"
)

type Config struct {
	Provider  string
	Model     string
	BaseURL   string
	GeminiKey string
	Notify    func(error, time.Duration)
}

// NewLLMProvider builds the configured backend wrapped in rate-limit retry.
// Missing credentials yield llm.Unavailable rather than an error so callers
// can degrade per call site.
func NewLLMProvider(cfg Config) (llm.LLMProvider, error) {
	var provider llm.LLMProvider
	switch cfg.Provider {
	case "gemini":
		if cfg.GeminiKey == "" {
			return llm.Unavailable{}, nil
		}
		provider = gemini.NewGeminiProvider(cfg.GeminiKey, cfg.Model)
	case "ollama":
		provider = ollama.New(cfg.BaseURL, cfg.Model)
	case "", "none":
		return llm.Unavailable{}, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
	return llm.WithRetry(provider, llm.DefaultRetryPolicy(), cfg.Notify), nil
}
