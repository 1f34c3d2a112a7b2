package embedding

import (
	"context"
	"errors"
)

// ErrDisabled is returned by the provider used when no embedding backend is configured.
var ErrDisabled = errors.New("embedding provider is not configured")

const (
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
)

type EmbeddingResponseEmbedding struct {
	Values []float32 `json:"values"`
}

type EmbeddingResponse struct {
	Embedding EmbeddingResponseEmbedding `json:"embedding"`
}

// EmbeddingProvider defines the interface for generating text embeddings
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error)
}

type disabledProvider struct{}

func NewDisabledProvider() EmbeddingProvider {
	return disabledProvider{}
}

func (disabledProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	return nil, ErrDisabled
}

// NewProvider picks the backend named by providerType, falling back to the
// disabled provider when the chosen backend has no credentials.
func NewProvider(providerType, geminiKey, ollamaBaseURL, ollamaModel string) EmbeddingProvider {
	switch providerType {
	case "ollama":
		return NewOllamaProvider(ollamaBaseURL, ollamaModel)
	case "gemini", "":
		if geminiKey == "" {
			return NewDisabledProvider()
		}
		return NewGeminiProvider(geminiKey)
	default:
		return NewDisabledProvider()
	}
}
