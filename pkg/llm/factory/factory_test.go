package factory

import (
	"testing"

	"incorporate-run-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	p, err := NewLLMProvider(Config{Provider: "gemini"})
	require.NoError(t, err)
	assert.IsType(t, llm.Unavailable{}, p)

	p, err = NewLLMProvider(Config{Provider: ""})
	require.NoError(t, err)
	assert.IsType(t, llm.Unavailable{}, p)

	p, err = NewLLMProvider(Config{Provider: "gemini", GeminiKey: "k"})
	require.NoError(t, err)
	assert.NotEqual(t, llm.Unavailable{}, p)

	_, err = NewLLMProvider(Config{Provider: "mystery"})
	assert.Error(t, err)
}
