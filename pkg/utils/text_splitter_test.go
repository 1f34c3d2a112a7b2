package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTextShortInput(t *testing.T) {
	assert.Equal(t, []string{"hello"}, SplitText("hello", 10, 2))
	assert.Equal(t, []string{""}, SplitText("", 10, 2))
}

func TestSplitTextOverlap(t *testing.T) {
	chunks := SplitText("abcdefghij", 4, 1)
	assert.Equal(t, []string{"abcd", "defg", "ghij"}, chunks)
}

func TestSplitTextCountsRunes(t *testing.T) {
	text := strings.Repeat("é", 6)
	chunks := SplitText(text, 6, 0)
	assert.Equal(t, []string{text}, chunks)

	chunks = SplitText(text, 4, 0)
	assert.Equal(t, []string{"éééé", "éé"}, chunks)
}

func TestSplitTextOverlapNotSmallerThanChunk(t *testing.T) {
	assert.Equal(t, []string{"ab", "cd", "e"}, SplitText("abcde", 2, 5))
}
