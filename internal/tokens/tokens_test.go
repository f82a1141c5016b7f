package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// =============================================================================
// HEURISTIC COUNTER
// =============================================================================

func TestHeuristicCount_Empty(t *testing.T) {
	assert.Equal(t, 0, heuristicCounter{}.Count(""))
}

func TestHeuristicCount_WordsAndPunctuation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"two words", "hello world", 3},
		{"words with flag", "git status -s", 5},
		{"dotted path", "a.b.c", 5},
		{"whitespace only", " \n ", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, heuristicCounter{}.Count(tt.text))
		})
	}
}

// =============================================================================
// DEFAULT COUNTER
// =============================================================================

func TestNewCounter_UsableWithoutNetwork(t *testing.T) {
	c := NewCounter()
	assert.NotNil(t, c)
	assert.Equal(t, 0, c.Count(""))
	assert.Greater(t, c.Count("hello world"), 0)
}

// =============================================================================
// SAVINGS
// =============================================================================

func TestCalculate_Savings(t *testing.T) {
	original := "one two three four five six seven eight nine ten"
	filtered := "one two"

	s := Calculate(heuristicCounter{}, original, filtered)

	assert.Equal(t, 14, s.OriginalTokens)
	assert.Equal(t, 3, s.FilteredTokens)
	assert.Equal(t, 11, s.TokensSaved)
	assert.Equal(t, 78.6, s.SavingsPercent)
}

func TestCalculate_NeverNegative(t *testing.T) {
	s := Calculate(heuristicCounter{}, "one", "one two three")
	assert.Equal(t, 0, s.TokensSaved)
	assert.Equal(t, 0.0, s.SavingsPercent)
}

func TestCalculate_EmptyOriginal(t *testing.T) {
	s := Calculate(heuristicCounter{}, "", "anything")
	assert.Equal(t, 0, s.OriginalTokens)
	assert.Equal(t, 0, s.TokensSaved)
	assert.Equal(t, 0.0, s.SavingsPercent)
}
