package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ===== FORMATTING =====

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{5, "5"},
		{999, "999"},
		{1000, "1,000"},
		{52340, "52,340"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCount(tt.in), "FormatCount(%d)", tt.in)
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "62.5%", FormatPercent(62.5))
	assert.Equal(t, "0.0%", FormatPercent(0))
	assert.Equal(t, "100.0%", FormatPercent(100))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 35))
	long := "git log --oneline --graph --decorate --all --color=never"
	got := Truncate(long, 35)
	assert.Len(t, got, 35)
	assert.Equal(t, long[:32]+"...", got)
}

// ===== COLORS =====

func TestPaint_RespectsSwitch(t *testing.T) {
	SetColor(true)
	assert.Equal(t, ColorGreen+"x"+ColorReset, Paint(ColorGreen, "x"))

	SetColor(false)
	defer SetColor(true)
	assert.Equal(t, "x", Paint(ColorGreen, "x"))
}
