package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// GIT STATUS
// =============================================================================

func TestSplitGitStatus(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		symbol string
		path   string
	}{
		{"modified", "modified:   src/app.ts", "M", "src/app.ts"},
		{"deleted", "deleted:    old/file.go", "D", "old/file.go"},
		{"new file", "new file:   cmd/root.go", "A", "cmd/root.go"},
		{"renamed", "renamed:    a.go -> b.go", "R", "a.go -> b.go"},
		{"case insensitive", "Modified:   X.md", "M", "X.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			symbol, path, ok := SplitGitStatus(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.symbol, symbol)
			assert.Equal(t, tt.path, path)
		})
	}
}

func TestSplitGitStatus_NoKeyword(t *testing.T) {
	_, _, ok := SplitGitStatus("On branch main")
	assert.False(t, ok)
}

func TestSymbolizeGitStatus_StripsHints(t *testing.T) {
	line := `modified:   src/app.ts (use "git add <file>..." to update)`
	out, ok := SymbolizeGitStatus(line)
	require.True(t, ok)
	assert.Equal(t, "M:src/app.ts", out)
}

func TestStripGitHints(t *testing.T) {
	assert.Equal(t, "", StripGitHints(`  (use "git add <file>..." to include in what will be committed)`))
	assert.Equal(t, "plain path.txt", StripGitHints("plain path.txt"))
}

// =============================================================================
// DOCKER STATE
// =============================================================================

func TestSymbolizeDockerState(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"up hours", "Up 2 hours", "U2h"},
		{"exited with code", "Exited (0) 3 days ago", "X3d"},
		{"restarting", "Restarting (1) 5 seconds ago", "R5s"},
		{"created bare", "Created", "C"},
		{"paused", "Paused", "P"},
		{"mixed units", "Up 2 hours 30 minutes", "U2h 30m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SymbolizeDockerState(tt.in))
		})
	}
}

func TestSymbolizeDockerState_UnknownTruncated(t *testing.T) {
	assert.Equal(t, "Unhealt", SymbolizeDockerState("Unhealthy for a while"))
	assert.Equal(t, "odd", SymbolizeDockerState("odd"))
}

func TestCompactDuration(t *testing.T) {
	assert.Equal(t, "2h", CompactDuration("2 hours"))
	assert.Equal(t, "45s", CompactDuration("45 seconds ago"))
	assert.Equal(t, "3d", CompactDuration("(healthy) 3 days"))
	assert.Equal(t, "", CompactDuration(""))
}

// =============================================================================
// TEST RESULT AND PACKAGE VERBS
// =============================================================================

func TestSymbolizePytestResult(t *testing.T) {
	assert.Equal(t, ".", SymbolizePytestResult("PASSED"))
	assert.Equal(t, "F", SymbolizePytestResult("FAILED"))
	assert.Equal(t, "S", SymbolizePytestResult("SKIPPED"))
	assert.Equal(t, "x", SymbolizePytestResult("XFAILED"))
	assert.Equal(t, "Q", SymbolizePytestResult("QUARANTINED"))
	assert.Equal(t, "?", SymbolizePytestResult(""))
}

func TestSymbolizeNodeChange(t *testing.T) {
	assert.Equal(t, "+", SymbolizeNodeChange("added"))
	assert.Equal(t, "-", SymbolizeNodeChange("removed"))
	assert.Equal(t, "~", SymbolizeNodeChange("Changed"))
	assert.Equal(t, "!", SymbolizeNodeChange("deprecated"))
	assert.Equal(t, "", SymbolizeNodeChange("audited"))
	assert.Equal(t, "", SymbolizeNodeChange(""))
}
