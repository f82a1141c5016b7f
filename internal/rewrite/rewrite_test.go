package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compresr/ctk/internal/compact"
)

// =============================================================================
// SKIP CONDITIONS
// =============================================================================

func TestShouldRewrite_EmptyLine(t *testing.T) {
	res, ok := ShouldRewrite("")
	assert.False(t, ok)
	assert.Empty(t, res.Rewritten)
}

func TestShouldRewrite_AlreadyProxied(t *testing.T) {
	for _, cmd := range []string{"ctk git status", "rtk git status"} {
		_, ok := ShouldRewrite(cmd)
		assert.False(t, ok, cmd)
	}
}

func TestShouldRewrite_Heredoc(t *testing.T) {
	_, ok := ShouldRewrite("cat <<EOF")
	assert.False(t, ok)
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

func TestShouldRewrite_GitStatus(t *testing.T) {
	res, ok := ShouldRewrite("git status")
	require.True(t, ok)
	assert.Equal(t, "git status", res.Original)
	assert.Equal(t, "ctk git status", res.Rewritten)
	assert.Equal(t, compact.CategoryGit, res.Category)
}

func TestShouldRewrite_PreservesSudoPrefix(t *testing.T) {
	res, ok := ShouldRewrite("sudo git status")
	require.True(t, ok)
	assert.Equal(t, "sudo ctk git status", res.Rewritten)
}

func TestShouldRewrite_PreservesEnvPrefix(t *testing.T) {
	res, ok := ShouldRewrite("GIT_DIR=/tmp git status")
	require.True(t, ok)
	assert.Equal(t, "GIT_DIR=/tmp ctk git status", res.Rewritten)
}

func TestShouldRewrite_Categories(t *testing.T) {
	tests := []struct {
		cmd      string
		category compact.Category
	}{
		{"docker ps", compact.CategoryDocker},
		{"docker compose up", compact.CategoryDocker},
		{"ls -la", compact.CategoryFiles},
		{"cat file.txt", compact.CategoryFiles},
		{"pytest tests/", compact.CategoryPython},
		{"npm test", compact.CategoryNode},
		{"cargo test", compact.CategoryRust},
		{"go test ./...", compact.CategoryGo},
		{"curl http://example.com", compact.CategoryNetwork},
		{"kubectl get pods", compact.CategoryKubectl},
		{"gh pr list", compact.CategoryGH},
		{"free -h", compact.CategorySystem},
	}

	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			res, ok := ShouldRewrite(tt.cmd)
			require.True(t, ok)
			assert.Equal(t, tt.category, res.Category)
			assert.Equal(t, "ctk "+tt.cmd, res.Rewritten)
		})
	}
}

func TestShouldRewrite_GitFlagsBeforeSubcommand(t *testing.T) {
	res, ok := ShouldRewrite("git -C /repo status")
	require.True(t, ok)
	assert.Equal(t, "ctk git -C /repo status", res.Rewritten)
	assert.Equal(t, compact.CategoryGit, res.Category)
}

func TestShouldRewrite_CargoToolchainPin(t *testing.T) {
	res, ok := ShouldRewrite("cargo +nightly build")
	require.True(t, ok)
	assert.Equal(t, compact.CategoryRust, res.Category)
}

// =============================================================================
// REJECTIONS
// =============================================================================

func TestShouldRewrite_UnknownCommand(t *testing.T) {
	res, ok := ShouldRewrite("unknowncommand args")
	assert.False(t, ok)
	assert.Empty(t, res.Rewritten)
	assert.Empty(t, string(res.Category))
}

func TestShouldRewrite_GitUnlistedSubcommand(t *testing.T) {
	_, ok := ShouldRewrite("git bisect start")
	assert.False(t, ok)
}

func TestShouldRewrite_KubectlUnlistedSubcommand(t *testing.T) {
	_, ok := ShouldRewrite("kubectl apply -f deploy.yaml")
	assert.False(t, ok)
}

func TestShouldRewrite_CargoUnlistedSubcommand(t *testing.T) {
	_, ok := ShouldRewrite("cargo publish")
	assert.False(t, ok)
}
