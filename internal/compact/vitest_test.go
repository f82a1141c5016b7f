package compact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVitest_PassingRun(t *testing.T) {
	lines := []string{
		"✓ src/utils.test.ts (5)",
		"✓ src/api.test.ts (3)",
		"Test Files  2 passed (2)",
		"Tests  8 passed (8)",
		"Duration  1.23s",
	}

	out := vitestCompressor{}.Compress(lines)

	require.Len(t, out, 1)
	assert.Equal(t, "8p | 1.23s", out[0])
}

func TestVitest_FailingRun(t *testing.T) {
	lines := []string{
		"✓ src/utils.test.ts (5)",
		"✘ src/api.test.ts (3)",
		"Test Files  1 passed, 1 failed (2)",
		"Tests  5 passed, 3 failed (8)",
	}

	out := vitestCompressor{}.Compress(lines)

	require.Len(t, out, 2)
	assert.Equal(t, "FAIL:src/api.test.ts", out[0])
	assert.Equal(t, "5p 3f", out[1])
}

func TestVitest_CountsComeFromTestsLineOnly(t *testing.T) {
	lines := []string{
		"Test Files  2 passed (2)",
		"Tests  8 passed (8)",
	}

	out := vitestCompressor{}.Compress(lines)

	require.Len(t, out, 1)
	assert.True(t, strings.HasPrefix(out[0], "8p"))
}

func TestVitest_FailMarkerVariants(t *testing.T) {
	lines := []string{
		"FAIL src/auth.test.ts > login flow",
		"× src/db.test.ts (2)",
	}

	out := vitestCompressor{}.Compress(lines)

	require.Len(t, out, 2)
	assert.Equal(t, "FAIL:src/auth.test.ts", out[0])
	assert.Equal(t, "FAIL:src/db.test.ts", out[1])
}

func TestVitest_Sniff(t *testing.T) {
	assert.True(t, vitestCompressor{}.Matches("Tests  8 passed (8)"))
	assert.True(t, vitestCompressor{}.Matches("✓ src/utils.test.ts (5)"))
	assert.False(t, vitestCompressor{}.Matches("unrelated build output"))
}
