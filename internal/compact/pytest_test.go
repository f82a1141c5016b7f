package compact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPytest_FailuresFirstThenSummary(t *testing.T) {
	lines := []string{
		"tests/test_auth.py::test_login PASSED",
		"FAILED tests/test_auth.py::test_logout - AssertionError",
		"FAILED tests/test_api.py::test_fetch - TimeoutError",
		"48 passed, 2 failed in 3.42s",
	}

	out := pytestCompressor{}.Compress(lines)

	require.Len(t, out, 3)
	assert.Equal(t, "FAIL:tests/test_auth.py::test_logout", out[0])
	assert.Equal(t, "FAIL:tests/test_api.py::test_fetch", out[1])
	assert.Equal(t, "48p 2f | 3.42s", out[2])
}

func TestPytest_PassingRunKeepsOnlySummary(t *testing.T) {
	lines := []string{
		"tests/test_a.py::test_one PASSED",
		"tests/test_a.py::test_two PASSED",
		"12 passed in 0.80s",
	}

	out := pytestCompressor{}.Compress(lines)

	require.Len(t, out, 1)
	assert.Equal(t, "12p | 0.80s", out[0])
}

func TestPytest_FailureWithoutTestPathKeptVerbatim(t *testing.T) {
	lines := []string{"FAILED something unparseable"}

	out := pytestCompressor{}.Compress(lines)

	require.Len(t, out, 1)
	assert.Equal(t, "FAILED something unparseable", out[0])
}

func TestPytest_SkippedAndErrorsInSummary(t *testing.T) {
	lines := []string{"3 passed, 1 failed, 2 error, 4 skipped in 1.10s"}

	out := pytestCompressor{}.Compress(lines)

	require.Len(t, out, 1)
	assert.Equal(t, "3p 1f 2e 4s | 1.10s", out[0])
}

func TestPytest_NoCountsNoSummary(t *testing.T) {
	out := pytestCompressor{}.Compress([]string{"random chatter"})
	assert.Empty(t, out)
}

func TestPytest_Sniff(t *testing.T) {
	assert.True(t, pytestCompressor{}.Matches("2 passed, 1 failed"))
	assert.True(t, pytestCompressor{}.Matches("collected 10 items"))
	assert.False(t, pytestCompressor{}.Matches("nothing test-ish at all"))
}
