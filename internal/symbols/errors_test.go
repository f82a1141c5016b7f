package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasErrors_Indicators(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"error prefix", "Error: connection refused"},
		{"traceback", "Traceback (most recent call last):"},
		{"python frame", `  File "app.py", line 42, in main`},
		{"assert line", "E   assert 1 == 2"},
		{"fail word", "FAIL tests/test_x.py"},
		{"failed word", "2 failed, 1 passed"},
		{"node errno", "Error ENOENT: no such file or directory"},
		{"conn refused", "connect ECONNREFUSED 127.0.0.1:5432"},
		{"git fatal", "fatal: not a git repository"},
		{"go panic", "panic: runtime error: index out of range"},
		{"segfault", "Segmentation fault (core dumped)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, HasErrors([]string{"clean line", tt.line}))
		})
	}
}

func TestHasErrors_CleanOutput(t *testing.T) {
	lines := []string{
		"all good here",
		"12 passed in 1.2s",
		"added 3 packages",
	}
	assert.False(t, HasErrors(lines))
}

func TestHasDiagnosticErrors_IgnoresOutcomeWords(t *testing.T) {
	lines := []string{
		"FAILED tests/test_foo.py::test_bar - AssertionError",
		"2 failed, 1 passed",
	}
	assert.True(t, HasErrors(lines))
	assert.False(t, HasDiagnosticErrors(lines))
}

func TestHasDiagnosticErrors_StillFiresOnRealDiagnostics(t *testing.T) {
	lines := []string{
		"FAILED tests/test_foo.py::test_bar",
		"Traceback (most recent call last):",
	}
	assert.True(t, HasDiagnosticErrors(lines))
}

func TestLineHasError(t *testing.T) {
	assert.True(t, LineHasError("error: unknown flag"))
	assert.True(t, LineHasError("FAILED tests/a.py::b"))
	assert.False(t, LineHasError("nothing wrong on this line"))
}
