package compact

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// LS
// =============================================================================

func TestFiles_LSRowsReduced(t *testing.T) {
	lines := []string{
		"total 24",
		"-rw-r--r--  1 user  staff      512 Jan 10 10:00 README.md",
		"-rw-r--r--  1 user  staff     2048 Jan 10 10:00 main.go",
		"-rwxr-xr-x  1 user  staff  3145728 Jan 10 10:00 binary",
		"drwxr-xr-x  4 user  staff      128 Jan 10 10:00 src",
	}

	out := filesCompressor{}.Compress(lines)

	require.Len(t, out, 4)
	assert.Equal(t, "-rw 512 README.md", out[0])
	assert.Equal(t, "-rw 2K main.go", out[1])
	assert.Equal(t, "-rw 3M binary", out[2])
	assert.Equal(t, "drw 128 src", out[3])
}

// =============================================================================
// GREP
// =============================================================================

func TestFiles_GrepReducedToFileLine(t *testing.T) {
	lines := []string{
		"src/app.go:10:func main() {",
		"src/app.go:42:\tlog.Print(err)",
		"src/db.go:7:package db",
	}

	out := filesCompressor{}.Compress(lines)

	require.Len(t, out, 3)
	assert.Equal(t, "src/app.go:10", out[0])
	assert.Equal(t, "src/app.go:42", out[1])
	assert.Equal(t, "src/db.go:7", out[2])
}

func TestFiles_GrepAggregatesHeavyFiles(t *testing.T) {
	var lines []string
	for i := 1; i <= 8; i++ {
		lines = append(lines, fmt.Sprintf("src/hot.go:%d:match", i*10))
	}
	lines = append(lines, "src/cold.go:5:match")

	out := filesCompressor{}.Compress(lines)

	// First-seen order: the heavy file leads, single-hit file follows bare.
	require.Len(t, out, 2)
	assert.Equal(t, "src/hot.go:[8 matches]", out[0])
	assert.Equal(t, "src/cold.go", out[1])
}

// =============================================================================
// FIND
// =============================================================================

func TestFiles_FindStripsDotSlash(t *testing.T) {
	lines := []string{"./src/main.go", "./docs/readme.md"}

	out := filesCompressor{}.Compress(lines)

	require.Len(t, out, 2)
	assert.Equal(t, "src/main.go", out[0])
	assert.Equal(t, "docs/readme.md", out[1])
}

func TestFiles_FindAggregatesBusyDirectories(t *testing.T) {
	var lines []string
	for i := 0; i < 12; i++ {
		lines = append(lines, fmt.Sprintf("./node_modules/pkg/file%d.js", i))
	}
	lines = append(lines, "./main.go")

	out := filesCompressor{}.Compress(lines)

	require.Len(t, out, 2)
	assert.Equal(t, "node_modules/pkg/ [...12 files]", out[0])
	assert.Equal(t, "main.go", out[1])
}

func TestFiles_UnrecognizedShapeCappedAtFifty(t *testing.T) {
	lines := make([]string, 80)
	for i := range lines {
		lines[i] = fmt.Sprintf("opaque blob %d :: no shape", i)
	}

	out := filesCompressor{}.Compress(lines)
	assert.Len(t, out, 50)
}
