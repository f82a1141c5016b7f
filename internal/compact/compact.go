// Package compact rewrites captured command output into a denser form so it
// costs fewer tokens when a language model reads it.
//
// DESIGN: A single synchronous pipeline with four phases:
//
//	Preprocess -> error check -> boilerplate filter -> compress | dedupe
//
// Preprocessing strips terminal noise (ANSI, spinners, box drawing).
// The error check routes anything with failure signal to a whitespace-only
// cleanup so diagnostics are never compacted away. The boilerplate filter
// drops known-noise lines. Category compressors re-render recognized
// output shapes (git status, docker tables, test runs, package installs);
// when no compressor applies, runs of near-identical lines collapse to one
// line plus a count.
//
// FILES:
//   - compact.go:    Category tags, Compressor interface, Pipeline
//   - preprocess.go: ANSI/spinner/box stripping, blank-line collapsing
//   - patterns.go:   universal + per-category noise patterns
//   - dedupe.go:     consecutive similar-line grouping
//   - git.go, docker.go, pytest.go, nodejs.go, files.go, network.go,
//     vitest.go, alembic.go: the category compressors
//   - nested.go:     inner-output detection for compound commands
//
// The pipeline has no shared mutable state; all tables are built at init.
// Concurrent calls are safe without locking.
package compact

import (
	"strings"

	"github.com/compresr/ctk/internal/symbols"
)

// Category tags a block of output with the command family that produced it.
// It is an opaque dispatch key: unknown values take the generic path.
type Category string

const (
	CategoryGit           Category = "git"
	CategoryGitLog        Category = "git-log"
	CategoryGitDiff       Category = "git-diff"
	CategoryDocker        Category = "docker"
	CategoryDockerCompose Category = "docker-compose"
	CategoryPython        Category = "python"
	CategoryNode          Category = "nodejs"
	CategoryFiles         Category = "files"
	CategoryNetwork       Category = "network"
	CategoryRust          Category = "rust"
	CategoryGo            Category = "go"
	CategoryKubectl       Category = "kubectl"
	CategoryGH            Category = "gh"
	CategorySystem        Category = "system"
	CategoryVitest        Category = "vitest"
	CategoryAlembic       Category = "alembic"
	CategoryUvicorn       Category = "uvicorn"
	CategoryOther         Category = "other"
)

// Compressor re-renders filtered lines for one output family.
type Compressor interface {
	// Matches reports whether the filtered text still looks like the
	// family's typical shape. A failed sniff sends the output down the
	// dedupe path instead.
	Matches(text string) bool

	// Compress re-renders the lines into the family's compact notation.
	// Must tolerate empty input and never panic.
	Compress(lines []string) []string
}

// compressors maps categories to their specialized renderers. Built once,
// read-only afterwards. Categories without an entry (rust, go, kubectl,
// gh, system, ...) rely on filtering plus dedupe alone.
var compressors = map[Category]Compressor{
	CategoryGit:     gitStatusCompressor{},
	CategoryGitLog:  gitLogCompressor{},
	CategoryDocker:  dockerCompressor{},
	CategoryPython:  pytestCompressor{},
	CategoryNode:    nodeCompressor{},
	CategoryFiles:   filesCompressor{},
	CategoryNetwork: networkCompressor{},
	CategoryVitest:  vitestCompressor{},
	CategoryAlembic: alembicCompressor{},
}

// testOutcomeCategories mark compressors that re-render FAILED/FAIL lines
// themselves (failures always emitted first). For these, bare outcome words
// do not force the verbatim path; real diagnostics (tracebacks, panics,
// errno strings) still do.
var testOutcomeCategories = map[Category]bool{
	CategoryPython: true,
	CategoryVitest: true,
}

// Pipeline applies the compaction phases to one block of output.
type Pipeline struct {
	threshold float64
	minLen    int
}

// Option adjusts pipeline tuning.
type Option func(*Pipeline)

// WithDedupeThreshold overrides the similarity ratio at which consecutive
// lines are considered duplicates.
func WithDedupeThreshold(t float64) Option {
	return func(p *Pipeline) {
		if t > 0 && t <= 1 {
			p.threshold = t
		}
	}
}

// WithDedupeMinLength overrides the shortest trimmed line eligible for
// duplicate grouping.
func WithDedupeMinLength(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.minLen = n
		}
	}
}

// New builds a pipeline with the default tuning.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		threshold: DefaultSimilarityThreshold,
		minLen:    DefaultMinDedupeLength,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FilterOutput runs the full pipeline: preprocess, error short-circuit,
// boilerplate filter, then category compression or similar-line dedupe.
// Deterministic: identical (raw, category) always yields identical output.
func (p *Pipeline) FilterOutput(raw string, category Category) string {
	if raw == "" {
		return raw
	}

	pre := Preprocess(raw)
	lines := strings.Split(pre, "\n")

	// Compound commands (docker exec, compose run) often wrap another
	// tool's output; re-dispatch to the inner category when one shows.
	if category == CategoryDocker || category == CategoryDockerCompose {
		category = DetectNestedCategory(pre, category)
	}

	// Failure signal disables everything below except whitespace cleanup.
	if p.hasErrors(lines, category) {
		return lightFilter(lines)
	}

	filtered := FilterLines(lines, category)

	if c, ok := compressors[category]; ok && c.Matches(strings.Join(filtered, "\n")) {
		if compressed := c.Compress(filtered); len(compressed) > 0 {
			return collapseEmptyLines(strings.Split(strings.Join(compressed, "\n"), "\n"))
		}
		// Compressing non-empty input to nothing would swallow content;
		// fall through to the dedupe path instead.
	}

	deduped := p.dedupe(filtered)
	return collapseEmptyLines(strings.Split(strings.Join(deduped, "\n"), "\n"))
}

// hasErrors applies the error sentinel. Test-runner categories consume
// FAIL/FAILED lines as compressor input, so only diagnostic indicators
// count for them.
func (p *Pipeline) hasErrors(lines []string, category Category) bool {
	if testOutcomeCategories[category] {
		return symbols.HasDiagnosticErrors(lines)
	}
	return symbols.HasErrors(lines)
}

// lightFilter is the verbatim-preserving path: right-trim, drop blanks.
func lightFilter(lines []string) string {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimRight(line, " \t\r\f\v")
		if strings.TrimSpace(trimmed) != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, "\n")
}
