package compact

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	// DefaultSimilarityThreshold is the ratio at or above which two
	// consecutive lines count as near-duplicates.
	DefaultSimilarityThreshold = 0.75

	// DefaultMinDedupeLength is the shortest trimmed line eligible for
	// grouping. Short lines match each other too easily.
	DefaultMinDedupeLength = 15
)

// similarity is the character-level SequenceMatcher ratio: twice the
// matched character count over the combined length.
func similarity(a, b string) float64 {
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).Ratio()
}

// dedupe collapses each run of 3+ consecutive near-identical lines into
// its first line plus "[... N similar]". Lines that repeat with only a
// timestamp or counter changed group together. Runs of 1-2 pass through,
// and every candidate is compared against the run's first line so a
// slow-drifting sequence cannot chain forever.
func (p *Pipeline) dedupe(lines []string) []string {
	if len(lines) <= 1 {
		return lines
	}

	result := make([]string, 0, len(lines))
	i := 0
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || len(trimmed) < p.minLen {
			result = append(result, line)
			i++
			continue
		}

		j := i + 1
		for j < len(lines) {
			next := strings.TrimSpace(lines[j])
			if next == "" || len(next) < p.minLen {
				break
			}
			if similarity(line, lines[j]) < p.threshold {
				break
			}
			j++
		}

		if size := j - i; size >= 3 {
			result = append(result, fmt.Sprintf("%s [... %d similar]", line, size))
		} else {
			result = append(result, lines[i:j]...)
		}
		i = j
	}
	return result
}
