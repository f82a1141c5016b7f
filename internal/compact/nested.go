package compact

import "regexp"

// Compound commands (docker exec, compose run) wrap another tool's output.
// These patterns recognize the inner tool so its compressor runs instead of
// the container-table one. Alembic is checked first: a migration run can
// also mention "passed" in its seed steps and would misread as a test run.
var (
	nestedAlembicRe = regexp.MustCompile(`\[alembic\.|Running (?:upgrade|downgrade)\s+\S+\s+->`)
	nestedVitestRe  = regexp.MustCompile(`(?m)(Test Files\s+\d+\s+passed|^\s*[✓✘×]\s+\S+\.test\.|^\s*(?:PASS|FAIL)\s+\S+\.test\.)`)
)

// DetectNestedCategory returns the category of tool output embedded in a
// compound command's stream, or the primary category when nothing inner is
// recognized. Runs on preprocessed text, before filtering, so the evidence
// lines (alembic's INFO output in particular) are still present.
func DetectNestedCategory(text string, primary Category) Category {
	if nestedAlembicRe.MatchString(text) {
		return CategoryAlembic
	}
	if nestedVitestRe.MatchString(text) {
		return CategoryVitest
	}
	return primary
}
