package compact

import (
	"regexp"
	"strings"
)

var (
	alembicMigrationRe = regexp.MustCompile(`Running (?:upgrade|downgrade)\s+(\S+)\s+->\s+(\S+),\s*(.*)`)
	alembicInfoRe      = regexp.MustCompile(`^\s*INFO\b`)
	alembicSniffRe     = regexp.MustCompile(`\[alembic\.|Running (?:upgrade|downgrade)`)
)

type alembicCompressor struct{}

var _ Compressor = alembicCompressor{}

func (alembicCompressor) Matches(text string) bool {
	return alembicSniffRe.MatchString(text)
}

// Compress keeps one line per migration step and drops the engine chatter:
//
//	INFO  [alembic.runtime.migration] Running upgrade 1a2b -> 3c4d, add_users
//
// becomes "1a2b -> 3c4d: add_users". INFO lines without a migration step
// are dropped; anything else stays as-is.
func (alembicCompressor) Compress(lines []string) []string {
	var result []string
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}

		if m := alembicMigrationRe.FindStringSubmatch(line); m != nil {
			step := m[1] + " -> " + m[2]
			if msg := strings.TrimSpace(m[3]); msg != "" {
				step += ": " + msg
			}
			result = append(result, step)
			continue
		}

		if alembicInfoRe.MatchString(line) {
			continue
		}

		result = append(result, stripped)
	}
	return result
}
