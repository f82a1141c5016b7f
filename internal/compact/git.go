package compact

import (
	"regexp"
	"strings"

	"github.com/compresr/ctk/internal/symbols"
)

// ===== GIT STATUS =====

var (
	gitBranchNoiseRe = regexp.MustCompile(`^(On branch|Your branch|nothing to|working tree)`)
	untrackedPathRe  = regexp.MustCompile(`^\s{2,}(\S.*)$`)
	gitSniffRe       = regexp.MustCompile(`(?i)(modified|deleted|new file|On branch|Untracked)`)
)

type gitStatusCompressor struct{}

var _ Compressor = gitStatusCompressor{}

func (gitStatusCompressor) Matches(text string) bool {
	return gitSniffRe.MatchString(text)
}

// Compress groups status lines by symbol, one group per line:
//
//	M:src/app.ts,src/db.ts
//	A:src/new.ts
//	?:notes.txt
func (gitStatusCompressor) Compress(lines []string) []string {
	groups := make(map[string][]string)
	inUntracked := false

	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}

		if strings.Contains(line, "Untracked files:") {
			inUntracked = true
			continue
		}
		if strings.Contains(line, "Changes to be committed:") ||
			strings.Contains(line, "Changes not staged for commit:") {
			inUntracked = false
			continue
		}
		if gitBranchNoiseRe.MatchString(stripped) {
			continue
		}

		clean := symbols.StripGitHints(stripped)
		if symbol, path, ok := symbols.SplitGitStatus(clean); ok {
			groups[symbol] = append(groups[symbol], path)
			continue
		}

		// The untracked section lists bare indented paths. Hint-only lines
		// are blanked by the strip and fall through the match.
		if inUntracked {
			if m := untrackedPathRe.FindStringSubmatch(symbols.StripGitHints(line)); m != nil {
				groups["?"] = append(groups["?"], strings.TrimSpace(m[1]))
			}
		}
	}

	var result []string
	for _, symbol := range symbols.GitGroupOrder {
		if paths := groups[symbol]; len(paths) > 0 {
			result = append(result, symbol+":"+strings.Join(paths, ","))
		}
	}
	return result
}

// ===== GIT LOG =====

const (
	gitLogMaxLines   = 50
	gitLogMaxSubject = 60
)

var (
	gitLogLineRe  = regexp.MustCompile(`^([0-9a-f]{7,40})\s+(.*)$`)
	gitLogSniffRe = regexp.MustCompile(`(?m)^[0-9a-f]{7,40}\s`)
)

type gitLogCompressor struct{}

var _ Compressor = gitLogCompressor{}

func (gitLogCompressor) Matches(text string) bool {
	return gitLogSniffRe.MatchString(text)
}

// Compress shortens each "<hash> <subject>" line to a 7-character hash and
// a subject capped at 60 characters, keeping at most 50 commits.
func (gitLogCompressor) Compress(lines []string) []string {
	result := make([]string, 0, gitLogMaxLines)
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}

		if m := gitLogLineRe.FindStringSubmatch(stripped); m != nil {
			sha, subject := m[1], m[2]
			if len(sha) > 7 {
				sha = sha[:7]
			}
			if len(subject) > gitLogMaxSubject {
				subject = subject[:gitLogMaxSubject-3] + "..."
			}
			if subject == "" {
				result = append(result, sha)
			} else {
				result = append(result, sha+" "+subject)
			}
		} else {
			result = append(result, stripped)
		}

		if len(result) >= gitLogMaxLines {
			break
		}
	}
	return result
}
