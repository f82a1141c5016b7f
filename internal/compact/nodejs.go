package compact

import (
	"regexp"
	"strconv"
	"strings"
)

const nodeMaxSamples = 3

var (
	nodeAddedRe   = regexp.MustCompile(`(?i)added\s+(\d+)`)
	nodeRemovedRe = regexp.MustCompile(`(?i)removed\s+(\d+)`)
	nodeChangedRe = regexp.MustCompile(`(?i)changed\s+(\d+)`)
	nodeTimeRe    = regexp.MustCompile(`in\s+([\d.]+)s?`)
	nodePackageRe = regexp.MustCompile(`^\s*[+\-~]\s+@?[\w/-]+\s*[\d.]+`)
	nodeSniffRe   = regexp.MustCompile(`(?i)(added|removed|changed|packages|npm|pnpm)`)
)

type nodeCompressor struct{}

var _ Compressor = nodeCompressor{}

func (nodeCompressor) Matches(text string) bool {
	return nodeSniffRe.MatchString(text)
}

// Compress reduces npm/pnpm install output to change counts plus a small
// sample of individual package lines:
//
//	+25 -3 ~12 | 5.2s
//	+ lodash 4.17.21
//	... 24 more
//
// Everything that is neither a count, a duration, nor a package line is
// dropped.
func (nodeCompressor) Compress(lines []string) []string {
	var packages []string
	var added, removed, changed int
	duration := ""

	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}

		if m := nodeAddedRe.FindStringSubmatch(stripped); m != nil {
			added, _ = strconv.Atoi(m[1])
		}
		if m := nodeRemovedRe.FindStringSubmatch(stripped); m != nil {
			removed, _ = strconv.Atoi(m[1])
		}
		if m := nodeChangedRe.FindStringSubmatch(stripped); m != nil {
			changed, _ = strconv.Atoi(m[1])
		}
		if m := nodeTimeRe.FindStringSubmatch(stripped); m != nil {
			duration = m[1]
		}

		if nodePackageRe.MatchString(stripped) {
			packages = append(packages, stripped)
		}
	}

	var result []string
	if added > 0 || removed > 0 || changed > 0 {
		var parts []string
		if added > 0 {
			parts = append(parts, "+"+strconv.Itoa(added))
		}
		if removed > 0 {
			parts = append(parts, "-"+strconv.Itoa(removed))
		}
		if changed > 0 {
			parts = append(parts, "~"+strconv.Itoa(changed))
		}
		summary := strings.Join(parts, " ")
		if duration != "" {
			summary += " | " + duration + "s"
		}
		result = append(result, summary)
	}

	switch {
	case len(packages) == 0:
	case len(packages) <= nodeMaxSamples:
		result = append(result, packages...)
	default:
		result = append(result, packages[0])
		result = append(result, "... "+strconv.Itoa(len(packages)-1)+" more")
	}
	return result
}
