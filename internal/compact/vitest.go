package compact

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	vitestFailRe    = regexp.MustCompile(`^\s*(?:✘|×|FAIL)\s+(\S+)`)
	vitestPassRe    = regexp.MustCompile(`^\s*(?:✓|√|PASS)\s+`)
	vitestTotalsRe  = regexp.MustCompile(`^\s*Tests\s+`)
	vitestPassedRe  = regexp.MustCompile(`(\d+)\s+passed`)
	vitestFailedRe  = regexp.MustCompile(`(\d+)\s+failed`)
	vitestSkippedRe = regexp.MustCompile(`(\d+)\s+skipped`)
	vitestTimeRe    = regexp.MustCompile(`Duration\s+([\d.]+)`)
	vitestSniffRe   = regexp.MustCompile(`(?m)(Test Files|^\s*Tests\s+\d|[✓✘×]|^\s*(?:PASS|FAIL)\s)`)
)

type vitestCompressor struct{}

var _ Compressor = vitestCompressor{}

func (vitestCompressor) Matches(text string) bool {
	return vitestSniffRe.MatchString(text)
}

// Compress reduces a vitest run to its failing files and the totals line:
//
//	FAIL:src/api.test.ts
//	5p 3f | 1.23s
//
// Counts come only from the "Tests ..." line; the "Test Files ..." line
// counts files, not tests, and is dropped.
func (vitestCompressor) Compress(lines []string) []string {
	var failures []string
	var passed, failed, skipped int
	duration := ""

	for _, line := range lines {
		if m := vitestFailRe.FindStringSubmatch(line); m != nil {
			failures = append(failures, "FAIL:"+m[1])
			continue
		}
		if vitestPassRe.MatchString(line) {
			continue
		}

		if vitestTotalsRe.MatchString(line) {
			if m := vitestPassedRe.FindStringSubmatch(line); m != nil {
				passed, _ = strconv.Atoi(m[1])
			}
			if m := vitestFailedRe.FindStringSubmatch(line); m != nil {
				failed, _ = strconv.Atoi(m[1])
			}
			if m := vitestSkippedRe.FindStringSubmatch(line); m != nil {
				skipped, _ = strconv.Atoi(m[1])
			}
			continue
		}

		if m := vitestTimeRe.FindStringSubmatch(line); m != nil {
			duration = m[1]
		}
	}

	result := append([]string{}, failures...)
	if passed > 0 || failed > 0 {
		var parts []string
		if passed > 0 {
			parts = append(parts, strconv.Itoa(passed)+"p")
		}
		if failed > 0 {
			parts = append(parts, strconv.Itoa(failed)+"f")
		}
		if skipped > 0 {
			parts = append(parts, strconv.Itoa(skipped)+"s")
		}
		summary := strings.Join(parts, " ")
		if duration != "" {
			summary += " | " + duration + "s"
		}
		result = append(result, summary)
	}
	return result
}
