package compact

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	pytestTestRefRe  = regexp.MustCompile(`(tests?[/\w_.]+\.py)::(\w+)`)
	pytestProgressRe = regexp.MustCompile(`^tests?[/\w_.]+\s*\.+\s*\[`)
	pytestPercentRe  = regexp.MustCompile(`^[\w/_.\s]+\[\s*\d+%`)
	pytestPassedRe   = regexp.MustCompile(`(\d+)\s+passed`)
	pytestFailedRe   = regexp.MustCompile(`(\d+)\s+failed`)
	pytestErrorRe    = regexp.MustCompile(`(\d+)\s+error`)
	pytestSkippedRe  = regexp.MustCompile(`(\d+)\s+skipped`)
	pytestTimeRe     = regexp.MustCompile(`in\s+([\d.]+)s`)
	pytestSniffRe    = regexp.MustCompile(`(?i)(PASSED|FAILED|collected|test session|passed.*failed)`)
)

type pytestCompressor struct{}

var _ Compressor = pytestCompressor{}

func (pytestCompressor) Matches(text string) bool {
	return pytestSniffRe.MatchString(text)
}

// Compress keeps failures and the run totals, dropping everything green:
//
//	FAIL:tests/test_auth.py::test_login
//	48p 2f | 3.42s
//
// Failures always come first so they survive any later truncation.
func (pytestCompressor) Compress(lines []string) []string {
	var failures []string
	var passed, failed, errored, skipped int
	duration := ""

	for _, line := range lines {
		if strings.Contains(line, "FAILED") || strings.Contains(line, "ERROR") {
			if m := pytestTestRefRe.FindStringSubmatch(line); m != nil {
				failures = append(failures, "FAIL:"+m[1]+"::"+m[2])
			} else {
				failures = append(failures, strings.TrimSpace(line))
			}
			continue
		}

		if strings.Contains(line, "PASSED") {
			continue
		}
		if pytestProgressRe.MatchString(line) || pytestPercentRe.MatchString(line) {
			continue
		}

		lower := strings.ToLower(line)
		if strings.Contains(lower, "passed") {
			if m := pytestPassedRe.FindStringSubmatch(line); m != nil {
				passed, _ = strconv.Atoi(m[1])
			}
		}
		if strings.Contains(lower, "failed") {
			if m := pytestFailedRe.FindStringSubmatch(line); m != nil {
				failed, _ = strconv.Atoi(m[1])
			}
		}
		if strings.Contains(lower, "error") {
			if m := pytestErrorRe.FindStringSubmatch(line); m != nil {
				errored, _ = strconv.Atoi(m[1])
			}
		}
		if strings.Contains(lower, "skipped") {
			if m := pytestSkippedRe.FindStringSubmatch(line); m != nil {
				skipped, _ = strconv.Atoi(m[1])
			}
		}
		if m := pytestTimeRe.FindStringSubmatch(line); m != nil {
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
		if errored > 0 {
			parts = append(parts, strconv.Itoa(errored)+"e")
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
