package compact

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	filesMaxLines    = 50
	grepMaxSummary   = 10
	findMaxAggregate = 20
)

var (
	lsFormatRe   = regexp.MustCompile(`(?m)^[d\-l][rwx\-]{9}\s`)
	grepFormatRe = regexp.MustCompile(`(?m)^[^:]+:\d+:`)
	findFormatRe = regexp.MustCompile(`(?m)^(\./)?[\w/_.\-]+$`)
	grepMatchRe  = regexp.MustCompile(`^([^:]+):(\d+)?(:|$)`)
	filesSniffRe = regexp.MustCompile(`(?m)([d\-l][rwx\-]{9}|^\.?/?[\w/_.\-]+$|:\d+:)`)
)

type filesCompressor struct{}

var _ Compressor = filesCompressor{}

func (filesCompressor) Matches(text string) bool {
	return filesSniffRe.MatchString(text)
}

// Compress sniffs whether the text is ls -l, grep, or find shaped and
// applies the matching reduction; anything else is capped at 50 lines.
func (filesCompressor) Compress(lines []string) []string {
	text := strings.Join(lines, "\n")
	switch {
	case lsFormatRe.MatchString(text):
		return compressLS(lines)
	case grepFormatRe.MatchString(text):
		return compressGrep(lines)
	case findFormatRe.MatchString(text):
		return compressFind(lines)
	}
	if len(lines) > filesMaxLines {
		return lines[:filesMaxLines]
	}
	return lines
}

// compressLS keeps permissions (first three characters), a K/M size, and
// the file name from each long-listing row.
func compressLS(lines []string) []string {
	var result []string
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}
		if strings.HasPrefix(stripped, "total ") {
			continue
		}

		parts := strings.Fields(stripped)
		if len(parts) < 6 {
			result = append(result, stripped)
			continue
		}

		perms := parts[0]
		if len(perms) >= 4 {
			perms = perms[:3]
		}
		result = append(result, perms+" "+compactSize(parts[4])+" "+parts[len(parts)-1])
	}
	return result
}

func compactSize(size string) string {
	n, err := strconv.Atoi(size)
	if err != nil {
		return size
	}
	switch {
	case n >= 1024*1024:
		return fmt.Sprintf("%.0fM", float64(n)/(1024*1024))
	case n >= 1024:
		return fmt.Sprintf("%.0fK", float64(n)/1024)
	}
	return size
}

// compressGrep reduces match lines to file:line. When any single file has
// more than 5 hits the whole result collapses to per-file totals in
// first-seen order.
func compressGrep(lines []string) []string {
	var result []string
	counts := make(map[string]int)
	var order []string

	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}

		m := grepMatchRe.FindStringSubmatch(stripped)
		if m == nil {
			result = append(result, stripped)
			continue
		}

		file, lineNum := m[1], m[2]
		if lineNum != "" {
			if counts[file] == 0 {
				order = append(order, file)
			}
			counts[file]++
			result = append(result, file+":"+lineNum)
		} else {
			result = append(result, file)
		}
	}

	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}
	if maxCount > 5 {
		summarized := make([]string, 0, len(order))
		for _, file := range order {
			if c := counts[file]; c > 1 {
				summarized = append(summarized, fmt.Sprintf("%s:[%d matches]", file, c))
			} else {
				summarized = append(summarized, file)
			}
		}
		if len(summarized) > grepMaxSummary {
			summarized = summarized[:grepMaxSummary]
		}
		return summarized
	}

	if len(result) > filesMaxLines {
		result = result[:filesMaxLines]
	}
	return result
}

// compressFind strips "./" prefixes and, when any directory holds more
// than 10 results, replaces its entries with one "dir/ [...N files]" line.
func compressFind(lines []string) []string {
	var paths []string
	dirCounts := make(map[string]int)

	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}

		path := strings.TrimPrefix(stripped, "./")
		if dir := parentDir(path); dir != "" {
			dirCounts[dir]++
		}
		paths = append(paths, path)
	}

	maxCount := 0
	for _, c := range dirCounts {
		if c > maxCount {
			maxCount = c
		}
	}
	if maxCount > 10 {
		var aggregated []string
		shown := make(map[string]bool)
		for _, path := range paths {
			dir := parentDir(path)
			if dir != "" && dirCounts[dir] > 10 {
				if !shown[dir] {
					aggregated = append(aggregated, fmt.Sprintf("%s/ [...%d files]", dir, dirCounts[dir]))
					shown[dir] = true
				}
				continue
			}
			aggregated = append(aggregated, path)
		}
		if len(aggregated) > findMaxAggregate {
			aggregated = aggregated[:findMaxAggregate]
		}
		return aggregated
	}

	if len(paths) > filesMaxLines {
		paths = paths[:filesMaxLines]
	}
	return paths
}

func parentDir(path string) string {
	if idx := strings.LastIndex(path, "/"); idx > 0 {
		return path[:idx]
	}
	return ""
}
