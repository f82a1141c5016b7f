// Package symbols holds the static vocabulary that drives output compaction:
// keyword-to-symbol tables for each command family plus the helpers that
// apply them to single tokens or lines.
//
// DESIGN: Every table is built once at package init and never mutated.
// Compressors read them concurrently without locking. Anything that needs a
// deterministic scan order is a slice of pairs, not a map.
package symbols

import (
	"regexp"
	"strings"
)

// =============================================================================
// GIT STATUS
// =============================================================================

// StatusSymbol pairs a verbose git status keyword with its one-letter symbol.
type StatusSymbol struct {
	Keyword string
	Symbol  string
}

// GitStatusSymbols maps git status keywords to symbols, checked in order.
var GitStatusSymbols = []StatusSymbol{
	{"modified:", "M"},
	{"deleted:", "D"},
	{"new file:", "A"},
	{"renamed:", "R"},
	{"copied:", "C"},
	{"type changed:", "T"},
}

// GitGroupOrder is the fixed emission order for compacted git status groups.
// "?" collects untracked paths.
var GitGroupOrder = []string{"M", "A", "D", "R", "C", "T", "?"}

// gitStatusRes holds one extraction regex per status keyword.
var gitStatusRes = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(GitStatusSymbols))
	for _, ss := range GitStatusSymbols {
		m[ss.Keyword] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(ss.Keyword) + `\s+(.+)`)
	}
	return m
}()

// gitHintRe matches trailing `(use "git ..." ...)` hints on status lines.
var gitHintRe = regexp.MustCompile(`\s*\(use "[^"]+".*\)`)

// StripGitHints removes `(use "git ..." ...)` usage hints from a line.
func StripGitHints(line string) string {
	return gitHintRe.ReplaceAllString(line, "")
}

// SplitGitStatus extracts the status symbol and file path from a line like
// "modified:   src/app.ts". Keywords are tried in table order; the third
// return is false when no keyword is present.
func SplitGitStatus(line string) (symbol, path string, ok bool) {
	lower := strings.ToLower(line)
	for _, ss := range GitStatusSymbols {
		if !strings.Contains(lower, ss.Keyword) {
			continue
		}
		m := gitStatusRes[ss.Keyword].FindStringSubmatch(line)
		if m == nil {
			continue
		}
		return ss.Symbol, strings.TrimSpace(m[1]), true
	}
	return "", "", false
}

// SymbolizeGitStatus converts a "modified:   src/app.ts" style line to
// "M:src/app.ts". The second return is false when the line carries no
// status keyword.
func SymbolizeGitStatus(line string) (string, bool) {
	symbol, path, ok := SplitGitStatus(line)
	if !ok {
		return "", false
	}
	return symbol + ":" + StripGitHints(path), true
}

// =============================================================================
// DOCKER STATE
// =============================================================================

// DockerStateSymbols maps docker container state words to symbols.
var DockerStateSymbols = map[string]string{
	"Up":         "U",
	"Exited":     "X",
	"Created":    "C",
	"Restarting": "R",
	"Paused":     "P",
	"Dead":       "D",
	"Running":    "U",
}

var dockerStateRe = regexp.MustCompile(`(?i)^(Up|Exited|Created|Restarting|Paused|Dead)\s*(.*)`)

// SymbolizeDockerState converts a docker STATUS cell like "Up 2 hours" or
// "Exited (0) 3 days ago" to its compact form ("U2h", "X3d"). Unrecognized
// states are truncated to 7 characters.
func SymbolizeDockerState(raw string) string {
	m := dockerStateRe.FindStringSubmatch(raw)
	if m == nil {
		if len(raw) > 7 {
			return raw[:7]
		}
		return raw
	}

	state := m[1]
	symbol, ok := DockerStateSymbols[state]
	if !ok {
		symbol = state[:1]
	}

	duration := strings.TrimSpace(m[2])
	if duration == "" {
		return symbol
	}
	return symbol + CompactDuration(duration)
}

// durationUnits rewrites verbose duration units to one-letter suffixes.
var durationUnits = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?i)(\d+)\s*weeks?`), "${1}w"},
	{regexp.MustCompile(`(?i)(\d+)\s*days?`), "${1}d"},
	{regexp.MustCompile(`(?i)(\d+)\s*(?:hours?|hrs?)`), "${1}h"},
	{regexp.MustCompile(`(?i)(\d+)\s*(?:minutes?|mins?)`), "${1}m"},
	{regexp.MustCompile(`(?i)(\d+)\s*(?:seconds?|secs?)`), "${1}s"},
}

var parentheticalRe = regexp.MustCompile(`\s*\(.*?\)`)

// CompactDuration rewrites "2 hours 30 minutes" as "2h 30m", dropping
// parenthetical exit codes / health notes and the trailing "ago".
func CompactDuration(duration string) string {
	if duration == "" {
		return duration
	}
	for _, u := range durationUnits {
		duration = u.re.ReplaceAllString(duration, u.repl)
	}
	duration = parentheticalRe.ReplaceAllString(duration, "")
	duration = strings.ReplaceAll(duration, " ago", "")
	return strings.TrimSpace(duration)
}

// =============================================================================
// PYTEST RESULTS
// =============================================================================

// PytestResultSymbols maps pytest outcome words to symbols.
var PytestResultSymbols = map[string]string{
	"PASSED":  ".",
	"FAILED":  "F",
	"ERROR":   "E",
	"SKIPPED": "S",
	"XFAILED": "x",
	"XPASSED": "X",
	"WARNING": "W",
}

// SymbolizePytestResult converts a pytest outcome word to its symbol,
// falling back to the first character for unknown outcomes.
func SymbolizePytestResult(result string) string {
	if s, ok := PytestResultSymbols[result]; ok {
		return s
	}
	if result == "" {
		return "?"
	}
	return result[:1]
}

// =============================================================================
// NODE PACKAGE MANAGER VERBS
// =============================================================================

// NodeChangeSymbols maps npm/pnpm change verbs to symbols.
var NodeChangeSymbols = map[string]string{
	"added":      "+",
	"removed":    "-",
	"changed":    "~",
	"updated":    "~",
	"deprecated": "!",
	"audited":    "",
}

// SymbolizeNodeChange converts an npm/pnpm change verb to its symbol,
// falling back to the first character for unknown verbs.
func SymbolizeNodeChange(change string) string {
	if s, ok := NodeChangeSymbols[strings.ToLower(change)]; ok {
		return s
	}
	if change == "" {
		return ""
	}
	return change[:1]
}
