// Package symbols - errors.go detects failure signal in command output.
package symbols

import "regexp"

// diagnosticIndicators are failure patterns whose surrounding text must
// survive verbatim: tracebacks, assertion bodies, errno strings, panics.
// Matched case-insensitively, anywhere in a line unless anchored.
var diagnosticIndicators = compileIndicators([]string{
	`^Error:`,
	`^error:`,
	`^ERROR`,
	`^Exception:`,
	`^Traceback`,
	`^\s+File ".*", line \d+`,
	`^\s+\^+`,
	`^E\s+assert`,
	`^E\s+Error`,
	`^E\s+Exception`,
	`ENOENT`,
	`ECONNREFUSED`,
	`ETIMEDOUT`,
	`Permission denied`,
	`fatal:`,
	`panic:`,
	`segmentation fault`,
})

// outcomeIndicators are test-result words. Test-runner compressors consume
// these as input and re-emit every failure, so callers that feed such a
// compressor check diagnostics only.
var outcomeIndicators = compileIndicators([]string{
	`^FAIL\s`,
	`FAILED`,
})

func compileIndicators(patterns []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile(`(?i)` + p)
	}
	return res
}

// HasErrors reports whether any line carries failure signal, outcome words
// included. Callers use this to fall back to whitespace-only cleanup so
// diagnostic text is never compacted away.
func HasErrors(lines []string) bool {
	for _, line := range lines {
		if LineHasError(line) {
			return true
		}
	}
	return false
}

// HasDiagnosticErrors is HasErrors minus the FAIL/FAILED outcome words.
func HasDiagnosticErrors(lines []string) bool {
	for _, line := range lines {
		if matchesAny(diagnosticIndicators, line) {
			return true
		}
	}
	return false
}

// LineHasError reports whether a single line matches any failure pattern.
func LineHasError(line string) bool {
	return matchesAny(diagnosticIndicators, line) || matchesAny(outcomeIndicators, line)
}

func matchesAny(res []*regexp.Regexp, line string) bool {
	for _, re := range res {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
