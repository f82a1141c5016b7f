package compact

import (
	"regexp"
	"strings"
)

// ===== TERMINAL NOISE =====

var (
	ansiCSIRe     = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)
	ansiPrivateRe = regexp.MustCompile(`\x1b\[\?[0-9;]*[a-zA-Z]`)
	ansiOSCRe     = regexp.MustCompile(`\x1b\][^\x07]*\x07`)
	ansiCharsetRe = regexp.MustCompile(`\x1b[()][AB012]`)
	spinnerRe     = regexp.MustCompile(`[⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏]`)
)

// boxRunes are box-drawing characters removed outright. CLIs use them for
// tables and panels; they carry no information once alignment is gone.
var boxRunes = func() map[rune]bool {
	set := make(map[rune]bool)
	for _, r := range "┌┐└┘│─├┤┬┴┼╭╮╯╰═║╔╗╚╝╠╣╦╩╬" {
		set[r] = true
	}
	return set
}()

// Preprocess strips ANSI escape sequences, spinner frames, and box-drawing
// characters, right-trims every line, and collapses blank-line runs.
// Idempotent: Preprocess(Preprocess(s)) == Preprocess(s).
func Preprocess(raw string) string {
	text := ansiCSIRe.ReplaceAllString(raw, "")
	text = ansiPrivateRe.ReplaceAllString(text, "")
	text = ansiOSCRe.ReplaceAllString(text, "")
	text = ansiCharsetRe.ReplaceAllString(text, "")
	text = spinnerRe.ReplaceAllString(text, "")
	text = strings.Map(func(r rune) rune {
		if boxRunes[r] {
			return -1
		}
		return r
	}, text)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r\f\v")
	}
	return collapseEmptyLines(lines)
}

// collapseEmptyLines squeezes runs of blank lines down to a single blank
// and drops leading and trailing blanks entirely.
func collapseEmptyLines(lines []string) string {
	out := make([]string, 0, len(lines))
	pendingBlank := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			pendingBlank = true
			continue
		}
		if pendingBlank && len(out) > 0 {
			out = append(out, "")
		}
		pendingBlank = false
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
