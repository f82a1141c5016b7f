// Package tui provides terminal output helpers for the CLI: ANSI
// colors, status prefixes, and value formatting for the analytics
// tables.
//
// DESIGN: Coloring is a single global switch so `--no-color`,
// `display.color: never`, and non-terminal stdout all disable ANSI in
// one place. No cursor movement and no interactive state: gain and
// discover print tables and exit.
package tui

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// COLORS
// =============================================================================

const (
	ColorReset  = "\033[0m"
	ColorBold   = "\033[1m"
	ColorDim    = "\033[2m"
	ColorGreen  = "\033[0;32m"
	ColorBlue   = "\033[0;34m"
	ColorCyan   = "\033[0;36m"
	ColorYellow = "\033[1;33m"
	ColorRed    = "\033[0;31m"
)

var colorEnabled = true

// SetColor switches ANSI coloring on or off for all helpers.
func SetColor(enabled bool) { colorEnabled = enabled }

// Paint wraps s in the given ANSI code when coloring is on.
func Paint(color, s string) string {
	if !colorEnabled {
		return s
	}
	return color + s + ColorReset
}

// =============================================================================
// PRINT FUNCTIONS
// =============================================================================

// PrintHeader prints a bold section header.
func PrintHeader(title string) {
	fmt.Printf("\n%s\n", Paint(ColorBold, title))
}

// PrintSuccess prints a success message with green [OK] prefix.
func PrintSuccess(msg string) {
	fmt.Printf("%s %s\n", Paint(ColorGreen, "[OK]"), msg)
}

// PrintInfo prints an info message with blue [INFO] prefix.
func PrintInfo(msg string) {
	fmt.Printf("%s %s\n", Paint(ColorBlue, "[INFO]"), msg)
}

// PrintWarn prints a warning message with yellow [WARN] prefix.
func PrintWarn(msg string) {
	fmt.Printf("%s %s\n", Paint(ColorYellow, "[WARN]"), msg)
}

// PrintError prints an error message with red [ERROR] prefix.
func PrintError(msg string) {
	fmt.Printf("%s %s\n", Paint(ColorRed, "[ERROR]"), msg)
}

// =============================================================================
// FORMATTING
// =============================================================================

// FormatCount renders n with thousands separators ("12,345").
func FormatCount(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

// FormatPercent renders a one-decimal percentage ("62.5%").
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

// Truncate shortens s to at most max characters, ellipsizing when cut.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
