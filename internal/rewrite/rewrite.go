// Package rewrite decides whether a shell command line should run through
// the ctk proxy and what the proxied form looks like.
//
// DESIGN: An ordered registry of command families (registry.go) pairs
// name patterns with optional subcommand allowlists. A line is first
// split into prefix (environment assignments, sudo) and body; the body is
// scanned against the registry and, when a family carries an allowlist,
// the subcommand is extracted flag-aware (extract.go) and validated.
// The rewritten form is always prefix + "ctk " + body: the proxy re-runs
// the untouched body itself, so no argument is ever lost in translation.
//
// FILES:
//   - rewrite.go:  Result, prefix splitting, ShouldRewrite
//   - registry.go: the ordered command-family registry
//   - extract.go:  flag-aware subcommand extraction per tool
//
// All tables are compiled at init; classification is pure and safe to
// call concurrently.
package rewrite

import (
	"regexp"
	"strings"

	"github.com/compresr/ctk/internal/compact"
)

// Result describes one classified command line.
type Result struct {
	// Original is the line exactly as given.
	Original string

	// Rewritten is the proxied form, prefix + "ctk " + body. Empty when
	// the line is left alone.
	Rewritten string

	// Category tags the command family for the output pipeline. Empty
	// when the line is left alone.
	Category compact.Category
}

// ===== PREFIX HANDLING =====

var (
	envAssignRe = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*=[^\s]*\s+)+`)
	sudoRe      = regexp.MustCompile(`^sudo(\s+-[A-Za-z]+(\s+[^\s]+)?)?\s+`)
)

// ExtractPrefix splits leading environment assignments and a sudo
// invocation off the command body. The prefix keeps its trailing space so
// it can be re-attached verbatim in front of the rewritten command.
func ExtractPrefix(cmdline string) (prefix, body string) {
	body = cmdline
	if m := envAssignRe.FindString(body); m != "" {
		prefix += m
		body = body[len(m):]
	}
	if m := sudoRe.FindString(body); m != "" {
		prefix += m
		body = body[len(m):]
	}
	return prefix, body
}

// ===== CLASSIFICATION =====

// ShouldRewrite reports whether cmdline should be replaced with a proxied
// equivalent and returns the classification. Empty lines, lines already
// invoking the proxy, and heredocs are never rewritten. A recognized tool
// with a subcommand outside its allowlist is also left alone so that the
// proxy only wraps output shapes it knows how to compact.
func ShouldRewrite(cmdline string) (Result, bool) {
	res := Result{Original: cmdline}

	// rtk is the proxy's former name.
	if cmdline == "" || strings.HasPrefix(cmdline, "ctk ") || strings.HasPrefix(cmdline, "rtk ") {
		return res, false
	}
	// Heredoc bodies do not survive re-invocation through the proxy.
	if strings.Contains(cmdline, "<<") {
		return res, false
	}

	prefix, body := ExtractPrefix(cmdline)

	for _, cat := range categories {
		for _, re := range cat.patterns {
			if !re.MatchString(body) {
				continue
			}
			if len(cat.subcommands) > 0 && cat.extract != nil {
				sub, ok := cat.extract(body)
				if ok && !cat.allows(sub) {
					// Known tool, unlisted subcommand: keep scanning.
					continue
				}
			}
			res.Rewritten = prefix + "ctk " + body
			res.Category = cat.name
			return res, true
		}
	}

	return res, false
}
