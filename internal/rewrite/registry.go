package rewrite

import (
	"regexp"

	"github.com/compresr/ctk/internal/compact"
)

// category recognizes one command family. patterns are tried in order.
// When subcommands is non-empty, a matching line must also extract to a
// listed subcommand before the family claims it.
type category struct {
	name        compact.Category
	patterns    []*regexp.Regexp
	subcommands []string
	extract     func(cmd string) (string, bool)
}

func (c category) allows(sub string) bool {
	for _, s := range c.subcommands {
		if s == sub {
			return true
		}
	}
	return false
}

func compileAll(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile(p)
	}
	return res
}

// categories is scanned first to last; the first family whose pattern hits
// and whose subcommand validation passes claims the line.
var categories = []category{
	{
		name: compact.CategoryDocker,
		patterns: compileAll(
			`^docker\s+compose\s+`,
			`^docker\s+ps`,
			`^docker\s+images`,
			`^docker\s+logs`,
			`^docker\s+run`,
			`^docker\s+build`,
			`^docker\s+exec`,
			`^docker\s+inspect`,
			`^docker\s+cp`,
		),
		subcommands: []string{"compose", "ps", "images", "logs", "run", "build", "exec", "inspect", "cp"},
		extract:     extractDocker,
	},
	{
		name:     compact.CategoryGit,
		patterns: compileAll(`^git\s+`),
		subcommands: []string{
			"status", "diff", "log", "add", "commit", "push", "pull",
			"branch", "fetch", "stash", "show", "merge", "rebase", "checkout",
		},
		extract: extractGit,
	},
	{
		name: compact.CategoryGH,
		patterns: compileAll(
			`^gh\s+pr`,
			`^gh\s+issue`,
			`^gh\s+run`,
			`^gh\s+api`,
			`^gh\s+release`,
		),
		subcommands: []string{"pr", "issue", "run", "api", "release"},
		extract:     extractSimple,
	},
	{
		name:        compact.CategoryKubectl,
		patterns:    compileAll(`^kubectl\s+`),
		subcommands: []string{"get", "describe", "logs", "top"},
		extract:     extractKubectl,
	},
	{
		name: compact.CategoryFiles,
		patterns: compileAll(
			`^ls(\s|$)`,
			`^tree(\s|$)`,
			`^cat\s+`,
			`^rg\s+`,
			`^grep\s+`,
			`^find\s+`,
			`^diff\s+`,
			`^head\s+`,
			`^du(\s|$)`,
			`^rm(\s|$)`,
			`^ln(\s|$)`,
			`^mv(\s|$)`,
			`^stat\s+`,
		),
	},
	{
		name: compact.CategorySystem,
		patterns: compileAll(
			`^ps\s+`,
			`^free(\s|$)`,
			`^date(\s|$)`,
			`^whoami(\s|$)`,
			`^uname(\s|$)`,
			`^dpkg\s+`,
			`^apt(\s|$)`,
			`^pkill\s+`,
			`^top(\s|$)`,
			`^htop(\s|$)`,
		),
	},
	{
		name: compact.CategoryPython,
		patterns: compileAll(
			`^pytest(\s|$)`,
			`^python\s+-m\s+pytest`,
			`^ruff\s+`,
			`^pip\s+`,
			`^uv\s+pip\s+`,
		),
	},
	{
		name: compact.CategoryNode,
		patterns: compileAll(
			`^pnpm\s+test`,
			`^pnpm\s+tsc`,
			`^pnpm\s+lint`,
			`^pnpm\s+playwright`,
			`^pnpm\s+(list|ls|outdated)`,
			`^npm\s+test`,
			`^npm\s+run\s+`,
			`^(npx\s+)?vitest`,
			`^(npx\s+)?vue-tsc`,
			`^(npx\s+)?tsc`,
			`^(npx\s+)?eslint`,
			`^(npx\s+)?prettier`,
			`^(npx\s+)?playwright`,
			`^(npx\s+)?prisma`,
		),
	},
	{
		name:        compact.CategoryRust,
		patterns:    compileAll(`^cargo\s+`),
		subcommands: []string{"build", "test", "check", "run", "clippy", "fmt"},
		extract:     extractCargo,
	},
	{
		name: compact.CategoryGo,
		patterns: compileAll(
			`^go\s+test`,
			`^go\s+build`,
			`^go\s+vet`,
			`^go\s+mod`,
			`^go\s+list`,
		),
	},
	{
		name: compact.CategoryNetwork,
		patterns: compileAll(
			`^curl\s+`,
			`^wget\s+`,
		),
	},
}
