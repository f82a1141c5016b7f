package compact

import "regexp"

// compilePatterns builds case-insensitive matchers. MatchString searches
// anywhere in the line; patterns anchor themselves where needed.
func compilePatterns(exprs []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		res = append(res, regexp.MustCompile(`(?i)`+expr))
	}
	return res
}

// skipPatterns drop boilerplate that wastes tokens in every category:
// separators, progress chatter, timing, log noise, package-manager filler.
var skipPatterns = compilePatterns([]string{
	`^\s*$`,
	// Separator lines
	`^=+$`,
	`^-+$`,
	`^\++$`,
	`^\*+$`,
	`^~+$`,
	`^#+$`,
	// Progress and status messages
	`^\s*(Using|Fetching|Downloading|Installing|Building|Compiling|Processing|Analyzing|Checking|Validating|Verifying|Resolving|Preparing|Generating|Creating|Updating|Removing|Cleaning|Unpacking|Configuring|Setting up|Linking)`,
	`^\s*\d+%\s*\|.*\|`,
	`^\s*\d+%\s+complete`,
	`^\s*\[\d+/\d+\]`,
	`^\s*>\s*\d+(/\d+)?`,
	// Log levels
	`^\s*WARN\b`,
	`^\s*DEBUG\b`,
	`^\s*TRACE\b`,
	`^\s*notice\b`,
	`^\s*verbose\b`,
	// Timing info
	`^\s*Done in\s+[\d.]+[smh]?`,
	`^\s*Completed in\s+[\d.]+`,
	`^\s*Finished in\s+[\d.]+`,
	`^\s*Took\s+[\d.]+`,
	`^\s*Time:\s+[\d.]+`,
	`^\s*Duration:\s+[\d.]+`,
	`^\s*real\s+\d+m\d+`,
	`^\s*user\s+\d+m\d+`,
	`^\s*sys\s+\d+m\d+`,
	// UI noise
	`^\s*\.{3,}$`,
	`^\s*please wait`,
	`^\s*loading`,
	`^\s*spinning up`,
	`^\s*starting\s+`,
	`^\s*initializing`,
	`^\s*running\s+`,
	// Package manager noise
	`^npm warn`,
	`^npm notice`,
	`^yarn warn`,
	`^pnpm warn`,
	`^warning:`,
	`^deprecation`,
	`^deprecated`,
	`up to date`,
	`already installed`,
	`nothing to do`,
	`no changes`,
	`skipping`,
	`^\s*ok\s*$`,
	`^\s*success\s*$`,
	`^\s*pass\s*$`,
	`^\s*passed\s*$`,
	`^\s*fail\s*$`,
	`^\s*failed\s*$`,
	`^\s*error:\s*$`,
	// npm/pnpm specific
	`^\s*funding\s+message`,
	`^\s*audited\b`,
	`^\s*packages?\s*:\s*\d+`,
	`^\s*Lockfile\s+is\s+up`,
	`^added\s+\d+\s+packages`,
	`^removed\s+\d+\s+packages`,
	`^changed\s+\d+\s+packages`,
	`^\d+\s+packages\s+are\s+looking\s+for\s+funding`,
	// Build/test noise
	`Compiling\s+`,
	`Finished\s+dev`,
	`Running\s+unittests`,
	`^\s*test\s+result:\s+ok`,
	`^\s*\d+\s+passed`,
	`^\s*\d+\s+tests?\s+ran`,
	// Hints
	"^See `",
	"^Run `",
	"^Try `",
})

// infoLogRe is kept out of skipPatterns: alembic reports every migration
// it runs at INFO level, so stripping INFO there erases the whole result.
var infoLogRe = regexp.MustCompile(`(?i)^\s*INFO\b`)

// gitSensitivePatterns look like status noise anywhere else but are the
// payload for git status; applied to every category except git.
var gitSensitivePatterns = compilePatterns([]string{
	`^\s*(created|deleted|modified|changed|added|removed|updated|copied|moved|renamed):`,
})

// categoryPatterns add noise filters specific to one command family.
var categoryPatterns = map[Category][]*regexp.Regexp{
	CategoryDocker: compilePatterns([]string{
		`^\s*CONTAINER ID`,
		`^\s*IMAGE\s+COMMAND`,
		`^\s*NAMESPACE`,
		`^\s*NETWORK ID`,
		`^\s*VOLUME NAME`,
	}),
	CategoryDockerCompose: compilePatterns([]string{
		`^\s*NAME\s+COMMAND`,
		`Network\s+\S+\s+created`,
		`Container\s+\S+\s+(Started|Created)`,
		`^\s*Attaching to`,
		`^\s*Creating`,
		`^\s*Starting`,
	}),
	CategoryNode: compilePatterns([]string{
		`^\s*up to date`,
		`^\s*audited`,
		`^\s*funding`,
		`^added \d+ packages`,
		`^removed \d+ packages`,
		`^changed \d+ packages`,
		`^\s*packages:`,
		`^\s*auditing`,
		`^\s*WARN\s+\d+\s+deprecated`,
		`^Progress:\s+resolved`,
		`^Done in\s+[\d.]+s`,
		`dependencies:\s*$`,
		`devDependencies:\s*$`,
		`^\s*Lockfile`,
	}),
	CategoryPython: compilePatterns([]string{
		`^\s*==`,
		`^\s*---`,
		`^collected \d+ items`,
		`^=\d+ passed`,
		`^=\d+ failed`,
		`^=\d+ skipped`,
		`^\s*PASSED\s*\[`,
		`^\s*passed\s*$`,
	}),
	CategoryGit: compilePatterns([]string{
		`^\s*$`,
		`^\s*On branch`,
		`^\s*Your branch`,
	}),
}

// FilterLines drops every line matching a skip pattern for the category.
// Order within the kept lines is preserved.
func FilterLines(lines []string, category Category) []string {
	patterns := make([]*regexp.Regexp, 0, len(skipPatterns)+16)
	patterns = append(patterns, skipPatterns...)
	if category != CategoryAlembic {
		patterns = append(patterns, infoLogRe)
	}
	patterns = append(patterns, categoryPatterns[category]...)
	if category != CategoryGit {
		patterns = append(patterns, gitSensitivePatterns...)
	}

	kept := make([]string, 0, len(lines))
lineLoop:
	for _, line := range lines {
		for _, re := range patterns {
			if re.MatchString(line) {
				continue lineLoop
			}
		}
		kept = append(kept, line)
	}
	return kept
}
