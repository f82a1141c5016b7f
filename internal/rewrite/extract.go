package rewrite

import (
	"regexp"
	"strings"
)

// ===== FLAG-AWARE SUBCOMMAND EXTRACTION =====
//
// Tools accept global flags between the command name and the subcommand
// ("git -C /repo status", "kubectl -n prod get pods"). Each extractor
// strips its tool's flag shapes, then takes the first word left over.

var (
	gitToolRe  = regexp.MustCompile(`^git\s+`)
	gitFlagRes = []*regexp.Regexp{
		regexp.MustCompile(`(-C|-c)\s+[^\s]+\s*`),
		regexp.MustCompile(`--[a-z-]+=[^\s]+\s*`),
		regexp.MustCompile(`--(no-pager|no-optional-locks|bare|literal-pathspecs)\s*`),
	}

	dockerToolRe  = regexp.MustCompile(`^docker\s+`)
	dockerFlagRes = []*regexp.Regexp{
		regexp.MustCompile(`(-H|--context|--config)\s+[^\s]+\s*`),
		regexp.MustCompile(`--[a-z-]+=[^\s]+\s*`),
	}

	kubectlToolRe  = regexp.MustCompile(`^kubectl\s+`)
	kubectlFlagRes = []*regexp.Regexp{
		regexp.MustCompile(`(-n|--namespace|--context)\s+[^\s]+\s*`),
		regexp.MustCompile(`--[a-z-]+=[^\s]+\s*`),
	}

	cargoToolRe  = regexp.MustCompile(`^cargo\s+`)
	cargoFlagRes = []*regexp.Regexp{
		regexp.MustCompile(`\+[^\s]+\s*`),
	}
)

// firstWordAfter strips every flag pattern from rest and returns the first
// word left standing.
func firstWordAfter(rest string, flags []*regexp.Regexp) (string, bool) {
	for _, re := range flags {
		rest = re.ReplaceAllString(rest, "")
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", false
	}
	return fields[0], true
}

func extractGit(cmd string) (string, bool) {
	return firstWordAfter(gitToolRe.ReplaceAllString(cmd, ""), gitFlagRes)
}

// extractDocker folds every "docker compose ..." invocation into the single
// compose subcommand; plain docker strips connection flags first.
func extractDocker(cmd string) (string, bool) {
	rest := dockerToolRe.ReplaceAllString(cmd, "")
	if strings.HasPrefix(rest, "compose") {
		return "compose", true
	}
	return firstWordAfter(rest, dockerFlagRes)
}

func extractKubectl(cmd string) (string, bool) {
	return firstWordAfter(kubectlToolRe.ReplaceAllString(cmd, ""), kubectlFlagRes)
}

// extractCargo skips a pinned toolchain ("cargo +nightly build").
func extractCargo(cmd string) (string, bool) {
	return firstWordAfter(cargoToolRe.ReplaceAllString(cmd, ""), cargoFlagRes)
}

// extractSimple takes the second word ("gh pr list" -> "pr").
func extractSimple(cmd string) (string, bool) {
	fields := strings.Fields(cmd)
	if len(fields) < 2 {
		return "", false
	}
	return fields[1], true
}
