// Package main - proxy.go generates the proxied command tree.
//
// DESIGN: One registry row per wrapped command. Each row carries the
// shell template that actually runs (user args are appended verbatim,
// so flag parsing is disabled on these commands) and the filter
// category that picks the output compactor. runCommand is the single
// execution path: optional raw baseline, child run, filter, echo,
// record, and the child's exit code becomes ctk's own.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/compresr/ctk/internal/compact"
	"github.com/compresr/ctk/internal/executor"
	"github.com/compresr/ctk/internal/metrics"
	"github.com/compresr/ctk/internal/monitoring"
	"github.com/compresr/ctk/internal/tokens"
)

// comparisonTimeout bounds the baseline run used to measure savings; the
// proxied command itself is never time-limited.
const comparisonTimeout = 5 * time.Second

// proxyEntry describes one generated proxy command.
type proxyEntry struct {
	group    string           // "" for top level, else "docker", "docker compose", ...
	name     string           // subcommand name under the group
	template string           // executed prefix; user args are appended verbatim
	category compact.Category // filter dispatch and metrics tag
}

// proxyRegistry is the single source of truth for generated commands.
// Templates ending in a space take arguments; self-contained ones
// already pin their flags.
var proxyRegistry = []proxyEntry{
	// docker
	{"docker", "ps", "docker ps ", compact.CategoryDocker},
	{"docker", "images", "docker images ", compact.CategoryDocker},
	{"docker", "logs", "docker logs ", compact.CategoryDocker},
	{"docker", "exec", "docker exec ", compact.CategoryDocker},
	{"docker", "run", "docker run ", compact.CategoryDocker},
	{"docker", "build", "docker build ", compact.CategoryDocker},
	{"docker", "network", "docker network ", compact.CategoryDocker},
	{"docker", "volume", "docker volume ", compact.CategoryDocker},
	{"docker", "system", "docker system ", compact.CategoryDocker},

	// docker compose
	{"docker compose", "ps", "docker compose ps ", compact.CategoryDockerCompose},
	{"docker compose", "logs", "docker compose logs ", compact.CategoryDockerCompose},
	{"docker compose", "up", "docker compose up ", compact.CategoryDockerCompose},
	{"docker compose", "down", "docker compose down ", compact.CategoryDockerCompose},
	{"docker compose", "exec", "docker compose exec ", compact.CategoryDockerCompose},

	// git
	{"git", "status", "git status ", compact.CategoryGit},
	{"git", "diff", "git diff ", compact.CategoryGitDiff},
	{"git", "log", "git log --oneline ", compact.CategoryGitLog},
	{"git", "add", "git add ", compact.CategoryGit},
	{"git", "commit", "git commit ", compact.CategoryGit},
	{"git", "push", "git push ", compact.CategoryGit},
	{"git", "pull", "git pull ", compact.CategoryGit},
	{"git", "branch", "git branch -a ", compact.CategoryGit},
	{"git", "remote", "git remote -v ", compact.CategoryGit},
	{"git", "stash", "git stash list ", compact.CategoryGit},
	{"git", "tag", "git tag ", compact.CategoryGit},

	// kubectl
	{"kubectl", "get", "kubectl get ", compact.CategoryKubectl},
	{"kubectl", "describe", "kubectl describe ", compact.CategoryKubectl},
	{"kubectl", "logs", "kubectl logs ", compact.CategoryKubectl},

	// files
	{"", "ls", "ls ", compact.CategoryFiles},
	{"", "tree", "tree ", compact.CategoryFiles},
	{"", "grep", "grep ", compact.CategoryFiles},
	{"", "find", "find ", compact.CategoryFiles},
	{"", "du", "du ", compact.CategoryFiles},
	{"", "wc", "wc ", compact.CategoryFiles},
	{"", "stat", "stat ", compact.CategoryFiles},
	{"", "file", "file ", compact.CategoryFiles},
	{"", "sed", "sed ", compact.CategoryFiles},
	{"", "jq", "jq ", compact.CategoryFiles},

	// python
	{"", "pytest", "pytest  -q --tb=short 2>&1", compact.CategoryPython},
	{"", "ruff", "ruff ", compact.CategoryPython},
	{"", "pip", "pip ", compact.CategoryPython},

	// nodejs
	{"", "npm", "npm ", compact.CategoryNode},
	{"", "pnpm", "pnpm ", compact.CategoryNode},
	{"", "vitest", "npx vitest run --reporter=verbose 2>&1", compact.CategoryVitest},
	{"", "tsc", "npx tsc --pretty 2>&1", compact.CategoryNode},
	{"", "lint", "npx eslint --format compact 2>&1", compact.CategoryNode},
	{"", "prettier", "npx prettier ", compact.CategoryNode},

	// network
	{"", "curl", "curl -s ", compact.CategoryNetwork},
	{"", "wget", "wget -q ", compact.CategoryNetwork},
	{"", "ip", "ip ", compact.CategoryNetwork},
	{"", "ss", "ss -tuln ", compact.CategoryNetwork},

	// github
	{"", "gh", "gh ", compact.CategoryGH},

	// system
	{"", "ps", "ps aux --sort=-%mem | head -20", compact.CategorySystem},
	{"", "free", "free -h", compact.CategorySystem},
	{"", "df", "df -h ", compact.CategorySystem},
	{"", "uname", "uname -a", compact.CategorySystem},
	{"", "date", "date '+%Y-%m-%d %H:%M:%S'", compact.CategorySystem},
	{"", "env", "env | head -30", compact.CategorySystem},
	{"", "which", "which ", compact.CategorySystem},
	{"", "id", "id", compact.CategorySystem},
	{"", "pwd", "pwd", compact.CategorySystem},
	{"", "hostname", "hostname", compact.CategorySystem},
	{"", "uptime", "uptime", compact.CategorySystem},
	{"", "apt", "apt ", compact.CategorySystem},
	{"", "sqlite3", "sqlite3 ", compact.CategorySystem},

	// python servers and migrations
	{"", "alembic", "alembic ", compact.CategoryAlembic},
	{"", "uvicorn", "uvicorn ", compact.CategoryUvicorn},
}

// configCategory maps filter categories onto commands.<block> toggles in
// the config file, which are coarser than the filter's dispatch.
var configCategory = map[compact.Category]string{
	compact.CategoryGit:           "git",
	compact.CategoryGitDiff:       "git",
	compact.CategoryGitLog:        "git",
	compact.CategoryDocker:        "docker",
	compact.CategoryDockerCompose: "docker",
	compact.CategoryPython:        "python",
	compact.CategoryAlembic:       "python",
	compact.CategoryUvicorn:       "python",
	compact.CategoryNode:          "nodejs",
	compact.CategoryVitest:        "nodejs",
	compact.CategoryFiles:         "files",
	compact.CategoryNetwork:       "network",
	compact.CategorySystem:        "system",
	compact.CategoryGH:            "gh",
	compact.CategoryKubectl:       "kubectl",
	compact.CategoryRust:          "rust",
	compact.CategoryGo:            "go",
}

// registerProxyCommands adds every registry row to the root command,
// creating group commands ("docker", "docker compose") on demand.
func registerProxyCommands(root *cobra.Command) {
	groups := make(map[string]*cobra.Command)

	ensureGroup := func(path string) *cobra.Command {
		parts := strings.Fields(path)
		parent := root
		for i := range parts {
			key := strings.Join(parts[:i+1], " ")
			g, ok := groups[key]
			if !ok {
				g = &cobra.Command{
					Use:   parts[i],
					Short: fmt.Sprintf("%s commands with filtered output", key),
				}
				groups[key] = g
				parent.AddCommand(g)
			}
			parent = g
		}
		return parent
	}

	for _, e := range proxyRegistry {
		parent := root
		if e.group != "" {
			parent = ensureGroup(e.group)
		}
		parent.AddCommand(&cobra.Command{
			Use:                e.name,
			Short:              fmt.Sprintf("Run '%s' with filtered output", strings.TrimSpace(e.template)),
			DisableFlagParsing: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runProxied(cmd, e, args)
			},
		})
	}
}

func runProxied(cmd *cobra.Command, e proxyEntry, args []string) error {
	command := e.template + strings.Join(args, " ")
	return runCommand(cmd, command, e.category, e.name)
}

// runCommand executes command, compacts its output, echoes the result,
// and records the savings. The child's exit code becomes ctk's own.
func runCommand(cmd *cobra.Command, command string, category compact.Category, name string) error {
	ctx := cmd.Context()

	// Measure against what the user would have typed without ctk, when
	// that differs from the proxied command.
	var baseline string
	if raw := rawEquivalent(command); raw != "" && raw != command {
		baseline = executor.RunComparison(ctx, raw, comparisonTimeout)
	}

	res, err := executor.Run(ctx, command)
	if err != nil {
		return err
	}

	filtered := renderOutput(res.Output, category, name)
	fmt.Println(filtered)

	original := res.Output
	if baseline != "" {
		original = baseline
	}
	sav := tokens.Calculate(counter(), original, filtered)

	log.Debug().
		Str("category", string(category)).
		Int("original_tokens", sav.OriginalTokens).
		Int("filtered_tokens", sav.FilteredTokens).
		Float64("savings_pct", sav.SavingsPercent).
		Msg("output compacted")

	recordExecution(command, category, res, sav, filtered != res.Output)

	exitCode = res.ExitCode
	return nil
}

// renderOutput applies the configured degree of filtering.
func renderOutput(output string, category compact.Category, name string) string {
	if output == "" {
		return output
	}
	if !app.cfg.Enabled || !commandEnabled(category, name) {
		return output
	}
	if !app.cfg.Display.Compact {
		// Cleaned but not compressed: ANSI and noise stripped, every
		// content line kept.
		return compact.Preprocess(output)
	}
	return pipeline().FilterOutput(output, category)
}

// commandEnabled consults the per-command config toggles.
func commandEnabled(category compact.Category, name string) bool {
	block, ok := configCategory[category]
	if !ok {
		return true
	}
	return app.cfg.IsCommandEnabled(block, name)
}

// recordExecution persists one run to the metrics store and the
// optional JSONL trace.
func recordExecution(command string, category compact.Category, res executor.Result, sav tokens.Savings, filtered bool) {
	if !app.cfg.Metrics.Enabled {
		return
	}

	original := rawEquivalent(command)
	if original == "" {
		original = command
	}
	rewritten := "ctk " + command

	if db := openMetrics(); db != nil {
		defer db.Close()
		err := db.Record(&metrics.Execution{
			OriginalCommand:  original,
			RewrittenCommand: rewritten,
			Category:         string(category),
			ExecTimeMS:       res.ExecTimeMS,
			OriginalTokens:   sav.OriginalTokens,
			FilteredTokens:   sav.FilteredTokens,
			TokensSaved:      sav.TokensSaved,
			SavingsPercent:   sav.SavingsPercent,
		})
		if err != nil {
			log.Warn().Err(err).Msg("failed to record execution")
		}
	}

	tracker().RecordExecution(&monitoring.ExecutionEvent{
		Timestamp:        time.Now().UTC(),
		OriginalCommand:  original,
		RewrittenCommand: rewritten,
		Category:         string(category),
		ExitCode:         res.ExitCode,
		ExecTimeMS:       res.ExecTimeMS,
		OriginalTokens:   sav.OriginalTokens,
		FilteredTokens:   sav.FilteredTokens,
		TokensSaved:      sav.TokensSaved,
		SavingsPercent:   sav.SavingsPercent,
		Filtered:         filtered,
	})
}

// ===== BASELINE RECONSTRUCTION =====

// identicalCommands run the same with or without the proxy; savings come
// from filtering alone, so no separate baseline run exists.
var identicalCommands = map[string]bool{
	"whoami":   true,
	"hostname": true,
	"id":       true,
	"uname -a": true,
}

// compactReplacements maps proxied prefixes back to the plain command a
// user would have typed.
var compactReplacements = []struct{ proxied, raw string }{
	{"git log --oneline", "git log"},
	{"git status -s", "git status"},
	{"docker ps --format table", "docker ps"},
	{"free -h", "free"},
	{"df -h", "df"},
}

// rawEquivalent reconstructs what would have run without ctk. Empty
// means no distinct baseline exists.
func rawEquivalent(command string) string {
	if identicalCommands[command] {
		return ""
	}

	for _, r := range compactReplacements {
		if strings.HasPrefix(command, r.proxied) {
			return strings.ReplaceAll(command, r.proxied, r.raw)
		}
	}

	// Same command either way; only the filtering differs.
	if strings.HasPrefix(command, "docker compose logs ") ||
		strings.HasPrefix(command, "npm ") ||
		strings.HasPrefix(command, "pnpm ") {
		return command
	}

	if strings.Contains(command, "pytest") && strings.Contains(command, "-q") {
		raw := strings.ReplaceAll(command, " -q", "")
		return strings.ReplaceAll(raw, " --tb=short", "")
	}

	if strings.Contains(command, "ping") && strings.Contains(command, "tail -5") {
		return strings.ReplaceAll(command, " 2>&1 | tail -5", "")
	}

	return ""
}

// ===== FILE AND NETWORK HELPERS =====

// maxLinesOrDefault resolves the read/cat line cap: explicit flag, then
// display.max_lines, then 100.
func maxLinesOrDefault(n int) int {
	if n > 0 {
		return n
	}
	if app.cfg.Display.MaxLines > 0 {
		return app.cfg.Display.MaxLines
	}
	return 100
}

func requireFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file not found: %s", path)
	}
	return nil
}

func newReadCmd() *cobra.Command {
	var maxLines int
	cmd := &cobra.Command{
		Use:   "read FILE",
		Short: "Read a file with filtering (replaces cat)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFile(args[0]); err != nil {
				return err
			}
			command := fmt.Sprintf("head -%d %s", maxLinesOrDefault(maxLines), args[0])
			return runCommand(cmd, command, compact.CategoryFiles, "read")
		},
	}
	cmd.Flags().IntVarP(&maxLines, "max-lines", "n", 0, "maximum lines to show (default from config)")
	return cmd
}

func newCatCmd() *cobra.Command {
	var maxLines int
	cmd := &cobra.Command{
		Use:   "cat FILE",
		Short: "Read a file with filtering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFile(args[0]); err != nil {
				return err
			}
			command := fmt.Sprintf("head -%d %s", maxLinesOrDefault(maxLines), args[0])
			return runCommand(cmd, command, compact.CategoryFiles, "cat")
		},
	}
	cmd.Flags().IntVarP(&maxLines, "max-lines", "n", 0, "maximum lines to show (default from config)")
	return cmd
}

func newTailCmd() *cobra.Command {
	var lines int
	cmd := &cobra.Command{
		Use:   "tail FILE",
		Short: "Show the end of a file with filtering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFile(args[0]); err != nil {
				return err
			}
			command := fmt.Sprintf("tail -%d %s", lines, args[0])
			return runCommand(cmd, command, compact.CategoryFiles, "tail")
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 20, "lines to show")
	return cmd
}

func newPingCmd() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "ping HOST",
		Short: "Ping a host, keeping only the summary lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := fmt.Sprintf("ping -c %d %s 2>&1 | tail -5", count, args[0])
			return runCommand(cmd, command, compact.CategoryNetwork, "ping")
		},
	}
	cmd.Flags().IntVarP(&count, "count", "c", 3, "packets to send")
	return cmd
}

// ===== UNFILTERED PASSTHROUGH =====

// newProxyCmd runs an arbitrary command with its terminal attached, no
// filtering, recording only that the run happened.
func newProxyCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "proxy COMMAND...",
		Short:              "Run any command unfiltered but track usage",
		Args:               cobra.MinimumNArgs(1),
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			command := strings.Join(args, " ")

			res, err := executor.RunInteractive(cmd.Context(), command)
			if err != nil {
				return err
			}

			if db := openMetrics(); db != nil {
				defer db.Close()
				err := db.Record(&metrics.Execution{
					OriginalCommand: command,
					Category:        "proxy",
					ExecTimeMS:      res.ExecTimeMS,
				})
				if err != nil {
					log.Warn().Err(err).Msg("failed to record execution")
				}
			}

			exitCode = res.ExitCode
			return nil
		},
	}
}
