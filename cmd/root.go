// Package main - root.go builds the cobra command tree and the shared
// application state behind it.
//
// DESIGN: Every subcommand runs through the same PersistentPreRunE, which
// loads config, applies flag overrides, and wires logging and color. The
// heavier collaborators (filter pipeline, token counter, metrics store,
// execution tracker) are built lazily because most invocations only need
// a subset of them.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/compresr/ctk/internal/compact"
	"github.com/compresr/ctk/internal/config"
	"github.com/compresr/ctk/internal/metrics"
	"github.com/compresr/ctk/internal/monitoring"
	"github.com/compresr/ctk/internal/tokens"
	"github.com/compresr/ctk/internal/tui"
)

// app holds the collaborators shared by all commands for one invocation.
var app struct {
	cfg      *config.Config
	pipeline *compact.Pipeline
	counter  tokens.Counter
	tracker  *monitoring.Tracker
}

// exitCode mirrors the proxied child process; main passes it to os.Exit.
var exitCode int

var (
	flagConfig   string
	flagVerbose  bool
	flagNoColor  bool
	flagNoFilter bool
)

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context) int {
	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "ctk: %v\n", err)
		return 1
	}
	if app.tracker != nil {
		_ = app.tracker.Close()
	}
	return exitCode
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ctk",
		Short: "Token-efficient CLI proxy for coding agents",
		Long: `ctk wraps common developer commands (git, docker, npm, pytest, ...),
runs them, and rewrites their output into a denser form so LLM coding
agents burn fewer tokens reading it. Savings are tracked per execution
and summarized by 'ctk gain'.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupApp,
	}
	root.SetVersionTemplate("ctk, version {{.Version}}\n")
	root.Flags().BoolP("version", "v", false, "print version and exit")

	pf := root.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file (default ~/.config/ctk/config.yaml)")
	pf.BoolVar(&flagVerbose, "verbose", false, "enable debug logging")
	pf.BoolVar(&flagNoColor, "no-color", false, "disable colored output")
	pf.BoolVar(&flagNoFilter, "no-filter", false, "run commands without output filtering")

	registerProxyCommands(root)
	root.AddCommand(
		newReadCmd(),
		newCatCmd(),
		newTailCmd(),
		newPingCmd(),
		newProxyCmd(),
		newGainCmd(),
		newDiscoverCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

// setupApp loads configuration and applies flag overrides before any
// command body runs.
func setupApp(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	if flagNoFilter {
		cfg.Enabled = false
	}
	if flagVerbose {
		cfg.Log.Level = "debug"
	}
	if flagNoColor {
		cfg.Display.Color = "never"
	}

	color := useColor(cfg.Display.Color)
	tui.SetColor(color)
	monitoring.Global(monitoring.LoggerConfig{
		Level:   cfg.Log.Level,
		Format:  "console",
		Output:  "stderr",
		NoColor: !color,
	})

	app.cfg = cfg
	return nil
}

// useColor resolves the display.color mode against the terminal.
func useColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}

// pipeline returns the filter pipeline, built on first use with the
// configured dedup tuning.
func pipeline() *compact.Pipeline {
	if app.pipeline == nil {
		app.pipeline = compact.New(
			compact.WithDedupeThreshold(app.cfg.Filter.DedupThreshold),
			compact.WithDedupeMinLength(app.cfg.Filter.DedupMinLength),
		)
	}
	return app.pipeline
}

// counter returns the token counter, built on first use. Loading the BPE
// ranks costs tens of milliseconds, so commands that never measure
// tokens skip it entirely.
func counter() tokens.Counter {
	if app.counter == nil {
		app.counter = tokens.NewCounter()
	}
	return app.counter
}

// openMetrics opens the savings store, or returns nil when metrics are
// disabled or the database cannot be opened. Callers must Close it.
func openMetrics() *metrics.DB {
	if !app.cfg.Metrics.Enabled {
		return nil
	}
	db, err := metrics.Open(app.cfg.DatabasePath())
	if err != nil {
		log.Warn().Err(err).Str("path", app.cfg.DatabasePath()).Msg("metrics disabled: cannot open database")
		return nil
	}
	return db
}

// tracker returns the JSONL execution tracker, built on first use. It is
// a no-op unless metrics.trace is set.
func tracker() *monitoring.Tracker {
	if app.tracker == nil {
		t, err := monitoring.NewTracker(monitoring.TelemetryConfig{
			Enabled:     app.cfg.Metrics.Trace,
			LogPath:     app.cfg.TelemetryPath(),
			LogToStderr: flagVerbose,
		})
		if err != nil {
			log.Warn().Err(err).Msg("execution trace disabled")
			t, _ = monitoring.NewTracker(monitoring.TelemetryConfig{})
		}
		app.tracker = t
	}
	return app.tracker
}
