// Package monitoring - types.go defines shared types.
//
// DESIGN: These types are used by both cmd/ and monitoring/ packages.
// Defined here ONCE to avoid duplication and circular imports.
//
// TYPES:
//   - ExecutionEvent: Trace data for each proxied command run
//   - Config types:   TelemetryConfig, LoggerConfig
package monitoring

import "time"

// =============================================================================
// EVENT TYPES - Structured data for telemetry recording
// =============================================================================

// ExecutionEvent captures one command run through the proxy.
type ExecutionEvent struct {
	Timestamp        time.Time `json:"timestamp"`
	OriginalCommand  string    `json:"original_command"`
	RewrittenCommand string    `json:"rewritten_command,omitempty"`
	Category         string    `json:"category"`
	ExitCode         int       `json:"exit_code"`
	ExecTimeMS       int64     `json:"exec_time_ms"`
	OriginalTokens   int       `json:"original_tokens"`
	FilteredTokens   int       `json:"filtered_tokens"`
	TokensSaved      int       `json:"tokens_saved"`
	SavingsPercent   float64   `json:"savings_percent"`
	Filtered         bool      `json:"filtered"`
}

// =============================================================================
// CONFIG TYPES
// =============================================================================

// TelemetryConfig contains execution trace configuration.
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	LogPath     string `yaml:"log_path"`
	LogToStderr bool   `yaml:"log_to_stderr"`
}

// LoggerConfig contains logging configuration.
type LoggerConfig struct {
	Level   string `yaml:"level"`  // debug, info, warn, error
	Format  string `yaml:"format"` // json, console
	Output  string `yaml:"output"` // stderr, stdout, or file path
	NoColor bool   `yaml:"no_color"`
}
