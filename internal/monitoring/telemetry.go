// Package monitoring - telemetry.go records execution traces to JSONL.
//
// DESIGN: Tracker appends one JSON object per proxied command run to an
// executions.jsonl file, immediately after each event, so an external
// tail or a crashed session still sees every run. Tracing is off by
// default and switched on by metrics.trace in the config.
package monitoring

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// Tracker handles execution trace recording to file and stderr.
type Tracker struct {
	config  TelemetryConfig
	logPath string
	count   int
	mu      sync.Mutex
}

// NewTracker creates a new telemetry tracker.
func NewTracker(cfg TelemetryConfig) (*Tracker, error) {
	t := &Tracker{
		config: cfg,
	}

	if !cfg.Enabled {
		return t, nil
	}

	if cfg.LogPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0750); err != nil {
			return nil, err
		}
		t.logPath = cfg.LogPath
		// Create empty file if it doesn't exist
		if _, err := os.Stat(cfg.LogPath); os.IsNotExist(err) {
			if f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY, 0600); err == nil {
				f.Close()
			}
		}
	}

	return t, nil
}

// appendJSONL appends a single JSON object as a line to the file.
func appendJSONL(path string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(data)
	return err
}

// RecordExecution records one proxied command run.
func (t *Tracker) RecordExecution(event *ExecutionEvent) {
	if !t.config.Enabled {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.config.LogToStderr {
		log.Debug().
			Str("command", event.OriginalCommand).
			Str("category", event.Category).
			Int("tokens_saved", event.TokensSaved).
			Int("exit_code", event.ExitCode).
			Msg("telemetry")
	}

	if t.logPath != "" {
		if err := appendJSONL(t.logPath, event); err != nil {
			log.Error().Err(err).Str("path", t.logPath).Msg("telemetry: failed to write execution event")
		} else {
			t.count++
		}
	}
}

// Close logs a session summary when anything was recorded.
func (t *Tracker) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.logPath != "" && t.count > 0 {
		log.Debug().
			Str("path", t.logPath).
			Int("events", t.count).
			Msg("telemetry: session complete")
	}

	return nil
}
