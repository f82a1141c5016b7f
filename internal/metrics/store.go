// Package metrics persists per-execution token savings in SQLite and
// serves the aggregations behind ctk gain.
//
// DESIGN: One table, executions, one row per proxied command. Writers
// insert and never update; every analytics view is a GROUP BY over the
// same rows, filtered by an optional trailing-days window evaluated
// inside SQLite (datetime('now', '-N days')) so Go never re-implements
// date math. The pure-Go driver keeps the binary CGO-free.
//
// FILES:
//   - store.go:  Store interface, SQLite implementation, aggregations
//   - export.go: JSON/CSV export and retention trimming
package metrics

import (
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// timeLayout matches SQLite's datetime('now') text format so stored
// timestamps compare correctly against SQL-side window expressions.
const timeLayout = "2006-01-02 15:04:05"

// Execution is one recorded command run.
type Execution struct {
	ID               string
	Timestamp        time.Time
	OriginalCommand  string
	RewrittenCommand string // empty when the command ran unproxied
	Category         string
	ExecTimeMS       int64
	OriginalTokens   int
	FilteredTokens   int
	TokensSaved      int
	SavingsPercent   float64
}

// Summary aggregates all executions inside a window.
type Summary struct {
	TotalCommands       int
	RewrittenCommands   int
	TotalOriginalTokens int
	TotalFilteredTokens int
	TotalTokensSaved    int
	AvgSavingsPercent   float64
	MaxTokensSaved      int
	MinTokensSaved      int
}

// CommandStats aggregates the runs of one distinct command line.
type CommandStats struct {
	Command        string
	Count          int
	TokensSaved    int
	AvgSavings     float64
	OriginalTokens int
	FilteredTokens int
}

// CategoryStats aggregates one command category.
type CategoryStats struct {
	Category       string
	Count          int
	TokensSaved    int
	AvgSavings     float64
	OriginalTokens int
	FilteredTokens int
}

// DayStats aggregates one calendar day.
type DayStats struct {
	Date        string
	Commands    int
	TokensSaved int
	AvgSavings  float64
}

// Store is what the CLI layers need from the metrics backend.
type Store interface {
	// Record inserts one execution, assigning ID and timestamp when unset.
	Record(e *Execution) error

	// Summary aggregates the last days days; days <= 0 means all time.
	Summary(days int) (Summary, error)

	// History returns the newest executions, optionally one category only.
	History(limit int, category string) ([]Execution, error)

	// TopCommands ranks distinct command lines by run count.
	TopCommands(days, limit int) ([]CommandStats, error)

	// TopSavers ranks distinct command lines by total tokens saved.
	TopSavers(days, limit int) ([]CommandStats, error)

	// ByCategory aggregates per category, biggest saver first.
	ByCategory(days int) ([]CategoryStats, error)

	// Daily aggregates per calendar day, newest first.
	Daily(days int) ([]DayStats, error)

	// ExportJSON renders the stored history as a JSON array.
	ExportJSON() (string, error)

	// ExportCSV renders the stored history as CSV with a header row.
	ExportCSV() (string, error)

	// Clear deletes records older than the given days; <= 0 deletes all.
	Clear(olderThanDays int) (int64, error)

	// Close releases the database handle.
	Close() error
}

// DB is the SQLite-backed store.
type DB struct {
	db   *sql.DB
	path string
}

// Ensure DB implements Store
var _ Store = (*DB)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS executions (
    id TEXT PRIMARY KEY,
    timestamp TEXT NOT NULL,
    original_command TEXT NOT NULL,
    rewritten_command TEXT,
    category TEXT,
    exec_time_ms INTEGER DEFAULT 0,
    original_tokens INTEGER DEFAULT 0,
    filtered_tokens INTEGER DEFAULT 0,
    tokens_saved INTEGER DEFAULT 0,
    savings_percent REAL DEFAULT 0.0
);

CREATE INDEX IF NOT EXISTS idx_executions_timestamp ON executions(timestamp);
CREATE INDEX IF NOT EXISTS idx_executions_category ON executions(category);
`

// Open opens the metrics database at path, creating the file, its parent
// directories, and the schema as needed.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open metrics db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &DB{db: db, path: path}, nil
}

// Close releases the database handle.
func (d *DB) Close() error {
	return d.db.Close()
}

// Record inserts one execution, assigning ID and timestamp when unset.
func (d *DB) Record(e *Execution) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	var rewritten any
	if e.RewrittenCommand != "" {
		rewritten = e.RewrittenCommand
	}

	_, err := d.db.Exec(`
        INSERT INTO executions
        (id, timestamp, original_command, rewritten_command, category, exec_time_ms,
         original_tokens, filtered_tokens, tokens_saved, savings_percent)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.Timestamp.UTC().Format(timeLayout),
		e.OriginalCommand,
		rewritten,
		e.Category,
		e.ExecTimeMS,
		e.OriginalTokens,
		e.FilteredTokens,
		e.TokensSaved,
		e.SavingsPercent,
	)
	if err != nil {
		return fmt.Errorf("record execution: %w", err)
	}
	return nil
}

// sinceClause builds the optional trailing-window WHERE fragment.
func sinceClause(days int) (string, []any) {
	if days <= 0 {
		return "", nil
	}
	return "WHERE timestamp >= datetime('now', ?)", []any{fmt.Sprintf("-%d days", days)}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Summary aggregates the last days days; days <= 0 means all time.
func (d *DB) Summary(days int) (Summary, error) {
	where, params := sinceClause(days)

	query := fmt.Sprintf(`
        SELECT
            COUNT(*),
            COALESCE(SUM(CASE WHEN rewritten_command IS NOT NULL THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(original_tokens), 0),
            COALESCE(SUM(filtered_tokens), 0),
            COALESCE(SUM(tokens_saved), 0),
            COALESCE(AVG(savings_percent), 0),
            COALESCE(MAX(tokens_saved), 0),
            COALESCE(MIN(tokens_saved), 0)
        FROM executions %s`, where)

	var s Summary
	var avg float64
	err := d.db.QueryRow(query, params...).Scan(
		&s.TotalCommands,
		&s.RewrittenCommands,
		&s.TotalOriginalTokens,
		&s.TotalFilteredTokens,
		&s.TotalTokensSaved,
		&avg,
		&s.MaxTokensSaved,
		&s.MinTokensSaved,
	)
	if err != nil {
		return Summary{}, fmt.Errorf("summary query: %w", err)
	}

	s.AvgSavingsPercent = round1(avg)
	return s, nil
}

// History returns the newest executions, optionally one category only.
func (d *DB) History(limit int, category string) ([]Execution, error) {
	where := ""
	var params []any
	if category != "" {
		where = "WHERE category = ?"
		params = append(params, category)
	}
	params = append(params, limit)

	query := fmt.Sprintf(`
        SELECT id, timestamp, original_command, rewritten_command, category,
               exec_time_ms, original_tokens, filtered_tokens, tokens_saved, savings_percent
        FROM executions %s
        ORDER BY timestamp DESC
        LIMIT ?`, where)

	rows, err := d.db.Query(query, params...)
	if err != nil {
		return nil, fmt.Errorf("history query: %w", err)
	}
	defer rows.Close()

	var out []Execution
	for rows.Next() {
		var (
			e         Execution
			ts        string
			rewritten sql.NullString
			cat       sql.NullString
		)
		if err := rows.Scan(&e.ID, &ts, &e.OriginalCommand, &rewritten, &cat,
			&e.ExecTimeMS, &e.OriginalTokens, &e.FilteredTokens, &e.TokensSaved, &e.SavingsPercent); err != nil {
			return nil, fmt.Errorf("history scan: %w", err)
		}
		e.Timestamp, _ = time.Parse(timeLayout, ts)
		e.RewrittenCommand = rewritten.String
		e.Category = cat.String
		out = append(out, e)
	}
	return out, rows.Err()
}

// topByCommand backs TopCommands and TopSavers; orderBy must be one of
// the aggregate expressions below.
func (d *DB) topByCommand(days, limit int, orderBy string) ([]CommandStats, error) {
	where, params := sinceClause(days)
	params = append(params, limit)

	query := fmt.Sprintf(`
        SELECT
            original_command,
            COUNT(*),
            COALESCE(SUM(tokens_saved), 0),
            COALESCE(AVG(savings_percent), 0),
            COALESCE(SUM(original_tokens), 0),
            COALESCE(SUM(filtered_tokens), 0)
        FROM executions %s
        GROUP BY original_command
        ORDER BY %s DESC
        LIMIT ?`, where, orderBy)

	rows, err := d.db.Query(query, params...)
	if err != nil {
		return nil, fmt.Errorf("top commands query: %w", err)
	}
	defer rows.Close()

	var out []CommandStats
	for rows.Next() {
		var c CommandStats
		if err := rows.Scan(&c.Command, &c.Count, &c.TokensSaved, &c.AvgSavings,
			&c.OriginalTokens, &c.FilteredTokens); err != nil {
			return nil, fmt.Errorf("top commands scan: %w", err)
		}
		c.AvgSavings = round1(c.AvgSavings)
		out = append(out, c)
	}
	return out, rows.Err()
}

// TopCommands ranks distinct command lines by run count.
func (d *DB) TopCommands(days, limit int) ([]CommandStats, error) {
	return d.topByCommand(days, limit, "COUNT(*)")
}

// TopSavers ranks distinct command lines by total tokens saved.
func (d *DB) TopSavers(days, limit int) ([]CommandStats, error) {
	return d.topByCommand(days, limit, "SUM(tokens_saved)")
}

// ByCategory aggregates per category, biggest saver first.
func (d *DB) ByCategory(days int) ([]CategoryStats, error) {
	where, params := sinceClause(days)

	query := fmt.Sprintf(`
        SELECT
            COALESCE(category, ''),
            COUNT(*),
            COALESCE(SUM(tokens_saved), 0),
            COALESCE(AVG(savings_percent), 0),
            COALESCE(SUM(original_tokens), 0),
            COALESCE(SUM(filtered_tokens), 0)
        FROM executions %s
        GROUP BY category
        ORDER BY SUM(tokens_saved) DESC`, where)

	rows, err := d.db.Query(query, params...)
	if err != nil {
		return nil, fmt.Errorf("category query: %w", err)
	}
	defer rows.Close()

	var out []CategoryStats
	for rows.Next() {
		var c CategoryStats
		if err := rows.Scan(&c.Category, &c.Count, &c.TokensSaved, &c.AvgSavings,
			&c.OriginalTokens, &c.FilteredTokens); err != nil {
			return nil, fmt.Errorf("category scan: %w", err)
		}
		c.AvgSavings = round1(c.AvgSavings)
		out = append(out, c)
	}
	return out, rows.Err()
}

// Daily aggregates per calendar day, newest first. days <= 0 means the
// last week.
func (d *DB) Daily(days int) ([]DayStats, error) {
	if days <= 0 {
		days = 7
	}

	rows, err := d.db.Query(`
        SELECT
            date(timestamp),
            COUNT(*),
            COALESCE(SUM(tokens_saved), 0),
            COALESCE(AVG(savings_percent), 0)
        FROM executions
        WHERE timestamp >= datetime('now', ?)
        GROUP BY date(timestamp)
        ORDER BY date(timestamp) DESC`,
		fmt.Sprintf("-%d days", days))
	if err != nil {
		return nil, fmt.Errorf("daily query: %w", err)
	}
	defer rows.Close()

	var out []DayStats
	for rows.Next() {
		var s DayStats
		if err := rows.Scan(&s.Date, &s.Commands, &s.TokensSaved, &s.AvgSavings); err != nil {
			return nil, fmt.Errorf("daily scan: %w", err)
		}
		s.AvgSavings = round1(s.AvgSavings)
		out = append(out, s)
	}
	return out, rows.Err()
}
