package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// ===== HELPERS =====

func mustOpen(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "metrics.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func record(t *testing.T, db *DB, e Execution) {
	t.Helper()
	require.NoError(t, db.Record(&e))
}

// ===== OPEN / RECORD =====

func TestOpen_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "share", "metrics.db")

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestRecord_AssignsIDAndTimestamp(t *testing.T) {
	db := mustOpen(t)

	e := Execution{OriginalCommand: "git status", Category: "git"}
	require.NoError(t, db.Record(&e))

	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Timestamp.IsZero())

	rows, err := db.History(10, "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, e.ID, rows[0].ID)
	assert.Equal(t, "git status", rows[0].OriginalCommand)
}

// ===== SUMMARY =====

func TestSummary_Aggregates(t *testing.T) {
	db := mustOpen(t)
	now := time.Now().UTC()

	record(t, db, Execution{
		Timestamp: now.Add(-3 * time.Minute), OriginalCommand: "git status",
		RewrittenCommand: "ctk git status", Category: "git",
		OriginalTokens: 200, FilteredTokens: 100, TokensSaved: 100, SavingsPercent: 50.0,
	})
	record(t, db, Execution{
		Timestamp: now.Add(-2 * time.Minute), OriginalCommand: "docker ps",
		RewrittenCommand: "ctk docker ps", Category: "docker",
		OriginalTokens: 100, FilteredTokens: 50, TokensSaved: 50, SavingsPercent: 25.0,
	})
	record(t, db, Execution{
		Timestamp: now.Add(-1 * time.Minute), OriginalCommand: "whoami",
		Category: "system",
		OriginalTokens: 10, FilteredTokens: 10, TokensSaved: 0, SavingsPercent: 0.0,
	})

	s, err := db.Summary(0)
	require.NoError(t, err)

	assert.Equal(t, 3, s.TotalCommands)
	assert.Equal(t, 2, s.RewrittenCommands)
	assert.Equal(t, 310, s.TotalOriginalTokens)
	assert.Equal(t, 160, s.TotalFilteredTokens)
	assert.Equal(t, 150, s.TotalTokensSaved)
	assert.Equal(t, 25.0, s.AvgSavingsPercent)
	assert.Equal(t, 100, s.MaxTokensSaved)
	assert.Equal(t, 0, s.MinTokensSaved)
}

func TestSummary_EmptyDatabase(t *testing.T) {
	db := mustOpen(t)

	s, err := db.Summary(0)
	require.NoError(t, err)

	assert.Equal(t, 0, s.TotalCommands)
	assert.Equal(t, 0, s.TotalTokensSaved)
	assert.Equal(t, 0.0, s.AvgSavingsPercent)
}

func TestSummary_WindowExcludesOldRows(t *testing.T) {
	db := mustOpen(t)
	now := time.Now().UTC()

	record(t, db, Execution{
		Timestamp: now.Add(-10 * 24 * time.Hour), OriginalCommand: "git log", Category: "git",
		TokensSaved: 500,
	})
	record(t, db, Execution{
		Timestamp: now.Add(-1 * time.Hour), OriginalCommand: "git status", Category: "git",
		TokensSaved: 40,
	})

	recent, err := db.Summary(7)
	require.NoError(t, err)
	assert.Equal(t, 1, recent.TotalCommands)
	assert.Equal(t, 40, recent.TotalTokensSaved)

	all, err := db.Summary(0)
	require.NoError(t, err)
	assert.Equal(t, 2, all.TotalCommands)
}

// ===== HISTORY =====

func TestHistory_NewestFirstAndLimit(t *testing.T) {
	db := mustOpen(t)
	now := time.Now().UTC()

	record(t, db, Execution{Timestamp: now.Add(-3 * time.Minute), OriginalCommand: "ls", Category: "files"})
	record(t, db, Execution{Timestamp: now.Add(-2 * time.Minute), OriginalCommand: "git status", Category: "git"})
	record(t, db, Execution{Timestamp: now.Add(-1 * time.Minute), OriginalCommand: "docker ps", Category: "docker"})

	rows, err := db.History(2, "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "docker ps", rows[0].OriginalCommand)
	assert.Equal(t, "git status", rows[1].OriginalCommand)
}

func TestHistory_CategoryFilter(t *testing.T) {
	db := mustOpen(t)
	now := time.Now().UTC()

	record(t, db, Execution{Timestamp: now.Add(-3 * time.Minute), OriginalCommand: "git status", Category: "git"})
	record(t, db, Execution{Timestamp: now.Add(-2 * time.Minute), OriginalCommand: "docker ps", Category: "docker"})
	record(t, db, Execution{Timestamp: now.Add(-1 * time.Minute), OriginalCommand: "git log", Category: "git"})

	rows, err := db.History(10, "git")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, "git", r.Category)
	}
	assert.Equal(t, "git log", rows[0].OriginalCommand)
}

// ===== RANKINGS =====

func TestTopCommands_RanksByCount(t *testing.T) {
	db := mustOpen(t)
	now := time.Now().UTC()

	for i := 0; i < 3; i++ {
		record(t, db, Execution{
			Timestamp: now.Add(time.Duration(-i-10) * time.Minute),
			OriginalCommand: "git status", Category: "git", TokensSaved: 10,
		})
	}
	record(t, db, Execution{
		Timestamp: now.Add(-1 * time.Minute),
		OriginalCommand: "docker ps", Category: "docker", TokensSaved: 500,
	})

	top, err := db.TopCommands(0, 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "git status", top[0].Command)
	assert.Equal(t, 3, top[0].Count)
	assert.Equal(t, 30, top[0].TokensSaved)
}

func TestTopSavers_RanksBySavings(t *testing.T) {
	db := mustOpen(t)
	now := time.Now().UTC()

	for i := 0; i < 3; i++ {
		record(t, db, Execution{
			Timestamp: now.Add(time.Duration(-i-10) * time.Minute),
			OriginalCommand: "git status", Category: "git", TokensSaved: 10,
		})
	}
	record(t, db, Execution{
		Timestamp: now.Add(-1 * time.Minute),
		OriginalCommand: "docker ps", Category: "docker", TokensSaved: 500,
	})

	top, err := db.TopSavers(0, 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "docker ps", top[0].Command)
	assert.Equal(t, 500, top[0].TokensSaved)
	assert.Equal(t, 1, top[0].Count)
}

func TestByCategory_OrdersBySavings(t *testing.T) {
	db := mustOpen(t)
	now := time.Now().UTC()

	record(t, db, Execution{
		Timestamp: now.Add(-3 * time.Minute), OriginalCommand: "git status",
		Category: "git", TokensSaved: 10, SavingsPercent: 30.0,
	})
	record(t, db, Execution{
		Timestamp: now.Add(-2 * time.Minute), OriginalCommand: "git log",
		Category: "git", TokensSaved: 20, SavingsPercent: 50.0,
	})
	record(t, db, Execution{
		Timestamp: now.Add(-1 * time.Minute), OriginalCommand: "docker ps",
		Category: "docker", TokensSaved: 100, SavingsPercent: 80.0,
	})

	cats, err := db.ByCategory(0)
	require.NoError(t, err)
	require.Len(t, cats, 2)

	assert.Equal(t, "docker", cats[0].Category)
	assert.Equal(t, 100, cats[0].TokensSaved)

	assert.Equal(t, "git", cats[1].Category)
	assert.Equal(t, 2, cats[1].Count)
	assert.Equal(t, 30, cats[1].TokensSaved)
	assert.Equal(t, 40.0, cats[1].AvgSavings)
}

func TestDaily_GroupsByDate(t *testing.T) {
	db := mustOpen(t)
	now := time.Now().UTC()

	base := now.Add(-2 * time.Minute)
	record(t, db, Execution{
		Timestamp: base, OriginalCommand: "git status", Category: "git",
		TokensSaved: 10, SavingsPercent: 20.0,
	})
	record(t, db, Execution{
		Timestamp: base.Add(time.Second), OriginalCommand: "docker ps", Category: "docker",
		TokensSaved: 30, SavingsPercent: 40.0,
	})
	record(t, db, Execution{
		Timestamp: now.Add(-3 * 24 * time.Hour), OriginalCommand: "ls", Category: "files",
		TokensSaved: 5, SavingsPercent: 10.0,
	})

	days, err := db.Daily(7)
	require.NoError(t, err)
	require.Len(t, days, 2)

	assert.Equal(t, 2, days[0].Commands)
	assert.Equal(t, 40, days[0].TokensSaved)
	assert.Equal(t, 30.0, days[0].AvgSavings)

	assert.Equal(t, 1, days[1].Commands)
	assert.Equal(t, 5, days[1].TokensSaved)
}

// ===== EXPORT =====

func TestExportJSON_RendersHistory(t *testing.T) {
	db := mustOpen(t)
	now := time.Now().UTC()

	record(t, db, Execution{
		Timestamp: now.Add(-2 * time.Minute), OriginalCommand: "whoami", Category: "system",
	})
	record(t, db, Execution{
		Timestamp: now.Add(-1 * time.Minute), OriginalCommand: "git status",
		RewrittenCommand: "ctk git status", Category: "git", TokensSaved: 42,
	})

	out, err := db.ExportJSON()
	require.NoError(t, err)
	require.True(t, gjson.Valid(out))

	arr := gjson.Parse(out).Array()
	require.Len(t, arr, 2)

	assert.Equal(t, "git status", gjson.Get(out, "0.original_command").String())
	assert.Equal(t, "ctk git status", gjson.Get(out, "0.rewritten_command").String())
	assert.Equal(t, int64(42), gjson.Get(out, "0.tokens_saved").Int())

	assert.Equal(t, "whoami", gjson.Get(out, "1.original_command").String())
	assert.Equal(t, gjson.Null, gjson.Get(out, "1.rewritten_command").Type)
}

func TestExportCSV_HeaderAndRows(t *testing.T) {
	db := mustOpen(t)
	now := time.Now().UTC()

	record(t, db, Execution{
		Timestamp: now.Add(-2 * time.Minute), OriginalCommand: "git status",
		RewrittenCommand: "ctk git status", Category: "git",
		OriginalTokens: 80, FilteredTokens: 30, TokensSaved: 50, SavingsPercent: 62.5,
	})

	out, err := db.ExportCSV()
	require.NoError(t, err)

	recs, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, csvHeader, recs[0])
	assert.Equal(t, "git status", recs[1][2])
	assert.Equal(t, "git", recs[1][4])
	assert.Equal(t, "50", recs[1][8])
	assert.Equal(t, "62.5", recs[1][9])
}

// ===== CLEAR =====

func TestClear_OlderThanDays(t *testing.T) {
	db := mustOpen(t)
	now := time.Now().UTC()

	record(t, db, Execution{Timestamp: now.Add(-10 * 24 * time.Hour), OriginalCommand: "git log", Category: "git"})
	record(t, db, Execution{Timestamp: now.Add(-9 * 24 * time.Hour), OriginalCommand: "git show", Category: "git"})
	record(t, db, Execution{Timestamp: now.Add(-1 * time.Hour), OriginalCommand: "git status", Category: "git"})

	n, err := db.Clear(7)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	s, err := db.Summary(0)
	require.NoError(t, err)
	assert.Equal(t, 1, s.TotalCommands)
}

func TestClear_All(t *testing.T) {
	db := mustOpen(t)
	now := time.Now().UTC()

	record(t, db, Execution{Timestamp: now.Add(-2 * time.Minute), OriginalCommand: "ls", Category: "files"})
	record(t, db, Execution{Timestamp: now.Add(-1 * time.Minute), OriginalCommand: "ls -la", Category: "files"})

	n, err := db.Clear(0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	s, err := db.Summary(0)
	require.NoError(t, err)
	assert.Equal(t, 0, s.TotalCommands)
}
