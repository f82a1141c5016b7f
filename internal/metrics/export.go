package metrics

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// exportLimit caps exports so a long-lived database cannot balloon a
// single export into hundreds of megabytes.
const exportLimit = 10000

// ExportJSON renders the stored history, newest first, as a pretty JSON
// array.
func (d *DB) ExportJSON() (string, error) {
	rows, err := d.History(exportLimit, "")
	if err != nil {
		return "", fmt.Errorf("export json: %w", err)
	}

	out := "[]"
	for _, e := range rows {
		doc := ""
		doc, _ = sjson.Set(doc, "id", e.ID)
		doc, _ = sjson.Set(doc, "timestamp", e.Timestamp.Format(timeLayout))
		doc, _ = sjson.Set(doc, "original_command", e.OriginalCommand)
		if e.RewrittenCommand != "" {
			doc, _ = sjson.Set(doc, "rewritten_command", e.RewrittenCommand)
		} else {
			doc, _ = sjson.Set(doc, "rewritten_command", nil)
		}
		doc, _ = sjson.Set(doc, "category", e.Category)
		doc, _ = sjson.Set(doc, "exec_time_ms", e.ExecTimeMS)
		doc, _ = sjson.Set(doc, "original_tokens", e.OriginalTokens)
		doc, _ = sjson.Set(doc, "filtered_tokens", e.FilteredTokens)
		doc, _ = sjson.Set(doc, "tokens_saved", e.TokensSaved)
		doc, _ = sjson.Set(doc, "savings_percent", e.SavingsPercent)

		out, _ = sjson.SetRaw(out, "-1", doc)
	}

	return gjson.Get(out, "@pretty").String(), nil
}

// csvHeader matches the executions table column order.
var csvHeader = []string{
	"id", "timestamp", "original_command", "rewritten_command", "category",
	"exec_time_ms", "original_tokens", "filtered_tokens", "tokens_saved",
	"savings_percent",
}

// ExportCSV renders the stored history, newest first, as CSV with a
// header row.
func (d *DB) ExportCSV() (string, error) {
	rows, err := d.History(exportLimit, "")
	if err != nil {
		return "", fmt.Errorf("export csv: %w", err)
	}

	var buf strings.Builder
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("export csv: %w", err)
	}
	for _, e := range rows {
		rec := []string{
			e.ID,
			e.Timestamp.Format(timeLayout),
			e.OriginalCommand,
			e.RewrittenCommand,
			e.Category,
			strconv.FormatInt(e.ExecTimeMS, 10),
			strconv.Itoa(e.OriginalTokens),
			strconv.Itoa(e.FilteredTokens),
			strconv.Itoa(e.TokensSaved),
			strconv.FormatFloat(e.SavingsPercent, 'g', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return "", fmt.Errorf("export csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("export csv: %w", err)
	}

	return buf.String(), nil
}

// Clear deletes records older than the given days; <= 0 deletes all.
// Returns the number of rows removed.
func (d *DB) Clear(olderThanDays int) (int64, error) {
	var res sql.Result
	var err error

	if olderThanDays > 0 {
		res, err = d.db.Exec(
			"DELETE FROM executions WHERE timestamp < datetime('now', ?)",
			fmt.Sprintf("-%d days", olderThanDays))
	} else {
		res, err = d.db.Exec("DELETE FROM executions")
	}
	if err != nil {
		return 0, fmt.Errorf("clear executions: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear executions: %w", err)
	}
	return n, nil
}
