// Package main - gain.go renders savings analytics from the metrics
// store.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/compresr/ctk/internal/config"
	"github.com/compresr/ctk/internal/metrics"
	"github.com/compresr/ctk/internal/tui"
)

func newGainCmd() *cobra.Command {
	var (
		history  int
		daily    int
		weekly   bool
		monthly  bool
		top      int
		category string
		export   string
		output   string
		clear    int
	)
	cmd := &cobra.Command{
		Use:   "gain",
		Short: "Show token savings summary and analytics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db := openMetrics()
			if db == nil {
				return fmt.Errorf("metrics are disabled (set metrics.enabled in %s)", config.DefaultPath())
			}
			defer db.Close()

			switch {
			case cmd.Flags().Changed("clear"):
				n, err := db.Clear(clear)
				if err != nil {
					return err
				}
				tui.PrintSuccess(fmt.Sprintf("Removed %d recorded executions", n))
				return nil
			case export != "":
				return exportMetrics(db, export, output)
			case cmd.Flags().Changed("history"):
				return showHistory(db, history, category)
			case cmd.Flags().Changed("daily"):
				return showDaily(db, daily)
			}

			days := 0
			if weekly {
				days = 7
			}
			if monthly {
				days = 30
			}
			return showSummary(db, days, top)
		},
	}

	fl := cmd.Flags()
	fl.IntVar(&history, "history", 20, "show the last N executions")
	fl.IntVar(&daily, "daily", 7, "show a per-day breakdown over the last N days")
	fl.BoolVar(&weekly, "weekly", false, "summarize the last 7 days")
	fl.BoolVar(&monthly, "monthly", false, "summarize the last 30 days")
	fl.IntVarP(&top, "top", "t", 10, "number of top commands to show")
	fl.StringVar(&category, "category", "", "filter history by category")
	fl.StringVar(&export, "export", "", "export raw executions (json or csv)")
	fl.StringVarP(&output, "output", "o", "", "write the export to a file instead of stdout")
	fl.IntVar(&clear, "clear", 0, "delete executions older than N days (0 deletes everything)")
	return cmd
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
}

func showSummary(db *metrics.DB, days, top int) error {
	s, err := db.Summary(days)
	if err != nil {
		return err
	}

	period := "all time"
	if days > 0 {
		period = fmt.Sprintf("last %d days", days)
	}

	tui.PrintHeader(fmt.Sprintf("Token Savings Summary (%s)", period))
	if s.TotalCommands == 0 {
		tui.PrintWarn("No commands tracked yet. Run some commands through ctk first.")
		return nil
	}

	fmt.Printf("  Commands tracked:   %s\n", tui.FormatCount(s.TotalCommands))
	fmt.Printf("  Commands rewritten: %s\n", tui.FormatCount(s.RewrittenCommands))
	fmt.Println()
	fmt.Printf("  Tokens before: %s\n", tui.FormatCount(s.TotalOriginalTokens))
	fmt.Printf("  Tokens after:  %s\n", tui.FormatCount(s.TotalFilteredTokens))
	fmt.Printf("  Tokens saved:  %s (avg %s per command)\n",
		tui.Paint(tui.ColorGreen, tui.FormatCount(s.TotalTokensSaved)),
		tui.FormatPercent(s.AvgSavingsPercent))
	if s.MaxTokensSaved > 0 {
		fmt.Printf("  Best single command: %s tokens\n", tui.FormatCount(s.MaxTokensSaved))
	}

	cats, err := db.ByCategory(days)
	if err != nil {
		return err
	}
	if len(cats) > 0 {
		tui.PrintHeader("By Category")
		w := newTable()
		fmt.Fprintln(w, "  CATEGORY\tCOMMANDS\tBEFORE\tAFTER\tSAVED\tAVG %")
		for _, c := range cats {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\t%s\n",
				c.Category,
				tui.FormatCount(c.Count),
				tui.FormatCount(c.OriginalTokens),
				tui.FormatCount(c.FilteredTokens),
				tui.FormatCount(c.TokensSaved),
				tui.FormatPercent(c.AvgSavings))
		}
		w.Flush()
	}

	topCmds, err := db.TopCommands(days, top)
	if err != nil {
		return err
	}
	if len(topCmds) > 0 {
		tui.PrintHeader(fmt.Sprintf("Top %d Commands (by usage)", len(topCmds)))
		w := newTable()
		fmt.Fprintln(w, "  #\tCOMMAND\tCOUNT\tBEFORE\tAFTER\tSAVED\tAVG %")
		for i, c := range topCmds {
			fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				i+1,
				tui.Truncate(c.Command, 35),
				tui.FormatCount(c.Count),
				tui.FormatCount(c.OriginalTokens),
				tui.FormatCount(c.FilteredTokens),
				tui.FormatCount(c.TokensSaved),
				tui.FormatPercent(c.AvgSavings))
		}
		w.Flush()
	}

	topSavers, err := db.TopSavers(days, top)
	if err != nil {
		return err
	}
	// Skip the savers table when it would repeat the usage table.
	if len(topSavers) > 0 && !sameCommands(topCmds, topSavers) {
		tui.PrintHeader(fmt.Sprintf("Top %d Token Savers", len(topSavers)))
		w := newTable()
		fmt.Fprintln(w, "  #\tCOMMAND\tCOUNT\tSAVED\tAVG %")
		for i, c := range topSavers {
			fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%s\n",
				i+1,
				tui.Truncate(c.Command, 45),
				tui.FormatCount(c.Count),
				tui.FormatCount(c.TokensSaved),
				tui.FormatPercent(c.AvgSavings))
		}
		w.Flush()
	}

	dayRows, err := db.Daily(7)
	if err != nil {
		return err
	}
	if len(dayRows) > 0 {
		tui.PrintHeader("Daily Breakdown (Last 7 Days)")
		printDaily(dayRows)
	}
	return nil
}

func sameCommands(a, b []metrics.CommandStats) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Command != b[i].Command {
			return false
		}
	}
	return true
}

func showDaily(db *metrics.DB, days int) error {
	rows, err := db.Daily(days)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		tui.PrintWarn("No command history found")
		return nil
	}
	tui.PrintHeader(fmt.Sprintf("Daily Breakdown (Last %d Days)", days))
	printDaily(rows)
	return nil
}

func printDaily(rows []metrics.DayStats) {
	w := newTable()
	fmt.Fprintln(w, "  DATE\tCOMMANDS\tTOKENS SAVED\tAVG %")
	for _, d := range rows {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n",
			d.Date,
			tui.FormatCount(d.Commands),
			tui.FormatCount(d.TokensSaved),
			tui.FormatPercent(d.AvgSavings))
	}
	w.Flush()
}

func showHistory(db *metrics.DB, limit int, category string) error {
	rows, err := db.History(limit, category)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		tui.PrintWarn("No command history found")
		return nil
	}

	tui.PrintHeader(fmt.Sprintf("Last %d Executions", len(rows)))
	w := newTable()
	fmt.Fprintln(w, "  TIME\tCATEGORY\tCOMMAND\tBEFORE\tAFTER\tSAVED\t%")
	for _, e := range rows {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Timestamp.Format("2006-01-02 15:04:05"),
			e.Category,
			tui.Truncate(e.OriginalCommand, 35),
			tui.FormatCount(e.OriginalTokens),
			tui.FormatCount(e.FilteredTokens),
			tui.FormatCount(e.TokensSaved),
			tui.FormatPercent(e.SavingsPercent))
	}
	w.Flush()
	return nil
}

func exportMetrics(db *metrics.DB, format, output string) error {
	var data string
	var err error
	switch format {
	case "json":
		data, err = db.ExportJSON()
	case "csv":
		data, err = db.ExportCSV()
	default:
		return fmt.Errorf("invalid export format %q (must be json or csv)", format)
	}
	if err != nil {
		return err
	}

	if output == "" {
		fmt.Print(data)
		if data != "" && data[len(data)-1] != '\n' {
			fmt.Println()
		}
		return nil
	}
	if err := os.WriteFile(output, []byte(data), 0600); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	tui.PrintSuccess("Exported to " + output)
	return nil
}
