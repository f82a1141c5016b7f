// Package main - discover.go surfaces commands that ran outside the
// proxy in recorded agent sessions.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/compresr/ctk/internal/discover"
	"github.com/compresr/ctk/internal/tui"
)

func newDiscoverCmd() *cobra.Command {
	var (
		all     bool
		limit   int
		project string
		workers int
	)
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Scan Claude Code transcripts for missed rewrite opportunities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tui.PrintInfo("Analyzing Claude Code history for missed opportunities...")

			scanner := discover.NewScanner(counter(), pipeline(), discover.Options{
				Workers: workers,
				Project: project,
			})
			rep, err := scanner.Scan(cmd.Context())
			if err != nil {
				return err
			}

			if rep.Files == 0 {
				tui.PrintWarn("No Claude Code history found")
				return nil
			}
			if len(rep.Candidates) == 0 {
				tui.PrintSuccess(fmt.Sprintf("No missed opportunities in %d transcripts", rep.Files))
				return nil
			}

			n := len(rep.Candidates)
			if !all && limit > 0 && limit < n {
				n = limit
			}

			tui.PrintHeader(fmt.Sprintf("Missed Opportunities (%d commands across %d transcripts)",
				rep.Commands, rep.Files))
			w := newTable()
			fmt.Fprintln(w, "  COMMAND\tCATEGORY\tRUNS\tOUTPUT TOKENS\tPOTENTIAL SAVINGS")
			for _, c := range rep.Candidates[:n] {
				fmt.Fprintf(w, "  %s\t%s\t%d\t%s\t%s\n",
					tui.Truncate(c.Command, 45),
					c.Category,
					c.Count,
					tui.FormatCount(c.OutputTokens),
					tui.FormatCount(c.TokensSaved))
			}
			w.Flush()

			if !all && n < len(rep.Candidates) {
				tui.PrintInfo(fmt.Sprintf("%d more; use --all to see everything", len(rep.Candidates)-n))
			}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.BoolVar(&all, "all", false, "show every candidate instead of the top few")
	fl.IntVar(&limit, "limit", 10, "maximum candidates to show")
	fl.StringVar(&project, "project", "", "only scan transcripts whose path contains this substring")
	fl.IntVar(&workers, "workers", 4, "concurrent transcript readers")
	return cmd
}
