package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"whisparr/internal/journal"
	"whisparr/internal/language"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent processing results from the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := journal.Open(cfg.Journal.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No journal entries yet.")
				return nil
			}

			headers := []string{"When", "Status", "Input", "Output", "Language", "Detail"}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.CreatedAt.Local().Format(time.DateTime),
					string(entry.Status),
					entry.Input,
					entry.Output,
					language.DisplayName(entry.Language),
					entry.Detail,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRows(headers, rows, nil))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show")
	return cmd
}

// renderRows draws a table on a terminal and falls back to tab-separated
// output when stdout is redirected.
func renderRows(headers []string, rows [][]string, aligns []columnAlignment) string {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		return renderTable(headers, rows, aligns)
	}
	var b strings.Builder
	b.WriteString(strings.Join(headers, "\t"))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(strings.Join(row, "\t"))
	}
	return b.String()
}
