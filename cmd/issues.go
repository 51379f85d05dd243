package cmd

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/lmdpipe/core/issue"
)

var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "List this year's issue dates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), issuesTable(issue.Issues(now())))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(issuesCmd)
}

func issuesTable(dates []time.Time) string {
	locale := issue.ParseLocale(cfg.Locale)
	today := now()

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Issue", "Date", "Path", "Status"})
	for _, d := range dates {
		status := "published"
		if issue.IsFuture(d, today) {
			status = "upcoming"
		}
		t.AppendRow(table.Row{
			issue.FileDate(d),
			issue.FormatDate(d, issue.LayoutLong, locale),
			issue.PathDate(d),
			status,
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return t.Render()
}
