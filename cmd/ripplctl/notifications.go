package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"rippl-backend/internal/notifications"
)

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Show the notification feed, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ns, err := api().Notifications(cmd.Context())
		if err != nil {
			return err
		}
		if len(ns) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No notifications.")
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Type", "Message", "When"})
		for _, n := range ns {
			t.AppendRow(table.Row{colorSeverity(n.Type), n.Text, n.CreatedAt.Local().Format("Jan 2 15:04")})
		}
		t.Render()
		return nil
	},
}

func colorSeverity(s notifications.Severity) string {
	switch s {
	case notifications.SeveritySuccess:
		return text.FgHiGreen.Sprintf("%s", s)
	case notifications.SeverityWarning:
		return text.FgHiYellow.Sprintf("%s", s)
	default:
		return text.FgHiBlue.Sprintf("%s", s)
	}
}

func init() {
	rootCmd.AddCommand(notificationsCmd)
}
