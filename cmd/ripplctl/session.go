package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:       "session <volunteer|org>",
	Short:     "Start a session and print its token",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"volunteer", "org"},
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := api().Session(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ %s session %s\n", s.UserType, s.Subject)
		fmt.Fprintf(cmd.OutOrStdout(), "export RIPPL_TOKEN=%s\n", s.Token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the volunteer profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := api().Me(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  level %d  %d/%d XP  %d total XP  %.1f h  streak %d\n",
			p.Name, p.Level, p.CurrentXP, p.TargetXP, p.TotalXP, p.TotalHours, p.Streak)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(meCmd)
}
