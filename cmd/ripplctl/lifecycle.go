package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"rippl-backend/internal/tasks"
)

var (
	applyPitch      string
	applyMotivation string
	applyResume     string
	applyPortfolio  string

	reviewApprove bool
	reviewDecline bool

	submitSummary string
	submitLink    string
	submitFiles   []string
)

var applyCmd = &cobra.Command{
	Use:   "apply <id>",
	Short: "Apply to a mission",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := api().Apply(cmd.Context(), tasks.ApplyRequest{
			TaskID:       args[0],
			Pitch:        applyPitch,
			Motivation:   applyMotivation,
			ResumeName:   applyResume,
			PortfolioURL: applyPortfolio,
		})
		return done(cmd, t, err)
	},
}

var reviewCmd = &cobra.Command{
	Use:   "review <id>",
	Short: "Accept or decline an application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if reviewApprove == reviewDecline {
			return errors.New("pass exactly one of --approve or --decline")
		}
		t, err := api().Review(cmd.Context(), args[0], reviewApprove)
		return done(cmd, t, err)
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit <id>",
	Short: "Submit evidence of work",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files := make([]tasks.EvidenceFile, 0, len(submitFiles))
		for _, name := range submitFiles {
			files = append(files, tasks.EvidenceFile{Name: name})
		}
		t, err := api().SubmitEvidence(cmd.Context(), tasks.EvidenceRequest{
			TaskID:  args[0],
			Summary: submitSummary,
			Link:    submitLink,
			Files:   files,
		})
		return done(cmd, t, err)
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify <id>",
	Short: "Verify a submission and award the reward",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := api().Verify(cmd.Context(), args[0])
		return done(cmd, t, err)
	},
}

var rejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Send a submission back for rework",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := api().Reject(cmd.Context(), args[0])
		return done(cmd, t, err)
	},
}

func done(cmd *cobra.Command, t tasks.Task, err error) error {
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✅ %s: %s\n", t.Title, colorStatus(t.Status))
	return nil
}

func init() {
	rootCmd.AddCommand(applyCmd, reviewCmd, submitCmd, verifyCmd, rejectCmd)

	applyCmd.Flags().StringVar(&applyPitch, "pitch", "", "Why you fit this mission")
	applyCmd.Flags().StringVar(&applyMotivation, "motivation", "", "What drives you")
	applyCmd.Flags().StringVar(&applyResume, "resume", "", "Resume file name")
	applyCmd.Flags().StringVar(&applyPortfolio, "portfolio", "", "Portfolio URL")
	_ = applyCmd.MarkFlagRequired("pitch")
	_ = applyCmd.MarkFlagRequired("motivation")

	reviewCmd.Flags().BoolVar(&reviewApprove, "approve", false, "Accept the application")
	reviewCmd.Flags().BoolVar(&reviewDecline, "decline", false, "Decline the application")

	submitCmd.Flags().StringVar(&submitSummary, "summary", "", "What you did")
	submitCmd.Flags().StringVar(&submitLink, "link", "", "Link to the deliverable")
	submitCmd.Flags().StringArrayVar(&submitFiles, "file", nil, "Attached file name (repeatable)")
	_ = submitCmd.MarkFlagRequired("summary")
}
