package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"rippl-backend/internal/client"
	"rippl-backend/internal/tasks"
)

var (
	newTask tasks.CreateRequest
	newLoc  string

	listCategory string
	listSearch   string
	listStatuses []string
	listSort     string
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Discover missions",
}

var listTasksCmd = &cobra.Command{
	Use:   "list",
	Short: "List missions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ts, err := api().ListTasks(cmd.Context(), client.ListOptions{
			Category: listCategory,
			Search:   listSearch,
			Statuses: listStatuses,
			Sort:     listSort,
		})
		if err != nil {
			return err
		}
		renderTasks(cmd.OutOrStdout(), ts)
		return nil
	},
}

var showTaskCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one mission",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := api().GetTask(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		renderTask(cmd.OutOrStdout(), t)
		return nil
	},
}

var postTaskCmd = &cobra.Command{
	Use:   "post <title>",
	Short: "Publish a new mission (org session)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := newTask
		req.Title = args[0]
		req.LocationType = tasks.LocationType(newLoc)
		t, err := api().CreateTask(cmd.Context(), req)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Mission %s published as %s\n", t.Title, t.ID)
		return nil
	},
}

func renderTasks(out io.Writer, ts []tasks.Task) {
	if len(ts) == 0 {
		fmt.Fprintln(out, "No missions found.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleDouble)
	t.Style().Options.SeparateRows = false

	t.AppendHeader(table.Row{
		text.FgGreen.Sprintf("ID"), text.FgGreen.Sprintf("%s", text.Bold.Sprintf("Title")),
		text.FgGreen.Sprintf("Organization"), text.FgGreen.Sprintf("Category"),
		text.FgGreen.Sprintf("XP"), text.FgGreen.Sprintf("Status"),
	})
	for _, task := range ts {
		t.AppendRow(table.Row{task.ID, task.Title, task.Organization, task.Category, task.XP, colorStatus(task.Status)})
	}
	t.Render()
}

func renderTask(out io.Writer, task tasks.Task) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)

	t.AppendRows([]table.Row{
		{"ID", task.ID},
		{"Title", task.Title},
		{"Organization", task.Organization},
		{"Category", task.Category},
		{"Status", colorStatus(task.Status)},
		{"Reward", fmt.Sprintf("%d XP / %.1f h", task.XP, task.Hours)},
		{"Deadline", task.Deadline},
		{"Location", fmt.Sprintf("%s (%s)", task.LocationName, task.LocationType)},
		{"Tags", strings.Join(task.Tags, ", ")},
	})
	if a := task.Application; a != nil {
		t.AppendRow(table.Row{"Pitch", a.Pitch})
	}
	if e := task.Evidence; e != nil {
		t.AppendRow(table.Row{"Evidence", e.Summary})
		if e.Link != "" {
			t.AppendRow(table.Row{"Link", e.Link})
		}
		for _, f := range e.Files {
			t.AppendRow(table.Row{"File", f.Name})
		}
	}
	t.Render()

	if task.Description != "" {
		fmt.Fprintln(out, task.Description)
	}
}

func colorStatus(s tasks.Status) string {
	switch s {
	case tasks.StatusUrgent, tasks.StatusDeclined:
		return text.FgHiRed.Sprintf("%s", s)
	case tasks.StatusPending, tasks.StatusInReview:
		return text.FgHiYellow.Sprintf("%s", s)
	case tasks.StatusInProgress:
		return text.FgHiBlue.Sprintf("%s", s)
	case tasks.StatusCompleted:
		return text.FgHiGreen.Sprintf("%s", s)
	default:
		return string(s)
	}
}

func init() {
	tasksCmd.AddCommand(listTasksCmd, showTaskCmd, postTaskCmd)
	rootCmd.AddCommand(tasksCmd)

	listTasksCmd.Flags().StringVar(&listCategory, "category", "", "Filter by category")
	listTasksCmd.Flags().StringVarP(&listSearch, "search", "q", "", "Search title or organization")
	listTasksCmd.Flags().StringSliceVar(&listStatuses, "status", nil, "Filter by status (repeatable)")
	listTasksCmd.Flags().StringVar(&listSort, "sort", "", "Sort by xp, newest or match")

	postTaskCmd.Flags().StringVar(&newTask.Organization, "org", "", "Organization name")
	postTaskCmd.Flags().StringVar(&newTask.Category, "category", "", "Category")
	postTaskCmd.Flags().StringVar(&newTask.Description, "description", "", "Description")
	postTaskCmd.Flags().IntVar(&newTask.XP, "xp", 100, "XP reward")
	postTaskCmd.Flags().Float64Var(&newTask.Hours, "hours", 2, "Expected hours")
	postTaskCmd.Flags().StringVar(&newTask.Deadline, "deadline", "", "Deadline, e.g. Oct 30, 2026")
	postTaskCmd.Flags().StringVar(&newLoc, "location-type", "Remote", "Remote or Physical")
	postTaskCmd.Flags().StringVar(&newTask.LocationName, "location", "", "Location name")
	postTaskCmd.Flags().BoolVar(&newTask.Urgent, "urgent", false, "Mark as urgent")
}
