package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var startComment string

var startCmd = &cobra.Command{
	Use:   "start <project> <activity>",
	Short: "Start tracking an activity on a project",
	Long: `Start tracking an activity on a project.

Project and activity are given by id or by name (case-insensitive). Only
enabled projects and activities can be tracked. Fails when an activity is
already running; stop it first.`,
	Args:        cobra.ExactArgs(2),
	Annotations: route(routeTracking),
	RunE:        runStart,
}

func init() {
	startCmd.Flags().StringVar(&startComment, "comment", "", "Optional comment")
}

func runStart(cmd *cobra.Command, args []string) error {
	a := current
	ctx := cmd.Context()
	if err := a.loadTracking(ctx); err != nil {
		return err
	}

	project, err := findProject(a.store.Projects(), args[0])
	if err != nil {
		return err
	}
	activity, err := findActivity(a.store.Activities(), args[1])
	if err != nil {
		return err
	}

	entry, err := a.store.StartActivity(ctx, project.ID, activity.ID, startComment)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Started %s on %q at %s\n",
		entry.ActivityName, entry.ProjectName, entry.Start.Local().Format("15:04:05"))
	return nil
}
