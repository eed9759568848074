package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var activitiesCmd = &cobra.Command{
	Use:         "activities",
	Short:       "List the activities that can be tracked",
	Args:        cobra.NoArgs,
	Annotations: route(routeActivities),
	RunE:        runActivities,
}

func runActivities(cmd *cobra.Command, args []string) error {
	a := current
	if err := a.store.FetchActivities(cmd.Context()); err != nil {
		return err
	}

	activities := a.store.Activities()
	if len(activities) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No activities found.")
		return nil
	}
	rows := make([][]string, 0, len(activities))
	for _, act := range activities {
		rows = append(rows, []string{strconv.FormatInt(act.ID, 10), act.Name})
	}
	printTable(cmd.OutOrStdout(), []string{"ID", "NAME"}, rows)
	return nil
}
