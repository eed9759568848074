package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-time-client/internal/stats"
	"github.com/Tiliavir/trivial-time-client/internal/timecalc"
)

var statusCmd = &cobra.Command{
	Use:         "status",
	Short:       "Show the running activity and today's total",
	Args:        cobra.NoArgs,
	Annotations: route(routeTracking),
	RunE:        runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	a := current
	if err := a.loadTracking(cmd.Context()); err != nil {
		return err
	}
	now := time.Now()
	out := cmd.OutOrStdout()

	if running := a.store.Current(); running != nil {
		elapsed := int64(now.Sub(running.Start).Seconds())
		fmt.Fprintln(out, "Running:")
		fmt.Fprintf(out, "  Project:  %s\n", running.ProjectName)
		fmt.Fprintf(out, "  Activity: %s\n", running.ActivityName)
		if running.Comment != "" {
			fmt.Fprintf(out, "  Comment:  %s\n", running.Comment)
		}
		fmt.Fprintf(out, "  Since:    %s (%s)\n", running.Start.Local().Format("15:04"), humanize.Time(running.Start))
		fmt.Fprintf(out, "  Elapsed:  %s\n", timecalc.FormatDurationHHMMSS(elapsed))
	} else {
		fmt.Fprintln(out, "No running activity.")
	}

	today := stats.Summarize(a.store.TimeEntries(), timecalc.Day(now), now)
	fmt.Fprintf(out, "Today: %s logged.\n", timecalc.FormatDuration(today.TotalSeconds))
	return nil
}
