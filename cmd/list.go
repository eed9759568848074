package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-time-client/internal/model"
	"github.com/Tiliavir/trivial-time-client/internal/timecalc"
)

var (
	listToday bool
	listWeek  bool
)

var listCmd = &cobra.Command{
	Use:         "list",
	Short:       "List time entries",
	Args:        cobra.NoArgs,
	Annotations: route(routeTracking),
	RunE:        runList,
}

func init() {
	listCmd.Flags().BoolVar(&listToday, "today", false, "Show today's entries (default)")
	listCmd.Flags().BoolVar(&listWeek, "week", false, "Show this week's entries")
	listCmd.MarkFlagsMutuallyExclusive("today", "week")
}

func runList(cmd *cobra.Command, args []string) error {
	a := current
	if err := a.loadTracking(cmd.Context()); err != nil {
		return err
	}

	now := time.Now()
	window := timecalc.Day(now)
	if listWeek {
		window = timecalc.Week(now)
	}

	printList(cmd.OutOrStdout(), within(a.store.TimeEntries(), window, now), now)
	return nil
}

// within keeps the entries that overlap window.
func within(entries []model.TimeEntry, window timecalc.Range, now time.Time) []model.TimeEntry {
	var out []model.TimeEntry
	for _, e := range entries {
		end := now
		if e.End != nil {
			end = *e.End
		}
		if window.Overlap(e.Start, end) > 0 || (e.Running() && window.Contains(e.Start)) {
			out = append(out, e)
		}
	}
	return out
}

// printList groups entries by local date and prints them.
func printList(w io.Writer, entries []model.TimeEntry, now time.Time) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return
	}

	for i, e := range entries {
		start := e.Start.Local()
		if i == 0 || !timecalc.SameDay(entries[i-1].Start.Local(), start) {
			fmt.Fprintln(w, start.Format("2006-01-02"))
		}

		endStr := "ongoing"
		if e.End != nil {
			endStr = e.End.Local().Format("15:04")
		}
		comment := ""
		if e.Comment != "" {
			comment = "  " + e.Comment
		}

		fmt.Fprintf(w, "%s–%s  %s / %s (%s)%s\n",
			start.Format("15:04"), endStr, e.ProjectName, e.ActivityName,
			timecalc.FormatDuration(int64(e.Duration(now).Seconds())), comment)
	}
}
