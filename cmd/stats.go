package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/trivial-time-client/internal/stats"
	"github.com/Tiliavir/trivial-time-client/internal/timecalc"
)

var (
	statsToday  bool
	statsWeek   bool
	statsMonth  bool
	statsFormat string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show time totals per project and activity",
	Long: `Show time totals per project and activity.

Covers the current ISO week unless --today or --month is given. Running
entries count up to now.`,
	Args:        cobra.NoArgs,
	Annotations: route(routeStats),
	RunE:        runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsToday, "today", false, "Totals for today")
	statsCmd.Flags().BoolVar(&statsWeek, "week", false, "Totals for this week (default)")
	statsCmd.Flags().BoolVar(&statsMonth, "month", false, "Totals for this month")
	statsCmd.Flags().StringVar(&statsFormat, "format", "md", "Output format: md, json, yaml, csv")
	statsCmd.MarkFlagsMutuallyExclusive("today", "week", "month")
}

func runStats(cmd *cobra.Command, args []string) error {
	a := current
	if err := a.loadTracking(cmd.Context()); err != nil {
		return err
	}

	now := time.Now()
	window, label := timecalc.Week(now), timecalc.ISOWeekLabel(now)
	switch {
	case statsToday:
		window, label = timecalc.Day(now), now.Format("2006-01-02")
	case statsMonth:
		window, label = timecalc.Month(now), now.Format("January 2006")
	}

	sum := stats.Summarize(a.store.TimeEntries(), window, now)
	return writeStats(cmd.OutOrStdout(), statsFormat, label, sum)
}

func writeStats(w io.Writer, format, label string, sum stats.Summary) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sum)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(sum)
	case "csv":
		fmt.Fprintln(w, "kind,name,seconds")
		for _, t := range sum.Projects {
			fmt.Fprintf(w, "project,%s,%d\n", csvEscape(t.Name), t.Seconds)
		}
		for _, t := range sum.Activities {
			fmt.Fprintf(w, "activity,%s,%d\n", csvEscape(t.Name), t.Seconds)
		}
		return nil
	case "md":
		printStats(w, label, sum)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want md, json, yaml or csv)", format)
	}
}

func printStats(w io.Writer, label string, sum stats.Summary) {
	fmt.Fprintf(w, "# %s\n\n", label)
	fmt.Fprintf(w, "Total: %s across %d entries\n", timecalc.FormatDuration(sum.TotalSeconds), sum.Entries)
	if sum.Entries == 0 {
		return
	}
	section := func(title string, totals []stats.Total) {
		fmt.Fprintf(w, "\n## %s\n", title)
		rows := make([][]string, 0, len(totals))
		for _, t := range totals {
			rows = append(rows, []string{t.Name, timecalc.FormatDuration(t.Seconds), share(t.Seconds, sum.TotalSeconds)})
		}
		printTable(w, []string{"NAME", "TIME", "SHARE"}, rows)
	}
	section("Projects", sum.Projects)
	section("Activities", sum.Activities)
}

func share(part, total int64) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%d%%", part*100/total)
}
