package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/trivial-time-client/internal/model"
	"github.com/Tiliavir/trivial-time-client/internal/timecalc"
)

var (
	exportFormat string
	exportToday  bool
	exportMonth  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export time entries to stdout",
	Long: `Export time entries to stdout.

Exports the current week unless --today or --month is given.`,
	Args:        cobra.NoArgs,
	Annotations: route(routeTracking),
	RunE:        runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json, yaml, md (Markdown table)")
	exportCmd.Flags().BoolVar(&exportToday, "today", false, "Export today's entries")
	exportCmd.Flags().BoolVar(&exportMonth, "month", false, "Export this month's entries")
	exportCmd.MarkFlagsMutuallyExclusive("today", "month")
}

// exportRow is one exported entry with its names resolved.
type exportRow struct {
	ID              int64      `json:"id" yaml:"id"`
	Project         string     `json:"project" yaml:"project"`
	Activity        string     `json:"activity" yaml:"activity"`
	Comment         string     `json:"comment" yaml:"comment"`
	Start           time.Time  `json:"start" yaml:"start"`
	End             *time.Time `json:"end" yaml:"end"`
	DurationSeconds int64      `json:"duration_seconds" yaml:"duration_seconds"`
}

func runExport(cmd *cobra.Command, args []string) error {
	a := current
	if err := a.loadTracking(cmd.Context()); err != nil {
		return err
	}

	now := time.Now()
	window := timecalc.Week(now)
	switch {
	case exportToday:
		window = timecalc.Day(now)
	case exportMonth:
		window = timecalc.Month(now)
	}
	entries := within(a.store.TimeEntries(), window, now)
	return writeExport(cmd.OutOrStdout(), exportFormat, entries, now)
}

func writeExport(w io.Writer, format string, entries []model.TimeEntry, now time.Time) error {
	rows := make([]exportRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, exportRow{
			ID:              e.ID,
			Project:         e.ProjectName,
			Activity:        e.ActivityName,
			Comment:         e.Comment,
			Start:           e.Start,
			End:             e.End,
			DurationSeconds: int64(e.Duration(now).Seconds()),
		})
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(rows)
	case "md":
		printMarkdown(w, rows)
		return nil
	case "csv":
		printCSV(w, rows)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want csv, json, yaml or md)", format)
	}
}

func printCSV(w io.Writer, rows []exportRow) {
	fmt.Fprintln(w, "date,project,activity,comment,start,end,duration_minutes")
	for _, r := range rows {
		endStr := ""
		if r.End != nil {
			endStr = r.End.Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%s,%s,%s,%s,%s,%s,%d\n",
			r.Start.Local().Format("2006-01-02"),
			csvEscape(r.Project),
			csvEscape(r.Activity),
			csvEscape(r.Comment),
			r.Start.Format(time.RFC3339),
			endStr,
			r.DurationSeconds/60,
		)
	}
}

// printMarkdown writes rows as a Markdown table.
func printMarkdown(w io.Writer, rows []exportRow) {
	fmt.Fprintln(w, "| Date | Start | End | Project | Activity | Duration | Comment |")
	fmt.Fprintln(w, "|---|---|---|---|---|---:|---|")
	for _, r := range rows {
		start := r.Start.Local()
		endStr := "ongoing"
		if r.End != nil {
			endStr = r.End.Local().Format("15:04")
		}
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s | %s |\n",
			start.Format("2006-01-02"),
			start.Format("15:04"),
			endStr,
			mdEscape(r.Project),
			mdEscape(r.Activity),
			timecalc.FormatDuration(r.DurationSeconds),
			mdEscape(r.Comment),
		)
	}
}

// mdEscape keeps a value inside one Markdown table cell.
func mdEscape(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
