// Package stats aggregates time entries into per-project and per-activity
// totals.
package stats

import (
	"sort"
	"time"

	"github.com/Tiliavir/trivial-time-client/internal/model"
	"github.com/Tiliavir/trivial-time-client/internal/timecalc"
)

// Total is the time spent on one project or activity.
type Total struct {
	Name    string `json:"name" yaml:"name"`
	Seconds int64  `json:"seconds" yaml:"seconds"`
}

// Summary is the aggregate over a time window.
type Summary struct {
	From         time.Time `json:"from" yaml:"from"`
	To           time.Time `json:"to" yaml:"to"`
	Entries      int       `json:"entries" yaml:"entries"`
	TotalSeconds int64     `json:"total_seconds" yaml:"total_seconds"`
	Projects     []Total   `json:"projects" yaml:"projects"`
	Activities   []Total   `json:"activities" yaml:"activities"`
}

// Summarize totals the part of every entry that falls inside window. Running
// entries count up to now. Totals are sorted by descending time, then name.
func Summarize(entries []model.TimeEntry, window timecalc.Range, now time.Time) Summary {
	sum := Summary{From: window.From, To: window.To}
	projects := map[string]int64{}
	activities := map[string]int64{}

	for _, e := range entries {
		end := now
		if e.End != nil {
			end = *e.End
		}
		secs := int64(window.Overlap(e.Start, end).Seconds())
		if secs <= 0 {
			continue
		}
		sum.Entries++
		sum.TotalSeconds += secs
		projects[nameOr(e.ProjectName, model.UnknownProject)] += secs
		activities[nameOr(e.ActivityName, model.UnknownActivity)] += secs
	}

	sum.Projects = sorted(projects)
	sum.Activities = sorted(activities)
	return sum
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

func sorted(m map[string]int64) []Total {
	out := make([]Total, 0, len(m))
	for name, secs := range m {
		out = append(out, Total{Name: name, Seconds: secs})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Seconds != out[j].Seconds {
			return out[i].Seconds > out[j].Seconds
		}
		return out[i].Name < out[j].Name
	})
	return out
}
