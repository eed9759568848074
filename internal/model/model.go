package model

import (
	"bytes"
	"fmt"
	"time"
)

// Display names used when a time entry references a project or activity
// that is not in the local collections.
const (
	UnknownProject  = "Unknown Project"
	UnknownActivity = "Unknown Activity"
)

// Flag is a boolean the backend encodes as 0 or 1.
type Flag bool

// MarshalJSON encodes the flag as 0 or 1.
func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

// UnmarshalJSON accepts 0/1, true/false, their quoted forms and null.
func (f *Flag) UnmarshalJSON(data []byte) error {
	switch string(bytes.Trim(data, `"`)) {
	case "1", "true":
		*f = true
	case "0", "false", "", "null":
		*f = false
	default:
		return fmt.Errorf("invalid flag value %s", data)
	}
	return nil
}

// Project is a categorization dimension for time entries.
type Project struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     Flag   `json:"is_enabled"`
}

// Activity is the second categorization dimension for time entries.
type Activity struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Enabled Flag   `json:"is_enabled"`
}

// TimeEntry is a start/end interval attributed to a project and activity.
// End is nil while the entry is running.
type TimeEntry struct {
	ID         int64      `json:"id" yaml:"id"`
	ProjectID  int64      `json:"project_id" yaml:"project_id"`
	ActivityID int64      `json:"activity_id" yaml:"activity_id"`
	Start      time.Time  `json:"start" yaml:"start"`
	End        *time.Time `json:"end" yaml:"end"`
	Comment    string     `json:"comment" yaml:"comment"`

	// Joined from the local collections at fetch time.
	ProjectName  string `json:"-" yaml:"project"`
	ActivityName string `json:"-" yaml:"activity"`
}

// Running reports whether the entry has not been stopped yet.
func (e TimeEntry) Running() bool {
	return e.End == nil
}

// Duration returns the tracked duration, counting a running entry up to now.
func (e TimeEntry) Duration(now time.Time) time.Duration {
	if e.End != nil {
		return e.End.Sub(e.Start)
	}
	return now.Sub(e.Start)
}

// DailyObjective is a user-defined task item with a done/undone state.
type DailyObjective struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
	Done    Flag   `json:"is_done"`
}

// ProjectInput is the payload for creating or updating a project.
type ProjectInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TimeEntryInput is the payload for starting a new time entry. The server
// stamps the start time when Start is nil.
type TimeEntryInput struct {
	ProjectID  int64      `json:"project_id"`
	ActivityID int64      `json:"activity_id"`
	Start      *time.Time `json:"start,omitempty"`
	Comment    string     `json:"comment,omitempty"`
}

// StopInput is the payload for stopping a time entry. The server stamps the
// end time when End is nil.
type StopInput struct {
	End     *time.Time `json:"end,omitempty"`
	Comment string     `json:"comment,omitempty"`
}

// ObjectiveInput is the payload for creating or updating a daily objective.
type ObjectiveInput struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}
