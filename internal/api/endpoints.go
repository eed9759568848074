package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Tiliavir/trivial-time-client/internal/model"
)

// ListProjects returns every project, enabled or not.
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var out []model.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProject creates a project and returns the server's representation.
func (c *Client) CreateProject(ctx context.Context, in model.ProjectInput) (model.Project, error) {
	var out model.Project
	err := c.do(ctx, http.MethodPost, "/api/projects", in, &out)
	return out, err
}

// UpdateProject replaces a project's name and description.
func (c *Client) UpdateProject(ctx context.Context, id int64, in model.ProjectInput) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/projects/%d", id), in, nil)
}

// SetProjectEnabled enables or disables a project.
func (c *Client) SetProjectEnabled(ctx context.Context, id int64, enabled bool) error {
	action := "disable"
	if enabled {
		action = "enable"
	}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/projects/%d/%s", id, action), nil, nil)
}

// ListActivities returns every activity, enabled or not.
func (c *Client) ListActivities(ctx context.Context) ([]model.Activity, error) {
	var out []model.Activity
	if err := c.do(ctx, http.MethodGet, "/api/activities", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTimeEntries returns the user's time entries.
func (c *Client) ListTimeEntries(ctx context.Context) ([]model.TimeEntry, error) {
	var out []model.TimeEntry
	if err := c.do(ctx, http.MethodGet, "/api/time-entries", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTimeEntry starts a new time entry.
func (c *Client) CreateTimeEntry(ctx context.Context, in model.TimeEntryInput) (model.TimeEntry, error) {
	var out model.TimeEntry
	err := c.do(ctx, http.MethodPost, "/api/time-entries", in, &out)
	return out, err
}

// StopTimeEntry stops a running entry. The returned entry is the zero value
// when the server answers with an empty body.
func (c *Client) StopTimeEntry(ctx context.Context, id int64, in model.StopInput) (model.TimeEntry, error) {
	var out model.TimeEntry
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/time-entries/%d/stop", id), in, &out)
	return out, err
}

// ListObjectives returns the user's daily objectives.
func (c *Client) ListObjectives(ctx context.Context) ([]model.DailyObjective, error) {
	var out []model.DailyObjective
	if err := c.do(ctx, http.MethodGet, "/api/daily-objectives", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateObjective creates a daily objective.
func (c *Client) CreateObjective(ctx context.Context, in model.ObjectiveInput) (model.DailyObjective, error) {
	var out model.DailyObjective
	err := c.do(ctx, http.MethodPost, "/api/daily-objectives", in, &out)
	return out, err
}

// UpdateObjective replaces a daily objective's name and content.
func (c *Client) UpdateObjective(ctx context.Context, id int64, in model.ObjectiveInput) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/daily-objectives/%d", id), in, nil)
}

// DeleteObjective removes a daily objective.
func (c *Client) DeleteObjective(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/daily-objectives/%d", id), nil, nil)
}

// SetObjectiveDone marks a daily objective done or undone.
func (c *Client) SetObjectiveDone(ctx context.Context, id int64, done bool) error {
	action := "undone"
	if done {
		action = "done"
	}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/daily-objectives/%d/%s", id, action), nil, nil)
}
