package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/Tiliavir/trivial-time-client/internal/model"
)

// AddTimeEntry appends e to the local entries.
func (s *Store) AddTimeEntry(e model.TimeEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeEntries = append(s.timeEntries, e)
}

// UpdateTimeEntry applies patch to the local entry with id. Unknown ids are
// ignored.
func (s *Store) UpdateTimeEntry(id int64, patch func(*model.TimeEntry)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.timeEntries, id, entryKey); i >= 0 {
		patch(&s.timeEntries[i])
	}
}

// DeleteTimeEntry removes the local entry with id.
func (s *Store) DeleteTimeEntry(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeEntries = slices.DeleteFunc(s.timeEntries, func(e model.TimeEntry) bool { return e.ID == id })
}

// UpdateProject replaces the local project with the same id.
func (s *Store) UpdateProject(p model.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceProject(p)
}

func (s *Store) replaceProject(p model.Project) {
	if i := indexOf(s.projects, p.ID, projectKey); i >= 0 {
		s.projects[i] = p
	}
}

// UpdateActivity replaces the local activity with the same id.
func (s *Store) UpdateActivity(a model.Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.activities, a.ID, activityKey); i >= 0 {
		s.activities[i] = a
	}
}

// CreateProject creates a project and adds the server's record locally.
func (s *Store) CreateProject(ctx context.Context, name, description string) (model.Project, error) {
	p, err := s.api.CreateProject(ctx, model.ProjectInput{Name: name, Description: description})
	if err != nil {
		return model.Project{}, s.fail("CreateProject", "Failed to create project", err, "name", name)
	}

	s.mu.Lock()
	s.projects = upsert(s.projects, p, projectKey)
	s.mu.Unlock()
	s.notify.Success("Project created")
	return p, nil
}

// UpdateProjectDetails renames a project. The change is shown immediately
// and rolled back if the backend rejects it.
func (s *Store) UpdateProjectDetails(ctx context.Context, project model.Project, name, description string) error {
	var before *model.Project
	t := s.begin(
		func() {
			if i := indexOf(s.projects, project.ID, projectKey); i >= 0 {
				prev := s.projects[i]
				before = &prev
				s.projects[i].Name, s.projects[i].Description = name, description
			}
		},
		func() {
			if before != nil {
				s.replaceProject(*before)
			}
		},
	)

	if err := s.api.UpdateProject(ctx, project.ID, model.ProjectInput{Name: name, Description: description}); err != nil {
		t.revert()
		return s.fail("UpdateProjectDetails", "Failed to update project", err, "id", project.ID)
	}
	t.commit()
	s.notify.Success("Project updated")
	return nil
}

// ToggleProject enables or disables a project.
func (s *Store) ToggleProject(ctx context.Context, project model.Project, enable bool) error {
	verb, past := "disable", "disabled"
	if enable {
		verb, past = "enable", "enabled"
	}
	if err := s.api.SetProjectEnabled(ctx, project.ID, enable); err != nil {
		return s.fail("ToggleProject", "Failed to "+verb+" project", err, "id", project.ID)
	}

	project.Enabled = model.Flag(enable)
	s.UpdateProject(project)
	s.notify.Success("Project " + past)
	return nil
}

// StartActivity starts a time entry and makes it the running one. The
// server stamps the start time.
func (s *Store) StartActivity(ctx context.Context, projectID, activityID int64, comment string) (model.TimeEntry, error) {
	if running := s.Current(); running != nil {
		s.notify.Error("An activity is already running")
		return model.TimeEntry{}, fmt.Errorf("StartActivity: %w (entry %d)", ErrAlreadyRunning, running.ID)
	}

	e, err := s.api.CreateTimeEntry(ctx, model.TimeEntryInput{
		ProjectID:  projectID,
		ActivityID: activityID,
		Comment:    comment,
	})
	if err != nil {
		return model.TimeEntry{}, s.fail("StartActivity", "Failed to start activity", err,
			"project_id", projectID, "activity_id", activityID)
	}

	s.mu.Lock()
	e.ProjectName, e.ActivityName = model.UnknownProject, model.UnknownActivity
	if i := indexOf(s.projects, e.ProjectID, projectKey); i >= 0 {
		e.ProjectName = s.projects[i].Name
	}
	if i := indexOf(s.activities, e.ActivityID, activityKey); i >= 0 {
		e.ActivityName = s.activities[i].Name
	}
	s.timeEntries = upsert(s.timeEntries, e, entryKey)
	c := e
	s.current = &c
	s.mu.Unlock()

	s.notify.Success("Activity started")
	return e, nil
}

// StopActivity stops the running entry. The server is the source of truth
// for the end time; the local copy takes the returned end, then all entries
// are reloaded.
func (s *Store) StopActivity(ctx context.Context, comment string) (model.TimeEntry, error) {
	running := s.Current()
	if running == nil {
		return model.TimeEntry{}, ErrNotRunning
	}

	stopped, err := s.api.StopTimeEntry(ctx, running.ID, model.StopInput{Comment: comment})
	if err != nil {
		return model.TimeEntry{}, s.fail("StopActivity", "Failed to stop activity", err, "id", running.ID)
	}

	end := s.now()
	if stopped.End != nil {
		end = *stopped.End
	}
	result := *running
	result.End = &end
	if comment != "" {
		result.Comment = comment
	}

	s.mu.Lock()
	if i := indexOf(s.timeEntries, running.ID, entryKey); i >= 0 {
		s.timeEntries[i].End = &end
		s.timeEntries[i].Comment = result.Comment
	}
	if s.current != nil && s.current.ID == running.ID {
		s.current = nil
	}
	s.mu.Unlock()
	s.notify.Success("Activity stopped")

	// Resynchronize without adopting another open entry; a failed reload is
	// reported on its own and does not undo the stop.
	_ = s.fetchTimeEntries(ctx, false)
	return result, nil
}

// CreateObjective creates a daily objective and adds the server's record.
func (s *Store) CreateObjective(ctx context.Context, name, content string) (model.DailyObjective, error) {
	o, err := s.api.CreateObjective(ctx, model.ObjectiveInput{Name: name, Content: content})
	if err != nil {
		return model.DailyObjective{}, s.fail("CreateObjective", "Failed to create objective", err, "name", name)
	}

	s.mu.Lock()
	s.objectives = upsert(s.objectives, o, objectiveKey)
	s.mu.Unlock()
	s.notify.Success("Objective created")
	return o, nil
}

func (s *Store) replaceObjective(o model.DailyObjective) {
	if i := indexOf(s.objectives, o.ID, objectiveKey); i >= 0 {
		s.objectives[i] = o
	}
}

// beginObjective patches the stored objective with id and restores the
// snapshot taken before the patch on revert.
func (s *Store) beginObjective(id int64, patch func(*model.DailyObjective)) *tentative {
	var before *model.DailyObjective
	return s.begin(
		func() {
			if i := indexOf(s.objectives, id, objectiveKey); i >= 0 {
				prev := s.objectives[i]
				before = &prev
				patch(&s.objectives[i])
			}
		},
		func() {
			if before != nil {
				s.replaceObjective(*before)
			}
		},
	)
}

// UpdateObjective edits an objective optimistically.
func (s *Store) UpdateObjective(ctx context.Context, objective model.DailyObjective, name, content string) error {
	t := s.beginObjective(objective.ID, func(o *model.DailyObjective) {
		o.Name, o.Content = name, content
	})

	if err := s.api.UpdateObjective(ctx, objective.ID, model.ObjectiveInput{Name: name, Content: content}); err != nil {
		t.revert()
		return s.fail("UpdateObjective", "Failed to update objective", err, "id", objective.ID)
	}
	t.commit()
	s.notify.Success("Objective updated")
	return nil
}

// DeleteObjective removes an objective optimistically. On failure it is put
// back where it was.
func (s *Store) DeleteObjective(ctx context.Context, id int64) error {
	var (
		removed model.DailyObjective
		at      = -1
	)
	t := s.begin(
		func() {
			if at = indexOf(s.objectives, id, objectiveKey); at >= 0 {
				removed = s.objectives[at]
				s.objectives = slices.Delete(s.objectives, at, at+1)
			}
		},
		func() {
			if at < 0 || indexOf(s.objectives, id, objectiveKey) >= 0 {
				return
			}
			s.objectives = slices.Insert(s.objectives, min(at, len(s.objectives)), removed)
		},
	)

	if err := s.api.DeleteObjective(ctx, id); err != nil {
		t.revert()
		return s.fail("DeleteObjective", "Failed to delete objective", err, "id", id)
	}
	t.commit()
	s.notify.Success("Objective deleted")
	return nil
}

// SetObjectiveDone marks an objective done or undone optimistically.
func (s *Store) SetObjectiveDone(ctx context.Context, objective model.DailyObjective, done bool) error {
	t := s.beginObjective(objective.ID, func(o *model.DailyObjective) {
		o.Done = model.Flag(done)
	})

	if err := s.api.SetObjectiveDone(ctx, objective.ID, done); err != nil {
		t.revert()
		return s.fail("SetObjectiveDone", "Failed to update objective", err, "id", objective.ID)
	}
	t.commit()
	if done {
		s.notify.Success("Objective done")
	} else {
		s.notify.Success("Objective reopened")
	}
	return nil
}
