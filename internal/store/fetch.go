package store

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/Tiliavir/trivial-time-client/internal/model"
)

func enabledProjects(ps []model.Project) []model.Project {
	out := make([]model.Project, 0, len(ps))
	for _, p := range ps {
		if p.Enabled {
			out = append(out, p)
		}
	}
	return out
}

func enabledActivities(as []model.Activity) []model.Activity {
	out := make([]model.Activity, 0, len(as))
	for _, a := range as {
		if a.Enabled {
			out = append(out, a)
		}
	}
	return out
}

// FetchAllData loads enabled projects and activities concurrently. Nothing is
// applied unless both requests succeed.
func (s *Store) FetchAllData(ctx context.Context) error {
	var (
		projects   []model.Project
		activities []model.Activity
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projects, err = s.api.ListProjects(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		activities, err = s.api.ListActivities(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return s.fail("FetchAllData", "Error while fetching projects and activities", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = enabledProjects(projects)
	s.activities = enabledActivities(activities)
	s.projectsLoaded = true
	s.activitiesLoaded = true
	return nil
}

// FetchEnabledProjects loads enabled projects unless already loaded.
func (s *Store) FetchEnabledProjects(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.projectsLoaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}

	projects, err := s.api.ListProjects(ctx)
	if err != nil {
		return s.fail("FetchEnabledProjects", "Error while fetching projects", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = enabledProjects(projects)
	s.projectsLoaded = true
	return nil
}

// FetchAllProjects always reloads every project, enabled or not. It clears
// the loaded flag, so a later FetchEnabledProjects narrows the list to
// enabled ones again.
func (s *Store) FetchAllProjects(ctx context.Context) error {
	projects, err := s.api.ListProjects(ctx)
	if err != nil {
		return s.fail("FetchAllProjects", "Error while fetching projects", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = projects
	s.projectsLoaded = false
	return nil
}

// FetchActivities loads enabled activities unless already loaded.
func (s *Store) FetchActivities(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.activitiesLoaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}

	activities, err := s.api.ListActivities(ctx)
	if err != nil {
		return s.fail("FetchActivities", "Error while fetching activities", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = enabledActivities(activities)
	s.activitiesLoaded = true
	return nil
}

// FetchTimeEntries reloads time entries and joins project and activity names
// from the local collections. When no entry is tracked as running, the most
// recently started open entry becomes the current one.
func (s *Store) FetchTimeEntries(ctx context.Context) error {
	return s.fetchTimeEntries(ctx, true)
}

// fetchTimeEntries reloads entries; adopt controls whether an open entry is
// picked up when none is tracked.
func (s *Store) fetchTimeEntries(ctx context.Context, adopt bool) error {
	entries, err := s.api.ListTimeEntries(ctx)
	if err != nil {
		return s.fail("FetchTimeEntries", "Error while fetching time entries", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range entries {
		entries[i].ProjectName = model.UnknownProject
		if j := indexOf(s.projects, entries[i].ProjectID, projectKey); j >= 0 {
			entries[i].ProjectName = s.projects[j].Name
		}
		entries[i].ActivityName = model.UnknownActivity
		if j := indexOf(s.activities, entries[i].ActivityID, activityKey); j >= 0 {
			entries[i].ActivityName = s.activities[j].Name
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Start.Before(entries[j].Start) })
	s.timeEntries = entries

	if s.current != nil {
		// Keep the pointer in step with the server's view of the entry.
		if i := indexOf(entries, s.current.ID, entryKey); i >= 0 && entries[i].Running() {
			c := entries[i]
			s.current = &c
			return nil
		}
		s.current = nil
	}
	if !adopt {
		return nil
	}
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Running() {
			c := entries[i]
			s.current = &c
			break
		}
	}
	return nil
}

// FetchObjectives loads daily objectives unless already loaded.
func (s *Store) FetchObjectives(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.objectivesLoaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	return s.RefreshObjectives(ctx)
}

// RefreshObjectives always reloads daily objectives.
func (s *Store) RefreshObjectives(ctx context.Context) error {
	objectives, err := s.api.ListObjectives(ctx)
	if err != nil {
		return s.fail("FetchObjectives", "Error while fetching daily objectives", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objectives = objectives
	s.objectivesLoaded = true
	return nil
}
