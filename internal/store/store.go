// Package store keeps in-memory copies of the user's projects, activities,
// time entries and daily objectives, and synchronizes them with the backend.
//
// Every action calls the backend and then patches the local collections.
// Optimistic actions apply the change first and revert it when the call
// fails; confirmatory actions apply the server's answer only on success.
// Each action reports its outcome through a notify.Notifier.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Tiliavir/trivial-time-client/internal/model"
	"github.com/Tiliavir/trivial-time-client/internal/notify"
)

var (
	// ErrOperationFailed wraps every backend failure surfaced by an action.
	ErrOperationFailed = errors.New("operation failed")
	// ErrNotRunning is returned when stopping without a running entry.
	ErrNotRunning = errors.New("no activity is running")
	// ErrAlreadyRunning is returned when starting while an entry runs.
	ErrAlreadyRunning = errors.New("an activity is already running")
)

// API is the subset of the backend client the store needs.
type API interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	CreateProject(ctx context.Context, in model.ProjectInput) (model.Project, error)
	UpdateProject(ctx context.Context, id int64, in model.ProjectInput) error
	SetProjectEnabled(ctx context.Context, id int64, enabled bool) error
	ListActivities(ctx context.Context) ([]model.Activity, error)
	ListTimeEntries(ctx context.Context) ([]model.TimeEntry, error)
	CreateTimeEntry(ctx context.Context, in model.TimeEntryInput) (model.TimeEntry, error)
	StopTimeEntry(ctx context.Context, id int64, in model.StopInput) (model.TimeEntry, error)
	ListObjectives(ctx context.Context) ([]model.DailyObjective, error)
	CreateObjective(ctx context.Context, in model.ObjectiveInput) (model.DailyObjective, error)
	UpdateObjective(ctx context.Context, id int64, in model.ObjectiveInput) error
	DeleteObjective(ctx context.Context, id int64) error
	SetObjectiveDone(ctx context.Context, id int64, done bool) error
}

// Store is the domain data store. It is safe for concurrent use; two
// overlapping actions on the same entity are last-writer-wins.
type Store struct {
	api    API
	notify notify.Notifier
	log    *zap.SugaredLogger
	now    func() time.Time

	mu          sync.RWMutex
	projects    []model.Project
	activities  []model.Activity
	timeEntries []model.TimeEntry
	current     *model.TimeEntry
	objectives  []model.DailyObjective

	projectsLoaded   bool
	activitiesLoaded bool
	objectivesLoaded bool
}

// Option customises a Store.
type Option func(*Store)

// WithNotifier sets where outcomes are reported. Defaults to notify.Discard.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Store) { s.notify = n }
}

// WithLogger sets the logger for failed actions.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Store) { s.log = log }
}

// WithClock replaces the clock used to stamp locally stopped entries.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns an empty Store backed by api.
func New(api API, opts ...Option) *Store {
	s := &Store{
		api:    api,
		notify: notify.Discard,
		log:    zap.NewNop().Sugar(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reset discards all local state and load flags, e.g. on logout.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = nil
	s.activities = nil
	s.timeEntries = nil
	s.current = nil
	s.objectives = nil
	s.projectsLoaded = false
	s.activitiesLoaded = false
	s.objectivesLoaded = false
}

// Projects returns a copy of the local projects.
func (s *Store) Projects() []model.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Project(nil), s.projects...)
}

// Activities returns a copy of the local activities.
func (s *Store) Activities() []model.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Activity(nil), s.activities...)
}

// TimeEntries returns a copy of the local time entries.
func (s *Store) TimeEntries() []model.TimeEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.TimeEntry(nil), s.timeEntries...)
}

// Current returns the running entry, or nil.
func (s *Store) Current() *model.TimeEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	c := *s.current
	return &c
}

// Objectives returns a copy of the local daily objectives.
func (s *Store) Objectives() []model.DailyObjective {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.DailyObjective(nil), s.objectives...)
}

// fail logs err, shows msg and returns err wrapped in ErrOperationFailed.
func (s *Store) fail(op, msg string, err error, fields ...any) error {
	s.log.Errorw(msg, append([]any{"op", op, "error", err}, fields...)...)
	s.notify.Error(msg)
	return fmt.Errorf("%s: %w: %w", op, ErrOperationFailed, err)
}

// tentative is a local mutation that has been applied but not yet
// confirmed. Exactly one of commit or revert settles it.
type tentative struct {
	mu      *sync.RWMutex
	undo    func()
	settled bool
}

// begin applies a mutation under the store lock and returns it as tentative.
func (s *Store) begin(apply, undo func()) *tentative {
	s.mu.Lock()
	apply()
	s.mu.Unlock()
	return &tentative{mu: &s.mu, undo: undo}
}

func (t *tentative) commit() {
	t.settled = true
}

func (t *tentative) revert() {
	if t.settled {
		return
	}
	t.settled = true
	t.mu.Lock()
	t.undo()
	t.mu.Unlock()
}

// indexOf returns the position of the element with id, or -1.
func indexOf[T any](items []T, id int64, idOf func(T) int64) int {
	for i := range items {
		if idOf(items[i]) == id {
			return i
		}
	}
	return -1
}

func projectKey(p model.Project) int64          { return p.ID }
func activityKey(a model.Activity) int64        { return a.ID }
func entryKey(e model.TimeEntry) int64          { return e.ID }
func objectiveKey(o model.DailyObjective) int64 { return o.ID }

// upsert replaces the element with the same id or appends v.
func upsert[T any](items []T, v T, idOf func(T) int64) []T {
	if i := indexOf(items, idOf(v), idOf); i >= 0 {
		items[i] = v
		return items
	}
	return append(items, v)
}
