// Package mockapi is an in-memory implementation of the time-tracking
// backend. It backs the client tests and the mock-server command.
package mockapi

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Tiliavir/trivial-time-client/internal/model"
)

// Server holds the backend state for a single API key.
type Server struct {
	mu sync.Mutex

	key    string
	nextID int64
	now    func() time.Time

	projects   map[int64]model.Project
	activities map[int64]model.Activity
	entries    map[int64]model.TimeEntry
	objectives map[int64]model.DailyObjective

	calls    map[string]int
	failures map[string]int

	app *fiber.App
	log *zap.SugaredLogger
}

// Option customises a Server.
type Option func(*Server)

// WithClock replaces the server clock used to stamp start and end times.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithLogger logs every request through log.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Server) { s.log = log }
}

// New returns a Server that accepts only "Authorization: key=<key>".
func New(key string, opts ...Option) *Server {
	s := &Server{
		key:        key,
		now:        time.Now,
		projects:   map[int64]model.Project{},
		activities: map[int64]model.Activity{},
		entries:    map[int64]model.TimeEntry{},
		objectives: map[int64]model.DailyObjective{},
		calls:      map[string]int{},
		failures:   map[string]int{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.app = s.routes()
	return s
}

// App exposes the fiber application, e.g. to Listen on an address.
func (s *Server) App() *fiber.App {
	return s.app
}

// Transport returns a RoundTripper that serves requests in-process, without
// opening a socket.
func (s *Server) Transport() http.RoundTripper {
	return roundTripper{app: s.app}
}

type roundTripper struct {
	app *fiber.App
}

func (rt roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return rt.app.Test(req, -1)
}

// Calls returns how many requests reached method and path, failed or not.
func (s *Server) Calls(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method+" "+path]
}

// FailNext makes the next request to method and path answer with status.
func (s *Server) FailNext(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = status
}

// AddProject seeds a project and returns it.
func (s *Server) AddProject(name, description string, enabled bool) model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := model.Project{ID: s.id(), Name: name, Description: description, Enabled: model.Flag(enabled)}
	s.projects[p.ID] = p
	return p
}

// AddActivity seeds an activity and returns it.
func (s *Server) AddActivity(name string, enabled bool) model.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := model.Activity{ID: s.id(), Name: name, Enabled: model.Flag(enabled)}
	s.activities[a.ID] = a
	return a
}

// AddTimeEntry seeds a time entry and returns it with its assigned id.
func (s *Server) AddTimeEntry(e model.TimeEntry) model.TimeEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.id()
	s.entries[e.ID] = e
	return e
}

// Project returns the stored project with id.
func (s *Server) Project(id int64) (model.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	return p, ok
}

// TimeEntry returns the stored entry with id.
func (s *Server) TimeEntry(id int64) (model.TimeEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	return e, ok
}

// Objective returns the stored objective with id.
func (s *Server) Objective(id int64) (model.DailyObjective, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.objectives[id]
	return o, ok
}

// Seed fills the server with a small demo data set.
func (s *Server) Seed() {
	s.AddProject("Internal", "Meetings and admin", true)
	s.AddProject("Website", "Public website relaunch", true)
	s.AddProject("Legacy", "Archived work", false)
	s.AddActivity("Development", true)
	s.AddActivity("Review", true)
	s.AddActivity("Meeting", true)
	s.AddActivity("Travel", false)
}

// id allocates the next identifier. Callers hold s.mu.
func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

func sortedValues[T any](m map[int64]T) []T {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}
