package mockapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/Tiliavir/trivial-time-client/internal/model"
)

func (s *Server) routes() *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(s.requestLogger)
	app.Use(s.record)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	api := app.Group("/api", s.authorize)

	api.Get("/projects", s.listProjects)
	api.Post("/projects", s.createProject)
	api.Put("/projects/:id", s.updateProject)
	api.Patch("/projects/:id/enable", s.setProjectEnabled(true))
	api.Patch("/projects/:id/disable", s.setProjectEnabled(false))

	api.Get("/activities", s.listActivities)

	api.Get("/time-entries", s.listTimeEntries)
	api.Post("/time-entries", s.createTimeEntry)
	api.Patch("/time-entries/:id/stop", s.stopTimeEntry)

	api.Get("/daily-objectives", s.listObjectives)
	api.Post("/daily-objectives", s.createObjective)
	api.Put("/daily-objectives/:id", s.updateObjective)
	api.Delete("/daily-objectives/:id", s.deleteObjective)
	api.Patch("/daily-objectives/:id/done", s.setObjectiveDone(true))
	api.Patch("/daily-objectives/:id/undone", s.setObjectiveDone(false))

	return app
}

// requestLogger logs HTTP requests with method, path, status and duration.
func (s *Server) requestLogger(c *fiber.Ctx) error {
	if s.log == nil {
		return c.Next()
	}
	start := time.Now()
	err := c.Next()
	reqID, _ := c.Locals("requestid").(string)
	s.log.Infow("http",
		"method", c.Method(),
		"path", c.OriginalURL(),
		"status", c.Response().StatusCode(),
		"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
		"request_id", reqID,
	)
	return err
}

// record counts the call and answers with an injected failure, if one is
// pending for this method and path.
func (s *Server) record(c *fiber.Ctx) error {
	key := c.Method() + " " + c.Path()
	s.mu.Lock()
	s.calls[key]++
	status, fail := s.failures[key]
	delete(s.failures, key)
	s.mu.Unlock()
	if fail {
		return c.Status(status).JSON(fiber.Map{"message": "injected failure"})
	}
	return c.Next()
}

func (s *Server) authorize(c *fiber.Ctx) error {
	if c.Get(fiber.HeaderAuthorization) != "key="+s.key {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid API key"})
	}
	return c.Next()
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "not found"})
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
}

func (s *Server) listProjects(c *fiber.Ctx) error {
	s.mu.Lock()
	out := sortedValues(s.projects)
	s.mu.Unlock()
	return c.JSON(out)
}

func (s *Server) createProject(c *fiber.Ctx) error {
	var in model.ProjectInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, err)
	}
	if in.Name == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": "name is required"})
	}
	s.mu.Lock()
	p := model.Project{ID: s.id(), Name: in.Name, Description: in.Description, Enabled: true}
	s.projects[p.ID] = p
	s.mu.Unlock()
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (s *Server) updateProject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, err)
	}
	var in model.ProjectInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[int64(id)]
	if !ok {
		return notFound(c)
	}
	p.Name, p.Description = in.Name, in.Description
	s.projects[p.ID] = p
	return c.JSON(p)
}

func (s *Server) setProjectEnabled(enabled bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return badRequest(c, err)
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		p, ok := s.projects[int64(id)]
		if !ok {
			return notFound(c)
		}
		p.Enabled = model.Flag(enabled)
		s.projects[p.ID] = p
		return c.JSON(p)
	}
}

func (s *Server) listActivities(c *fiber.Ctx) error {
	s.mu.Lock()
	out := sortedValues(s.activities)
	s.mu.Unlock()
	return c.JSON(out)
}

func (s *Server) listTimeEntries(c *fiber.Ctx) error {
	s.mu.Lock()
	out := sortedValues(s.entries)
	s.mu.Unlock()
	return c.JSON(out)
}

func (s *Server) createTimeEntry(c *fiber.Ctx) error {
	var in model.TimeEntryInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[in.ProjectID]; !ok {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": "unknown project"})
	}
	if _, ok := s.activities[in.ActivityID]; !ok {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": "unknown activity"})
	}
	start := s.now()
	if in.Start != nil {
		start = *in.Start
	}
	e := model.TimeEntry{
		ID:         s.id(),
		ProjectID:  in.ProjectID,
		ActivityID: in.ActivityID,
		Start:      start,
		Comment:    in.Comment,
	}
	s.entries[e.ID] = e
	return c.Status(fiber.StatusCreated).JSON(e)
}

func (s *Server) stopTimeEntry(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, err)
	}
	var in model.StopInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, err)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[int64(id)]
	if !ok {
		return notFound(c)
	}
	if e.End != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "time entry already stopped"})
	}
	end := s.now()
	if in.End != nil {
		end = *in.End
	}
	e.End = &end
	if in.Comment != "" {
		e.Comment = in.Comment
	}
	s.entries[e.ID] = e
	return c.JSON(e)
}

func (s *Server) listObjectives(c *fiber.Ctx) error {
	s.mu.Lock()
	out := sortedValues(s.objectives)
	s.mu.Unlock()
	return c.JSON(out)
}

func (s *Server) createObjective(c *fiber.Ctx) error {
	var in model.ObjectiveInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, err)
	}
	if in.Name == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": "name is required"})
	}
	s.mu.Lock()
	o := model.DailyObjective{ID: s.id(), Name: in.Name, Content: in.Content}
	s.objectives[o.ID] = o
	s.mu.Unlock()
	return c.Status(fiber.StatusCreated).JSON(o)
}

func (s *Server) updateObjective(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, err)
	}
	var in model.ObjectiveInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.objectives[int64(id)]
	if !ok {
		return notFound(c)
	}
	o.Name, o.Content = in.Name, in.Content
	s.objectives[o.ID] = o
	return c.JSON(o)
}

func (s *Server) deleteObjective(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objectives[int64(id)]; !ok {
		return notFound(c)
	}
	delete(s.objectives, int64(id))
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) setObjectiveDone(done bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return badRequest(c, err)
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		o, ok := s.objectives[int64(id)]
		if !ok {
			return notFound(c)
		}
		o.Done = model.Flag(done)
		s.objectives[o.ID] = o
		return c.JSON(o)
	}
}
