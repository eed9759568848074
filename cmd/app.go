package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Tiliavir/trivial-time-client/internal/api"
	"github.com/Tiliavir/trivial-time-client/internal/config"
	"github.com/Tiliavir/trivial-time-client/internal/logging"
	"github.com/Tiliavir/trivial-time-client/internal/model"
	"github.com/Tiliavir/trivial-time-client/internal/notify"
	"github.com/Tiliavir/trivial-time-client/internal/router"
	"github.com/Tiliavir/trivial-time-client/internal/session"
	"github.com/Tiliavir/trivial-time-client/internal/storage"
	"github.com/Tiliavir/trivial-time-client/internal/store"
)

// app is everything a command needs, built once per invocation.
type app struct {
	cfg    config.Config
	log    *zap.SugaredLogger
	keys   *session.Store
	store  *store.Store
	router *router.Router
}

// current is the app of the running command, set by setup.
var current *app

func newApp(stderr io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	base, err := storage.BaseDir()
	if err != nil {
		return nil, err
	}
	keys, err := session.Load(storage.Open(base), cfg.API.Key)
	if err != nil {
		return nil, err
	}

	client, err := api.New(api.Options{
		BaseURL: cfg.API.URL,
		Source:  keys,
		Timeout: cfg.API.RequestTimeout,
		Logger:  log,
	})
	if err != nil {
		return nil, err
	}

	r, err := router.New(router.DefaultRoutes())
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:  cfg,
		log:  log,
		keys: keys,
		store: store.New(client,
			store.WithNotifier(notify.NewTerminal(stderr)),
			store.WithLogger(log),
		),
		router: r,
	}, nil
}

// loadTracking fetches what the time-tracking views show: enabled projects
// and activities, then the time entries joined against them.
func (a *app) loadTracking(ctx context.Context) error {
	if err := a.store.FetchAllData(ctx); err != nil {
		return err
	}
	return a.store.FetchTimeEntries(ctx)
}

// lookup resolves ref to an item by numeric id first, then by
// case-insensitive name, so a name that looks like a number never hides the
// item with that id.
func lookup[T any](items []T, ref string, id func(T) int64, name func(T) string) (T, bool) {
	if n, err := strconv.ParseInt(ref, 10, 64); err == nil {
		for _, it := range items {
			if id(it) == n {
				return it, true
			}
		}
	}
	for _, it := range items {
		if strings.EqualFold(name(it), ref) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func findProject(projects []model.Project, ref string) (model.Project, error) {
	p, ok := lookup(projects, ref,
		func(p model.Project) int64 { return p.ID },
		func(p model.Project) string { return p.Name })
	if !ok {
		return p, fmt.Errorf("unknown project %q", ref)
	}
	return p, nil
}

func findActivity(activities []model.Activity, ref string) (model.Activity, error) {
	a, ok := lookup(activities, ref,
		func(a model.Activity) int64 { return a.ID },
		func(a model.Activity) string { return a.Name })
	if !ok {
		return a, fmt.Errorf("unknown activity %q", ref)
	}
	return a, nil
}

func findObjective(objectives []model.DailyObjective, ref string) (model.DailyObjective, error) {
	o, ok := lookup(objectives, ref,
		func(o model.DailyObjective) int64 { return o.ID },
		func(o model.DailyObjective) string { return o.Name })
	if !ok {
		return o, fmt.Errorf("unknown objective %q", ref)
	}
	return o, nil
}
