// Package router maps paths to views and keeps unauthenticated users out of
// protected ones.
package router

import (
	"errors"
	"fmt"
	"strings"
)

// Route names.
const (
	Home       = "Home"
	Login      = "Login"
	Register   = "Register"
	Settings   = "Settings"
	Stats      = "Stats"
	Tracking   = "TimeTracking"
	Goals      = "Goals"
	Profile    = "Profile"
	Projects   = "Projects"
	Activities = "Activities"
)

// ErrNotFound is returned for paths no route matches.
var ErrNotFound = errors.New("no route matches path")

// Guard reports whether the user is authenticated.
type Guard interface {
	HasKey() bool
}

// GuardFunc adapts a function to Guard.
type GuardFunc func() bool

func (f GuardFunc) HasKey() bool { return f() }

// Route is a node of the route tree. Child paths are relative to the parent.
type Route struct {
	Path      string
	Name      string
	Protected bool
	Children  []Route
}

// Resolution is the outcome of a navigation.
type Resolution struct {
	// Name of the route that will be shown.
	Name string
	// Path that will be shown.
	Path string
	// Redirected is true when the guard sent the user to the login route.
	Redirected bool
	// From is the requested path when Redirected.
	From string
}

// Router resolves paths against a route tree.
type Router struct {
	routes []Route
	byName map[string]string
}

// DefaultRoutes is the application route tree.
func DefaultRoutes() []Route {
	return []Route{
		{Path: "/", Name: Home, Protected: true, Children: []Route{
			{Path: "time-tracking", Name: Tracking},
			{Path: "goals", Name: Goals},
		}},
		{Path: "/login", Name: Login},
		{Path: "/register", Name: Register},
		{Path: "/settings", Name: Settings, Protected: true, Children: []Route{
			{Path: "profile", Name: Profile},
			{Path: "projects", Name: Projects},
			{Path: "activities", Name: Activities},
		}},
		{Path: "/stats", Name: Stats, Protected: true},
	}
}

// New builds a Router over routes. It must contain a route named Login.
func New(routes []Route) (*Router, error) {
	r := &Router{routes: routes, byName: map[string]string{}}
	var walk func(prefix string, rs []Route) error
	walk = func(prefix string, rs []Route) error {
		for _, rt := range rs {
			full := join(prefix, rt.Path)
			if rt.Name != "" {
				if _, dup := r.byName[rt.Name]; dup {
					return fmt.Errorf("duplicate route name %q", rt.Name)
				}
				r.byName[rt.Name] = full
			}
			if err := walk(full, rt.Children); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk("", routes); err != nil {
		return nil, err
	}
	if _, ok := r.byName[Login]; !ok {
		return nil, fmt.Errorf("route %q is required", Login)
	}
	return r, nil
}

// PathOf returns the full path of the named route.
func (r *Router) PathOf(name string) (string, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// Resolve finds the route for path and runs the guard of every protected
// route on the way. The guard is consulted on every call.
func (r *Router) Resolve(path string, guard Guard) (Resolution, error) {
	path = normalize(path)
	chain, ok := match("", r.routes, path)
	if !ok {
		return Resolution{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	for _, rt := range chain {
		if rt.Protected && !guard.HasKey() {
			return Resolution{Name: Login, Path: r.byName[Login], Redirected: true, From: path}, nil
		}
	}
	return Resolution{Name: chain[len(chain)-1].Name, Path: path}, nil
}

// match returns the chain of routes from the root down to the one whose full
// path equals path.
func match(prefix string, rs []Route, path string) ([]Route, bool) {
	for _, rt := range rs {
		full := join(prefix, rt.Path)
		if full == path {
			return []Route{rt}, true
		}
		if chain, ok := match(full, rt.Children, path); ok {
			return append([]Route{rt}, chain...), true
		}
	}
	return nil, false
}

func join(prefix, p string) string {
	if strings.HasPrefix(p, "/") {
		return normalize(p)
	}
	return normalize(strings.TrimRight(prefix, "/") + "/" + p)
}

func normalize(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}
