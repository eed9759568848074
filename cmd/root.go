package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-time-client/internal/router"
	"github.com/Tiliavir/trivial-time-client/internal/session"
	"github.com/Tiliavir/trivial-time-client/internal/store"
)

// routeAnnotation binds a command to the route it shows.
const routeAnnotation = "route"

var errLoginRequired = errors.New("not logged in: run `ttc login` first")

var rootCmd = &cobra.Command{
	Use:   "ttc",
	Short: "Trivial Time Client – track time against a remote time-tracking API",
	Long: `ttc is a command-line client for a time-tracking backend.
Log in once with your API key, then start and stop activities against
projects, manage your daily objectives and view statistics.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit status: 2 for failed backend
// operations, 1 for everything else.
func exitCode(err error) int {
	if errors.Is(err, store.ErrOperationFailed) || errors.Is(err, session.ErrNoKey) {
		return 2
	}
	return 1
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(activitiesCmd)
	rootCmd.AddCommand(objectivesCmd)
	rootCmd.AddCommand(mockServerCmd)
}

// setup wires the application for the command about to run and applies the
// navigation guard of its route.
func setup(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	current = a

	path := routeOf(cmd)
	if path == "" {
		return nil
	}
	res, err := a.router.Resolve(path, a.keys)
	if err != nil {
		return err
	}
	if res.Redirected {
		a.log.Debugw("navigation redirected", "from", res.From, "to", res.Path)
		return errLoginRequired
	}
	return nil
}

// routeOf returns the route of cmd or of its nearest annotated ancestor.
func routeOf(cmd *cobra.Command) string {
	for c := cmd; c != nil; c = c.Parent() {
		if r, ok := c.Annotations[routeAnnotation]; ok {
			return r
		}
	}
	return ""
}

func route(path string) map[string]string {
	return map[string]string{routeAnnotation: path}
}

// Route paths used by the commands.
var (
	routeLogin      = mustPath(router.Login)
	routeTracking   = mustPath(router.Tracking)
	routeGoals      = mustPath(router.Goals)
	routeStats      = mustPath(router.Stats)
	routeProjects   = mustPath(router.Projects)
	routeActivities = mustPath(router.Activities)
)

func mustPath(name string) string {
	r, err := router.New(router.DefaultRoutes())
	if err != nil {
		panic(err)
	}
	p, ok := r.PathOf(name)
	if !ok {
		panic("unknown route " + name)
	}
	return p
}
