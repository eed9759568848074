package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-time-client/internal/store"
)

var stopComment string

var stopCmd = &cobra.Command{
	Use:         "stop",
	Short:       "Stop the running activity",
	Args:        cobra.NoArgs,
	Annotations: route(routeTracking),
	RunE:        runStop,
}

func init() {
	stopCmd.Flags().StringVar(&stopComment, "comment", "", "Replace the entry's comment")
}

func runStop(cmd *cobra.Command, args []string) error {
	a := current
	ctx := cmd.Context()
	if err := a.loadTracking(ctx); err != nil {
		return err
	}

	stopped, err := a.store.StopActivity(ctx, stopComment)
	if errors.Is(err, store.ErrNotRunning) {
		return errors.New("no running activity to stop")
	}
	if err != nil {
		return err
	}

	elapsed := int64(stopped.End.Sub(stopped.Start).Seconds())
	fmt.Fprintf(cmd.OutOrStdout(), "Stopped %s on %q. Elapsed: %s\n",
		stopped.ActivityName, stopped.ProjectName, formatElapsed(elapsed))
	return nil
}

func formatElapsed(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
