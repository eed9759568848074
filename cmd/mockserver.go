package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-time-client/internal/mockapi"
)

var (
	mockListen string
	mockKey    string
	mockSeed   bool
)

var mockServerCmd = &cobra.Command{
	Use:   "mock-server",
	Short: "Run an in-memory backend for local development",
	Long: `Run an in-memory time-tracking backend on --listen.

It accepts only requests carrying "Authorization: key=<--key>" and keeps
all data in memory until it exits.`,
	Args: cobra.NoArgs,
	RunE: runMockServer,
}

func init() {
	mockServerCmd.Flags().StringVar(&mockListen, "listen", ":8000", "Address to listen on")
	mockServerCmd.Flags().StringVar(&mockKey, "key", "dev", "API key the server accepts")
	mockServerCmd.Flags().BoolVar(&mockSeed, "seed", true, "Start with sample projects and activities")
}

func runMockServer(cmd *cobra.Command, args []string) error {
	log := current.log
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := mockapi.New(mockKey, mockapi.WithLogger(log))
	if mockSeed {
		srv.Seed()
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.App().Listen(mockListen)
	}()
	log.Infow("mock backend listening", "addr", mockListen, "seeded", mockSeed)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.App().ShutdownWithContext(shutdownCtx); err != nil {
		log.Warnw("mock backend shutdown", "error", err)
	}
	return nil
}
