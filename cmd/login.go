package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Tiliavir/trivial-time-client/internal/api"
	"github.com/Tiliavir/trivial-time-client/internal/storage"
)

var loginNoVerify bool

var loginCmd = &cobra.Command{
	Use:   "login [api-key]",
	Short: "Store the API key used to talk to the backend",
	Long: `Store the API key used to talk to the backend.

Without an argument the key is read from stdin; on a terminal it is
prompted for without echo. The key is kept in ~/.ttc/storage.json.`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: route(routeLogin),
	RunE:        runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored API key",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

func init() {
	loginCmd.Flags().BoolVar(&loginNoVerify, "no-verify", false, "Store the key without checking it against the backend")
}

func runLogin(cmd *cobra.Command, args []string) error {
	var key string
	if len(args) == 1 {
		key = args[0]
	} else {
		var err error
		key, err = readKey(cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("reading API key: %w", err)
		}
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("API key must not be empty")
	}

	a := current
	if err := a.keys.SetKey(key); err != nil {
		return err
	}
	a.store.Reset()

	if !loginNoVerify {
		if err := a.store.FetchAllProjects(cmd.Context()); err != nil {
			if api.StatusCode(err) == http.StatusUnauthorized || api.StatusCode(err) == http.StatusForbidden {
				_ = a.keys.Clear()
				return fmt.Errorf("the backend rejected the API key: %w", err)
			}
			return err
		}
	}

	base, _ := storage.BaseDir()
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in. Key saved to %s\n", storage.Open(base).Path())
	return nil
}

// readKey reads a key from in, without echo when in is a terminal.
func readKey(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "API key: ")
		data, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return line, nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a := current
	if err := a.keys.Clear(); err != nil {
		return err
	}
	a.store.Reset()
	fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
	return nil
}
