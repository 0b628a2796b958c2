package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hward/assetdesk/internal/client"
	"github.com/hward/assetdesk/internal/session"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// sessionStore resolves the session file, honoring an explicit override.
func sessionStore(path string) (*session.Store, error) {
	if path == "" {
		var err error
		path, err = session.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return &session.Store{Path: path}, nil
}

func newLoginCmd() *cobra.Command {
	var (
		serverURL   string
		username    string
		sessionPath string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to an Assetdesk server",
		Long:  "Exchanges credentials for a token and stores the session for later commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, serverURL, username, sessionPath)
		},
	}

	cmd.Flags().StringVarP(&serverURL, "server", "s", "http://127.0.0.1:5000", "Assetdesk server base URL")
	cmd.Flags().StringVarP(&username, "username", "u", "", "username (required)")
	cmd.Flags().StringVar(&sessionPath, "session-file", "", "session file path (default: per-user config dir)")
	cmd.MarkFlagRequired("username")
	return cmd
}

func runLogin(cmd *cobra.Command, serverURL, username, sessionPath string) error {
	out := cmd.OutOrStdout()

	password, err := readPassword(cmd)
	if err != nil {
		return err
	}

	c := client.New(serverURL)
	result, err := c.Login(cmd.Context(), username, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	store, err := sessionStore(sessionPath)
	if err != nil {
		return err
	}
	err = store.Save(session.Session{
		BaseURL:  serverURL,
		Token:    result.Token,
		Username: result.Username,
		Role:     result.Role,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Logged in as %s (%s) on %s\n", result.Username, result.Role, serverURL)
	return nil
}

// readPassword prompts on a terminal without echo; piped input is read
// as a single line so scripts and tests can drive the command.
func readPassword(cmd *cobra.Command) (string, error) {
	out := cmd.OutOrStdout()

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(out, "Password: ")
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		return "", fmt.Errorf("read password: no input")
	}
	return strings.TrimSpace(scanner.Text()), nil
}

func newLogoutCmd() *cobra.Command {
	var sessionPath string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := sessionStore(sessionPath)
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionPath, "session-file", "", "session file path (default: per-user config dir)")
	return cmd
}

func newWhoamiCmd() *cobra.Command {
	var sessionPath string

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := sessionStore(sessionPath)
			if err != nil {
				return err
			}

			sess, err := store.Current(time.Now())
			if err != nil {
				return fmt.Errorf("not logged in — run \"adk login\"")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "User:    %s (%s)\n", sess.Username, sess.Role)
			fmt.Fprintf(out, "Server:  %s\n", sess.BaseURL)
			fmt.Fprintf(out, "Expires: in %s\n", store.Remaining(time.Now()).Round(time.Second))
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionPath, "session-file", "", "session file path (default: per-user config dir)")
	return cmd
}
