package main

import (
	"fmt"
	"time"

	"github.com/hward/assetdesk/internal/client"
	"github.com/hward/assetdesk/internal/session"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	var (
		serverURL   string
		sessionPath string
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check server connectivity and session state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, serverURL, sessionPath)
		},
	}

	cmd.Flags().StringVarP(&serverURL, "server", "s", "", "server base URL (default: stored session)")
	cmd.Flags().StringVar(&sessionPath, "session-file", "", "session file path (default: per-user config dir)")
	return cmd
}

func runStatus(cmd *cobra.Command, serverURL, sessionPath string) error {
	out := cmd.OutOrStdout()

	store, err := sessionStore(sessionPath)
	if err != nil {
		return err
	}

	sess, sessErr := store.Current(time.Now())
	if serverURL == "" {
		if sessErr != nil {
			return fmt.Errorf("no stored session — pass --server or run \"adk login\"")
		}
		serverURL = sess.BaseURL
	}

	c := client.New(serverURL)
	health, err := c.Health(cmd.Context())
	if err != nil {
		fmt.Fprintf(out, "Server:  %s unreachable (%v)\n", serverURL, err)
		return nil
	}
	fmt.Fprintf(out, "Server:  %s %s (%s round trip)\n", serverURL, health.Status, health.Latency.Round(time.Millisecond))

	if sessErr != nil {
		fmt.Fprintln(out, "Session: not logged in")
		return nil
	}
	fmt.Fprintf(out, "Session: %s, expires in %s\n", sess.Username, store.Remaining(time.Now()).Round(time.Second))
	return nil
}

// requireSession loads a live session and builds an authenticated client.
func requireSession(sessionPath string) (*client.Client, *session.Session, error) {
	store, err := sessionStore(sessionPath)
	if err != nil {
		return nil, nil, err
	}
	sess, err := store.Current(time.Now())
	if err != nil {
		return nil, nil, fmt.Errorf("not logged in — run \"adk login\"")
	}
	c := client.New(sess.BaseURL, client.WithTokenSource(client.StaticToken(sess.Token)))
	return c, sess, nil
}
