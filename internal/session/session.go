// Package session persists the CLI's login state and guards commands
// that require a live token. Expiry is judged locally from the token's
// decoded claims; the server still verifies the signature on every call.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hward/assetdesk/internal/auth"
)

// ErrNotLoggedIn is returned when no session file exists or the stored
// token has expired.
var ErrNotLoggedIn = errors.New("session: not logged in")

// Session is the persisted login state.
type Session struct {
	BaseURL  string `json:"baseUrl"`
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Store reads and writes the session file.
type Store struct {
	Path string
}

// DefaultPath returns the per-user session file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("session: resolve config dir: %w", err)
	}
	return filepath.Join(dir, "assetdesk", "session.json"), nil
}

// Save writes the session to disk, creating parent directories. The
// file is user-only since it holds a credential.
func (st *Store) Save(s Session) error {
	if err := os.MkdirAll(filepath.Dir(st.Path), 0o700); err != nil {
		return fmt.Errorf("session: create dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	if err := os.WriteFile(st.Path, data, 0o600); err != nil {
		return fmt.Errorf("session: write %s: %w", st.Path, err)
	}
	return nil
}

// Load reads the raw session from disk without judging expiry.
func (st *Store) Load() (*Session, error) {
	data, err := os.ReadFile(st.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, fmt.Errorf("session: read %s: %w", st.Path, err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("session: decode %s: %w", st.Path, err)
	}
	return &s, nil
}

// Current returns the session only if its token is still valid at now.
// An expired or undecodable token counts as logged out.
func (st *Store) Current(now time.Time) (*Session, error) {
	s, err := st.Load()
	if err != nil {
		return nil, err
	}
	claims, err := auth.DecodeUnverified(s.Token)
	if err != nil {
		return nil, ErrNotLoggedIn
	}
	if claims.Remaining(now) <= 0 {
		return nil, ErrNotLoggedIn
	}
	return s, nil
}

// Remaining returns the time until the stored token expires, or zero.
func (st *Store) Remaining(now time.Time) time.Duration {
	s, err := st.Load()
	if err != nil {
		return 0
	}
	claims, err := auth.DecodeUnverified(s.Token)
	if err != nil {
		return 0
	}
	return claims.Remaining(now)
}

// Clear deletes the session file. Clearing an absent session is not an
// error.
func (st *Store) Clear() error {
	err := os.Remove(st.Path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("session: clear %s: %w", st.Path, err)
	}
	return nil
}
