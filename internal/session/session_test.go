package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hward/assetdesk/internal/auth"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return &Store{Path: filepath.Join(t.TempDir(), "session.json")}
}

func signTestToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	token, err := auth.SignToken("test-secret", "u1", "alice", "staff", ttl)
	if err != nil {
		t.Fatalf("SignToken() error = %v", err)
	}
	return token
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := testStore(t)
	want := Session{
		BaseURL:  "http://127.0.0.1:5000",
		Token:    signTestToken(t, time.Hour),
		Username: "alice",
		Role:     "staff",
	}
	if err := st.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := st.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *got != want {
		t.Errorf("Load() = %+v, want %+v", *got, want)
	}

	info, err := os.Stat(st.Path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file mode = %o, want 600", perm)
	}
}

func TestCurrentRejectsExpiredToken(t *testing.T) {
	st := testStore(t)
	err := st.Save(Session{Token: signTestToken(t, time.Minute), Username: "alice"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := st.Current(time.Now()); err != nil {
		t.Errorf("Current() with live token error = %v", err)
	}

	// Judged at a time past expiry, the same session counts as logged out.
	if _, err := st.Current(time.Now().Add(2 * time.Minute)); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("Current() past expiry error = %v, want ErrNotLoggedIn", err)
	}
}

func TestCurrentRejectsGarbageToken(t *testing.T) {
	st := testStore(t)
	if err := st.Save(Session{Token: "not-a-jwt"}); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Current(time.Now()); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("Current() error = %v, want ErrNotLoggedIn", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	st := testStore(t)
	if _, err := st.Load(); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("Load() error = %v, want ErrNotLoggedIn", err)
	}
}

func TestRemaining(t *testing.T) {
	st := testStore(t)
	if got := st.Remaining(time.Now()); got != 0 {
		t.Errorf("Remaining() with no session = %v, want 0", got)
	}

	if err := st.Save(Session{Token: signTestToken(t, time.Hour)}); err != nil {
		t.Fatal(err)
	}
	got := st.Remaining(time.Now())
	if got <= 59*time.Minute || got > time.Hour {
		t.Errorf("Remaining() = %v, want about an hour", got)
	}
}

func TestClear(t *testing.T) {
	st := testStore(t)
	if err := st.Clear(); err != nil {
		t.Errorf("Clear() with no file error = %v", err)
	}

	if err := st.Save(Session{Token: "tok"}); err != nil {
		t.Fatal(err)
	}
	if err := st.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := st.Load(); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("Load() after Clear() error = %v, want ErrNotLoggedIn", err)
	}
}
