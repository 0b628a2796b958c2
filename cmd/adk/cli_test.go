package main

import (
	"bytes"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/hward/assetdesk/internal/config"
	"github.com/hward/assetdesk/internal/db"
	"github.com/hward/assetdesk/internal/models"
	"github.com/hward/assetdesk/internal/notify"
	"github.com/hward/assetdesk/internal/server"
	"gorm.io/gorm"
)

// startTestAPI runs a real API server over an in-memory database and
// returns its URL plus the backing connection for seeding.
func startTestAPI(t *testing.T) (string, *gorm.DB) {
	t.Helper()

	cfg, err := config.Parse([]byte(fmt.Sprintf(`
auth:
  jwt_secret: cli-test-secret
database:
  driver: sqlite
  path: %q
storage:
  upload_dir: %q
`, filepath.Join(t.TempDir(), "test.db"), t.TempDir())))
	if err != nil {
		t.Fatal(err)
	}
	conn, err := db.Connect(cfg.Database)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(conn); err != nil {
		t.Fatal(err)
	}
	if err := db.SeedAdmin(conn, "admin", "admin-password"); err != nil {
		t.Fatal(err)
	}

	ts := httptest.NewServer(server.NewRouter(conn, cfg, notify.NewMulti()))
	t.Cleanup(ts.Close)
	return ts.URL, conn
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	if stdin != "" {
		cmd.SetIn(strings.NewReader(stdin))
	}
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	err := cmd.Execute()
	return buf.String(), err
}

func login(t *testing.T, url, sessionFile string) {
	t.Helper()
	out, err := run(t, "admin-password\n",
		"login", "--server", url, "--username", "admin", "--session-file", sessionFile)
	if err != nil {
		t.Fatalf("login failed: %v\n%s", err, out)
	}
}

func seedAsset(t *testing.T, conn *gorm.DB, name string) string {
	t.Helper()
	asset := models.Asset{ID: uuid.NewString(), Name: name, Status: "available"}
	if err := conn.Create(&asset).Error; err != nil {
		t.Fatal(err)
	}
	return asset.ID
}

func TestLoginWhoamiLogout(t *testing.T) {
	url, _ := startTestAPI(t)
	sessionFile := filepath.Join(t.TempDir(), "session.json")

	out, err := run(t, "admin-password\n",
		"login", "--server", url, "--username", "admin", "--session-file", sessionFile)
	if err != nil {
		t.Fatalf("login failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Logged in as admin (admin)") {
		t.Errorf("login output = %s", out)
	}

	out, err = run(t, "", "whoami", "--session-file", sessionFile)
	if err != nil {
		t.Fatalf("whoami failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "admin") || !strings.Contains(out, url) {
		t.Errorf("whoami output = %s", out)
	}

	if _, err = run(t, "", "logout", "--session-file", sessionFile); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err = run(t, "", "whoami", "--session-file", sessionFile); err == nil {
		t.Error("whoami after logout should fail")
	}
}

func TestLoginBadPassword(t *testing.T) {
	url, _ := startTestAPI(t)
	sessionFile := filepath.Join(t.TempDir(), "session.json")

	out, err := run(t, "wrong-password\n",
		"login", "--server", url, "--username", "admin", "--session-file", sessionFile)
	if err == nil {
		t.Fatalf("login with bad password succeeded:\n%s", out)
	}
}

func TestStatus(t *testing.T) {
	url, _ := startTestAPI(t)
	sessionFile := filepath.Join(t.TempDir(), "session.json")
	login(t, url, sessionFile)

	out, err := run(t, "", "status", "--session-file", sessionFile)
	if err != nil {
		t.Fatalf("status failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "ok") || !strings.Contains(out, "expires in") {
		t.Errorf("status output = %s", out)
	}
}

func TestDispatchAndScanFlow(t *testing.T) {
	url, conn := startTestAPI(t)
	sessionFile := filepath.Join(t.TempDir(), "session.json")
	login(t, url, sessionFile)

	assetID := seedAsset(t, conn, "Laptop-007")

	out, err := run(t, "",
		"repair", "dispatch", "--asset", assetID, "--vendor", "FixIt Ltd", "--session-file", sessionFile)
	if err != nil {
		t.Fatalf("dispatch failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Laptop-007") || !strings.Contains(out, "Gate pass: GP-") {
		t.Errorf("dispatch output = %s", out)
	}

	var repair models.Repair
	if err := conn.Where("status = ?", "dispatched").First(&repair).Error; err != nil {
		t.Fatalf("dispatched repair not found: %v", err)
	}

	// A scanned return URL marks the repair returned.
	out, err = run(t, url+"/return/"+repair.ID+"\n",
		"repair", "scan", "--session-file", sessionFile)
	if err != nil {
		t.Fatalf("scan failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Laptop-007 marked as returned") {
		t.Errorf("scan output = %s", out)
	}

	if err := conn.Where("id = ?", repair.ID).First(&repair).Error; err != nil {
		t.Fatal(err)
	}
	if repair.Status != "returned" || repair.Notes != "Scanned QR return" {
		t.Errorf("repair after scan = status %q, notes %q", repair.Status, repair.Notes)
	}

	// Nothing dispatched now, so a new scan session cannot start.
	if _, err := run(t, "deadbeefdeadbeefdeadbeef\n",
		"repair", "scan", "--session-file", sessionFile); err == nil {
		t.Error("scan with nothing dispatched should fail")
	}
}

func TestRepairReturnManual(t *testing.T) {
	url, conn := startTestAPI(t)
	sessionFile := filepath.Join(t.TempDir(), "session.json")
	login(t, url, sessionFile)

	assetID := seedAsset(t, conn, "Laptop-007")
	if _, err := run(t, "",
		"repair", "dispatch", "--asset", assetID, "--vendor", "FixIt Ltd", "--session-file", sessionFile); err != nil {
		t.Fatal(err)
	}
	var repair models.Repair
	if err := conn.Where("status = ?", "dispatched").First(&repair).Error; err != nil {
		t.Fatalf("dispatched repair not found: %v", err)
	}

	proofPath := filepath.Join(t.TempDir(), "proof.png")
	if err := os.WriteFile(proofPath, []byte("png-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "",
		"repair", "return", repair.ID,
		"--notes", "Screen replaced", "--proof", proofPath, "--session-file", sessionFile)
	if err != nil {
		t.Fatalf("return failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Laptop-007 marked as returned") {
		t.Errorf("return output = %s", out)
	}
	if !strings.Contains(out, "Proof image:") {
		t.Errorf("return output missing proof path = %s", out)
	}

	if err := conn.Where("id = ?", repair.ID).First(&repair).Error; err != nil {
		t.Fatal(err)
	}
	if repair.Status != "returned" || repair.Notes != "Screen replaced" {
		t.Errorf("repair after return = status %q, notes %q", repair.Status, repair.Notes)
	}
	if repair.ProofImage == "" {
		t.Fatal("proof image path not recorded")
	}
	saved, err := os.ReadFile(repair.ProofImage)
	if err != nil {
		t.Fatalf("saved proof unreadable: %v", err)
	}
	if string(saved) != "png-bytes" {
		t.Errorf("saved proof = %q", saved)
	}

	// A second manual return reports the idempotent outcome.
	out, err = run(t, "", "repair", "return", repair.ID, "--session-file", sessionFile)
	if err != nil {
		t.Fatalf("second return failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Laptop-007 was already returned") {
		t.Errorf("second return output = %s", out)
	}
}

func TestRepairReturnWithoutProofFlag(t *testing.T) {
	url, conn := startTestAPI(t)
	sessionFile := filepath.Join(t.TempDir(), "session.json")
	login(t, url, sessionFile)

	assetID := seedAsset(t, conn, "Monitor-9")
	if _, err := run(t, "",
		"repair", "dispatch", "--asset", assetID, "--vendor", "FixIt Ltd", "--session-file", sessionFile); err != nil {
		t.Fatal(err)
	}
	var repair models.Repair
	if err := conn.Where("status = ?", "dispatched").First(&repair).Error; err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "", "repair", "return", repair.ID, "--session-file", sessionFile)
	if err != nil {
		t.Fatalf("return failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Monitor-9 marked as returned") {
		t.Errorf("return output = %s", out)
	}

	if err := conn.Where("id = ?", repair.ID).First(&repair).Error; err != nil {
		t.Fatal(err)
	}
	if repair.Status != "returned" || repair.ProofImage != "" {
		t.Errorf("repair = status %q, proof %q", repair.Status, repair.ProofImage)
	}
}

func TestScanUnknownID(t *testing.T) {
	url, conn := startTestAPI(t)
	sessionFile := filepath.Join(t.TempDir(), "session.json")
	login(t, url, sessionFile)

	assetID := seedAsset(t, conn, "Printer-1")
	if _, err := run(t, "",
		"repair", "dispatch", "--asset", assetID, "--vendor", "FixIt Ltd", "--session-file", sessionFile); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "deadbeefdeadbeefdeadbeef\n",
		"repair", "scan", "--session-file", sessionFile)
	if err != nil {
		t.Fatalf("scan failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "not recognized or already returned") {
		t.Errorf("scan output = %s", out)
	}

	// The unmatched scan must not have returned anything.
	var count int64
	conn.Model(&models.Repair{}).Where("status = ?", "dispatched").Count(&count)
	if count != 1 {
		t.Errorf("dispatched repairs = %d, want 1 untouched", count)
	}
}

func TestAssetList(t *testing.T) {
	url, conn := startTestAPI(t)
	sessionFile := filepath.Join(t.TempDir(), "session.json")
	login(t, url, sessionFile)

	out, err := run(t, "", "asset", "list", "--session-file", sessionFile)
	if err != nil {
		t.Fatalf("asset list failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "No assets found.") {
		t.Errorf("empty list output = %s", out)
	}

	seedAsset(t, conn, "Monitor-3")
	out, err = run(t, "", "asset", "list", "--session-file", sessionFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Monitor-3") {
		t.Errorf("list output = %s", out)
	}
}

func TestAssetListRequiresLogin(t *testing.T) {
	sessionFile := filepath.Join(t.TempDir(), "session.json")
	if _, err := run(t, "", "asset", "list", "--session-file", sessionFile); err == nil {
		t.Error("asset list without a session should fail")
	}
}
