package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fullYAML = `
server:
  host: 0.0.0.0
  port: 8090
  public_url: https://assets.example.com

database:
  driver: mysql
  host: 10.0.0.5
  port: 3307
  name: assetdesk_prod
  user: assetdesk
  password: hunter2

auth:
  jwt_secret: super-secret
  token_ttl_hours: 12

storage:
  upload_dir: /var/lib/assetdesk/uploads

notify:
  slack:
    bot_token: xoxb-123
    channel_id: C0123
  command: "notify-send 'Assetdesk' '{{.Subject}}'"

reminders:
  cron: "30 8 * * 1-5"
  lead_days: 7

m365:
  high_usage_percent: 90
  inactive_days: 45
`

const minimalYAML = `
auth:
  jwt_secret: s3cret
`

func TestParse_FullConfig(t *testing.T) {
	cfg, err := Parse([]byte(fullYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8090)
	}
	if cfg.Server.PublicURL != "https://assets.example.com" {
		t.Errorf("Server.PublicURL = %q, want https://assets.example.com", cfg.Server.PublicURL)
	}
	if cfg.Database.Driver != "mysql" {
		t.Errorf("Database.Driver = %q, want %q", cfg.Database.Driver, "mysql")
	}
	if cfg.Database.Host != "10.0.0.5" {
		t.Errorf("Database.Host = %q, want %q", cfg.Database.Host, "10.0.0.5")
	}
	if cfg.Database.Port != 3307 {
		t.Errorf("Database.Port = %d, want %d", cfg.Database.Port, 3307)
	}
	if cfg.Auth.TokenTTLHours != 12 {
		t.Errorf("Auth.TokenTTLHours = %d, want %d", cfg.Auth.TokenTTLHours, 12)
	}
	if cfg.Storage.UploadDir != "/var/lib/assetdesk/uploads" {
		t.Errorf("Storage.UploadDir = %q, want /var/lib/assetdesk/uploads", cfg.Storage.UploadDir)
	}
	if cfg.Notify.Slack.BotToken != "xoxb-123" {
		t.Errorf("Notify.Slack.BotToken = %q, want %q", cfg.Notify.Slack.BotToken, "xoxb-123")
	}
	if cfg.Reminders.Cron != "30 8 * * 1-5" {
		t.Errorf("Reminders.Cron = %q, want %q", cfg.Reminders.Cron, "30 8 * * 1-5")
	}
	if cfg.Reminders.LeadDays != 7 {
		t.Errorf("Reminders.LeadDays = %d, want %d", cfg.Reminders.LeadDays, 7)
	}
	if cfg.M365.HighUsagePercent != 90 {
		t.Errorf("M365.HighUsagePercent = %v, want 90", cfg.M365.HighUsagePercent)
	}
	if cfg.M365.InactiveDays != 45 {
		t.Errorf("M365.InactiveDays = %d, want 45", cfg.M365.InactiveDays)
	}
}

func TestParse_MinimalDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want default 127.0.0.1", cfg.Server.Host)
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want default 5000", cfg.Server.Port)
	}
	if cfg.Server.PublicURL != "http://127.0.0.1:5000" {
		t.Errorf("Server.PublicURL = %q, want derived http://127.0.0.1:5000", cfg.Server.PublicURL)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want default sqlite", cfg.Database.Driver)
	}
	if cfg.Database.Path != "assetdesk.db" {
		t.Errorf("Database.Path = %q, want default assetdesk.db", cfg.Database.Path)
	}
	if cfg.Auth.TokenTTLHours != 8 {
		t.Errorf("Auth.TokenTTLHours = %d, want default 8", cfg.Auth.TokenTTLHours)
	}
	if cfg.Storage.UploadDir != filepath.Join("data", "uploads") {
		t.Errorf("Storage.UploadDir = %q, want default data/uploads", cfg.Storage.UploadDir)
	}
	if cfg.Reminders.Cron != "0 9 * * *" {
		t.Errorf("Reminders.Cron = %q, want default daily 09:00", cfg.Reminders.Cron)
	}
	if cfg.Reminders.LeadDays != 3 {
		t.Errorf("Reminders.LeadDays = %d, want default 3", cfg.Reminders.LeadDays)
	}
	if cfg.M365.HighUsagePercent != 80 {
		t.Errorf("M365.HighUsagePercent = %v, want default 80", cfg.M365.HighUsagePercent)
	}
	if cfg.M365.InactiveDays != 60 {
		t.Errorf("M365.InactiveDays = %d, want default 60", cfg.M365.InactiveDays)
	}
}

func TestParse_MissingSecret(t *testing.T) {
	_, err := Parse([]byte("server:\n  port: 5000\n"))
	if err == nil {
		t.Fatal("expected validation error for missing jwt_secret")
	}
	if !strings.Contains(err.Error(), "auth.jwt_secret is required") {
		t.Errorf("error = %v, want mention of auth.jwt_secret", err)
	}
}

func TestParse_BadDriver(t *testing.T) {
	yaml := `
auth:
  jwt_secret: s
database:
  driver: postgres
`
	_, err := Parse([]byte(yaml))
	if err == nil {
		t.Fatal("expected validation error for unsupported driver")
	}
	if !strings.Contains(err.Error(), "not supported") {
		t.Errorf("error = %v, want mention of unsupported driver", err)
	}
}

func TestParse_MySQLRequiresUser(t *testing.T) {
	yaml := `
auth:
  jwt_secret: s
database:
  driver: mysql
`
	_, err := Parse([]byte(yaml))
	if err == nil {
		t.Fatal("expected validation error for missing mysql user")
	}
	if !strings.Contains(err.Error(), "database.user is required") {
		t.Errorf("error = %v, want mention of database.user", err)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("auth: [not a map"))
	if err == nil {
		t.Fatal("expected parse error for invalid YAML")
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "assetdesk.yaml")
	if err := os.WriteFile(path, []byte(minimalYAML), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.JWTSecret != "s3cret" {
		t.Errorf("Auth.JWTSecret = %q, want %q", cfg.Auth.JWTSecret, "s3cret")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/assetdesk.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
