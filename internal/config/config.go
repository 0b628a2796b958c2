// Package config provides YAML-based configuration loading for Assetdesk.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level Assetdesk configuration, loaded from assetdesk.yaml.
type Config struct {
	Server    ServerConfig   `yaml:"server"`
	Database  DatabaseConfig `yaml:"database"`
	Auth      AuthConfig     `yaml:"auth"`
	Storage   StorageConfig  `yaml:"storage"`
	Notify    NotifyConfig   `yaml:"notify"`
	Reminders ReminderConfig `yaml:"reminders"`
	M365      M365Config     `yaml:"m365"`
}

// ServerConfig holds HTTP listener settings for the API server.
type ServerConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	PublicURL string `yaml:"public_url"` // base URL encoded into repair QR codes
}

// DatabaseConfig selects the storage backend. Driver is "sqlite" (default,
// file-backed) or "mysql".
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"` // sqlite file path
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// AuthConfig holds token-signing settings.
type AuthConfig struct {
	JWTSecret     string `yaml:"jwt_secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
}

// StorageConfig holds on-disk attachment settings.
type StorageConfig struct {
	UploadDir string `yaml:"upload_dir"`
}

// NotifyConfig selects notification adapters for reminder sweeps and
// fingerprint-assignment notices. All adapters are optional.
type NotifyConfig struct {
	Slack   SlackConfig   `yaml:"slack"`
	Discord DiscordConfig `yaml:"discord"`
	Command string        `yaml:"command"` // shell command template fallback
}

// SlackConfig holds Slack Web API credentials.
type SlackConfig struct {
	BotToken  string `yaml:"bot_token"`
	ChannelID string `yaml:"channel_id"`
}

// DiscordConfig holds Discord bot credentials.
type DiscordConfig struct {
	BotToken  string `yaml:"bot_token"`
	ChannelID string `yaml:"channel_id"`
}

// ReminderConfig controls the scheduled reminder sweep.
type ReminderConfig struct {
	Cron     string `yaml:"cron"`      // 5-field cron expression
	LeadDays int    `yaml:"lead_days"` // how far ahead a due date counts as "due"
}

// M365Config holds thresholds for usage analytics.
type M365Config struct {
	HighUsagePercent float64 `yaml:"high_usage_percent"`
	InactiveDays     int     `yaml:"inactive_days"`
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.PublicURL == "" {
		c.Server.PublicURL = fmt.Sprintf("http://%s:%d", c.Server.Host, c.Server.Port)
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Path == "" {
		c.Database.Path = "assetdesk.db"
	}
	if c.Database.Host == "" {
		c.Database.Host = "127.0.0.1"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 3306
	}
	if c.Database.Name == "" {
		c.Database.Name = "assetdesk"
	}
	if c.Auth.TokenTTLHours == 0 {
		c.Auth.TokenTTLHours = 8
	}
	if c.Storage.UploadDir == "" {
		c.Storage.UploadDir = filepath.Join("data", "uploads")
	}
	if c.Reminders.Cron == "" {
		c.Reminders.Cron = "0 9 * * *"
	}
	if c.Reminders.LeadDays == 0 {
		c.Reminders.LeadDays = 3
	}
	if c.M365.HighUsagePercent == 0 {
		c.M365.HighUsagePercent = 80
	}
	if c.M365.InactiveDays == 0 {
		c.M365.InactiveDays = 60
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	if c.Auth.JWTSecret == "" {
		errs = append(errs, "auth.jwt_secret is required")
	}
	switch c.Database.Driver {
	case "sqlite", "mysql":
	default:
		errs = append(errs, fmt.Sprintf("database.driver %q is not supported (sqlite or mysql)", c.Database.Driver))
	}
	if c.Database.Driver == "mysql" && c.Database.User == "" {
		errs = append(errs, "database.user is required for the mysql driver")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
