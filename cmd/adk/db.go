package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/hward/assetdesk/internal/config"
	"github.com/hward/assetdesk/internal/db"
	"github.com/spf13/cobra"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
	}

	cmd.AddCommand(newDBInitCmd())
	cmd.AddCommand(newDBResetCmd())
	return cmd
}

func newDBInitCmd() *cobra.Command {
	var (
		configPath    string
		adminUser     string
		adminPassword string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the Assetdesk database",
		Long:  "Migrates all tables and seeds the initial admin account if it does not exist.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBInit(cmd, configPath, adminUser, adminPassword)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "assetdesk.yaml", "path to Assetdesk config file")
	cmd.Flags().StringVar(&adminUser, "admin-user", "admin", "initial admin username")
	cmd.Flags().StringVar(&adminPassword, "admin-password", "", "initial admin password (required on first init)")
	return cmd
}

func runDBInit(cmd *cobra.Command, configPath, adminUser, adminPassword string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	fmt.Fprintf(out, "Loaded config from %s (driver: %s)\n", configPath, cfg.Database.Driver)

	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated %d tables\n", len(db.AllModels()))

	if adminPassword != "" {
		if err := db.SeedAdmin(gormDB, adminUser, adminPassword); err != nil {
			return err
		}
		fmt.Fprintf(out, "Admin account %q ready\n", adminUser)
	}

	fmt.Fprintln(out, "\nAssetdesk database initialized successfully.")
	return nil
}

func newDBResetCmd() *cobra.Command {
	var (
		configPath string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete and re-initialize the Assetdesk database",
		Long: `Deletes the SQLite database file and re-creates the schema.

Only the sqlite driver is supported here; for MySQL, drop the database
with your usual tooling and run "adk db init".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBReset(cmd, configPath, yes)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "assetdesk.yaml", "path to Assetdesk config file")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func runDBReset(cmd *cobra.Command, configPath string, skipConfirm bool) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Database.Driver != "sqlite" {
		return fmt.Errorf("db reset supports only the sqlite driver (configured: %s)", cfg.Database.Driver)
	}

	if !skipConfirm && !confirmReset(cmd, cfg.Database.Path) {
		fmt.Fprintln(out, "Aborted.")
		return nil
	}

	if err := os.Remove(cfg.Database.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", cfg.Database.Path, err)
	}
	fmt.Fprintf(out, "Removed %s\n", cfg.Database.Path)

	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated %d tables\n", len(db.AllModels()))

	fmt.Fprintln(out, "\nAssetdesk database reset successfully.")
	return nil
}

func confirmReset(cmd *cobra.Command, path string) bool {
	out := cmd.OutOrStdout()
	in := cmd.InOrStdin()

	fmt.Fprintf(out, "WARNING: This will permanently delete all data in %q.\n", path)
	fmt.Fprintln(out, "This action cannot be undone.")
	fmt.Fprintln(out)
	fmt.Fprint(out, "Type \"yes\" to confirm: ")

	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()) == "yes"
	}
	return false
}
