package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/hward/assetdesk/internal/config"
	"github.com/hward/assetdesk/internal/db"
	"github.com/hward/assetdesk/internal/notify"
	"github.com/hward/assetdesk/internal/remind"
	"github.com/hward/assetdesk/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Assetdesk API server",
		Long:  "Starts the HTTP API and the scheduled reminder sweep. Runs until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "assetdesk.yaml", "path to Assetdesk config file")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}

	notifier, err := notify.FromConfig(cfg.Notify)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Notification adapters: %d\n", notifier.Len())

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper := &remind.Sweeper{DB: gormDB, Notifier: notifier, LeadDays: cfg.Reminders.LeadDays}
	if _, err := remind.Start(ctx, cfg.Reminders.Cron, sweeper); err != nil {
		return err
	}
	fmt.Fprintf(out, "Reminder sweep scheduled (%s, %d-day lead)\n", cfg.Reminders.Cron, cfg.Reminders.LeadDays)

	return server.Start(ctx, server.StartOpts{
		DB:       gormDB,
		Config:   cfg,
		Notifier: notifier,
		Out:      out,
	})
}
