// Package main implements the entry point for the study group API server,
// which keeps study groups, their lists, topics and events in memory and
// serves them over HTTP.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/phrazzld/studygroup-api/internal/config"
	"github.com/phrazzld/studygroup-api/internal/platform/logger"
)

func main() {
	fmt.Println("Study Group API Server Starting...")

	cfg, appLogger, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger, nil)
	if err != nil {
		appLogger.Error("Failed to build application", "error", err)
		log.Fatalf("Failed to build application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		appLogger.Error("Server stopped with error", "error", err)
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"leave_mode", cfg.Membership.LeaveMode,
		"confirmation_ttl", cfg.Confirmation.TTL,
		"seed_enabled", cfg.Seed.Enabled)
	if cfg.Identity.DefaultUser != "" {
		l.Debug("Identity configuration", "default_user_present", true)
	}

	return cfg, l, nil
}
