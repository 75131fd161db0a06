package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/config"
	"github.com/phrazzld/studygroup-api/internal/events"
	"github.com/phrazzld/studygroup-api/internal/platform/memory"
	"github.com/phrazzld/studygroup-api/internal/platform/metrics"
	"github.com/phrazzld/studygroup-api/internal/seed"
	"github.com/phrazzld/studygroup-api/internal/service"
	"github.com/phrazzld/studygroup-api/internal/service/confirm"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config
	clock  service.Clock

	// Core services
	logger *slog.Logger
	db     *memory.DB
	stores service.Stores

	// Service interfaces
	groupService service.GroupService
	studyService service.StudyService
	eventService service.EventService
	gate         *confirm.Gate

	// Event system and instrumentation
	eventEmitter *events.Dispatcher
	metrics      *metrics.Metrics

	// defaultUser acts for requests without an identity header
	defaultUser uuid.UUID
}

// newApplication creates a new application instance with all dependencies initialized.
// A nil clock means service.SystemClock.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	clock service.Clock,
) (*application, error) {
	if clock == nil {
		clock = service.SystemClock
	}
	app := &application{
		config: cfg,
		clock:  clock,
		logger: logger,
	}

	// Initialize stores
	app.db = memory.NewDB(logger)
	app.stores = service.Stores{
		Tx:       app.db,
		Users:    memory.NewUserStore(app.db, logger),
		Groups:   memory.NewGroupStore(app.db, logger),
		Lists:    memory.NewStudyListStore(app.db, logger),
		Topics:   memory.NewTopicStore(app.db, logger),
		Comments: memory.NewCommentStore(app.db, logger),
		Events:   memory.NewEventStore(app.db, logger),
	}

	// Initialize metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	app.metrics = metrics.New(reg)

	// Initialize event emitter
	app.eventEmitter = events.NewDispatcher(logger)
	app.eventEmitter.RegisterHandler(events.NewLogHandler(logger))
	app.eventEmitter.RegisterHandler(app.metrics)

	var err error
	app.groupService, err = service.NewGroupService(app.stores, app.eventEmitter, service.GroupConfig{
		LeaveMode:    service.LeaveMode(cfg.Membership.LeaveMode),
		CodeAttempts: cfg.Membership.CodeAttempts,
	}, clock, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create group service: %w", err)
	}

	app.studyService, err = service.NewStudyService(app.stores, app.eventEmitter, clock, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create study service: %w", err)
	}

	app.eventService, err = service.NewEventService(app.stores, app.eventEmitter, clock, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create event service: %w", err)
	}

	// Initialize the confirmation gate for destructive requests
	app.gate = confirm.NewGate(cfg.Confirmation.TTL, clock, logger)
	app.gate.SetObserver(app.metrics)
	confirm.RegisterDefaults(app.gate, app.groupService, app.studyService, app.eventService)

	if cfg.Seed.Enabled {
		sum, err := seed.Load(ctx, app.stores, clock(), logger)
		if err != nil {
			return nil, fmt.Errorf("failed to load seed data: %w", err)
		}
		app.defaultUser = seed.SessionUserID
		logger.Info("Seed data available", "groups", sum.Groups, "session_user", app.defaultUser)
	}

	if cfg.Identity.DefaultUser != "" {
		app.defaultUser, err = uuid.Parse(cfg.Identity.DefaultUser)
		if err != nil {
			return nil, fmt.Errorf("invalid default user: %w", err)
		}
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	app.logger.Info("Application shutdown completed",
		"pending_confirmations", app.gate.Len())
}
