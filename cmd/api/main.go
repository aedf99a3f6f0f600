package main

import (
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"mddrop/internal/config"
	"mddrop/internal/http"
	"mddrop/internal/preview"
	"mddrop/internal/service"
	"mddrop/internal/storage"
	"mddrop/internal/workspace"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	workspaceRepo := storage.NewWorkspaceRepo(db)

	workspaces, err := workspace.NewManager(workspaceRepo, cfg.SnapshotCacheSize)
	if err != nil {
		log.Fatalf("Failed to initialize workspace manager: %v", err)
	}
	slog.Info("Workspace manager initialized", "cache_size", cfg.SnapshotCacheSize)

	dropService := service.NewDropService(workspaces, preview.NewRenderer(), service.DropSettings{
		Enabled:   cfg.DropEnabled,
		Separator: cfg.DropSeparator,
	})
	if !cfg.DropEnabled {
		slog.Warn("Drop to link is disabled by configuration")
	}

	// Create router with dependencies
	deps := &http.Deps{
		DropService: dropService,
		Workspaces:  workspaces,
		DB:          db,
		DropEnabled: cfg.DropEnabled,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
