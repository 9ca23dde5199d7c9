package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/mstern/tasktriage/internal/config"
	"github.com/mstern/tasktriage/internal/platform/jsonfile"
	"github.com/mstern/tasktriage/internal/platform/logger"
	"github.com/mstern/tasktriage/internal/platform/uploads"
	"github.com/mstern/tasktriage/internal/service"
	"github.com/mstern/tasktriage/internal/service/auth"
	"github.com/mstern/tasktriage/internal/store"
)

// application holds the initialized dependencies shared by the HTTP layer.
type application struct {
	config      *config.Config
	logger      *slog.Logger
	userStore   store.UserStore
	taskService *service.TaskService
	jwtService  auth.JWTService
	hasher      *auth.BcryptHasher
	uploadStore *uploads.Store
}

// newApplication loads configuration, sets up logging and wires every
// component: the two collection stores, the task service, JWT auth and the
// upload store.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to set up JWT service: %w", err)
	}

	uploadStore, err := uploads.NewStore(cfg.Storage.UploadsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to set up upload store: %w", err)
	}

	userStore := jsonfile.NewUserStore(filepath.Join(cfg.Storage.DataDir, "users.json"), log)
	taskStore := jsonfile.NewTaskStore(filepath.Join(cfg.Storage.DataDir, "tasks.json"), log)

	app := &application{
		config:      cfg,
		logger:      log,
		userStore:   userStore,
		taskService: service.NewTaskService(taskStore, log),
		jwtService:  jwtService,
		hasher:      auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		uploadStore: uploadStore,
	}

	log.Info("application initialized",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"data_dir", cfg.Storage.DataDir,
		"uploads_dir", cfg.Storage.UploadsDir)

	return app, nil
}
