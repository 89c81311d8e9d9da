// Package main initializes and starts the TaskMaster application server,
// setting up configuration, logging, the key-value store, repositories,
// services and handlers.
package main

import (
	"cmp"
	"fmt"

	nethttp "net/http"

	"github.com/atinyakov/taskmaster/internal/config"
	"github.com/atinyakov/taskmaster/internal/kvstore"
	"github.com/atinyakov/taskmaster/internal/logger"
	"github.com/atinyakov/taskmaster/internal/repository"
	"github.com/atinyakov/taskmaster/internal/server/handler/http"
	"github.com/atinyakov/taskmaster/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Open the persistent key-value store backing all application state.
	store, err := kvstore.Open(options.StorePath)
	if err != nil {
		zapLogger.Fatal("cannot open storage", zap.Error(err))
	}

	// Initialize repositories over the store.
	directory := repository.NewDirectory(store, zapLogger)
	taskRepo := repository.NewTaskRepository(store, zapLogger)
	sessionRepo := repository.NewSessionRepository(store, zapLogger)
	themeRepo := repository.NewThemeRepository(store)

	// Initialize business-logic services.
	authService := service.NewAuthService(directory, taskRepo)
	sessions := service.NewSessionManager(directory, sessionRepo, taskRepo)
	taskService := service.NewTaskService(taskRepo)

	// Re-establish a session persisted by a previous run.
	if profile := sessions.Restore(); profile != nil {
		zapLogger.Info("restored session", zap.String("email", profile.Email))
	}

	// Create HTTP handlers for the auth, task and profile endpoints.
	authHandler := &http.AuthHandler{AuthService: authService, Sessions: sessions}
	taskHandler := &http.TaskHandler{TaskService: taskService}
	profileHandler := &http.ProfileHandler{Sessions: sessions, Themes: themeRepo}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, taskHandler, profileHandler, sessions, zapLogger)

	// Create and start the HTTP server.
	server := &nethttp.Server{
		Addr:    options.Address,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server",
		zap.String("addr", options.Address),
		zap.String("store", options.StorePath))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
