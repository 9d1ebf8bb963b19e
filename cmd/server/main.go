package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/baseplate/cms/config"
	"github.com/baseplate/cms/internal/api"
	"github.com/baseplate/cms/internal/api/handlers"
	"github.com/baseplate/cms/internal/core/auth"
	"github.com/baseplate/cms/internal/core/model"
	"github.com/baseplate/cms/internal/core/query"
	"github.com/baseplate/cms/internal/core/validation"
	"github.com/baseplate/cms/internal/log"
	"github.com/baseplate/cms/internal/storage"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("%v", err)
	}
}

// run owns every resource the server opens, so deferred cleanup happens
// before main exits on error.
func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := log.SetLevel(cfg.Log.Level); err != nil {
		log.Warnf("Ignoring log level %q: %v", cfg.Log.Level, err)
	}

	namespace := uuid.Nil
	if cfg.Storage.Namespace != "" {
		namespace, err = uuid.Parse(cfg.Storage.Namespace)
		if err != nil {
			return fmt.Errorf("invalid UUID_NAMESPACE: %w", err)
		}
	}

	ctx := context.Background()

	// Open storage
	repo, closer, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Driver, err)
	}
	defer func() {
		if err := closer.Close(); err != nil {
			log.Errorf("Failed to close %s storage: %v", cfg.Storage.Driver, err)
		}
	}()

	log.Infof("Using %s storage", cfg.Storage.Driver)

	// Initialize services
	authService := auth.NewService(&cfg.JWT)
	modelService := model.NewService(repo, validation.NewValidator(), namespace)
	queryService := query.NewService(modelService)

	if !authService.Enabled() {
		log.Warnf("JWT_SECRET is not set, the API accepts unauthenticated requests")
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	modelHandler := handlers.NewModelHandler(modelService)
	fieldHandler := handlers.NewFieldHandler(modelService)
	entryHandler := handlers.NewEntryHandler(modelService, queryService)

	// Setup router
	router := api.NewRouter(
		authService,
		authHandler,
		modelHandler,
		fieldHandler,
		entryHandler,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router.Setup(cfg.Server.Mode),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Forced shutdown: %v", err)
		}
	}()

	// Start server
	log.Infof("Starting server on port %s", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
