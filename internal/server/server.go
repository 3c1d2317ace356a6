// Package server holds the application container.
//
// Server owns every long-lived resource (configuration, logger, APM agent,
// SQLite handle, upload directory and metrics registry) and is passed to the
// repositories, services, handlers and middleware that need them.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/tacomemo/internal/config"
	"github.com/deppfellow/tacomemo/internal/database"
	"github.com/deppfellow/tacomemo/internal/lib/upload"
	"github.com/deppfellow/tacomemo/internal/metrics"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/tacomemo/internal/logger"
)

// metricsNamespace prefixes every exported Prometheus metric.
const metricsNamespace = "tacomemo"

type Server struct {
	Config *config.Config

	// Logger is the application's main structured logger.
	Logger *zerolog.Logger

	// LoggerService holds the New Relic application, if one is configured.
	LoggerService *loggerPkg.LoggerService

	DB *database.Database

	// Uploads writes carousel images to the upload directory.
	Uploads *upload.Receiver

	Metrics *metrics.Metrics

	httpServer *http.Server
}

// New opens the database, prepares the upload directory and creates the
// metrics registry.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	uploads, err := upload.NewReceiver(cfg.Upload.Dir, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize uploads: %w", err)
	}

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Uploads:       uploads,
		Metrics:       metrics.New(metricsNamespace),
	}, nil
}

// SetupHTTPServer wraps handler in an *http.Server using the configured
// timeouts.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:              ":" + s.Config.Server.Port,
		Handler:           handler,
		ReadTimeout:       time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		ReadHeaderTimeout: time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start blocks serving HTTP. It returns http.ErrServerClosed after Shutdown.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting requests, waits for in-flight ones, then closes
// the database and flushes New Relic.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	s.LoggerService.Shutdown()

	return nil
}
