package ui

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"scopereport/app"
	"scopereport/domain/document"
	"scopereport/internal"
)

// DocumentLoader returns the document to serve. It runs per request so
// edits to a source file show up without a restart.
type DocumentLoader func() (*document.Document, error)

// App serves the report over HTTP
type App struct {
	router  *chi.Mux
	service *app.ReportService
	load    DocumentLoader
	logger  *internal.Logger
	config  Config
}

// Config holds UI application configuration
type Config struct {
	Port            string
	ShutdownTimeout time.Duration
}

// NewApp creates a new UI application
func NewApp(config Config, service *app.ReportService, load DocumentLoader, logger *internal.Logger) *App {
	a := &App{
		router:  chi.NewRouter(),
		service: service,
		load:    load,
		logger:  logger,
		config:  config,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a
}

// setupMiddleware configures HTTP middleware. Access logs follow the
// logger's level and start at INFO.
func (a *App) setupMiddleware() {
	if a.logger.GetLevel() >= internal.LogLevelInfo {
		a.router.Use(middleware.Logger)
	}
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/healthz", a.handleHealth)
	a.router.Get("/report", a.handleOutline)
	a.router.Get("/report.{format}", a.handleDownload)
	a.router.Get("/generations", a.handleGenerations)
}

// Handler exposes the router, mainly for tests
func (a *App) Handler() http.Handler {
	return a.router
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (a *App) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + a.config.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting report server on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		timeout := a.config.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		a.logger.Info("Shutting down report server")
		return srv.Shutdown(shutdownCtx)
	}
}
