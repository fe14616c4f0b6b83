package container

import (
	"context"

	"scopereport/adapters/postgres"
	"scopereport/adapters/render"
	"scopereport/adapters/source"
	"scopereport/app"
	"scopereport/domain/document"
	"scopereport/internal"
	"scopereport/internal/config"
	"scopereport/internal/errors"
	"scopereport/internal/migration"
	"scopereport/internal/scope"
	"scopereport/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB       *sqlx.DB
	Migrator migration.Migrator

	Registry       *render.Registry
	GenerationRepo ports.GenerationRepository
	ReportService  *app.ReportService
}

// New creates a new dependency injection container. The database is only
// opened when cfg.Database.URL is set.
func New(ctx context.Context, cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, errors.ConfigInvalid("config cannot be nil")
	}

	c := &Container{
		Config:   cfg,
		Logger:   logger,
		Registry: render.NewRegistry(),
		Migrator: migration.NewRunner(),
	}

	if cfg.Database.URL != "" {
		db, err := sqlx.ConnectContext(ctx, "postgres", cfg.Database.URL)
		if err != nil {
			return nil, errors.DatabaseError("failed to connect to database", err)
		}
		if err := c.InitWithDatabase(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
	}

	c.ReportService = app.NewReportService(c.Registry, c.GenerationRepo, logger)
	return c, nil
}

// InitWithDatabase migrates the schema and wires the generation ledger
func (c *Container) InitWithDatabase(ctx context.Context, db *sqlx.DB) error {
	if db == nil {
		return errors.InvalidInput("database connection cannot be nil")
	}

	if c.Migrator == nil {
		c.Migrator = migration.NewRunner()
	}
	if err := c.Migrator.Run(ctx, db); err != nil {
		return errors.Wrap(err, "database migration failed")
	}
	c.Logger.Debug("schema at migration %s", c.Migrator.Version())

	c.DB = db
	c.GenerationRepo = postgres.NewGenerationRepository(db)
	c.Logger.Debug("generation ledger enabled")
	return nil
}

// LoadDocument returns the configured report: the source file when one is
// set, the built-in scope report otherwise.
func (c *Container) LoadDocument() (*document.Document, error) {
	if c.Config.Source.Path == "" {
		return scope.Build(), nil
	}
	return source.Load(c.Config.Source.Path)
}

// Close releases held resources
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
