package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"scopereport/internal/errors"
	"scopereport/models"
	"scopereport/ports"

	"github.com/jmoiron/sqlx"
)

// GenerationRepositoryImpl implements GenerationRepository for PostgreSQL
type GenerationRepositoryImpl struct {
	db *sqlx.DB
}

// NewGenerationRepository creates a new PostgreSQL generation repository
func NewGenerationRepository(db *sqlx.DB) ports.GenerationRepository {
	return &GenerationRepositoryImpl{db: db}
}

// Record stores one generation
func (r *GenerationRepositoryImpl) Record(ctx context.Context, g *models.Generation) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO report_generations (
			id, title, path, format, sha256, bytes, created_at
		) VALUES (
			:id, :title, :path, :format, :sha256, :bytes, :created_at
		)
	`, g)
	if err != nil {
		return errors.DatabaseError("failed to record generation", err)
	}
	return nil
}

// ListRecent returns the newest generations first
func (r *GenerationRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]*models.Generation, error) {
	if limit <= 0 {
		limit = 50
	}
	var gens []*models.Generation
	err := r.db.SelectContext(ctx, &gens, `
		SELECT id, title, path, format, sha256, bytes, created_at
		FROM report_generations
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, errors.DatabaseError("failed to list generations", err)
	}
	return gens, nil
}

// LatestByPath returns the newest generation written to path, or nil
func (r *GenerationRepositoryImpl) LatestByPath(ctx context.Context, path string) (*models.Generation, error) {
	var g models.Generation
	err := r.db.GetContext(ctx, &g, `
		SELECT id, title, path, format, sha256, bytes, created_at
		FROM report_generations
		WHERE path = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, path)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("failed to load generation", err)
	}
	return &g, nil
}
