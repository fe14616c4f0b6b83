package ports

import (
	"context"

	"scopereport/models"
)

// GenerationRepository persists the history of written reports
type GenerationRepository interface {
	// Record stores one generation
	Record(ctx context.Context, g *models.Generation) error

	// ListRecent returns the newest generations first
	ListRecent(ctx context.Context, limit int) ([]*models.Generation, error)

	// LatestByPath returns the newest generation written to path, or nil
	LatestByPath(ctx context.Context, path string) (*models.Generation, error)
}
