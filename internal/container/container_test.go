package container

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"scopereport/domain/document"
	"scopereport/internal"
	"scopereport/internal/config"
	"scopereport/internal/scope"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Output: config.OutputConfig{
			Path:    scope.DefaultFileName,
			Formats: []document.Format{document.FormatDOCX},
		},
	}
}

func TestNewWithoutDatabase(t *testing.T) {
	c, err := New(context.Background(), testConfig(), internal.Discard())
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.DB)
	assert.Nil(t, c.GenerationRepo)
	assert.NotNil(t, c.ReportService)
	assert.Equal(t, document.Formats, c.Registry.Formats())
}

func TestNewRejectsNilConfig(t *testing.T) {
	_, err := New(context.Background(), nil, internal.Discard())
	assert.Error(t, err)
}

func TestInitWithDatabaseRunsMigration(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS report_generations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_report_generations_path_created").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectClose()

	c := &Container{Config: testConfig(), Logger: internal.Discard()}
	require.NoError(t, c.InitWithDatabase(context.Background(), sqlx.NewDb(db, "postgres")))
	assert.NotNil(t, c.GenerationRepo)

	require.NoError(t, c.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadDocumentDefaultsToScope(t *testing.T) {
	c, err := New(context.Background(), testConfig(), internal.Discard())
	require.NoError(t, err)

	doc, err := c.LoadDocument()
	require.NoError(t, err)
	assert.Equal(t, scope.Title, doc.Title)
}

func TestLoadDocumentFromSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	require.NoError(t, os.WriteFile(path, []byte("# Custom\n\n## Section\n\nBody.\n"), 0o644))

	cfg := testConfig()
	cfg.Source.Path = path
	c, err := New(context.Background(), cfg, internal.Discard())
	require.NoError(t, err)

	doc, err := c.LoadDocument()
	require.NoError(t, err)
	assert.Equal(t, "Custom", doc.Title)
	assert.Equal(t, []string{"Section"}, doc.Headings())
}

type failingMigrator struct{}

func (failingMigrator) Run(ctx context.Context, db *sqlx.DB) error {
	return errors.New("permission denied")
}

func (failingMigrator) Version() string { return "test" }

func TestInitWithDatabaseMigrationFailure(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	c := &Container{Config: testConfig(), Logger: internal.Discard(), Migrator: failingMigrator{}}
	err = c.InitWithDatabase(context.Background(), sqlx.NewDb(db, "postgres"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database migration failed")
	assert.Nil(t, c.GenerationRepo)
	assert.Nil(t, c.DB)
}
