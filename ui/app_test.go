package ui

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"scopereport/adapters/render"
	"scopereport/app"
	"scopereport/domain/document"
	"scopereport/internal"
	apperrors "scopereport/internal/errors"
	"scopereport/internal/scope"
	"scopereport/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(load DocumentLoader) *App {
	service := app.NewReportService(render.NewRegistry(), nil, internal.Discard())
	return NewApp(Config{Port: "0"}, service, load, internal.Discard())
}

func scopeLoader() (*document.Document, error) {
	return scope.Build(), nil
}

func get(t *testing.T, a *App, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestApp(scopeLoader), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestOutline(t *testing.T) {
	rec := get(t, newTestApp(scopeLoader), "/report")
	require.Equal(t, http.StatusOK, rec.Code)

	var outline reportOutline
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outline))

	assert.Equal(t, scope.Title, outline.Title)
	assert.Equal(t, []string{
		scope.HeadingBuild,
		scope.HeadingFlow,
		scope.HeadingAssumptions,
		scope.HeadingOutOfScope,
		scope.HeadingInputs,
		scope.HeadingDeliverable,
	}, outline.Headings)
	require.Len(t, outline.Tables, 2)
	assert.Equal(t, tableOutline{Heading: scope.HeadingBuild, Columns: 2, Rows: 6}, outline.Tables[0])
	assert.Equal(t, tableOutline{Heading: scope.HeadingInputs, Columns: 2, Rows: 3}, outline.Tables[1])
	assert.Equal(t, []string{"docx", "xlsx", "md", "html"}, outline.Formats)
}

func TestDownloadDocx(t *testing.T) {
	rec := get(t, newTestApp(scopeLoader), "/report.docx")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, document.FormatDOCX.ContentType(), rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment;")
	assert.Equal(t, `attachment; filename="skoda-lifestyle-e-commerce-integration-one-page-report.docx"`, rec.Header().Get("Content-Disposition"))

	body := rec.Body.Bytes()
	_, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	assert.NoError(t, err)
}

func TestDownloadMarkdown(t *testing.T) {
	rec := get(t, newTestApp(scopeLoader), "/report.md")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, rec.Body.String(), "\n# "+scope.HeadingFlow+"\n")
}

func TestDownloadUnknownFormat(t *testing.T) {
	rec := get(t, newTestApp(scopeLoader), "/report.pdf")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIndexServesHTML(t *testing.T) {
	rec := get(t, newTestApp(scopeLoader), "/")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, document.FormatHTML.ContentType(), rec.Header().Get("Content-Type"))
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "<table>")
}

func TestLoaderErrorMapsToStatus(t *testing.T) {
	a := newTestApp(func() (*document.Document, error) {
		return nil, apperrors.InvalidInput("bad definition")
	})

	rec := get(t, a, "/report")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "bad definition")
}

type stubLedger struct {
	gens      []*models.Generation
	lastLimit int
}

func (s *stubLedger) Record(ctx context.Context, g *models.Generation) error { return nil }

func (s *stubLedger) ListRecent(ctx context.Context, limit int) ([]*models.Generation, error) {
	s.lastLimit = limit
	return s.gens, nil
}

func (s *stubLedger) LatestByPath(ctx context.Context, path string) (*models.Generation, error) {
	return nil, nil
}

func TestGenerationsWithoutLedger(t *testing.T) {
	rec := get(t, newTestApp(scopeLoader), "/generations")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGenerationsListsLedger(t *testing.T) {
	ledger := &stubLedger{gens: []*models.Generation{
		{Path: "report.docx", Format: "docx", SHA256: "abc", Bytes: 42},
	}}
	service := app.NewReportService(render.NewRegistry(), ledger, internal.Discard())
	a := NewApp(Config{Port: "0"}, service, scopeLoader, internal.Discard())

	rec := get(t, a, "/generations?limit=5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, ledger.lastLimit)

	var gens []models.Generation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &gens))
	require.Len(t, gens, 1)
	assert.Equal(t, "report.docx", gens[0].Path)
	assert.Equal(t, int64(42), gens[0].Bytes)
}

func TestGenerationsRejectsBadLimit(t *testing.T) {
	rec := get(t, newTestApp(scopeLoader), "/generations?limit=-1")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestFileStem(t *testing.T) {
	assert.Equal(t, "skoda-lifestyle-e-commerce-integration-one-page-report", fileStem(scope.Title))
	assert.Equal(t, "creme-brulee", fileStem("Crème Brûlée"))
	assert.Equal(t, "report", fileStem("—"))
	assert.Equal(t, "a-b", fileStem("a / b"))
}

func TestAccessLogFollowsLevel(t *testing.T) {
	service := app.NewReportService(render.NewRegistry(), nil, internal.Discard())

	quiet := NewApp(Config{}, service, scopeLoader, internal.Discard())
	verbose := NewApp(Config{}, service, scopeLoader, internal.NewLogger(internal.LogLevelInfo, io.Discard))

	assert.Len(t, quiet.router.Middlewares(), 2)
	assert.Len(t, verbose.router.Middlewares(), 3)
}
