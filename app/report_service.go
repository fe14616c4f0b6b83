package app

import (
	"bytes"
	"context"
	"os"
	"time"

	"scopereport/domain/core"
	"scopereport/domain/document"
	"scopereport/internal"
	"scopereport/internal/errors"
	"scopereport/models"
	"scopereport/ports"

	"golang.org/x/sync/errgroup"
)

// Target is one file to produce.
type Target struct {
	Format document.Format
	Path   string
}

// Output describes a written file.
type Output struct {
	Target
	SHA256 core.Hash
	Bytes  int64

	// Unchanged is set when the ledger's last write to Path had the same
	// content.
	Unchanged bool
}

// BuildTargets derives one target per format from a base path, swapping the
// extension where the format differs.
func BuildTargets(path string, formats []document.Format) []Target {
	targets := make([]Target, 0, len(formats))
	for _, f := range formats {
		targets = append(targets, Target{Format: f, Path: f.PathFor(path)})
	}
	return targets
}

// ReportService renders documents and writes them to disk
type ReportService struct {
	registry ports.RendererRegistry
	ledger   ports.GenerationRepository
	logger   *internal.Logger
	now      func() time.Time
}

// NewReportService creates a report service. ledger may be nil.
func NewReportService(registry ports.RendererRegistry, ledger ports.GenerationRepository, logger *internal.Logger) *ReportService {
	return &ReportService{
		registry: registry,
		ledger:   ledger,
		logger:   logger,
		now:      time.Now,
	}
}

// Render produces the bytes for one format.
func (s *ReportService) Render(format document.Format, doc *document.Document) ([]byte, error) {
	renderer, err := s.registry.Lookup(format)
	if err != nil {
		return nil, err
	}
	data, err := renderBytes(renderer, doc)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to render %s", format)
	}
	return data, nil
}

// Generate renders and writes every target concurrently. Existing files are
// overwritten; missing directories are not created. The first failure
// cancels the remaining work and is returned.
func (s *ReportService) Generate(ctx context.Context, doc *document.Document, targets []Target) ([]Output, error) {
	if len(targets) == 0 {
		return nil, errors.InvalidInput("no output targets")
	}
	seen := make(map[string]bool, len(targets))
	for _, t := range targets {
		if seen[t.Path] {
			return nil, errors.InvalidInput("duplicate output path " + t.Path)
		}
		seen[t.Path] = true
	}

	outputs := make([]Output, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	for i, t := range targets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := s.Render(t.Format, doc)
			if err != nil {
				return err
			}
			if err := os.WriteFile(t.Path, data, 0o644); err != nil {
				return errors.IOError(t.Path, err)
			}
			outputs[i] = Output{Target: t, SHA256: core.NewHash(data), Bytes: int64(len(data))}
			s.logger.Debug("wrote %s (%d bytes, sha256 %s)", t.Path, len(data), outputs[i].SHA256)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.record(ctx, doc, outputs)
	return outputs, nil
}

// record stores outputs in the ledger and flags files whose content matches
// the previous write. Failures are logged, not returned: the files are
// already on disk.
func (s *ReportService) record(ctx context.Context, doc *document.Document, outputs []Output) {
	if s.ledger == nil {
		return
	}
	for i := range outputs {
		o := &outputs[i]
		prev, err := s.ledger.LatestByPath(ctx, o.Path)
		if err != nil {
			s.logger.Warn("failed to look up previous generation of %s: %v", o.Path, err)
		} else if prev != nil && core.Hash(prev.SHA256).Equals(o.SHA256) {
			o.Unchanged = true
			s.logger.Info("%s unchanged since %s", o.Path, prev.CreatedAt.Format(time.RFC3339))
		}

		gen := &models.Generation{
			ID:        core.NewUUID(),
			Title:     doc.Title,
			Path:      o.Path,
			Format:    string(o.Format),
			SHA256:    o.SHA256.String(),
			Bytes:     o.Bytes,
			CreatedAt: s.now().UTC(),
		}
		if err := s.ledger.Record(ctx, gen); err != nil {
			s.logger.Warn("failed to record generation of %s: %v", o.Path, err)
		}
	}
}

// History returns the newest ledger entries, or an empty list when no
// ledger is configured.
func (s *ReportService) History(ctx context.Context, limit int) ([]*models.Generation, error) {
	if s.ledger == nil {
		return []*models.Generation{}, nil
	}
	return s.ledger.ListRecent(ctx, limit)
}

func renderBytes(renderer ports.Renderer, doc *document.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderer.Render(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
