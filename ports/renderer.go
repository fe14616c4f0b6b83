package ports

import (
	"io"

	"scopereport/domain/document"
)

// Renderer serialises a document into one output format.
type Renderer interface {
	Format() document.Format
	Render(w io.Writer, doc *document.Document) error
}

// RendererRegistry resolves renderers by format.
type RendererRegistry interface {
	Lookup(format document.Format) (Renderer, error)
	Formats() []document.Format
}
