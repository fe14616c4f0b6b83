// Package render turns a document.Document into docx, xlsx, markdown or
// html bytes.
package render

import (
	"scopereport/domain/document"
	"scopereport/internal/errors"
	"scopereport/ports"
)

// Registry maps formats to renderers.
type Registry struct {
	renderers map[document.Format]ports.Renderer
}

// NewRegistry returns a registry holding every built-in renderer.
func NewRegistry() *Registry {
	reg := &Registry{renderers: make(map[document.Format]ports.Renderer)}
	reg.Register(NewDOCXRenderer())
	reg.Register(NewXLSXRenderer())
	reg.Register(NewMarkdownRenderer())
	reg.Register(NewHTMLRenderer())
	return reg
}

// Register adds or replaces the renderer for its format.
func (r *Registry) Register(renderer ports.Renderer) {
	r.renderers[renderer.Format()] = renderer
}

// Lookup returns the renderer for format.
func (r *Registry) Lookup(format document.Format) (ports.Renderer, error) {
	renderer, ok := r.renderers[format]
	if !ok {
		return nil, errors.UnsupportedFormat(string(format))
	}
	return renderer, nil
}

// Formats lists registered formats in document.Formats order.
func (r *Registry) Formats() []document.Format {
	var out []document.Format
	for _, f := range document.Formats {
		if _, ok := r.renderers[f]; ok {
			out = append(out, f)
		}
	}
	return out
}
