// Package source loads report definitions from markdown or yaml files.
package source

import (
	"os"
	"path/filepath"
	"strings"

	"scopereport/domain/document"
	"scopereport/internal/errors"
)

// Load reads path and parses it according to its extension.
func Load(path string) (*document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, errors.Wrapf(err, "failed to read source %s", path))
	}

	var doc *document.Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		doc, err = ParseMarkdown(data)
	case ".yaml", ".yml":
		doc, err = ParseYAML(data)
	default:
		return nil, errors.InvalidInput("source must be .md or .yaml: " + path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse source %s", path)
	}
	if doc.Title == "" {
		doc.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc, nil
}
