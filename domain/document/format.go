package document

import (
	"path/filepath"
	"strings"
)

// Format names an output encoding.
type Format string

const (
	FormatDOCX     Format = "docx"
	FormatXLSX     Format = "xlsx"
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
)

// Formats lists every supported format in a stable order.
var Formats = []Format{FormatDOCX, FormatXLSX, FormatMarkdown, FormatHTML}

// ParseFormat normalises a user-supplied format name. The second result is
// false for unknown names.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "docx", "word":
		return FormatDOCX, true
	case "xlsx", "excel":
		return FormatXLSX, true
	case "md", "markdown":
		return FormatMarkdown, true
	case "html", "htm":
		return FormatHTML, true
	}
	return "", false
}

// FormatFromPath infers a format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", false
	}
	return ParseFormat(ext)
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// ContentType returns the MIME type used when serving the format.
func (f Format) ContentType() string {
	switch f {
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	}
	return "application/octet-stream"
}

// PathFor swaps the extension of path for the format's own.
func (f Format) PathFor(path string) string {
	if cur, ok := FormatFromPath(path); ok && cur == f {
		return path
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + f.Extension()
}
