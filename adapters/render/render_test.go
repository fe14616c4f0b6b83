package render

import (
	"bytes"

	"scopereport/domain/document"
	"scopereport/ports"
)

func renderBytes(renderer ports.Renderer, doc *document.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderer.Render(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
