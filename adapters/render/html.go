package render

import (
	"bufio"
	"bytes"
	"html"
	"io"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"scopereport/domain/document"
	"scopereport/internal/errors"
)

const htmlStyle = `body{font-family:Calibri,Arial,sans-serif;max-width:52em;margin:2em auto;line-height:1.4}
table{border-collapse:collapse;width:100%}
th,td{border:1px solid #444;padding:4px 8px;vertical-align:top;text-align:left}
pre{font-family:Consolas,monospace;font-size:10pt;margin-left:.25in}`

// HTMLRenderer produces a standalone HTML page from the markdown rendering.
type HTMLRenderer struct {
	md *MarkdownRenderer
}

// NewHTMLRenderer creates an html renderer.
func NewHTMLRenderer() *HTMLRenderer {
	// Raw html is dropped, so cell breaks become spaces.
	return &HTMLRenderer{md: &MarkdownRenderer{cellBreak: " "}}
}

// Format implements ports.Renderer.
func (r *HTMLRenderer) Format() document.Format {
	return document.FormatHTML
}

// Render writes doc as a complete html page.
func (r *HTMLRenderer) Render(w io.Writer, doc *document.Document) error {
	var md bytes.Buffer
	if err := r.md.Render(&md, doc); err != nil {
		return err
	}
	body := markdownToHTML(md.Bytes())

	bw := bufio.NewWriter(w)
	bw.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	bw.WriteString(html.EscapeString(doc.Title))
	bw.WriteString("</title>\n<style>\n")
	bw.WriteString(htmlStyle)
	bw.WriteString("\n</style>\n</head>\n<body>\n")
	bw.Write(body)
	bw.WriteString("</body>\n</html>\n")
	if err := bw.Flush(); err != nil {
		return errors.RenderError("html", err)
	}
	return nil
}

// markdownToHTML converts a markdown fragment, dropping raw html. Parsers
// carry state, so a fresh one is built per call.
func markdownToHTML(md []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.SkipHTML})
	return markdown.ToHTML(md, p, renderer)
}
