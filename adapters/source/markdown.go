package source

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"

	"scopereport/domain/document"
)

// ParseMarkdown maps a markdown document onto the report model. The first
// level-one heading before any other content becomes the title; headings,
// paragraphs, bullet lists, pipe tables, fenced code and thematic breaks
// map onto their document counterparts.
func ParseMarkdown(data []byte) (*document.Document, error) {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	root := markdown.Parse(data, p)

	doc := document.New("")
	for i, node := range root.GetChildren() {
		switch n := node.(type) {
		case *ast.Heading:
			text := plainText(n)
			if i == 0 && n.Level == 1 {
				doc.Title = text
				title := doc.AddParagraph("")
				title.Alignment = document.AlignCenter
				r := title.AddRun(text)
				r.Bold = true
				r.Size = document.Pt(16)
				continue
			}
			doc.AddHeading(text, n.Level)
		case *ast.Paragraph:
			para := doc.AddParagraph("")
			appendInline(para, n, inlineStyle{})
		case *ast.List:
			addList(doc, n, 0)
		case *ast.CodeBlock:
			doc.AddPreformatted(strings.TrimRight(string(n.Literal), "\n"))
		case *ast.HorizontalRule:
			doc.AddRule()
		case *ast.Table:
			headers, rows := tableCells(n)
			doc.AddTable(headers, rows)
		}
	}
	return doc, nil
}

// bulletIndent is the extra left indent per nesting level.
const bulletIndent = 0.5

// addList emits one bullet per item. Nested lists follow their parent item
// as indented bullets.
func addList(doc *document.Document, list *ast.List, depth int) {
	for _, item := range list.GetChildren() {
		para := doc.AddBullet("")
		if depth > 0 {
			para.Format.LeftIndent = document.Inches(bulletIndent * float64(depth+1))
		}
		for _, child := range item.GetChildren() {
			if sub, ok := child.(*ast.List); ok {
				addList(doc, sub, depth+1)
				continue
			}
			if len(para.Runs) > 0 {
				addRun(para, " ", inlineStyle{})
			}
			appendInline(para, child, inlineStyle{})
		}
	}
}

type inlineStyle struct {
	bold, italic, code bool
}

// appendInline walks inline children, adding one run per text leaf.
func appendInline(para *document.Paragraph, node ast.Node, style inlineStyle) {
	for _, child := range node.GetChildren() {
		switch c := child.(type) {
		case *ast.Text:
			// Soft line breaks arrive inside text literals.
			addRun(para, strings.ReplaceAll(string(c.Literal), "\n", " "), style)
		case *ast.Code:
			s := style
			s.code = true
			addRun(para, string(c.Literal), s)
		case *ast.Softbreak:
			addRun(para, " ", style)
		case *ast.Hardbreak:
			addRun(para, "\n", style)
		case *ast.Strong:
			s := style
			s.bold = true
			appendInline(para, c, s)
		case *ast.Emph:
			s := style
			s.italic = true
			appendInline(para, c, s)
		default:
			appendInline(para, c, style)
		}
	}
}

// addRun merges text into the last run when the formatting matches.
func addRun(para *document.Paragraph, text string, style inlineStyle) {
	if text == "" {
		return
	}
	font := ""
	if style.code {
		font = document.MonospaceFont
	}
	if n := len(para.Runs); n > 0 {
		last := para.Runs[n-1]
		if last.Bold == style.bold && last.Italic == style.italic && last.Font == font {
			last.Text += text
			return
		}
	}
	r := para.AddRun(text)
	r.Bold = style.bold
	r.Italic = style.italic
	r.Font = font
}

func tableCells(tbl *ast.Table) ([]string, [][]string) {
	var headers []string
	var rows [][]string
	for _, section := range tbl.GetChildren() {
		for _, rowNode := range section.GetChildren() {
			row, ok := rowNode.(*ast.TableRow)
			if !ok {
				continue
			}
			var cells []string
			for _, cell := range row.GetChildren() {
				cells = append(cells, plainText(cell))
			}
			if _, isHeader := section.(*ast.TableHeader); isHeader && headers == nil {
				headers = cells
				continue
			}
			rows = append(rows, cells)
		}
	}
	return headers, rows
}

// plainText concatenates every leaf literal under node.
func plainText(node ast.Node) string {
	var b strings.Builder
	ast.WalkFunc(node, func(n ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		switch l := n.(type) {
		case *ast.Text:
			b.Write(l.Literal)
		case *ast.Code:
			b.Write(l.Literal)
		case *ast.Softbreak:
			b.WriteByte(' ')
		case *ast.Hardbreak:
			b.WriteByte('\n')
		}
		return ast.GoToNext
	})
	return strings.TrimSpace(b.String())
}
