package render

import (
	"bufio"
	"io"
	"strings"

	"scopereport/domain/document"
	"scopereport/internal/errors"
)

// inlineEscaper neutralises every character gomarkdown gives inline
// meaning to, raw html included.
var inlineEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"&", `\&`,
	"|", `\|`,
	"~", `\~`,
	"$", `\$`,
	"^", `\^`,
	"{", `\{`,
	"}", `\}`,
)

// bulletStep is the indent of one list level in the docx numbering.
var bulletStep = document.Inches(0.5)

// MarkdownRenderer writes CommonMark with pipe tables.
type MarkdownRenderer struct {
	// cellBreak replaces line breaks inside table cells.
	cellBreak string
}

// NewMarkdownRenderer creates a markdown renderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{cellBreak: "<br>"}
}

// Format implements ports.Renderer.
func (r *MarkdownRenderer) Format() document.Format {
	return document.FormatMarkdown
}

// Render writes doc as markdown. Empty paragraphs collapse; consecutive
// bullets form one list.
func (r *MarkdownRenderer) Render(w io.Writer, doc *document.Document) error {
	bw := bufio.NewWriter(w)
	prevBullet := false
	first := true

	emit := func(chunk string, bullet bool) {
		if !first {
			if bullet && prevBullet {
				bw.WriteString("\n")
			} else {
				bw.WriteString("\n\n")
			}
		}
		bw.WriteString(chunk)
		first = false
		prevBullet = bullet
	}

	for _, b := range doc.Blocks {
		switch v := b.(type) {
		case *document.Paragraph:
			if len(v.Runs) == 0 {
				continue
			}
			switch {
			case v.IsHeading():
				emit(strings.Repeat("#", document.HeadingLevel(v.Style))+" "+inlineMarkdown(v), false)
			case v.Style == document.StyleListBullet:
				emit(bulletPrefix(v)+inlineMarkdown(v), true)
			case v.IsPreformatted():
				emit(fenced(strings.TrimRight(v.Text(), "\n")), false)
			case v.IsRule():
				emit("---", false)
			default:
				emit(inlineMarkdown(v), false)
			}
		case *document.Table:
			emit(r.tableMarkdown(v), false)
		}
	}
	if !first {
		bw.WriteString("\n")
	}
	if err := bw.Flush(); err != nil {
		return errors.RenderError("markdown", err)
	}
	return nil
}

func inlineMarkdown(p *document.Paragraph) string {
	var b strings.Builder
	for _, r := range p.Runs {
		text := inlineEscaper.Replace(r.Text)
		text = strings.ReplaceAll(text, "\n", "  \n")
		marker := ""
		switch {
		case r.Bold && r.Italic:
			marker = "***"
		case r.Bold:
			marker = "**"
		case r.Italic:
			marker = "*"
		}
		if marker == "" || strings.TrimSpace(text) == "" {
			b.WriteString(text)
			continue
		}
		// Emphasis markers must hug non-space characters.
		trimmed := strings.TrimSpace(text)
		lead := text[:strings.Index(text, trimmed)]
		trail := text[len(lead)+len(trimmed):]
		b.WriteString(lead + marker + trimmed + marker + trail)
	}
	return escapeLineStarts(b.String())
}

// escapeLineStarts stops a line from opening a block: headings, quotes,
// list items, setext underlines, definitions and indented code.
func escapeLineStarts(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		line = strings.TrimLeft(line, " \t")
		if line == "" {
			lines[i] = line
			continue
		}
		switch line[0] {
		case '#', '-', '+', '=', ':':
			line = `\` + line
		default:
			if n := leadingDigits(line); n > 0 && n < len(line) && (line[n] == '.' || line[n] == ')') {
				line = line[:n] + `\` + line[n:]
			}
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func leadingDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}

func bulletPrefix(p *document.Paragraph) string {
	depth := 0
	if p.Format.LeftIndent > bulletStep {
		depth = int(p.Format.LeftIndent/bulletStep) - 1
	}
	return strings.Repeat("  ", depth) + "- "
}

// fenced wraps text in a backtick fence longer than any run inside it.
func fenced(text string) string {
	longest, run := 0, 0
	for _, c := range text {
		if c == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	fence := strings.Repeat("`", max(3, longest+1))
	return fence + "\n" + text + "\n" + fence
}

func (r *MarkdownRenderer) tableMarkdown(t *document.Table) string {
	var b strings.Builder
	writeRow := func(cells []string) {
		b.WriteString("|")
		for _, c := range cells {
			cell := strings.ReplaceAll(inlineEscaper.Replace(c), "\n", r.cellBreak)
			b.WriteString(" " + cell + " |")
		}
	}
	writeRow(t.Headers)
	b.WriteString("\n|")
	for range t.Headers {
		b.WriteString(" --- |")
	}
	for _, cells := range t.Rows {
		b.WriteString("\n")
		writeRow(cells)
	}
	return b.String()
}
