// Package document holds the in-memory model of a report: an ordered list of
// paragraphs and tables that renderers serialise to docx, xlsx, markdown or
// html.
package document

import "strings"

// Paragraph style names. They match the style IDs written to styles.xml.
const (
	StyleNormal     = "Normal"
	StyleHeading1   = "Heading1"
	StyleHeading2   = "Heading2"
	StyleHeading3   = "Heading3"
	StyleListBullet = "ListBullet"
	StyleTableGrid  = "TableGrid"
)

// MonospaceFont is the font used for preformatted blocks.
const MonospaceFont = "Consolas"

// Alignment is a paragraph's horizontal justification.
type Alignment string

const (
	AlignLeft    Alignment = ""
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "both"
)

// Block is a top-level body element: *Paragraph or *Table.
type Block interface {
	block()
}

// Document is the report being assembled.
type Document struct {
	Title   string
	Creator string
	Blocks  []Block
}

// ParagraphFormat carries indentation and spacing. Zero means unset.
type ParagraphFormat struct {
	LeftIndent Length
	SpaceAfter Length
}

// Paragraph is a run of styled text.
type Paragraph struct {
	Style     string
	Alignment Alignment
	Format    ParagraphFormat
	Runs      []*Run
}

func (*Paragraph) block() {}

// Run is a span of text sharing one character format. A newline in Text is
// a line break, a tab is a tab stop.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	Size   Length
	Font   string
}

// Table is a grid with a header row. Every row has exactly len(Headers)
// cells.
type Table struct {
	Style   string
	Headers []string
	Rows    [][]string
}

func (*Table) block() {}

// Columns returns the column count.
func (t *Table) Columns() int {
	return len(t.Headers)
}

// AddRun appends a run with the given text and returns it for formatting.
func (p *Paragraph) AddRun(text string) *Run {
	r := &Run{Text: text}
	p.Runs = append(p.Runs, r)
	return r
}

// Text concatenates the paragraph's runs.
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// IsHeading reports whether the paragraph uses a heading style.
func (p *Paragraph) IsHeading() bool {
	return HeadingLevel(p.Style) > 0
}

// IsPreformatted reports whether every run is set in the monospace font.
func (p *Paragraph) IsPreformatted() bool {
	if len(p.Runs) == 0 {
		return false
	}
	for _, r := range p.Runs {
		if r.Font != MonospaceFont {
			return false
		}
	}
	return true
}

// HeadingLevel returns 1..3 for heading styles and 0 otherwise.
func HeadingLevel(style string) int {
	switch style {
	case StyleHeading1:
		return 1
	case StyleHeading2:
		return 2
	case StyleHeading3:
		return 3
	}
	return 0
}

// IsRule reports whether the paragraph is a separator made only of em dashes.
func (p *Paragraph) IsRule() bool {
	text := p.Text()
	return text != "" && strings.Trim(text, "—") == ""
}
