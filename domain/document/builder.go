package document

import "strings"

// RuleWidth is the number of em dashes in a horizontal rule paragraph.
const RuleWidth = 40

// New returns an empty document.
func New(title string) *Document {
	return &Document{Title: title}
}

// AddHeading appends a heading paragraph. Levels outside 1..3 are clamped.
func (d *Document) AddHeading(text string, level int) *Paragraph {
	switch {
	case level < 1:
		level = 1
	case level > 3:
		level = 3
	}
	styles := [...]string{StyleHeading1, StyleHeading2, StyleHeading3}
	return d.AddParagraph(text, styles[level-1])
}

// AddParagraph appends a paragraph holding text as a single run. An empty
// text yields a paragraph without runs. The optional style defaults to
// Normal.
func (d *Document) AddParagraph(text string, style ...string) *Paragraph {
	p := &Paragraph{Style: StyleNormal}
	if len(style) > 0 && style[0] != "" {
		p.Style = style[0]
	}
	if text != "" {
		p.AddRun(text)
	}
	d.Blocks = append(d.Blocks, p)
	return p
}

// AddStyledParagraph appends a paragraph with a single run, optionally bold,
// and returns it so the caller can set alignment or indentation.
func (d *Document) AddStyledParagraph(text string, bold bool) *Paragraph {
	p := &Paragraph{Style: StyleNormal}
	r := p.AddRun(text)
	r.Bold = bold
	d.Blocks = append(d.Blocks, p)
	return p
}

// AddBullet appends a bulleted list item.
func (d *Document) AddBullet(text string) *Paragraph {
	return d.AddParagraph(text, StyleListBullet)
}

// AddPreformatted appends text set in the monospace font, with line breaks
// kept as is.
func (d *Document) AddPreformatted(text string) *Paragraph {
	p := d.AddParagraph("")
	r := p.AddRun(text)
	r.Font = MonospaceFont
	return p
}

// AddBlank appends an empty paragraph.
func (d *Document) AddBlank() *Paragraph {
	return d.AddParagraph("")
}

// AddRule appends a paragraph of em dashes used as a visual separator.
func (d *Document) AddRule() *Paragraph {
	return d.AddParagraph(strings.Repeat("—", RuleWidth))
}

// AddTable appends a table with one header row followed by one row per
// input row. The column count is len(headers): short rows leave trailing
// cells empty and excess cells are dropped.
func (d *Document) AddTable(headers []string, rows [][]string) *Table {
	t := &Table{
		Style:   StyleTableGrid,
		Headers: append([]string(nil), headers...),
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, row := range rows {
		cells := make([]string, len(headers))
		for j := range cells {
			if j < len(row) {
				cells[j] = row[j]
			}
		}
		t.Rows = append(t.Rows, cells)
	}
	d.Blocks = append(d.Blocks, t)
	return t
}
