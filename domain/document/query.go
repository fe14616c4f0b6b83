package document

import "strings"

// Headings returns the text of every heading paragraph in order.
func (d *Document) Headings() []string {
	var out []string
	for _, b := range d.Blocks {
		if p, ok := b.(*Paragraph); ok && p.IsHeading() {
			out = append(out, p.Text())
		}
	}
	return out
}

// Tables returns every table in order.
func (d *Document) Tables() []*Table {
	var out []*Table
	for _, b := range d.Blocks {
		if t, ok := b.(*Table); ok {
			out = append(out, t)
		}
	}
	return out
}

// TableUnder returns the first table that follows the named heading before
// the next heading, or nil.
func (d *Document) TableUnder(heading string) *Table {
	inSection := false
	for _, b := range d.Blocks {
		switch v := b.(type) {
		case *Paragraph:
			if v.IsHeading() {
				if inSection {
					return nil
				}
				inSection = v.Text() == heading
			}
		case *Table:
			if inSection {
				return v
			}
		}
	}
	return nil
}

// Sections pairs every table with the heading it sits under. Tables before
// the first heading get the document title.
func (d *Document) Sections() []Section {
	var out []Section
	current := d.Title
	for _, b := range d.Blocks {
		switch v := b.(type) {
		case *Paragraph:
			if v.IsHeading() {
				current = v.Text()
			}
		case *Table:
			out = append(out, Section{Heading: current, Table: v})
		}
	}
	return out
}

// Section is a table and its heading.
type Section struct {
	Heading string
	Table   *Table
}

// PlainText flattens the document into lines: one per paragraph, and one
// per table row with cells separated by tabs.
func (d *Document) PlainText() string {
	var b strings.Builder
	for _, blk := range d.Blocks {
		switch v := blk.(type) {
		case *Paragraph:
			b.WriteString(v.Text())
			b.WriteByte('\n')
		case *Table:
			b.WriteString(strings.Join(v.Headers, "\t"))
			b.WriteByte('\n')
			for _, row := range v.Rows {
				b.WriteString(strings.Join(row, "\t"))
				b.WriteByte('\n')
			}
		}
	}
	return b.String()
}
