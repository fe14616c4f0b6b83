package source

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"scopereport/domain/document"
	"scopereport/internal/errors"
)

// Definition is the yaml shape of a report.
//
//	title: Quarterly Scope
//	creator: Delivery Team
//	blocks:
//	  - heading: Scope
//	  - table:
//	      headers: [Area, Scope]
//	      rows: [[Payments, BillDesk]]
//	  - bullets: [one, two]
//	  - text: Done.
//	    bold: true
//	    align: center
type Definition struct {
	Title   string     `yaml:"title"`
	Creator string     `yaml:"creator"`
	Blocks  []BlockDef `yaml:"blocks"`
}

// BlockDef describes one block. Exactly one of Heading, Text, Bullets,
// Code, Table, Blank or Rule must be set.
type BlockDef struct {
	Heading string    `yaml:"heading,omitempty"`
	Level   int       `yaml:"level,omitempty"`
	Text    string    `yaml:"text,omitempty"`
	Bold    bool      `yaml:"bold,omitempty"`
	Italic  bool      `yaml:"italic,omitempty"`
	Size    float64   `yaml:"size,omitempty"`
	Align   string    `yaml:"align,omitempty"`
	Indent  float64   `yaml:"indent,omitempty"`
	Bullets []string  `yaml:"bullets,omitempty"`
	Code    string    `yaml:"code,omitempty"`
	Table   *TableDef `yaml:"table,omitempty"`
	Blank   bool      `yaml:"blank,omitempty"`
	Rule    bool      `yaml:"rule,omitempty"`
}

// TableDef describes a table block.
type TableDef struct {
	Headers []string   `yaml:"headers"`
	Rows    [][]string `yaml:"rows"`
}

// ParseYAML decodes a Definition and builds the document.
func ParseYAML(data []byte) (*document.Document, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err)
	}
	return def.Build()
}

// Build converts the definition into a document.
func (d Definition) Build() (*document.Document, error) {
	doc := document.New(d.Title)
	doc.Creator = d.Creator
	for i, b := range d.Blocks {
		if err := b.apply(doc); err != nil {
			return nil, errors.Wrapf(err, "block %d", i+1)
		}
	}
	return doc, nil
}

func (b BlockDef) kinds() []string {
	var kinds []string
	if b.Heading != "" {
		kinds = append(kinds, "heading")
	}
	if b.Text != "" {
		kinds = append(kinds, "text")
	}
	if len(b.Bullets) > 0 {
		kinds = append(kinds, "bullets")
	}
	if b.Code != "" {
		kinds = append(kinds, "code")
	}
	if b.Table != nil {
		kinds = append(kinds, "table")
	}
	if b.Blank {
		kinds = append(kinds, "blank")
	}
	if b.Rule {
		kinds = append(kinds, "rule")
	}
	return kinds
}

func (b BlockDef) apply(doc *document.Document) error {
	kinds := b.kinds()
	if len(kinds) != 1 {
		return errors.InvalidInput(fmt.Sprintf("expected exactly one block kind, got %d (%s)", len(kinds), strings.Join(kinds, ", ")))
	}

	switch kinds[0] {
	case "heading":
		level := b.Level
		if level == 0 {
			level = 1
		}
		doc.AddHeading(b.Heading, level)
	case "text":
		p := doc.AddStyledParagraph(b.Text, b.Bold)
		align, err := parseAlign(b.Align)
		if err != nil {
			return err
		}
		p.Alignment = align
		p.Format.LeftIndent = document.Inches(b.Indent)
		r := p.Runs[0]
		r.Italic = b.Italic
		r.Size = document.Pt(b.Size)
	case "bullets":
		for _, item := range b.Bullets {
			doc.AddBullet(item)
		}
	case "code":
		p := doc.AddPreformatted(strings.TrimRight(b.Code, "\n"))
		p.Format.LeftIndent = document.Inches(b.Indent)
		p.Runs[0].Size = document.Pt(b.Size)
	case "table":
		if len(b.Table.Headers) == 0 {
			return errors.InvalidInput("table needs at least one header")
		}
		doc.AddTable(b.Table.Headers, b.Table.Rows)
	case "blank":
		doc.AddBlank()
	case "rule":
		doc.AddRule()
	}
	return nil
}

func parseAlign(s string) (document.Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "left":
		return document.AlignLeft, nil
	case "center", "centre":
		return document.AlignCenter, nil
	case "right":
		return document.AlignRight, nil
	case "justify", "both":
		return document.AlignJustify, nil
	}
	return "", errors.InvalidInput(fmt.Sprintf("unknown alignment %q", s))
}
