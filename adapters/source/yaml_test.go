package source

import (
	"os"
	"path/filepath"
	"testing"

	"scopereport/domain/document"
	"scopereport/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
title: Kick-off Checklist
creator: Delivery
blocks:
  - text: Kick-off Checklist
    bold: true
    size: 16
    align: center
  - blank: true
  - heading: Client Inputs Required at Kick-off
  - table:
      headers: [From, Items]
      rows:
        - [BillDesk, Merchant ID]
        - [Zoho]
        - [IT, Server env, extra]
  - heading: Flow
    level: 2
  - code: |
      Cart → Checkout
        → Payment
    indent: 0.25
    size: 10
  - bullets: [one, two]
  - rule: true
`

func TestParseYAML(t *testing.T) {
	doc, err := ParseYAML([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "Kick-off Checklist", doc.Title)
	assert.Equal(t, "Delivery", doc.Creator)
	assert.Equal(t, []string{"Client Inputs Required at Kick-off", "Flow"}, doc.Headings())

	title := doc.Blocks[0].(*document.Paragraph)
	assert.Equal(t, document.AlignCenter, title.Alignment)
	assert.True(t, title.Runs[0].Bold)
	assert.Equal(t, document.Pt(16), title.Runs[0].Size)

	tbl := doc.TableUnder("Client Inputs Required at Kick-off")
	require.NotNil(t, tbl)
	assert.Equal(t, [][]string{
		{"BillDesk", "Merchant ID"},
		{"Zoho", ""},
		{"IT", "Server env"},
	}, tbl.Rows)

	flow := doc.Blocks[5].(*document.Paragraph)
	assert.True(t, flow.IsPreformatted())
	assert.Equal(t, "Cart → Checkout\n  → Payment", flow.Text())
	assert.Equal(t, document.Inches(0.25), flow.Format.LeftIndent)
	assert.Equal(t, document.StyleHeading2, doc.Blocks[4].(*document.Paragraph).Style)
	assert.True(t, doc.Blocks[len(doc.Blocks)-1].(*document.Paragraph).IsRule())
}

func TestParseYAMLRejectsAmbiguousBlock(t *testing.T) {
	_, err := ParseYAML([]byte("blocks:\n  - heading: A\n    text: B\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeInvalidInput))
	assert.Contains(t, err.Error(), "block 1")
}

func TestParseYAMLRejectsEmptyBlock(t *testing.T) {
	_, err := ParseYAML([]byte("blocks:\n  - level: 2\n"))
	require.Error(t, err)
}

func TestParseYAMLRejectsBadAlignment(t *testing.T) {
	_, err := ParseYAML([]byte("blocks:\n  - text: x\n    align: diagonal\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown alignment "diagonal"`)
}

func TestParseYAMLSyntaxError(t *testing.T) {
	_, err := ParseYAML([]byte("blocks: [unclosed"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()

	mdPath := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(mdPath, []byte("Just text\n"), 0o644))
	doc, err := Load(mdPath)
	require.NoError(t, err)
	assert.Equal(t, "notes", doc.Title)

	yamlPath := filepath.Join(dir, "report.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(sampleYAML), 0o644))
	doc, err = Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "Kick-off Checklist", doc.Title)

	txtPath := filepath.Join(dir, "report.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("x"), 0o644))
	_, err = Load(txtPath)
	assert.True(t, errors.Is(err, errors.CodeInvalidInput))

	_, err = Load(filepath.Join(dir, "missing.md"))
	assert.True(t, errors.Is(err, errors.CodeInvalidInput))
}
