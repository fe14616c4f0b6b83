package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"scopereport/domain/core"
	"scopereport/domain/document"
	"scopereport/internal/scope"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type docxTable struct {
	rows     int
	cols     []int
	boldHead bool
}

type docxOutline struct {
	parts    []string
	headings []string
	tables   []docxTable
	texts    []string
	core     string
}

// readDocx unpacks a rendered package and walks word/document.xml.
func readDocx(t *testing.T, data []byte) docxOutline {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var out docxOutline
	files := map[string][]byte{}
	for _, f := range zr.File {
		out.parts = append(out.parts, f.Name)
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		files[f.Name] = b
	}
	out.core = string(files["docProps/core.xml"])

	body, ok := files["word/document.xml"]
	require.True(t, ok, "missing word/document.xml")

	dec := xml.NewDecoder(bytes.NewReader(body))
	var (
		style     string
		text      strings.Builder
		tableNest int
		current   *docxTable
		cells     int
		rowBold   bool
		inHeadRow bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "p":
				style = ""
				text.Reset()
			case "pStyle":
				for _, a := range el.Attr {
					if a.Name.Local == "val" {
						style = a.Value
					}
				}
			case "tbl":
				tableNest++
				out.tables = append(out.tables, docxTable{})
				current = &out.tables[len(out.tables)-1]
			case "tr":
				cells = 0
				inHeadRow = current.rows == 0
				rowBold = false
			case "tc":
				cells++
			case "b":
				if inHeadRow {
					rowBold = true
				}
			}
		case xml.CharData:
			text.Write(el)
		case xml.EndElement:
			switch el.Name.Local {
			case "p":
				if tableNest == 0 {
					out.texts = append(out.texts, text.String())
					if strings.HasPrefix(style, "Heading") {
						out.headings = append(out.headings, text.String())
					}
				}
			case "tr":
				current.rows++
				current.cols = append(current.cols, cells)
				if inHeadRow {
					current.boldHead = rowBold
				}
				inHeadRow = false
			case "tbl":
				tableNest--
			}
		}
	}
	return out
}

func renderDocx(t *testing.T, doc *document.Document) []byte {
	t.Helper()
	data, err := renderBytes(NewDOCXRenderer(), doc)
	require.NoError(t, err)
	return data
}

func TestDOCXScopeReportHeadings(t *testing.T) {
	outline := readDocx(t, renderDocx(t, scope.Build()))

	assert.Equal(t, []string{
		"What We Need to Build",
		"End-to-End Flow",
		"Assumptions",
		"Out of Scope (Phase 1)",
		"Client Inputs Required at Kick-off",
		"Deliverables",
	}, outline.headings)
}

func TestDOCXScopeReportTables(t *testing.T) {
	outline := readDocx(t, renderDocx(t, scope.Build()))
	require.Len(t, outline.tables, 2)

	build := outline.tables[0]
	assert.Equal(t, 7, build.rows)
	assert.Equal(t, []int{2, 2, 2, 2, 2, 2, 2}, build.cols)
	assert.True(t, build.boldHead)

	inputs := outline.tables[1]
	assert.Equal(t, 4, inputs.rows)
	assert.Equal(t, []int{2, 2, 2, 2}, inputs.cols)
	assert.True(t, inputs.boldHead)
}

func TestDOCXIsByteStable(t *testing.T) {
	first := renderDocx(t, scope.Build())
	second := renderDocx(t, scope.Build())

	assert.Equal(t, core.NewHash(first), core.NewHash(second))
	assert.True(t, bytes.Equal(first, second))
}

func TestDOCXPackageParts(t *testing.T) {
	outline := readDocx(t, renderDocx(t, scope.Build()))

	assert.Equal(t, []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"docProps/core.xml",
		"docProps/app.xml",
		"word/document.xml",
		"word/styles.xml",
		"word/numbering.xml",
		"word/_rels/document.xml.rels",
	}, outline.parts)
	assert.Contains(t, outline.core, "<dc:title>"+scope.Title+"</dc:title>")
	assert.Contains(t, outline.core, "urn:uuid:"+core.DocumentID(scope.Title).String())
}

func TestDOCXPreservesLineBreaksAndEscapes(t *testing.T) {
	doc := document.New("esc")
	doc.AddPreformatted("a < b\n  c & d")

	data := renderDocx(t, doc)
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	var body string
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			require.NoError(t, err)
			b, err := io.ReadAll(rc)
			require.NoError(t, err)
			rc.Close()
			body = string(b)
		}
	}

	assert.Contains(t, body, "a &lt; b")
	assert.Contains(t, body, "<w:br></w:br>")
	assert.Contains(t, body, `<w:t xml:space="preserve">  c &amp; d</w:t>`)
	assert.Contains(t, body, `<w:rFonts w:ascii="Consolas" w:hAnsi="Consolas" w:cs="Consolas"></w:rFonts>`)
}

func TestDOCXParagraphFormatting(t *testing.T) {
	doc := document.New("fmt")
	p := doc.AddStyledParagraph("centered", true)
	p.Alignment = document.AlignCenter
	p.Format.LeftIndent = document.Inches(0.25)
	p.Format.SpaceAfter = document.Pt(6)
	p.Runs[0].Size = document.Pt(16)

	wp := buildParagraph(p)
	require.NotNil(t, wp.Props)
	assert.Equal(t, "center", wp.Props.Justify.Val)
	assert.Equal(t, 360, wp.Props.Indent.Left)
	assert.Equal(t, 120, wp.Props.Spacing.After)
	assert.Nil(t, wp.Props.Style)

	require.Len(t, wp.Runs, 1)
	assert.NotNil(t, wp.Runs[0].Props.Bold)
	assert.Equal(t, "32", wp.Runs[0].Props.Size.Val)
}

func TestDOCXEmptyTableCellKeepsParagraph(t *testing.T) {
	doc := document.New("cells")
	doc.AddTable([]string{"a", "b"}, [][]string{{"only"}})

	tbl := buildTable(doc.Tables()[0])
	require.Len(t, tbl.Rows, 2)
	require.Len(t, tbl.Rows[1].Cells, 2)
	assert.Len(t, tbl.Rows[1].Cells[1].Paragraphs, 1)
	assert.Empty(t, tbl.Rows[1].Cells[1].Paragraphs[0].Runs)
}

func TestRunContentSplitsTabsAndBreaks(t *testing.T) {
	content := runContent("a\tb\nc")

	require.Len(t, content, 5)
	assert.Equal(t, wText{Space: "preserve", Text: "a"}, content[0])
	assert.Equal(t, wTab{}, content[1])
	assert.Equal(t, wText{Space: "preserve", Text: "b"}, content[2])
	assert.Equal(t, wBreak{}, content[3])
	assert.Equal(t, wText{Space: "preserve", Text: "c"}, content[4])
}
