package render

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"strconv"
	"strings"
	"time"

	"scopereport/domain/core"
	"scopereport/domain/document"
	"scopereport/internal/errors"
)

const (
	nsWordML   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsRelation = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	// Letter page with 1in top/bottom and 1.25in side margins.
	pageWidthTwips  = 12240
	pageHeightTwips = 15840
	marginTopTwips  = 1440
	marginSideTwips = 1800
	textWidthTwips  = pageWidthTwips - 2*marginSideTwips
)

// zipEpoch is stamped on every part so output bytes depend only on content.
var zipEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// DOCXRenderer writes a WordprocessingML package.
type DOCXRenderer struct{}

// NewDOCXRenderer creates a docx renderer.
func NewDOCXRenderer() *DOCXRenderer {
	return &DOCXRenderer{}
}

// Format implements ports.Renderer.
func (r *DOCXRenderer) Format() document.Format {
	return document.FormatDOCX
}

type docxPart struct {
	name string
	data []byte
}

// Render writes doc as a .docx container. Part order and timestamps are
// fixed, so equal documents produce equal bytes.
func (r *DOCXRenderer) Render(w io.Writer, doc *document.Document) error {
	body, err := marshalPart(buildDocument(doc))
	if err != nil {
		return errors.RenderError("document.xml", err)
	}
	props, err := marshalPart(buildCoreProperties(doc))
	if err != nil {
		return errors.RenderError("core.xml", err)
	}

	parts := []docxPart{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(rootRelsXML)},
		{"docProps/core.xml", props},
		{"docProps/app.xml", []byte(appXML)},
		{"word/document.xml", body},
		{"word/styles.xml", []byte(stylesXML)},
		{"word/numbering.xml", []byte(numberingXML)},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
	}

	zw := zip.NewWriter(w)
	for _, p := range parts {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: zipEpoch,
		})
		if err != nil {
			return errors.RenderError(p.name, err)
		}
		if _, err := fw.Write(p.data); err != nil {
			return errors.RenderError(p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return errors.RenderError("docx", err)
	}
	return nil
}

func marshalPart(v interface{}) ([]byte, error) {
	data, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), data...), nil
}

// WordprocessingML element types. Only what the document model needs.

type wDocument struct {
	XMLName xml.Name `xml:"w:document"`
	NSW     string   `xml:"xmlns:w,attr"`
	NSR     string   `xml:"xmlns:r,attr"`
	Body    wBody    `xml:"w:body"`
}

type wBody struct {
	Blocks []interface{}
	SectPr wSectPr `xml:"w:sectPr"`
}

type wVal struct {
	Val string `xml:"w:val,attr"`
}

type wOn struct{}

type wP struct {
	XMLName xml.Name `xml:"w:p"`
	Props   *wPPr    `xml:"w:pPr,omitempty"`
	Runs    []wR
}

type wPPr struct {
	Style   *wVal     `xml:"w:pStyle,omitempty"`
	Spacing *wSpacing `xml:"w:spacing,omitempty"`
	Indent  *wIndent  `xml:"w:ind,omitempty"`
	Justify *wVal     `xml:"w:jc,omitempty"`
}

type wSpacing struct {
	After int `xml:"w:after,attr"`
}

type wIndent struct {
	Left int `xml:"w:left,attr"`
}

type wR struct {
	XMLName xml.Name `xml:"w:r"`
	Props   *wRPr    `xml:"w:rPr,omitempty"`
	Content []interface{}
}

type wRPr struct {
	Fonts  *wFonts `xml:"w:rFonts,omitempty"`
	Bold   *wOn    `xml:"w:b,omitempty"`
	Italic *wOn    `xml:"w:i,omitempty"`
	Size   *wVal   `xml:"w:sz,omitempty"`
	SizeCs *wVal   `xml:"w:szCs,omitempty"`
}

type wFonts struct {
	ASCII string `xml:"w:ascii,attr"`
	HAnsi string `xml:"w:hAnsi,attr"`
	CS    string `xml:"w:cs,attr"`
}

type wText struct {
	XMLName xml.Name `xml:"w:t"`
	Space   string   `xml:"xml:space,attr,omitempty"`
	Text    string   `xml:",chardata"`
}

type wBreak struct {
	XMLName xml.Name `xml:"w:br"`
}

type wTab struct {
	XMLName xml.Name `xml:"w:tab"`
}

type wTbl struct {
	XMLName xml.Name `xml:"w:tbl"`
	Props   wTblPr   `xml:"w:tblPr"`
	Grid    wTblGrid `xml:"w:tblGrid"`
	Rows    []wTr
}

type wTblPr struct {
	Style wVal   `xml:"w:tblStyle"`
	Width wWidth `xml:"w:tblW"`
	Look  wVal   `xml:"w:tblLook"`
}

type wWidth struct {
	W    int    `xml:"w:w,attr"`
	Type string `xml:"w:type,attr"`
}

type wTblGrid struct {
	Cols []wGridCol `xml:"w:gridCol"`
}

type wGridCol struct {
	W int `xml:"w:w,attr"`
}

type wTr struct {
	XMLName xml.Name `xml:"w:tr"`
	Cells   []wTc
}

type wTc struct {
	XMLName    xml.Name `xml:"w:tc"`
	Props      wTcPr    `xml:"w:tcPr"`
	Paragraphs []wP
}

type wTcPr struct {
	Width wWidth `xml:"w:tcW"`
}

type wSectPr struct {
	PageSize   wPageSize   `xml:"w:pgSz"`
	PageMargin wPageMargin `xml:"w:pgMar"`
}

type wPageSize struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type wPageMargin struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
	Gutter int `xml:"w:gutter,attr"`
}

func buildDocument(doc *document.Document) wDocument {
	body := wBody{
		Blocks: make([]interface{}, 0, len(doc.Blocks)),
		SectPr: wSectPr{
			PageSize: wPageSize{W: pageWidthTwips, H: pageHeightTwips},
			PageMargin: wPageMargin{
				Top: marginTopTwips, Right: marginSideTwips,
				Bottom: marginTopTwips, Left: marginSideTwips,
				Header: 720, Footer: 720,
			},
		},
	}
	for _, b := range doc.Blocks {
		switch v := b.(type) {
		case *document.Paragraph:
			body.Blocks = append(body.Blocks, buildParagraph(v))
		case *document.Table:
			body.Blocks = append(body.Blocks, buildTable(v))
		}
	}
	return wDocument{NSW: nsWordML, NSR: nsRelation, Body: body}
}

func buildParagraph(p *document.Paragraph) wP {
	out := wP{}
	props := wPPr{}
	set := false
	if p.Style != "" && p.Style != document.StyleNormal {
		props.Style = &wVal{Val: p.Style}
		set = true
	}
	if p.Format.SpaceAfter > 0 {
		props.Spacing = &wSpacing{After: p.Format.SpaceAfter.Twips()}
		set = true
	}
	if p.Format.LeftIndent > 0 {
		props.Indent = &wIndent{Left: p.Format.LeftIndent.Twips()}
		set = true
	}
	if p.Alignment != document.AlignLeft {
		props.Justify = &wVal{Val: string(p.Alignment)}
		set = true
	}
	if set {
		out.Props = &props
	}
	for _, r := range p.Runs {
		out.Runs = append(out.Runs, buildRun(r))
	}
	return out
}

func buildRun(r *document.Run) wR {
	out := wR{Content: runContent(r.Text)}
	props := wRPr{}
	set := false
	if r.Font != "" {
		props.Fonts = &wFonts{ASCII: r.Font, HAnsi: r.Font, CS: r.Font}
		set = true
	}
	if r.Bold {
		props.Bold = &wOn{}
		set = true
	}
	if r.Italic {
		props.Italic = &wOn{}
		set = true
	}
	if r.Size > 0 {
		hp := wVal{Val: strconv.Itoa(r.Size.HalfPoints())}
		props.Size = &hp
		props.SizeCs = &hp
		set = true
	}
	if set {
		out.Props = &props
	}
	return out
}

// runContent splits text on line breaks and tabs into w:t, w:br and w:tab
// elements.
func runContent(text string) []interface{} {
	var out []interface{}
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			out = append(out, wBreak{})
		}
		for j, seg := range strings.Split(line, "\t") {
			if j > 0 {
				out = append(out, wTab{})
			}
			if seg != "" {
				out = append(out, wText{Space: "preserve", Text: seg})
			}
		}
	}
	return out
}

func buildTable(t *document.Table) wTbl {
	cols := t.Columns()
	colWidth := 0
	if cols > 0 {
		colWidth = textWidthTwips / cols
	}
	out := wTbl{
		Props: wTblPr{
			Style: wVal{Val: t.Style},
			Width: wWidth{W: 0, Type: "auto"},
			Look:  wVal{Val: "04A0"},
		},
	}
	for i := 0; i < cols; i++ {
		out.Grid.Cols = append(out.Grid.Cols, wGridCol{W: colWidth})
	}
	out.Rows = append(out.Rows, buildRow(t.Headers, colWidth, true))
	for _, row := range t.Rows {
		out.Rows = append(out.Rows, buildRow(row, colWidth, false))
	}
	return out
}

func buildRow(cells []string, width int, header bool) wTr {
	tr := wTr{}
	for _, text := range cells {
		p := wP{}
		if text != "" {
			p.Runs = []wR{buildRun(&document.Run{Text: text, Bold: header})}
		}
		tr.Cells = append(tr.Cells, wTc{
			Props:      wTcPr{Width: wWidth{W: width, Type: "dxa"}},
			Paragraphs: []wP{p},
		})
	}
	return tr
}

type coreProperties struct {
	XMLName    xml.Name `xml:"cp:coreProperties"`
	NSCP       string   `xml:"xmlns:cp,attr"`
	NSDC       string   `xml:"xmlns:dc,attr"`
	NSDCTerms  string   `xml:"xmlns:dcterms,attr"`
	Title      string   `xml:"dc:title"`
	Creator    string   `xml:"dc:creator,omitempty"`
	Identifier string   `xml:"dc:identifier"`
}

func buildCoreProperties(doc *document.Document) coreProperties {
	return coreProperties{
		NSCP:       "http://schemas.openxmlformats.org/package/2006/metadata/core-properties",
		NSDC:       "http://purl.org/dc/elements/1.1/",
		NSDCTerms:  "http://purl.org/dc/terms/",
		Title:      doc.Title,
		Creator:    doc.Creator,
		Identifier: "urn:uuid:" + core.DocumentID(doc.Title).String(),
	}
}
