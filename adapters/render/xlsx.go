package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"scopereport/domain/document"
	"scopereport/internal/errors"
)

const (
	overviewSheet   = "Overview"
	maxSheetNameLen = 31
	minColumnWidth  = 10
	maxColumnWidth  = 80
)

var sheetNameCleaner = strings.NewReplacer(
	"[", "(", "]", ")", ":", "-", "*", "-", "?", "", "/", "-", `\`, "-",
)

// XLSXRenderer writes an Overview sheet and one sheet per table.
type XLSXRenderer struct{}

// NewXLSXRenderer creates an xlsx renderer.
func NewXLSXRenderer() *XLSXRenderer {
	return &XLSXRenderer{}
}

// Format implements ports.Renderer.
func (r *XLSXRenderer) Format() document.Format {
	return document.FormatXLSX
}

// Render writes doc as a workbook.
func (r *XLSXRenderer) Render(w io.Writer, doc *document.Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", overviewSheet); err != nil {
		return errors.RenderError("xlsx", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.RenderError("xlsx", err)
	}
	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return errors.RenderError("xlsx", err)
	}

	used := map[string]bool{overviewSheet: true}
	sheetFor := make(map[*document.Table]string)
	for _, s := range doc.Sections() {
		name := uniqueSheetName(s.Heading, used)
		if _, err := f.NewSheet(name); err != nil {
			return errors.RenderError("xlsx", err)
		}
		if err := writeTableSheet(f, name, s.Table, boldStyle, wrapStyle); err != nil {
			return errors.RenderError("xlsx", err)
		}
		sheetFor[s.Table] = name
	}

	if err := writeOverview(f, doc, sheetFor, boldStyle); err != nil {
		return errors.RenderError("xlsx", err)
	}
	f.SetActiveSheet(0)

	if _, err := f.WriteTo(w); err != nil {
		return errors.RenderError("xlsx", err)
	}
	return nil
}

// writeOverview lists the title and each heading with the sheet holding
// its table, if any.
func writeOverview(f *excelize.File, doc *document.Document, sheetFor map[*document.Table]string, boldStyle int) error {
	if err := f.SetCellValue(overviewSheet, "A1", doc.Title); err != nil {
		return err
	}
	if err := f.SetCellStyle(overviewSheet, "A1", "A1", boldStyle); err != nil {
		return err
	}
	if err := f.SetCellValue(overviewSheet, "A3", "Section"); err != nil {
		return err
	}
	if err := f.SetCellValue(overviewSheet, "B3", "Sheet"); err != nil {
		return err
	}
	if err := f.SetCellStyle(overviewSheet, "A3", "B3", boldStyle); err != nil {
		return err
	}

	row := 4
	var current int
	for _, b := range doc.Blocks {
		switch v := b.(type) {
		case *document.Paragraph:
			if !v.IsHeading() {
				continue
			}
			current = row
			if err := f.SetCellValue(overviewSheet, fmt.Sprintf("A%d", row), v.Text()); err != nil {
				return err
			}
			row++
		case *document.Table:
			if current == 0 {
				continue
			}
			if err := f.SetCellValue(overviewSheet, fmt.Sprintf("B%d", current), sheetFor[v]); err != nil {
				return err
			}
		}
	}
	return f.SetColWidth(overviewSheet, "A", "B", 40)
}

func writeTableSheet(f *excelize.File, sheet string, t *document.Table, boldStyle, wrapStyle int) error {
	widths := make([]int, t.Columns())
	record := func(col int, text string) {
		if n := utf8.RuneCountInString(text); n > widths[col] {
			widths[col] = n
		}
	}

	for c, h := range t.Headers {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		record(c, h)
	}
	if t.Columns() > 0 {
		last, err := excelize.CoordinatesToCellName(t.Columns(), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, boldStyle); err != nil {
			return err
		}
	}

	for r, row := range t.Rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, cell, cell, wrapStyle); err != nil {
				return err
			}
			record(c, v)
		}
	}

	for c, width := range widths {
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, float64(clamp(width+2, minColumnWidth, maxColumnWidth))); err != nil {
			return err
		}
	}
	return nil
}

// uniqueSheetName makes heading a legal sheet name not yet in used.
func uniqueSheetName(heading string, used map[string]bool) string {
	base := strings.Trim(sheetNameCleaner.Replace(strings.TrimSpace(heading)), "'")
	if base == "" {
		base = "Table"
	}
	base = truncateRunes(base, maxSheetNameLen)
	name := base
	for i := 2; used[name]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		name = truncateRunes(base, maxSheetNameLen-len(suffix)) + suffix
	}
	used[name] = true
	return name
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func clamp(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}
