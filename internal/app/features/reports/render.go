// internal/app/features/reports/render.go
package reports

import (
	"bytes"
	"encoding/csv"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
)

// The renderers are thin: they accept header + rows and produce bytes.
// Column semantics live in metrics.go; nothing here inspects row content
// beyond fitting it on the page.

func renderCSV(buf *bytes.Buffer, header []string, rows [][]string) error {
	// UTF-8 BOM so Excel opens the file with the right encoding.
	buf.Write([]byte{0xEF, 0xBB, 0xBF})

	cw := csv.NewWriter(buf)
	cw.UseCRLF = true

	if err := cw.Write(sanitizeCSVRow(header)); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(sanitizeCSVRow(row)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// sanitizeCSVRow prevents CSV formula injection on every cell.
func sanitizeCSVRow(row []string) []string {
	out := make([]string, len(row))
	for i, s := range row {
		out[i] = sanitizeCSVField(s)
	}
	return out
}

func sanitizeCSVField(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@':
		return "'" + s
	}
	return s
}

func renderExcel(buf *bytes.Buffer, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	for col, label := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, label); err != nil {
			return err
		}
	}
	firstCell, _ := excelize.CoordinatesToCellName(1, 1)
	lastCell, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(sheet, firstCell, lastCell, bold); err != nil {
		return err
	}

	for i, row := range rows {
		for col, val := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 26); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "C", 32); err != nil {
		return err
	}

	return f.Write(buf)
}

// pdfColWidths are the landscape A4 column widths in mm, matching the
// export header order.
var pdfColWidths = []float64{42, 42, 55, 24, 18, 24, 36, 22, 16}

func renderPDF(buf *bytes.Buffer, header []string, rows [][]string) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Tasks Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	for i, label := range header {
		pdf.CellFormat(pdfColWidths[i], 7, label, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range rows {
		for i, val := range row {
			pdf.CellFormat(pdfColWidths[i], 6, truncateCell(val, pdfColWidths[i]), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(buf)
}

// truncateCell trims a value so it fits a fixed-width PDF cell; roughly
// 1.7mm per character at 8pt Helvetica.
func truncateCell(s string, width float64) string {
	max := int(width / 1.7)
	if max < 4 {
		max = 4
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
