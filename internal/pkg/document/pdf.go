package document

import (
	"io"

	"codeberg.org/go-pdf/fpdf"
)

const (
	lineHeight = 7.0
	labelWidth = 55.0
)

// PDFRenderer lays the document out on A4 portrait pages.
type PDFRenderer struct{}

func (PDFRenderer) Render(w io.Writer, doc Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	contentWidth := pageWidth - left - right

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentWidth, 9, tr(doc.Title), "", 1, "C", false, 0, "")
	if doc.Subtitle != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentWidth, 6, tr(doc.Subtitle), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	for _, field := range doc.Fields {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(labelWidth, lineHeight, tr(field.Label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(contentWidth-labelWidth, lineHeight, tr(": "+field.Value), "", "L", false)
	}

	if doc.Table != nil && len(doc.Table.Headers) > 0 {
		pdf.Ln(4)
		if doc.Table.Title != "" {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.CellFormat(contentWidth, lineHeight, tr(doc.Table.Title), "", 1, "L", false, 0, "")
		}
		colWidth := contentWidth / float64(len(doc.Table.Headers))

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for _, h := range doc.Table.Headers {
			pdf.CellFormat(colWidth, lineHeight, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 9)
		for _, row := range doc.Table.Rows {
			for i := range doc.Table.Headers {
				v := ""
				if i < len(row) {
					v = row[i]
				}
				pdf.CellFormat(colWidth, lineHeight, tr(v), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	if len(doc.Signatures) > 0 {
		pdf.Ln(12)
		colWidth := contentWidth / float64(len(doc.Signatures))
		pdf.SetFont("Helvetica", "", 10)
		for _, s := range doc.Signatures {
			pdf.CellFormat(colWidth, lineHeight, tr(s), "", 0, "C", false, 0, "")
		}
		pdf.Ln(24)
		for range doc.Signatures {
			pdf.CellFormat(colWidth, lineHeight, "(................................)", "", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if !doc.GeneratedAt.IsZero() {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(contentWidth, 5, "Dicetak "+doc.GeneratedAt.Format("2006-01-02 15:04"), "", 1, "R", false, 0, "")
	}

	return pdf.Output(w)
}
