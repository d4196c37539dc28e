package render

import (
	"fmt"

	"github.com/go-pdf/fpdf"
)

const (
	qrPlaceholder = "QR no disponible"
	qrCaption     = "QR listo para imprimir y pegar en candado"
)

// BatchReport renders one A4 page per section: banner with logo and title,
// the key-value table, the QR image (or its placeholder) and a generation
// timestamp footer on every page.
func (r *Renderer) BatchReport(title string, sections []Section) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(false, 0)

	stamp := fmt.Sprintf("Generado por CandApp - %s", r.timestamp())
	pdf.SetFooterFunc(func() {
		pdf.SetY(-20)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 10, tr(stamp), "", 0, "C", false, 0, "")
	})

	for _, section := range sections {
		pdf.AddPage()
		r.banner(pdf, tr, title)
		bottom := r.fieldTable(pdf, tr, section.Fields)

		qrY := bottom + 10
		if validPNG(section.QR) {
			if err := embedPNG(pdf, section.QR, (reportPageW-qrW)/2, qrY, qrW); err != nil {
				return nil, err
			}
		} else {
			pdf.SetXY((reportPageW-qrW)/2, qrY)
			pdf.SetFont("Helvetica", "I", 10)
			pdf.CellFormat(qrW, 10, tr(qrPlaceholder), "", 1, "C", false, 0, "")
		}

		pdf.SetY(qrY + 45)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 10, tr(qrCaption), "", 1, "C", false, 0, "")
	}

	return output(pdf)
}

// banner paints the page head: teal fill, centered logo and title.
func (r *Renderer) banner(pdf *fpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFillColor(44, 118, 137)
	pdf.Rect(0, 0, reportPageW, bannerH, "F")
	safeImage(pdf, tr, r.logoPath, 55, 10, 100, "[Logo no disponible]")
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetXY(0, 32)
	pdf.CellFormat(0, 10, tr(title), "", 0, "C", false, 0, "")
}

// fieldTable draws the key-value rows at the positions layoutRows computed
// and returns the y coordinate below the table. Non-wrapping cells truncate
// overlong values; wrapping fields grow downward line by line.
func (r *Renderer) fieldTable(pdf *fpdf.Fpdf, tr func(string) string, fields []Field) float64 {
	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetFillColor(255, 255, 255)
	pdf.SetFont("Helvetica", "", 12)

	rows := layoutRows(fields)
	bottom := tableTop
	for i, row := range rows {
		f := fields[i]
		pdf.SetXY(reportMargin, row.Y)
		label := truncateToWidth(pdf, tr(f.Label), labelColW-2)
		pdf.CellFormat(labelColW, reportRowH, label, "1", 0, "L", true, 0, "")

		if f.Wrap {
			pdf.MultiCell(valueColW, row.H, tr(f.Value), "1", "L", true)
		} else {
			value := truncateToWidth(pdf, tr(f.Value), valueColW-2)
			pdf.CellFormat(valueColW, row.H, value, "1", 1, "L", true, 0, "")
		}
		if y := pdf.GetY(); y > bottom {
			bottom = y
		}
		if end := row.Y + reportRowH; end > bottom {
			bottom = end
		}
	}
	return bottom
}
