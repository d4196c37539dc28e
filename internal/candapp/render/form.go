package render

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/GermanFOSSIL/candapp/internal/candapp/schema"
)

// FormResult renders the submitted values of a schema-driven form as a
// simple label/value sheet.
func (r *Renderer) FormResult(values []schema.FormValue) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	pdf.SetFont("Arial", "", 12)

	pdf.CellFormat(0, 10, tr("Formulario Dinámico - Resultado"), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	for _, v := range values {
		pdf.MultiCell(0, 8, tr(fmt.Sprintf("%s: %s", v.Name, v.Value)), "", "L", false)
		pdf.Ln(2)
	}

	return output(pdf)
}

// DynamicLock renders a free-form lock register sheet with a QR code that
// points at the record's detail link.
func (r *Renderer) DynamicLock(values []schema.FormValue, link string, qrPNG []byte) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 10, tr("Registro de Candado (Dinámico)"), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "", 12)
	for _, v := range values {
		pdf.MultiCell(0, 8, tr(fmt.Sprintf("%s: %s", v.Name, v.Value)), "", "L", false)
	}
	pdf.Ln(5)

	if validPNG(qrPNG) {
		y := pdf.GetY()
		if err := embedPNG(pdf, qrPNG, 10, y, qrW); err != nil {
			return nil, err
		}
		pdf.SetY(y + qrW)
	} else {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 8, tr(qrPlaceholder), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
	}
	pdf.Ln(4)
	pdf.MultiCell(0, 8, tr("Escanea el QR para ver detalles:\n"+link), "", "L", false)

	return output(pdf)
}
