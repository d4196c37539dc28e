package render

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/GermanFOSSIL/candapp/internal/candapp/entity"
)

// ITRForm carries the operator-entered fields of an inspection and test
// record sheet.
type ITRForm struct {
	Equipo      string `json:"equipo"`
	Subsistema  string `json:"subsistema"`
	Responsable string `json:"responsable"`
	Comentarios string `json:"comentarios"`
}

var itrChecklist = []string{
	"- Placa de identificación",
	"- Dispositivo de fijación",
	"- MCCB, contactores...",
}

// ITR renders the pre-commissioning inspection sheet for one itembook item.
func (r *Renderer) ITR(item entity.ItembookItem, form ITRForm) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	pdf.SetFont("Arial", "", 12)

	pdf.CellFormat(0, 10, tr("E11A - Centro de Control de Motores (BT/AT) (MCC)"), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 10, tr("Completamiento de la Construcción"), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	lines := []string{
		fmt.Sprintf("N° de Tag: %s", item.ItemID),
		fmt.Sprintf("Descripción del Equipo: %s", form.Equipo),
		fmt.Sprintf("N° de Subsistema: %s", form.Subsistema),
		fmt.Sprintf("Proyecto: %s", item.Proyecto),
		fmt.Sprintf("Responsable: %s", form.Responsable),
	}
	for _, line := range lines {
		pdf.CellFormat(0, 8, tr(line), "", 1, "L", false, 0, "")
	}

	pdf.Ln(5)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, tr("Items para verificar:"), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	for _, line := range itrChecklist {
		pdf.MultiCell(0, 8, tr(line), "", "L", false)
	}

	pdf.Ln(5)
	pdf.CellFormat(0, 8, tr("Comentarios / Observaciones:"), "", 1, "L", false, 0, "")
	pdf.MultiCell(0, 8, tr(form.Comentarios), "", "L", false)
	pdf.Ln(10)
	pdf.CellFormat(0, 8, tr("Firmado por: _______________________"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, tr("Fecha: _____________________________"), "", 1, "L", false, 0, "")

	return output(pdf)
}
