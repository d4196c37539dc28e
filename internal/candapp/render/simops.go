package render

import (
	"github.com/go-pdf/fpdf"

	"github.com/GermanFOSSIL/candapp/internal/candapp/entity"
)

// SimOpsReport renders the simultaneous-operations log as a flowing A4
// document: one labeled block per record, separated by a divider line. The
// page breaks automatically; records are not pinned to pages.
func (r *Renderer) SimOpsReport(records []entity.SimOpsRecord) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	pdf.SetFont("Arial", "", 12)

	safeImage(pdf, tr, r.logoPath, (reportPageW-50)/2, 10, 50, "[Logo no disponible]")
	pdf.Ln(40)

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr("Reporte SIMOPS"), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	for _, rec := range records {
		r.simOpsBlock(pdf, tr, rec)
	}

	return output(pdf)
}

func (r *Renderer) simOpsBlock(pdf *fpdf.Fpdf, tr func(string) string, rec entity.SimOpsRecord) {
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(0, 0, 0)

	rows := []struct{ label, value string }{
		{"SIMOPS ID", rec.SimOpsID},
		{"Descripción", rec.Descripcion},
		{"Área", rec.Area},
		{"PTWs Involucrados", rec.PTWs},
		{"Fecha Inicio", rec.FechaInicio},
		{"Fecha Fin", rec.FechaFin},
		{"Encargado", rec.Encargado},
		{"Estado", rec.Estado},
		{"Riesgos", rec.Riesgos},
		{"Acciones/Mitigación", rec.Acciones},
	}
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(40, 8, tr(row.label+":"), "", 0, "L", true, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 8, tr(row.value), "", "L", false)
		pdf.Ln(3)
	}

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(reportMargin, pdf.GetY(), reportPageW-reportMargin, pdf.GetY())
	pdf.Ln(15)
}
