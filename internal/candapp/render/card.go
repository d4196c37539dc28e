package render

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/GermanFOSSIL/candapp/internal/candapp/entity"
)

// Tag card page dimensions in mm (85x140 printed card).
const (
	cardW = 85
	cardH = 140
)

var cardWarnings = []string{
	"ENERGÍA BLOQUEADA",
	"NO OPERAR/RETIRAR",
	"INCUMPLIMIENTO = SANCIÓN",
}

// Card renders the printable LOTO tag for one record: red danger face with
// warning icon and texts, enlarged logo, and a white technical-data panel.
func (r *Renderer) Card(rec entity.LockRecord) ([]byte, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "mm",
		Size:    fpdf.SizeType{Wd: cardW, Ht: cardH},
	})
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// Danger face: firebrick fill with a heavy black frame.
	pdf.SetFillColor(178, 34, 34)
	pdf.Rect(0, 0, cardW, cardH, "F")
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(1.5)
	pdf.Rect(3, 3, cardW-6, cardH-6, "D")

	safeImage(pdf, tr, r.iconPath, (cardW-18)/2, 8, 18, "[icono no disponible]")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 14)
	pdf.SetXY(0, 28)
	pdf.CellFormat(cardW, 6, tr("PELIGRO"), "", 0, "C", false, 0, "")

	y := 40.0
	for _, line := range cardWarnings {
		pdf.SetXY(0, y)
		pdf.CellFormat(cardW, 5, tr(line), "", 0, "C", false, 0, "")
		y += 7
	}

	const logoW = 60
	safeImage(pdf, tr, r.logoPath, (cardW-logoW)/2, 70, logoW, "[Logo no disponible]")

	// Technical-data panel.
	pdf.SetFillColor(255, 255, 255)
	pdf.Rect(10, 110, cardW-20, 25, "F")
	pdf.Rect(10, 110, cardW-20, 25, "D")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "B", 10)
	data := []string{
		fmt.Sprintf("No: %s", rec.NoCandado),
		fmt.Sprintf("Área: %s", rec.Area),
		fmt.Sprintf("Responsable: %s", rec.EjecPorNombre),
		fmt.Sprintf("Fecha: %s", rec.Fecha),
	}
	y = 115
	for _, item := range data {
		pdf.SetXY(12, y)
		pdf.Cell(0, 5, tr(item))
		y += 6
	}

	return output(pdf)
}
