// Package export turns the persisted registers into downloadable artifacts:
// workbook extracts without binary cells and the PDF report documents.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/GermanFOSSIL/candapp/internal/candapp/entity"
	"github.com/GermanFOSSIL/candapp/internal/candapp/render"
)

// FilterAll selects every record of a register for export.
const FilterAll = "Todos"

// ErrNoRecords means the filter matched nothing, so there is no document to
// produce.
var ErrNoRecords = errors.New("export: no records to export")

const (
	lockSheet   = "ReporteCandados"
	simOpsSheet = "ReporteSIMOPS"
)

// Exporter builds report files from register snapshots. It never touches the
// stores; callers pass the column order and records they want exported.
type Exporter struct {
	renderer *render.Renderer
}

// New returns an exporter drawing PDFs with the given renderer.
func New(r *render.Renderer) *Exporter {
	return &Exporter{renderer: r}
}

// LockWorkbook writes the lock register to a spreadsheet, keeping the given
// column order and dropping the binary columns. Re-exporting an unchanged
// register yields the same cell content.
func (e *Exporter) LockWorkbook(columns []string, records []entity.LockRecord) ([]byte, error) {
	cols := withoutBinary(columns)
	rows := make([]map[string]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.Row())
	}
	return writeSheet(lockSheet, cols, rows)
}

// SimOpsWorkbook writes the SIMOPS log to a spreadsheet in the given column
// order.
func (e *Exporter) SimOpsWorkbook(columns []string, records []entity.SimOpsRecord) ([]byte, error) {
	rows := make([]map[string]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.Row())
	}
	return writeSheet(simOpsSheet, columns, rows)
}

// LockReport renders the per-record report, one page per lock. filter is
// either FilterAll or a single NoCandado; when nothing matches there is no
// document and ErrNoRecords is returned.
func (e *Exporter) LockReport(records []entity.LockRecord, filter string) ([]byte, error) {
	sections := make([]render.Section, 0, len(records))
	for _, rec := range records {
		if filter != FilterAll && rec.NoCandado != filter {
			continue
		}
		sections = append(sections, render.Section{
			Fields: LockReportFields(rec),
			QR:     rec.QRBytes,
		})
	}
	if len(sections) == 0 {
		return nil, ErrNoRecords
	}
	return e.renderer.BatchReport("Reporte LOTO", sections)
}

// SimOpsReport renders the flowing SIMOPS log document.
func (e *Exporter) SimOpsReport(records []entity.SimOpsRecord) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return e.renderer.SimOpsReport(records)
}

// LockReportFields is the report row set of one lock record. The free-text
// description comes last so the fixed rows above it stay at the same position
// on every page.
func LockReportFields(rec entity.LockRecord) []render.Field {
	return []render.Field{
		{Label: "No. Candado:", Value: rec.NoCandado},
		{Label: "Área:", Value: rec.Area},
		{Label: "Equipo:", Value: rec.TableroEquipo},
		{Label: "KKS:", Value: rec.KKS},
		{Label: "Tipo Bloqueo:", Value: rec.TipoBloqueo},
		{Label: "Líder Autorizador:", Value: rec.LiderAutorizador},
		{Label: "Ejecutado por:", Value: fmt.Sprintf("%s (%s)", rec.EjecPorNombre, rec.EjecPorCargo)},
		{Label: "N° PTW:", Value: rec.NPTW},
		{Label: "Fecha:", Value: rec.Fecha},
		{Label: "Estado:", Value: rec.Estado},
		{Label: "Valor:", Value: strconv.Itoa(rec.Valor)},
		{Label: "Descripción:", Value: rec.Descripcion, Wrap: true},
	}
}

func withoutBinary(columns []string) []string {
	out := make([]string, 0, len(columns))
	for _, col := range columns {
		if isBinary(col) {
			continue
		}
		out = append(out, col)
	}
	return out
}

func isBinary(col string) bool {
	for _, b := range entity.LockBinaryColumns {
		if col == b {
			return true
		}
	}
	return false
}

func writeSheet(sheet string, columns []string, rows []map[string]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("export: rename sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("export: write header: %w", err)
	}

	for i, row := range rows {
		cells := make([]interface{}, len(columns))
		for j, col := range columns {
			cells[j] = row[col]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("export: cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, fmt.Errorf("export: write row: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("export: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
