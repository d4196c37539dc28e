package service

import (
	"errors"
	"fmt"
	"sort"

	"github.com/GermanFOSSIL/candapp/internal/candapp/entity"
	"github.com/GermanFOSSIL/candapp/internal/candapp/export"
	"github.com/GermanFOSSIL/candapp/internal/candapp/render"
	"github.com/GermanFOSSIL/candapp/internal/candapp/store"
)

// ErrMissingKey means the record has no NoCandado identifier.
var ErrMissingKey = errors.New("service: NoCandado is required")

// AlertValorThreshold marks records whose Valor counts as a dashboard alert.
const AlertValorThreshold = 200

// File is a generated artifact ready for download.
type File struct {
	Name string
	MIME string
	Data []byte
}

const (
	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// LockService runs the LOTO register use cases on top of the workbook store.
type LockService struct {
	store    *store.LockStore
	renderer *render.Renderer
	exporter *export.Exporter
}

// NewLockService 创建LOTO登记服务
func NewLockService(st *store.LockStore, r *render.Renderer, e *export.Exporter) *LockService {
	return &LockService{store: st, renderer: r, exporter: e}
}

// List returns the register in storage order.
func (s *LockService) List() []entity.LockRecord {
	return s.store.List()
}

// Get returns the record at the given position.
func (s *LockService) Get(index int) (entity.LockRecord, error) {
	return s.store.Get(index)
}

// Create registers a new lock. Estado defaults to Activo and Fecha to today
// when omitted; the QR cell is derived inside the store.
func (s *LockService) Create(rec entity.LockRecord) (entity.LockRecord, error) {
	if rec.NoCandado == "" {
		return entity.LockRecord{}, ErrMissingKey
	}
	if rec.Estado == "" {
		rec.Estado = entity.LockEstadoActivo
	}
	if rec.Fecha == "" {
		rec.Fecha = entity.Today()
	}
	return s.store.Append(rec)
}

// Update replaces the record at index.
func (s *LockService) Update(index int, rec entity.LockRecord) (entity.LockRecord, error) {
	if rec.NoCandado == "" {
		return entity.LockRecord{}, ErrMissingKey
	}
	return s.store.Update(index, rec)
}

// Delete removes the record at index, keeping the others in order.
func (s *LockService) Delete(index int) error {
	return s.store.Delete(index)
}

// Card renders the printable tag for the record at index.
func (s *LockService) Card(index int) (*File, error) {
	rec, err := s.store.Get(index)
	if err != nil {
		return nil, err
	}
	data, err := s.renderer.Card(rec)
	if err != nil {
		return nil, err
	}
	return &File{
		Name: fmt.Sprintf("tarjeta_%s.pdf", rec.NoCandado),
		MIME: mimePDF,
		Data: data,
	}, nil
}

// ExportExcel writes the register workbook without binary columns.
func (s *LockService) ExportExcel() (*File, error) {
	data, err := s.exporter.LockWorkbook(s.store.Columns(), s.store.List())
	if err != nil {
		return nil, err
	}
	return &File{Name: "reporte_candados.xlsx", MIME: mimeXLSX, Data: data}, nil
}

// ExportPDF renders the per-record report. filter is export.FilterAll or a
// single NoCandado.
func (s *LockService) ExportPDF(filter string) (*File, error) {
	data, err := s.exporter.LockReport(s.store.List(), filter)
	if err != nil {
		return nil, err
	}
	return &File{Name: "candados.pdf", MIME: mimePDF, Data: data}, nil
}

// TrendPoint is the count of active locks registered on one date.
type TrendPoint struct {
	Fecha string `json:"fecha"`
	Count int    `json:"count"`
}

// Summary are the dashboard metrics of the register.
type Summary struct {
	Total     int                 `json:"total"`
	Activos   int                 `json:"activos"`
	Alertas   int                 `json:"alertas"`
	Tendencia []TrendPoint        `json:"tendencia"`
	Recientes []entity.LockRecord `json:"recientes"`
}

// Summarize computes the dashboard metrics: totals, the active-locks trend by
// date, and the register sorted by most recent Fecha first.
func (s *LockService) Summarize() Summary {
	records := s.store.List()

	sum := Summary{Total: len(records)}
	trend := make(map[string]int)
	for _, rec := range records {
		if rec.Estado == entity.LockEstadoActivo {
			sum.Activos++
			trend[rec.Fecha]++
		}
		if rec.Valor > AlertValorThreshold {
			sum.Alertas++
		}
	}

	dates := make([]string, 0, len(trend))
	for d := range trend {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	for _, d := range dates {
		sum.Tendencia = append(sum.Tendencia, TrendPoint{Fecha: d, Count: trend[d]})
	}

	recent := append([]entity.LockRecord(nil), records...)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].Fecha > recent[j].Fecha })
	sum.Recientes = recent

	return sum
}
