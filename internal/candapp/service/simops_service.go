package service

import (
	"errors"

	"github.com/GermanFOSSIL/candapp/internal/candapp/entity"
	"github.com/GermanFOSSIL/candapp/internal/candapp/export"
	"github.com/GermanFOSSIL/candapp/internal/candapp/store"
)

var (
	// ErrMissingSimOpsID means the record has no SIMOPS_ID identifier.
	ErrMissingSimOpsID = errors.New("service: SIMOPS_ID is required")
	// ErrInvalidEstado means the state is not one of the SIMOPS states.
	ErrInvalidEstado = errors.New("service: invalid estado")
)

// SimOpsService runs the simultaneous-operations log use cases.
type SimOpsService struct {
	store    *store.SimOpsStore
	exporter *export.Exporter
}

// NewSimOpsService 创建SIMOPS服务
func NewSimOpsService(st *store.SimOpsStore, e *export.Exporter) *SimOpsService {
	return &SimOpsService{store: st, exporter: e}
}

// List returns the log in storage order.
func (s *SimOpsService) List() []entity.SimOpsRecord {
	return s.store.List()
}

// Get returns the record at the given position.
func (s *SimOpsService) Get(index int) (entity.SimOpsRecord, error) {
	return s.store.Get(index)
}

// Create registers a new SIMOPS entry. Estado defaults to Planificado.
func (s *SimOpsService) Create(rec entity.SimOpsRecord) (entity.SimOpsRecord, error) {
	if rec.SimOpsID == "" {
		return entity.SimOpsRecord{}, ErrMissingSimOpsID
	}
	if rec.Estado == "" {
		rec.Estado = entity.SimOpsEstadoPlanificado
	}
	if !validEstado(rec.Estado) {
		return entity.SimOpsRecord{}, ErrInvalidEstado
	}
	return s.store.Append(rec)
}

// Update replaces the record at index.
func (s *SimOpsService) Update(index int, rec entity.SimOpsRecord) (entity.SimOpsRecord, error) {
	if rec.SimOpsID == "" {
		return entity.SimOpsRecord{}, ErrMissingSimOpsID
	}
	if !validEstado(rec.Estado) {
		return entity.SimOpsRecord{}, ErrInvalidEstado
	}
	return s.store.Update(index, rec)
}

// Delete removes the record at index.
func (s *SimOpsService) Delete(index int) error {
	return s.store.Delete(index)
}

// ExportExcel writes the log workbook.
func (s *SimOpsService) ExportExcel() (*File, error) {
	data, err := s.exporter.SimOpsWorkbook(s.store.Columns(), s.store.List())
	if err != nil {
		return nil, err
	}
	return &File{Name: "reporte_simops.xlsx", MIME: mimeXLSX, Data: data}, nil
}

// ExportPDF renders the flowing SIMOPS report.
func (s *SimOpsService) ExportPDF() (*File, error) {
	data, err := s.exporter.SimOpsReport(s.store.List())
	if err != nil {
		return nil, err
	}
	return &File{Name: "SIMOPS.pdf", MIME: mimePDF, Data: data}, nil
}

func validEstado(estado string) bool {
	for _, e := range entity.SimOpsEstados {
		if estado == e {
			return true
		}
	}
	return false
}
