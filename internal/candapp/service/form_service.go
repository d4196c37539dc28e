package service

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/GermanFOSSIL/candapp/internal/candapp/entity"
	"github.com/GermanFOSSIL/candapp/internal/candapp/qr"
	"github.com/GermanFOSSIL/candapp/internal/candapp/render"
	"github.com/GermanFOSSIL/candapp/internal/candapp/schema"
	"github.com/GermanFOSSIL/candapp/internal/candapp/store"
)

// ErrNoSchema means no schema workbook has been uploaded yet.
var ErrNoSchema = errors.New("service: no schema loaded")

// FormService holds the schema of the currently uploaded form workbook and
// turns submissions into documents. A new upload replaces the whole schema.
type FormService struct {
	mu        sync.RWMutex
	fields    []entity.FieldDescriptor
	renderer  *render.Renderer
	locks     *store.LockStore
	publicURL string
}

// NewFormService 创建动态表单服务
func NewFormService(r *render.Renderer, locks *store.LockStore, publicURL string) *FormService {
	return &FormService{renderer: r, locks: locks, publicURL: publicURL}
}

// LoadSchema parses the uploaded workbook and replaces the active schema.
func (s *FormService) LoadSchema(r io.Reader) ([]entity.FieldDescriptor, error) {
	fields, err := schema.Parse(r)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.fields = fields
	s.mu.Unlock()
	return fields, nil
}

// Schema returns the active field descriptors.
func (s *FormService) Schema() ([]entity.FieldDescriptor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.fields == nil {
		return nil, ErrNoSchema
	}
	return append([]entity.FieldDescriptor(nil), s.fields...), nil
}

// RenderSubmission resolves the submitted values against the active schema
// and renders the result sheet. Nothing is persisted.
func (s *FormService) RenderSubmission(submitted map[string]string) (*File, error) {
	fields, err := s.Schema()
	if err != nil {
		return nil, err
	}
	values, err := schema.Resolve(fields, submitted)
	if err != nil {
		return nil, err
	}
	data, err := s.renderer.FormResult(values)
	if err != nil {
		return nil, err
	}
	return &File{Name: "formulario_generado.pdf", MIME: mimePDF, Data: data}, nil
}

// DynamicRecord is the outcome of a free-form lock registration: the issued
// identifier, its detail link and the generated document.
type DynamicRecord struct {
	ID   string `json:"id"`
	Link string `json:"link"`
	File *File  `json:"-"`
}

// RegisterDynamic issues an identifier for a free-form lock submission,
// renders its sheet with a QR pointing at the record's detail link and
// appends the mapped record to the lock register.
func (s *FormService) RegisterDynamic(submitted map[string]string) (*DynamicRecord, error) {
	fields, err := s.Schema()
	if err != nil {
		return nil, err
	}
	values, err := schema.Resolve(fields, submitted)
	if err != nil {
		return nil, err
	}

	id := "CD-" + uuid.New().String()[:8]
	link := fmt.Sprintf("%s/loto?id=%s", s.publicURL, id)
	png, err := qr.Encode(link)
	if err != nil {
		return nil, err
	}

	data, err := s.renderer.DynamicLock(values, link, png)
	if err != nil {
		return nil, err
	}

	rec := mapDynamicRecord(id, values)
	rec.PDFAdjunto = data
	if _, err := s.locks.Append(rec); err != nil {
		return nil, err
	}

	return &DynamicRecord{
		ID:   id,
		Link: link,
		File: &File{Name: fmt.Sprintf("candado_%s.pdf", id), MIME: mimePDF, Data: data},
	}, nil
}

// mapDynamicRecord maps schema fields onto the fixed register columns by
// label. Unmapped values still travel in the generated document; the record
// keeps the issued identifier when the form declares no NoCandado field.
func mapDynamicRecord(id string, values []schema.FormValue) entity.LockRecord {
	rec := entity.LockRecord{
		NoCandado: id,
		Estado:    entity.LockEstadoActivo,
		Fecha:     entity.Today(),
	}
	for _, v := range values {
		if v.Value == "" {
			continue
		}
		switch strings.ToLower(v.Name) {
		case "nocandado", "no. de candado", "no de candado":
			rec.NoCandado = v.Value
		case "area", "área":
			rec.Area = v.Value
		case "fecha":
			rec.Fecha = v.Value
		case "descripcion", "descripción":
			rec.Descripcion = v.Value
		case "responsable":
			rec.Responsable = v.Value
		case "estado":
			rec.Estado = v.Value
		}
	}
	return rec
}
