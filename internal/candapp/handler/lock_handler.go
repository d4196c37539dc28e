package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/GermanFOSSIL/candapp/internal/candapp/entity"
	"github.com/GermanFOSSIL/candapp/internal/candapp/export"
	"github.com/GermanFOSSIL/candapp/internal/candapp/service"
	"github.com/GermanFOSSIL/candapp/internal/candapp/store"
)

// LockHandler LOTO登记处理器
type LockHandler struct {
	svc *service.LockService
}

func NewLockHandler(svc *service.LockService) *LockHandler {
	return &LockHandler{svc: svc}
}

// List returns the register in storage order.
func (h *LockHandler) List(c *gin.Context) {
	Success(c, gin.H{"items": h.svc.List()})
}

// Get returns one record by position.
func (h *LockHandler) Get(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}
	rec, err := h.svc.Get(index)
	if err != nil {
		Conflict(c, "el registro seleccionado ya no existe")
		return
	}
	Success(c, rec)
}

// Create registers a new lock.
func (h *LockHandler) Create(c *gin.Context) {
	var rec entity.LockRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		BadRequest(c, "registro inválido: "+err.Error())
		return
	}

	created, err := h.svc.Create(rec)
	if err != nil {
		if errors.Is(err, service.ErrMissingKey) {
			BadRequest(c, "NoCandado es obligatorio")
			return
		}
		InternalError(c, "no se pudo guardar el registro: "+err.Error())
		return
	}
	Created(c, created)
}

// Update replaces the record at the given position.
func (h *LockHandler) Update(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}
	var rec entity.LockRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		BadRequest(c, "registro inválido: "+err.Error())
		return
	}

	updated, err := h.svc.Update(index, rec)
	switch {
	case errors.Is(err, store.ErrStaleSelection):
		Conflict(c, "el registro seleccionado ya no existe")
		return
	case errors.Is(err, service.ErrMissingKey):
		BadRequest(c, "NoCandado es obligatorio")
		return
	case err != nil:
		InternalError(c, "no se pudo actualizar el registro: "+err.Error())
		return
	}
	Success(c, updated)
}

// Delete removes the record at the given position.
func (h *LockHandler) Delete(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(index); err != nil {
		if errors.Is(err, store.ErrStaleSelection) {
			Conflict(c, "el registro seleccionado ya no existe")
			return
		}
		InternalError(c, "no se pudo borrar el registro: "+err.Error())
		return
	}
	Success(c, gin.H{"deleted": index})
}

// Card streams the printable tag of one record.
func (h *LockHandler) Card(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}
	file, err := h.svc.Card(index)
	if err != nil {
		if errors.Is(err, store.ErrStaleSelection) {
			Conflict(c, "el registro seleccionado ya no existe")
			return
		}
		InternalError(c, "no se pudo generar la tarjeta: "+err.Error())
		return
	}
	serveFile(c, file)
}

// Summary returns the dashboard metrics.
func (h *LockHandler) Summary(c *gin.Context) {
	Success(c, h.svc.Summarize())
}

// Export streams the register as a workbook or a PDF report, depending on
// the format query parameter. The id parameter narrows the PDF to one
// NoCandado; "all" (or the legacy "Todos") selects everything.
func (h *LockHandler) Export(c *gin.Context) {
	var (
		file *service.File
		err  error
	)
	filter := c.DefaultQuery("id", "all")
	if filter == "all" {
		filter = export.FilterAll
	}
	switch c.DefaultQuery("format", "excel") {
	case "excel":
		file, err = h.svc.ExportExcel()
	case "pdf":
		file, err = h.svc.ExportPDF(filter)
	default:
		BadRequest(c, "formato desconocido; use excel o pdf")
		return
	}

	if err != nil {
		if errors.Is(err, export.ErrNoRecords) {
			NotFound(c, "No hay datos para exportar.")
			return
		}
		InternalError(c, "no se pudo generar el reporte: "+err.Error())
		return
	}
	serveFile(c, file)
}
