package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/GermanFOSSIL/candapp/internal/candapp/entity"
	"github.com/GermanFOSSIL/candapp/internal/candapp/export"
	"github.com/GermanFOSSIL/candapp/internal/candapp/service"
	"github.com/GermanFOSSIL/candapp/internal/candapp/store"
)

// SimOpsHandler SIMOPS处理器
type SimOpsHandler struct {
	svc *service.SimOpsService
}

func NewSimOpsHandler(svc *service.SimOpsService) *SimOpsHandler {
	return &SimOpsHandler{svc: svc}
}

// List returns the log in storage order.
func (h *SimOpsHandler) List(c *gin.Context) {
	Success(c, gin.H{"items": h.svc.List()})
}

// Get returns one record by position.
func (h *SimOpsHandler) Get(c *gin.Context) {
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

// Create registers a new SIMOPS entry.
func (h *SimOpsHandler) Create(c *gin.Context) {
	var rec entity.SimOpsRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		BadRequest(c, "registro inválido: "+err.Error())
		return
	}

	created, err := h.svc.Create(rec)
	switch {
	case errors.Is(err, service.ErrMissingSimOpsID):
		BadRequest(c, "SIMOPS_ID es obligatorio")
		return
	case errors.Is(err, service.ErrInvalidEstado):
		BadRequest(c, "estado inválido")
		return
	case err != nil:
		InternalError(c, "no se pudo guardar el registro: "+err.Error())
		return
	}
	Created(c, created)
}

// Update replaces the record at the given position.
func (h *SimOpsHandler) Update(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}
	var rec entity.SimOpsRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		BadRequest(c, "registro inválido: "+err.Error())
		return
	}

	updated, err := h.svc.Update(index, rec)
	switch {
	case errors.Is(err, store.ErrStaleSelection):
		Conflict(c, "el registro seleccionado ya no existe")
		return
	case errors.Is(err, service.ErrMissingSimOpsID):
		BadRequest(c, "SIMOPS_ID es obligatorio")
		return
	case errors.Is(err, service.ErrInvalidEstado):
		BadRequest(c, "estado inválido")
		return
	case err != nil:
		InternalError(c, "no se pudo actualizar el registro: "+err.Error())
		return
	}
	Success(c, updated)
}

// Delete removes the record at the given position.
func (h *SimOpsHandler) Delete(c *gin.Context) {
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

// Export streams the log as a workbook or the flowing PDF report.
func (h *SimOpsHandler) Export(c *gin.Context) {
	var (
		file *service.File
		err  error
	)
	switch c.DefaultQuery("format", "pdf") {
	case "excel":
		file, err = h.svc.ExportExcel()
	case "pdf":
		file, err = h.svc.ExportPDF()
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
