package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/GermanFOSSIL/candapp/internal/candapp/qr"
	"github.com/GermanFOSSIL/candapp/internal/candapp/schema"
	"github.com/GermanFOSSIL/candapp/internal/candapp/service"
)

// FormHandler 动态表单处理器
type FormHandler struct {
	svc *service.FormService
}

func NewFormHandler(svc *service.FormService) *FormHandler {
	return &FormHandler{svc: svc}
}

// UploadSchema parses an uploaded schema workbook and makes it the active
// form definition.
func (h *FormHandler) UploadSchema(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "se requiere un archivo Excel en el campo file")
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		InternalError(c, "no se pudo leer el archivo: "+err.Error())
		return
	}
	defer f.Close()

	fields, err := h.svc.LoadSchema(f)
	if err != nil {
		if errors.Is(err, schema.ErrNotTabular) {
			BadRequest(c, "el archivo no es un libro tabular válido")
			return
		}
		BadRequest(c, "Error al leer el Excel: "+err.Error())
		return
	}
	Success(c, gin.H{"fields": fields})
}

// Schema returns the active form definition.
func (h *FormHandler) Schema(c *gin.Context) {
	fields, err := h.svc.Schema()
	if err != nil {
		NotFound(c, "no hay formulario cargado")
		return
	}
	Success(c, gin.H{"fields": fields})
}

type submissionRequest struct {
	Values map[string]string `json:"values"`
}

// Render turns a submission into the result sheet without persisting it.
func (h *FormHandler) Render(c *gin.Context) {
	var req submissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "valores inválidos: "+err.Error())
		return
	}

	file, err := h.svc.RenderSubmission(req.Values)
	if err != nil {
		if errors.Is(err, service.ErrNoSchema) {
			NotFound(c, "no hay formulario cargado")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	serveFile(c, file)
}

// Register issues a dynamic lock record and streams its document. The issued
// ID and detail link travel in response headers next to the PDF body.
func (h *FormHandler) Register(c *gin.Context) {
	var req submissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "valores inválidos: "+err.Error())
		return
	}

	rec, err := h.svc.RegisterDynamic(req.Values)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoSchema):
			NotFound(c, "no hay formulario cargado")
		case errors.Is(err, qr.ErrEmptyPayload):
			BadRequest(c, "no se pudo generar el enlace QR")
		default:
			BadRequest(c, err.Error())
		}
		return
	}

	c.Header("X-Record-ID", rec.ID)
	c.Header("X-Record-Link", rec.Link)
	serveFile(c, rec.File)
}
