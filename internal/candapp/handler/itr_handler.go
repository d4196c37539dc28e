package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/GermanFOSSIL/candapp/internal/candapp/render"
	"github.com/GermanFOSSIL/candapp/internal/candapp/service"
	"github.com/GermanFOSSIL/candapp/internal/candapp/store"
)

// ITRHandler 预试车处理器
type ITRHandler struct {
	svc *service.ITRService
}

func NewITRHandler(svc *service.ITRService) *ITRHandler {
	return &ITRHandler{svc: svc}
}

// List returns the itembook.
func (h *ITRHandler) List(c *gin.Context) {
	Success(c, gin.H{"items": h.svc.List()})
}

// Generate renders the inspection sheet for one item.
func (h *ITRHandler) Generate(c *gin.Context) {
	var form render.ITRForm
	if err := c.ShouldBindJSON(&form); err != nil {
		BadRequest(c, "formulario inválido: "+err.Error())
		return
	}

	file, err := h.svc.GeneratePDF(c.Param("itemId"), form)
	if err != nil {
		if errors.Is(err, store.ErrStaleSelection) {
			NotFound(c, "el item no existe")
			return
		}
		InternalError(c, "no se pudo generar el ITR: "+err.Error())
		return
	}
	serveFile(c, file)
}
