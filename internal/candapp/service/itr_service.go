package service

import (
	"fmt"

	"github.com/GermanFOSSIL/candapp/internal/candapp/entity"
	"github.com/GermanFOSSIL/candapp/internal/candapp/render"
	"github.com/GermanFOSSIL/candapp/internal/candapp/store"
)

// ITRService serves the pre-commissioning itembook and its inspection sheets.
type ITRService struct {
	book     *store.Itembook
	renderer *render.Renderer
}

// NewITRService 创建预试车ITR服务
func NewITRService(book *store.Itembook, r *render.Renderer) *ITRService {
	return &ITRService{book: book, renderer: r}
}

// List returns the itembook in order.
func (s *ITRService) List() []entity.ItembookItem {
	return s.book.List()
}

// GeneratePDF renders the inspection sheet for one itembook item.
func (s *ITRService) GeneratePDF(itemID string, form render.ITRForm) (*File, error) {
	item, err := s.book.Find(itemID)
	if err != nil {
		return nil, err
	}
	data, err := s.renderer.ITR(item, form)
	if err != nil {
		return nil, err
	}
	return &File{
		Name: fmt.Sprintf("ITR_%s.pdf", item.ItemID),
		MIME: mimePDF,
		Data: data,
	}, nil
}
