package store

import (
	"github.com/GermanFOSSIL/candapp/internal/candapp/entity"
)

// Itembook is the in-memory pre-commissioning item list. It is generated at
// startup and read-only afterwards.
type Itembook struct {
	items []entity.ItembookItem
}

// NewItembook generates the demo item list.
func NewItembook() *Itembook {
	return &Itembook{items: GenerateItembook()}
}

// List returns all items in order.
func (b *Itembook) List() []entity.ItembookItem {
	return append([]entity.ItembookItem(nil), b.items...)
}

// Find returns the item with the given ID.
func (b *Itembook) Find(itemID string) (entity.ItembookItem, error) {
	for _, item := range b.items {
		if item.ItemID == itemID {
			return item, nil
		}
	}
	return entity.ItembookItem{}, ErrStaleSelection
}
