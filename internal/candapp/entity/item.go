package entity

// ItembookItem 预试车项目清单条目 (pre-commissioning dossier item).
type ItembookItem struct {
	Proyecto    string `json:"proyecto"`
	ItemID      string `json:"item_id"`
	Descripcion string `json:"descripcion"`
}
