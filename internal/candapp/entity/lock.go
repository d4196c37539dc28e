package entity

import "strconv"

// Lock record states as persisted in the workbook.
const (
	LockEstadoActivo   = "Activo"
	LockEstadoInactivo = "Inactivo"
)

// Lock workbook column headers. The order is the persisted column order and
// the rendering order of the batch report.
const (
	ColLockID          = "ID"
	ColLockNoCandado   = "NoCandado"
	ColLockArea        = "Area"
	ColLockTablero     = "TableroEquipo"
	ColLockKKS         = "KKS"
	ColLockTipoBloqueo = "TipoBloqueo"
	ColLockLider       = "LiderAutorizador"
	ColLockEjecNombre  = "EjecPorNombre"
	ColLockEjecCargo   = "EjecPorCargo"
	ColLockNPTW        = "N_PTW"
	ColLockFecha       = "Fecha"
	ColLockDescripcion = "Descripción"
	ColLockResponsable = "Responsable"
	ColLockEstado      = "Estado"
	ColLockValor       = "Valor"
	ColLockQRBytes     = "QR_Bytes"
	ColLockPDFAdjunto  = "PDF_Adjunto"
)

// LockColumns is the mandatory column set of the LOTO workbook, in order.
var LockColumns = []string{
	ColLockID, ColLockNoCandado, ColLockArea, ColLockTablero, ColLockKKS,
	ColLockTipoBloqueo, ColLockLider, ColLockEjecNombre, ColLockEjecCargo,
	ColLockNPTW, ColLockFecha, ColLockDescripcion, ColLockResponsable,
	ColLockEstado, ColLockValor, ColLockQRBytes, ColLockPDFAdjunto,
}

// LockBinaryColumns hold opaque blobs and are excluded from workbook exports.
var LockBinaryColumns = []string{ColLockQRBytes, ColLockPDFAdjunto}

// LockRecord 单个LOTO挂锁登记
type LockRecord struct {
	NoCandado        string `json:"no_candado"`
	Area             string `json:"area"`
	TableroEquipo    string `json:"tablero_equipo"`
	KKS              string `json:"kks"`
	TipoBloqueo      string `json:"tipo_bloqueo"`
	LiderAutorizador string `json:"lider_autorizador"`
	EjecPorNombre    string `json:"ejec_por_nombre"`
	EjecPorCargo     string `json:"ejec_por_cargo"`
	NPTW             string `json:"n_ptw"`
	Fecha            string `json:"fecha"`
	Descripcion      string `json:"descripcion"`
	Responsable      string `json:"responsable"`
	Estado           string `json:"estado"`
	Valor            int    `json:"valor"`

	// Derived / binary columns, never serialized to API responses.
	QRBytes    []byte `json:"-"`
	PDFAdjunto []byte `json:"-"`
}

// PrimaryKey returns the record's display identifier. The legacy workbook
// carries a redundant ID column that always mirrors NoCandado; NoCandado is
// the key.
func (r LockRecord) PrimaryKey() string {
	return r.NoCandado
}

// Row maps all non-binary columns to their cell values.
func (r LockRecord) Row() map[string]string {
	return map[string]string{
		ColLockID:          r.NoCandado,
		ColLockNoCandado:   r.NoCandado,
		ColLockArea:        r.Area,
		ColLockTablero:     r.TableroEquipo,
		ColLockKKS:         r.KKS,
		ColLockTipoBloqueo: r.TipoBloqueo,
		ColLockLider:       r.LiderAutorizador,
		ColLockEjecNombre:  r.EjecPorNombre,
		ColLockEjecCargo:   r.EjecPorCargo,
		ColLockNPTW:        r.NPTW,
		ColLockFecha:       r.Fecha,
		ColLockDescripcion: r.Descripcion,
		ColLockResponsable: r.Responsable,
		ColLockEstado:      r.Estado,
		ColLockValor:       strconv.Itoa(r.Valor),
	}
}

// LockFromRow builds a record from workbook cells. Unparsable Valor cells
// load as 0 rather than failing the row.
func LockFromRow(row map[string]string) LockRecord {
	valor, _ := strconv.Atoi(row[ColLockValor])
	r := LockRecord{
		NoCandado:        row[ColLockNoCandado],
		Area:             row[ColLockArea],
		TableroEquipo:    row[ColLockTablero],
		KKS:              row[ColLockKKS],
		TipoBloqueo:      row[ColLockTipoBloqueo],
		LiderAutorizador: row[ColLockLider],
		EjecPorNombre:    row[ColLockEjecNombre],
		EjecPorCargo:     row[ColLockEjecCargo],
		NPTW:             row[ColLockNPTW],
		Fecha:            row[ColLockFecha],
		Descripcion:      row[ColLockDescripcion],
		Responsable:      row[ColLockResponsable],
		Estado:           row[ColLockEstado],
		Valor:            valor,
	}
	if r.NoCandado == "" {
		r.NoCandado = row[ColLockID]
	}
	return r
}
