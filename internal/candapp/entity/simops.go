package entity

// SIMOPS states as persisted in the workbook.
const (
	SimOpsEstadoPlanificado = "Planificado"
	SimOpsEstadoEnEjecucion = "En Ejecución"
	SimOpsEstadoFinalizado  = "Finalizado"
	SimOpsEstadoSuspendido  = "Suspendido"
)

// SimOpsEstados is the allowed state set, in display order.
var SimOpsEstados = []string{
	SimOpsEstadoPlanificado,
	SimOpsEstadoEnEjecucion,
	SimOpsEstadoFinalizado,
	SimOpsEstadoSuspendido,
}

// SIMOPS workbook column headers.
const (
	ColSimOpsID          = "SIMOPS_ID"
	ColSimOpsDescripcion = "Descripción"
	ColSimOpsArea        = "Área"
	ColSimOpsPTWs        = "PTWs_Involucrados"
	ColSimOpsFechaInicio = "Fecha_Inicio"
	ColSimOpsFechaFin    = "Fecha_Fin"
	ColSimOpsEncargado   = "Encargado"
	ColSimOpsEstado      = "Estado"
	ColSimOpsRiesgos     = "Riesgos"
	ColSimOpsAcciones    = "Acciones_Mitigación"
)

// SimOpsColumns is the mandatory column set of the SIMOPS workbook, in order.
var SimOpsColumns = []string{
	ColSimOpsID, ColSimOpsDescripcion, ColSimOpsArea, ColSimOpsPTWs,
	ColSimOpsFechaInicio, ColSimOpsFechaFin, ColSimOpsEncargado,
	ColSimOpsEstado, ColSimOpsRiesgos, ColSimOpsAcciones,
}

// SimOpsRecord 单个SIMOPS同时作业协调登记
type SimOpsRecord struct {
	SimOpsID    string `json:"simops_id"`
	Descripcion string `json:"descripcion"`
	Area        string `json:"area"`
	PTWs        string `json:"ptws_involucrados"`
	FechaInicio string `json:"fecha_inicio"`
	FechaFin    string `json:"fecha_fin"`
	Encargado   string `json:"encargado"`
	Estado      string `json:"estado"`
	Riesgos     string `json:"riesgos"`
	Acciones    string `json:"acciones_mitigacion"`
}

// PrimaryKey returns the record's display identifier.
func (r SimOpsRecord) PrimaryKey() string {
	return r.SimOpsID
}

// Row maps all columns to their cell values.
func (r SimOpsRecord) Row() map[string]string {
	return map[string]string{
		ColSimOpsID:          r.SimOpsID,
		ColSimOpsDescripcion: r.Descripcion,
		ColSimOpsArea:        r.Area,
		ColSimOpsPTWs:        r.PTWs,
		ColSimOpsFechaInicio: r.FechaInicio,
		ColSimOpsFechaFin:    r.FechaFin,
		ColSimOpsEncargado:   r.Encargado,
		ColSimOpsEstado:      r.Estado,
		ColSimOpsRiesgos:     r.Riesgos,
		ColSimOpsAcciones:    r.Acciones,
	}
}

// SimOpsFromRow builds a record from workbook cells.
func SimOpsFromRow(row map[string]string) SimOpsRecord {
	return SimOpsRecord{
		SimOpsID:    row[ColSimOpsID],
		Descripcion: row[ColSimOpsDescripcion],
		Area:        row[ColSimOpsArea],
		PTWs:        row[ColSimOpsPTWs],
		FechaInicio: row[ColSimOpsFechaInicio],
		FechaFin:    row[ColSimOpsFechaFin],
		Encargado:   row[ColSimOpsEncargado],
		Estado:      row[ColSimOpsEstado],
		Riesgos:     row[ColSimOpsRiesgos],
		Acciones:    row[ColSimOpsAcciones],
	}
}
