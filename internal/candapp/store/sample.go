package store

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/GermanFOSSIL/candapp/internal/candapp/entity"
)

// Demo data used to prepopulate a workbook that does not exist yet, so a
// fresh install has something to show.

var (
	sampleAreas    = []string{"SHELTER LV", "Sala Compresores", "Tanques", "Area Baterías"}
	sampleTableros = []string{"UPS", "UPS DISTRIBUTION BOARD", "Q74", "Q43"}
	sampleKKS      = []string{"Q73", "Q74", "Q43", "Q99"}
	sampleLideres  = []string{"Monsu Ariel", "Avecilla Miguel", "Scimeca Gabriel"}
	sampleEjecs    = []string{"Perez Martin", "Sanchez Pedro", "Lopez Carlos"}
	sampleCargos   = []string{"Supervisor", "Operador", "Técnico"}

	sampleSimOpsAreas = []string{"Planta Compresión", "Tanques de Almacenamiento", "Sala de Control"}
	sampleEncargados  = []string{"Juan Pérez", "María García", "Pedro Rodríguez"}
)

// SampleLocks generates n demo LOTO records. The store derives the QR column
// before the first flush.
func SampleLocks(n int) []entity.LockRecord {
	today := time.Now()
	records := make([]entity.LockRecord, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("Rojo%d", i+1)
		lider := pick(sampleLideres)
		fecha := today.AddDate(0, 0, -rand.Intn(61)).Format(entity.DateLayout)
		estado := entity.LockEstadoActivo
		if rand.Intn(2) == 1 {
			estado = entity.LockEstadoInactivo
		}
		records = append(records, entity.LockRecord{
			NoCandado:        id,
			Area:             pick(sampleAreas),
			TableroEquipo:    pick(sampleTableros),
			KKS:              pick(sampleKKS),
			TipoBloqueo:      fmt.Sprintf("CANDADO %d", i+1),
			LiderAutorizador: lider,
			EjecPorNombre:    pick(sampleEjecs),
			EjecPorCargo:     pick(sampleCargos),
			NPTW:             fmt.Sprintf("%d", rand.Intn(10)+1),
			Fecha:            fecha,
			Descripcion:      fmt.Sprintf("Descripción %d", i+1),
			Responsable:      lider,
			Estado:           estado,
			Valor:            rand.Intn(301),
		})
	}
	return records
}

// SampleSimOps generates n demo SIMOPS records.
func SampleSimOps(n int) []entity.SimOpsRecord {
	today := time.Now()
	records := make([]entity.SimOpsRecord, 0, n)
	for i := 0; i < n; i++ {
		inicio := today.AddDate(0, 0, rand.Intn(21)-10)
		fin := inicio.AddDate(0, 0, rand.Intn(5)+1)
		records = append(records, entity.SimOpsRecord{
			SimOpsID:    fmt.Sprintf("SIMOPS-%03d", i+1),
			Descripcion: fmt.Sprintf("Operación Simultánea Ejemplo %d", i+1),
			Area:        pick(sampleSimOpsAreas),
			PTWs:        fmt.Sprintf("PTW-%d, PTW-%d", rand.Intn(90)+10, rand.Intn(900)+100),
			FechaInicio: inicio.Format(entity.DateLayout),
			FechaFin:    fin.Format(entity.DateLayout),
			Encargado:   pick(sampleEncargados),
			Estado:      pick(entity.SimOpsEstados),
			Riesgos:     "Riesgo de incendio, Exposición a químicos.",
			Acciones:    "Uso de EPP, Aislamiento de energía, Vigilancia",
		})
	}
	return records
}

// GenerateItembook builds the demo pre-commissioning item list, half Proyecto
// A and half Proyecto B.
func GenerateItembook() []entity.ItembookItem {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	items := make([]entity.ItembookItem, 0, 40)
	for i := 0; i < 40; i++ {
		proyecto := "Proyecto A"
		if i >= 20 {
			proyecto = "Proyecto B"
		}
		suffix := string([]byte{letters[rand.Intn(26)], letters[rand.Intn(26)]})
		items = append(items, entity.ItembookItem{
			Proyecto:    proyecto,
			ItemID:      fmt.Sprintf("ITM-%03d", i+1),
			Descripcion: "Item Ejemplo " + suffix,
		})
	}
	return items
}

func pick(values []string) string {
	return values[rand.Intn(len(values))]
}
