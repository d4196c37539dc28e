// Command formgen writes the cable-inspection form definition workbook used
// by the dynamic form interpreter.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/xuri/excelize/v2"
)

const checkOptions = "OK, N/A, PunchList"

type row struct {
	FieldType string
	Label     string
	Options   string
	Default   string
}

func definition() []row {
	textLabels := []string{
		"N° de Tag",
		"Descripción del Equipo",
		"N° de Sistema",
		"N° de Subsistema",
		"Ubicación",
		"Ficha Técnica",
		"Tipo de Referencia",
		"Voltaje",
		"Tipo",
		"Core",
		"Tamaño",
		"Desde",
		"Hasta",
		"Marca",
		"Modelo",
		"N° de Serie",
		"Fecha de Vencimiento",
	}
	checks := []string{
		"1) Placa de identificación / etiquetado / etiquetas de identificación correctos",
		"2) Verificar ordenamiento y precintado de partes de conexión interna",
		"3) Cable protegido mecánicamente",
		"4) Terminación correcta",
		"5) Verificar continuidad (Probar todos los conductores, incluso la pantalla)",
		"6) Prensacables / tuercas de seguridad / lubricante aprobado colocados",
		"7) Resistencia de aislamiento (250 Voltios Megger Min., 100MΩ)",
		"8) Armadura – tierra MΩ",
		"9) Blindaje total – tierra MΩ",
		"10) Todos los conductores – tierra MΩ",
		"11) Cada par a blindaje MΩ",
		"12) Conductores par MΩ",
		"13) Blindaje a blindaje MΩ",
		"14) Radio de curvatura satisfactorio",
		"15) Puesta a tierra según especificaciones",
		"16) Pantalla correcta",
		"17) Confirmar hilos vacante y pantallas puestas a tierra según especificaciones",
	}

	rows := make([]row, 0, len(textLabels)+len(checks)+1)
	for _, label := range textLabels {
		rows = append(rows, row{FieldType: "text", Label: label})
	}
	for _, label := range checks {
		rows = append(rows, row{FieldType: "select", Label: label, Options: checkOptions, Default: "OK"})
	}
	rows = append(rows, row{FieldType: "text", Label: "Comentarios / Observaciones"})
	return rows
}

func main() {
	out := "form_definition.xlsx"
	if len(os.Args) > 1 {
		out = os.Args[1]
	}

	f := excelize.NewFile()
	defer f.Close()

	header := []interface{}{"field_type", "label", "options", "default"}
	if err := f.SetSheetRow("Sheet1", "A1", &header); err != nil {
		log.Fatalf("write header: %v", err)
	}

	for i, r := range definition() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			log.Fatalf("cell name: %v", err)
		}
		cells := []interface{}{r.FieldType, r.Label, r.Options, r.Default}
		if err := f.SetSheetRow("Sheet1", cell, &cells); err != nil {
			log.Fatalf("write row %d: %v", i, err)
		}
	}

	if err := f.SaveAs(out); err != nil {
		log.Fatalf("save %s: %v", out, err)
	}
	fmt.Printf("Archivo '%s' creado exitosamente.\n", out)
}
