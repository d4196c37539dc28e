package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GermanFOSSIL/candapp/internal/candapp/entity"
)

func simopsFixture(id string) entity.SimOpsRecord {
	return entity.SimOpsRecord{
		SimOpsID:    id,
		Descripcion: "Izaje sobre línea energizada",
		Area:        "Planta Compresión",
		PTWs:        "PTW-12, PTW-345",
		FechaInicio: "2024-04-01",
		FechaFin:    "2024-04-03",
		Encargado:   "Juan Pérez",
		Estado:      entity.SimOpsEstadoPlanificado,
		Riesgos:     "Caída de carga",
		Acciones:    "Vigía, perímetro señalizado",
	}
}

func emptySimOpsStore(t *testing.T) *SimOpsStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "simops_data.xlsx")
	require.NoError(t, saveWorkbook(path, entity.SimOpsColumns, nil))
	s, err := OpenSimOpsStore(path)
	require.NoError(t, err)
	return s
}

func TestOpenSimOpsStorePrepopulates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simops_data.xlsx")
	s, err := OpenSimOpsStore(path)
	require.NoError(t, err)
	assert.Len(t, s.List(), 5)
}

func TestSimOpsRoundTrip(t *testing.T) {
	s := emptySimOpsStore(t)
	_, err := s.Append(simopsFixture("SIMOPS-001"))
	require.NoError(t, err)

	edited := simopsFixture("SIMOPS-001")
	edited.Estado = entity.SimOpsEstadoEnEjecucion
	_, err = s.Update(0, edited)
	require.NoError(t, err)

	reloaded, err := OpenSimOpsStore(s.path)
	require.NoError(t, err)
	records := reloaded.List()
	require.Len(t, records, 1)
	assert.Equal(t, entity.SimOpsEstadoEnEjecucion, records[0].Estado)
	assert.Equal(t, "Acciones_Mitigación", entity.ColSimOpsAcciones)
	assert.Equal(t, "Vigía, perímetro señalizado", records[0].Acciones)
}

func TestSimOpsStaleSelection(t *testing.T) {
	s := emptySimOpsStore(t)
	_, err := s.Update(0, simopsFixture("SIMOPS-001"))
	assert.ErrorIs(t, err, ErrStaleSelection)
	assert.ErrorIs(t, s.Delete(0), ErrStaleSelection)
}

func TestItembookFind(t *testing.T) {
	book := NewItembook()
	items := book.List()
	require.Len(t, items, 40)

	item, err := book.Find("ITM-003")
	require.NoError(t, err)
	assert.Equal(t, "Proyecto A", item.Proyecto)

	item, err = book.Find("ITM-040")
	require.NoError(t, err)
	assert.Equal(t, "Proyecto B", item.Proyecto)

	_, err = book.Find("ITM-999")
	assert.ErrorIs(t, err, ErrStaleSelection)
}
