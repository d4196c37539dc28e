package service

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/GermanFOSSIL/candapp/internal/candapp/entity"
	"github.com/GermanFOSSIL/candapp/internal/candapp/export"
	"github.com/GermanFOSSIL/candapp/internal/candapp/render"
	"github.com/GermanFOSSIL/candapp/internal/candapp/store"
	"github.com/GermanFOSSIL/candapp/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:            "test-secret",
			AccessTokenExpire: time.Hour,
			Issuer:            "candapp",
		},
	}
}

func testRenderer() *render.Renderer {
	return render.New("missing-logo.png", "missing-icon.png")
}

func newLockService(t *testing.T) *LockService {
	t.Helper()
	st, err := store.OpenLockStore(filepath.Join(t.TempDir(), "candados_data.xlsx"))
	require.NoError(t, err)
	r := testRenderer()
	return NewLockService(st, r, export.New(r))
}

func newSimOpsService(t *testing.T) *SimOpsService {
	t.Helper()
	st, err := store.OpenSimOpsStore(filepath.Join(t.TempDir(), "simops_data.xlsx"))
	require.NoError(t, err)
	return NewSimOpsService(st, export.New(testRenderer()))
}

func newFormService(t *testing.T) *FormService {
	t.Helper()
	st, err := store.OpenLockStore(filepath.Join(t.TempDir(), "candados_data.xlsx"))
	require.NoError(t, err)
	return NewFormService(testRenderer(), st, "http://miapp.com")
}

func schemaWorkbook(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	header := []interface{}{"field_type", "label", "options", "default"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestAuthenticate(t *testing.T) {
	svc := NewAuthService(testConfig())

	u, err := svc.Authenticate("admin", "admin")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, u.Role)

	_, err = svc.Authenticate("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate("nadie", "x")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGenerateTokenCarriesRole(t *testing.T) {
	svc := NewAuthService(testConfig())
	u, err := svc.Authenticate("operador", "123")
	require.NoError(t, err)

	res, err := svc.GenerateToken(u)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), res.ExpiresIn)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(res.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "operador", claims["role"])
	assert.Equal(t, "operador", claims["uid"])
	assert.Equal(t, "candapp", claims["iss"])
}

func TestCreateUser(t *testing.T) {
	svc := NewAuthService(testConfig())

	u, err := svc.CreateUser("nuevo", "clave", entity.RoleOperador)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleOperador, u.Role)

	_, err = svc.CreateUser("nuevo", "otra", entity.RoleAdmin)
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = svc.CreateUser("raro", "clave", "superuser")
	assert.ErrorIs(t, err, ErrInvalidRole)

	users := svc.ListUsers()
	assert.Len(t, users, len(entity.DefaultUsers())+1)
}

func TestLockCreateDefaults(t *testing.T) {
	svc := newLockService(t)

	rec, err := svc.Create(entity.LockRecord{NoCandado: "Rojo99", Area: "Tanques"})
	require.NoError(t, err)
	assert.Equal(t, entity.LockEstadoActivo, rec.Estado)
	assert.Equal(t, entity.Today(), rec.Fecha)
	assert.NotEmpty(t, rec.QRBytes)

	_, err = svc.Create(entity.LockRecord{Area: "Tanques"})
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestLockCardFile(t *testing.T) {
	svc := newLockService(t)
	rec, err := svc.Get(0)
	require.NoError(t, err)

	file, err := svc.Card(0)
	require.NoError(t, err)
	assert.Equal(t, "tarjeta_"+rec.NoCandado+".pdf", file.Name)
	assert.Equal(t, "application/pdf", file.MIME)
	assert.NotEmpty(t, file.Data)

	_, err = svc.Card(999)
	assert.ErrorIs(t, err, store.ErrStaleSelection)
}

func TestLockExports(t *testing.T) {
	svc := newLockService(t)

	xl, err := svc.ExportExcel()
	require.NoError(t, err)
	assert.Equal(t, "reporte_candados.xlsx", xl.Name)

	f, err := excelize.OpenReader(bytes.NewReader(xl.Data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("ReporteCandados")
	require.NoError(t, err)
	assert.Len(t, rows, len(svc.List())+1)

	pdf, err := svc.ExportPDF(export.FilterAll)
	require.NoError(t, err)
	assert.Equal(t, "candados.pdf", pdf.Name)
	assert.NotEmpty(t, pdf.Data)
}

func TestLockSummarize(t *testing.T) {
	svc := newLockService(t)

	_, err := svc.Create(entity.LockRecord{
		NoCandado: "Alerta1",
		Estado:    entity.LockEstadoActivo,
		Fecha:     "2024-03-01",
		Valor:     500,
	})
	require.NoError(t, err)

	sum := svc.Summarize()
	records := svc.List()
	assert.Equal(t, len(records), sum.Total)

	activos := 0
	alertas := 0
	for _, rec := range records {
		if rec.Estado == entity.LockEstadoActivo {
			activos++
		}
		if rec.Valor > AlertValorThreshold {
			alertas++
		}
	}
	assert.Equal(t, activos, sum.Activos)
	assert.Equal(t, alertas, sum.Alertas)
	assert.GreaterOrEqual(t, alertas, 1)
	assert.Len(t, sum.Recientes, len(records))
	for i := 1; i < len(sum.Recientes); i++ {
		assert.GreaterOrEqual(t, sum.Recientes[i-1].Fecha, sum.Recientes[i].Fecha)
	}
}

func TestSimOpsEstadoValidation(t *testing.T) {
	svc := newSimOpsService(t)

	rec, err := svc.Create(entity.SimOpsRecord{SimOpsID: "SIMOPS-100"})
	require.NoError(t, err)
	assert.Equal(t, entity.SimOpsEstadoPlanificado, rec.Estado)

	_, err = svc.Create(entity.SimOpsRecord{SimOpsID: "SIMOPS-101", Estado: "Pausado"})
	assert.ErrorIs(t, err, ErrInvalidEstado)

	_, err = svc.Create(entity.SimOpsRecord{})
	assert.ErrorIs(t, err, ErrMissingSimOpsID)
}

func TestSimOpsExports(t *testing.T) {
	svc := newSimOpsService(t)

	xl, err := svc.ExportExcel()
	require.NoError(t, err)
	assert.Equal(t, "reporte_simops.xlsx", xl.Name)

	pdf, err := svc.ExportPDF()
	require.NoError(t, err)
	assert.Equal(t, "SIMOPS.pdf", pdf.Name)
	assert.NotEmpty(t, pdf.Data)
}

func TestFormServiceNeedsSchema(t *testing.T) {
	svc := newFormService(t)

	_, err := svc.Schema()
	assert.ErrorIs(t, err, ErrNoSchema)
	_, err = svc.RenderSubmission(nil)
	assert.ErrorIs(t, err, ErrNoSchema)
}

func TestFormServiceRenderSubmission(t *testing.T) {
	svc := newFormService(t)

	fields, err := svc.LoadSchema(schemaWorkbook(t, [][]interface{}{
		{"select", "Estado general", "OK, N/A, PunchList", "Bogus"},
		{"text", "Comentarios", "", "Sin novedades"},
	}))
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "OK", fields[0].Default)

	file, err := svc.RenderSubmission(map[string]string{"Estado general": "N/A"})
	require.NoError(t, err)
	assert.Equal(t, "formulario_generado.pdf", file.Name)
	assert.NotEmpty(t, file.Data)
}

func TestFormServiceRegisterDynamic(t *testing.T) {
	st, err := store.OpenLockStore(filepath.Join(t.TempDir(), "candados_data.xlsx"))
	require.NoError(t, err)
	svc := NewFormService(testRenderer(), st, "http://miapp.com")

	_, err = svc.LoadSchema(schemaWorkbook(t, [][]interface{}{
		{"text", "NoCandado", "", ""},
		{"text", "Area", "", ""},
	}))
	require.NoError(t, err)

	before := len(st.List())
	rec, err := svc.RegisterDynamic(map[string]string{"NoCandado": "Rojo7", "Area": "Tanques"})
	require.NoError(t, err)
	assert.Regexp(t, `^CD-[0-9a-f]{8}$`, rec.ID)
	assert.Equal(t, "http://miapp.com/loto?id="+rec.ID, rec.Link)
	assert.Equal(t, "candado_"+rec.ID+".pdf", rec.File.Name)
	assert.NotEmpty(t, rec.File.Data)

	records := st.List()
	require.Len(t, records, before+1)
	appended := records[len(records)-1]
	assert.Equal(t, "Rojo7", appended.NoCandado)
	assert.Equal(t, "Tanques", appended.Area)
	assert.Equal(t, rec.File.Data, appended.PDFAdjunto)
}

func TestITRService(t *testing.T) {
	svc := NewITRService(store.NewItembook(), testRenderer())

	items := svc.List()
	require.Len(t, items, 40)

	file, err := svc.GeneratePDF(items[0].ItemID, render.ITRForm{
		Equipo:      "MCC-01",
		Subsistema:  "SS-12",
		Responsable: "Monsu Ariel",
		Comentarios: "Sin observaciones.",
	})
	require.NoError(t, err)
	assert.Equal(t, "ITR_"+items[0].ItemID+".pdf", file.Name)

	_, err = svc.GeneratePDF("ITM-999", render.ITRForm{})
	assert.ErrorIs(t, err, store.ErrStaleSelection)
}
