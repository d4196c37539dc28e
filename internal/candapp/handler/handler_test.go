package handler

import (
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/GermanFOSSIL/candapp/internal/candapp/export"
	"github.com/GermanFOSSIL/candapp/internal/candapp/render"
	"github.com/GermanFOSSIL/candapp/internal/candapp/service"
	"github.com/GermanFOSSIL/candapp/internal/candapp/store"
	"github.com/GermanFOSSIL/candapp/internal/candapp/testutil"
	"github.com/GermanFOSSIL/candapp/internal/config"
	"github.com/GermanFOSSIL/candapp/internal/middleware"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{PublicURL: "http://miapp.com"},
		JWT: config.JWTConfig{
			Secret:            testutil.JWTSecret,
			AccessTokenExpire: time.Hour,
			Issuer:            "candapp",
		},
	}
}

// setupTest wires the full API surface against temp workbooks.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	cfg := testConfig()
	router := testutil.SetupRouter()

	lockStore, err := store.OpenLockStore(filepath.Join(t.TempDir(), "candados_data.xlsx"))
	if err != nil {
		t.Fatalf("open lock store: %v", err)
	}
	simOpsStore, err := store.OpenSimOpsStore(filepath.Join(t.TempDir(), "simops_data.xlsx"))
	if err != nil {
		t.Fatalf("open simops store: %v", err)
	}

	renderer := render.New("missing-logo.png", "missing-icon.png")
	exporter := export.New(renderer)

	h := NewHandlers(
		service.NewAuthService(cfg),
		service.NewLockService(lockStore, renderer, exporter),
		service.NewSimOpsService(simOpsStore, exporter),
		service.NewFormService(renderer, lockStore, cfg.Server.PublicURL),
		service.NewITRService(store.NewItembook(), renderer),
		cfg,
	)

	router.POST("/api/v1/auth/login", h.Auth.Login)

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/auth/me", h.Auth.Me)

	users := api.Group("/users", middleware.RequireRole("admin"))
	users.GET("", h.Auth.ListUsers)
	users.POST("", h.Auth.CreateUser)

	locks := api.Group("/locks")
	locks.GET("", h.Lock.List)
	locks.GET("/summary", h.Lock.Summary)
	locks.GET("/export", middleware.RequireRole("admin", "operador"), h.Lock.Export)
	locks.GET("/:index", h.Lock.Get)
	locks.GET("/:index/card", h.Lock.Card)
	locks.POST("", middleware.RequireRole("admin", "operador"), h.Lock.Create)
	locks.PUT("/:index", middleware.RequireRole("admin"), h.Lock.Update)
	locks.DELETE("/:index", middleware.RequireRole("admin"), h.Lock.Delete)

	simops := api.Group("/simops")
	simops.GET("", h.SimOps.List)
	simops.GET("/export", middleware.RequireRole("admin", "operador"), h.SimOps.Export)
	simops.GET("/:index", h.SimOps.Get)
	simops.POST("", middleware.RequireRole("admin", "operador"), h.SimOps.Create)
	simops.PUT("/:index", middleware.RequireRole("admin"), h.SimOps.Update)
	simops.DELETE("/:index", middleware.RequireRole("admin"), h.SimOps.Delete)

	forms := api.Group("/forms")
	forms.GET("/schema", h.Form.Schema)
	forms.POST("/schema", h.Form.UploadSchema)
	forms.POST("/render", h.Form.Render)
	forms.POST("/register", middleware.RequireRole("admin", "operador"), h.Form.Register)

	itembook := api.Group("/itembook")
	itembook.GET("", h.ITR.List)
	itembook.POST("/:itemId/itr", h.ITR.Generate)

	return router
}

func schemaWorkbookBytes(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	header := []interface{}{"field_type", "label", "options", "default"}
	if err := f.SetSheetRow("Sheet1", "A1", &header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	row := []interface{}{"select", "Estado general", "OK, N/A, PunchList", "Bogus"}
	if err := f.SetSheetRow("Sheet1", "A2", &row); err != nil {
		t.Fatalf("write row: %v", err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("serialize workbook: %v", err)
	}
	return buf.Bytes()
}

func itemCount(resp map[string]interface{}) int {
	data, _ := resp["data"].(map[string]interface{})
	items, _ := data["items"].([]interface{})
	return len(items)
}

func TestLogin(t *testing.T) {
	router := setupTest(t)

	w := testutil.DoRequest(router, "POST", "/api/v1/auth/login",
		map[string]string{"username": "admin", "password": "admin"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["access_token"] == "" {
		t.Error("Expected an access token")
	}
	if data["role"] != "admin" {
		t.Errorf("Expected role admin, got %v", data["role"])
	}

	w = testutil.DoRequest(router, "POST", "/api/v1/auth/login",
		map[string]string{"username": "admin", "password": "nope"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d", w.Code)
	}
}

func TestIssuedTokenWorksAgainstAPI(t *testing.T) {
	router := setupTest(t)

	w := testutil.DoRequest(router, "POST", "/api/v1/auth/login",
		map[string]string{"username": "operador", "password": "123"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d", w.Code)
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	token := data["access_token"].(string)

	w = testutil.DoRequest(router, "GET", "/api/v1/locks", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 with issued token, got %d", w.Code)
	}
}

func TestUnauthenticatedRejected(t *testing.T) {
	router := setupTest(t)

	w := testutil.DoRequest(router, "GET", "/api/v1/locks", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d", w.Code)
	}
}

func TestUserRoutesAdminOnly(t *testing.T) {
	router := setupTest(t)

	w := testutil.DoRequest(router, "GET", "/api/v1/users", nil, testutil.OperadorToken())
	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for operador, got %d", w.Code)
	}

	w = testutil.DoRequest(router, "GET", "/api/v1/users", nil, testutil.AdminToken())
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for admin, got %d", w.Code)
	}

	w = testutil.DoRequest(router, "POST", "/api/v1/users",
		map[string]string{"username": "nuevo", "password": "clave", "role": "operador"},
		testutil.AdminToken())
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(router, "POST", "/api/v1/users",
		map[string]string{"username": "nuevo", "password": "otra", "role": "admin"},
		testutil.AdminToken())
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected 409 for duplicate user, got %d", w.Code)
	}
}

func TestLockCRUD(t *testing.T) {
	router := setupTest(t)
	admin := testutil.AdminToken()

	w := testutil.DoRequest(router, "GET", "/api/v1/locks", nil, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	before := itemCount(testutil.ParseResponse(w))
	if before != 30 {
		t.Fatalf("Expected 30 prepopulated locks, got %d", before)
	}

	// Operator may create
	w = testutil.DoRequest(router, "POST", "/api/v1/locks",
		map[string]interface{}{"no_candado": "Rojo99", "area": "Tanques"},
		testutil.OperadorToken())
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Guest may not
	w = testutil.DoRequest(router, "POST", "/api/v1/locks",
		map[string]interface{}{"no_candado": "Rojo100"}, testutil.InvitadoToken())
	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for invitado, got %d", w.Code)
	}

	// Missing key
	w = testutil.DoRequest(router, "POST", "/api/v1/locks",
		map[string]interface{}{"area": "Tanques"}, admin)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for missing NoCandado, got %d", w.Code)
	}

	// Operator may not edit
	w = testutil.DoRequest(router, "PUT", "/api/v1/locks/0",
		map[string]interface{}{"no_candado": "Rojo99"}, testutil.OperadorToken())
	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for operador edit, got %d", w.Code)
	}

	// Admin edit and delete
	w = testutil.DoRequest(router, "PUT", "/api/v1/locks/30",
		map[string]interface{}{"no_candado": "Rojo99", "area": "Calderas", "estado": "Inactivo"}, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(router, "DELETE", "/api/v1/locks/30", nil, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	// Stale selection after delete
	w = testutil.DoRequest(router, "DELETE", "/api/v1/locks/30", nil, admin)
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected 409 for stale index, got %d", w.Code)
	}
}

func TestLockCardDownload(t *testing.T) {
	router := setupTest(t)

	w := testutil.DoRequest(router, "GET", "/api/v1/locks/0/card", nil, testutil.AdminToken())
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Expected application/pdf, got %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "tarjeta_") {
		t.Errorf("Expected tarjeta filename, got %s", cd)
	}

	w = testutil.DoRequest(router, "GET", "/api/v1/locks/999/card", nil, testutil.AdminToken())
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected 409 for stale index, got %d", w.Code)
	}
}

func TestLockExportFormats(t *testing.T) {
	router := setupTest(t)
	admin := testutil.AdminToken()

	w := testutil.DoRequest(router, "GET", "/api/v1/locks/export?format=excel", nil, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("Expected xlsx content type, got %s", ct)
	}

	w = testutil.DoRequest(router, "GET", "/api/v1/locks/export?format=pdf", nil, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Expected application/pdf, got %s", ct)
	}

	w = testutil.DoRequest(router, "GET", "/api/v1/locks/export?format=pdf&id=Inexistente", nil, admin)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 for empty filter result, got %d", w.Code)
	}

	w = testutil.DoRequest(router, "GET", "/api/v1/locks/export?format=csv", nil, admin)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for unknown format, got %d", w.Code)
	}

	w = testutil.DoRequest(router, "GET", "/api/v1/locks/export", nil, testutil.InvitadoToken())
	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for invitado export, got %d", w.Code)
	}
}

func TestAuthMe(t *testing.T) {
	router := setupTest(t)

	w := testutil.DoRequest(router, "GET", "/api/v1/auth/me", nil, testutil.OperadorToken())
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["username"] != "operador" || data["role"] != "operador" {
		t.Errorf("Unexpected identity: %v", data)
	}
}

func TestLockSummary(t *testing.T) {
	router := setupTest(t)

	w := testutil.DoRequest(router, "GET", "/api/v1/locks/summary", nil, testutil.InvitadoToken())
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["total"].(float64) != 30 {
		t.Errorf("Expected total 30, got %v", data["total"])
	}
	for _, key := range []string{"activos", "alertas", "recientes"} {
		if _, ok := data[key]; !ok {
			t.Errorf("Expected summary key %s", key)
		}
	}
}

func TestSimOpsCRUDAndExport(t *testing.T) {
	router := setupTest(t)
	admin := testutil.AdminToken()

	w := testutil.DoRequest(router, "GET", "/api/v1/simops", nil, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if n := itemCount(testutil.ParseResponse(w)); n != 5 {
		t.Fatalf("Expected 5 prepopulated SIMOPS, got %d", n)
	}

	w = testutil.DoRequest(router, "POST", "/api/v1/simops",
		map[string]interface{}{"descripcion": "sin id"}, admin)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for missing SIMOPS_ID, got %d", w.Code)
	}

	w = testutil.DoRequest(router, "POST", "/api/v1/simops",
		map[string]interface{}{"simops_id": "SIMOPS-100", "descripcion": "Izaje", "estado": "Planificado"}, admin)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(router, "GET", "/api/v1/simops/export?format=pdf", nil, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "SIMOPS.pdf") {
		t.Errorf("Expected SIMOPS.pdf filename, got %s", cd)
	}
}

func TestFormWorkflow(t *testing.T) {
	router := setupTest(t)
	admin := testutil.AdminToken()

	// No schema yet
	w := testutil.DoRequest(router, "GET", "/api/v1/forms/schema", nil, admin)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 before upload, got %d", w.Code)
	}

	// Upload
	w = testutil.DoUpload(router, "POST", "/api/v1/forms/schema", "file",
		"form_definition.xlsx", schemaWorkbookBytes(t), admin)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	fields := data["fields"].([]interface{})
	if len(fields) != 1 {
		t.Fatalf("Expected 1 field, got %d", len(fields))
	}
	field := fields[0].(map[string]interface{})
	if field["default"] != "OK" {
		t.Errorf("Expected default OK for out-of-options default, got %v", field["default"])
	}

	// Render
	w = testutil.DoRequest(router, "POST", "/api/v1/forms/render",
		map[string]interface{}{"values": map[string]string{"Estado general": "N/A"}}, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Expected application/pdf, got %s", ct)
	}

	// Register requires operador or admin
	w = testutil.DoRequest(router, "POST", "/api/v1/forms/register",
		map[string]interface{}{"values": map[string]string{}}, testutil.InvitadoToken())
	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for invitado, got %d", w.Code)
	}

	w = testutil.DoRequest(router, "POST", "/api/v1/forms/register",
		map[string]interface{}{"values": map[string]string{"Estado general": "OK"}}, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if id := w.Header().Get("X-Record-ID"); !strings.HasPrefix(id, "CD-") {
		t.Errorf("Expected CD- record id, got %s", id)
	}
	if link := w.Header().Get("X-Record-Link"); !strings.Contains(link, "/loto?id=CD-") {
		t.Errorf("Expected detail link, got %s", link)
	}

	// The registration also lands in the lock register
	w = testutil.DoRequest(router, "GET", "/api/v1/locks", nil, admin)
	if n := itemCount(testutil.ParseResponse(w)); n != 31 {
		t.Errorf("Expected 31 locks after dynamic registration, got %d", n)
	}
}

func TestFormUploadRejectsGarbage(t *testing.T) {
	router := setupTest(t)

	w := testutil.DoUpload(router, "POST", "/api/v1/forms/schema", "file",
		"notas.xlsx", []byte("esto no es un xlsx"), testutil.AdminToken())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for non-workbook upload, got %d", w.Code)
	}
}

func TestITREndpoints(t *testing.T) {
	router := setupTest(t)
	admin := testutil.AdminToken()

	w := testutil.DoRequest(router, "GET", "/api/v1/itembook", nil, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if n := itemCount(testutil.ParseResponse(w)); n != 40 {
		t.Fatalf("Expected 40 items, got %d", n)
	}

	w = testutil.DoRequest(router, "POST", "/api/v1/itembook/ITM-001/itr",
		map[string]string{"equipo": "MCC-01", "subsistema": "SS-12", "responsable": "Monsu Ariel", "comentarios": "OK"},
		admin)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "ITR_ITM-001.pdf") {
		t.Errorf("Expected ITR filename, got %s", cd)
	}

	w = testutil.DoRequest(router, "POST", "/api/v1/itembook/ITM-999/itr",
		map[string]string{}, admin)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 for unknown item, got %d", w.Code)
	}
}
