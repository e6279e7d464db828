package router

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/mfgconsole/internal/config"
	"github.com/mamadbah2/mfgconsole/internal/server/handlers"
	"github.com/mamadbah2/mfgconsole/internal/service/forms"
	"github.com/mamadbah2/mfgconsole/internal/service/reporting"
	"github.com/mamadbah2/mfgconsole/internal/service/submission"
	"github.com/mamadbah2/mfgconsole/pkg/clients/backend"
)

type fakeManufacturingBackend struct {
	mu    sync.Mutex
	paths []string
}

func (b *fakeManufacturingBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.paths = append(b.paths, r.Method+" "+r.URL.Path)
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/qc-parameters":
		_, _ = io.WriteString(w, `[{"_id":"p1","parameterName":"Viscosity","minRange":"10","maxRange":20}]`)
	case "/newQualityCheck":
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"qcId":"qc-9"}`)
	case "/newQualityCheckParameterResult":
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{}`)
	case "/qualityChecks":
		_, _ = io.WriteString(w, `[{"_id":"qc-9","materialName":"Resin-A","qualityStatus":"Accepted"}]`)
	case "/removeQualityCheck":
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"Quality check not found"}`)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (b *fakeManufacturingBackend) calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.paths...)
}

func newTestEngine(t *testing.T) (*gin.Engine, *fakeManufacturingBackend) {
	t.Helper()
	fake := &fakeManufacturingBackend{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	api := backend.NewClient(config.BackendConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})
	formsSvc := forms.NewService(api, nil)
	submitter := submission.NewService(formsSvc, api, nil, nil, nil)

	engine := New(Handlers{
		QualityForms:    handlers.NewQualityFormHandler(formsSvc, submitter, nil),
		ProductionForms: handlers.NewProductionFormHandler(formsSvc, submitter, nil),
		QualityChecks:   handlers.NewQualityCheckHandler(api, submitter, nil),
		Reports:         handlers.NewReportHandler(reporting.NewService(nil, nil, nil), nil),
	}, nil)
	return engine, fake
}

func do(t *testing.T, engine *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var decoded map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	}
	return rec, decoded
}

func TestHealthz(t *testing.T) {
	engine, _ := newTestEngine(t)
	rec, body := do(t, engine, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestQualityCheckFlow(t *testing.T) {
	engine, fake := newTestEngine(t)

	rec, body := do(t, engine, http.MethodPost, "/api/forms/quality-checks",
		`{"batches":[{"materialName":"Resin-A","materialCode":"RA-1","batchNumber":"B100"}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := body["id"].(string)
	base := "/api/forms/quality-checks/" + id

	rec, _ = do(t, engine, http.MethodPost, base+"/submit", "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, fake.calls(), "invalid submit must not reach the backend")

	rec, body = do(t, engine, http.MethodPatch, base+"/fields", `{"field":"batchNumber","value":"B100"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	record := body["record"].(map[string]any)
	assert.Equal(t, "Resin-A", record["materialName"])
	assert.Equal(t, "RA-1", record["materialCode"])
	require.Len(t, body["parameters"], 1)

	for field, value := range map[string]string{
		"inspectionDate": "2024-01-01",
		"inspectorName":  "J. Doe",
		"qualityStatus":  "Accepted",
		"comments":       "ok",
	} {
		rec, _ = do(t, engine, http.MethodPatch, base+"/fields", `{"field":"`+field+`","value":"`+value+`"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, body = do(t, engine, http.MethodPatch, base+"/parameters/0", `{"field":"actualResult","value":"25"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	row := body["parameters"].([]any)[0].(map[string]any)
	assert.Equal(t, "FAIL", row["status"])

	rec, _ = do(t, engine, http.MethodPatch, base+"/parameters/3", `{"field":"actualResult","value":"25"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, engine, http.MethodPatch, base+"/fields", `{"field":"grn","value":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = do(t, engine, http.MethodPost, base+"/submit", "")
	require.Equal(t, http.StatusOK, rec.Code)
	outcome := body["outcome"].(map[string]any)
	assert.Equal(t, true, outcome["submitted"])
	assert.Equal(t, true, outcome["refresh"])

	assert.Equal(t, []string{
		"GET /qc-parameters",
		"POST /newQualityCheck",
		"POST /newQualityCheckParameterResult",
	}, fake.calls())

	rec, _ = do(t, engine, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec, _ = do(t, engine, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQualityCheckOptionsCarryNavigation(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, body := do(t, engine, http.MethodPost, "/api/forms/quality-checks", "")
	id := body["id"].(string)

	rec, body := do(t, engine, http.MethodGet, "/api/forms/quality-checks/"+id+"/options", "")
	require.Equal(t, http.StatusOK, rec.Code)
	names := body["materialName"].([]any)
	last := names[len(names)-1].(map[string]any)
	assert.Equal(t, map[string]any{"target": "/vendor-stock-management/current-stock"}, last["navigate"])
}

func TestProductionOutputFlow(t *testing.T) {
	engine, _ := newTestEngine(t)

	rec, body := do(t, engine, http.MethodPost, "/api/forms/production-outputs",
		`{"record":{"productionOrderoutputId":"out-1","authPassword":"old","producedQuantity":120,"productionCompletionDate":"2024-02-10T00:00:00.000Z"}}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := body["id"].(string)
	record := body["record"].(map[string]any)
	assert.Equal(t, "", record["authPassword"])
	assert.Equal(t, "120", record["producedQuantity"])
	assert.Equal(t, "2024-02-10", record["productionCompletionDate"])
	assert.Equal(t, false, body["authPasswordSet"])

	base := "/api/forms/production-outputs/" + id
	rec, body = do(t, engine, http.MethodPost, base+"/packing-materials", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["record"].(map[string]any)["packingMaterials"], 2)

	rec, _ = do(t, engine, http.MethodPatch, base+"/packing-materials/1", `{"field":"unit","value":"KG"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body = do(t, engine, http.MethodDelete, base+"/packing-materials/0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rows := body["record"].(map[string]any)["packingMaterials"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, "KG", rows[0].(map[string]any)["unit"])

	rec, _ = do(t, engine, http.MethodDelete, base+"/packing-materials/-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = do(t, engine, http.MethodPost, base+"/validate", "")
	require.Equal(t, http.StatusOK, rec.Code)
	errs := body["errors"].(map[string]any)
	assert.Equal(t, "Authorization Password is required", errs["authPassword"])
	assert.Equal(t, "Type is required", errs["packingMaterials[0].type"])
}

func TestQualityCheckListExportAndDelete(t *testing.T) {
	engine, _ := newTestEngine(t)

	rec, _ := do(t, engine, http.MethodGet, "/api/quality-checks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "qc-9")

	rec, _ = do(t, engine, http.MethodGet, "/api/quality-checks/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, rec.Body.Len())

	rec, _ = do(t, engine, http.MethodDelete, "/api/quality-checks/qc-9", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code, "unconfirmed delete")

	rec, body := do(t, engine, http.MethodDelete, "/api/quality-checks/qc-9?confirm=true", "")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	notice := body["outcome"].(map[string]any)["notice"].(map[string]any)
	assert.Equal(t, "error", notice["level"])
	assert.Equal(t, "Quality check not found", notice["message"])
}

func TestQualityReportDisabled(t *testing.T) {
	engine, _ := newTestEngine(t)

	rec, _ := do(t, engine, http.MethodGet, "/api/reports/quality?from=2024-01-01&to=2024-01-02", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec, _ = do(t, engine, http.MethodGet, "/api/reports/quality?from=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
