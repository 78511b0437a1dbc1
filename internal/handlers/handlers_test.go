// internal/handlers/handlers_test.go
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/retifica-be/internal/adapters/sqlite"
	"github.com/ammerola/retifica-be/internal/core/domain"
	"github.com/ammerola/retifica-be/internal/core/ports"
	"github.com/ammerola/retifica-be/internal/core/services"
	"github.com/ammerola/retifica-be/internal/handlers"
	"github.com/ammerola/retifica-be/internal/handlers/middleware"
	"github.com/ammerola/retifica-be/test/helpers"
	"github.com/ammerola/retifica-be/test/mocks"
)

const deleteSecret = "test-delete-secret"

func newSQLiteStore(t *testing.T) *services.SyncStore {
	t.Helper()
	cache, err := sqlite.Open(filepath.Join(t.TempDir(), "retifica.db"), helpers.TestLogger())
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })

	store := services.NewSyncStore(nil, cache, helpers.TestLogger())
	require.NoError(t, store.Initialize(context.Background()))
	return store
}

func newRouter(t *testing.T, store ports.Store, enqueuer ports.TaskEnqueuer, cache ports.CacheRepository, withEvents bool) (*http.ServeMux, *handlers.EventHub) {
	t.Helper()
	cfg := helpers.LoadTestConfig()
	logger := helpers.TestLogger()

	var hub *handlers.EventHub
	if withEvents {
		hub = handlers.NewEventHub(store, logger)
		t.Cleanup(hub.Close)
	}

	rt := &handlers.Router{
		Health:         handlers.NewHealthHandler(store, nil, nil, nil, cfg, logger),
		Batches:        handlers.NewBatchHandler(store, logger),
		Engines:        handlers.NewEngineHandler(store, logger),
		Reports:        handlers.NewReportHandler(store, services.NewReportService(store, logger), logger),
		Export:         handlers.NewExportHandler(store, enqueuer, cache, cfg.Export, logger),
		Events:         hub,
		DeleteSecret:   deleteSecret,
		RequestTimeout: 5 * time.Second,
	}
	mux := http.NewServeMux()
	rt.Register(mux)
	return mux, hub
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func engineBody(batchID string) map[string]interface{} {
	return map[string]interface{}{
		"vehicleModel": "Gol 1.6",
		"engineNumber": "AP-1234",
		"operator":     "Carlos",
		"batchId":      batchID,
		"services": []map[string]string{
			{"type": string(domain.ServiceSimpleRevision), "amount": "350"},
			{"type": string(domain.ServiceAdditionalParts), "amount": "80,50", "partName": "Bomba de óleo"},
		},
	}
}

func TestBatchHandlers_Lifecycle(t *testing.T) {
	mux, _ := newRouter(t, newSQLiteStore(t), nil, nil, false)

	w := do(t, mux, "POST", "/api/v1/batches", map[string]string{"name": "Lote Maio", "closureDate": "31/05/2025"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	batch := decode[domain.Batch](t, w)
	assert.NotEmpty(t, batch.ID)
	assert.Equal(t, "2025-05-31", batch.ClosureDate.String())

	w = do(t, mux, "POST", "/api/v1/engines", engineBody(batch.ID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, mux, "GET", "/api/v1/batches", nil)
	require.Equal(t, http.StatusOK, w.Code)
	summaries := decode[[]domain.BatchSummary](t, w)
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].EngineCount)
	assert.Equal(t, "430.5", summaries[0].TotalCost.String())

	w = do(t, mux, "GET", "/api/v1/batches/"+batch.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode[handlers.BatchDetail](t, w)
	assert.Equal(t, "Lote Maio", detail.Name)
	assert.Len(t, detail.Engines, 1)

	w = do(t, mux, "PUT", "/api/v1/batches/"+batch.ID, map[string]string{"name": "Lote Maio/2025"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Lote Maio/2025", decode[domain.Batch](t, w).Name)

	w = do(t, mux, "DELETE", "/api/v1/batches/"+batch.ID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, mux, "DELETE", "/api/v1/batches/"+batch.ID, nil, middleware.DeleteSecretHeader, deleteSecret)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, mux, "GET", "/api/v1/engines", nil)
	assert.Empty(t, decode[[]domain.Engine](t, w))

	w = do(t, mux, "DELETE", "/api/v1/batches/"+batch.ID, nil, middleware.DeleteSecretHeader, deleteSecret)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBatchHandlers_Errors(t *testing.T) {
	mux, _ := newRouter(t, newSQLiteStore(t), nil, nil, false)

	tests := []struct {
		name           string
		method         string
		path           string
		body           interface{}
		raw            string
		expectedStatus int
		expectedField  string
	}{
		{
			name:           "missing_name",
			method:         "POST",
			path:           "/api/v1/batches",
			body:           map[string]string{"closureDate": "2025-05-31"},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "name",
		},
		{
			name:           "bad_date",
			method:         "POST",
			path:           "/api/v1/batches",
			body:           map[string]string{"name": "Lote", "closureDate": "31-05"},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "closureDate",
		},
		{
			name:           "malformed_body",
			method:         "POST",
			path:           "/api/v1/batches",
			raw:            "{",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown_batch",
			method:         "GET",
			path:           "/api/v1/batches/nope",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "update_unknown_batch",
			method:         "PUT",
			path:           "/api/v1/batches/nope",
			body:           map[string]string{"name": "X"},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w *httptest.ResponseRecorder
			if tt.raw != "" {
				req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.raw))
				w = httptest.NewRecorder()
				mux.ServeHTTP(w, req)
			} else {
				w = do(t, mux, tt.method, tt.path, tt.body)
			}

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			resp := decode[handlers.ErrorResponse](t, w)
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, tt.expectedField, resp.Field)
		})
	}
}

func TestEngineHandlers_LifecycleAndFilters(t *testing.T) {
	store := newSQLiteStore(t)
	mux, _ := newRouter(t, store, nil, nil, false)
	ctx := context.Background()

	jan, err := store.AddBatch(ctx, "Lote Janeiro", "2025-01-31")
	require.NoError(t, err)
	feb, err := store.AddBatch(ctx, "Lote Fevereiro", "2025-02-28")
	require.NoError(t, err)

	w := do(t, mux, "POST", "/api/v1/engines", engineBody(jan.ID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	gol := decode[domain.Engine](t, w)
	assert.Equal(t, "Bomba de óleo", gol.Services[1].PartName())

	uno := engineBody(feb.ID)
	uno["vehicleModel"] = "Uno Mille"
	uno["engineNumber"] = "FI-0001"
	uno["services"] = []map[string]string{{"type": string(domain.ServiceLabor), "amount": "120"}}
	w = do(t, mux, "POST", "/api/v1/engines", uno)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	unoEngine := decode[domain.Engine](t, w)

	filters := []struct {
		query string
		want  []string
	}{
		{"", []string{gol.ID, unoEngine.ID}},
		{"?batch_id=" + feb.ID, []string{unoEngine.ID}},
		{"?model=GOL", []string{gol.ID}},
		{"?engine_number=fi-", []string{unoEngine.ID}},
		{"?min_total=200", []string{gol.ID}},
		{"?max_total=200,00", []string{unoEngine.ID}},
		{"?service_type=" + url.QueryEscape(string(domain.ServiceLabor)), []string{unoEngine.ID}},
	}
	for _, f := range filters {
		w = do(t, mux, "GET", "/api/v1/engines"+f.query, nil)
		require.Equal(t, http.StatusOK, w.Code, f.query)
		var ids []string
		for _, e := range decode[[]domain.Engine](t, w) {
			ids = append(ids, e.ID)
		}
		assert.Equal(t, f.want, ids, f.query)
	}

	w = do(t, mux, "GET", "/api/v1/engines?min_total=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "min_total", decode[handlers.ErrorResponse](t, w).Field)

	w = do(t, mux, "GET", "/api/v1/engines?from=ontem", nil)
	assert.Equal(t, "from", decode[handlers.ErrorResponse](t, w).Field)

	w = do(t, mux, "PUT", "/api/v1/engines/"+unoEngine.ID, map[string]string{"batchId": jan.ID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, jan.ID, decode[domain.Engine](t, w).BatchID)

	w = do(t, mux, "PUT", "/api/v1/engines/"+unoEngine.ID, map[string]string{"batchId": "missing"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, mux, "GET", "/api/v1/engines/"+gol.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, mux, "DELETE", "/api/v1/engines/"+gol.ID, nil, middleware.DeleteSecretHeader, "wrong")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, mux, "DELETE", "/api/v1/engines/"+gol.ID, nil, middleware.DeleteSecretHeader, deleteSecret)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, mux, "GET", "/api/v1/engines/"+gol.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, mux, "PUT", "/api/v1/engines/"+gol.ID, map[string]string{"notes": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEngineHandlers_CreateValidation(t *testing.T) {
	store := newSQLiteStore(t)
	mux, _ := newRouter(t, store, nil, nil, false)

	batch, err := store.AddBatch(context.Background(), "Lote", "2025-01-31")
	require.NoError(t, err)

	body := engineBody(batch.ID)
	body["operator"] = " "
	w := do(t, mux, "POST", "/api/v1/engines", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "operator", decode[handlers.ErrorResponse](t, w).Field)

	body = engineBody(batch.ID)
	body["services"] = []map[string]string{{"type": "Pintura", "amount": "10"}}
	w = do(t, mux, "POST", "/api/v1/engines", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "services[0].type", decode[handlers.ErrorResponse](t, w).Field)
}

func TestHandlers_StoreStateErrors(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"setup_required", domain.ErrSetupRequired, http.StatusServiceUnavailable},
		{"not_initialized", domain.ErrNotInitialized, http.StatusServiceUnavailable},
		{"unexpected", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mocks.NewMockStore(ctrl)
			store.EXPECT().AddBatch(gomock.Any(), "Lote", "2025-01-31").Return(domain.Batch{}, tt.err)

			mux, _ := newRouter(t, store, nil, nil, false)
			w := do(t, mux, "POST", "/api/v1/batches", map[string]string{"name": "Lote", "closureDate": "2025-01-31"})

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestReportHandlers(t *testing.T) {
	store := newSQLiteStore(t)
	mux, _ := newRouter(t, store, nil, nil, false)
	ctx := context.Background()

	batch, err := store.AddBatch(ctx, "Lote Maio", "2025-05-31")
	require.NoError(t, err)
	_, err = store.AddEngine(ctx, domain.NewEngine{
		VehicleModel: "Gol", EngineNumber: "AP-1", Operator: "Ana", BatchID: batch.ID,
		Services: []domain.ServiceInput{{Type: string(domain.ServiceLabor), Amount: "200"}},
	})
	require.NoError(t, err)

	w := do(t, mux, "GET", "/api/v1/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	m := decode[domain.Metrics](t, w)
	assert.Equal(t, 1, m.TotalEngines)
	assert.Equal(t, "Lote Maio", m.ActiveBatch)

	w = do(t, mux, "GET", "/api/v1/service-types", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), string(domain.ServiceAdditionalParts))

	w = do(t, mux, "GET", "/api/v1/reports/batches?batch_id="+batch.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	report := decode[services.BatchReport](t, w)
	require.Len(t, report.Batches, 1)
	assert.Equal(t, "200", report.Batches[0].Statistics.Total.String())

	w = do(t, mux, "GET", "/api/v1/reports/batches?batch_id=unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, mux, "GET", "/api/v1/reports/engines?model=uno", nil)
	require.Equal(t, http.StatusOK, w.Code)
	er := decode[services.EngineReport](t, w)
	assert.Empty(t, er.Engines)
	assert.Equal(t, 0, er.Statistics.Count)

	w = do(t, mux, "GET", "/api/v1/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	status := decode[domain.StoreStatus](t, w)
	assert.Equal(t, domain.ModeOffline, status.Mode)
	assert.False(t, status.Environment.RemoteConfigured)
}

func TestHealthHandlers(t *testing.T) {
	t.Run("offline_store_is_healthy", func(t *testing.T) {
		mux, _ := newRouter(t, newSQLiteStore(t), nil, nil, false)

		w := do(t, mux, "GET", "/health", nil)
		require.Equal(t, http.StatusOK, w.Code)
		health := decode[handlers.HealthStatus](t, w)
		assert.Equal(t, "healthy", health.Status)
		assert.Equal(t, "healthy", health.Services["store"].Status)

		w = do(t, mux, "GET", "/ready", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("setup_required_is_degraded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockStore(ctrl)
		store.EXPECT().Status().Return(domain.StoreStatus{Mode: domain.ModeSetupRequired}).AnyTimes()
		store.EXPECT().Mode().Return(domain.ModeSetupRequired).AnyTimes()

		mux, _ := newRouter(t, store, nil, nil, false)

		w := do(t, mux, "GET", "/health", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		health := decode[handlers.HealthStatus](t, w)
		assert.Equal(t, "remote database requires setup", health.Services["store"].Message)

		w = do(t, mux, "GET", "/ready", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("reports_database_and_redis", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockStore(ctrl)
		store.EXPECT().Status().Return(domain.StoreStatus{Mode: domain.ModeOnline}).AnyTimes()
		db := mocks.NewMockDatabase(ctrl)
		db.EXPECT().Ping(gomock.Any()).Return(assert.AnError)
		r := helpers.SetupTestRedis(t)

		h := handlers.NewHealthHandler(store, db, r.Client, nil, helpers.LoadTestConfig(), helpers.TestLogger())
		w := httptest.NewRecorder()
		h.Health(w, httptest.NewRequest("GET", "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		health := decode[handlers.HealthStatus](t, w)
		assert.Equal(t, "unhealthy", health.Services["database"].Status)
		assert.Equal(t, "healthy", health.Services["redis"].Status)
	})
}
