//go:build e2e

// test/e2e/store_workflow_test.go
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/ammerola/retifica-be/internal/adapters/db"
	redis_a "github.com/ammerola/retifica-be/internal/adapters/redis_adapter"
	"github.com/ammerola/retifica-be/internal/core/domain"
	"github.com/ammerola/retifica-be/internal/core/services"
	"github.com/ammerola/retifica-be/internal/handlers"
	"github.com/ammerola/retifica-be/internal/handlers/middleware"
	"github.com/ammerola/retifica-be/test/helpers"
)

const deleteSecret = "e2e-delete-secret"

type StoreE2ESuite struct {
	suite.Suite
	testDB    *helpers.TestDB
	testRedis *helpers.TestRedis
	store     *services.SyncStore
	server    *httptest.Server
	client    *http.Client
}

func (s *StoreE2ESuite) SetupSuite() {
	t := s.T()
	s.testDB = helpers.SetupTestDB(t)
	s.testRedis = helpers.SetupTestRedis(t)
	s.client = &http.Client{Timeout: 30 * time.Second}
}

func (s *StoreE2ESuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
	s.testRedis.Server.FlushAll()

	s.store = s.newStore()
	s.server = s.startTestServer(s.store)
}

func (s *StoreE2ESuite) TearDownTest() {
	s.server.Close()
}

func (s *StoreE2ESuite) newStore() *services.SyncStore {
	logger := helpers.TestLogger()
	env := domain.EnvironmentInfo{
		RemoteConfigured: true,
		RemoteHost:       s.testDB.Config.Host,
		RemoteDatabase:   s.testDB.Config.Database,
		RemoteUser:       s.testDB.Config.User,
		LocalDriver:      "redis",
	}
	remote := db.NewRemoteRepository(s.testDB.Database, env, 5*time.Second, logger)
	local := redis_a.NewSnapshotCache(s.testRedis.Client, "e2e", logger)

	store := services.NewSyncStore(remote, local, logger, services.WithLocalDriver("redis"))
	s.Require().NoError(store.Initialize(context.Background()))
	return store
}

func (s *StoreE2ESuite) TestBatchAndEngineWorkflow() {
	s.Equal(domain.ModeOnline, s.store.Mode())

	// 1. Create a batch
	resp := s.makeRequest("POST", "/api/v1/batches", map[string]string{
		"name":        "Lote Junho",
		"closureDate": "30/06/2025",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var batch domain.Batch
	s.decodeResponse(resp, &batch)
	s.NotEmpty(batch.ID)

	// 2. Create an engine with two service lines
	resp = s.makeRequest("POST", "/api/v1/engines", map[string]interface{}{
		"vehicleModel": "Gol 1.6",
		"engineNumber": "AP-1234",
		"operator":     "Carlos",
		"batchId":      batch.ID,
		"services": []map[string]string{
			{"type": string(domain.ServiceSimpleRevision), "amount": "350"},
			{"type": string(domain.ServiceAdditionalParts), "amount": "80,50", "partName": "Bomba de óleo"},
		},
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var engine domain.Engine
	s.decodeResponse(resp, &engine)

	// 3. A fresh store sees the same rows in PostgreSQL
	reloaded := s.newStore()
	s.Require().Len(reloaded.Batches(), 1)
	s.Require().Len(reloaded.Engines(), 1)
	helpers.AssertEngineEqual(s.T(), engine, reloaded.Engines()[0])

	// 4. Metrics
	resp = s.makeRequest("GET", "/api/v1/metrics", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var metrics domain.Metrics
	s.decodeResponse(resp, &metrics)
	s.Equal(1, metrics.TotalEngines)
	s.Equal("430.5", metrics.TotalCost.String())

	// 5. Update
	resp = s.makeRequest("PUT", "/api/v1/engines/"+engine.ID, map[string]string{"notes": "Entregue"})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// 6. CSV export
	resp = s.makeRequest("GET", "/api/v1/export/engines.csv", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	s.NoError(err)
	s.True(strings.HasPrefix(string(body), "\uFEFF"))
	s.Contains(string(body), "AP-1234")
	s.Contains(string(body), "Entregue")

	// 7. Deleting requires the secret
	resp = s.makeRequest("DELETE", "/api/v1/batches/"+batch.ID, nil)
	s.Equal(http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = s.makeRequest("DELETE", "/api/v1/batches/"+batch.ID, nil, middleware.DeleteSecretHeader, deleteSecret)
	s.Equal(http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	// 8. The cascade reached PostgreSQL
	reloaded = s.newStore()
	s.Empty(reloaded.Batches())
	s.Empty(reloaded.Engines())
}

func (s *StoreE2ESuite) TestConcurrentRequests() {
	batch, err := s.store.AddBatch(context.Background(), "Lote Concorrente", "2025-07-31")
	s.Require().NoError(err)

	var wg sync.WaitGroup
	codes := make(chan int, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			resp := s.makeRequest("POST", "/api/v1/engines", map[string]interface{}{
				"vehicleModel": "Uno 1.0",
				"engineNumber": "CC-" + string(rune('A'+idx)),
				"operator":     "Rita",
				"batchId":      batch.ID,
				"services":     []map[string]string{{"type": string(domain.ServiceLabor), "amount": "100"}},
			})
			resp.Body.Close()
			codes <- resp.StatusCode
		}(i)
	}
	wg.Wait()
	close(codes)

	for code := range codes {
		s.Equal(http.StatusCreated, code)
	}
	s.Len(s.newStore().Engines(), 10)
}

func (s *StoreE2ESuite) TestHealthCheck() {
	resp := s.makeRequest("GET", "/health", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var health map[string]interface{}
	s.decodeResponse(resp, &health)
	s.Equal("healthy", health["status"])

	svc := health["services"].(map[string]interface{})
	s.Contains(svc, "database")
	s.Contains(svc, "redis")
}

// Helper methods

func (s *StoreE2ESuite) startTestServer(store *services.SyncStore) *httptest.Server {
	cfg := helpers.LoadTestConfig()
	logger := helpers.TestLogger()

	rt := &handlers.Router{
		Health:         handlers.NewHealthHandler(store, s.testDB.Database, s.testRedis.Client, nil, cfg, logger),
		Batches:        handlers.NewBatchHandler(store, logger),
		Engines:        handlers.NewEngineHandler(store, logger),
		Reports:        handlers.NewReportHandler(store, services.NewReportService(store, logger), logger),
		Export:         handlers.NewExportHandler(store, nil, nil, cfg.Export, logger),
		DeleteSecret:   deleteSecret,
		RequestTimeout: 10 * time.Second,
	}
	mux := http.NewServeMux()
	rt.Register(mux)

	return httptest.NewServer(middleware.Chain(mux,
		middleware.Recovery(logger),
		middleware.RequestID(cfg.Security.RequestIDHeader),
	))
}

func (s *StoreE2ESuite) makeRequest(method, path string, body interface{}, headers ...string) *http.Response {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		s.NoError(err)
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, s.server.URL+path, reqBody)
	s.NoError(err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := s.client.Do(req)
	s.Require().NoError(err)

	return resp
}

func (s *StoreE2ESuite) decodeResponse(resp *http.Response, v interface{}) {
	defer resp.Body.Close()
	err := json.NewDecoder(resp.Body).Decode(v)
	s.NoError(err)
}

func TestStoreE2ESuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E tests in short mode")
	}
	suite.Run(t, new(StoreE2ESuite))
}
