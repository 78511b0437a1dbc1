// internal/handlers/routes.go
package handlers

import (
	"net/http"
	"time"

	"github.com/ammerola/retifica-be/internal/export"
	"github.com/ammerola/retifica-be/internal/handlers/middleware"
)

// APIPrefix is the path prefix of the versioned API.
const APIPrefix = "/api/v1"

// Router wires every handler onto a ServeMux.
type Router struct {
	Health  *HealthHandler
	Batches *BatchHandler
	Engines *EngineHandler
	Reports *ReportHandler
	Export  *ExportHandler
	Events  *EventHub

	DeleteSecret   string
	RequestTimeout time.Duration
}

// Register adds all routes to mux. Every route except the event stream is
// bounded by RequestTimeout when it is set.
func (rt *Router) Register(mux *http.ServeMux) {
	handle := func(pattern string, h http.HandlerFunc) {
		var handler http.Handler = h
		if rt.RequestTimeout > 0 {
			handler = middleware.Timeout(rt.RequestTimeout)(handler)
		}
		mux.Handle(pattern, handler)
	}
	guarded := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireSecret(middleware.DeleteSecretHeader, rt.DeleteSecret)(h).ServeHTTP
	}

	handle("GET /health", rt.Health.Health)
	handle("GET /ready", rt.Health.Readiness)
	handle("GET "+APIPrefix+"/health", rt.Health.Health)
	handle("GET "+APIPrefix+"/status", rt.Reports.Status)

	handle("GET "+APIPrefix+"/batches", rt.Batches.ListBatches)
	handle("POST "+APIPrefix+"/batches", rt.Batches.CreateBatch)
	handle("GET "+APIPrefix+"/batches/{id}", rt.Batches.GetBatch)
	handle("PUT "+APIPrefix+"/batches/{id}", rt.Batches.UpdateBatch)
	handle("DELETE "+APIPrefix+"/batches/{id}", guarded(rt.Batches.DeleteBatch))

	handle("GET "+APIPrefix+"/engines", rt.Engines.ListEngines)
	handle("POST "+APIPrefix+"/engines", rt.Engines.CreateEngine)
	handle("GET "+APIPrefix+"/engines/{id}", rt.Engines.GetEngine)
	handle("PUT "+APIPrefix+"/engines/{id}", rt.Engines.UpdateEngine)
	handle("DELETE "+APIPrefix+"/engines/{id}", guarded(rt.Engines.DeleteEngine))

	handle("GET "+APIPrefix+"/service-types", rt.Reports.ServiceTypes)
	handle("GET "+APIPrefix+"/metrics", rt.Reports.Metrics)
	handle("GET "+APIPrefix+"/reports/batches", rt.Reports.BatchReport)
	handle("GET "+APIPrefix+"/reports/engines", rt.Reports.EngineReport)

	handle("GET "+APIPrefix+"/export/engines.csv", rt.Export.CSV(export.KindEngines))
	handle("GET "+APIPrefix+"/export/batches.csv", rt.Export.CSV(export.KindBatches))
	handle("GET "+APIPrefix+"/export/summary.csv", rt.Export.CSV(export.KindSummary))
	handle("GET "+APIPrefix+"/export/report.xlsx", rt.Export.XLSX)
	handle("GET "+APIPrefix+"/export/backup.json", rt.Export.Backup)
	handle("POST "+APIPrefix+"/export/jobs", rt.Export.CreateJob)
	handle("GET "+APIPrefix+"/export/jobs/{id}", rt.Export.GetJob)

	if rt.Events != nil {
		mux.Handle("GET "+APIPrefix+"/events", rt.Events)
	}
}
