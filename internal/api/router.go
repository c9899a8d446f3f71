package api

import (
	"encoding/json"
	"net/http"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vimo33/focusflow-graph/internal/api/handlers"
	mw "github.com/vimo33/focusflow-graph/internal/api/middleware"
	"github.com/vimo33/focusflow-graph/internal/config"
	"github.com/vimo33/focusflow-graph/internal/domain"
	"github.com/vimo33/focusflow-graph/internal/service"
	"github.com/vimo33/focusflow-graph/internal/store"
	"go.uber.org/zap"
)

// App holds the router plus request metrics for the /metrics endpoint.
type App struct {
	Router       *chi.Mux
	dataDir      string
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

func NewApp(dataDir string, logger *zap.Logger) (*App, error) {
	// Stores
	entityStore, err := store.NewEntityStore(dataDir)
	if err != nil {
		return nil, err
	}
	relationshipStore, err := store.NewRelationshipStore(dataDir)
	if err != nil {
		return nil, err
	}
	decisionStore, err := store.NewDecisionStore(dataDir)
	if err != nil {
		return nil, err
	}
	contradictionStore, err := store.NewContradictionStore(dataDir)
	if err != nil {
		return nil, err
	}

	// Services
	detector := service.NewDetector(contradictionStore, logger)
	entitySvc := service.NewEntityService(entityStore, detector)
	relationshipSvc := service.NewRelationshipService(relationshipStore)
	decisionSvc := service.NewDecisionService(decisionStore)
	reconciliationSvc := service.NewReconciliationService(contradictionStore)
	statsSvc := service.NewStatsService(entitySvc, relationshipSvc, decisionSvc, reconciliationSvc)

	// Handlers
	entityHandler := handlers.NewEntityHandler(entitySvc)
	relationshipHandler := handlers.NewRelationshipHandler(relationshipSvc)
	decisionHandler := handlers.NewDecisionHandler(decisionSvc)
	reconciliationHandler := handlers.NewReconciliationHandler(reconciliationSvc)
	statsHandler := handlers.NewStatsHandler(statsSvc)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		dataDir:   dataDir,
		startTime: time.Now(),
	}

	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	r.Get("/health", app.healthHandler())
	r.Get("/metrics", app.metricsHandler())

	r.Route("/v1/graph", func(r chi.Router) {
		r.Get("/stats", statsHandler.Get)
		r.Get("/search", entityHandler.Search)

		r.Route("/entities", func(r chi.Router) {
			r.Post("/", entityHandler.Append)
			r.Get("/{type}", entityHandler.ListLatest)
			r.Get("/{type}/{name}/history", entityHandler.History)
		})

		r.Route("/relationships", func(r chi.Router) {
			r.Get("/", relationshipHandler.List)
			r.Post("/", relationshipHandler.Create)
		})

		r.Route("/decisions", func(r chi.Router) {
			r.Get("/", decisionHandler.List)
			r.Post("/", decisionHandler.Create)
			r.Get("/accuracy", decisionHandler.Accuracy)
			r.Put("/{id}/evaluate", decisionHandler.Evaluate)
		})

		r.Route("/contradictions", func(r chi.Router) {
			r.Get("/", reconciliationHandler.List)
			r.Put("/{id}/resolve", reconciliationHandler.Resolve)
		})
	})

	return app, nil
}

func (app *App) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if _, err := os.Stat(app.dataDir); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
			return
		}
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure stores satisfy the domain interfaces at compile time.
var (
	_ domain.EntityStore        = (*store.EntityStore)(nil)
	_ domain.RelationshipStore  = (*store.RelationshipStore)(nil)
	_ domain.DecisionStore      = (*store.DecisionStore)(nil)
	_ domain.ContradictionStore = (*store.ContradictionStore)(nil)
)
