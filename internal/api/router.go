package api

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/erazemk/stockroom/internal/config"
	"github.com/erazemk/stockroom/internal/metrics"
	"github.com/erazemk/stockroom/internal/model"
)

// StatsCache is an optional store for computed stats. Item writes
// invalidate it.
type StatsCache interface {
	Get(ctx context.Context) (model.Stats, bool, error)
	Set(ctx context.Context, stats model.Stats) error
	Invalidate(ctx context.Context) error
}

// Options configures the router beyond the database handle.
type Options struct {
	Admin       config.AdminConfig
	CORSOrigins []string
	// StatsCache may be nil, in which case stats are always computed.
	StatsCache StatsCache
	// Metrics may be nil, in which case /metrics is not served.
	Metrics *metrics.HTTPMetrics
}

// NewRouter creates the HTTP handler with all endpoints and middleware.
func NewRouter(db *sql.DB, opts Options) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &HealthHandler{DB: db}
	authHandler := &AuthHandler{Admin: opts.Admin}
	itemsHandler := &ItemsHandler{DB: db, Cache: opts.StatsCache}
	surveysHandler := &SurveysHandler{DB: db}
	statsHandler := &StatsHandler{DB: db, Cache: opts.StatsCache}

	mux.HandleFunc("GET /{$}", healthHandler.Home)
	mux.HandleFunc("GET /api/init-db", healthHandler.InitDB)

	mux.HandleFunc("POST /api/admin-login", authHandler.AdminLogin)

	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("POST /api/items", itemsHandler.Create)
	mux.HandleFunc("PUT /api/items/{id}", itemsHandler.Update)
	mux.HandleFunc("DELETE /api/items/{id}", itemsHandler.Delete)

	mux.HandleFunc("GET /api/surveys/draft", surveysHandler.GetDraft)
	mux.HandleFunc("POST /api/surveys/draft", surveysHandler.SaveDraft)
	mux.HandleFunc("POST /api/surveys/{id}/complete", surveysHandler.Complete)
	mux.HandleFunc("GET /api/surveys", surveysHandler.List)
	mux.HandleFunc("GET /api/surveys/{id}", surveysHandler.Get)

	mux.HandleFunc("GET /api/stats", statsHandler.Get)

	var handler http.Handler = mux
	if opts.Metrics != nil {
		mux.Handle("GET /metrics", opts.Metrics.Handler())
		// Innermost, so the mux's matched pattern is visible to it.
		handler = MetricsMiddleware(opts.Metrics)(handler)
	}
	handler = CORSMiddleware(opts.CORSOrigins)(handler)
	handler = RequestIDMiddleware(handler)
	return LoggingMiddleware(handler)
}
