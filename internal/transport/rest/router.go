package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/summitlist-backend/internal/config"
	"github.com/heartmarshall/summitlist-backend/internal/transport/middleware"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

// RouterDeps holds everything the HTTP surface needs.
type RouterDeps struct {
	Tracker     *TrackerHandler
	Health      *HealthHandler
	Tokens      tokenValidator
	ImportLimit *middleware.RateLimiter
	Config      config.Config
	Logger      *slog.Logger
}

// NewRouter builds the HTTP handler. Every API route is wrapped in a metrics
// middleware labelled with its pattern.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	handle := func(pattern string, h http.HandlerFunc, mws ...middleware.Middleware) {
		mws = append([]middleware.Middleware{middleware.Metrics(pattern)}, mws...)
		mux.Handle(pattern, middleware.Chain(mws...)(h))
	}

	mux.HandleFunc("GET /live", deps.Health.Live)
	mux.HandleFunc("GET /ready", deps.Health.Ready)
	mux.HandleFunc("GET /health", deps.Health.Health)
	if deps.Config.Metrics.Enabled {
		mux.Handle("GET "+deps.Config.Metrics.Path, promhttp.Handler())
	}

	t := deps.Tracker
	handle("GET /api/lists/{listID}/progress", t.ListProgress)
	handle("GET /api/lists/{listID}/summary", t.ListSummary)
	handle("GET /api/lists/{listID}/objectives/{objectiveID}", t.ObjectiveCompletion)
	handle("POST /api/objectives/{objectiveID}/ascents", t.LogAscent)
	handle("DELETE /api/objectives/{objectiveID}/ascents/{date}", t.DeleteAscent)

	var importMws []middleware.Middleware
	if deps.ImportLimit != nil {
		importMws = append(importMws, deps.ImportLimit.Limit(deps.Config.Import.RatePerMinute))
	}
	handle("POST /api/lists/{listID}/import", t.ImportGrid, importMws...)

	return middleware.Chain(
		middleware.RequestID,
		middleware.Logger(deps.Logger),
		middleware.Recovery(deps.Logger),
		middleware.CORS(deps.Config.CORS),
		middleware.Auth(deps.Tokens, deps.Logger),
	)(mux)
}
