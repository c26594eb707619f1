package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/dosewise/medsafe/internal/directory"
	"github.com/dosewise/medsafe/internal/schedule"
)

type RouterConfig struct {
	Generator *schedule.Generator
	Directory *directory.Client
	PgPool    *pgxpool.Pool // may be nil
	Redis     *redis.Client // may be nil
	Env       string
	Version   string
	Logger    zerolog.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Apply middleware
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Logger))

	// Health endpoints
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	// Schedule endpoint
	r.Post("/schedule", generateScheduleHandler(cfg.Generator))

	// Drug directory endpoints
	r.Get("/drugs/search", searchDrugsHandler(cfg.Directory))
	r.Get("/drugs/interactions", drugInteractionsHandler(cfg.Directory))
	r.Get("/drugs/suggestions", spellingSuggestionsHandler(cfg.Directory))
	r.Get("/drugs/{name}/label", drugLabelHandler(cfg.Directory))

	return r
}
