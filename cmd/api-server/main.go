package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/dosewise/medsafe/internal/api"
	"github.com/dosewise/medsafe/internal/config"
	"github.com/dosewise/medsafe/internal/db"
	"github.com/dosewise/medsafe/internal/directory"
	redisclient "github.com/dosewise/medsafe/internal/redis"
	"github.com/dosewise/medsafe/internal/schedule"
	"github.com/dosewise/medsafe/internal/timing"
)

const version = "0.3.0"

func main() {
	log := zerolog.New(os.Stdout).With().
		Str("service", "medsafe-api").
		Timestamp().
		Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load error")
	}

	log.Info().Str("env", cfg.Env).Str("http_port", cfg.HTTPPort).Msg("api-server starting up")

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Postgres is optional: with a DSN the curated rules table replaces the
	// embedded one.
	var pgPool *pgxpool.Pool
	kb := timing.NewKnowledgeBase()
	if cfg.PostgresDSN != "" {
		pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
		pgPool, err = db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
		cancelPg()
		if err != nil {
			log.Fatal().Err(err).Msg("postgres connection error")
		}
		defer pgPool.Close()

		repo := timing.NewPgRepository(pgPool)
		entries, err := repo.ListEntries(rootCtx)
		if err != nil {
			log.Fatal().Err(err).Msg("load timing rules")
		}
		if len(entries) == 0 {
			log.Warn().Msg("timing rules table is empty, run cmd/seed; using embedded table")
		} else {
			kb = timing.NewKnowledgeBaseFromEntries(entries)
			log.Info().Int("rules", len(entries)).Msg("loaded timing rules from postgres")
		}
	}

	// Redis is optional too: without it the cache and rate limiter run
	// in-process.
	var (
		rdb     *redis.Client
		cache   directory.Cache
		limiter directory.RateLimiter
	)
	if cfg.RedisAddr != "" {
		rdb, err = redisclient.NewRedisClient(rootCtx, cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection error")
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Warn().Err(err).Msg("error closing redis")
			}
		}()
		cache = redisclient.NewQueryCache(rdb, cfg.CacheTTL, log)
		limiter = redisclient.NewWindowLimiter(rdb, "upstream", cfg.RateLimit, cfg.RateWindow)
		log.Info().Msg("using redis cache and rate limiter")
	} else {
		cache = directory.NewMemoryCache(cfg.CacheTTL)
		limiter = directory.NewWindowLimiter(cfg.RateLimit, cfg.RateWindow)
	}

	labels := directory.NewOpenFDASource(cfg.LabelBaseURL, cfg.UpstreamTimeout, limiter, log)

	var interactions directory.InteractionSource
	if cfg.InteractionSource == "rxnav" {
		interactions = directory.NewRxNavSource(cfg.InteractionBaseURL, cfg.UpstreamTimeout, limiter, log)
	}

	dir := directory.NewClient(labels, interactions, cache, log)
	gen := schedule.NewGenerator(kb)

	router := api.NewRouter(api.RouterConfig{
		Generator: gen,
		Directory: dir,
		PgPool:    pgPool,
		Redis:     rdb,
		Env:       cfg.Env,
		Version:   version,
		Logger:    log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second, // a saturated rate limiter can hold a request up to a full window
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-rootCtx.Done()
	log.Info().Msg("shutting down api-server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
