package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/summitlist-backend/internal/adapter/postgres"
	"github.com/heartmarshall/summitlist-backend/internal/adapter/postgres/ascent"
	"github.com/heartmarshall/summitlist-backend/internal/adapter/postgres/catalog"
	"github.com/heartmarshall/summitlist-backend/internal/adapter/redis"
	"github.com/heartmarshall/summitlist-backend/internal/adapter/redis/progresscache"
	"github.com/heartmarshall/summitlist-backend/internal/auth"
	"github.com/heartmarshall/summitlist-backend/internal/config"
	"github.com/heartmarshall/summitlist-backend/internal/domain"
	"github.com/heartmarshall/summitlist-backend/internal/importer/gridimport"
	"github.com/heartmarshall/summitlist-backend/internal/service/tracker"
	"github.com/heartmarshall/summitlist-backend/internal/transport/middleware"
	"github.com/heartmarshall/summitlist-backend/internal/transport/rest"
)

const rateLimiterCleanup = time.Minute

// Run is the application entry point. It wires storage, cache, services and
// the HTTP server, then serves until ctx is cancelled and shuts down
// gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied", slog.Int("count", applied))
	}

	checks := []rest.Check{{Name: "database", Ping: pool.Ping}}

	var cache *progresscache.Cache
	rdb, err := redis.Connect(ctx, cfg.Redis)
	switch {
	case err != nil:
		logger.Warn("progress cache unavailable", slog.String("error", err.Error()))
	case rdb != nil:
		defer rdb.Close()
		cache = progresscache.New(rdb, cfg.Redis.TTL)
		checks = append(checks, rest.Check{
			Name:     "redis",
			Ping:     func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
			Optional: true,
		})
	}

	svc := tracker.NewService(
		logger,
		ascent.New(pool),
		catalog.New(pool),
		cacheOrNil(cache),
		postgres.NewTxManager(pool),
		tracker.Settings{
			Rules: func(now time.Time) domain.DateRules { return cfg.Dates.Rules(now) },
			Import: func(now time.Time) gridimport.Options {
				return cfg.Import.Options(cfg.Dates, now)
			},
		},
	)

	limiter := middleware.NewRateLimiter(rateLimiterCleanup)
	defer limiter.Stop()

	handler := rest.NewRouter(rest.RouterDeps{
		Tracker:     rest.NewTrackerHandler(svc, logger, cfg.Server.MaxUploadBytes),
		Health:      rest.NewHealthHandler(BuildVersion(), checks...),
		Tokens:      auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL),
		ImportLimit: limiter,
		Config:      *cfg,
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

type summaryCache interface {
	Get(ctx context.Context, userID, listID uuid.UUID) (domain.ProgressSummary, bool, error)
	Generation(ctx context.Context, userID, listID uuid.UUID) (int64, error)
	Set(ctx context.Context, userID, listID uuid.UUID, generation int64, summary domain.ProgressSummary) (bool, error)
	Invalidate(ctx context.Context, userID uuid.UUID, listIDs ...uuid.UUID) error
}

// cacheOrNil keeps a nil *Cache from becoming a non-nil interface.
func cacheOrNil(c *progresscache.Cache) summaryCache {
	if c == nil {
		return nil
	}
	return c
}

// serve runs srv until ctx is done, then drains in-flight requests within
// timeout.
func serve(ctx context.Context, srv *http.Server, timeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	logger.Info("http server stopped")
	return nil
}
