package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	gocache "github.com/patrickmn/go-cache"

	"github.com/wordhabit/wordhabit-backend/internal/adapter/postgres"
	"github.com/wordhabit/wordhabit-backend/internal/adapter/postgres/record"
	"github.com/wordhabit/wordhabit-backend/internal/adapter/scraper/oxford"
	"github.com/wordhabit/wordhabit-backend/internal/config"
	"github.com/wordhabit/wordhabit-backend/internal/service/lexicon"
	"github.com/wordhabit/wordhabit-backend/internal/transport/middleware"
	"github.com/wordhabit/wordhabit-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, wires the
// store, scraper, service, and HTTP layers together, and serves until the
// context is cancelled, then shuts down gracefully.
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

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("migrations applied")
	}

	txm := postgres.NewTxManager(pool)
	records := record.New(pool, txm)

	scraper := oxford.NewClient(cfg.Scraper, logger)
	cache := gocache.New(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	lexiconSvc := lexicon.NewService(logger, records, scraper, cache)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
		defer limiter.Stop()
	}

	router := rest.NewRouter(rest.RouterDeps{
		Lexicon: rest.NewLexiconHandler(lexiconSvc, logger),
		Health:  rest.NewHealthHandler(pool, BuildVersion()),
		Limiter: limiter,
		Config:  cfg,
		Logger:  logger,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("stopped")
	return nil
}
