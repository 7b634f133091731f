// Package main runs the CarGoRent storefront session service.
//
// @title        CarGoRent Storefront API
// @version      1.0
// @description  Session, cart and route guard service in front of the CarGoRent backend.
// @BasePath     /
// @schemes      http
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/cargorent/storefront/internal/api"
	"github.com/cargorent/storefront/internal/core/ports"
	"github.com/cargorent/storefront/internal/core/service"
	"github.com/cargorent/storefront/internal/infrastructure/backend"
	"github.com/cargorent/storefront/internal/infrastructure/db/memory"
	"github.com/cargorent/storefront/internal/infrastructure/db/mongo"
	"github.com/cargorent/storefront/internal/infrastructure/db/redis"
	"github.com/cargorent/storefront/internal/infrastructure/http/handlers"
	"github.com/cargorent/storefront/internal/infrastructure/queue"
	"github.com/cargorent/storefront/internal/infrastructure/sealed"
	"github.com/cargorent/storefront/internal/pkg/config"
	"github.com/cargorent/storefront/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "storefront",
	})

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("storefront stopped")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, lock, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	sealedStore, err := sealed.New(store, cfg.ClientSecret, service.CredentialKey)
	if err != nil {
		return err
	}

	client := backend.New(backend.Config{
		BaseURL: cfg.Backend.URL,
		Timeout: cfg.Backend.Timeout,
	}, logger.Component("backend"))

	registry, err := service.NewWorkspaceRegistry(sealedStore, client, client, service.RegistryConfig{
		CacheSize:      cfg.Workspace.CacheSize,
		RestoreTimeout: cfg.Backend.Timeout,
	}, logger.Component("workspace"))
	if err != nil {
		return err
	}

	dispatcher := queue.NewDispatcher(cfg.Workspace.RefreshWorkers, registry, logger.Component("refresh"))
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Deps{
		Resolver:      registry,
		Lock:          lock,
		Refresher:     dispatcher,
		Health:        map[string]handlers.Pinger{cfg.Store.Driver: sealedStore},
		ClientSecret:  cfg.ClientSecret,
		SecureCookies: !cfg.IsDevelopment(),
		Log:           logger.Component("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("store", cfg.Store.Driver).
			Str("backend", cfg.Backend.URL).
			Msg("starting storefront")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down storefront")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore connects the configured state store and its matching submit lock.
func openStore(ctx context.Context, cfg *config.Config) (ports.StateStore, ports.SubmitLock, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreRedis:
		rb, err := redis.Open(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			StateTTL: cfg.Redis.StateTTL,
			LockTTL:  cfg.Store.SubmitLockTTL,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() { _ = rb.Close() }
		return rb.Store, rb.Lock, closeFn, nil

	case config.StoreMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(ctx)
		}
		// Mongo has no cheap cross-process lock; submissions are guarded per instance.
		return mongo.NewStore(client, db), memory.NewSubmitLock(), closeFn, nil

	case config.StoreMemory:
		return memory.NewStore(), memory.NewSubmitLock(), func() {}, nil
	}
	return nil, nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
