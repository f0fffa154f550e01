// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

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

	"github.com/tomtom215/animerec/internal/api"
	"github.com/tomtom215/animerec/internal/catalog"
	"github.com/tomtom215/animerec/internal/config"
	"github.com/tomtom215/animerec/internal/database"
	"github.com/tomtom215/animerec/internal/embedding"
	"github.com/tomtom215/animerec/internal/logging"
	"github.com/tomtom215/animerec/internal/poster"
	"github.com/tomtom215/animerec/internal/recommend"
	"github.com/tomtom215/animerec/internal/supervisor"
	"github.com/tomtom215/animerec/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server failed")
	}
	logging.Info().Msg("Application stopped gracefully")
}

// run wires every component and blocks until the supervisor tree stops.
//
//nolint:gocyclo // sequential setup steps
func run(cfg *config.Config) error {
	logging.Info().
		Str("ratings", cfg.Data.RatingsPath).
		Str("anime", cfg.Data.AnimePath).
		Str("embeddings_dir", cfg.Embeddings.Dir).
		Msg("Configuration loaded")

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cat := catalog.New(db, cfg.Data, logging.WithComponent("catalog"))
	if err := cat.Load(ctx); err != nil {
		logging.Error().Err(err).Msg("Initial catalog load failed; will retry on reload")
	}

	store := embedding.NewStore(db, cfg.Embeddings, logging.WithComponent("embedding"))
	if err := store.Load(ctx); err != nil {
		logging.Error().Err(err).Msg("Initial embedding load failed; will retry on reload")
	}

	posters, err := poster.New(&cfg.Poster, logging.WithComponent("poster"))
	if err != nil {
		return fmt.Errorf("initialize poster service: %w", err)
	}
	defer func() {
		if err := posters.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing poster cache")
		}
	}()

	recCfg := recommend.Config{
		DefaultN:       cfg.Recommend.DefaultN,
		MaxN:           cfg.Recommend.MaxN,
		UserWeight:     cfg.Recommend.UserWeight,
		ContentWeight:  cfg.Recommend.ContentWeight,
		PlaceholderURL: cfg.Poster.PlaceholderURL,
		Concurrency:    cfg.Poster.Concurrency,
	}
	rec, err := recommend.New(recCfg, recommend.Deps{
		Ratings:    cat,
		Catalog:    cat,
		Synopsis:   cat,
		Embeddings: store,
		Posters:    posters,
	}, logging.Logger())
	if err != nil {
		return fmt.Errorf("initialize recommender: %w", err)
	}

	handler := api.NewHandler(rec, recCfg, cfg.Server.RequestTimeout,
		api.ReadinessCheck{Name: "catalog", Ready: cat.Ready},
		api.ReadinessCheck{Name: "embeddings", Ready: store.Ready},
	)

	mwCfg := api.DefaultChiMiddlewareConfig()
	mwCfg.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mwCfg.RateLimitRequests = cfg.Security.RateLimitReqs
	mwCfg.RateLimitWindow = cfg.Security.RateLimitWindow
	mwCfg.RateLimitDisabled = cfg.Security.RateLimitDisabled
	router := api.NewRouter(handler, api.NewChiMiddleware(mwCfg))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	if cfg.Data.ReloadInterval > 0 {
		tree.AddDataService(services.NewReloadService(cfg.Data.ReloadInterval, logging.Logger(),
			services.ReloadSource{Name: "catalog", Reloader: cat},
			services.ReloadSource{Name: "embeddings", Reloader: store},
			services.ReloadSource{Name: "poster-cache", Reloader: poster.CacheSweep{Service: posters}},
		))
	} else {
		logging.Info().Msg("Snapshot reloading disabled (DATA_RELOAD_INTERVAL=0)")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	// The channel receives exactly one value when the root supervisor stops.
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}
	return nil
}
