// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

// Command server is the Heliodeck gateway entry point.
//
// # Application Architecture
//
// Startup proceeds in dependency order:
//
//  1. Configuration - loaded from defaults, optional YAML file, and
//     environment variables (koanf layering, env wins)
//  2. Logging - zerolog global logger configured from LOG_LEVEL/LOG_FORMAT
//  3. NASA client - circuit-breaker wrapped HTTP client for api.nasa.gov,
//     with a non-fatal connectivity probe at boot
//  4. API handler - response cache, image proxy cache, validators
//  5. Router - Chi router with CORS, rate limiting, Prometheus metrics,
//     compression, and per-group middleware
//  6. Supervisor tree - suture v4 tree running the HTTP server and the
//     cache metrics publisher, with automatic restart on failure
//
// # Configuration
//
// All settings have working defaults; only NASA_API_KEY is recommended
// for real deployments (the DEMO_KEY default is heavily rate limited
// upstream). Common environment variables:
//
//	NASA_API_KEY=xxxx            NASA Open API key
//	NASA_BASE_URL=...            override upstream base URL (tests)
//	HTTP_PORT=8080               listen port
//	HTTP_HOST=0.0.0.0            listen host
//	CACHE_TTL=1h                 TTL for APOD/Mars/NEO payloads
//	CACHE_LONG_TTL=24h           TTL for EPIC and manifest payloads
//	PROXY_ALLOWED_DOMAINS=...    comma-separated image proxy allow-list
//	CORS_ORIGINS=*               comma-separated allowed origins
//	RATE_LIMIT_REQUESTS=100      requests per window per client IP
//	LOG_LEVEL=info               trace|debug|info|warn|error
//	LOG_FORMAT=json              json|console
//	ENVIRONMENT=production       production|development
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger a graceful shutdown: the supervisor tree
// is canceled, the HTTP server drains in-flight requests within the
// shutdown timeout, and cache sweepers stop.
//
// # Example Usage
//
//	NASA_API_KEY=xxxx HTTP_PORT=8080 ./server
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

	"github.com/tomtom215/heliodeck/internal/api"
	"github.com/tomtom215/heliodeck/internal/config"
	"github.com/tomtom215/heliodeck/internal/logging"
	"github.com/tomtom215/heliodeck/internal/nasa"
	"github.com/tomtom215/heliodeck/internal/supervisor"
	"github.com/tomtom215/heliodeck/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("upstream", cfg.NASA.BaseURL).
		Msg("Starting Heliodeck gateway")

	if cfg.NASA.APIKey == "DEMO_KEY" {
		logging.Warn().Msg("Using DEMO_KEY - upstream allows only 30 requests/hour, set NASA_API_KEY for production")
	}

	client := nasa.NewCircuitBreakerClient(&cfg.NASA)

	// Connectivity probe. Upstream being down at boot is not fatal; the
	// circuit breaker handles it and health reports reflect it.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := client.Ping(pingCtx); err != nil {
		logging.Warn().Err(err).Msg("Failed to reach NASA API (will retry on demand)")
	} else {
		logging.Info().Msg("NASA API reachable")
	}
	pingCancel()

	handler := api.NewHandler(client, cfg)
	defer handler.Close()

	chimw := api.NewChiMiddlewareFromConfig(&cfg.Security)
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	router := api.NewRouter(handler, chimw)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slogLogger := logging.NewSlogLogger()
	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddMaintenanceService(services.NewCacheMetricsService(handler, time.Minute))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Gateway stopped gracefully")
}
