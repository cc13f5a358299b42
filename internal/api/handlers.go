// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

package api

import (
	"time"

	"github.com/tomtom215/heliodeck/internal/cache"
	"github.com/tomtom215/heliodeck/internal/config"
	"github.com/tomtom215/heliodeck/internal/logging"
	"github.com/tomtom215/heliodeck/internal/metrics"
	"github.com/tomtom215/heliodeck/internal/middleware"
	"github.com/tomtom215/heliodeck/internal/nasa"
)

// gatewayVersion is reported by the health endpoint.
const gatewayVersion = "1.0.0"

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct, constructor, utility methods (this file)
//   - handlers_helpers.go: Shared helpers and the cached-fetch pipeline
//   - handlers_apod.go: Astronomy Picture of the Day endpoints
//   - handlers_mars.go: Mars rover photo and manifest endpoints
//   - handlers_neo.go: Near Earth Object endpoints
//   - handlers_epic.go: EPIC Earth imagery endpoints
//   - handlers_proxy.go: Image proxy and proxy cache management
//   - handlers_health.go: Health/monitoring endpoints
type Handler struct {
	client     nasa.ClientInterface
	config     *config.Config
	cache      *cache.Cache // gateway response cache (raw upstream payloads)
	proxyCache *cache.Cache // proxied image bytes
	perfMon    *middleware.PerformanceMonitor
	startTime  time.Time

	// now is injectable for tests that pin "today"
	now func() time.Time
}

// NewHandler creates a new API handler with all required dependencies.
//
// The handler manages HTTP request processing for the NASA gateway
// endpoints across five categories: APOD, Mars, NEO, EPIC, and Image Proxy.
//
// Dependencies:
//   - client: NASA API client (normally circuit-breaker wrapped)
//   - cfg: Application configuration
//
// The handler initializes with:
//   - A response cache for raw upstream payloads (TTL from cfg.Cache)
//   - A separate image cache for the proxy (TTL from cfg.Proxy)
//   - Performance monitor tracking last 1000 requests
//   - Start time for uptime calculations
//
// Example:
//
//	handler := api.NewHandler(nasa.NewCircuitBreakerClient(&cfg.NASA), cfg)
//	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security))
//	http.ListenAndServe(":8080", router.SetupChi())
func NewHandler(client nasa.ClientInterface, cfg *config.Config) *Handler {
	var responseCache, imageCache *cache.Cache
	if cfg != nil {
		responseCache = cache.New(cfg.Cache.DefaultTTL, cfg.Cache.SweepInterval)
		imageCache = cache.New(cfg.Proxy.CacheTTL, cfg.Cache.SweepInterval)
	}

	return &Handler{
		client:     client,
		config:     cfg,
		cache:      responseCache,
		proxyCache: imageCache,
		perfMon:    middleware.NewPerformanceMonitor(1000),
		startTime:  time.Now(),
		now:        time.Now,
	}
}

// PerfMonitor exposes the performance monitor so the router can wire
// its middleware and the health endpoints can report latency stats.
func (h *Handler) PerfMonitor() *middleware.PerformanceMonitor {
	return h.perfMon
}

// ClearCache invalidates all cached upstream payloads.
//
// Cumulative hit/miss counters survive the clear so dashboards keep
// their lifetime hit rate.
//
// Thread Safety: Safe for concurrent access.
func (h *Handler) ClearCache() {
	if h.cache != nil {
		h.cache.Clear()
		logging.Info().Msg("Gateway response cache cleared")
	}
}

// Close stops the background cache sweepers. Call during shutdown.
func (h *Handler) Close() {
	if h.cache != nil {
		h.cache.Stop()
	}
	if h.proxyCache != nil {
		h.proxyCache.Stop()
	}
}

// PublishCacheMetrics refreshes the Prometheus gauges derived from
// cache contents: entry counts for both caches and stored proxy bytes.
// Called periodically by the maintenance service.
func (h *Handler) PublishCacheMetrics() {
	if h.cache != nil {
		metrics.SetCacheEntries("gateway", h.cache.GetStats().TotalKeys)
	}
	h.publishProxyCacheMetrics()
}

// today returns the current UTC date in the YYYY-MM-DD form the NASA
// APIs expect.
func (h *Handler) today() string {
	return h.now().UTC().Format("2006-01-02")
}

// longTTL returns the configured TTL for slow-moving resources
// (manifests, NEO object lookups).
func (h *Handler) longTTL() time.Duration {
	if h.config != nil && h.config.Cache.LongTTL > 0 {
		return h.config.Cache.LongTTL
	}
	return time.Hour
}
