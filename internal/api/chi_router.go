// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/heliodeck/internal/middleware"
	"github.com/tomtom215/heliodeck/internal/models"
)

// chiMiddleware adapts a http.HandlerFunc middleware to chi's
// func(http.Handler) http.Handler signature.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(mw(next.ServeHTTP))
	}
}

// Router assembles the HTTP routing table for the gateway.
type Router struct {
	handler *Handler
	chimw   *ChiMiddleware
}

// NewRouter creates a router around the given handler and middleware factory.
func NewRouter(handler *Handler, chimw *ChiMiddleware) *Router {
	if chimw == nil {
		chimw = NewChiMiddleware(nil)
	}
	return &Router{
		handler: handler,
		chimw:   chimw,
	}
}

// SetupChi builds the chi routing tree.
//
// Route groups carry different rate limit tiers: health endpoints are
// nearly unlimited for monitoring, the image proxy allows bursts of
// thumbnail fetches, and the data endpoints use the configured default.
func (rt *Router) SetupChi() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware, applied to every route
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(rt.chimw.CORS())

	// Prometheus scrape endpoint
	r.Handle("/metrics", promhttp.Handler())

	// Health endpoints: permissive rate limit, no compression
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(rt.chimw.RateLimitCustom(RateLimitHealth))

		r.Get("/", rt.handler.Health)
		r.Get("/live", rt.handler.HealthLive)
		r.Get("/ready", rt.handler.HealthReady)
		r.Get("/performance", rt.handler.HealthPerformance)
	})

	// Image proxy: separate tier, no gzip (images are pre-compressed)
	r.Route("/api/v1/proxy", func(r chi.Router) {
		r.Use(rt.chimw.RateLimitCustom(RateLimitProxy))
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Get("/image", rt.handler.ProxyImage)
		r.Get("/cache/stats", rt.handler.ProxyCacheStats)
		r.Post("/cache/clear", rt.handler.ProxyCacheClear)
	})

	// NASA data endpoints: default tier, gzip, performance tracking
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.chimw.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chiMiddleware(middleware.Compression))
		if pm := rt.handler.PerfMonitor(); pm != nil {
			r.Use(pm.Middleware)
		}

		// Astronomy Picture of the Day
		r.Get("/apod", rt.handler.APOD)
		r.Get("/apod/today", rt.handler.APODToday)
		r.Get("/apod/random", rt.handler.APODRandom)
		r.Get("/apod/range", rt.handler.APODRange)

		// Mars rover photos
		r.Get("/mars/rovers", rt.handler.MarsRovers)
		r.Get("/mars/{rover}/manifest", rt.handler.MarsManifest)
		r.Get("/mars/{rover}/photos", rt.handler.MarsPhotos)
		r.Get("/mars/{rover}/latest", rt.handler.MarsLatest)

		// Near Earth Object Web Service
		r.Get("/neows/feed", rt.handler.NEOFeed)
		r.Get("/neows/today", rt.handler.NEOToday)
		r.Get("/neows/object/{id}", rt.handler.NEOObject)
		r.Get("/neows/hazardous", rt.handler.NEOHazardous)

		// EPIC Earth imagery
		r.Get("/epic/images", rt.handler.EPICImages)
		r.Get("/epic/latest", rt.handler.EPICLatest)
		r.Get("/epic/dates", rt.handler.EPICDates)
		r.Get("/epic/natural", rt.handler.EPICNatural)
		r.Get("/epic/enhanced", rt.handler.EPICEnhanced)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "Endpoint not found", r.URL.Path, nil)
	})

	return r
}
