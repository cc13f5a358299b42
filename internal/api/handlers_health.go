// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/heliodeck/internal/cache"
	"github.com/tomtom215/heliodeck/internal/models"
)

// Health reports gateway status, upstream NASA API reachability, and
// cache effectiveness in one document. Upstream reachability is probed
// live, so this endpoint costs one NASA round trip per call.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	upstream := models.UpstreamHealth{}
	status := "degraded"

	if h.client != nil {
		start := time.Now()
		err := h.client.Ping(r.Context())
		upstream.LatencyMS = time.Since(start).Milliseconds()
		if err != nil {
			upstream.Error = err.Error()
		} else {
			upstream.Reachable = true
			status = "healthy"
		}
	}

	var stats cache.Stats
	var hitRate float64
	if h.cache != nil {
		stats = h.cache.GetStats()
		hitRate = h.cache.HitRate()
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Success: true,
		Data: models.HealthResponse{
			Status:        status,
			Version:       gatewayVersion,
			UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
			NASAAPI:       upstream,
			Cache: models.CacheHealth{
				Hits:      stats.Hits,
				Misses:    stats.Misses,
				HitRate:   hitRate,
				TotalKeys: stats.TotalKeys,
			},
			Timestamp: time.Now(),
		},
		Meta: models.Meta{
			Endpoint:  "health",
			Timestamp: time.Now(),
		},
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Meta: models.Meta{
			Endpoint:  "health-live",
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only if the upstream NASA API is reachable, 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ready := h.client != nil && h.client.Ping(r.Context()) == nil

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}

	respondJSON(w, status, &models.APIResponse{
		Success: ready,
		Data: map[string]interface{}{
			"ready": ready,
		},
		Meta: models.Meta{
			Endpoint:  "health-ready",
			Timestamp: time.Now(),
		},
	})
}

// HealthPerformance reports per-endpoint latency percentiles from the
// in-process performance monitor.
func (h *Handler) HealthPerformance(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Success: true,
		Data:    h.perfMon.GetStats(),
		Meta: models.Meta{
			Endpoint:  "health-performance",
			Timestamp: time.Now(),
		},
	})
}
