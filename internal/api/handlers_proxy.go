// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

package api

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tomtom215/heliodeck/internal/logging"
	"github.com/tomtom215/heliodeck/internal/metrics"
	"github.com/tomtom215/heliodeck/internal/models"
)

// proxyImageEntry is the cached payload for one proxied image.
type proxyImageEntry struct {
	Data        []byte
	ContentType string
}

// proxyCacheKey derives the cache key for an image URL.
func proxyCacheKey(imageURL string) string {
	sum := sha256.Sum256([]byte(imageURL))
	return "image:" + hex.EncodeToString(sum[:])
}

// domainAllowed reports whether host matches an allow-list entry
// exactly or as a subdomain (dot-suffix match). "evilapod.nasa.gov"
// must not pass for "apod.nasa.gov"; "api.apod.nasa.gov" must.
func domainAllowed(host string, allowed []string) bool {
	host = strings.ToLower(host)
	for _, domain := range allowed {
		domain = strings.ToLower(domain)
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// ProxyImage fetches an image from an allow-listed NASA domain and
// serves it with the gateway's caching headers. Disallowed URLs are
// rejected before any network activity.
func (h *Handler) ProxyImage(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		respondInvalid(w, "proxy-image", "url parameter is required")
		return
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		respondInvalid(w, "proxy-image", "url must be an absolute http or https URL")
		return
	}

	host := parsed.Hostname()
	var allowed []string
	if h.config != nil {
		allowed = h.config.Proxy.AllowedDomains
	}
	if !domainAllowed(host, allowed) {
		metrics.RecordProxyRejection(host)
		logging.Warn().Str("host", sanitizeLogValue(host)).Msg("Image proxy rejected disallowed domain")
		respondErrorWithDetails(w, http.StatusForbidden, models.ErrCodeInvalidRequest,
			"Domain not allowed: "+sanitizeLogValue(host), "proxy-image",
			map[string]interface{}{"reason": "FORBIDDEN_DOMAIN"}, nil)
		return
	}

	key := proxyCacheKey(rawURL)

	if h.proxyCache != nil {
		if cached, found := h.proxyCache.Get(key); found {
			if entry, ok := cached.(proxyImageEntry); ok {
				metrics.RecordCacheHit("proxy")
				h.writeImage(w, entry, "HIT")
				return
			}
		}
		metrics.RecordCacheMiss("proxy")
	}

	start := time.Now()
	data, contentType, err := h.client.FetchImage(r.Context(), rawURL)
	if err != nil {
		metrics.RecordUpstreamRequest("proxy-image", "error", time.Since(start))
		respondUpstreamError(w, "proxy-image", err)
		return
	}
	metrics.RecordUpstreamRequest("proxy-image", "success", time.Since(start))

	entry := proxyImageEntry{Data: data, ContentType: contentType}
	if h.proxyCache != nil {
		h.proxyCache.Set(key, entry)
		h.publishProxyCacheMetrics()
	}

	h.writeImage(w, entry, "MISS")
}

// writeImage sends raw image bytes with cache metadata headers.
func (h *Handler) writeImage(w http.ResponseWriter, entry proxyImageEntry, cacheStatus string) {
	contentType := entry.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("X-Cache", cacheStatus)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(entry.Data); err != nil {
		logging.Error().Err(err).Msg("Failed to write proxied image")
	}
}

// ProxyCacheStats reports hit/miss counters and total stored bytes for
// the image cache.
func (h *Handler) ProxyCacheStats(w http.ResponseWriter, r *http.Request) {
	if h.proxyCache == nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeCacheError,
			"Image cache not available", "proxy-cache-stats", nil)
		return
	}

	stats := h.proxyCache.GetStats()
	totalBytes := h.publishProxyCacheMetrics()

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Success: true,
		Data: models.CacheStatsResponse{
			Hits:       stats.Hits,
			Misses:     stats.Misses,
			Evictions:  stats.Evictions,
			HitRate:    h.proxyCache.HitRate(),
			TotalKeys:  stats.TotalKeys,
			TotalBytes: totalBytes,
			LastSweep:  stats.LastCleanup,
		},
		Meta: models.Meta{
			Endpoint:  "proxy-cache-stats",
			Timestamp: time.Now(),
		},
	})
}

// ProxyCacheClear empties the image cache. Development environments
// only; production callers get a 403.
func (h *Handler) ProxyCacheClear(w http.ResponseWriter, r *http.Request) {
	if h.config == nil || !h.config.IsDevelopment() {
		respondError(w, http.StatusForbidden, models.ErrCodeInvalidRequest,
			"Cache clear is only available in development", "proxy-cache-clear", nil)
		return
	}

	if h.proxyCache != nil {
		h.proxyCache.Clear()
		h.publishProxyCacheMetrics()
		logging.Info().Msg("Image proxy cache cleared")
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Success: true,
		Data:    map[string]interface{}{"cleared": true},
		Meta: models.Meta{
			Endpoint:  "proxy-cache-clear",
			Timestamp: time.Now(),
		},
	})
}

// publishProxyCacheMetrics recomputes stored byte and entry counts for
// Prometheus and returns the byte total.
func (h *Handler) publishProxyCacheMetrics() int64 {
	if h.proxyCache == nil {
		return 0
	}

	var totalBytes int64
	h.proxyCache.Range(func(_ string, value interface{}) bool {
		if entry, ok := value.(proxyImageEntry); ok {
			totalBytes += int64(len(entry.Data))
		}
		return true
	})

	metrics.SetProxyCacheBytes(totalBytes)
	metrics.SetCacheEntries("proxy", h.proxyCache.GetStats().TotalKeys)
	return totalBytes
}
