// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

package models

import (
	"time"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
// It provides consistent structure for both successful and error responses, with metadata
// for observability and cache visibility.
//
// Success field values:
//   - true: Request completed successfully, see Data field
//   - false: Request failed, see Error field for details
//
// Fields:
//   - Success: Whether the request succeeded
//   - Data: Response payload (any JSON-serializable type, null on error)
//   - Meta: Request metadata (endpoint, echoed params, cache status, timestamp)
//   - Error: Error details (populated only when Success is false)
//
// Example successful response:
//
//	{
//	  "success": true,
//	  "data": {"title": "Pillars of Creation", ...},
//	  "meta": {
//	    "endpoint": "apod",
//	    "params": {"date": "2026-01-15"},
//	    "cached": true,
//	    "timestamp": "2026-01-15T12:00:00Z"
//	  }
//	}
//
// Example error response:
//
//	{
//	  "success": false,
//	  "error": {
//	    "code": "INVALID_REQUEST",
//	    "message": "Invalid date format. Use YYYY-MM-DD",
//	    "details": {"field": "date"}
//	  },
//	  "meta": {"endpoint": "apod", "timestamp": "2026-01-15T12:00:00Z"}
//	}
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Meta    Meta        `json:"meta"`
	Error   *APIError   `json:"error,omitempty"`
}

// Meta contains response metadata for observability and cache visibility.
// All API responses include this metadata so clients and dashboards can tell
// which logical endpoint answered, with which effective parameters, and
// whether the upstream call was skipped in favor of a cached payload.
//
// Fields:
//   - Endpoint: Logical endpoint name (e.g., "apod", "mars-photos", "neo-feed")
//   - Params: Effective request parameters after defaults were applied
//   - Cached: Whether the upstream payload was served from cache
//   - Timestamp: Server time when response was generated (RFC3339 format)
//   - QueryTimeMS: Upstream fetch time in milliseconds (0 if cached)
//   - LatestSol: Resolved sol for "latest photos" requests (omitted elsewhere)
//
// Example cache hit:
//
//	{
//	  "endpoint": "neo-feed",
//	  "params": {"start_date": "2026-01-10", "end_date": "2026-01-15"},
//	  "cached": true,
//	  "timestamp": "2026-01-15T12:00:00Z"
//	}
type Meta struct {
	Endpoint    string            `json:"endpoint"`
	Params      map[string]string `json:"params,omitempty"`
	Cached      bool              `json:"cached"`
	Timestamp   time.Time         `json:"timestamp"`
	QueryTimeMS int64             `json:"query_time_ms,omitempty"`
	LatestSol   int               `json:"latest_sol,omitempty"`
}

// APIError represents an error response with structured error details.
// Provides consistent error format across all API endpoints for better client handling.
//
// Fields:
//   - Code: Machine-readable error code (e.g., "INVALID_REQUEST", "NASA_API_ERROR")
//   - Message: Human-readable error message
//   - Details: Additional context (field names, constraints, upstream status)
//
// Error codes:
//   - INVALID_REQUEST: Invalid input parameters (400)
//   - NASA_API_ERROR: Upstream NASA API failure (502/503)
//   - RATE_LIMIT_EXCEEDED: Upstream or local rate limit hit (429)
//   - INTERNAL_ERROR: Unexpected gateway failure (500)
//   - NOT_FOUND: Resource doesn't exist (404)
//   - CACHE_ERROR: Cache subsystem failure (500)
//
// Example:
//
//	{
//	  "code": "INVALID_REQUEST",
//	  "message": "count must be between 1 and 100",
//	  "details": {
//	    "field": "count",
//	    "value": 500,
//	    "constraint": "max_100"
//	  }
//	}
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error code constants used across handlers and the upstream client.
const (
	ErrCodeInvalidRequest    = "INVALID_REQUEST"
	ErrCodeNASAAPIError      = "NASA_API_ERROR"
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeCacheError        = "CACHE_ERROR"
)

// HealthResponse represents the /health endpoint payload. It reports gateway
// liveness, upstream NASA API reachability, and cache effectiveness in one
// condensed status document for dashboards and orchestrators.
//
// Status field values:
//   - "healthy": Gateway up and upstream reachable
//   - "degraded": Gateway up but upstream unreachable or circuit open
//
// Example:
//
//	{
//	  "status": "healthy",
//	  "version": "1.2.0",
//	  "uptime_seconds": 86400,
//	  "nasa_api": {"reachable": true, "latency_ms": 120},
//	  "cache": {"hits": 5120, "misses": 431, "hit_rate": 92.2, "total_keys": 87}
//	}
type HealthResponse struct {
	Status        string         `json:"status"`
	Version       string         `json:"version"`
	UptimeSeconds int64          `json:"uptime_seconds"`
	NASAAPI       UpstreamHealth `json:"nasa_api"`
	Cache         CacheHealth    `json:"cache"`
	Timestamp     time.Time      `json:"timestamp"`
}

// UpstreamHealth reports reachability of the upstream NASA API.
type UpstreamHealth struct {
	Reachable bool   `json:"reachable"`
	LatencyMS int64  `json:"latency_ms,omitempty"`
	Error     string `json:"error,omitempty"`
}

// CacheHealth reports cache effectiveness counters for the health endpoint.
type CacheHealth struct {
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	HitRate   float64 `json:"hit_rate"`
	TotalKeys int64   `json:"total_keys"`
}

// CacheStatsResponse is the payload of the proxy cache statistics endpoint.
// TotalBytes sums the stored payload sizes of proxied images only.
type CacheStatsResponse struct {
	Hits       int64     `json:"hits"`
	Misses     int64     `json:"misses"`
	Evictions  int64     `json:"evictions"`
	HitRate    float64   `json:"hit_rate"`
	TotalKeys  int64     `json:"total_keys"`
	TotalBytes int64     `json:"total_bytes"`
	LastSweep  time.Time `json:"last_sweep,omitempty"`
}
