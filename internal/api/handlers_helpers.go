// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/heliodeck/internal/cache"
	"github.com/tomtom215/heliodeck/internal/logging"
	"github.com/tomtom215/heliodeck/internal/metrics"
	"github.com/tomtom215/heliodeck/internal/models"
	"github.com/tomtom215/heliodeck/internal/nasa"
)

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
// This includes newlines, carriage returns, tabs, and other control characters that could
// allow attackers to forge log entries or corrupt log files.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		// Replace control characters (0x00-0x1F and 0x7F) with a safe representation
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=60")
	w.Header().Set("Vary", "Accept-Encoding")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	etag := generateETag(data)
	w.Header().Set("ETag", etag)

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag creates a simple ETag from data using FNV-1a hash
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, code, message, endpoint string, err error) {
	respondErrorWithDetails(w, status, code, message, endpoint, nil, err)
}

// respondErrorWithDetails sends an error response with structured details
func respondErrorWithDetails(w http.ResponseWriter, status int, code, message, endpoint string, details map[string]interface{}, err error) {
	if err != nil {
		// Sanitize error output to prevent log injection attacks
		logging.Error().Str("code", sanitizeLogValue(code)).Str("error", sanitizeLogValue(err.Error())).Msg("API Error")
	}

	respondJSON(w, status, &models.APIResponse{
		Success: false,
		Data:    nil,
		Meta: models.Meta{
			Endpoint:  endpoint,
			Timestamp: time.Now(),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// respondInvalid sends a 400 INVALID_REQUEST for bad input
func respondInvalid(w http.ResponseWriter, endpoint, message string) {
	respondError(w, http.StatusBadRequest, models.ErrCodeInvalidRequest, message, endpoint, nil)
}

// respondUpstreamError maps a client error onto the gateway's error
// taxonomy: typed *nasa.Error values pick their own status and code,
// everything else is an INTERNAL_ERROR.
func respondUpstreamError(w http.ResponseWriter, endpoint string, err error) {
	var nasaErr *nasa.Error
	if errors.As(err, &nasaErr) {
		details := map[string]interface{}{"kind": nasaErr.Kind.String()}
		if nasaErr.UpstreamStatus != 0 {
			details["upstream_status"] = nasaErr.UpstreamStatus
		}
		respondErrorWithDetails(w, nasaErr.HTTPStatus(), nasaErr.Code(), nasaErr.PublicMessage(), endpoint, details, err)
		return
	}

	respondError(w, http.StatusInternalServerError, models.ErrCodeInternalError,
		"An unexpected error occurred", endpoint, err)
}

// respondOK sends a successful response for endpoints that bypass the
// cache (random draws, locally-computed data)
func respondOK(w http.ResponseWriter, endpoint string, params map[string]string, data interface{}, queryTime time.Duration) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Success: true,
		Data:    data,
		Meta: models.Meta{
			Endpoint:    endpoint,
			Params:      params,
			Timestamp:   time.Now(),
			QueryTimeMS: queryTime.Milliseconds(),
		},
	})
}

// getIntParam extracts an integer query parameter with a default value
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// upstreamFetch describes one cached upstream request. R is the raw
// payload type returned by the NASA client.
type upstreamFetch[R any] struct {
	// Resource is the cache namespace and metrics resource label
	Resource string

	// Endpoint is the logical endpoint name echoed in response meta
	Endpoint string

	// Params are the effective request parameters; they key the cache
	// entry and are echoed in response meta
	Params map[string]string

	// TTL overrides the cache default when > 0 (manifests, object lookups)
	TTL time.Duration

	// Call invokes the NASA client with the already-validated parameters
	Call func(ctx context.Context) (R, error)

	// View reshapes the raw payload for the client. It runs on every
	// request, including cache hits, so computed projections (risk
	// summaries, EPIC URLs) are never stored. nil serves the raw payload.
	View func(R) interface{}
}

// serveCached is the shared pipeline for all cached gateway endpoints:
// cache probe, upstream call on miss, store raw payload, reshape, respond.
// Only the raw upstream payload is cached; views are recomputed per request.
func serveCached[R any](h *Handler, w http.ResponseWriter, r *http.Request, f upstreamFetch[R]) {
	view := f.View
	if view == nil {
		view = func(raw R) interface{} { return raw }
	}

	key := cache.GenerateKey(f.Resource, f.Params)

	if h.cache != nil {
		if cached, found := h.cache.Get(key); found {
			if raw, ok := cached.(R); ok {
				metrics.RecordCacheHit("gateway")
				respondJSON(w, http.StatusOK, &models.APIResponse{
					Success: true,
					Data:    view(raw),
					Meta: models.Meta{
						Endpoint:  f.Endpoint,
						Params:    f.Params,
						Cached:    true,
						Timestamp: time.Now(),
					},
				})
				return
			}
			// Type mismatch means a stale entry from an old build; fall
			// through and refetch
		}
		metrics.RecordCacheMiss("gateway")
	}

	start := time.Now()
	raw, err := f.Call(r.Context())
	if err != nil {
		metrics.RecordUpstreamRequest(f.Resource, "error", time.Since(start))
		respondUpstreamError(w, f.Endpoint, err)
		return
	}
	queryTime := time.Since(start)
	metrics.RecordUpstreamRequest(f.Resource, "success", queryTime)

	if isNilResponse(raw) {
		respondError(w, http.StatusBadGateway, models.ErrCodeNASAAPIError,
			"Received empty response from NASA API", f.Endpoint, nil)
		return
	}

	if h.cache != nil {
		if f.TTL > 0 {
			h.cache.SetWithTTL(key, raw, f.TTL)
		} else {
			h.cache.Set(key, raw)
		}
		metrics.SetCacheEntries("gateway", h.cache.GetStats().TotalKeys)
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Success: true,
		Data:    view(raw),
		Meta: models.Meta{
			Endpoint:    f.Endpoint,
			Params:      f.Params,
			Cached:      false,
			Timestamp:   time.Now(),
			QueryTimeMS: queryTime.Milliseconds(),
		},
	})
}

// timeParseDate parses a YYYY-MM-DD date string.
func timeParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// isNilResponse checks if a generic response value is nil.
// This is necessary because Go's generics don't allow direct nil comparison
// for type parameters. When R is a pointer type like *SomeStruct, we need
// reflection to properly detect a nil pointer value.
func isNilResponse(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
