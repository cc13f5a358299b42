// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/heliodeck/internal/metrics"
)

// PrometheusMetrics instruments a handler with request counters,
// duration histograms and an active-request gauge. Paths are collapsed
// to their route shape before being used as labels so that rover names
// and asteroid IDs do not explode label cardinality.
func PrometheusMetrics(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		done := metrics.TrackActiveRequest()
		defer done()

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next(sw, r)

		metrics.RecordAPIRequest(r.Method, normalizeEndpoint(r.URL.Path), sw.status, time.Since(start))
	}
}

// normalizeEndpoint replaces variable path segments with placeholders:
//
//	/api/v1/mars/perseverance/photos -> /api/v1/mars/{rover}/photos
//	/api/v1/neows/object/3542519     -> /api/v1/neows/object/{id}
func normalizeEndpoint(path string) string {
	const (
		marsPrefix = "/api/v1/mars/"
		neoPrefix  = "/api/v1/neows/object/"
	)

	switch {
	case strings.HasPrefix(path, neoPrefix):
		return neoPrefix + "{id}"
	case strings.HasPrefix(path, marsPrefix):
		rest := path[len(marsPrefix):]
		if rest == "rovers" {
			return path
		}
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			return marsPrefix + "{rover}" + rest[i:]
		}
		return marsPrefix + "{rover}"
	default:
		return path
	}
}

// statusWriter captures the status code written by the handler.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}
