// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

// Package metrics exposes Prometheus instrumentation for the gateway.
//
// Metrics are registered via promauto at package load and served from the
// /metrics endpoint. Four concern areas are covered:
//
//   - API: request counts, latency histograms, and in-flight gauge,
//     labeled by method, logical endpoint, and status code.
//   - Upstream: NASA API call counts and durations, labeled by resource
//     and outcome (success or error kind).
//   - Cache: hits, misses, evictions, and entry counts for the gateway
//     payload cache and the image proxy cache, plus the proxied byte
//     total gauge.
//   - Circuit breaker: state gauge, per-result request counts, and
//     state-transition counters for the upstream breaker.
//
// Helper functions (RecordAPIRequest, TrackActiveRequest, and friends)
// wrap the label plumbing so call sites stay one-liners.
package metrics
