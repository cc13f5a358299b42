// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

/*
Package middleware provides HTTP middleware components for the gateway.

This package implements infrastructure middleware for compression,
performance monitoring, and Prometheus metrics integration. The chi
router wires these into a complete middleware stack for HTTP request
processing.

Key Components:

  - Compression: Gzip compression for JSON responses (skips proxied images)
  - Performance Monitor: Request latency tracking with percentile calculations
  - Prometheus Metrics: HTTP request/response instrumentation with
    route-shape path normalization to bound label cardinality

Middleware in this package uses the func(http.HandlerFunc) http.HandlerFunc
signature; internal/api bridges it to chi's func(http.Handler) http.Handler
via a small adapter.

Performance Characteristics:

  - Compression: 70-90% size reduction for NEO feed and Mars photo JSON
  - Metrics overhead: <0.1ms per request
  - Performance monitor: sliding window of recent latency samples

Thread Safety:

All middleware components are thread-safe:
  - Compression uses pooled per-request gzip writers
  - Performance monitor uses sync.RWMutex
  - Prometheus metrics use atomic operations

See Also:

  - internal/api: HTTP handlers wrapped by middleware
  - internal/metrics: Prometheus metrics definitions
*/
package middleware
