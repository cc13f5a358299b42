// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

// Package api implements the HTTP surface of the gateway: the chi
// routing tree, the handler methods for every NASA data endpoint, the
// image proxy, and the health/monitoring endpoints.
//
// All responses use a uniform JSON envelope (models.APIResponse) so
// dashboard clients can handle success and error payloads with one
// code path. Handlers fetch through a shared cached pipeline
// (serveCached in handlers_helpers.go) that consults the TTL cache,
// records Prometheus metrics, and reshapes raw upstream payloads into
// dashboard views on every request.
//
// Middleware factories in chi_middleware.go wrap the production
// implementations from the chi ecosystem (go-chi/cors, go-chi/httprate)
// with the gateway's configuration, error envelope, and metrics.
// Middleware written against the plain http.HandlerFunc signature is
// bridged to chi with chiMiddleware in chi_router.go.
package api
