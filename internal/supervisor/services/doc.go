// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

// Package services contains suture.Service adapters for Heliodeck's
// long-running components.
//
// Each adapter translates a component's own lifecycle idiom into
// suture's single blocking Serve(ctx) call:
//
//   - HTTPServerService: http.Server's ListenAndServe/Shutdown pair
//   - CacheMetricsService: a plain ticker loop
//
// Adapters return ctx.Err() on graceful shutdown so the supervisor can
// distinguish an ordered stop from a crash, and implement fmt.Stringer
// so supervisor logs carry stable service names.
package services
