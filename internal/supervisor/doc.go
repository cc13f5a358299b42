// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

// Package supervisor wires Heliodeck's long-running components into a
// suture/v4 supervision tree so a crashing component restarts with
// exponential backoff instead of taking the process down.
//
// # Tree layout
//
//	heliodeck (root)
//	├── maintenance-layer
//	│   └── cache-metrics (periodic Prometheus gauge refresh)
//	└── api-layer
//	    └── http-server
//
// Layers are separate child supervisors so a restart loop in one does
// not count against the failure budget of the other: the API keeps
// serving while a maintenance service is in backoff, and vice versa.
//
// Supervisor events (service failures, restarts, backoff transitions)
// are logged through sutureslog, which bridges to the application's
// zerolog output via logging.NewSlogLogger.
//
// # Usage
//
//	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
//	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second))
//	tree.AddMaintenanceService(services.NewCacheMetricsService(handler, time.Minute))
//	err = tree.Serve(ctx) // blocks until ctx is canceled
package supervisor
