// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

package services

import (
	"context"
	"time"
)

// CacheMetricsPublisher refreshes cache-derived Prometheus gauges.
// Satisfied by *api.Handler.
type CacheMetricsPublisher interface {
	PublishCacheMetrics()
}

// CacheMetricsService periodically refreshes cache gauge metrics (entry
// counts, stored proxy bytes) so the values stay current even when no
// requests are flowing. Handlers also refresh them on writes; this
// service covers eviction-only intervals.
type CacheMetricsService struct {
	publisher CacheMetricsPublisher
	interval  time.Duration
	name      string
}

// NewCacheMetricsService creates a metrics refresh service. A
// non-positive interval defaults to one minute.
func NewCacheMetricsService(publisher CacheMetricsPublisher, interval time.Duration) *CacheMetricsService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheMetricsService{
		publisher: publisher,
		interval:  interval,
		name:      "cache-metrics",
	}
}

// Serve implements suture.Service. Publishes once on start, then on
// every tick until the context is canceled.
func (s *CacheMetricsService) Serve(ctx context.Context) error {
	s.publisher.PublishCacheMetrics()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.publisher.PublishCacheMetrics()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// String implements fmt.Stringer for logging.
func (s *CacheMetricsService) String() string {
	return s.name
}
