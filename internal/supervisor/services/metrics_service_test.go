// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingPublisher struct {
	calls atomic.Int32
}

func (p *countingPublisher) PublishCacheMetrics() {
	p.calls.Add(1)
}

func TestCacheMetricsService_PublishesOnStartAndTick(t *testing.T) {
	t.Parallel()

	publisher := &countingPublisher{}
	svc := NewCacheMetricsService(publisher, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.After(2 * time.Second)
	for publisher.calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("Expected at least 3 publishes, got %d", publisher.calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestCacheMetricsService_DefaultInterval(t *testing.T) {
	t.Parallel()

	svc := NewCacheMetricsService(&countingPublisher{}, 0)
	if svc.interval != time.Minute {
		t.Errorf("Expected 1m default interval, got %s", svc.interval)
	}
}

func TestCacheMetricsService_String(t *testing.T) {
	t.Parallel()

	svc := NewCacheMetricsService(&countingPublisher{}, time.Second)
	if svc.String() != "cache-metrics" {
		t.Errorf("Expected cache-metrics, got %s", svc.String())
	}
}
