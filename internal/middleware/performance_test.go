// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestPerformanceMonitor_RecordAndStats(t *testing.T) {
	pm := NewPerformanceMonitor(100)

	durations := []int64{10, 20, 30, 40, 50}
	for _, d := range durations {
		pm.RecordRequest(&RequestMetrics{
			Path:       "/api/v1/apod",
			Method:     http.MethodGet,
			DurationMS: d,
			StatusCode: http.StatusOK,
			Timestamp:  time.Now(),
		})
	}

	stats := pm.GetStats()
	if len(stats) != 1 {
		t.Fatalf("Expected 1 endpoint stat, got %d", len(stats))
	}

	stat := stats[0]
	if stat.Path != "GET /api/v1/apod" {
		t.Errorf("Expected endpoint key 'GET /api/v1/apod', got %s", stat.Path)
	}
	if stat.RequestCount != 5 {
		t.Errorf("Expected 5 requests, got %d", stat.RequestCount)
	}
	if stat.AvgDuration != 30 {
		t.Errorf("Expected average 30ms, got %f", stat.AvgDuration)
	}
	if stat.MinDuration != 10 || stat.MaxDuration != 50 {
		t.Errorf("Expected min 10 / max 50, got %d / %d", stat.MinDuration, stat.MaxDuration)
	}
	if stat.P50Duration != 30 {
		t.Errorf("Expected p50 30ms, got %d", stat.P50Duration)
	}
}

func TestPerformanceMonitor_SlidingWindow(t *testing.T) {
	pm := NewPerformanceMonitor(3)

	for i := 0; i < 5; i++ {
		pm.RecordRequest(&RequestMetrics{
			Path:       "/api/v1/neows/feed",
			Method:     http.MethodGet,
			DurationMS: int64(i),
			StatusCode: http.StatusOK,
			Timestamp:  time.Now(),
		})
	}

	recent := pm.GetRecentMetrics(10)
	if len(recent) != 3 {
		t.Fatalf("Expected window capped at 3 metrics, got %d", len(recent))
	}

	// Oldest samples should be evicted
	if recent[0].DurationMS != 2 {
		t.Errorf("Expected oldest retained sample to be 2, got %d", recent[0].DurationMS)
	}
}

func TestPerformanceMonitor_MultipleEndpoints(t *testing.T) {
	pm := NewPerformanceMonitor(100)

	for i := 0; i < 3; i++ {
		pm.RecordRequest(&RequestMetrics{
			Path: "/api/v1/apod", Method: http.MethodGet, DurationMS: 5, StatusCode: 200, Timestamp: time.Now(),
		})
	}
	pm.RecordRequest(&RequestMetrics{
		Path: "/api/v1/epic/images", Method: http.MethodGet, DurationMS: 9, StatusCode: 200, Timestamp: time.Now(),
	})

	stats := pm.GetStats()
	if len(stats) != 2 {
		t.Fatalf("Expected 2 endpoint stats, got %d", len(stats))
	}

	// Sorted by request count descending
	if stats[0].Path != "GET /api/v1/apod" {
		t.Errorf("Expected busiest endpoint first, got %s", stats[0].Path)
	}
}

func TestPerformanceMonitor_Middleware(t *testing.T) {
	pm := NewPerformanceMonitor(10)

	handler := pm.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/mars/curiosity/photos", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 to pass through, got %d", rec.Code)
	}

	recent := pm.GetRecentMetrics(1)
	if len(recent) != 1 {
		t.Fatalf("Expected 1 recorded metric, got %d", len(recent))
	}
	if recent[0].StatusCode != http.StatusNotFound {
		t.Errorf("Expected recorded status 404, got %d", recent[0].StatusCode)
	}
	// Rover names collapse to a placeholder so per-rover traffic shares
	// one endpoint bucket.
	if recent[0].Path != "/api/v1/mars/{rover}/photos" {
		t.Errorf("Unexpected recorded path: %s", recent[0].Path)
	}
}

func TestPercentile_Empty(t *testing.T) {
	if got := percentile(nil, 0.95); got != 0 {
		t.Errorf("Expected 0 for empty slice, got %d", got)
	}
}
