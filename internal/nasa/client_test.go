// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

package nasa

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/heliodeck/internal/config"
)

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(&config.NASAConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	})
	return client, server
}

func TestClientInjectsAPIKey(t *testing.T) {
	var gotKey, gotUserAgent string
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("api_key")
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"date":"2026-01-15","title":"Test","explanation":"","url":"https://apod.nasa.gov/x.jpg","media_type":"image"}`))
	})

	apod, err := client.APOD(context.Background(), "2026-01-15", false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if gotKey != "test-key" {
		t.Errorf("Expected api_key query param, got %q", gotKey)
	}
	if gotUserAgent == "" {
		t.Error("Expected User-Agent header to be set")
	}
	if apod.Title != "Test" {
		t.Errorf("Expected title Test, got %s", apod.Title)
	}
}

func TestClientErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantKind   ErrorKind
		wantStatus int
		wantCode   string
	}{
		{"rate limited", http.StatusTooManyRequests, KindRateLimited, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED"},
		{"invalid api key", http.StatusForbidden, KindInvalidAPIKey, http.StatusBadGateway, "NASA_API_ERROR"},
		{"server error", http.StatusInternalServerError, KindUnavailable, http.StatusServiceUnavailable, "NASA_API_ERROR"},
		{"bad gateway upstream", http.StatusBadGateway, KindUnavailable, http.StatusServiceUnavailable, "NASA_API_ERROR"},
		{"not found", http.StatusNotFound, KindNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"other 4xx", http.StatusBadRequest, KindUpstream, http.StatusBadGateway, "NASA_API_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "upstream says no", tt.status)
			})

			_, err := client.APOD(context.Background(), "", false)
			if err == nil {
				t.Fatal("Expected error")
			}

			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("Expected *Error, got %T: %v", err, err)
			}

			if apiErr.Kind != tt.wantKind {
				t.Errorf("Expected kind %s, got %s", tt.wantKind, apiErr.Kind)
			}
			if apiErr.UpstreamStatus != tt.status {
				t.Errorf("Expected upstream status %d, got %d", tt.status, apiErr.UpstreamStatus)
			}
			if apiErr.HTTPStatus() != tt.wantStatus {
				t.Errorf("Expected gateway status %d, got %d", tt.wantStatus, apiErr.HTTPStatus())
			}
			if apiErr.Code() != tt.wantCode {
				t.Errorf("Expected code %s, got %s", tt.wantCode, apiErr.Code())
			}
		})
	}
}

func TestClientTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(server.Close)

	client := NewClient(&config.NASAConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Timeout: 20 * time.Millisecond,
	})

	_, err := client.APOD(context.Background(), "", false)
	if err == nil {
		t.Fatal("Expected timeout error")
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *Error, got %T", err)
	}
	if apiErr.Kind != KindTimeout {
		t.Errorf("Expected timeout kind, got %s", apiErr.Kind)
	}
	if apiErr.HTTPStatus() != http.StatusRequestTimeout {
		t.Errorf("Expected 408, got %d", apiErr.HTTPStatus())
	}
}

func TestClientUnreachable(t *testing.T) {
	// Reserved TEST-NET-1 address, nothing listens there.
	client := NewClient(&config.NASAConfig{
		APIKey:  "test-key",
		BaseURL: "http://192.0.2.1:9",
		Timeout: 100 * time.Millisecond,
	})

	_, err := client.APOD(context.Background(), "", false)
	if err == nil {
		t.Fatal("Expected error")
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *Error, got %T", err)
	}
	if apiErr.Kind != KindTimeout && apiErr.Kind != KindUnreachable {
		t.Errorf("Expected timeout or unreachable kind, got %s", apiErr.Kind)
	}
}

func TestClientMarsPhotosQuery(t *testing.T) {
	var gotQuery map[string]string
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"sol":        r.URL.Query().Get("sol"),
			"earth_date": r.URL.Query().Get("earth_date"),
			"camera":     r.URL.Query().Get("camera"),
			"page":       r.URL.Query().Get("page"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"photos":[]}`))
	})

	_, err := client.MarsPhotos(context.Background(), "curiosity", MarsPhotosQuery{
		Sol:    1000,
		Camera: "FHAZ",
		Page:   2,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if gotQuery["sol"] != "1000" {
		t.Errorf("Expected sol=1000, got %q", gotQuery["sol"])
	}
	if gotQuery["earth_date"] != "" {
		t.Error("Expected earth_date to be omitted when sol is set")
	}
	if gotQuery["camera"] != "FHAZ" || gotQuery["page"] != "2" {
		t.Errorf("Expected camera/page forwarded, got %+v", gotQuery)
	}
}

func TestClientNEOFeedDecodes(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("start_date") != "2026-01-10" {
			t.Errorf("Expected start_date forwarded, got %q", r.URL.Query().Get("start_date"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"element_count":0,"near_earth_objects":{}}`))
	})

	feed, err := client.NEOFeed(context.Background(), "2026-01-10", "2026-01-12", false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if feed.ElementCount != 0 {
		t.Errorf("Expected 0 elements, got %d", feed.ElementCount)
	}
}

func TestClientFetchImage(t *testing.T) {
	payload := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(payload)
	}))
	t.Cleanup(server.Close)

	client := NewClient(&config.NASAConfig{
		APIKey:  "test-key",
		BaseURL: "https://api.nasa.gov",
		Timeout: 5 * time.Second,
	})

	body, contentType, err := client.FetchImage(context.Background(), server.URL+"/image.jpg")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if contentType != "image/jpeg" {
		t.Errorf("Expected image/jpeg, got %s", contentType)
	}
	if len(body) != len(payload) {
		t.Errorf("Expected %d bytes, got %d", len(payload), len(body))
	}
}

func TestClientFetchImageNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	client := NewClient(&config.NASAConfig{
		APIKey:  "test-key",
		BaseURL: "https://api.nasa.gov",
		Timeout: 5 * time.Second,
	})

	_, _, err := client.FetchImage(context.Background(), server.URL+"/missing.jpg")
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindNotFound {
		t.Errorf("Expected not found kind, got %v", err)
	}
}
