// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	nasamodels "github.com/tomtom215/heliodeck/internal/models/nasa"
	nasapkg "github.com/tomtom215/heliodeck/internal/nasa"
)

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean_string", "apod.nasa.gov", "apod.nasa.gov"},
		{"newline_injection", "host\nFAKE LOG LINE", "host\\x0aFAKE LOG LINE"},
		{"carriage_return", "a\rb", "a\\x0db"},
		{"tab", "a\tb", "a\\x09b"},
		{"delete_char", "a\x7fb", "a\\x7fb"},
		{"unicode_preserved", "名前", "名前"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := sanitizeLogValue(tt.input); got != tt.want {
				t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGenerateETag_DeterministicAndDistinct(t *testing.T) {
	t.Parallel()

	a := generateETag([]byte(`{"success":true}`))
	b := generateETag([]byte(`{"success":true}`))
	c := generateETag([]byte(`{"success":false}`))

	if a != b {
		t.Error("Same payload must produce the same ETag")
	}
	if a == c {
		t.Error("Different payloads must produce different ETags")
	}
}

func TestIsNilResponse(t *testing.T) {
	t.Parallel()

	var nilAPOD *nasamodels.APOD
	var nilSlice []nasamodels.APOD

	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil_interface", nil, true},
		{"typed_nil_pointer", nilAPOD, true},
		{"nil_slice", nilSlice, true},
		{"non_nil_pointer", &nasamodels.APOD{}, false},
		{"empty_slice", []nasamodels.APOD{}, false},
		{"plain_value", 42, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := isNilResponse(tt.value); got != tt.want {
				t.Errorf("isNilResponse(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestServeCached_NilUpstreamPayloadIsBadGateway(t *testing.T) {
	t.Parallel()

	client := &mockClient{}
	h := newTestHandler(t, client)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/apod", nil)

	serveCached(h, rec, req, upstreamFetch[*nasamodels.APOD]{
		Resource: "apod",
		Endpoint: "apod",
		Params:   map[string]string{"date": "2026-03-01"},
		Call: func(ctx context.Context) (*nasamodels.APOD, error) {
			return nil, nil
		},
	})

	if rec.Code != http.StatusBadGateway {
		t.Errorf("Expected 502 for nil payload, got %d", rec.Code)
	}
}

func TestGetIntParam(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/x?page=3&bad=abc", nil)

	if got := getIntParam(req, "page", 1); got != 3 {
		t.Errorf("Expected 3, got %d", got)
	}
	if got := getIntParam(req, "bad", 7); got != 7 {
		t.Errorf("Expected default 7 for unparsable value, got %d", got)
	}
	if got := getIntParam(req, "missing", 5); got != 5 {
		t.Errorf("Expected default 5 for missing param, got %d", got)
	}
}

func TestUpstreamErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		kind   nasapkg.ErrorKind
		status int
		code   string
	}{
		{"rate_limited", nasapkg.KindRateLimited, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED"},
		{"timeout", nasapkg.KindTimeout, http.StatusRequestTimeout, "NASA_API_ERROR"},
		{"unavailable", nasapkg.KindUnavailable, http.StatusServiceUnavailable, "NASA_API_ERROR"},
		{"not_found", nasapkg.KindNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"generic_upstream", nasapkg.KindUpstream, http.StatusBadGateway, "NASA_API_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			respondUpstreamError(rec, "apod", &nasapkg.Error{Kind: tt.kind, Message: "upstream failed"})

			requireError(t, rec, tt.status, tt.code)
		})
	}
}

func TestUpstreamErrorBodyNeverEchoedToClient(t *testing.T) {
	t.Parallel()

	// Upstream error bodies can quote the request URL, which embeds the
	// API key, so the envelope must carry the fixed per-kind message.
	rawBody := "OVER_RATE_LIMIT for https://api.nasa.gov/neo/rest/v1/feed?api_key=SECRET"
	rec := httptest.NewRecorder()
	respondUpstreamError(rec, "neo-feed", &nasapkg.Error{
		Kind:           nasapkg.KindRateLimited,
		UpstreamStatus: http.StatusTooManyRequests,
		Message:        rawBody,
	})

	requireError(t, rec, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED")
	if strings.Contains(rec.Body.String(), "SECRET") {
		t.Errorf("Envelope must not echo upstream body, got %s", rec.Body.String())
	}
	response := decodeResponse(t, rec)
	if response.Error.Message != "NASA API rate limit exceeded, try again later" {
		t.Errorf("Expected fixed per-kind message, got %q", response.Error.Message)
	}
}
