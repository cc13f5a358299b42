// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/heliodeck/internal/config"
	"github.com/tomtom215/heliodeck/internal/models"
	nasamodels "github.com/tomtom215/heliodeck/internal/models/nasa"
	nasapkg "github.com/tomtom215/heliodeck/internal/nasa"
)

// testToday is the pinned "current" date used by test handlers.
const testToday = "2026-03-15"

// mockClient implements nasa.ClientInterface with canned responses and
// per-method call counters so tests can assert cache behavior.
type mockClient struct {
	pingErr error

	apod      *nasamodels.APOD
	apodErr   error
	apodCalls int

	apodRandomCalls int

	apodRangeCalls int

	manifest      *nasamodels.ManifestResponse
	manifestErr   error
	manifestCalls int

	photos           *nasamodels.MarsPhotosResponse
	photosErr        error
	photosCalls      int
	lastPhotosSol    int
	lastPhotosCamera string

	feed      *nasamodels.NEOFeed
	feedErr   error
	feedCalls int

	neo      *nasamodels.NearEarthObject
	neoErr   error
	neoCalls int

	epicImages     []nasamodels.EPICImage
	epicImagesErr  error
	epicImageCalls int

	epicDates     []nasamodels.EPICDate
	epicDateCalls int

	imageData   []byte
	imageType   string
	imageErr    error
	imageCalls  int
	lastFetched string
}

func (m *mockClient) Ping(ctx context.Context) error { return m.pingErr }

func (m *mockClient) APOD(ctx context.Context, date string, thumbs bool) (*nasamodels.APOD, error) {
	m.apodCalls++
	if m.apodErr != nil {
		return nil, m.apodErr
	}
	if m.apod != nil {
		return m.apod, nil
	}
	return &nasamodels.APOD{Date: date, Title: "Test Picture", MediaType: "image"}, nil
}

func (m *mockClient) APODRandom(ctx context.Context, count int) ([]nasamodels.APOD, error) {
	m.apodRandomCalls++
	pictures := make([]nasamodels.APOD, count)
	for i := range pictures {
		pictures[i] = nasamodels.APOD{Title: "Random", MediaType: "image"}
	}
	return pictures, nil
}

func (m *mockClient) APODRange(ctx context.Context, startDate, endDate string) ([]nasamodels.APOD, error) {
	m.apodRangeCalls++
	return []nasamodels.APOD{
		{Date: startDate, Title: "First", MediaType: "image"},
		{Date: endDate, Title: "Last", MediaType: "image"},
	}, nil
}

func (m *mockClient) MarsManifest(ctx context.Context, rover string) (*nasamodels.ManifestResponse, error) {
	m.manifestCalls++
	if m.manifestErr != nil {
		return nil, m.manifestErr
	}
	if m.manifest != nil {
		return m.manifest, nil
	}
	return &nasamodels.ManifestResponse{
		PhotoManifest: nasamodels.PhotoManifest{Name: rover, MaxSol: 1000, Status: "active"},
	}, nil
}

func (m *mockClient) MarsPhotos(ctx context.Context, rover string, query nasapkg.MarsPhotosQuery) (*nasamodels.MarsPhotosResponse, error) {
	m.photosCalls++
	m.lastPhotosSol = query.Sol
	m.lastPhotosCamera = query.Camera
	if m.photosErr != nil {
		return nil, m.photosErr
	}
	if m.photos != nil {
		return m.photos, nil
	}
	return &nasamodels.MarsPhotosResponse{
		Photos: []nasamodels.MarsPhoto{{ID: 1, Sol: query.Sol, ImgSrc: "https://mars.nasa.gov/1.jpg"}},
	}, nil
}

func (m *mockClient) NEOFeed(ctx context.Context, startDate, endDate string, detailed bool) (*nasamodels.NEOFeed, error) {
	m.feedCalls++
	if m.feedErr != nil {
		return nil, m.feedErr
	}
	if m.feed != nil {
		return m.feed, nil
	}
	return &nasamodels.NEOFeed{
		ElementCount:     0,
		NearEarthObjects: map[string][]nasamodels.NearEarthObject{},
	}, nil
}

func (m *mockClient) NEOObject(ctx context.Context, id string) (*nasamodels.NearEarthObject, error) {
	m.neoCalls++
	if m.neoErr != nil {
		return nil, m.neoErr
	}
	if m.neo != nil {
		return m.neo, nil
	}
	return &nasamodels.NearEarthObject{ID: id, Name: "(2026 TT)"}, nil
}

func (m *mockClient) EPICImages(ctx context.Context, collection, date string) ([]nasamodels.EPICImage, error) {
	m.epicImageCalls++
	if m.epicImagesErr != nil {
		return nil, m.epicImagesErr
	}
	if m.epicImages != nil {
		return m.epicImages, nil
	}
	return []nasamodels.EPICImage{
		{Identifier: "20260314003633", Image: "epic_1b_20260314003633", Date: "2026-03-14 00:36:33"},
	}, nil
}

func (m *mockClient) EPICDates(ctx context.Context, collection string) ([]nasamodels.EPICDate, error) {
	m.epicDateCalls++
	return m.epicDates, nil
}

func (m *mockClient) FetchImage(ctx context.Context, imageURL string) ([]byte, string, error) {
	m.imageCalls++
	m.lastFetched = imageURL
	if m.imageErr != nil {
		return nil, "", m.imageErr
	}
	if m.imageData != nil {
		return m.imageData, m.imageType, nil
	}
	return []byte{0xFF, 0xD8, 0xFF, 0xE0}, "image/jpeg", nil
}

func testConfig() *config.Config {
	return &config.Config{
		NASA: config.NASAConfig{
			APIKey:  "DEMO_KEY",
			BaseURL: "https://api.nasa.gov",
			Timeout: 5 * time.Second,
		},
		Cache: config.CacheConfig{
			DefaultTTL: time.Minute,
			LongTTL:    time.Hour,
		},
		Proxy: config.ProxyConfig{
			AllowedDomains: []string{"apod.nasa.gov", "mars.nasa.gov", "epic.gsfc.nasa.gov", "api.nasa.gov"},
			CacheTTL:       time.Minute,
		},
		Server: config.ServerConfig{
			Environment: "development",
		},
	}
}

// newTestHandler builds a handler over the mock client with the clock
// pinned so "today" defaults are deterministic.
func newTestHandler(t *testing.T, client *mockClient) *Handler {
	t.Helper()

	h := NewHandler(client, testConfig())
	h.now = func() time.Time {
		return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	}
	t.Cleanup(h.Close)
	return h
}

// decodeResponse unmarshals an envelope from a recorded response.
func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) *models.APIResponse {
	t.Helper()

	var response models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return &response
}

// doRequest executes a handler func directly, outside the router.
func doRequest(handler http.HandlerFunc, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

// doRouteRequest executes a request with chi URL params injected, for
// handlers that read path parameters.
func doRouteRequest(handler http.HandlerFunc, target string, params map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)

	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

// requireError asserts an error envelope with the given status and code.
func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) *models.APIResponse {
	t.Helper()

	if rec.Code != status {
		t.Fatalf("Expected status %d, got %d (body: %s)", status, rec.Code, rec.Body.String())
	}
	response := decodeResponse(t, rec)
	if response.Success {
		t.Error("Expected success=false")
	}
	if response.Error == nil {
		t.Fatal("Expected error details")
	}
	if response.Error.Code != code {
		t.Errorf("Expected error code %s, got %s", code, response.Error.Code)
	}
	return response
}

var errBoom = errors.New("boom")
