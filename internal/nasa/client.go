// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

/*
client.go - Core NASA Open API Client

This file provides the core Client struct and HTTP communication layer for
the NASA Open API family (planetary/apod, mars-photos, neo/rest/v1) and the
EPIC API host.

Client Features:
  - HTTP client with configurable timeout (30s default)
  - API key injection as a query parameter on every request
  - Typed error taxonomy (see errors.go) so callers branch on failure class
  - JSON response parsing with goccy/go-json
  - Binary fetch mode for the image proxy
  - Context support for cancellation and timeouts

Related Files:
  - errors.go: Error kinds and status mapping
  - circuit_breaker.go: gobreaker wrapper around this client
  - analysis.go: Derived NEO/EPIC post-processing
*/

package nasa

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/heliodeck/internal/config"
	nasamodels "github.com/tomtom215/heliodeck/internal/models/nasa"
)

// userAgent identifies Heliodeck to upstream services.
const userAgent = "Heliodeck/1.0 (+https://github.com/tomtom215/heliodeck)"

// maxErrorBodySize limits the response body read for error reporting.
const maxErrorBodySize = 64 * 1024 // 64KB

// maxImageSize caps proxied image downloads.
const maxImageSize = 32 * 1024 * 1024 // 32MB

// epicBaseURL hosts the EPIC API, which lives off the main api.nasa.gov
// host and does not require an API key.
const epicBaseURL = "https://epic.gsfc.nasa.gov"

// MarsPhotosQuery holds the filter parameters for a rover photo listing.
// Exactly one of Sol (>= 0) or EarthDate should be set; Sol of -1 means
// unset. Camera and Page are optional.
type MarsPhotosQuery struct {
	Sol       int
	EarthDate string
	Camera    string
	Page      int
}

// ClientInterface defines the NASA API operations used by the gateway.
//
// It is implemented by Client for production use and by mock
// implementations for testing. All methods accept a context for
// cancellation, return typed response structs from internal/models/nasa,
// and surface failures as *Error so callers can branch on kind.
//
// Thread Safety: All methods are safe for concurrent use.
type ClientInterface interface {
	Ping(ctx context.Context) error
	APOD(ctx context.Context, date string, thumbs bool) (*nasamodels.APOD, error)
	APODRandom(ctx context.Context, count int) ([]nasamodels.APOD, error)
	APODRange(ctx context.Context, startDate, endDate string) ([]nasamodels.APOD, error)
	MarsManifest(ctx context.Context, rover string) (*nasamodels.ManifestResponse, error)
	MarsPhotos(ctx context.Context, rover string, query MarsPhotosQuery) (*nasamodels.MarsPhotosResponse, error)
	NEOFeed(ctx context.Context, startDate, endDate string, detailed bool) (*nasamodels.NEOFeed, error)
	NEOObject(ctx context.Context, id string) (*nasamodels.NearEarthObject, error)
	EPICImages(ctx context.Context, collection, date string) ([]nasamodels.EPICImage, error)
	EPICDates(ctx context.Context, collection string) ([]nasamodels.EPICDate, error)
	FetchImage(ctx context.Context, imageURL string) ([]byte, string, error)
}

// Client handles communication with the NASA Open API.
//
// Example:
//
//	client := nasa.NewClient(&cfg.NASA)
//	if err := client.Ping(ctx); err != nil {
//	    log.Fatal("NASA API not reachable:", err)
//	}
//	apod, err := client.APOD(ctx, "2026-01-15", false)
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a NASA API client from configuration. The HTTP
// timeout defaults to 30 seconds when the config leaves it unset.
func NewClient(cfg *config.NASAConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// readBodyForError reads the response body for error reporting (max 64KB).
func readBodyForError(r io.Reader) []byte {
	limitedReader := io.LimitReader(r, maxErrorBodySize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// transportError classifies a failed round trip (no response received)
// into a timeout or unreachable error.
func transportError(err error) *Error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &Error{Kind: KindTimeout, Message: "request timed out", Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Message: "request timed out", Err: err}
	}
	return &Error{Kind: KindUnreachable, Message: "upstream unreachable", Err: err}
}

// get performs a GET against a fully-built URL and returns the response,
// translating transport and status failures into typed errors. The caller
// owns the response body.
func (c *Client) get(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, transportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := readBodyForError(resp.Body)
		_ = resp.Body.Close()
		return nil, newStatusError(resp.StatusCode, string(body))
	}

	return resp, nil
}

// makeRequest handles common NASA API request boilerplate: it builds the
// URL with the API key, performs the request, and decodes the JSON body
// into result.
func (c *Client) makeRequest(ctx context.Context, base, path string, params url.Values, result interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	if base == c.baseURL {
		params.Set("api_key", c.apiKey)
	}

	reqURL := fmt.Sprintf("%s%s?%s", base, path, params.Encode())

	resp, err := c.get(ctx, reqURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(result); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// Ping verifies connectivity to the NASA API by requesting today's APOD.
func (c *Client) Ping(ctx context.Context) error {
	var entry nasamodels.APOD
	return c.makeRequest(ctx, c.baseURL, "/planetary/apod", nil, &entry)
}

// APOD retrieves the Astronomy Picture of the Day. An empty date means
// today; thumbs requests video thumbnail URLs.
func (c *Client) APOD(ctx context.Context, date string, thumbs bool) (*nasamodels.APOD, error) {
	params := url.Values{}
	if date != "" {
		params.Set("date", date)
	}
	if thumbs {
		params.Set("thumbs", "true")
	}

	var entry nasamodels.APOD
	if err := c.makeRequest(ctx, c.baseURL, "/planetary/apod", params, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// APODRandom retrieves count random APOD entries.
func (c *Client) APODRandom(ctx context.Context, count int) ([]nasamodels.APOD, error) {
	params := url.Values{}
	params.Set("count", strconv.Itoa(count))

	var entries []nasamodels.APOD
	if err := c.makeRequest(ctx, c.baseURL, "/planetary/apod", params, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// APODRange retrieves APOD entries for an inclusive date range.
func (c *Client) APODRange(ctx context.Context, startDate, endDate string) ([]nasamodels.APOD, error) {
	params := url.Values{}
	params.Set("start_date", startDate)
	params.Set("end_date", endDate)

	var entries []nasamodels.APOD
	if err := c.makeRequest(ctx, c.baseURL, "/planetary/apod", params, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// MarsManifest retrieves the mission manifest for a rover.
func (c *Client) MarsManifest(ctx context.Context, rover string) (*nasamodels.ManifestResponse, error) {
	var manifest nasamodels.ManifestResponse
	path := "/mars-photos/api/v1/manifests/" + url.PathEscape(rover)
	if err := c.makeRequest(ctx, c.baseURL, path, nil, &manifest); err != nil {
		return nil, err
	}
	return &manifest, nil
}

// MarsPhotos retrieves rover photos filtered by sol or earth date, with
// optional camera and page parameters.
func (c *Client) MarsPhotos(ctx context.Context, rover string, query MarsPhotosQuery) (*nasamodels.MarsPhotosResponse, error) {
	params := url.Values{}
	if query.Sol >= 0 {
		params.Set("sol", strconv.Itoa(query.Sol))
	} else if query.EarthDate != "" {
		params.Set("earth_date", query.EarthDate)
	}
	if query.Camera != "" {
		params.Set("camera", query.Camera)
	}
	if query.Page > 0 {
		params.Set("page", strconv.Itoa(query.Page))
	}

	var photos nasamodels.MarsPhotosResponse
	path := "/mars-photos/api/v1/rovers/" + url.PathEscape(rover) + "/photos"
	if err := c.makeRequest(ctx, c.baseURL, path, params, &photos); err != nil {
		return nil, err
	}
	return &photos, nil
}

// NEOFeed retrieves near-earth objects for an inclusive date window.
func (c *Client) NEOFeed(ctx context.Context, startDate, endDate string, detailed bool) (*nasamodels.NEOFeed, error) {
	params := url.Values{}
	params.Set("start_date", startDate)
	params.Set("end_date", endDate)
	if detailed {
		params.Set("detailed", "true")
	}

	var feed nasamodels.NEOFeed
	if err := c.makeRequest(ctx, c.baseURL, "/neo/rest/v1/feed", params, &feed); err != nil {
		return nil, err
	}
	return &feed, nil
}

// NEOObject retrieves a single asteroid by NeoWs identifier, including
// its full close-approach history and orbital data.
func (c *Client) NEOObject(ctx context.Context, id string) (*nasamodels.NearEarthObject, error) {
	var neo nasamodels.NearEarthObject
	path := "/neo/rest/v1/neo/" + url.PathEscape(id)
	if err := c.makeRequest(ctx, c.baseURL, path, nil, &neo); err != nil {
		return nil, err
	}
	return &neo, nil
}

// EPICImages retrieves EPIC image metadata for a collection ("natural" or
// "enhanced"). An empty date returns the most recent available imagery.
func (c *Client) EPICImages(ctx context.Context, collection, date string) ([]nasamodels.EPICImage, error) {
	path := "/api/" + url.PathEscape(collection)
	if date != "" {
		path += "/date/" + url.PathEscape(date)
	}

	var images []nasamodels.EPICImage
	if err := c.makeRequest(ctx, epicBaseURL, path, nil, &images); err != nil {
		return nil, err
	}
	return images, nil
}

// EPICDates retrieves all dates with available imagery for a collection.
func (c *Client) EPICDates(ctx context.Context, collection string) ([]nasamodels.EPICDate, error) {
	path := "/api/" + url.PathEscape(collection) + "/all"

	var dates []nasamodels.EPICDate
	if err := c.makeRequest(ctx, epicBaseURL, path, nil, &dates); err != nil {
		return nil, err
	}
	return dates, nil
}

// FetchImage downloads a binary payload for the image proxy, returning
// the bytes and the upstream Content-Type. Downloads are capped at
// maxImageSize.
func (c *Client) FetchImage(ctx context.Context, imageURL string) ([]byte, string, error) {
	resp, err := c.get(ctx, imageURL)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize+1))
	if err != nil {
		return nil, "", transportError(err)
	}
	if len(body) > maxImageSize {
		return nil, "", &Error{Kind: KindUpstream, Message: "image exceeds size limit"}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return body, contentType, nil
}
