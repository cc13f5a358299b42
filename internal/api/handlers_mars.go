// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/heliodeck/internal/cache"
	"github.com/tomtom215/heliodeck/internal/metrics"
	"github.com/tomtom215/heliodeck/internal/models"
	nasamodels "github.com/tomtom215/heliodeck/internal/models/nasa"
	nasapkg "github.com/tomtom215/heliodeck/internal/nasa"
	"github.com/tomtom215/heliodeck/internal/validation"
)

// MarsRovers lists the known rovers and their camera catalogs. The
// catalog is static, so no upstream call is made.
func (h *Handler) MarsRovers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Success: true,
		Data:    nasapkg.Rovers(),
		Meta: models.Meta{
			Endpoint:  "mars-rovers",
			Timestamp: time.Now(),
		},
	})
}

// MarsManifest serves a rover's mission manifest. Manifests change at
// most once per sol, so they get the long cache TTL.
func (h *Handler) MarsManifest(w http.ResponseWriter, r *http.Request) {
	rover, ok := h.roverParam(w, r, "mars-manifest")
	if !ok {
		return
	}

	serveCached(h, w, r, upstreamFetch[*nasamodels.ManifestResponse]{
		Resource: "mars-manifest",
		Endpoint: "mars-manifest",
		Params:   map[string]string{"rover": rover},
		TTL:      h.longTTL(),
		Call: func(ctx context.Context) (*nasamodels.ManifestResponse, error) {
			return h.client.MarsManifest(ctx, rover)
		},
	})
}

// MarsPhotos serves photos for a rover filtered by sol or earth_date.
// Exactly one of the two is required; sol wins if both are supplied.
func (h *Handler) MarsPhotos(w http.ResponseWriter, r *http.Request) {
	rover, ok := h.roverParam(w, r, "mars-photos")
	if !ok {
		return
	}

	q := r.URL.Query()
	solParam := q.Get("sol")
	earthDate := q.Get("earth_date")

	if solParam == "" && earthDate == "" {
		respondInvalid(w, "mars-photos", "Either sol or earth_date parameter is required")
		return
	}

	query := nasapkg.MarsPhotosQuery{Sol: -1}
	params := map[string]string{"rover": rover}

	if solParam != "" {
		if !validation.ValidSol(solParam) {
			respondInvalid(w, "mars-photos", "sol must be a non-negative integer")
			return
		}
		query.Sol, _ = strconv.Atoi(solParam)
		params["sol"] = solParam
	} else {
		if !validation.ValidDate(earthDate) {
			respondInvalid(w, "mars-photos", "Invalid earth_date format. Use YYYY-MM-DD")
			return
		}
		query.EarthDate = earthDate
		params["earth_date"] = earthDate
	}

	if camera := q.Get("camera"); camera != "" {
		if !validation.ValidCamera(camera, rover, nasapkg.RoverCameras()) {
			respondInvalid(w, "mars-photos", "Unknown camera for rover "+rover)
			return
		}
		query.Camera = strings.ToUpper(camera)
		params["camera"] = query.Camera
	}

	if pageParam := q.Get("page"); pageParam != "" {
		if !validation.ValidPage(pageParam) {
			respondInvalid(w, "mars-photos", "page must be a positive integer")
			return
		}
		query.Page, _ = strconv.Atoi(pageParam)
		params["page"] = pageParam
	}

	serveCached(h, w, r, upstreamFetch[*nasamodels.MarsPhotosResponse]{
		Resource: "mars-photos",
		Endpoint: "mars-photos",
		Params:   params,
		Call: func(ctx context.Context) (*nasamodels.MarsPhotosResponse, error) {
			return h.client.MarsPhotos(ctx, rover, query)
		},
	})
}

// MarsLatest serves the most recent photos for a rover. It resolves the
// rover's max sol from the manifest, then fetches photos for that sol.
// Both upstream payloads are cached independently, so a warm manifest
// costs only the photo fetch.
func (h *Handler) MarsLatest(w http.ResponseWriter, r *http.Request) {
	rover, ok := h.roverParam(w, r, "mars-latest")
	if !ok {
		return
	}

	camera := r.URL.Query().Get("camera")
	if camera != "" {
		if !validation.ValidCamera(camera, rover, nasapkg.RoverCameras()) {
			respondInvalid(w, "mars-latest", "Unknown camera for rover "+rover)
			return
		}
		camera = strings.ToUpper(camera)
	}

	manifest, _, err := h.cachedManifest(r.Context(), rover)
	if err != nil {
		respondUpstreamError(w, "mars-latest", err)
		return
	}
	latestSol := manifest.PhotoManifest.MaxSol

	solParam := strconv.Itoa(latestSol)
	params := map[string]string{"rover": rover, "sol": solParam}
	if camera != "" {
		params["camera"] = camera
	}
	key := cache.GenerateKey("mars-photos", params)

	if h.cache != nil {
		if entry, found := h.cache.Get(key); found {
			if photos, okType := entry.(*nasamodels.MarsPhotosResponse); okType {
				metrics.RecordCacheHit("gateway")
				respondJSON(w, http.StatusOK, &models.APIResponse{
					Success: true,
					Data:    photos,
					Meta: models.Meta{
						Endpoint:  "mars-latest",
						Params:    params,
						Cached:    true,
						Timestamp: time.Now(),
						LatestSol: latestSol,
					},
				})
				return
			}
		}
		metrics.RecordCacheMiss("gateway")
	}

	start := time.Now()
	photos, err := h.client.MarsPhotos(r.Context(), rover, nasapkg.MarsPhotosQuery{Sol: latestSol, Camera: camera})
	if err != nil {
		metrics.RecordUpstreamRequest("mars-photos", "error", time.Since(start))
		respondUpstreamError(w, "mars-latest", err)
		return
	}
	queryTime := time.Since(start)
	metrics.RecordUpstreamRequest("mars-photos", "success", queryTime)

	if h.cache != nil {
		h.cache.Set(key, photos)
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Success: true,
		Data:    photos,
		Meta: models.Meta{
			Endpoint:    "mars-latest",
			Params:      params,
			Cached:      false,
			Timestamp:   time.Now(),
			QueryTimeMS: queryTime.Milliseconds(),
			LatestSol:   latestSol,
		},
	})
}

// cachedManifest fetches a rover manifest through the response cache.
// Returns the manifest and whether it was a cache hit.
func (h *Handler) cachedManifest(ctx context.Context, rover string) (*nasamodels.ManifestResponse, bool, error) {
	params := map[string]string{"rover": rover}
	key := cache.GenerateKey("mars-manifest", params)

	if h.cache != nil {
		if entry, found := h.cache.Get(key); found {
			if manifest, ok := entry.(*nasamodels.ManifestResponse); ok {
				metrics.RecordCacheHit("gateway")
				return manifest, true, nil
			}
		}
		metrics.RecordCacheMiss("gateway")
	}

	start := time.Now()
	manifest, err := h.client.MarsManifest(ctx, rover)
	if err != nil {
		metrics.RecordUpstreamRequest("mars-manifest", "error", time.Since(start))
		return nil, false, err
	}
	metrics.RecordUpstreamRequest("mars-manifest", "success", time.Since(start))

	if h.cache != nil {
		h.cache.SetWithTTL(key, manifest, h.longTTL())
	}
	return manifest, false, nil
}

// roverParam extracts and validates the {rover} path parameter.
func (h *Handler) roverParam(w http.ResponseWriter, r *http.Request, endpoint string) (string, bool) {
	rover := strings.ToLower(chi.URLParam(r, "rover"))
	if !nasapkg.ValidRover(rover) {
		respondError(w, http.StatusBadRequest, models.ErrCodeInvalidRequest,
			"Unknown rover: "+validation.SanitizeString(rover, 32), endpoint, nil)
		return "", false
	}
	return rover, true
}
