// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

package api

import (
	"context"
	"net/http"

	nasamodels "github.com/tomtom215/heliodeck/internal/models/nasa"
	nasapkg "github.com/tomtom215/heliodeck/internal/nasa"
	"github.com/tomtom215/heliodeck/internal/validation"
)

// epicCollection resolves the ?type= query parameter to an EPIC
// collection name. Empty means natural.
func epicCollection(r *http.Request) (string, bool) {
	collection := r.URL.Query().Get("type")
	switch collection {
	case "":
		return "natural", true
	case "natural", "enhanced":
		return collection, true
	default:
		return "", false
	}
}

// EPICImages serves EPIC Earth imagery for a collection, optionally
// pinned to a date. Without a date the upstream returns the most
// recent imagery. Archive URLs are derived per request from the cached
// raw metadata.
func (h *Handler) EPICImages(w http.ResponseWriter, r *http.Request) {
	collection, ok := epicCollection(r)
	if !ok {
		respondInvalid(w, "epic-images", "type must be natural or enhanced")
		return
	}

	date := r.URL.Query().Get("date")
	if date != "" && !validation.ValidDate(date) {
		respondInvalid(w, "epic-images", "Invalid date format. Use YYYY-MM-DD")
		return
	}

	h.serveEPICImages(w, r, "epic-images", collection, date)
}

// EPICLatest serves the most recent imagery for a collection.
func (h *Handler) EPICLatest(w http.ResponseWriter, r *http.Request) {
	collection, ok := epicCollection(r)
	if !ok {
		respondInvalid(w, "epic-latest", "type must be natural or enhanced")
		return
	}
	h.serveEPICImages(w, r, "epic-latest", collection, "")
}

// EPICNatural serves the latest natural-color imagery.
func (h *Handler) EPICNatural(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date != "" && !validation.ValidDate(date) {
		respondInvalid(w, "epic-natural", "Invalid date format. Use YYYY-MM-DD")
		return
	}
	h.serveEPICImages(w, r, "epic-natural", "natural", date)
}

// EPICEnhanced serves the latest enhanced-color imagery.
func (h *Handler) EPICEnhanced(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date != "" && !validation.ValidDate(date) {
		respondInvalid(w, "epic-enhanced", "Invalid date format. Use YYYY-MM-DD")
		return
	}
	h.serveEPICImages(w, r, "epic-enhanced", "enhanced", date)
}

func (h *Handler) serveEPICImages(w http.ResponseWriter, r *http.Request, endpoint, collection, date string) {
	params := map[string]string{"type": collection}
	if date != "" {
		params["date"] = date
	}

	serveCached(h, w, r, upstreamFetch[[]nasamodels.EPICImage]{
		Resource: "epic-images",
		Endpoint: endpoint,
		Params:   params,
		Call: func(ctx context.Context) ([]nasamodels.EPICImage, error) {
			return h.client.EPICImages(ctx, collection, date)
		},
		View: func(images []nasamodels.EPICImage) interface{} {
			return nasapkg.ReshapeEPIC(images, collection)
		},
	})
}

// EPICDates lists all dates with available imagery for a collection.
// The list grows by one entry per day, so it gets the long cache TTL.
func (h *Handler) EPICDates(w http.ResponseWriter, r *http.Request) {
	collection, ok := epicCollection(r)
	if !ok {
		respondInvalid(w, "epic-dates", "type must be natural or enhanced")
		return
	}

	serveCached(h, w, r, upstreamFetch[[]nasamodels.EPICDate]{
		Resource: "epic-dates",
		Endpoint: "epic-dates",
		Params:   map[string]string{"type": collection},
		TTL:      h.longTTL(),
		Call: func(ctx context.Context) ([]nasamodels.EPICDate, error) {
			return h.client.EPICDates(ctx, collection)
		},
	})
}
