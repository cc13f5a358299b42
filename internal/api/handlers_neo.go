// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	nasamodels "github.com/tomtom215/heliodeck/internal/models/nasa"
	nasapkg "github.com/tomtom215/heliodeck/internal/nasa"
	"github.com/tomtom215/heliodeck/internal/validation"
)

// maxNEOFeedDays is the inclusive day limit the NeoWs feed accepts.
const maxNEOFeedDays = 7

// NEOFeed serves the asteroid close-approach feed for a date window of
// up to 7 days inclusive. The raw feed is cached; the risk summary is
// recomputed on every request, cache hit or not.
func (h *Handler) NEOFeed(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	startDate := q.Get("start_date")
	endDate := q.Get("end_date")

	if startDate == "" {
		startDate = h.today()
	}
	if endDate == "" {
		endDate = h.addDays(startDate, maxNEOFeedDays-1)
	}
	if !validateRequest(w, "neo-feed", &neoFeedRequest{StartDate: startDate, EndDate: endDate}) {
		return
	}

	result := validation.ValidateDateRange(startDate, endDate, maxNEOFeedDays)
	if !result.IsValid {
		respondInvalid(w, "neo-feed", result.Message)
		return
	}

	detailed := q.Get("detailed") == "true"
	params := map[string]string{"start_date": startDate, "end_date": endDate}
	if detailed {
		params["detailed"] = "true"
	}

	h.serveNEOFeed(w, r, "neo-feed", params, startDate, endDate, detailed)
}

// NEOToday serves the feed for today only.
func (h *Handler) NEOToday(w http.ResponseWriter, r *http.Request) {
	today := h.today()
	params := map[string]string{"start_date": today, "end_date": today}
	h.serveNEOFeed(w, r, "neo-today", params, today, today, false)
}

func (h *Handler) serveNEOFeed(w http.ResponseWriter, r *http.Request, endpoint string, params map[string]string, startDate, endDate string, detailed bool) {
	serveCached(h, w, r, upstreamFetch[*nasamodels.NEOFeed]{
		Resource: "neo-feed",
		Endpoint: endpoint,
		Params:   params,
		Call: func(ctx context.Context) (*nasamodels.NEOFeed, error) {
			return h.client.NEOFeed(ctx, startDate, endDate, detailed)
		},
		View: func(feed *nasamodels.NEOFeed) interface{} {
			return nasamodels.NEOFeedView{
				ElementCount:     feed.ElementCount,
				NearEarthObjects: feed.NearEarthObjects,
				RiskSummary:      nasapkg.ComputeRiskSummary(feed),
			}
		},
	})
}

// NEOObject looks up a single asteroid by its NeoWs ID. Orbital data is
// effectively immutable, so lookups get the long cache TTL.
func (h *Handler) NEOObject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validateRequest(w, "neo-object", &neoObjectRequest{ID: id}) {
		return
	}

	serveCached(h, w, r, upstreamFetch[*nasamodels.NearEarthObject]{
		Resource: "neo-object",
		Endpoint: "neo-object",
		Params:   map[string]string{"id": id},
		TTL:      h.longTTL(),
		Call: func(ctx context.Context) (*nasamodels.NearEarthObject, error) {
			return h.client.NEOObject(ctx, id)
		},
		View: func(neo *nasamodels.NearEarthObject) interface{} {
			return nasamodels.NEOObjectView{
				Object:  *neo,
				Summary: nasapkg.Summarize(neo, h.now().UTC()),
			}
		},
	})
}

// NEOHazardous lists potentially hazardous asteroids approaching within
// the next week, largest first.
func (h *Handler) NEOHazardous(w http.ResponseWriter, r *http.Request) {
	startDate := h.today()
	endDate := h.addDays(startDate, maxNEOFeedDays-1)
	params := map[string]string{"start_date": startDate, "end_date": endDate}

	serveCached(h, w, r, upstreamFetch[*nasamodels.NEOFeed]{
		Resource: "neo-feed",
		Endpoint: "neo-hazardous",
		Params:   params,
		Call: func(ctx context.Context) (*nasamodels.NEOFeed, error) {
			return h.client.NEOFeed(ctx, startDate, endDate, false)
		},
		View: func(feed *nasamodels.NEOFeed) interface{} {
			asteroids := nasapkg.HazardousFromFeed(feed, h.now().UTC())
			return nasamodels.HazardousView{
				StartDate: startDate,
				EndDate:   endDate,
				Count:     len(asteroids),
				Asteroids: asteroids,
			}
		},
	})
}

// addDays shifts a YYYY-MM-DD date by n days. Returns the input
// unchanged if it doesn't parse; validation catches that downstream.
func (h *Handler) addDays(date string, n int) string {
	t, err := timeParseDate(date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, n).Format("2006-01-02")
}
