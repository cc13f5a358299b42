// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	nasamodels "github.com/tomtom215/heliodeck/internal/models/nasa"
	"github.com/tomtom215/heliodeck/internal/validation"
)

// maxAPODRangeDays is the inclusive day limit for APOD date ranges.
const maxAPODRangeDays = 100

// APOD handles single-picture requests. Without a date it serves
// today's picture; ?count= and ?start_date= dispatch to the random and
// range variants so the endpoint mirrors the upstream APOD contract.
func (h *Handler) APOD(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if q.Get("count") != "" {
		h.APODRandom(w, r)
		return
	}
	if q.Get("start_date") != "" || q.Get("end_date") != "" {
		h.APODRange(w, r)
		return
	}

	date := q.Get("date")
	if date == "" {
		date = h.today()
	}
	if !validation.ValidDate(date) {
		respondInvalid(w, "apod", "Invalid date format. Use YYYY-MM-DD")
		return
	}

	thumbs := q.Get("thumbs") == "true"

	h.serveAPOD(w, r, "apod", date, thumbs)
}

// APODToday serves today's Astronomy Picture of the Day.
func (h *Handler) APODToday(w http.ResponseWriter, r *http.Request) {
	h.serveAPOD(w, r, "apod-today", h.today(), r.URL.Query().Get("thumbs") == "true")
}

func (h *Handler) serveAPOD(w http.ResponseWriter, r *http.Request, endpoint, date string, thumbs bool) {
	params := map[string]string{"date": date}
	if thumbs {
		params["thumbs"] = "true"
	}

	serveCached(h, w, r, upstreamFetch[*nasamodels.APOD]{
		Resource: "apod",
		Endpoint: endpoint,
		Params:   params,
		Call: func(ctx context.Context) (*nasamodels.APOD, error) {
			return h.client.APOD(ctx, date, thumbs)
		},
	})
}

// APODRandom serves a random sample of pictures. Responses are not
// cached: a cached random draw would stop being random.
func (h *Handler) APODRandom(w http.ResponseWriter, r *http.Request) {
	countParam := r.URL.Query().Get("count")
	if countParam == "" {
		countParam = "1"
	}
	count, err := strconv.Atoi(countParam)
	if err != nil {
		respondInvalid(w, "apod-random", "count must be an integer between 1 and 100")
		return
	}
	if !validateRequest(w, "apod-random", &apodRandomRequest{Count: count}) {
		return
	}

	start := time.Now()
	pictures, err := h.client.APODRandom(r.Context(), count)
	if err != nil {
		respondUpstreamError(w, "apod-random", err)
		return
	}

	respondOK(w, "apod-random", map[string]string{"count": countParam}, pictures, time.Since(start))
}

// APODRange serves pictures for an inclusive date range of up to 100 days.
func (h *Handler) APODRange(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")
	if startDate == "" {
		respondInvalid(w, "apod-range", "start_date parameter is required")
		return
	}
	if endDate == "" {
		endDate = h.today()
	}
	if !validateRequest(w, "apod-range", &apodRangeRequest{StartDate: startDate, EndDate: endDate}) {
		return
	}

	result := validation.ValidateDateRange(startDate, endDate, maxAPODRangeDays)
	if !result.IsValid {
		respondInvalid(w, "apod-range", result.Message)
		return
	}

	serveCached(h, w, r, upstreamFetch[[]nasamodels.APOD]{
		Resource: "apod-range",
		Endpoint: "apod-range",
		Params:   map[string]string{"start_date": startDate, "end_date": endDate},
		Call: func(ctx context.Context) ([]nasamodels.APOD, error) {
			return h.client.APODRange(ctx, startDate, endDate)
		},
	})
}
