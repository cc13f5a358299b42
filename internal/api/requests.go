// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

package api

import (
	"net/http"

	"github.com/tomtom215/heliodeck/internal/validation"
)

// Typed query surfaces for the endpoints with multi-field parameter
// contracts. Handlers fill these from the query string and run them
// through struct-tag validation before touching the upstream; field
// mechanics (formats, bounds) live in the tags, cross-field rules
// (window widths, ordering) stay in the handlers.

// apodRangeRequest is the query surface of GET /apod/range.
type apodRangeRequest struct {
	StartDate string `validate:"required,isodate"`
	EndDate   string `validate:"required,isodate"`
}

// apodRandomRequest is the query surface of GET /apod/random.
type apodRandomRequest struct {
	Count int `validate:"gte=1,lte=100"`
}

// neoFeedRequest is the query surface of GET /neows/feed.
type neoFeedRequest struct {
	StartDate string `validate:"required,isodate"`
	EndDate   string `validate:"required,isodate"`
}

// neoObjectRequest is the path surface of GET /neows/object/{id}.
type neoObjectRequest struct {
	ID string `validate:"required,asteroidid"`
}

// validateRequest runs struct-tag validation on a typed request and
// writes the INVALID_REQUEST envelope, field details included, on
// failure. Returns true when the request is valid.
func validateRequest(w http.ResponseWriter, endpoint string, req interface{}) bool {
	verr := validation.ValidateStruct(req)
	if verr == nil {
		return true
	}
	apiErr := verr.ToAPIError()
	respondErrorWithDetails(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, endpoint, apiErr.Details, nil)
	return false
}
