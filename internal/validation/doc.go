// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

// Package validation checks query parameters before any upstream call is
// made. It has two layers:
//
// Pure validators (validator.go) take raw query-string values and return
// booleans or small result structs. They have no side effects and never
// panic on malformed input; invalid input yields false, not an error.
//
// Struct validation (struct.go) wraps go-playground/validator v10 with a
// thread-safe singleton, custom isodate and asteroidid tags, and error
// translation into the INVALID_REQUEST APIError shape handlers return.
//
// Example usage:
//
//	type FeedRequest struct {
//	    StartDate string `validate:"required,isodate"`
//	    EndDate   string `validate:"required,isodate"`
//	}
//
//	if err := validation.ValidateStruct(&req); err != nil {
//	    apiErr := err.ToAPIError()
//	    ...
//	}
package validation
