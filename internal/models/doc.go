// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

// Package models defines the shared response envelope and operational
// payload types served by the Heliodeck HTTP API.
//
// Every endpoint wraps its payload in APIResponse, a uniform envelope
// carrying a success flag, the data or a structured APIError, and Meta
// with the logical endpoint name, effective parameters, cache status,
// and server timestamp. Upstream NASA payload shapes live in the nasa
// subpackage; this package holds only gateway-owned types.
package models
