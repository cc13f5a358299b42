// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

package nasa

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies upstream NASA API failures so handlers can branch
// on the failure class instead of parsing raw errors.
type ErrorKind int

const (
	// KindUpstream is any non-2xx status not covered by a more specific kind.
	KindUpstream ErrorKind = iota
	// KindRateLimited maps upstream HTTP 429.
	KindRateLimited
	// KindInvalidAPIKey maps upstream HTTP 403.
	KindInvalidAPIKey
	// KindUnavailable maps upstream HTTP 5xx.
	KindUnavailable
	// KindTimeout is a request that exceeded the client timeout.
	KindTimeout
	// KindUnreachable is a connect or DNS failure before any response.
	KindUnreachable
	// KindNotFound maps upstream HTTP 404.
	KindNotFound
)

// String returns a stable name for the kind, used in logs and metrics labels.
func (k ErrorKind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindInvalidAPIKey:
		return "invalid_api_key"
	case KindUnavailable:
		return "unavailable"
	case KindTimeout:
		return "timeout"
	case KindUnreachable:
		return "unreachable"
	case KindNotFound:
		return "not_found"
	default:
		return "upstream_error"
	}
}

// Error is a typed upstream failure. UpstreamStatus is the HTTP status the
// NASA API returned, or 0 when no response was received.
type Error struct {
	Kind           ErrorKind
	UpstreamStatus int
	Message        string
	Err            error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.UpstreamStatus > 0 {
		return fmt.Sprintf("nasa api: %s (HTTP %d): %s", e.Kind, e.UpstreamStatus, e.Message)
	}
	return fmt.Sprintf("nasa api: %s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying transport error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the status code the gateway should surface to its own
// caller for this failure class.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindTimeout:
		return http.StatusRequestTimeout
	case KindUnavailable, KindUnreachable:
		return http.StatusServiceUnavailable
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// PublicMessage returns a fixed client-facing message for this failure
// class. Raw upstream bodies stay in Message for logs only; they can
// echo request URLs, which embed the API key.
func (e *Error) PublicMessage() string {
	switch e.Kind {
	case KindRateLimited:
		return "NASA API rate limit exceeded, try again later"
	case KindInvalidAPIKey:
		return "NASA API rejected the gateway's API key"
	case KindUnavailable:
		return "NASA API is temporarily unavailable"
	case KindTimeout:
		return "NASA API request timed out"
	case KindUnreachable:
		return "NASA API is unreachable"
	case KindNotFound:
		return "Requested resource was not found upstream"
	default:
		return "NASA API returned an error"
	}
}

// Code returns the envelope error code for this failure class.
func (e *Error) Code() string {
	switch e.Kind {
	case KindRateLimited:
		return "RATE_LIMIT_EXCEEDED"
	case KindNotFound:
		return "NOT_FOUND"
	default:
		return "NASA_API_ERROR"
	}
}

// statusToKind maps an upstream HTTP status to an error kind.
func statusToKind(status int) ErrorKind {
	switch {
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status == http.StatusForbidden:
		return KindInvalidAPIKey
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= 500:
		return KindUnavailable
	default:
		return KindUpstream
	}
}

// newStatusError builds a typed error from a non-2xx upstream response.
func newStatusError(status int, body string) *Error {
	kind := statusToKind(status)
	msg := body
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &Error{
		Kind:           kind,
		UpstreamStatus: status,
		Message:        msg,
	}
}
