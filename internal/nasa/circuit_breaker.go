// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

package nasa

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/heliodeck/internal/config"
	"github.com/tomtom215/heliodeck/internal/logging"
	"github.com/tomtom215/heliodeck/internal/metrics"
	nasamodels "github.com/tomtom215/heliodeck/internal/models/nasa"
)

// CircuitBreakerClient wraps Client with the circuit breaker pattern to
// prevent hammering the NASA API while it is unavailable or slow.
//
// DETERMINISM NOTE: The circuit breaker uses real time (via sony/gobreaker)
// for its interval and timeout calculations. The timing determines when to
// recover from failures, not data integrity. For unit tests, mock the
// underlying client rather than the breaker.
type CircuitBreakerClient struct {
	client ClientInterface
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewCircuitBreakerClient creates a NASA client with circuit breaker.
// Circuit breaker configuration:
// - Max 3 concurrent requests in half-open state
// - 1 minute measurement window
// - 2 minute timeout before attempting recovery
// - Opens after 60% failure rate with minimum 10 requests
func NewCircuitBreakerClient(cfg *config.NASAConfig) *CircuitBreakerClient {
	return WrapWithCircuitBreaker(NewClient(cfg))
}

// WrapWithCircuitBreaker wraps an existing client implementation with the
// breaker. Split from NewCircuitBreakerClient so tests can wrap mocks.
func WrapWithCircuitBreaker(client ClientInterface) *CircuitBreakerClient {
	cbName := "nasa-api"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbName).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		// Opens when failure rate >= 60% with minimum 10 requests
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logging.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &CircuitBreakerClient{
		client: client,
		cb:     cb,
		name:   cbName,
	}
}

// execute wraps a NASA API call with circuit breaker protection.
func (cbc *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := cbc.cb.Execute(fn)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
			return nil, &Error{Kind: KindUnavailable, Message: "circuit breaker open", Err: err}
		}

		metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "failure").Inc()
		counts := cbc.cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(float64(counts.ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(0)

	return result, nil
}

// castResult safely type-casts the circuit breaker result with error checking.
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging.
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Ping verifies connectivity with circuit breaker protection.
func (cbc *CircuitBreakerClient) Ping(ctx context.Context) error {
	_, err := cbc.execute(func() (interface{}, error) {
		return nil, cbc.client.Ping(ctx)
	})
	return err
}

// APOD retrieves the picture of the day with circuit breaker protection.
func (cbc *CircuitBreakerClient) APOD(ctx context.Context, date string, thumbs bool) (*nasamodels.APOD, error) {
	return castResult[*nasamodels.APOD](cbc.execute(func() (interface{}, error) {
		return cbc.client.APOD(ctx, date, thumbs)
	}))
}

// APODRandom retrieves random entries with circuit breaker protection.
func (cbc *CircuitBreakerClient) APODRandom(ctx context.Context, count int) ([]nasamodels.APOD, error) {
	return castResult[[]nasamodels.APOD](cbc.execute(func() (interface{}, error) {
		return cbc.client.APODRandom(ctx, count)
	}))
}

// APODRange retrieves a date range with circuit breaker protection.
func (cbc *CircuitBreakerClient) APODRange(ctx context.Context, startDate, endDate string) ([]nasamodels.APOD, error) {
	return castResult[[]nasamodels.APOD](cbc.execute(func() (interface{}, error) {
		return cbc.client.APODRange(ctx, startDate, endDate)
	}))
}

// MarsManifest retrieves a rover manifest with circuit breaker protection.
func (cbc *CircuitBreakerClient) MarsManifest(ctx context.Context, rover string) (*nasamodels.ManifestResponse, error) {
	return castResult[*nasamodels.ManifestResponse](cbc.execute(func() (interface{}, error) {
		return cbc.client.MarsManifest(ctx, rover)
	}))
}

// MarsPhotos retrieves rover photos with circuit breaker protection.
func (cbc *CircuitBreakerClient) MarsPhotos(ctx context.Context, rover string, query MarsPhotosQuery) (*nasamodels.MarsPhotosResponse, error) {
	return castResult[*nasamodels.MarsPhotosResponse](cbc.execute(func() (interface{}, error) {
		return cbc.client.MarsPhotos(ctx, rover, query)
	}))
}

// NEOFeed retrieves a NEO window with circuit breaker protection.
func (cbc *CircuitBreakerClient) NEOFeed(ctx context.Context, startDate, endDate string, detailed bool) (*nasamodels.NEOFeed, error) {
	return castResult[*nasamodels.NEOFeed](cbc.execute(func() (interface{}, error) {
		return cbc.client.NEOFeed(ctx, startDate, endDate, detailed)
	}))
}

// NEOObject retrieves a single asteroid with circuit breaker protection.
func (cbc *CircuitBreakerClient) NEOObject(ctx context.Context, id string) (*nasamodels.NearEarthObject, error) {
	return castResult[*nasamodels.NearEarthObject](cbc.execute(func() (interface{}, error) {
		return cbc.client.NEOObject(ctx, id)
	}))
}

// EPICImages retrieves EPIC metadata with circuit breaker protection.
func (cbc *CircuitBreakerClient) EPICImages(ctx context.Context, collection, date string) ([]nasamodels.EPICImage, error) {
	return castResult[[]nasamodels.EPICImage](cbc.execute(func() (interface{}, error) {
		return cbc.client.EPICImages(ctx, collection, date)
	}))
}

// EPICDates retrieves available dates with circuit breaker protection.
func (cbc *CircuitBreakerClient) EPICDates(ctx context.Context, collection string) ([]nasamodels.EPICDate, error) {
	return castResult[[]nasamodels.EPICDate](cbc.execute(func() (interface{}, error) {
		return cbc.client.EPICDates(ctx, collection)
	}))
}

// FetchImage downloads a binary payload with circuit breaker protection.
func (cbc *CircuitBreakerClient) FetchImage(ctx context.Context, imageURL string) ([]byte, string, error) {
	type imageResult struct {
		body        []byte
		contentType string
	}

	result, err := cbc.execute(func() (interface{}, error) {
		body, contentType, err := cbc.client.FetchImage(ctx, imageURL)
		if err != nil {
			return nil, err
		}
		return imageResult{body: body, contentType: contentType}, nil
	})
	if err != nil {
		return nil, "", err
	}

	typed, ok := result.(imageResult)
	if !ok {
		return nil, "", fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed.body, typed.contentType, nil
}
