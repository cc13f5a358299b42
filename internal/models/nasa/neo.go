// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

package nasa

// NEOFeed represents the API response from the NeoWs feed endpoint.
// NearEarthObjects is keyed by date (YYYY-MM-DD).
type NEOFeed struct {
	ElementCount     int                          `json:"element_count"`
	NearEarthObjects map[string][]NearEarthObject `json:"near_earth_objects"`
}

// NearEarthObject represents a single asteroid from NeoWs. The same shape
// is returned by the feed endpoint (nested under dates) and the lookup
// endpoint (neo/{id}, with the full close-approach history).
type NearEarthObject struct {
	ID                             string              `json:"id"`
	NeoReferenceID                 string              `json:"neo_reference_id"`
	Name                           string              `json:"name"`
	NASAJPLURL                     string              `json:"nasa_jpl_url"`
	AbsoluteMagnitudeH             float64             `json:"absolute_magnitude_h"`
	EstimatedDiameter              EstimatedDiameter   `json:"estimated_diameter"`
	IsPotentiallyHazardousAsteroid bool                `json:"is_potentially_hazardous_asteroid"`
	CloseApproachData              []CloseApproachData `json:"close_approach_data"`
	IsSentryObject                 bool                `json:"is_sentry_object"`
	OrbitalData                    *OrbitalData        `json:"orbital_data,omitempty"`
}

// EstimatedDiameter holds diameter estimates per unit. Size categorization
// uses the kilometer range.
type EstimatedDiameter struct {
	Kilometers DiameterRange `json:"kilometers"`
	Meters     DiameterRange `json:"meters"`
	Miles      DiameterRange `json:"miles"`
	Feet       DiameterRange `json:"feet"`
}

// DiameterRange is a min/max diameter estimate in one unit.
type DiameterRange struct {
	EstimatedDiameterMin float64 `json:"estimated_diameter_min"`
	EstimatedDiameterMax float64 `json:"estimated_diameter_max"`
}

// CloseApproachData describes one close approach of an asteroid. Numeric
// quantities arrive as strings from NeoWs and are kept as strings to avoid
// lossy round-trips.
type CloseApproachData struct {
	CloseApproachDate      string           `json:"close_approach_date"`
	CloseApproachDateFull  string           `json:"close_approach_date_full"`
	EpochDateCloseApproach int64            `json:"epoch_date_close_approach"`
	RelativeVelocity       RelativeVelocity `json:"relative_velocity"`
	MissDistance           MissDistance     `json:"miss_distance"`
	OrbitingBody           string           `json:"orbiting_body"`
}

// RelativeVelocity holds approach speed in multiple units, as strings.
type RelativeVelocity struct {
	KilometersPerSecond string `json:"kilometers_per_second"`
	KilometersPerHour   string `json:"kilometers_per_hour"`
	MilesPerHour        string `json:"miles_per_hour"`
}

// MissDistance holds approach distance in multiple units, as strings.
type MissDistance struct {
	Astronomical string `json:"astronomical"`
	Lunar        string `json:"lunar"`
	Kilometers   string `json:"kilometers"`
	Miles        string `json:"miles"`
}

// OrbitalData is present on NeoWs lookup responses only. Kept partial;
// the dashboard surfaces orbit class and period.
type OrbitalData struct {
	OrbitID          string      `json:"orbit_id"`
	OrbitalPeriod    string      `json:"orbital_period"`
	Eccentricity     string      `json:"eccentricity"`
	SemiMajorAxis    string      `json:"semi_major_axis"`
	Inclination      string      `json:"inclination"`
	FirstObservation string      `json:"first_observation_date"`
	LastObservation  string      `json:"last_observation_date"`
	ObservationsUsed int         `json:"observations_used"`
	OrbitClass       *OrbitClass `json:"orbit_class,omitempty"`
}

// OrbitClass categorizes an asteroid orbit (e.g., "APO" for Apollo).
type OrbitClass struct {
	OrbitClassType        string `json:"orbit_class_type"`
	OrbitClassDescription string `json:"orbit_class_description"`
	OrbitClassRange       string `json:"orbit_class_range"`
}

// RiskSummary aggregates a NEO feed window for dashboard display. It is
// recomputed on every request from the raw upstream payload, never cached
// on its own. Extreme-value comparisons are strict, so the first object
// seen at a given extreme wins ties.
type RiskSummary struct {
	TotalObjects              int              `json:"total_objects"`
	PotentiallyHazardousCount int              `json:"potentially_hazardous_count"`
	CloseApproachCount        int              `json:"close_approach_count"`
	LargestObject             *LargestObject   `json:"largest_object"`
	ClosestApproach           *ClosestApproach `json:"closest_approach"`
}

// LargestObject identifies the largest asteroid in a feed window by
// maximum estimated diameter.
type LargestObject struct {
	Name        string  `json:"name"`
	DiameterKM  float64 `json:"diameter_km"`
	IsHazardous bool    `json:"is_hazardous"`
}

// ClosestApproach identifies the nearest close approach in a feed window
// by miss distance.
type ClosestApproach struct {
	ObjectName  string  `json:"object_name"`
	DistanceKM  float64 `json:"distance_km"`
	Date        string  `json:"date"`
	VelocityKMH float64 `json:"velocity_kmh"`
}

// NEOFeedView is the reshaped feed served to clients: raw date-keyed
// objects plus the computed risk summary for the window.
type NEOFeedView struct {
	ElementCount     int                          `json:"element_count"`
	NearEarthObjects map[string][]NearEarthObject `json:"near_earth_objects"`
	RiskSummary      RiskSummary                  `json:"risk_summary"`
}

// NEOSummary is the condensed per-asteroid projection used by the
// hazardous listing and object lookups. SizeCategory is one of TINY,
// SMALL, MEDIUM, LARGE, MASSIVE; RiskLevel is HIGH or LOW.
type NEOSummary struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	DiameterKMMin float64            `json:"diameter_km_min"`
	DiameterKMMax float64            `json:"diameter_km_max"`
	SizeCategory  string             `json:"size_category"`
	Hazardous     bool               `json:"hazardous"`
	RiskLevel     string             `json:"risk_level"`
	NextApproach  *CloseApproachData `json:"next_approach"` // explicit null when no future approach
	ApproachCount int                `json:"approach_count"`
	NASAJPLURL    string             `json:"nasa_jpl_url"`
}

// NEOObjectView is the lookup response for a single asteroid: the raw
// upstream object plus the computed summary fields.
type NEOObjectView struct {
	Object  NearEarthObject `json:"object"`
	Summary NEOSummary      `json:"summary"`
}

// HazardousView lists potentially hazardous asteroids approaching within
// the next week, sorted by maximum estimated diameter descending.
type HazardousView struct {
	StartDate string       `json:"start_date"`
	EndDate   string       `json:"end_date"`
	Count     int          `json:"count"`
	Asteroids []NEOSummary `json:"asteroids"`
}
