// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

package nasa

// EPICImage represents a single image entry from the EPIC API (natural or
// enhanced collections). Date is "YYYY-MM-DD HH:MM:SS" in the upstream
// payload.
type EPICImage struct {
	Identifier          string          `json:"identifier"`
	Caption             string          `json:"caption"`
	Image               string          `json:"image"`
	Version             string          `json:"version"`
	Date                string          `json:"date"`
	CentroidCoords      EPICCoordinates `json:"centroid_coordinates"`
	DSCOVRPosition      EPICPosition    `json:"dscovr_j2000_position"`
	LunarPosition       EPICPosition    `json:"lunar_j2000_position"`
	SunPosition         EPICPosition    `json:"sun_j2000_position"`
	AttitudeQuaternions EPICQuaternions `json:"attitude_quaternions"`
}

// EPICCoordinates is the lat/lon of the image centroid on Earth.
type EPICCoordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// EPICPosition is a J2000 frame position vector in kilometers.
type EPICPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// EPICQuaternions is the spacecraft attitude quaternion for an image.
type EPICQuaternions struct {
	Q0 float64 `json:"q0"`
	Q1 float64 `json:"q1"`
	Q2 float64 `json:"q2"`
	Q3 float64 `json:"q3"`
}

// EPICImageView is the reshaped EPIC entry served to clients, with
// archive URLs constructed from the image date and collection type.
type EPICImageView struct {
	Identifier   string          `json:"identifier"`
	Caption      string          `json:"caption"`
	Date         string          `json:"date"`
	ImageURL     string          `json:"image_url"`
	ThumbnailURL string          `json:"thumbnail_url"`
	Centroid     EPICCoordinates `json:"centroid_coordinates"`
	Metadata     EPICMetadata    `json:"metadata"`
}

// EPICMetadata carries the positional and attitude details of an EPIC
// capture.
type EPICMetadata struct {
	DSCOVRPosition      EPICPosition    `json:"dscovr_j2000_position"`
	LunarPosition       EPICPosition    `json:"lunar_j2000_position"`
	SunPosition         EPICPosition    `json:"sun_j2000_position"`
	AttitudeQuaternions EPICQuaternions `json:"attitude_quaternions"`
}

// EPICDate is one entry from the EPIC available-dates listing.
type EPICDate struct {
	Date string `json:"date"`
}
