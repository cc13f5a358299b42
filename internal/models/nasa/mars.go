// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

package nasa

// MarsPhotosResponse represents the API response from the Mars Rover
// Photos rovers/{rover}/photos endpoint.
type MarsPhotosResponse struct {
	Photos []MarsPhoto `json:"photos"`
}

// MarsPhoto represents a single rover photo. Camera and Rover are nested
// objects in the upstream response; EarthDate is YYYY-MM-DD.
type MarsPhoto struct {
	ID        int        `json:"id"`
	Sol       int        `json:"sol"`
	Camera    MarsCamera `json:"camera"`
	ImgSrc    string     `json:"img_src"`
	EarthDate string     `json:"earth_date"`
	Rover     MarsRover  `json:"rover"`
}

// MarsCamera identifies the instrument that took a photo (e.g., FHAZ, NAVCAM).
type MarsCamera struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	RoverID  int    `json:"rover_id"`
	FullName string `json:"full_name"`
}

// MarsRover describes the rover a photo belongs to, as embedded in photo
// listings. Status is "active" or "complete".
type MarsRover struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	LandingDate string `json:"landing_date"`
	LaunchDate  string `json:"launch_date"`
	Status      string `json:"status"`
}

// ManifestResponse represents the API response from the Mars Rover Photos
// manifests/{rover} endpoint.
type ManifestResponse struct {
	PhotoManifest PhotoManifest `json:"photo_manifest"`
}

// PhotoManifest summarizes a rover mission: date bounds, total photo count,
// and a per-sol breakdown. MaxSol is the most recent sol with photos and
// drives the "latest photos" resolution.
type PhotoManifest struct {
	Name        string        `json:"name"`
	LandingDate string        `json:"landing_date"`
	LaunchDate  string        `json:"launch_date"`
	Status      string        `json:"status"`
	MaxSol      int           `json:"max_sol"`
	MaxDate     string        `json:"max_date"`
	TotalPhotos int           `json:"total_photos"`
	Photos      []ManifestSol `json:"photos"`
}

// ManifestSol is one per-sol entry in a photo manifest.
type ManifestSol struct {
	Sol         int      `json:"sol"`
	EarthDate   string   `json:"earth_date"`
	TotalPhotos int      `json:"total_photos"`
	Cameras     []string `json:"cameras"`
}

// RoverInfo is a static rover catalog entry served by the gateway without
// an upstream call. Cameras lists the instrument codes valid for the rover.
type RoverInfo struct {
	Name        string   `json:"name"`
	Status      string   `json:"status"`
	LandingDate string   `json:"landing_date"`
	LaunchDate  string   `json:"launch_date"`
	Cameras     []string `json:"cameras"`
}
